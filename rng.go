// Package main - rng.go
//
// This file implements the humanized randomness used for input timing and
// coordinates. Injected events land near the requested value on a normal
// distribution, so repeated actions never produce pixel-identical or
// clock-identical input traces.
package main

import (
	"math/rand"
	"time"
)

// defaultSpread is the relative standard deviation applied when the caller
// does not pick one.
const defaultSpread = 0.047

// RNum draws a value near n from a normal distribution with standard
// deviation s*n.
func RNum(n, s float64) float64 {
	return rand.NormFloat64()*(n*s) + n
}

// RNumAbs draws a value near n with an absolute standard deviation s.
// Needed when n can be zero or negative, where a relative spread collapses
// or flips.
func RNumAbs(n, s float64) float64 {
	return rand.NormFloat64()*s + n
}

// RDuration jitters a duration with the default relative spread, floored
// at zero.
func RDuration(d time.Duration) time.Duration {
	j := RNum(float64(d), defaultSpread)
	if j < 0 {
		return 0
	}
	return time.Duration(j)
}

// RSleep sleeps for approximately d.
func RSleep(d time.Duration) {
	time.Sleep(RDuration(d))
}
