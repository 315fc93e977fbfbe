// Package main - perception.go
//
// This file implements the perception aggregator. Each cycle runs all
// entity extractors in parallel over one frame and joins them under a wait
// budget. A cycle either yields a complete entity set from a single capture
// or fails outright; partial or mixed-age data is never returned.
package main

import (
	"errors"
	"sync"
	"time"
)

// ErrPerceptionTimeout is returned when an extractor exceeds the per-cycle
// wait budget. The cycle that hit it must be skipped.
var ErrPerceptionTimeout = errors.New("perception timed out")

// EntitySet is everything the extractors saw in one frame.
type EntitySet struct {
	Minions    []Minion
	Champions  []Champion
	Structures []Structure
}

// entityFinder is the extractor surface the perceptor fans out over.
// Extractor is the production implementation.
type entityFinder interface {
	FindMinions(f *Frame) []Minion
	FindChampions(f *Frame) []Champion
	FindStructures(f *Frame) []Structure
}

// Perceptor runs the extractors over captured frames.
type Perceptor struct {
	extractor entityFinder
	config    *Config
}

// NewPerceptor creates a perceptor.
func NewPerceptor(cfg *Config, e entityFinder) *Perceptor {
	return &Perceptor{extractor: e, config: cfg}
}

// FindAll extracts all entities from the frame. The three extractors are
// independent, so they run as parallel goroutines joined under the budget.
//
// On success the caller keeps ownership of the frame. On timeout FindAll
// adopts the frame and closes it once the straggling extractors return;
// the caller must not touch the frame after a timeout error.
func (p *Perceptor) FindAll(f *Frame, budget time.Duration) (EntitySet, error) {
	var set EntitySet
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		set.Minions = p.extractor.FindMinions(f)
	}()
	go func() {
		defer wg.Done()
		set.Champions = p.extractor.FindChampions(f)
	}()
	go func() {
		defer wg.Done()
		set.Structures = p.extractor.FindStructures(f)
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return set, nil
	case <-time.After(budget):
		go func() {
			<-done
			f.Close()
		}()
		return EntitySet{}, ErrPerceptionTimeout
	}
}

// Observation is one perception snapshot partitioned for the decision
// engine, with the frame still attached for targeted pixel and OCR reads.
type Observation struct {
	Frame *Frame

	// Player is the controlled champion, nil when not visible this frame.
	Player *Champion

	AllyMinions  []Minion
	EnemyMinions []Minion

	AllyChampions  []Champion
	EnemyChampions []Champion

	AllyStructures  []Structure
	EnemyStructures []Structure
}

// Partition buckets an entity set by allegiance and pulls out the
// controlled champion. When the extractor reports more than one
// controllable champion the extra ones are discarded as false positives.
func Partition(f *Frame, set EntitySet) *Observation {
	obs := &Observation{Frame: f}
	for _, m := range set.Minions {
		if m.Allied {
			obs.AllyMinions = append(obs.AllyMinions, m)
		} else {
			obs.EnemyMinions = append(obs.EnemyMinions, m)
		}
	}
	for _, c := range set.Champions {
		switch {
		case c.Controllable && obs.Player == nil:
			champ := c
			obs.Player = &champ
		case c.Allied:
			obs.AllyChampions = append(obs.AllyChampions, c)
		default:
			obs.EnemyChampions = append(obs.EnemyChampions, c)
		}
	}
	for _, s := range set.Structures {
		if s.Allied {
			obs.AllyStructures = append(obs.AllyStructures, s)
		} else {
			obs.EnemyStructures = append(obs.EnemyStructures, s)
		}
	}
	return obs
}
