package main

import (
	"math"
	"testing"
)

var (
	testAllyFill = HSVRange{MinH: 100, MinS: 150, MinV: 100, MaxH: 110, MaxS: 170, MaxV: 220}
	testFoeFill  = HSVRange{MinH: 0, MinS: 130, MinV: 110, MaxH: 5, MaxS: 150, MaxV: 220}
)

// fillRow builds a health-bar pixel strip: the first filled+1 pixels carry
// the given color, the rest are background.
func fillRow(length, filled int, c HSVColor) []HSVColor {
	row := make([]HSVColor, length)
	bg := HSVColor{H: 90, S: 10, V: 10}
	for i := range row {
		if i <= filled {
			row[i] = c
		} else {
			row[i] = bg
		}
	}
	return row
}

func TestFillBoundaryFractions(t *testing.T) {
	ally := HSVColor{H: 105, S: 160, V: 150}
	families := []HSVRange{testAllyFill, testFoeFill}

	// Row of 21 pixels has width 20; a fill boundary at index k reads as
	// health k/20.
	tests := []struct {
		filled int
		want   float64
	}{
		{5, 0.25},
		{10, 0.5},
		{15, 0.75},
		{20, 1.0},
	}
	for _, tt := range tests {
		row := fillRow(21, tt.filled, ally)
		frac, family, ok := fillBoundary(row, families)
		if !ok {
			t.Fatalf("filled=%d: no family found", tt.filled)
		}
		if family != 0 {
			t.Errorf("filled=%d: family = %d, want 0", tt.filled, family)
		}
		if math.Abs(frac-tt.want) > 1.0/20 {
			t.Errorf("filled=%d: frac = %v, want %v", tt.filled, frac, tt.want)
		}
	}
}

func TestFillBoundaryFamilyDetection(t *testing.T) {
	foe := HSVColor{H: 2, S: 140, V: 150}
	row := fillRow(21, 12, foe)
	_, family, ok := fillBoundary(row, []HSVRange{testAllyFill, testFoeFill})
	if !ok {
		t.Fatal("no family found")
	}
	if family != 1 {
		t.Errorf("family = %d, want 1", family)
	}
}

func TestFillBoundaryNoFamily(t *testing.T) {
	row := fillRow(21, 20, HSVColor{H: 50, S: 50, V: 50})
	if _, _, ok := fillBoundary(row, []HSVRange{testAllyFill, testFoeFill}); ok {
		t.Error("background-only row reported a family")
	}
}

func TestFillBoundaryDegenerateRows(t *testing.T) {
	ally := HSVColor{H: 105, S: 160, V: 150}
	if _, _, ok := fillBoundary(nil, []HSVRange{testAllyFill}); ok {
		t.Error("empty row reported a family")
	}
	if _, _, ok := fillBoundary([]HSVColor{ally}, []HSVRange{testAllyFill}); ok {
		t.Error("single-pixel row reported a family")
	}
	// The search never samples index 0, so a bar with only its leftmost
	// pixel filled is treated as not a health bar.
	if _, _, ok := fillBoundary(fillRow(21, 0, ally), []HSVRange{testAllyFill}); ok {
		t.Error("leftmost-pixel-only fill reported a family")
	}
}

func TestHSVRangeIn(t *testing.T) {
	r := HSVRange{MinH: 80, MinS: 0, MinV: 10, MaxH: 140, MaxS: 255, MaxV: 23}
	if !r.In(HSVColor{H: 100, S: 128, V: 15}) {
		t.Error("in-range color rejected")
	}
	if r.In(HSVColor{H: 100, S: 128, V: 30}) {
		t.Error("out-of-range value accepted")
	}
	if r.In(HSVColor{H: 150, S: 128, V: 15}) {
		t.Error("out-of-range hue accepted")
	}
}
