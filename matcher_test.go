package main

import (
	"image"
	"testing"
)

func TestRegionResolve(t *testing.T) {
	tests := []struct {
		name       string
		region     Region
		cols, rows int
		want       image.Rectangle
		ok         bool
	}{
		{"zero is full frame", Region{}, 100, 50, image.Rect(0, 0, 100, 50), true},
		{"absolute bounds", Region{MinX: 10, MinY: 20, MaxX: 60, MaxY: 40}, 100, 50, image.Rect(10, 20, 60, 40), true},
		{"negative from far edge", Region{MinX: 400, MaxX: -400}, 1920, 1080, image.Rect(400, 0, 1520, 1080), true},
		{"negative min offsets", Region{MinX: -500, MinY: -500}, 1920, 1080, image.Rect(1420, 580, 1920, 1080), true},
		{"overshoot clamps", Region{MinX: 150, MinY: 150, MaxX: 2500, MaxY: 1300}, 1920, 1080, image.Rect(150, 150, 1920, 1080), true},
		{"degenerate after clamp", Region{MinX: 200, MinY: 0, MaxX: 100, MaxY: 50}, 300, 100, image.Rectangle{}, false},
		{"fully outside", Region{MinX: 500, MinY: 0, MaxX: 600, MaxY: 50}, 300, 100, image.Rectangle{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.region.resolve(tt.cols, tt.rows)
			if ok != tt.ok {
				t.Fatalf("resolve ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("resolve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBestMatchSetSelection(t *testing.T) {
	m := func(score float64) Match { return Match{Score: score} }
	tests := []struct {
		name    string
		sets    [][]Match
		wantLen int
		wantTop float64
	}{
		{"no sets", nil, 0, 0},
		{"all empty", [][]Match{{}, nil, {}}, 0, 0},
		{"single set", [][]Match{{m(0.8)}}, 1, 0.8},
		{"best in later set", [][]Match{{m(0.80), m(0.70)}, {m(0.95)}, {m(0.90)}}, 1, 0.95},
		{"empty sets skipped", [][]Match{nil, {m(0.85), m(0.60)}, nil}, 2, 0.85},
		{"tie keeps earlier set", [][]Match{{m(0.90), m(0.50)}, {m(0.90)}}, 2, 0.90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bestMatchSet(tt.sets)
			if len(got) != tt.wantLen {
				t.Fatalf("kept %d matches, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0].Score != tt.wantTop {
				t.Errorf("top score = %v, want %v", got[0].Score, tt.wantTop)
			}
		})
	}
}

func TestResolutionRatiosCoverKnownResolutions(t *testing.T) {
	// The sweep must include the native ratio and span both directions, so
	// a client at any supported resolution resolves to some entry.
	hasOne, hasAbove, hasBelow := false, false, false
	for _, r := range resolutionRatios {
		switch {
		case r == 1:
			hasOne = true
		case r > 1:
			hasAbove = true
		default:
			hasBelow = true
		}
	}
	if !hasOne || !hasAbove || !hasBelow {
		t.Fatalf("ratio sweep incomplete: %v", resolutionRatios)
	}
}

func TestDedupSuppressesCluster(t *testing.T) {
	// A cluster of near-identical hits around one object plus a distinct
	// second object. Input is score-sorted descending, as matchIn emits.
	matches := []Match{
		{Bounds: NewBounds(100, 50, 200, 60), Score: 0.95},
		{Bounds: NewBounds(103, 51, 203, 61), Score: 0.90},
		{Bounds: NewBounds(98, 49, 198, 59), Score: 0.85},
		{Bounds: NewBounds(400, 50, 500, 60), Score: 0.80},
	}
	got := Dedup(matches, 10, 2)
	if len(got) != 2 {
		t.Fatalf("Dedup kept %d matches, want 2", len(got))
	}
	if got[0].Score != 0.95 {
		t.Errorf("best-scoring hit should win its cluster, got score %v", got[0].Score)
	}
	if got[1].Bounds.X1 != 400 {
		t.Errorf("distinct object lost, got %+v", got[1].Bounds)
	}
}

func TestDedupVerticalTolerance(t *testing.T) {
	// Same horizontal span but vertically separated beyond the tolerance:
	// two stacked objects, both kept.
	matches := []Match{
		{Bounds: NewBounds(100, 50, 200, 60), Score: 0.95},
		{Bounds: NewBounds(100, 58, 200, 68), Score: 0.90},
	}
	if got := Dedup(matches, 10, 2); len(got) != 2 {
		t.Fatalf("Dedup kept %d matches, want 2", len(got))
	}
	// Within tolerance they collapse.
	matches[1].Bounds = NewBounds(100, 52, 200, 62)
	if got := Dedup(matches, 10, 2); len(got) != 1 {
		t.Fatalf("Dedup kept %d matches, want 1", len(got))
	}
}

func TestDedupIdempotent(t *testing.T) {
	matches := []Match{
		{Bounds: NewBounds(0, 0, 100, 10), Score: 0.9},
		{Bounds: NewBounds(5, 1, 105, 11), Score: 0.8},
		{Bounds: NewBounds(300, 0, 400, 10), Score: 0.7},
		{Bounds: NewBounds(300, 40, 400, 50), Score: 0.6},
	}
	once := Dedup(matches, 10, 2)
	twice := Dedup(once, 10, 2)
	if len(once) != len(twice) {
		t.Fatalf("second Dedup changed length: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("match %d changed: %+v -> %+v", i, once[i], twice[i])
		}
	}
}
