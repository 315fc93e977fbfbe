// Package main - minimap.go
//
// This file implements minimap tracking. The minimap's camera box is the
// largest white blob in the bottom-right corner of the client; its first
// sighting also reveals the minimap's bounds and which side of the map the
// bot spawned on. Positions are normalized to [0, 1] on both axes with
// (0, 0) at the bottom-left of the map.
package main

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// Lane waypoint edge coordinates.
const (
	laneEdgeLow  = 0.03
	laneEdgeHigh = 0.97
)

// MinimapTracker derives the bot's map position from captured frames.
// Minimap bounds are a compute-once cache: they are derived on the first
// successful sighting and reused until Reset, since the minimap never
// moves within one match.
type MinimapTracker struct {
	lane       string
	bounds     Bounds
	found      bool
	onTopRight bool

	loc     MapPoint
	hasLoc  bool
	retreat float64
	push    float64
}

// NewMinimapTracker creates a tracker for the assigned lane.
func NewMinimapTracker(lane string) *MinimapTracker {
	return &MinimapTracker{lane: lane, retreat: -135, push: 45}
}

// Reset drops the cached bounds and location, forcing rediscovery.
func (mt *MinimapTracker) Reset() {
	mt.found = false
	mt.hasLoc = false
	mt.retreat = -135
	mt.push = 45
}

// SetLane changes the assigned lane. Cached directions are restored to
// their defaults until the next position update.
func (mt *MinimapTracker) SetLane(lane string) {
	mt.lane = lane
	mt.retreat = -135
	mt.push = 45
}

// Location returns the last known normalized map position.
func (mt *MinimapTracker) Location() (MapPoint, bool) {
	return mt.loc, mt.hasLoc
}

// RetreatDir returns the current retreat direction in degrees.
func (mt *MinimapTracker) RetreatDir() float64 { return mt.retreat }

// PushDir returns the current push direction in degrees.
func (mt *MinimapTracker) PushDir() float64 { return mt.push }

// OnTopRight reports which side of the map the bot spawned on.
func (mt *MinimapTracker) OnTopRight() bool { return mt.onTopRight }

// ClickPoint converts a normalized map position to client coordinates on
// the minimap. Returns false until the minimap has been located.
func (mt *MinimapTracker) ClickPoint(p MapPoint) (Point, bool) {
	if !mt.found {
		return Point{}, false
	}
	return Point{
		X: p.X*float64(mt.bounds.Width()) + float64(mt.bounds.X1),
		Y: (1-p.Y)*float64(mt.bounds.Height()) + float64(mt.bounds.Y1),
	}, true
}

// Update locates the camera box in the frame and refreshes the tracked
// position and movement directions. A frame without a visible camera box
// leaves the previous state in place.
func (mt *MinimapTracker) Update(f *Frame) {
	w, h := f.Cols(), f.Rows()
	search := mt.bounds
	if !mt.found {
		search = NewBounds(w-500, h-500, w, h)
	}

	cx, cy, left, top, ok := largestWhiteBlob(f, search)
	if !ok {
		return
	}

	if !mt.found {
		// First sighting doubles as minimap calibration. The camera box
		// hugs the map edge nearest the spawn, which tells us the side.
		sw := float64(search.Width())
		sh := float64(search.Height())
		var size, rightMargin, botMargin float64
		if left < top {
			botMargin = sh - cy
			rightMargin = botMargin
			size = sw - cx - rightMargin
			mt.onTopRight = false
		} else {
			rightMargin = sw - cx
			botMargin = rightMargin
			size = sh - cy - botMargin
			mt.onTopRight = true
		}
		mt.bounds = NewBounds(
			w-int(size+rightMargin)-minimapMargin,
			h-int(size+botMargin)-minimapMargin,
			w-int(rightMargin)+minimapMargin,
			h-int(botMargin)+minimapMargin,
		)
		mt.found = true
		LogInfo("Minimap located at %v, playing on the %s side",
			mt.bounds, map[bool]string{false: "bottom-left", true: "top-right"}[mt.onTopRight])
		mt.Update(f)
		return
	}

	nx := (cx - minimapMargin) / float64(mt.bounds.Width()-minimapMargin*2)
	ny := (cy - minimapMargin) / float64(mt.bounds.Height()-minimapMargin*2)
	mt.loc = MapPoint{
		X: math.Min(1, math.Max(0, nx)),
		Y: math.Min(1, math.Max(0, 1-ny)),
	}
	mt.hasLoc = true
	mt.updateDirections()
}

// updateDirections picks the nearest lane waypoint and points the retreat
// and push directions at its neighbors.
func (mt *MinimapTracker) updateDirections() {
	points := lanePoints(mt.lane)
	if mt.onTopRight {
		rev := make([]MapPoint, len(points))
		for i, p := range points {
			rev[len(points)-1-i] = p
		}
		points = rev
	}
	sum := mt.loc.X + mt.loc.Y
	best := 1
	for i, p := range points {
		if math.Abs(p.X+p.Y-sum) < math.Abs(points[best].X+points[best].Y-sum) {
			best = i
		}
	}
	// Sentinel endpoints are never nearest, so both neighbors exist.
	prev, next := points[best-1], points[best+1]
	mt.retreat = math.Atan2(prev.Y-mt.loc.Y, prev.X-mt.loc.X) * 180 / math.Pi
	mt.push = math.Atan2(next.Y-mt.loc.Y, next.X-mt.loc.X) * 180 / math.Pi
}

// DistanceFromLane returns how far a normalized position is from the
// nearest waypoint of the assigned lane.
func (mt *MinimapTracker) DistanceFromLane(p MapPoint) float64 {
	points := lanePoints(mt.lane)
	best := math.Inf(1)
	for _, lp := range points[1 : len(points)-1] {
		best = math.Min(best, math.Hypot(p.X-lp.X, p.Y-lp.Y))
	}
	return best
}

// lanePoints returns the waypoint chain for a lane, bracketed by far
// off-map sentinels so every real waypoint has two neighbors.
func lanePoints(lane string) []MapPoint {
	lo, hi := laneEdgeLow, laneEdgeHigh
	switch lane {
	case "top":
		pts := []MapPoint{{X: lo, Y: -99}}
		up := linspace(lo, hi, 6)
		for _, y := range up[:len(up)-1] {
			pts = append(pts, MapPoint{X: lo, Y: y})
		}
		pts = append(pts, MapPoint{X: lo + 0.04, Y: hi - 0.04})
		for _, x := range up[1:] {
			pts = append(pts, MapPoint{X: x, Y: hi})
		}
		return append(pts, MapPoint{X: 99, Y: hi})
	case "bot":
		pts := []MapPoint{{X: -99, Y: lo}}
		up := linspace(lo, hi, 6)
		for _, x := range up[:len(up)-1] {
			pts = append(pts, MapPoint{X: x, Y: lo})
		}
		pts = append(pts, MapPoint{X: hi - 0.04, Y: lo + 0.04})
		for _, y := range up[1:] {
			pts = append(pts, MapPoint{X: hi, Y: y})
		}
		return append(pts, MapPoint{X: hi, Y: 99})
	default: // mid
		pts := []MapPoint{{X: -99, Y: -99}}
		for _, v := range linspace(lo, hi, 9) {
			pts = append(pts, MapPoint{X: v, Y: v})
		}
		return append(pts, MapPoint{X: 99, Y: 99})
	}
}

// linspace returns n evenly spaced values from a to b inclusive.
func linspace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + step*float64(i)
	}
	return out
}

// largestWhiteBlob finds the biggest near-white contour in a frame region
// and returns its center and extremes in region-relative pixels.
func largestWhiteBlob(f *Frame, region Bounds) (cx, cy, left, top float64, ok bool) {
	rect := region.Rect()
	if rect.Min.X < 0 || rect.Min.Y < 0 || rect.Max.X > f.Cols() || rect.Max.Y > f.Rows() {
		return 0, 0, 0, 0, false
	}
	roi := f.mat.Region(rect)
	defer roi.Close()

	mask := gocv.NewMat()
	defer mask.Close()
	lower := gocv.NewScalar(220, 220, 220, 0)
	upper := gocv.NewScalar(255, 255, 255, 0)
	gocv.InRangeWithScalar(roi, lower, upper, &mask)

	contours := gocv.FindContours(mask, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()
	if contours.Size() == 0 {
		return 0, 0, 0, 0, false
	}
	bestArea := -1.0
	var bestRect image.Rectangle
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		if area := gocv.ContourArea(c); area > bestArea {
			bestArea = area
			bestRect = gocv.BoundingRect(c)
		}
	}
	left = float64(bestRect.Min.X)
	top = float64(bestRect.Min.Y)
	cx = float64(bestRect.Min.X+bestRect.Max.X) / 2
	cy = float64(bestRect.Min.Y+bestRect.Max.Y) / 2
	return cx, cy, left, top, true
}
