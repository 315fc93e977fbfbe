// Package main - matcher.go
//
// This file implements template matching against captured frames using
// OpenCV normalized cross correlation, plus the outline (HSV-binarized) and
// scaled variants and the greedy overlap deduplication used by the entity
// extractors.
package main

import (
	"image"
	"math"
	"sort"

	"gocv.io/x/gocv"
)

// Region restricts a match query to a sub-rectangle of the frame.
// Negative values are offsets from the opposite edge, so
// {MinX: 400, MaxX: -400} means "400px in from both sides".
type Region struct {
	MinX int
	MinY int
	MaxX int
	MaxY int
}

// fullFrame is the zero Region, which resolves to the whole frame.
var fullFrame = Region{}

// resolve converts a Region into absolute pixel bounds for a frame size.
func (r Region) resolve(cols, rows int) (image.Rectangle, bool) {
	x1, y1, x2, y2 := r.MinX, r.MinY, r.MaxX, r.MaxY
	if x1 < 0 {
		x1 = cols + x1
	}
	if y1 < 0 {
		y1 = rows + y1
	}
	if x2 <= 0 {
		x2 = cols + x2
	}
	if y2 <= 0 {
		y2 = rows + y2
	}
	x1 = max(x1, 0)
	y1 = max(y1, 0)
	x2 = min(x2, cols)
	y2 = min(y2, rows)
	if x1 >= x2 || y1 >= y2 {
		return image.Rectangle{}, false
	}
	return image.Rect(x1, y1, x2, y2), true
}

// Frame wraps one captured client image for the duration of a perception
// cycle. The BGR mat and its HSV conversion are computed once and shared by
// every matcher and extractor query on that cycle.
//
// Frame is read-only after construction, so concurrent extractor goroutines
// may query it without locking. Close must be called exactly once, after
// the cycle's extractors have all returned.
type Frame struct {
	mat gocv.Mat
	hsv gocv.Mat
}

// NewFrame converts a captured RGBA image into a reusable frame.
func NewFrame(img *image.RGBA) (*Frame, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, err
	}
	hsv := gocv.NewMat()
	gocv.CvtColor(mat, &hsv, gocv.ColorBGRToHSV)
	return &Frame{mat: mat, hsv: hsv}, nil
}

// Close releases the underlying mats.
func (f *Frame) Close() {
	f.mat.Close()
	f.hsv.Close()
}

// Cols returns the frame width in pixels.
func (f *Frame) Cols() int { return f.mat.Cols() }

// Rows returns the frame height in pixels.
func (f *Frame) Rows() int { return f.mat.Rows() }

// HSVAt reads one pixel of the HSV conversion. Out-of-bounds coordinates
// return the zero color.
func (f *Frame) HSVAt(x, y int) HSVColor {
	if x < 0 || y < 0 || x >= f.hsv.Cols() || y >= f.hsv.Rows() {
		return HSVColor{}
	}
	v := f.hsv.GetVecbAt(y, x)
	return HSVColor{H: v[0], S: v[1], V: v[2]}
}

// FindExact runs normalized cross correlation of the template over the
// region and returns every location scoring at or above the threshold,
// sorted by descending score and capped at maxMatches. Bounds are in
// full-frame coordinates.
func (f *Frame) FindExact(tmpl gocv.Mat, threshold float64, region Region) []Match {
	rect, ok := region.resolve(f.mat.Cols(), f.mat.Rows())
	if !ok {
		return nil
	}
	roi := f.mat.Region(rect)
	defer roi.Close()
	return matchIn(roi, tmpl, threshold, rect.Min)
}

// FindOutline binarizes both the region and the template with the same HSV
// window, then cross-correlates the binary masks. This matches shapes drawn
// in a known color family (health bar outlines) while ignoring whatever the
// bar is drawn over.
func (f *Frame) FindOutline(tmpl gocv.Mat, edge HSVRange, threshold float64, region Region) []Match {
	rect, ok := region.resolve(f.hsv.Cols(), f.hsv.Rows())
	if !ok {
		return nil
	}
	roi := f.hsv.Region(rect)
	defer roi.Close()

	frameMask := gocv.NewMat()
	defer frameMask.Close()
	inRange(roi, edge, &frameMask)

	tmplHSV := gocv.NewMat()
	defer tmplHSV.Close()
	gocv.CvtColor(tmpl, &tmplHSV, gocv.ColorBGRToHSV)
	tmplMask := gocv.NewMat()
	defer tmplMask.Close()
	inRange(tmplHSV, edge, &tmplMask)

	return matchIn(frameMask, tmplMask, threshold, rect.Min)
}

// FindScaled resizes the template by the given factor before matching.
// Used when the client runs at a resolution other than the one the
// templates were captured at.
func (f *Frame) FindScaled(tmpl gocv.Mat, scale float64, threshold float64, region Region) []Match {
	if scale == 1.0 {
		return f.FindExact(tmpl, threshold, region)
	}
	scaled := gocv.NewMat()
	defer scaled.Close()
	w := int(float64(tmpl.Cols()) * scale)
	h := int(float64(tmpl.Rows()) * scale)
	if w < 1 || h < 1 {
		return nil
	}
	gocv.Resize(tmpl, &scaled, image.Pt(w, h), 0, 0, gocv.InterpolationArea)

	rect, ok := region.resolve(f.mat.Cols(), f.mat.Rows())
	if !ok {
		return nil
	}
	roi := f.mat.Region(rect)
	defer roi.Close()
	return matchIn(roi, scaled, threshold, rect.Min)
}

// resolutionRatios are the template scale factors for the client
// resolutions the game renders at, relative to the 1920x1080 capture the
// templates were taken from.
var resolutionRatios = []float64{
	2560.0 / 1920,
	1,
	1600.0 / 1920,
	1280.0 / 1920,
	1024.0 / 1920,
}

// FindBestScaled tries every known resolution ratio and returns the match
// set of the single best-scoring one. Used to detect a client running at a
// resolution other than the one the templates were captured at. Ratios
// above 1 downscale the frame instead of upscaling the template, with hit
// bounds mapped back to frame coordinates.
func (f *Frame) FindBestScaled(tmpl gocv.Mat, threshold float64, region Region) []Match {
	sets := make([][]Match, 0, len(resolutionRatios))
	for _, ratio := range resolutionRatios {
		if ratio <= 1 {
			sets = append(sets, f.FindScaled(tmpl, ratio, threshold, region))
		} else {
			sets = append(sets, f.findDownscaled(tmpl, ratio, threshold, region))
		}
	}
	return bestMatchSet(sets)
}

// findDownscaled shrinks the region by 1/ratio, matches the template at its
// native size, and rescales hit bounds back into frame coordinates.
func (f *Frame) findDownscaled(tmpl gocv.Mat, ratio float64, threshold float64, region Region) []Match {
	rect, ok := region.resolve(f.mat.Cols(), f.mat.Rows())
	if !ok {
		return nil
	}
	w := int(float64(rect.Dx()) / ratio)
	h := int(float64(rect.Dy()) / ratio)
	if w < 1 || h < 1 {
		return nil
	}
	roi := f.mat.Region(rect)
	defer roi.Close()
	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(roi, &small, image.Pt(w, h), 0, 0, gocv.InterpolationArea)

	matches := matchIn(small, tmpl, threshold, image.Point{})
	for i := range matches {
		b := &matches[i].Bounds
		b.X1 = rect.Min.X + int(math.Round(float64(b.X1)*ratio))
		b.Y1 = rect.Min.Y + int(math.Round(float64(b.Y1)*ratio))
		b.X2 = rect.Min.X + int(math.Round(float64(b.X2)*ratio))
		b.Y2 = rect.Min.Y + int(math.Round(float64(b.Y2)*ratio))
	}
	return matches
}

// bestMatchSet picks the set whose top score is highest. Sets are
// score-sorted descending, so element 0 is each set's best. Empty sets are
// skipped and ties keep the earlier set.
func bestMatchSet(sets [][]Match) []Match {
	var best []Match
	for _, set := range sets {
		if len(set) == 0 {
			continue
		}
		if best == nil || set[0].Score > best[0].Score {
			best = set
		}
	}
	return best
}

// inRange applies an HSV window to a mat, producing a binary mask.
func inRange(src gocv.Mat, r HSVRange, dst *gocv.Mat) {
	lower := gocv.NewScalar(float64(r.MinH), float64(r.MinS), float64(r.MinV), 0)
	upper := gocv.NewScalar(float64(r.MaxH), float64(r.MaxS), float64(r.MaxV), 0)
	gocv.InRangeWithScalar(src, lower, upper, dst)
}

// matchIn correlates a template over a source mat and collects scored hits.
// The offset shifts hit bounds back into full-frame coordinates.
func matchIn(src, tmpl gocv.Mat, threshold float64, offset image.Point) []Match {
	if tmpl.Cols() > src.Cols() || tmpl.Rows() > src.Rows() {
		return nil
	}
	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.MatchTemplate(src, tmpl, &result, gocv.TmCcoeffNormed, mask)

	tw, th := tmpl.Cols(), tmpl.Rows()
	matches := make([]Match, 0, 32)
	for y := 0; y < result.Rows(); y++ {
		for x := 0; x < result.Cols(); x++ {
			score := float64(result.GetFloatAt(y, x))
			if score < threshold {
				continue
			}
			matches = append(matches, Match{
				Bounds: NewBounds(offset.X+x, offset.Y+y, offset.X+x+tw, offset.Y+y+th),
				Score:  score,
			})
			if len(matches) >= maxMatches {
				y = result.Rows()
				break
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches
}

// Dedup collapses clustered hits on the same on-screen object. Input must
// be score-sorted descending. Two hits count as the same object when their
// boxes, shrunk by xShrink on each side, still overlap horizontally and
// their top and bottom edges lie within yTol of each other. The first
// (best-scoring) hit of each cluster wins.
//
// Calling Dedup on its own output returns it unchanged.
func Dedup(matches []Match, xShrink, yTol int) []Match {
	kept := make([]Match, 0, len(matches))
	for _, m := range matches {
		dup := false
		for _, k := range kept {
			if m.Bounds.X1+xShrink < k.Bounds.X2-xShrink &&
				m.Bounds.X2-xShrink > k.Bounds.X1+xShrink &&
				abs(m.Bounds.Y1-k.Bounds.Y1) <= yTol &&
				abs(m.Bounds.Y2-k.Bounds.Y2) <= yTol {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, m)
		}
	}
	return kept
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
