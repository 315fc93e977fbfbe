// Package main - ocr.go
//
// This file implements text recognition over captured frames using
// Tesseract, plus the fuzzy string comparison used to match stylized game
// fonts. OCR calls are slow relative to the rest of the perception
// pipeline, so callers should restrict reads to small regions whenever an
// anchor location is already known.
package main

import (
	"image"
	"strconv"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/otiai10/gosseract"
	"gocv.io/x/gocv"
)

const digits = "0123456789"

// Recognizer reads text out of frame regions. The underlying Tesseract
// client is not safe for concurrent use, so all reads serialize on an
// internal mutex.
type Recognizer struct {
	client *gosseract.Client
	mu     sync.Mutex
}

// NewRecognizer creates a recognizer with an English-trained client.
func NewRecognizer() *Recognizer {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		LogWarn("OCR language setup failed: %v", err)
	}
	return &Recognizer{client: client}
}

// Close releases the Tesseract client.
func (r *Recognizer) Close() error {
	return r.client.Close()
}

// FindText recognizes all text within the region and returns one record
// per word, lowercased, with bounds in full-frame coordinates. Words below
// the confidence floor are discarded at the source.
func (r *Recognizer) FindText(f *Frame, region Region) []Text {
	rect, ok := region.resolve(f.Cols(), f.Rows())
	if !ok {
		return nil
	}
	png, err := encodeRegion(f, rect)
	if err != nil {
		LogWarn("OCR region encode failed: %v", err)
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.client.SetWhitelist(""); err != nil {
		LogWarn("OCR whitelist reset failed: %v", err)
		return nil
	}
	if err := r.client.SetPageSegMode(gosseract.PSM_SPARSE_TEXT); err != nil {
		LogWarn("OCR segmentation mode failed: %v", err)
		return nil
	}
	if err := r.client.SetImageFromBytes(png); err != nil {
		LogWarn("OCR image load failed: %v", err)
		return nil
	}
	boxes, err := r.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		LogWarn("OCR read failed: %v", err)
		return nil
	}

	texts := make([]Text, 0, len(boxes))
	for _, b := range boxes {
		score := b.Confidence / 100
		word := strings.TrimSpace(strings.ToLower(b.Word))
		if score < textScoreFloor || word == "" {
			continue
		}
		texts = append(texts, Text{
			Bounds: NewBounds(
				rect.Min.X+b.Box.Min.X, rect.Min.Y+b.Box.Min.Y,
				rect.Min.X+b.Box.Max.X, rect.Min.Y+b.Box.Max.Y),
			Value: word,
			Score: score,
		})
	}
	return texts
}

// readNumber recognizes a digits-only value from a small frame crop.
// Returns -1 when nothing readable is found.
func (r *Recognizer) readNumber(f *Frame, rect image.Rectangle) int {
	png, err := encodeRegion(f, rect)
	if err != nil {
		return -1
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.client.SetWhitelist(digits); err != nil {
		return -1
	}
	if err := r.client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		return -1
	}
	if err := r.client.SetImageFromBytes(png); err != nil {
		return -1
	}
	raw, err := r.client.Text()
	if err != nil {
		return -1
	}
	raw = strings.TrimSpace(strings.ReplaceAll(raw, " ", ""))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}

// ReadLevel reads a champion level plate. Only values in [1, 18] are
// plausible; anything else yields the -1 unknown sentinel.
func (r *Recognizer) ReadLevel(f *Frame, b Bounds) int {
	rect := b.Rect()
	if rect.Min.X < 0 || rect.Min.Y < 0 || rect.Max.X > f.Cols() || rect.Max.Y > f.Rows() {
		return -1
	}
	n := r.readNumber(f, rect)
	if n < 1 || n > 18 {
		return -1
	}
	return n
}

// ReadGold reads the gold counter from the HUD. The crop is calibrated at
// 1920x1080 and scaled to the frame's resolution. Returns -1 when the
// counter is unreadable.
func (r *Recognizer) ReadGold(f *Frame) int {
	w, h := f.Cols(), f.Rows()
	scale := float64(h) / 1080
	rect := image.Rect(
		int(float64(w)*0.5+165*scale),
		h-int(35*scale),
		int(float64(w)*0.5+220*scale),
		h-int(8*scale),
	)
	return r.readNumber(f, rect)
}

// encodeRegion crops the frame and encodes the crop as PNG for Tesseract.
func encodeRegion(f *Frame, rect image.Rectangle) ([]byte, error) {
	roi := f.mat.Region(rect)
	defer roi.Close()
	buf, err := gocv.IMEncode(gocv.PNGFileExt, roi)
	if err != nil {
		return nil, err
	}
	defer buf.Close()
	b := make([]byte, len(buf.GetBytes()))
	copy(b, buf.GetBytes())
	return b, nil
}

// CloseMatch reports whether two strings are equal up to expected OCR
// misreads. The edit distance budget is a fifth of the shorter string plus
// one; strings shorter than 3 characters must match exactly.
func CloseMatch(s1, s2 string) bool {
	if len(s1) < 3 || len(s2) < 3 {
		return s1 == s2
	}
	budget := min(len(s1), len(s2))/5 + 1
	return levenshtein.ComputeDistance(s1, s2) <= budget
}
