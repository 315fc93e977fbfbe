// Package main - capture.go
//
// This file implements client window tracking, screen capture, and the
// reference template store used by the matcher.
package main

import (
	"fmt"
	"image"
	"image/draw"
	"path/filepath"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"
	"github.com/nfnt/resize"
	"github.com/vcaesar/imgo"
	"gocv.io/x/gocv"
)

// WindowTracker locates the game client window and captures its contents.
// The window rect is cached after the first lookup; ResetBounds forces a
// fresh lookup on the next capture.
type WindowTracker struct {
	config *Config
	screen *ScreenInfo
}

// NewWindowTracker creates a tracker for the configured window title.
func NewWindowTracker(cfg *Config) *WindowTracker {
	return &WindowTracker{config: cfg}
}

// Screen returns the cached client screen info, locating the window first
// if needed.
func (wt *WindowTracker) Screen() (*ScreenInfo, error) {
	if wt.screen != nil {
		return wt.screen, nil
	}
	ids, err := robotgo.FindIds(wt.config.WindowTitle)
	if err != nil || len(ids) == 0 {
		// Fall back to the primary display when the window manager does
		// not expose the client by title (borderless fullscreen).
		n := screenshot.NumActiveDisplays()
		if n == 0 {
			return nil, fmt.Errorf("game window %q not found and no displays available", wt.config.WindowTitle)
		}
		wt.screen = NewScreenInfo(screenshot.GetDisplayBounds(0))
		LogWarn("Window %q not found, capturing primary display %dx%d",
			wt.config.WindowTitle, wt.screen.Width, wt.screen.Height)
		return wt.screen, nil
	}
	x, y, w, h := robotgo.GetBounds(ids[0])
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("game window %q has empty bounds", wt.config.WindowTitle)
	}
	wt.screen = NewScreenInfo(image.Rect(x, y, x+w, y+h))
	LogInfo("Tracking window %q at %v", wt.config.WindowTitle, wt.screen.Bounds)
	return wt.screen, nil
}

// ResetBounds drops the cached window rect.
func (wt *WindowTracker) ResetBounds() {
	wt.screen = nil
}

// Capture grabs one screenshot of the client area.
func (wt *WindowTracker) Capture() (*image.RGBA, error) {
	si, err := wt.Screen()
	if err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureRect(si.Bounds)
	if err != nil {
		// The window may have moved or closed; re-locate next cycle.
		wt.ResetBounds()
		return nil, fmt.Errorf("capture failed: %w", err)
	}
	return img, nil
}

// TemplateStore loads and caches the reference health-bar templates.
// Templates are calibrated at 1920x1080 and pre-scaled once to the
// configured capture scale.
type TemplateStore struct {
	minion    gocv.Mat
	champion  gocv.Mat
	smallObj  gocv.Mat
	bigObj    gocv.Mat
	shopTitle gocv.Mat
}

// NewTemplateStore loads all templates from the given directory.
func NewTemplateStore(dir string, scale float64) (*TemplateStore, error) {
	ts := &TemplateStore{}
	var err error
	load := func(name string) gocv.Mat {
		if err != nil {
			return gocv.Mat{}
		}
		var m gocv.Mat
		m, err = loadTemplate(filepath.Join(dir, name), scale)
		return m
	}
	ts.minion = load("minion.png")
	ts.champion = load("champion.png")
	ts.smallObj = load("structure_small.png")
	ts.bigObj = load("structure_big.png")
	if err != nil {
		ts.Close()
		return nil, err
	}
	return ts, nil
}

// Close releases all template mats.
func (ts *TemplateStore) Close() {
	for _, m := range []gocv.Mat{ts.minion, ts.champion, ts.smallObj, ts.bigObj} {
		if !m.Empty() {
			m.Close()
		}
	}
}

// Minion returns the minion health-bar template.
func (ts *TemplateStore) Minion() gocv.Mat { return ts.minion }

// Champion returns the champion health-bar template.
func (ts *TemplateStore) Champion() gocv.Mat { return ts.champion }

// Structure returns the structure health-bar template for a size class.
func (ts *TemplateStore) Structure(kind StructureKind) gocv.Mat {
	if kind == StructureBig {
		return ts.bigObj
	}
	return ts.smallObj
}

// loadTemplate reads one template image and scales it to the capture scale.
func loadTemplate(path string, scale float64) (gocv.Mat, error) {
	img, err := imgo.Read(path)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("loading template %s: %w", path, err)
	}
	if scale != 1.0 {
		w := uint(float64(img.Bounds().Dx()) * scale)
		h := uint(float64(img.Bounds().Dy()) * scale)
		img = resize.Resize(w, h, img, resize.Bicubic)
	}
	mat, err := gocv.ImageToMatRGB(toRGBA(img))
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("converting template %s: %w", path, err)
	}
	return mat, nil
}

// toRGBA normalizes any decoded image to RGBA.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}
