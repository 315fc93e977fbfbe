// Package main - sensors.go
//
// This file defines the sensor surface the decision engine uses for
// targeted reads beyond the entity extractors: text recognition, the gold
// counter, the buff-stack pixel probe, and minimap position. Pulling these
// behind an interface keeps the engine testable without a display or a
// Tesseract install.
package main

// Sensors is the decision engine's view of frame-dependent reads.
type Sensors interface {
	// FindText recognizes text in a frame region.
	FindText(f *Frame, region Region) []Text
	// ReadGold reads the HUD gold counter, -1 when unreadable.
	ReadGold(f *Frame) int
	// HasBuffStacks reports whether the controlled champion's passive is
	// fully stacked.
	HasBuffStacks(f *Frame, c Champion) bool
	// UpdateLocation refreshes the minimap position from the frame.
	UpdateLocation(f *Frame)
	// Location returns the last known normalized map position.
	Location() (MapPoint, bool)
	// RetreatDir returns the lane retreat direction in degrees.
	RetreatDir() float64
	// PushDir returns the lane push direction in degrees.
	PushDir() float64
	// ResetLocation drops cached minimap state.
	ResetLocation()
}

// Buff-stack probe offsets relative to the champion's draw region, and the
// hue window of the fully stacked indicator.
const (
	buffProbeXOff = 84  // draw x1 is bar x1+20; probe sits at bar x1+104
	buffProbeYOff = -45 // draw y1 is bar y1+55; probe sits at bar y1+10
	buffHueMin    = 139
	buffHueMax    = 145
)

// GameSensors is the production sensor set backed by the recognizer and
// the minimap tracker.
type GameSensors struct {
	rec     *Recognizer
	minimap *MinimapTracker
	overlay *DebugOverlay
}

// NewGameSensors creates the production sensors.
func NewGameSensors(rec *Recognizer, minimap *MinimapTracker) *GameSensors {
	return &GameSensors{rec: rec, minimap: minimap}
}

// SetOverlay enables or disables annotated text-frame output.
func (s *GameSensors) SetOverlay(overlay *DebugOverlay) {
	s.overlay = overlay
}

// FindText recognizes text in a frame region.
func (s *GameSensors) FindText(f *Frame, region Region) []Text {
	texts := s.rec.FindText(f, region)
	if s.overlay != nil {
		s.overlay.SaveText(f, texts)
	}
	return texts
}

// ReadGold reads the HUD gold counter.
func (s *GameSensors) ReadGold(f *Frame) int {
	return s.rec.ReadGold(f)
}

// HasBuffStacks probes the fixed stack-indicator pixel next to the
// champion's portrait overlay.
func (s *GameSensors) HasBuffStacks(f *Frame, c Champion) bool {
	px := f.HSVAt(c.Bounds.X1+buffProbeXOff, c.Bounds.Y1+buffProbeYOff)
	return px.H >= buffHueMin && px.H <= buffHueMax
}

// UpdateLocation refreshes the minimap position.
func (s *GameSensors) UpdateLocation(f *Frame) {
	s.minimap.Update(f)
}

// Location returns the last known normalized map position.
func (s *GameSensors) Location() (MapPoint, bool) {
	return s.minimap.Location()
}

// RetreatDir returns the lane retreat direction in degrees.
func (s *GameSensors) RetreatDir() float64 { return s.minimap.RetreatDir() }

// PushDir returns the lane push direction in degrees.
func (s *GameSensors) PushDir() float64 { return s.minimap.PushDir() }

// ResetLocation drops cached minimap state.
func (s *GameSensors) ResetLocation() { s.minimap.Reset() }
