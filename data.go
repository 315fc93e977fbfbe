// Package main - data.go
//
// This file defines core data structures used throughout the bot application.
// It provides geometric primitives, detected-entity records, configuration,
// and runtime statistics.
//
// Major Data Categories:
//
// 1. Geometric Types:
//    - Point: 2D screen coordinates with distance calculations
//    - Bounds: Axis-aligned boxes with center/containment operations
//    - MapPoint: Normalized [0,1] minimap coordinates
//
// 2. Detected Entities:
//    - Unit: Common box/allegiance/health payload
//    - Minion, Champion, Structure: The three entity variants
//    - Match: Raw template-matching hit (box + correlation score)
//    - Text: OCR result (box + string + confidence)
//
// 3. Configuration:
//    - Config: All bot settings (window, lane, mode, timing, color ranges)
//    - PersistentData: Container for config (saved to data.json)
//
// 4. Statistics:
//    - Statistics: Cycle counters, action counters, uptime
//
// 5. Screen Information:
//    - ScreenInfo: Resolution and coordinate scaling (base 1920x1080)
//
// Thread Safety:
// Config uses RWMutex for the fields the tray mutates while the decision
// loop is running. All other types are value types and should be copied
// when shared.
package main

import (
	"image"
	"math"
	"sync"
	"time"
)

// Point represents a 2D coordinate in screen space.
type Point struct {
	X float64
	Y float64
}

// Distance calculates Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// MapPoint is a normalized minimap coordinate; both axes are in [0, 1]
// with (0, 0) at the bottom-left corner of the map.
type MapPoint struct {
	X float64
	Y float64
}

// Bounds represents a rectangular pixel area as two corners.
type Bounds struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

// NewBounds creates a new Bounds.
func NewBounds(x1, y1, x2, y2 int) Bounds {
	return Bounds{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Center returns the center point of the bounds.
func (b Bounds) Center() Point {
	return Point{
		X: float64(b.X1+b.X2) / 2,
		Y: float64(b.Y1+b.Y2) / 2,
	}
}

// Width returns the width of the bounds.
func (b Bounds) Width() int {
	return b.X2 - b.X1
}

// Height returns the height of the bounds.
func (b Bounds) Height() int {
	return b.Y2 - b.Y1
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= float64(b.X1) && p.X <= float64(b.X2) &&
		p.Y >= float64(b.Y1) && p.Y <= float64(b.Y2)
}

// Rect converts the bounds to an image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// Positioned is implemented by anything with an on-screen center.
// The targeting cost model and range checks only need this view.
type Positioned interface {
	Center() Point
}

// Unit is the payload shared by every detected entity: where it is drawn,
// which side it belongs to, and how much health remains.
//
// Entities carry no identity. They are recomputed from scratch every
// perception cycle and matched across frames only by proximity heuristics.
type Unit struct {
	Bounds Bounds
	Allied bool
	Health float64 // Fill fraction in [0, 1]
}

// Center returns the center of the unit's draw region.
func (u Unit) Center() Point {
	return u.Bounds.Center()
}

// Minion is a detected lane minion.
type Minion struct {
	Unit
}

// Champion is a detected player-controlled unit.
//
// Level is -1 when the level plate could not be read; that is a valid
// "unknown" sentinel, not an error.
type Champion struct {
	Unit
	Controllable bool
	Mana         float64
	Level        int
}

// StructureKind classifies a structure by size class.
type StructureKind int

const (
	StructureSmall StructureKind = iota
	StructureBig
)

// String returns the string representation of the kind.
func (k StructureKind) String() string {
	switch k {
	case StructureSmall:
		return "small"
	case StructureBig:
		return "big"
	default:
		return "unknown"
	}
}

// Structure is a detected turret or inhibitor class objective.
type Structure struct {
	Unit
	Kind StructureKind
}

// Match is a raw template-matching hit. Intermediate artifact consumed by
// the entity extractors, not exposed further.
type Match struct {
	Bounds Bounds
	Score  float64 // Normalized correlation in [0, 1]
}

// Text is an OCR result for one recognized word or line.
type Text struct {
	Bounds Bounds
	Value  string
	Score  float64 // Recognizer confidence in [0, 1]
}

// Center returns the center of the text box.
func (t Text) Center() Point {
	return t.Bounds.Center()
}

// HSVRange is an inclusive color window in OpenCV HSV space
// (H in [0, 179], S and V in [0, 255]).
type HSVRange struct {
	MinH, MinS, MinV int
	MaxH, MaxS, MaxV int
}

// HSVColor is a single pixel in OpenCV HSV space.
type HSVColor struct {
	H, S, V uint8
}

// In checks whether the color falls inside the range.
func (r HSVRange) In(c HSVColor) bool {
	return int(c.H) >= r.MinH && int(c.H) <= r.MaxH &&
		int(c.S) >= r.MinS && int(c.S) <= r.MaxS &&
		int(c.V) >= r.MinV && int(c.V) <= r.MaxV
}

// Game constants. Distances are in screen pixels at the base resolution,
// angles in degrees, durations in seconds.
const (
	// Range of the point-and-click ability and the cone.
	basicRange = 350.0
	// Range of the flash engage combo.
	allInRange = 450.0
	// Structure hostility radius.
	turretRange = 650.0
	// Distance at which outnumbered fights are refused.
	riskRange = 600.0
	// Horizontal screen stretch of the isometric camera.
	aspectRatio = 1.4
	// Margin around the detected minimap box.
	minimapMargin = 20
	// Cap on raw template matches per query.
	maxMatches = 2000
	// Default correlation threshold for template matches.
	matchThreshold = 0.75
	// Confidence floor below which OCR output is discarded.
	textScoreFloor = 0.4
)

// Ability indices. The key bindings live in Config.
const (
	abilityQ = iota // Point-and-click nuke
	abilityW        // Cone
	abilityE        // Shield
	abilityR        // Ultimate
	abilityD        // Flash
	abilityF        // Heal
	abilityCount
)

// abilityKeys maps ability indices to key bindings.
var abilityKeys = [abilityCount]string{"q", "w", "e", "r", "d", "f"}

// abilityCooldowns lists cooldown seconds per rank. Single-entry rows are
// rank-independent; multi-entry rows are indexed by current rank.
var abilityCooldowns = [abilityCount][]float64{
	{0.5},
	{8},
	{0, 14, 13, 12, 11, 10},
	{0, 120, 100, 80},
	{300},
	{240},
}

// levelOrder is the ability leveled at each champion level, as an index
// into the ability table.
var levelOrder = [18]int{0, 1, 2, 0, 0, 3, 0, 1, 0, 1, 3, 1, 1, 2, 2, 3, 2, 2}

// lastHitThreshold is the health fraction at which a minion can be safely
// finished with the nuke, indexed by the nuke's rank.
var lastHitThreshold = [6]float64{0.1, 0.2, 0.27, 0.32, 0.37, 0.45}

// cooldownFor returns the cooldown duration of an ability at a rank.
func cooldownFor(ability, rank int) float64 {
	row := abilityCooldowns[ability]
	if len(row) == 1 {
		return row[0]
	}
	if rank < 0 {
		rank = 0
	}
	if rank >= len(row) {
		rank = len(row) - 1
	}
	return row[rank]
}

// Config holds bot configuration.
type Config struct {
	// Window and capture settings
	WindowTitle     string // Game client window title
	CaptureInterval int    // Decision cycle cadence in milliseconds
	CaptureScale    float64

	// Perception settings
	PerceptionBudget int // Per-cycle extractor wait budget in milliseconds

	Mode   string // "Lane", "Skirmish" or "Stop"
	Lane   string // "mid", "top" or "bot"
	DryRun bool   // Log actions instead of injecting them

	// Entity color calibration (HSV)
	MinionEdge     HSVRange
	MinionAllyFill HSVRange
	MinionFoeFill  HSVRange

	ChampionEdge     HSVRange
	ChampionSelfFill HSVRange
	ChampionAllyFill HSVRange
	ChampionFoeFill  HSVRange
	ChampionManaFill HSVRange

	StructureEdge     HSVRange
	StructureAllyFill HSVRange
	StructureFoeFill  HSVRange

	// Shop settings
	ShopAnchor string // Item page title text that marks an open shop

	mu sync.RWMutex
}

// NewConfig creates default configuration. Color windows are calibrated
// against the 1920x1080 client.
func NewConfig() *Config {
	return &Config{
		WindowTitle:      "League of Legends (TM) Client",
		CaptureInterval:  250,
		CaptureScale:     1.0,
		PerceptionBudget: 800,
		Mode:             "Lane",
		Lane:             "mid",
		DryRun:           false,

		MinionEdge:     HSVRange{MinH: 80, MinS: 0, MinV: 10, MaxH: 140, MaxS: 255, MaxV: 23},
		MinionAllyFill: HSVRange{MinH: 101, MinS: 156, MinV: 117, MaxH: 105, MaxS: 163, MaxV: 212},
		MinionFoeFill:  HSVRange{MinH: 0, MinS: 135, MinV: 118, MaxH: 4, MaxS: 143, MaxV: 212},

		ChampionEdge:     HSVRange{MinH: 0, MinS: 0, MinV: 62, MaxH: 179, MaxS: 33, MaxV: 121},
		ChampionSelfFill: HSVRange{MinH: 53, MinS: 190, MinV: 131, MaxH: 60, MaxS: 200, MaxV: 149},
		ChampionAllyFill: HSVRange{MinH: 97, MinS: 219, MinV: 192, MaxH: 103, MaxS: 227, MaxV: 215},
		ChampionFoeFill:  HSVRange{MinH: 0, MinS: 209, MinV: 143, MaxH: 5, MaxS: 217, MaxV: 152},
		ChampionManaFill: HSVRange{MinH: 93, MinS: 155, MinV: 208, MaxH: 104, MaxS: 195, MaxV: 225},

		StructureEdge:     HSVRange{MinH: 0, MinS: 0, MinV: 40, MaxH: 179, MaxS: 40, MaxV: 110},
		StructureAllyFill: HSVRange{MinH: 97, MinS: 219, MinV: 192, MaxH: 103, MaxS: 227, MaxV: 215},
		StructureFoeFill:  HSVRange{MinH: 0, MinS: 209, MinV: 143, MaxH: 5, MaxS: 217, MaxV: 152},

		ShopAnchor: "optimal",
	}
}

// GetMode safely returns the current mode.
func (c *Config) GetMode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Mode
}

// SetMode safely sets the mode.
func (c *Config) SetMode(mode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Mode = mode
}

// GetDryRun safely returns the dry-run flag.
func (c *Config) GetDryRun() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DryRun
}

// SetDryRun safely sets the dry-run flag.
func (c *Config) SetDryRun(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DryRun = v
}

// PersistentData holds all data that should be saved.
type PersistentData struct {
	Config *Config `json:"config"`
}

// NewPersistentData creates a new persistent data structure.
func NewPersistentData() *PersistentData {
	return &PersistentData{
		Config: NewConfig(),
	}
}

// Statistics holds runtime statistics for the decision loop.
type Statistics struct {
	StartTime     time.Time
	Cycles        int
	SkippedCycles int
	ActionsIssued int
	DroppedInputs int
	mu            sync.RWMutex
}

// NewStatistics creates new statistics.
func NewStatistics() *Statistics {
	return &Statistics{
		StartTime: time.Now(),
	}
}

// AddCycle records a completed decision cycle.
func (s *Statistics) AddCycle(skipped bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cycles++
	if skipped {
		s.SkippedCycles++
	}
}

// AddAction records an issued high-level action.
func (s *Statistics) AddAction() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ActionsIssued++
}

// AddDroppedInput records an input command discarded by queue overflow.
func (s *Statistics) AddDroppedInput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DroppedInputs++
}

// GetStats returns formatted statistics.
func (s *Statistics) GetStats() (cycles, skipped, actions int, uptime string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Cycles, s.SkippedCycles, s.ActionsIssued, FormatDuration(time.Since(s.StartTime))
}

// FormatDuration formats a duration as h:mm:ss.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	sec := d / time.Second
	return formatHMS(int(h), int(m), int(sec))
}

func formatHMS(h, m, s int) string {
	return itoa2(h) + ":" + itoa2(m) + ":" + itoa2(s)
}

func itoa2(n int) string {
	if n < 10 {
		return "0" + string(rune('0'+n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}

// ScreenInfo holds client resolution information.
type ScreenInfo struct {
	Width  int
	Height int
	Bounds image.Rectangle
}

// NewScreenInfo creates screen info from a rectangle.
func NewScreenInfo(bounds image.Rectangle) *ScreenInfo {
	return &ScreenInfo{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Bounds: bounds,
	}
}

// Scale converts coordinates calibrated at 1920x1080 to this resolution.
func (si *ScreenInfo) Scale(baseX, baseY float64) (float64, float64) {
	return baseX * float64(si.Width) / 1920.0, baseY * float64(si.Height) / 1080.0
}

// Center returns the center point of the screen.
func (si *ScreenInfo) Center() Point {
	return Point{X: float64(si.Width) / 2, Y: float64(si.Height) / 2}
}
