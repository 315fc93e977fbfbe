// Package main - vision.go
//
// This file implements the entity extractors. Each extractor locates health
// bars by outline-matching a reference template, deduplicates the hits,
// reads the fill boundary under the bar to get allegiance and health, then
// derives the entity's on-screen draw region from calibrated pixel offsets.
//
// All pixel offsets are calibrated against the 1920x1080 client.
package main

// Allegiance families returned by the fill-boundary scan.
const (
	fillNone = iota - 1
	fillSelf
	fillAlly
	fillFoe
)

// Extractor finds game entities in a frame. It is stateless apart from the
// template store and the level reader, so one Extractor may serve
// concurrent extract calls on the same frame.
type Extractor struct {
	config    *Config
	templates *TemplateStore
	levels    LevelReader
}

// LevelReader reads a champion level number from a small frame crop.
// Implemented by the OCR recognizer; stubbed in tests.
type LevelReader interface {
	ReadLevel(f *Frame, b Bounds) int
}

// NewExtractor creates an extractor.
func NewExtractor(cfg *Config, ts *TemplateStore, levels LevelReader) *Extractor {
	return &Extractor{config: cfg, templates: ts, levels: levels}
}

// fillBoundary binary-searches a pixel row for the rightmost pixel matching
// any of the given color families. The row is the strip under a health bar:
// the filled portion is contiguous from the left, so the rightmost matching
// pixel marks the fill boundary.
//
// Returns the fill fraction, the family of the last matching pixel seen,
// and whether any family pixel was seen at all. No family pixel anywhere
// means the candidate box is not a real health bar.
func fillBoundary(row []HSVColor, families []HSVRange) (float64, int, bool) {
	width := len(row) - 1
	if width < 1 {
		return 0, fillNone, false
	}
	low, high := 0, width
	family := fillNone
	for low < high {
		mid := (low + high + 1) / 2
		hit := fillNone
		for fi, r := range families {
			if r.In(row[mid]) {
				hit = fi
				break
			}
		}
		if hit != fillNone {
			family = hit
			low = mid
		} else {
			high = mid - 1
		}
	}
	return float64(low) / float64(width), family, family != fillNone
}

// hsvRow copies a horizontal pixel strip from the frame's HSV plane.
// Index i of the result is the pixel at (x+i, y).
func hsvRow(f *Frame, x, y, width int) []HSVColor {
	row := make([]HSVColor, width+1)
	for i := range row {
		row[i] = f.HSVAt(x+i, y)
	}
	return row
}

// FindMinions finds all lane minions in the frame. It cannot tell minion
// types apart; every minion is the same record.
func (e *Extractor) FindMinions(f *Frame) []Minion {
	tmpl := e.templates.Minion()
	matches := f.FindOutline(tmpl, e.config.MinionEdge, matchThreshold, fullFrame)
	matches = Dedup(matches, 10, 2)

	families := []HSVRange{e.config.MinionAllyFill, e.config.MinionFoeFill}
	minions := make([]Minion, 0, len(matches))
	for _, m := range matches {
		width := tmpl.Cols() - 2
		y := (m.Bounds.Y1 + m.Bounds.Y2) / 2
		frac, family, ok := fillBoundary(hsvRow(f, m.Bounds.X1, y, width), families)
		if !ok {
			continue
		}
		minions = append(minions, Minion{Unit: Unit{
			// The minion itself is drawn below its health bar.
			Bounds: NewBounds(m.Bounds.X1, m.Bounds.Y1+25, m.Bounds.X2, m.Bounds.Y2+75),
			Allied: family == 0,
			Health: frac,
		}})
	}
	return minions
}

// FindChampions finds all champions in the frame. The self fill color marks
// the controlled unit. Level is -1 when the level plate is unreadable.
func (e *Extractor) FindChampions(f *Frame) []Champion {
	tmpl := e.templates.Champion()
	matches := f.FindOutline(tmpl, e.config.ChampionEdge, matchThreshold, fullFrame)
	matches = Dedup(matches, 30, 3)

	healthFamilies := []HSVRange{
		e.config.ChampionSelfFill,
		e.config.ChampionAllyFill,
		e.config.ChampionFoeFill,
	}
	manaFamily := []HSVRange{e.config.ChampionManaFill}

	champions := make([]Champion, 0, len(matches))
	for _, m := range matches {
		xLeft := m.Bounds.X1 + 26
		xRight := m.Bounds.X2 - 4
		width := xRight - xLeft
		if width < 1 {
			continue
		}
		health, family, ok := fillBoundary(hsvRow(f, xLeft, m.Bounds.Y1+15, width), healthFamilies)
		if !ok {
			continue
		}
		mana, _, manaOK := fillBoundary(hsvRow(f, xLeft, m.Bounds.Y1+21, width), manaFamily)
		if !manaOK {
			mana = 0
		}

		level := -1
		if e.levels != nil {
			plate := NewBounds(m.Bounds.X1+6, m.Bounds.Y1+8, m.Bounds.X1+22, m.Bounds.Y1+20)
			level = e.levels.ReadLevel(f, plate)
		}

		champions = append(champions, Champion{
			Unit: Unit{
				Bounds: NewBounds(m.Bounds.X1+20, m.Bounds.Y1+55, m.Bounds.X2-20, m.Bounds.Y2+130),
				Allied: family != fillFoe,
				Health: health,
			},
			Controllable: family == fillSelf,
			Mana:         mana,
			Level:        level,
		})
	}
	return champions
}

// FindStructures finds turret-class objectives. Runs once per size class
// template and tags the kind accordingly.
func (e *Extractor) FindStructures(f *Frame) []Structure {
	var structures []Structure
	structures = e.findStructureKind(f, StructureSmall, structures)
	structures = e.findStructureKind(f, StructureBig, structures)
	return structures
}

func (e *Extractor) findStructureKind(f *Frame, kind StructureKind, out []Structure) []Structure {
	tmpl := e.templates.Structure(kind)
	matches := f.FindOutline(tmpl, e.config.StructureEdge, matchThreshold, fullFrame)
	matches = Dedup(matches, 30, 3)

	families := []HSVRange{e.config.StructureAllyFill, e.config.StructureFoeFill}
	yDrop := 180
	if kind == StructureSmall {
		yDrop = 120
	}
	for _, m := range matches {
		width := tmpl.Cols() - 2
		y := (m.Bounds.Y1 + m.Bounds.Y2) / 2
		frac, family, ok := fillBoundary(hsvRow(f, m.Bounds.X1, y, width), families)
		if !ok {
			continue
		}
		out = append(out, Structure{
			Unit: Unit{
				Bounds: NewBounds(m.Bounds.X1, m.Bounds.Y1+30, m.Bounds.X2, m.Bounds.Y2+yDrop),
				Allied: family == 0,
				Health: frac,
			},
			Kind: kind,
		})
	}
	return out
}
