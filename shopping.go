// Package main - shopping.go
//
// This file implements the base-phase handler: the loading screen wait,
// the shop purchase flow, the walk back to lane, and the end-of-match and
// AFK-warning dialogs that can appear while at base.
//
// The shop is navigated entirely by OCR. A custom item page titled by the
// configured anchor word doubles as the shop's landmark; item prices in
// its grid are read as numbers and bought top-to-bottom while gold lasts.
package main

import (
	"strconv"
	"time"
)

// Shop grid geometry relative to the anchor text, calibrated at 1920x1080.
const (
	shopGridRowHeight = 73
	shopGridColWidth  = 55
)

// doBase handles the base main status.
func (e *Engine) doBase(obs *Observation) {
	switch e.subStatus {
	case SubShopping, SubLoading:
		e.doShop(obs)
	case SubGoingToLane, SubUnknown:
		e.doGoToLane(obs)
	default:
		LogWarn("Unknown sub status %s", e.subStatus)
	}
}

// doShop runs one cycle of the loading/shopping flow.
func (e *Engine) doShop(obs *Observation) {
	w, h := obs.Frame.Cols(), obs.Frame.Rows()

	// The anchor's last position is a cached fast path; without it a much
	// larger sweep is needed.
	var region Region
	switch {
	case e.shopAnchor != nil:
		a := e.shopAnchor.Bounds
		region = Region{MinX: a.X1 - 10, MinY: a.Y1 - 10, MaxX: a.X2 + 560, MaxY: a.Y2 + 350}
	case e.subStatus == SubLoading:
		region = Region{MinX: w / 4, MinY: h / 2, MaxX: w * 3 / 4, MaxY: h}
	default:
		region = Region{MinX: 150, MinY: 150, MaxX: w * 2 / 3, MaxY: h * 3 / 4}
	}
	texts := e.sensors.FindText(obs.Frame, region)

	// A miss below invalidates the cached anchor.
	e.shopAnchor = nil
	var gameEnd, gameEndContinue, afkText, leaverText, levelText *Text
	for i := range texts {
		t := &texts[i]
		switch {
		case CloseMatch(t.Value, e.config.ShopAnchor):
			e.shopAnchor = t
		case CloseMatch(t.Value, "victory") || CloseMatch(t.Value, "defeat"):
			gameEnd = t
		case CloseMatch(t.Value, "continue"):
			gameEndContinue = t
		case CloseMatch(t.Value, "afk"):
			afkText = t
		case CloseMatch(t.Value, "leaverbuster"):
			leaverText = t
		case CloseMatch(t.Value, "level"):
			levelText = t
		}
	}

	if e.subStatus == SubLoading {
		if levelText == nil {
			return
		}
		LogInfo("Loading complete")
		e.openShop()
		return
	}

	if gameEnd != nil && gameEndContinue != nil {
		if CloseMatch(gameEnd.Value, "victory") {
			LogInfo("Match result: Victory!")
		} else {
			LogInfo("Match result: Defeat")
		}
		e.switchStatus(MainEnd, SubUnknown)
		return
	}

	if afkText != nil && leaverText != nil {
		e.dismissAFKWarning(afkText, leaverText)
		return
	}

	if e.mainTime > 15 {
		LogInfo("Exiting the shop (too much time)")
		e.exitShop()
		return
	}

	if e.shopAnchor == nil {
		e.openShop()
		return
	}

	gold := e.sensors.ReadGold(obs.Frame)
	if gold == -1 {
		LogWarn("Gold not found in shop, assuming 0")
		gold = 0
	}
	if gold == e.prevGold {
		LogInfo("Gold unchanged since last cycle, exiting the shop")
		e.exitShop()
		return
	}
	e.prevGold = gold

	// Prices inside the anchor's item grid, keyed by grid cell so a cell
	// is never bought twice.
	type shopItem struct {
		row, col int
		cost     int
		at       Point
	}
	var items []shopItem
	a := e.shopAnchor.Bounds
	for _, t := range texts {
		cost, err := strconv.Atoi(t.Value)
		if err != nil {
			continue
		}
		if t.Bounds.X1 < a.X1-30 || t.Bounds.X1 > a.X1+600 ||
			t.Bounds.Y1 < a.Y1+30 || t.Bounds.Y1 > a.Y1+350 {
			continue
		}
		row := (t.Bounds.Y1 - a.Y1 + 35) / shopGridRowHeight
		col := (t.Bounds.X1 - a.X1 + 25) / shopGridColWidth
		if e.usedItems[[2]int{row, col}] {
			continue
		}
		items = append(items, shopItem{row: row, col: col, cost: cost, at: t.Center()})
	}
	for i := 1; i < len(items); i++ {
		for j := i; j > 0; j-- {
			cur, prev := items[j], items[j-1]
			if cur.row < prev.row || (cur.row == prev.row && cur.col < prev.col) {
				items[j], items[j-1] = prev, cur
			} else {
				break
			}
		}
	}

	bought := false
	for _, it := range items {
		if it.cost > gold {
			break
		}
		LogInfo("Buying item at row %d column %d with cost %d", it.row, it.col, it.cost)
		e.ctrl.RightClick(it.at.X, it.at.Y-35)
		gold -= it.cost
		e.usedItems[[2]int{it.row, it.col}] = true
		bought = true
		RSleep(300 * time.Millisecond)
	}

	// Park the cursor off the grid so tooltips don't cover prices.
	e.ctrl.MoveMouse(float64(a.X1+250), float64(a.Y1-40))

	if !bought {
		LogInfo("Exiting the shop")
		e.exitShop()
	}
}

// dismissAFKWarning clicks through the AFK dialog's button column and
// jiggles the champion so the client sees activity.
func (e *Engine) dismissAFKWarning(afkText, leaverText *Text) {
	LogWarn("AFK warning detected, dismissing...")
	clickX := float64((afkText.Bounds.X1+leaverText.Bounds.X1)/2 - 16)
	baseY := float64((afkText.Bounds.Y2 + leaverText.Bounds.Y2) / 2)
	for i := 0; i < 7; i++ {
		e.ctrl.LeftClick(clickX, baseY+60+float64(i*40))
		RSleep(150 * time.Millisecond)
	}
	for i := 0; i < 7; i++ {
		e.ctrl.RightClick(clickX+RNumAbs(0, 200), baseY+100+RNumAbs(0, 150))
		RSleep(400 * time.Millisecond)
	}
	LogWarn("Dismissed, attempting to reset...")
	e.switchStatus(MainLaning, SubBacking)
}

// doGoToLane walks the champion from the spawn toward the assigned lane.
func (e *Engine) doGoToLane(obs *Observation) {
	player := obs.Player
	if player == nil {
		LogInfo("Cannot find controllable champion")
		e.switchStatus(MainBase, SubUnknown)
		if e.subTime >= baseDeathGrace {
			LogInfo("Assuming the champion died")
			e.openShop()
		}
		return
	}
	e.switchStatus(MainBase, SubGoingToLane)

	e.sensors.UpdateLocation(obs.Frame)
	if e.roll() < 0.75 {
		e.ctrl.RightClickDirection(player, 400, e.sensors.PushDir())
	}

	// Arrived mid-map, or the action came to us.
	loc, hasLoc := e.sensors.Location()
	arrived := e.level <= 6 && hasLoc && absFloat(1-(loc.X+loc.Y)) <= 0.05
	if arrived || len(obs.EnemyMinions) > 0 || len(obs.EnemyChampions) > 0 || len(obs.EnemyStructures) > 0 {
		LogInfo("Switching to laning")
		e.switchStatus(MainLaning, SubPassive)
	}
}

// openShop walks to the shop area and opens the shop UI.
func (e *Engine) openShop() {
	LogInfo("Opening the shop")
	e.switchStatus(MainBase, SubShopping)
	e.prevGold = -1
	x, y := e.screen.Scale(900, 800)
	e.ctrl.LeftClick(x, y)
	e.ctrl.PressKey("p")
}

// exitShop closes the shop UI and starts the walk to lane.
func (e *Engine) exitShop() {
	e.switchStatus(MainBase, SubGoingToLane)
	e.ctrl.PressKey("p")
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
