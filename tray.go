// Package main - tray.go
//
// This file implements the system tray UI that provides user configuration interface.
// Uses getlantern/systray library for cross-platform tray menu support.
//
// Menu Structure:
//   League Bot
//   ├─ Status: Mode | Engine state | Cycles | Uptime (read-only, updates every cycle)
//   ├─ Mode Selection
//   │  ├─ Stop (idle, capture continues)
//   │  ├─ Lane (full laning engine: shop, walk to lane, trade, back)
//   │  └─ Skirmish (targeting model only, no lane discipline)
//   ├─ Lane Assignment (mid/top/bot radio buttons)
//   ├─ Dry Run (checkbox: log actions instead of injecting them)
//   ├─ Save Debug Frames (checkbox: write annotated detections to disk)
//   └─ Quit (graceful shutdown)
//
// Auto-Save:
// Mode, lane and dry-run changes trigger immediate SaveState() to persist
// settings to data.json.
//
// Lifecycle:
//   1. NewTrayApp: Create instance with bot reference
//   2. Run: Start systray (blocking call)
//   3. onReady: Initialize menu structure, start the decision loop
//   4. handleEvents: Listen for user interactions (infinite loop)
//   5. onExit: Clean up and save final state
package main

import (
	"fmt"
	"os"

	"github.com/getlantern/systray"
)

// TrayApp manages the system tray application and user interface.
type TrayApp struct {
	bot *Bot

	// Menu items
	statusItem *systray.MenuItem

	// Mode items
	stopItem     *systray.MenuItem
	laneItem     *systray.MenuItem
	skirmishItem *systray.MenuItem

	// Lane assignment items
	laneItems map[string]*systray.MenuItem

	// Toggles
	dryRunItem *systray.MenuItem
	debugItem  *systray.MenuItem
}

// NewTrayApp creates a new tray application.
func NewTrayApp(bot *Bot) *TrayApp {
	return &TrayApp{
		bot:       bot,
		laneItems: make(map[string]*systray.MenuItem),
	}
}

// Run starts the tray application. Blocks until systray.Quit is called.
func (t *TrayApp) Run() {
	LogInfo("Starting system tray application")
	systray.Run(t.onReady, func() {
		LogInfo("System tray onExit callback triggered")
		if t.bot != nil {
			t.bot.StopLoop()
		}
		LogInfo("System tray exit complete")
	})
	LogInfo("System tray Run() returned")
}

// onReady is called when the tray is ready.
func (t *TrayApp) onReady() {
	systray.SetTitle("League Bot")
	systray.SetTooltip("League of Legends laning bot")

	// Status (read-only)
	t.statusItem = systray.AddMenuItem("Status: Starting...", "Current bot status")
	t.statusItem.Disable()

	systray.AddSeparator()

	// Mode selection
	modeMenu := systray.AddMenuItem("Mode", "Select bot mode")
	t.stopItem = modeMenu.AddSubMenuItem("Stop", "Stop all actions")
	t.laneItem = modeMenu.AddSubMenuItem("Lane", "Play the assigned lane")
	t.skirmishItem = modeMenu.AddSubMenuItem("Skirmish", "Fight whatever is on screen")

	// Lane assignment
	laneMenu := systray.AddMenuItem("Lane Assignment", "Select the lane to play")
	for _, lane := range []string{"mid", "top", "bot"} {
		t.laneItems[lane] = laneMenu.AddSubMenuItem(lane, "Play "+lane)
	}

	systray.AddSeparator()

	t.dryRunItem = systray.AddMenuItemCheckbox("Dry Run", "Log actions instead of injecting input", t.bot.config.GetDryRun())
	t.debugItem = systray.AddMenuItemCheckbox("Save Debug Frames", "Write annotated detections to debug_frames/", false)

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Exit the application")

	t.applyModeChecks(t.bot.config.GetMode())
	t.applyLaneChecks(t.bot.config.Lane)

	// Start event loop
	go t.handleEvents(quitItem)

	LogInfo("System tray initialized")

	// Start the decision loop in background after tray is ready
	go func() {
		t.bot.StartLoop()
	}()
}

// handleEvents handles tray menu events.
func (t *TrayApp) handleEvents(quitItem *systray.MenuItem) {
	for lane, item := range t.laneItems {
		go t.handleLaneClick(lane, item)
	}

	for {
		select {
		case <-t.stopItem.ClickedCh:
			t.onModeClicked("Stop")
		case <-t.laneItem.ClickedCh:
			t.onModeClicked("Lane")
		case <-t.skirmishItem.ClickedCh:
			t.onModeClicked("Skirmish")
		case <-t.dryRunItem.ClickedCh:
			t.onDryRunClicked()
		case <-t.debugItem.ClickedCh:
			t.onDebugClicked()
		case <-quitItem.ClickedCh:
			LogInfo("Quit requested by user")
			t.bot.StopLoop()
			t.bot.SaveState()
			CloseLogger()
			systray.Quit()
			os.Exit(0)
		}
	}
}

// onModeClicked handles mode selection.
func (t *TrayApp) onModeClicked(mode string) {
	LogInfo("Mode changed to: %s", mode)
	t.applyModeChecks(mode)
	t.bot.ChangeMode(mode)
	t.bot.SaveState()
}

// applyModeChecks updates the mode radio checkmarks.
func (t *TrayApp) applyModeChecks(mode string) {
	t.stopItem.Uncheck()
	t.laneItem.Uncheck()
	t.skirmishItem.Uncheck()
	switch mode {
	case "Stop":
		t.stopItem.Check()
	case "Lane":
		t.laneItem.Check()
	case "Skirmish":
		t.skirmishItem.Check()
	}
}

// applyLaneChecks updates the lane radio checkmarks.
func (t *TrayApp) applyLaneChecks(lane string) {
	for name, item := range t.laneItems {
		if name == lane {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

// handleLaneClick handles one lane assignment item.
func (t *TrayApp) handleLaneClick(lane string, item *systray.MenuItem) {
	for {
		<-item.ClickedCh
		LogInfo("Lane changed to: %s", lane)
		t.applyLaneChecks(lane)
		t.bot.ChangeLane(lane)
		t.bot.SaveState()
	}
}

// onDryRunClicked toggles dry-run mode.
func (t *TrayApp) onDryRunClicked() {
	enabled := !t.bot.config.GetDryRun()
	t.bot.config.SetDryRun(enabled)
	if enabled {
		t.dryRunItem.Check()
	} else {
		t.dryRunItem.Uncheck()
	}
	LogInfo("Dry run: %v", enabled)
	t.bot.SaveState()
}

// onDebugClicked toggles debug frame output. Not persisted; frames pile up
// on disk fast enough that the toggle should not survive a restart.
func (t *TrayApp) onDebugClicked() {
	enabled := t.bot.ToggleDebugOverlay()
	if enabled {
		t.debugItem.Check()
	} else {
		t.debugItem.Uncheck()
	}
	LogInfo("Debug frames: %v", enabled)
}

// UpdateStatus updates the status display from the decision loop.
func (t *TrayApp) UpdateStatus(mode, state string) {
	if t.statusItem == nil {
		return
	}
	if mode == "Stop" {
		t.statusItem.SetTitle(fmt.Sprintf("Status: %s (Idle)", mode))
		return
	}
	cycles, skipped, actions, uptime := t.bot.stats.GetStats()
	t.statusItem.SetTitle(fmt.Sprintf("Status: %s/%s | %d cycles (%d skipped) | %d actions | %s",
		mode, state, cycles, skipped, actions, uptime))
}
