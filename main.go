// Package main implements an automated League of Legends laning bot.
//
// Architecture Overview:
// The bot reads the game the way a player does: it captures the client
// window, finds every health bar by template matching, reads text with OCR,
// and injects mouse and keyboard input. It never touches game memory or
// network traffic. The program consists of three main concurrent components:
//
//   1. Decision Loop Goroutine: Executes at configurable intervals (default
//      250ms), performs screen capture, parallel entity extraction under a
//      wait budget, and one decision step of the active brain.
//
//   2. Injector Goroutine: Single consumer of the bounded input queue.
//      Replays primitive commands as OS input with jittered pacing so the
//      decision loop never blocks on the mouse.
//
//   3. System Tray Goroutines: Handles UI interactions for mode and lane
//      switching, dry-run and debug toggles.
//
// Main Loop Logic:
// Each iteration performs the following steps in sequence:
//   1. Capture screenshot of the client window
//   2. Run the minion/champion/structure extractors in parallel
//   3. Skip the cycle outright if extraction exceeds the wait budget
//   4. Partition entities by allegiance and find the controlled champion
//   5. Execute one step of the active brain (Lane engine or Skirmisher)
//   6. Optionally write an annotated debug frame
//   7. Update system tray status display
//
// Key Design Decisions:
//   - A cycle either gets a complete entity set from one frame or nothing;
//     partial or mixed-age perception is never acted on
//   - Capture failure does not crash the program (error logged, continues)
//   - Configuration changes are immediately saved to data.json
//   - Graceful shutdown with signal handling (SIGINT/SIGTERM)
package main

import (
	"fmt"
	"image"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"
)

// Bot is the main controller and owns all subsystems.
//
// Component Dependencies:
//   - config: Thread-safe configuration (RWMutex protected)
//   - stats: Cycle and action counters
//   - window: Client window tracking and screen capture
//   - templates: Health-bar reference images
//   - recognizer: Tesseract OCR wrapper
//   - perceptor: Parallel entity extraction with wait budget
//   - ctrl: High-level action layer feeding the input queue
//   - engine / skirmisher: The two selectable brains
//   - tray: System tray UI
type Bot struct {
	config     *Config
	data       *PersistentData
	stats      *Statistics
	window     *WindowTracker
	templates  *TemplateStore
	recognizer *Recognizer
	minimap    *MinimapTracker
	sensors    *GameSensors
	perceptor  *Perceptor
	queue      *InputQueue
	injector   *Injector
	ctrl       *Controller
	engine     *Engine
	skirmisher *Skirmisher
	tray       *TrayApp

	stopChan chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	overlay *DebugOverlay
}

// NewBot creates and initializes a new bot instance with all required
// components. The browser window is located once here; if it cannot be
// found the primary display and a 1920x1080 coordinate space are assumed
// until the first successful capture.
func NewBot() (*Bot, error) {
	LogInfo("Initializing bot components...")

	data, err := LoadData()
	if err != nil {
		LogError("Failed to load data: %v, using defaults", err)
		data = NewPersistentData()
	}
	cfg := data.Config

	stats := NewStatistics()
	window := NewWindowTracker(cfg)
	screen, err := window.Screen()
	if err != nil {
		LogWarn("Client window not found: %v, assuming 1920x1080", err)
		screen = NewScreenInfo(image.Rect(0, 0, 1920, 1080))
	}

	templates, err := NewTemplateStore("templates", cfg.CaptureScale)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	recognizer := NewRecognizer()
	minimap := NewMinimapTracker(cfg.Lane)
	gameSensors := NewGameSensors(recognizer, minimap)
	extractor := NewExtractor(cfg, templates, recognizer)
	perceptor := NewPerceptor(cfg, extractor)

	queue := NewInputQueue(stats)
	sink := &modalSink{
		config: cfg,
		robot:  &RobotSink{OriginX: screen.Bounds.Min.X, OriginY: screen.Bounds.Min.Y},
	}
	ctrl := NewController(queue, stats)

	bot := &Bot{
		config:     cfg,
		data:       data,
		stats:      stats,
		window:     window,
		templates:  templates,
		recognizer: recognizer,
		minimap:    minimap,
		sensors:    gameSensors,
		perceptor:  perceptor,
		queue:      queue,
		injector:   NewInjector(queue, sink),
		ctrl:       ctrl,
		engine:     NewEngine(cfg, ctrl, gameSensors, screen),
		skirmisher: NewSkirmisher(ctrl),
		stopChan:   make(chan struct{}),
	}
	bot.engine.onMatchEnd = bot.onMatchEnd
	bot.tray = NewTrayApp(bot)

	LogInfo("Bot initialization complete")
	return bot, nil
}

// modalSink routes commands to the OS or the log depending on the dry-run
// flag, checked per event so the tray toggle takes effect immediately.
type modalSink struct {
	config *Config
	robot  *RobotSink
}

func (s *modalSink) Apply(cmd Command) {
	if s.config.GetDryRun() {
		LogSink{}.Apply(cmd)
		return
	}
	s.robot.Apply(cmd)
}

// StartLoop starts the injector and the decision loop.
func (b *Bot) StartLoop() {
	LogInfo("Starting injector and decision loop")
	go b.injector.Run(b.stopChan)
	go b.loop()
}

// StopLoop stops the decision loop and the injector. Idempotent.
func (b *Bot) StopLoop() {
	b.stopOnce.Do(func() {
		LogInfo("Stopping decision loop")
		close(b.stopChan)
	})
}

// loop runs decision cycles at the configured cadence until stopped.
func (b *Bot) loop() {
	lastMode := ""
	lastCycle := time.Now()
	for {
		select {
		case <-b.stopChan:
			LogInfo("Decision loop stopped")
			return
		default:
		}

		mode := b.config.GetMode()
		if mode == "Stop" {
			lastMode = mode
			lastCycle = time.Now()
			if b.tray != nil {
				b.tray.UpdateStatus(mode, "")
			}
			time.Sleep(100 * time.Millisecond)
			continue
		}

		brain := b.brainFor(mode)
		if mode != lastMode {
			LogInfo("Switching brain to %s", mode)
			brain.Reset()
			lastMode = mode
		}

		now := time.Now()
		dt := now.Sub(lastCycle).Seconds()
		lastCycle = now
		b.runCycle(brain, dt)

		if b.tray != nil {
			b.tray.UpdateStatus(mode, brain.Status())
		}

		b.config.mu.RLock()
		interval := time.Duration(b.config.CaptureInterval) * time.Millisecond
		b.config.mu.RUnlock()
		if sleep := interval - time.Since(now); sleep > 0 {
			time.Sleep(sleep)
		}
	}
}

// brainFor selects the brain for a mode.
func (b *Bot) brainFor(mode string) Brain {
	if mode == "Skirmish" {
		return b.skirmisher
	}
	return b.engine
}

// runCycle executes a single capture/perceive/decide cycle.
func (b *Bot) runCycle(brain Brain, dt float64) {
	img, err := b.window.Capture()
	if err != nil {
		LogError("Failed to capture screen: %v", err)
		return
	}
	frame, err := NewFrame(img)
	if err != nil {
		LogError("Failed to convert frame: %v", err)
		return
	}

	b.config.mu.RLock()
	budget := time.Duration(b.config.PerceptionBudget) * time.Millisecond
	b.config.mu.RUnlock()

	set, err := b.perceptor.FindAll(frame, budget)
	if err != nil {
		// The perceptor owns the frame now; acting on stale entities is
		// worse than sitting out one cycle.
		LogWarn("Skipping cycle: %v", err)
		b.stats.AddCycle(true)
		return
	}
	defer frame.Close()

	obs := Partition(frame, set)
	brain.Process(obs, dt)

	b.mu.Lock()
	overlay := b.overlay
	b.mu.Unlock()
	if overlay != nil {
		overlay.SaveDetections(obs)
	}

	b.stats.AddCycle(false)
}

// onMatchEnd is called by the engine when the end-of-match screen has been
// dismissed. Stops play and leaves the loop idling in Stop mode.
func (b *Bot) onMatchEnd() {
	LogInfo("Match finished, switching to Stop mode")
	b.config.SetMode("Stop")
	if b.tray != nil {
		b.tray.applyModeChecks("Stop")
	}
	b.SaveState()
}

// ChangeMode changes the bot mode. Takes effect on the next cycle.
func (b *Bot) ChangeMode(mode string) {
	b.config.SetMode(mode)
}

// ChangeLane changes the assigned lane. Takes effect on the next cycle.
func (b *Bot) ChangeLane(lane string) {
	b.config.mu.Lock()
	b.config.Lane = lane
	b.config.mu.Unlock()
	b.minimap.SetLane(lane)
}

// ToggleDebugOverlay flips debug frame output and reports the new state.
func (b *Bot) ToggleDebugOverlay() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.overlay != nil {
		b.overlay = nil
		b.sensors.SetOverlay(nil)
		return false
	}
	overlay, err := NewDebugOverlay("debug_frames")
	if err != nil {
		LogError("Failed to create debug overlay: %v", err)
		return false
	}
	b.overlay = overlay
	b.sensors.SetOverlay(overlay)
	return true
}

// SaveState persists the current configuration to data.json.
func (b *Bot) SaveState() {
	if err := SaveData(b.data); err != nil {
		LogError("Failed to save data: %v", err)
	}
}

// Run starts the bot application and manages the main execution lifecycle.
// Blocks until the system tray exits.
func (b *Bot) Run() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		LogInfo("Signal received: %v, shutting down gracefully...", sig)
		b.StopLoop()
		b.SaveState()
		CloseLogger()
		os.Exit(0)
	}()

	// Run system tray (blocking) - tray starts the decision loop when ready
	b.tray.Run()

	// Save state before exit
	b.SaveState()
	b.recognizer.Close()
	b.templates.Close()
}

// main is the application entry point.
func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n", r)
			LogError("Unhandled panic: %v", r)
			CloseLogger()
			os.Exit(2)
		}
	}()

	if err := InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer CloseLogger()

	LogInfo("League bot starting on %s/%s", runtime.GOOS, runtime.GOARCH)

	bot, err := NewBot()
	if err != nil {
		LogError("Failed to initialize bot: %v", err)
		os.Exit(1)
	}
	bot.Run()
	LogInfo("Shutdown complete")
}
