// Package main - debug.go
//
// This file implements logging and debug visualization.
//
// Major Components:
//
// 1. Logging System:
//    - Thread-safe file logging to Debug.log
//    - Four log levels: DEBUG, INFO, WARN, ERROR
//    - Microsecond timestamps for performance analysis
//    - File is truncated (cleared) on each startup
//    - Global logger instance accessible via convenience functions
//
// 2. Debug Visualization:
//    - Draws detection results over a copy of the captured frame
//    - Entity boxes colored by allegiance (blue ally, red enemy,
//      green controlled), with health/mana/level labels
//    - Text recognition boxes with recognized words
//    - Annotated frames are written to debug_frames/ as PNG
//
// Logging Best Practices:
//   - DEBUG: Detailed operation info (pixel counts, coordinates, timing)
//   - INFO: Important events (startup, status changes, purchases)
//   - WARN: Non-critical issues (dropped inputs, unreadable gold, misreads)
//   - ERROR: Serious problems (capture failures, template load errors)
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Logger provides thread-safe logging functionality to Debug.log file.
//
// The logger writes all messages to a file with timestamps and log levels.
// Thread safety is ensured via mutex, allowing multiple goroutines to log
// concurrently without race conditions.
//
// File Behavior:
// Debug.log is truncated (O_TRUNC) on each startup to prevent log
// accumulation, so the file always contains only the current session.
type Logger struct {
	file   *os.File
	logger *log.Logger
	mu     sync.Mutex
}

var globalLogger *Logger

// InitLogger initializes the global logger to write to Debug.log in current directory
// The log file is truncated (cleared) on each startup
func InitLogger() error {
	// Use O_TRUNC to clear the file on startup
	file, err := os.OpenFile("Debug.log", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	globalLogger = &Logger{
		file:   file,
		logger: log.New(file, "", log.LstdFlags|log.Lmicroseconds),
	}

	globalLogger.Info("Logger initialized (log file cleared)")
	return nil
}

// CloseLogger closes the log file
func CloseLogger() {
	if globalLogger != nil && globalLogger.file != nil {
		globalLogger.Info("Logger closing")
		globalLogger.file.Close()
	}
}

// Debug logs debug level messages
func (l *Logger) Debug(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("[DEBUG] "+format, v...)
}

// Info logs info level messages
func (l *Logger) Info(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("[INFO] "+format, v...)
}

// Warn logs warning level messages
func (l *Logger) Warn(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("[WARN] "+format, v...)
}

// Error logs error level messages
func (l *Logger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("[ERROR] "+format, v...)
}

// LogDebug is a convenience function for debug logging
func LogDebug(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debug(format, v...)
	}
}

// LogInfo is a convenience function for info logging
func LogInfo(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Info(format, v...)
	}
}

// LogWarn is a convenience function for warning logging
func LogWarn(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Warn(format, v...)
	}
}

// LogError is a convenience function for error logging
func LogError(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Error(format, v...)
	}
}

// Debug overlay colors, BGR as drawn by gocv.
var (
	colorAlly    = color.RGBA{R: 0, G: 150, B: 255, A: 255}
	colorEnemy   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	colorSelf    = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	colorTextBox = color.RGBA{R: 100, G: 255, B: 100, A: 255}
)

func allegianceColor(allied bool) color.RGBA {
	if allied {
		return colorAlly
	}
	return colorEnemy
}

// DebugOverlay writes annotated detection frames to disk.
type DebugOverlay struct {
	dir   string
	count int
}

// NewDebugOverlay creates an overlay writer rooted at dir.
func NewDebugOverlay(dir string) (*DebugOverlay, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DebugOverlay{dir: dir}, nil
}

// SaveDetections draws the observation over the frame and writes a PNG.
func (d *DebugOverlay) SaveDetections(obs *Observation) {
	res := obs.Frame.mat.Clone()
	defer res.Close()

	for _, m := range obs.AllyMinions {
		drawUnit(&res, m.Unit, allegianceColor(true), fmt.Sprintf("%d%%", int(m.Health*100)))
	}
	for _, m := range obs.EnemyMinions {
		drawUnit(&res, m.Unit, allegianceColor(false), fmt.Sprintf("%d%%", int(m.Health*100)))
	}
	champs := append(append([]Champion{}, obs.AllyChampions...), obs.EnemyChampions...)
	if obs.Player != nil {
		champs = append(champs, *obs.Player)
	}
	for _, c := range champs {
		col := allegianceColor(c.Allied)
		if c.Controllable {
			col = colorSelf
		}
		label := fmt.Sprintf("L%d H%d M%d", c.Level, int(c.Health*100), int(c.Mana*100))
		drawUnit(&res, c.Unit, col, label)
	}
	for _, s := range obs.AllyStructures {
		drawUnit(&res, s.Unit, allegianceColor(true), fmt.Sprintf("%s %d%%", s.Kind, int(s.Health*100)))
	}
	for _, s := range obs.EnemyStructures {
		drawUnit(&res, s.Unit, allegianceColor(false), fmt.Sprintf("%s %d%%", s.Kind, int(s.Health*100)))
	}

	d.write(res)
}

// SaveText draws recognized text boxes over the frame and writes a PNG.
func (d *DebugOverlay) SaveText(f *Frame, texts []Text) {
	res := f.mat.Clone()
	defer res.Close()
	for _, t := range texts {
		gocv.Rectangle(&res, t.Bounds.Rect(), colorTextBox, 1)
		gocv.PutText(&res, t.Value,
			image.Pt(t.Bounds.X1, t.Bounds.Y1-6),
			gocv.FontHersheySimplex, 0.6, colorTextBox, 1)
	}
	d.write(res)
}

func drawUnit(res *gocv.Mat, u Unit, col color.RGBA, label string) {
	gocv.Rectangle(res, u.Bounds.Rect(), col, 1)
	gocv.PutText(res, label,
		image.Pt(u.Bounds.X1, u.Bounds.Y1-6),
		gocv.FontHersheySimplex, 0.8, col, 1)
}

func (d *DebugOverlay) write(res gocv.Mat) {
	d.count++
	path := filepath.Join(d.dir, fmt.Sprintf("%d_%03d.png", time.Now().UnixMilli(), d.count))
	if ok := gocv.IMWrite(path, res); !ok {
		LogError("Failed to write debug frame %s", path)
	}
}
