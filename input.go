// Package main - input.go
//
// This file implements the input injector: the single consumer that turns
// queued primitive commands into OS mouse and keyboard events with
// humanized inter-event delays.
//
// The queue between the decision loop and the injector is bounded. When it
// backs up, the oldest queued command is dropped with a warning; stale
// input against a frame several cycles old is worse than no input.
package main

import (
	"time"

	"github.com/go-vgo/robotgo"
)

// CommandKind identifies a primitive input command.
type CommandKind int

const (
	CmdMove CommandKind = iota
	CmdLeftClick
	CmdRightClick
	CmdAttackClick
	CmdKey
	CmdKeyCtrl
)

// Command is one primitive input event in client coordinates.
type Command struct {
	Kind CommandKind
	X    float64
	Y    float64
	Key  string
}

// queueCapacity bounds the command queue between the decision loop and
// the injector.
const queueCapacity = 8

// minEventDelay is the baseline pause between injected events, jittered
// per event.
const minEventDelay = 30 * time.Millisecond

// Sink consumes primitive commands. The production sink drives the OS;
// the dry-run sink logs.
type Sink interface {
	Apply(cmd Command)
}

// InputQueue is the bounded producer side of the injector.
type InputQueue struct {
	ch    chan Command
	stats *Statistics
}

// NewInputQueue creates a queue.
func NewInputQueue(stats *Statistics) *InputQueue {
	return &InputQueue{
		ch:    make(chan Command, queueCapacity),
		stats: stats,
	}
}

// Push enqueues a command without ever blocking the decision loop. When
// the queue is full the oldest queued command is discarded to make room.
func (q *InputQueue) Push(cmd Command) {
	for {
		select {
		case q.ch <- cmd:
			return
		default:
		}
		select {
		case old := <-q.ch:
			LogWarn("Input queue full, dropping command kind=%d", old.Kind)
			if q.stats != nil {
				q.stats.AddDroppedInput()
			}
		default:
		}
	}
}

// Len returns the number of queued commands.
func (q *InputQueue) Len() int {
	return len(q.ch)
}

// Injector is the single consumer of the input queue.
type Injector struct {
	queue *InputQueue
	sink  Sink
}

// NewInjector creates an injector draining the queue into the sink.
func NewInjector(q *InputQueue, sink Sink) *Injector {
	return &Injector{queue: q, sink: sink}
}

// Run drains the queue until the stop channel closes. Each event is
// followed by a jittered minimum delay so the emitted trace has plausible
// human pacing. An in-flight event is never aborted; stop takes effect
// between events.
func (inj *Injector) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case cmd := <-inj.queue.ch:
			inj.sink.Apply(cmd)
			RSleep(minEventDelay)
		}
	}
}

// RobotSink injects commands as real OS input. Coordinates are shifted
// from client space to desktop space by the window origin.
type RobotSink struct {
	OriginX int
	OriginY int
}

// Apply performs one input event.
func (s *RobotSink) Apply(cmd Command) {
	x := s.OriginX + int(cmd.X)
	y := s.OriginY + int(cmd.Y)
	switch cmd.Kind {
	case CmdMove:
		robotgo.Move(x, y)
	case CmdLeftClick:
		robotgo.Move(x, y)
		robotgo.Click("left", false)
	case CmdRightClick:
		robotgo.Move(x, y)
		robotgo.Click("right", false)
	case CmdAttackClick:
		robotgo.Move(x, y)
		robotgo.KeyTap("a")
		robotgo.Click("left", false)
	case CmdKey:
		robotgo.KeyTap(cmd.Key)
	case CmdKeyCtrl:
		robotgo.KeyTap(cmd.Key, "ctrl")
	}
}

// LogSink records commands instead of injecting them. Used for dry runs
// against recorded frames.
type LogSink struct{}

// Apply logs one input event.
func (LogSink) Apply(cmd Command) {
	switch cmd.Kind {
	case CmdMove:
		LogInfo("[dry-run] move to (%.0f, %.0f)", cmd.X, cmd.Y)
	case CmdLeftClick:
		LogInfo("[dry-run] left click at (%.0f, %.0f)", cmd.X, cmd.Y)
	case CmdRightClick:
		LogInfo("[dry-run] right click at (%.0f, %.0f)", cmd.X, cmd.Y)
	case CmdAttackClick:
		LogInfo("[dry-run] attack move at (%.0f, %.0f)", cmd.X, cmd.Y)
	case CmdKey:
		LogInfo("[dry-run] key %q", cmd.Key)
	case CmdKeyCtrl:
		LogInfo("[dry-run] ctrl+%q", cmd.Key)
	}
}
