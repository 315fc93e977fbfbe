package main

import (
	"math"
	"testing"
)

func TestAngleToAbsoluteAspect(t *testing.T) {
	// Horizontal moves are stretched by the camera aspect, vertical moves
	// are not, and positive angles turn counter-clockwise on screen.
	x, y := AngleToAbsolute(0, 0, 100, 0)
	if math.Abs(x-100*aspectRatio) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Errorf("0 deg: got (%v, %v), want (%v, 0)", x, y, 100*aspectRatio)
	}
	x, y = AngleToAbsolute(0, 0, 100, 90)
	if math.Abs(x) > 1e-6 || math.Abs(y+100) > 1e-9 {
		t.Errorf("90 deg: got (%v, %v), want (0, -100)", x, y)
	}
	x, y = AngleToAbsolute(0, 0, 100, -90)
	if math.Abs(x) > 1e-6 || math.Abs(y-100) > 1e-9 {
		t.Errorf("-90 deg: got (%v, %v), want (0, 100)", x, y)
	}
}

func TestAngleRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 45, 90, 135, 179, -45, -90, -135} {
		for _, dist := range []float64{50, 300, 800} {
			x, y := AngleToAbsolute(960, 540, dist, deg)
			gotDist, gotDeg := AbsoluteToAngle(960, 540, x, y)
			if math.Abs(gotDist-dist) > 1e-6 {
				t.Errorf("deg=%v dist=%v: round-trip dist %v", deg, dist, gotDist)
			}
			if math.Abs(gotDeg-deg) > 1e-6 {
				t.Errorf("deg=%v dist=%v: round-trip angle %v", deg, dist, gotDeg)
			}
		}
	}
}

func TestWorldDistanceCorrectsAspect(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 140, Y: 0}
	if d := WorldDistance(a, b); math.Abs(d-100) > 1e-9 {
		t.Errorf("horizontal world distance = %v, want 100", d)
	}
	c := Point{X: 0, Y: 100}
	if d := WorldDistance(a, c); math.Abs(d-100) > 1e-9 {
		t.Errorf("vertical world distance = %v, want 100", d)
	}
}

func TestMoveTowardsCapsDistance(t *testing.T) {
	queue := NewInputQueue(nil)
	ctrl := NewController(queue, nil)
	champ := Champion{Unit: Unit{Bounds: NewBounds(-50, -50, 50, 50)}}

	ctrl.MoveTowards(&champ, 10000, 0)
	cmd := <-queue.ch
	if cmd.Kind != CmdRightClick {
		t.Fatalf("Kind = %v, want right click", cmd.Kind)
	}
	// 150 world units along 0 degrees lands at 150 * aspect pixels.
	if math.Abs(cmd.X-150*aspectRatio) > 1e-6 || math.Abs(cmd.Y) > 1e-6 {
		t.Errorf("capped step = (%v, %v), want (%v, 0)", cmd.X, cmd.Y, 150*aspectRatio)
	}

	// Short hops are not padded up to the cap.
	ctrl.MoveTowards(&champ, 70, 0)
	cmd = <-queue.ch
	if math.Abs(cmd.X-70) > 1e-6 {
		t.Errorf("short step X = %v, want 70", cmd.X)
	}
}

func TestUseSkillshotAimsThenCasts(t *testing.T) {
	queue := NewInputQueue(nil)
	ctrl := NewController(queue, nil)

	ctrl.UseSkillshot("q", 800, 400)
	aim := <-queue.ch
	cast := <-queue.ch
	if aim.Kind != CmdMove {
		t.Errorf("first command Kind = %v, want cursor move", aim.Kind)
	}
	if cast.Kind != CmdKey || cast.Key != "q" {
		t.Errorf("second command = %+v, want q keypress", cast)
	}
	// The aim point is jittered but must stay close to the target.
	if math.Abs(aim.X-800) > 800*0.1 || math.Abs(aim.Y-400) > 400*0.1 {
		t.Errorf("aim point (%v, %v) too far from (800, 400)", aim.X, aim.Y)
	}
}

func TestControllerCountsActions(t *testing.T) {
	stats := NewStatistics()
	queue := NewInputQueue(stats)
	ctrl := NewController(queue, stats)

	ctrl.RightClick(10, 10)
	ctrl.PressKey("b")
	ctrl.AttackMove(20, 20)
	if _, _, actions, _ := stats.GetStats(); actions != 3 {
		t.Errorf("actions = %d, want 3", actions)
	}
}
