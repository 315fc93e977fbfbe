// Package main - controller.go
//
// This file implements the action translator. The decision engine thinks
// in high-level actions (trade with that champion, retreat along this
// angle); the translator turns them into screen coordinates and primitive
// commands on the input queue.
//
// Angle math accounts for the isometric camera: horizontal screen
// distances are stretched by the aspect ratio relative to world distances,
// so a "300 unit" move covers more pixels horizontally than vertically.
// Angles are in degrees with 0 pointing right and positive turning
// counter-clockwise (screen y grows downward).
package main

import "math"

// AngleToAbsolute returns the point dist world units away from (x, y) in
// the given direction.
func AngleToAbsolute(x, y, dist, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return x + dist*math.Cos(rad)*aspectRatio, y - dist*math.Sin(rad)
}

// AbsoluteToAngle returns the world distance and direction from one point
// to another.
func AbsoluteToAngle(x1, y1, x2, y2 float64) (float64, float64) {
	dx := (x2 - x1) / aspectRatio
	dy := y2 - y1
	return math.Hypot(dx, dy), math.Atan2(-dy, dx) / math.Pi * 180
}

// WorldDistance is the aspect-corrected distance between two points.
func WorldDistance(a, b Point) float64 {
	d, _ := AbsoluteToAngle(a.X, a.Y, b.X, b.Y)
	return d
}

// Controller issues game actions onto the input queue.
type Controller struct {
	queue *InputQueue
	stats *Statistics
}

// NewController creates a controller.
func NewController(q *InputQueue, stats *Statistics) *Controller {
	return &Controller{queue: q, stats: stats}
}

func (c *Controller) push(cmd Command) {
	c.queue.Push(cmd)
	if c.stats != nil {
		c.stats.AddAction()
	}
}

// RightClick issues a move-to order at the given coordinates.
func (c *Controller) RightClick(x, y float64) {
	c.push(Command{Kind: CmdRightClick, X: x, Y: y})
}

// LeftClick clicks at the given coordinates.
func (c *Controller) LeftClick(x, y float64) {
	c.push(Command{Kind: CmdLeftClick, X: x, Y: y})
}

// AttackMove issues an attack-move order at the given coordinates.
func (c *Controller) AttackMove(x, y float64) {
	c.push(Command{Kind: CmdAttackClick, X: x, Y: y})
}

// MoveMouse positions the cursor without clicking.
func (c *Controller) MoveMouse(x, y float64) {
	c.push(Command{Kind: CmdMove, X: x, Y: y})
}

// PressKey taps a key.
func (c *Controller) PressKey(key string) {
	c.push(Command{Kind: CmdKey, Key: key})
}

// UseAction casts an untargeted ability.
func (c *Controller) UseAction(key string) {
	c.push(Command{Kind: CmdKey, Key: key})
}

// UseSkillshot aims the cursor at the target point and casts.
func (c *Controller) UseSkillshot(key string, x, y float64) {
	c.push(Command{Kind: CmdMove, X: RNum(x, 0.01), Y: RNum(y, 0.01)})
	c.push(Command{Kind: CmdKey, Key: key})
}

// LevelAbility ranks up an ability with ctrl+key.
func (c *Controller) LevelAbility(key string) {
	c.push(Command{Kind: CmdKeyCtrl, Key: key})
}

// RightClickDirection move-orders dist world units from the champion in
// the given direction.
func (c *Controller) RightClickDirection(champ *Champion, dist, deg float64) {
	p := champ.Center()
	x, y := AngleToAbsolute(p.X, p.Y, dist, deg)
	c.RightClick(x, y)
}

// MoveTowards move-orders a short step toward the target point, capped so
// one order never commits the champion deep toward the target.
func (c *Controller) MoveTowards(champ *Champion, x, y float64) {
	p := champ.Center()
	dist, angle := AbsoluteToAngle(p.X, p.Y, x, y)
	dist = math.Min(dist, 150)
	tx, ty := AngleToAbsolute(p.X, p.Y, dist, angle)
	c.RightClick(tx, ty)
}
