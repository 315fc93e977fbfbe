// Package main - skirmish.go
//
// This file implements the simpler skirmish behavior: no lane discipline,
// no shop flow, just the shared targeting cost model applied every cycle.
// Useful for testing perception end to end and for modes where the
// structured lane engine does not apply.
package main

import (
	"math/rand"
)

// Brain chooses actions from perception snapshots. Implemented by the
// lane engine and the skirmisher; the decision loop drives whichever the
// configured mode selects.
type Brain interface {
	// Process runs one decision cycle. dt is the seconds since the
	// previous cycle.
	Process(obs *Observation, dt float64)
	// Reset restores initial state. Only called while the loop is stopped.
	Reset()
	// Status describes the current state for display.
	Status() string
}

// skirmishLevelOrder is the ability key leveled at each champion level.
const skirmishLevelOrder = "ewqeereqeqrqqwwrww"

// Skirmisher attacks whatever the cost model likes best.
type Skirmisher struct {
	ctrl  *Controller
	level int
	roll  func() float64
}

// NewSkirmisher creates a skirmisher.
func NewSkirmisher(ctrl *Controller) *Skirmisher {
	return &Skirmisher{ctrl: ctrl, roll: rand.Float64}
}

// Reset restores initial state.
func (s *Skirmisher) Reset() {
	s.level = 0
}

// Status describes the current state for display.
func (s *Skirmisher) Status() string {
	return "skirmish"
}

// Process runs one decision cycle.
func (s *Skirmisher) Process(obs *Observation, dt float64) {
	player := obs.Player
	if player == nil {
		LogWarn("Cannot find controllable champion")
		return
	}

	if player.Level > s.level && s.level < len(skirmishLevelOrder) {
		key := string(skirmishLevelOrder[s.level])
		LogInfo("Leveling %s", key)
		s.ctrl.LevelAbility(key)
		s.level = player.Level
	}

	self := player.Center()
	anyEnemies := len(obs.EnemyMinions) > 0 || len(obs.EnemyChampions) > 0

	// Survival first.
	if player.Health < 0.5 {
		LogInfo("Using heal due to low health")
		s.ctrl.PressKey("f")
	}
	if player.Health < 0.35 {
		LogInfo("Health low, attempting to escape")
		s.ctrl.RightClick(self.X-RNum(250*aspectRatio, defaultSpread), self.Y+RNum(250, defaultSpread))
		if !anyEnemies {
			LogInfo("Recalling")
			s.ctrl.PressKey("b")
		} else {
			LogInfo("Using w to try and escape")
			s.ctrl.PressKey("w")
		}
		return
	}

	// Nothing visible: drift back toward the action.
	if !anyEnemies && len(obs.EnemyStructures) == 0 {
		LogInfo("No enemies, moving up")
		s.ctrl.RightClick(self.X+RNum(250*aspectRatio, defaultSpread), self.Y-RNum(250, defaultSpread))
		return
	}

	choice := SelectTarget(*player, obs)
	if choice.Kind == TargetDisengage || choice.Kind == TargetNone {
		LogDebug("Disengaging with cost %.3f", choice.Cost)
		s.ctrl.RightClick(self.X-RNum(150*aspectRatio, defaultSpread), self.Y+RNum(150, defaultSpread))
		return
	}
	LogInfo("Attacking %s with cost %.3f", choice.Kind, choice.Cost)

	if self.Distance(choice.Point) < 500 {
		if choice.Kind == TargetChampion {
			// Spend long cooldowns on a kill attempt.
			if choice.Health < 0.2 {
				LogInfo("Using ultimate to try and kill the champion")
				s.ctrl.UseSkillshot("r", choice.Point.X, choice.Point.Y)
			} else if choice.Health < 0.4 {
				LogInfo("Using ghost to chase the champion")
				s.ctrl.UseAction("d")
			}
		}
		if choice.Kind != TargetStructure {
			switch int(s.roll() * 4) {
			case 0:
				s.ctrl.UseAction("q")
			case 1:
				s.ctrl.UseSkillshot("e", choice.Point.X, choice.Point.Y)
			}
		}
	}
	s.ctrl.AttackMove(choice.Point.X, choice.Point.Y)
}
