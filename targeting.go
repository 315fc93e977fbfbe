// Package main - targeting.go
//
// This file implements the shared targeting cost model. Given one
// perception snapshot it scores every attackable enemy and the competing
// option of disengaging, and returns the single cheapest choice.
//
// Cost evaluation order is minions, then champions, then structures, then
// disengage, and only a strictly lower cost displaces the current best.
// Exact ties therefore resolve to the earliest-evaluated category, which
// keeps the choice deterministic.
package main

import "math"

// Cost model constants.
const (
	// Distances beyond the cap contribute no additional cost.
	targetDistanceCap = 800.0
	// Flat cost added before health weighting.
	targetBaseOffset = 100.0
	// Radius around an enemy structure that taints targets inside it.
	threatRadius = 550.0
	// Multiplier applied to a target inside a structure's threat radius.
	threatPenalty = 15.0
	// Disengage power ratio exponent.
	backOffExponent = 4.0
)

// TargetKind identifies what a target choice points at.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetMinion
	TargetChampion
	TargetStructure
	TargetDisengage
)

// String returns the string representation of the kind.
func (k TargetKind) String() string {
	switch k {
	case TargetMinion:
		return "minion"
	case TargetChampion:
		return "champion"
	case TargetStructure:
		return "structure"
	case TargetDisengage:
		return "disengage"
	default:
		return "none"
	}
}

// TargetChoice is the outcome of one cost evaluation.
type TargetChoice struct {
	Kind   TargetKind
	Point  Point
	Health float64
	Cost   float64
}

// SelectTarget scores every enemy entity against the controlled champion's
// position and returns the cheapest choice. TargetNone is returned only
// when no enemy is visible and even disengaging scores as infinite, which
// cannot happen with the current disengage formula; callers still handle
// it for completeness.
func SelectTarget(player Champion, obs *Observation) TargetChoice {
	self := player.Center()
	best := TargetChoice{Kind: TargetNone, Cost: math.Inf(1)}

	for _, m := range obs.EnemyMinions {
		c := m.Center()
		cost := baseCost(self, c) * (0.4 + m.Health)
		cost = applyThreat(cost, c, obs.EnemyStructures)
		if cost < best.Cost {
			best = TargetChoice{Kind: TargetMinion, Point: c, Health: m.Health, Cost: cost}
		}
	}

	for _, p := range obs.EnemyChampions {
		c := p.Center()
		cost := baseCost(self, c) * (0.1 + math.Pow(p.Health, 2.5))
		cost = applyThreat(cost, c, obs.EnemyStructures)
		if cost < best.Cost {
			best = TargetChoice{Kind: TargetChampion, Point: c, Health: p.Health, Cost: cost}
		}
	}

	for _, s := range obs.EnemyStructures {
		// Structures are only worth hitting with backup and no enemy
		// champions around to punish the commitment.
		if len(obs.EnemyChampions) > 0 {
			continue
		}
		c := s.Center()
		if alliesNear(c, obs) < 2 {
			continue
		}
		cost := baseCost(self, c) * 0.6
		if cost < best.Cost {
			best = TargetChoice{Kind: TargetStructure, Point: c, Health: s.Health, Cost: cost}
		}
	}

	if cost := DisengageCost(player, obs); cost < best.Cost {
		best = TargetChoice{Kind: TargetDisengage, Cost: cost}
	}
	return best
}

// DisengageCost scores backing off. It falls as the visible enemy force
// outgrows the allied one and as the controlled champion's health drops,
// so a losing board state makes disengaging the cheapest option.
func DisengageCost(player Champion, obs *Observation) float64 {
	var allyPower, enemyPower float64
	for _, m := range obs.AllyMinions {
		allyPower += m.Health
	}
	for _, m := range obs.EnemyMinions {
		enemyPower += m.Health
	}
	allyPower += float64(player.Level) * player.Health
	for _, p := range obs.AllyChampions {
		allyPower += float64(p.Level) * p.Health
	}
	for _, p := range obs.EnemyChampions {
		enemyPower += float64(p.Level) * p.Health
	}
	for _, s := range obs.EnemyStructures {
		if alliesNear(s.Center(), obs) < 2 {
			enemyPower += threatPenalty * 2
		}
	}
	if enemyPower == 0 {
		enemyPower = 0.00001
	}
	return math.Pow(5*allyPower/enemyPower, backOffExponent) * player.Health
}

// baseCost is the distance component shared by every target category.
func baseCost(self, target Point) float64 {
	return math.Min(self.Distance(target), targetDistanceCap) + targetBaseOffset
}

// applyThreat multiplies the cost when the target stands inside any enemy
// structure's threat radius.
func applyThreat(cost float64, target Point, structures []Structure) float64 {
	for _, s := range structures {
		if target.Distance(s.Center()) < threatRadius {
			cost *= threatPenalty
		}
	}
	return cost
}

// alliesNear counts allied minions and champions within the threat radius
// of a point.
func alliesNear(p Point, obs *Observation) int {
	n := 0
	for _, m := range obs.AllyMinions {
		if m.Center().Distance(p) < threatRadius {
			n++
		}
	}
	for _, c := range obs.AllyChampions {
		if c.Center().Distance(p) < threatRadius {
			n++
		}
	}
	return n
}
