package main

import (
	"math"
	"testing"
)

func unitAt(x, y int, allied bool, health float64) Unit {
	return Unit{Bounds: NewBounds(x-50, y-50, x+50, y+50), Allied: allied, Health: health}
}

func champAt(x, y int, allied bool, health float64, level int) Champion {
	return Champion{Unit: unitAt(x, y, allied, health), Level: level, Mana: 0.5}
}

func testPlayer() Champion {
	p := champAt(500, 500, true, 1.0, 5)
	p.Controllable = true
	return p
}

func TestSelectTargetPrefersLowMinion(t *testing.T) {
	player := testPlayer()
	obs := &Observation{
		EnemyMinions:   []Minion{{Unit: unitAt(600, 500, false, 0.1)}},
		EnemyChampions: []Champion{champAt(900, 500, false, 1.0, 5)},
	}
	got := SelectTarget(player, obs)
	if got.Kind != TargetMinion {
		t.Fatalf("Kind = %s, want minion", got.Kind)
	}
	// cost = (dist + 100) * (0.4 + health) = 200 * 0.5
	if math.Abs(got.Cost-100) > 1e-9 {
		t.Errorf("Cost = %v, want 100", got.Cost)
	}
	if got.Health != 0.1 {
		t.Errorf("Health = %v, want 0.1", got.Health)
	}
}

func TestSelectTargetDeterministicOnTies(t *testing.T) {
	player := testPlayer()
	// Two identical minions mirrored around the player score exactly the
	// same; only a strictly lower cost displaces the best, so the
	// first-evaluated one must win every time.
	obs := &Observation{
		EnemyMinions: []Minion{
			{Unit: unitAt(600, 500, false, 0.5)},
			{Unit: unitAt(400, 500, false, 0.5)},
		},
	}
	first := SelectTarget(player, obs)
	for i := 0; i < 10; i++ {
		if got := SelectTarget(player, obs); got != first {
			t.Fatalf("SelectTarget not deterministic: %+v vs %+v", got, first)
		}
	}
	if first.Point.X != 600 {
		t.Errorf("tie resolved to %+v, want the first-evaluated minion", first.Point)
	}
}

func TestSelectTargetThreatPenalty(t *testing.T) {
	player := testPlayer()
	minion := Minion{Unit: unitAt(600, 500, false, 0.1)}
	turret := Structure{Unit: unitAt(700, 500, false, 1.0), Kind: StructureBig}

	open := SelectTarget(player, &Observation{EnemyMinions: []Minion{minion}})
	guarded := SelectTarget(player, &Observation{
		EnemyMinions:    []Minion{minion},
		EnemyStructures: []Structure{turret},
	})
	if open.Kind != TargetMinion {
		t.Fatalf("open Kind = %s, want minion", open.Kind)
	}
	if guarded.Kind == TargetMinion && guarded.Cost <= open.Cost {
		t.Errorf("threat radius did not raise the minion's cost: %v <= %v", guarded.Cost, open.Cost)
	}
}

func TestSelectTargetStructureNeedsBackup(t *testing.T) {
	player := testPlayer()
	turret := Structure{Unit: unitAt(700, 500, false, 1.0), Kind: StructureBig}
	backup := []Minion{
		{Unit: unitAt(650, 450, true, 1.0)},
		{Unit: unitAt(650, 550, true, 1.0)},
	}

	got := SelectTarget(player, &Observation{
		EnemyStructures: []Structure{turret},
		AllyMinions:     backup,
	})
	if got.Kind != TargetStructure {
		t.Fatalf("with backup Kind = %s, want structure", got.Kind)
	}

	// Without allied backup the structure is not worth committing to.
	got = SelectTarget(player, &Observation{EnemyStructures: []Structure{turret}})
	if got.Kind == TargetStructure {
		t.Error("structure targeted without backup")
	}

	// An enemy champion on screen also vetoes the structure.
	got = SelectTarget(player, &Observation{
		EnemyStructures: []Structure{turret},
		AllyMinions:     backup,
		EnemyChampions:  []Champion{champAt(100, 100, false, 1.0, 5)},
	})
	if got.Kind == TargetStructure {
		t.Error("structure targeted with an enemy champion visible")
	}
}

func TestDisengageDominatesWhenOutnumbered(t *testing.T) {
	player := testPlayer()
	player.Health = 0.4
	obs := &Observation{
		EnemyMinions: []Minion{
			{Unit: unitAt(600, 500, false, 1.0)},
			{Unit: unitAt(620, 520, false, 1.0)},
			{Unit: unitAt(640, 540, false, 1.0)},
		},
		EnemyChampions: []Champion{
			champAt(700, 500, false, 1.0, 6),
			champAt(720, 520, false, 1.0, 6),
		},
	}
	got := SelectTarget(player, obs)
	if got.Kind != TargetDisengage {
		t.Fatalf("Kind = %s, want disengage", got.Kind)
	}
}

func TestDisengageCostEnemyFloor(t *testing.T) {
	player := testPlayer()
	cost := DisengageCost(player, &Observation{})
	if math.IsInf(cost, 0) || math.IsNaN(cost) {
		t.Fatalf("empty board disengage cost = %v", cost)
	}
	if cost <= 0 {
		t.Errorf("disengage cost = %v, want positive", cost)
	}
}
