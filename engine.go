// Package main - engine.go
//
// This file implements the decision engine: a two-level state machine
// driven by one perception snapshot per cycle.
//
// Main statuses: base (at the spawn area), laning (in active play), end
// (match concluded). Within laning the sub-status tracks the current
// fighting posture; within base it tracks the shop flow (shopping.go).
//
// Timer law: switching sub-status resets the sub timer; switching main
// status resets both. Sub-status churn therefore never disturbs
// phase-level timeouts such as "too long in base".
package main

import (
	"math"
	"math/rand"
)

// MainStatus is the top level of the decision hierarchy.
type MainStatus int

const (
	MainBase MainStatus = iota
	MainLaning
	MainEnd
)

// String returns the string representation of the status.
func (s MainStatus) String() string {
	switch s {
	case MainBase:
		return "base"
	case MainLaning:
		return "laning"
	case MainEnd:
		return "end"
	default:
		return "unknown"
	}
}

// SubStatus is the second level of the decision hierarchy.
type SubStatus int

const (
	SubUnknown SubStatus = iota
	SubLoading
	SubShopping
	SubGoingToLane
	SubPassive
	SubAggressive
	SubTrading
	SubAllIn
	SubPushing
	SubBacking
	SubBackingWait
)

// String returns the string representation of the status.
func (s SubStatus) String() string {
	switch s {
	case SubLoading:
		return "loading"
	case SubShopping:
		return "shopping"
	case SubGoingToLane:
		return "going_to_lane"
	case SubPassive:
		return "passive"
	case SubAggressive:
		return "aggressive"
	case SubTrading:
		return "trading"
	case SubAllIn:
		return "all_in"
	case SubPushing:
		return "pushing"
	case SubBacking:
		return "backing"
	case SubBackingWait:
		return "backing_wait"
	default:
		return "unknown"
	}
}

// Grace periods before an invisible controlled champion is assumed dead.
const (
	laningDeathGrace = 3.0
	baseDeathGrace   = 2.0
)

// Engine is the lane-play decision state machine. It is mutated only from
// the decision loop goroutine.
type Engine struct {
	config  *Config
	ctrl    *Controller
	sensors Sensors
	screen  *ScreenInfo

	mainStatus MainStatus
	subStatus  SubStatus
	mainTime   float64
	subTime    float64
	now        float64

	level         int
	abilityLevels [abilityCount]int
	cooldowns     [abilityCount]float64

	hasTurretAggro bool
	lastSeenHealth float64
	pastHealth     []float64
	lastSeenEnemy  float64

	// Shop state, see shopping.go.
	shopAnchor *Text
	prevGold   int
	usedItems  map[[2]int]bool

	// Called once when the match ends; wired to the bot's stop+reset.
	onMatchEnd func()

	// Random gate, swappable in tests.
	roll func() float64
}

// NewEngine creates an engine in the initial loading state.
func NewEngine(cfg *Config, ctrl *Controller, sensors Sensors, screen *ScreenInfo) *Engine {
	e := &Engine{
		config:  cfg,
		ctrl:    ctrl,
		sensors: sensors,
		screen:  screen,
		roll:    rand.Float64,
	}
	e.Reset()
	return e
}

// Reset restores the engine to its initial state. Only safe to call while
// the decision loop is stopped.
func (e *Engine) Reset() {
	e.mainStatus = MainBase
	e.subStatus = SubLoading
	e.mainTime = math.Inf(-1)
	e.subTime = math.Inf(-1)
	e.level = 0
	e.abilityLevels = [abilityCount]int{0, 0, 0, 0, 1, 1}
	e.cooldowns = [abilityCount]float64{}
	e.hasTurretAggro = false
	e.lastSeenHealth = 0
	e.pastHealth = nil
	e.lastSeenEnemy = math.Inf(-1)
	e.shopAnchor = nil
	e.prevGold = -1
	e.usedItems = make(map[[2]int]bool)
	e.sensors.ResetLocation()
}

// Status returns the current status pair for display.
func (e *Engine) Status() string {
	return e.mainStatus.String() + "/" + e.subStatus.String()
}

// switchStatus applies the timer-reset law: the sub timer resets on any
// change, the main timer only on a main change.
func (e *Engine) switchStatus(newMain MainStatus, newSub SubStatus) {
	mainChanged := e.mainStatus != newMain
	if mainChanged {
		LogDebug("Switching main status from %s to %s", e.mainStatus, newMain)
		e.mainStatus = newMain
		e.mainTime = 0
	}
	if e.subStatus != newSub || mainChanged {
		LogDebug("Switching sub status from %s to %s", e.subStatus, newSub)
		e.subStatus = newSub
		e.subTime = 0
	}
}

// Process runs one decision cycle over a perception snapshot. dt is the
// wall-clock time since the previous cycle in seconds.
func (e *Engine) Process(obs *Observation, dt float64) {
	e.now += dt
	e.mainTime += dt
	e.subTime += dt
	for i := range e.cooldowns {
		e.cooldowns[i] = math.Max(0, e.cooldowns[i]-dt)
	}

	switch e.mainStatus {
	case MainBase:
		e.doBase(obs)
	case MainLaning:
		e.doLaning(obs)
	case MainEnd:
		LogInfo("Match over, stopping and resetting")
		if e.onMatchEnd != nil {
			e.onMatchEnd()
		}
	default:
		LogWarn("Unknown main status %d", e.mainStatus)
	}
}

func (e *Engine) canUseAbility(n int) bool {
	return e.abilityLevels[n] > 0 && e.cooldowns[n] <= 0
}

func (e *Engine) useAbility(n int) {
	if !e.canUseAbility(n) {
		return
	}
	LogInfo("Using %s", abilityKeys[n])
	e.ctrl.UseAction(abilityKeys[n])
	e.cooldowns[n] = cooldownFor(n, e.abilityLevels[n])
}

func (e *Engine) useSkillshot(n int, x, y float64) {
	if !e.canUseAbility(n) {
		return
	}
	LogInfo("Using %s at (%.0f, %.0f)", abilityKeys[n], x, y)
	e.ctrl.UseSkillshot(abilityKeys[n], x, y)
	e.cooldowns[n] = cooldownFor(n, e.abilityLevels[n])
}

// levelUp ranks an ability when the OCR'd level rises, then rebuilds the
// rank table from the leveling order. Unreadable levels (-1) are ignored
// rather than treated as a level reset.
func (e *Engine) levelUp(p *Champion) {
	if p.Level < 1 {
		return
	}
	if e.level < p.Level && e.level < 18 {
		key := abilityKeys[levelOrder[p.Level-1]]
		LogInfo("Leveling %s", key)
		e.ctrl.LevelAbility(key)
	}
	e.level = p.Level
	for i := 0; i < 4; i++ {
		e.abilityLevels[i] = 0
	}
	for i := 0; i < e.level && i < len(levelOrder); i++ {
		e.abilityLevels[levelOrder[i]]++
	}
}

func inTurretRange(t Structure, p Positioned, delta float64) bool {
	return t.Center().Distance(p.Center()) < turretRange+delta
}

// nearestChampionDist returns the screen distance to the closest champion
// in the list.
func nearestChampionDist(from Point, champs []Champion) float64 {
	best := math.Inf(1)
	for _, c := range champs {
		best = math.Min(best, c.Center().Distance(from))
	}
	return best
}

// doLaning is the active-play handler.
func (e *Engine) doLaning(obs *Observation) {
	player := obs.Player
	if player == nil {
		LogWarn("Cannot find controllable champion")
		e.switchStatus(MainLaning, SubUnknown)
		if e.subTime >= laningDeathGrace {
			// Assume death and recover through the shop.
			LogInfo("Assuming the champion died")
			e.switchStatus(MainBase, SubShopping)
		}
		return
	}
	e.sensors.UpdateLocation(obs.Frame)

	e.levelUp(player)
	hasStun := e.sensors.HasBuffStacks(obs.Frame, *player)
	self := player.Center()
	retreatDir := e.sensors.RetreatDir()
	pushDir := e.sensors.PushDir()
	if len(obs.EnemyChampions) > 0 {
		e.lastSeenEnemy = e.now
	}

	// Turret aggro: standing in an enemy structure's radius is only safe
	// while it has other things to shoot and our health is not dropping.
	playerInRange := false
	enemyInRange := false
	alliesInRange := 0
	for _, t := range obs.EnemyStructures {
		if inTurretRange(t, player, 0) {
			playerInRange = true
		}
		for _, p := range obs.EnemyChampions {
			if inTurretRange(t, p, 0) {
				enemyInRange = true
			}
		}
		for _, m := range obs.AllyMinions {
			if inTurretRange(t, m, -100) {
				alliesInRange++
			}
		}
		for _, p := range obs.AllyChampions {
			if inTurretRange(t, p, -100) {
				alliesInRange++
			}
		}
	}
	if !playerInRange {
		e.hasTurretAggro = false
	} else if enemyInRange || alliesInRange <= 1 || player.Health < e.lastSeenHealth-0.1 {
		e.hasTurretAggro = true
	}

	// Smoothed health delta: chip damage barely moves the average, a real
	// engagement does.
	e.pastHealth = append(e.pastHealth, player.Health)
	if len(e.pastHealth) > 4 {
		e.pastHealth = e.pastHealth[len(e.pastHealth)-4:]
	}
	avg := 0.0
	for _, h := range e.pastHealth {
		avg += h
	}
	avg /= float64(len(e.pastHealth))
	healthChange := player.Health - avg
	if healthChange <= -0.0025 {
		if e.subStatus != SubAllIn && e.subStatus != SubTrading {
			LogInfo("Taking damage, falling back a bit")
			e.ctrl.RightClickDirection(player, 300, RNumAbs(retreatDir, 15))
			e.lastSeenHealth = player.Health
			return
		} else if e.subStatus == SubTrading {
			e.useAbility(abilityE)
		}
	}
	e.lastSeenHealth = player.Health

	// Heal at low health unless the drop is too steep to matter.
	if player.Health < 0.15 && healthChange > -0.25 && e.canUseAbility(abilityF) {
		LogInfo("Healing due to low health")
		e.useAbility(abilityF)
	}

	// Should we back?
	if e.subStatus != SubBacking && e.subStatus != SubBackingWait && e.subStatus != SubAllIn {
		if math.Abs(healthChange) > 0.02 {
			gold := e.sensors.ReadGold(obs.Frame)
			if (e.level < 18 && gold >= 2500) || (gold >= 1300 && player.Health < 0.7) {
				LogInfo("Backing to buy items (%d gold)", gold)
				e.switchStatus(MainLaning, SubBacking)
			}
		}
		if player.Health < 0.35 {
			LogInfo("Backing due to low health (%.2f)", player.Health)
			e.switchStatus(MainLaning, SubBacking)
		} else if player.Mana < 0.05 {
			LogInfo("Backing due to low mana (%.2f)", player.Mana)
			e.switchStatus(MainLaning, SubBacking)
		} else if e.mainTime > 300 {
			LogInfo("Backing due to too much time passed (%.0f seconds)", e.mainTime)
			e.switchStatus(MainLaning, SubBacking)
		}
	}

	// Should we push?
	if e.subStatus != SubPushing && e.subStatus != SubBacking && e.subStatus != SubBackingWait {
		underAllyTurret := false
		for _, t := range obs.AllyStructures {
			if inTurretRange(t, player, 0) {
				underAllyTurret = true
			}
		}
		if e.lastSeenEnemy+10 < e.now {
			LogInfo("No enemies seen in a while, switching to pushing")
			e.switchStatus(MainLaning, SubPushing)
		} else if len(obs.EnemyChampions) == 0 && underAllyTurret {
			LogInfo("Under ally turret with no enemies, switching to pushing")
			e.switchStatus(MainLaning, SubPushing)
		}
	}

	// Posture transitions.
	nearestEnemy := nearestChampionDist(self, obs.EnemyChampions)
	switch e.subStatus {
	case SubUnknown:
		e.switchStatus(MainLaning, SubPassive)
	case SubPassive:
		if player.Health >= 0.5 && hasStun && !e.hasTurretAggro {
			LogInfo("Stun up and safe, switching to aggressive")
			e.switchStatus(MainLaning, SubAggressive)
		}
	case SubAggressive:
		if player.Health < 0.5 {
			LogInfo("Low health, switching to passive")
			e.switchStatus(MainLaning, SubPassive)
		} else if !hasStun {
			LogInfo("Stun down, switching to passive")
			e.switchStatus(MainLaning, SubPassive)
		} else if e.hasTurretAggro {
			LogInfo("Under turret aggro, switching to passive")
			e.switchStatus(MainLaning, SubPassive)
		}
	case SubTrading:
		if e.hasTurretAggro {
			LogInfo("In turret aggro range, switching to passive")
			e.switchStatus(MainLaning, SubPassive)
		}
		if nearestEnemy >= basicRange {
			LogInfo("No enemy champions in range, switching to passive")
			e.switchStatus(MainLaning, SubPassive)
		}
		if e.subTime > 2 {
			LogInfo("Trading timer expired, switching to passive")
			e.switchStatus(MainLaning, SubPassive)
		}
	case SubAllIn:
		if e.subTime > 2.5 && e.hasTurretAggro {
			LogInfo("All-in timer expired with turret aggro, switching to passive")
			e.switchStatus(MainLaning, SubPassive)
		}
	case SubPushing:
		if len(obs.EnemyChampions) > 0 {
			LogInfo("Enemy champions visible, switching to passive")
			e.switchStatus(MainLaning, SubPassive)
		}
	}

	// Outnumbered and too close: just leave.
	alliesClose := 0
	for _, p := range obs.AllyChampions {
		if p.Center().Distance(self) < riskRange {
			alliesClose++
		}
	}
	if len(obs.EnemyChampions) > alliesClose+1 && nearestEnemy < riskRange+50 {
		LogInfo("Too many enemies, backing off")
		e.ctrl.RightClickDirection(player, 300, retreatDir)
		return
	}

	// Enemy champions in trade range?
	if e.subStatus != SubTrading && e.subStatus != SubBacking &&
		e.subStatus != SubBackingWait && e.subStatus != SubAllIn {
		if !e.hasTurretAggro && nearestEnemy < basicRange {
			LogInfo("Enemy champions in range, switching to trading")
			e.switchStatus(MainLaning, SubTrading)
		}
	}

	// Can we all-in?
	if e.subStatus != SubAllIn && e.subStatus != SubBacking &&
		e.subStatus != SubBackingWait && len(obs.EnemyChampions) > 0 {
		power := e.allInPower(player, obs, hasStun)
		const powerNeeded = 0.25
		if power > powerNeeded && nearestEnemy < allInRange+50 {
			LogWarn("Power = %.2f > %.2f, going all in!", power, powerNeeded)
			e.switchStatus(MainLaning, SubAllIn)
		} else {
			LogDebug("Power = %.2f < %.2f", power, powerNeeded)
		}
	}

	switch e.subStatus {
	case SubPassive, SubAggressive, SubPushing:
		e.doLaningPassive(player, obs, hasStun, retreatDir, pushDir)
	case SubTrading:
		e.doLaningTrading(player, obs, retreatDir)
	case SubAllIn:
		e.doLaningAllIn(player, obs)
	case SubBacking, SubBackingWait:
		e.doLaningBacking(player, obs, healthChange, retreatDir)
	default:
		LogWarn("Unknown sub status %s", e.subStatus)
	}
}

// allInPower estimates whether committing to a fight is winnable. Levels
// weigh in exponentially, missing health decays a combatant's worth, and
// hostile turrets count as an extra high-level enemy.
func (e *Engine) allInPower(player *Champion, obs *Observation, hasStun bool) float64 {
	myDamage := 0.0
	if e.canUseAbility(abilityQ) {
		myDamage += 0.15
	}
	if !e.canUseAbility(abilityW) {
		myDamage += 0.15
	}
	if e.canUseAbility(abilityR) {
		myDamage += 0.4
	}
	if player.Mana < 0.25 {
		myDamage /= 2
	}
	if !hasStun {
		myDamage /= 1.5
	}

	type combatant struct {
		level  int
		health float64
		damage float64
		ally   bool
	}
	var all []combatant
	for _, p := range obs.AllyChampions {
		all = append(all, combatant{p.Level, p.Health, 0.5, true})
	}
	for _, p := range obs.EnemyChampions {
		all = append(all, combatant{p.Level, p.Health, 0.5, false})
	}
	all = append(all, combatant{player.Level, player.Health, myDamage, true})
	if e.hasTurretAggro {
		all = append(all, combatant{10, 1, 0.5, false})
	}
	allyTurretInPlay := false
	for _, t := range obs.AllyStructures {
		for _, p := range obs.EnemyChampions {
			if inTurretRange(t, p, -100) {
				allyTurretInPlay = true
			}
		}
	}
	if allyTurretInPlay {
		all = append(all, combatant{10, 1, 0.5, true})
	}

	avgLevel := 0.0
	for _, c := range all {
		avgLevel += float64(c.level)
	}
	avgLevel /= float64(len(all))

	power := 0.0
	for _, c := range all {
		p := c.damage * math.Pow(1.3, float64(c.level)-avgLevel) * math.Pow(c.health, 1.15)
		if c.ally {
			power += p
		} else {
			power -= p
		}
	}
	return power
}

// doLaningPassive covers the passive, aggressive and pushing postures:
// last-hit what is safe, poke open structures, otherwise hover behind the
// allied front line.
func (e *Engine) doLaningPassive(player *Champion, obs *Observation, hasStun bool, retreatDir, pushDir float64) {
	self := player.Center()
	if len(obs.AllyMinions) == 0 && len(obs.AllyChampions) == 0 && len(obs.AllyStructures) == 0 {
		// Nothing friendly on screen; fall back toward the lane.
		e.ctrl.RightClickDirection(player, 300, retreatDir)
		return
	}
	if e.hasTurretAggro {
		LogInfo("Turret aggroed, backing off")
		e.ctrl.RightClickDirection(player, 300, retreatDir)
		return
	}

	// Minions low enough to finish with the nuke.
	var lastHits []Minion
	for _, m := range obs.EnemyMinions {
		if m.Center().Distance(self) >= basicRange+150 {
			continue
		}
		if m.Health > lastHitThreshold[e.abilityLevels[abilityQ]] {
			continue
		}
		lastHits = append(lastHits, m)
	}
	if len(lastHits) > 0 && e.roll() < 0.75 {
		m := closestMinion(lastHits, self)
		LogInfo("Last hitting minion with HP %.2f", m.Health)
		c := m.Center()
		if e.canUseAbility(abilityQ) && (!hasStun || e.subStatus == SubPushing || e.roll() < 0.08) {
			dist, _ := AbsoluteToAngle(self.X, self.Y, c.X, c.Y)
			if dist >= basicRange {
				e.ctrl.MoveTowards(player, c.X, c.Y)
			}
			e.useSkillshot(abilityQ, c.X, c.Y)
		}
		e.ctrl.AttackMove(c.X, c.Y)
		return
	}

	// An open enemy structure with enough backup nearby.
	if len(obs.EnemyStructures) > 0 && e.roll() < 0.75 {
		t := obs.EnemyStructures[0]
		backup := 0
		for _, m := range obs.AllyMinions {
			if inTurretRange(t, m, -150) {
				backup++
			}
		}
		for _, p := range obs.AllyChampions {
			if inTurretRange(t, p, -150) {
				backup++
			}
		}
		if backup > 1 {
			LogInfo("Attacking enemy structure")
			if e.roll() < 0.5 {
				c := t.Center()
				e.ctrl.AttackMove(c.X, c.Y)
			}
			return
		}
	}

	// When pushing, burn the cone on the closest wave.
	if e.subStatus == SubPushing && len(obs.EnemyMinions) > 0 && e.roll() < 0.75 {
		m := closestMinion(obs.EnemyMinions, self)
		c := m.Center()
		if c.Distance(self) < basicRange {
			e.useSkillshot(abilityW, c.X, c.Y)
		}
		e.ctrl.AttackMove(c.X, c.Y)
		return
	}

	// Hover just behind the three most forward allies.
	type fwd struct {
		p    Point
		rank float64
	}
	var allies []fwd
	for _, m := range obs.AllyMinions {
		c := m.Center()
		allies = append(allies, fwd{c, c.Y - c.X})
	}
	for _, p := range obs.AllyChampions {
		c := p.Center()
		allies = append(allies, fwd{c, c.Y - c.X})
	}
	for _, s := range obs.AllyStructures {
		c := s.Center()
		allies = append(allies, fwd{c, c.Y - c.X})
	}
	for i := 1; i < len(allies); i++ {
		for j := i; j > 0 && allies[j].rank < allies[j-1].rank; j-- {
			allies[j], allies[j-1] = allies[j-1], allies[j]
		}
	}
	if len(allies) > 3 {
		allies = allies[:3]
	}
	var ax, ay float64
	for _, a := range allies {
		ax += a.p.X
		ay += a.p.Y
	}
	ax /= float64(len(allies))
	ay /= float64(len(allies))

	backDist := 150.0
	if (e.subStatus == SubAggressive || e.subStatus == SubPushing) && !e.hasTurretAggro {
		backDist = 25
	}
	tx, ty := AngleToAbsolute(ax, ay, backDist, RNumAbs(retreatDir, 3))
	switch roll := e.roll(); {
	case roll <= 0.3:
		tx, ty = AngleToAbsolute(tx, ty, RNum(120, 0.2), RNumAbs(pushDir-90, 5))
	case roll <= 0.6:
		tx, ty = AngleToAbsolute(tx, ty, RNum(120, 0.2), RNumAbs(pushDir+90, 5))
	default:
		// Hold position this cycle.
		return
	}
	dist, angle := AbsoluteToAngle(self.X, self.Y, tx, ty)
	dist = math.Min(200, dist)
	e.ctrl.RightClickDirection(player, dist, angle)
}

// doLaningTrading exchanges abilities with the nearest enemy champion
// while drifting back.
func (e *Engine) doLaningTrading(player *Champion, obs *Observation, retreatDir float64) {
	self := player.Center()
	target, ok := closestChampion(obs.EnemyChampions, self)
	if !ok {
		LogInfo("No one to trade with, switching to passive")
		e.switchStatus(MainLaning, SubPassive)
		return
	}
	// Committing to a trade forfeits turret safety assumptions.
	e.hasTurretAggro = true

	c := target.Center()
	if c.Distance(self) < basicRange {
		LogInfo("Trading with enemy")
		e.useAbility(abilityE)
		if target.Health < 0.25 && e.canUseAbility(abilityR) {
			e.useSkillshot(abilityR, c.X, c.Y)
			return
		}
		if e.canUseAbility(abilityQ) {
			e.useSkillshot(abilityQ, c.X, c.Y)
			return
		}
		if e.canUseAbility(abilityW) {
			e.useSkillshot(abilityW, c.X, c.Y)
			return
		}
		e.ctrl.AttackMove(c.X, c.Y)
	}
	e.ctrl.RightClickDirection(player, 150, RNumAbs(retreatDir, 5))
}

// doLaningAllIn commits to killing the nearest enemy champion, flashing
// into range when the gap is right.
func (e *Engine) doLaningAllIn(player *Champion, obs *Observation) {
	self := player.Center()
	target, ok := closestChampion(obs.EnemyChampions, self)
	if !ok {
		LogInfo("No one to all-in, switching to passive")
		e.switchStatus(MainLaning, SubPassive)
		return
	}
	e.hasTurretAggro = true

	c := target.Center()
	dist := c.Distance(self)
	switch {
	case dist >= basicRange+50 && dist <= allInRange+50 && e.canUseAbility(abilityD):
		e.useSkillshot(abilityD, c.X, c.Y)
	case dist >= basicRange-25:
		e.useAbility(abilityE)
		e.ctrl.MoveTowards(player, c.X, c.Y)
	default:
		if e.canUseAbility(abilityW) {
			e.useSkillshot(abilityW, c.X, c.Y)
			return
		}
		if e.canUseAbility(abilityR) {
			d, angle := AbsoluteToAngle(self.X, self.Y, c.X, c.Y)
			d = math.Min(basicRange-75, d)
			tx, ty := AngleToAbsolute(self.X, self.Y, d, angle)
			e.useSkillshot(abilityR, tx, ty)
			return
		}
		if e.canUseAbility(abilityQ) {
			e.useSkillshot(abilityQ, c.X, c.Y)
			return
		}
		e.ctrl.AttackMove(c.X, c.Y)
	}
}

// doLaningBacking walks to safety and recalls. With enemies on screen it
// keeps running, spending flash as a last resort.
func (e *Engine) doLaningBacking(player *Champion, obs *Observation, healthChange, retreatDir float64) {
	noEnemies := len(obs.EnemyMinions) == 0 && len(obs.EnemyChampions) == 0 && len(obs.EnemyStructures) == 0
	if noEnemies {
		if e.subStatus == SubBacking {
			e.ctrl.RightClickDirection(player, 500, retreatDir)
			if e.subTime > 2 {
				LogInfo("Recalling")
				e.switchStatus(MainLaning, SubBackingWait)
				e.ctrl.PressKey("b")
			}
		} else if e.subTime > 9 {
			LogInfo("Recall done, switching to base")
			e.switchStatus(MainBase, SubShopping)
		}
		return
	}
	if e.subStatus != SubBacking {
		LogInfo("Backing off from enemies")
		e.switchStatus(MainLaning, SubBacking)
	}
	e.useAbility(abilityE)
	e.ctrl.RightClickDirection(player, 300, retreatDir)
	if player.Health < 0.3 && healthChange <= -0.15 && e.canUseAbility(abilityD) {
		LogInfo("Flashing as a last resort")
		e.ctrl.RightClickDirection(player, 300, retreatDir)
		e.useAbility(abilityD)
		e.ctrl.RightClickDirection(player, 300, retreatDir)
	}
}

func closestMinion(minions []Minion, from Point) Minion {
	best := minions[0]
	bestDist := best.Center().Distance(from)
	for _, m := range minions[1:] {
		if d := m.Center().Distance(from); d < bestDist {
			best, bestDist = m, d
		}
	}
	return best
}

func closestChampion(champs []Champion, from Point) (Champion, bool) {
	if len(champs) == 0 {
		return Champion{}, false
	}
	best := champs[0]
	bestDist := best.Center().Distance(from)
	for _, c := range champs[1:] {
		if d := c.Center().Distance(from); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}
