package model

import (
	"errors"
	"fmt"
	"math"
)

// minTaskValueFactor is the worst-case (most decayed) reward value of a
// task. All task damage is estimated at this floor so the optimizer never
// promises more than a fully decayed day can deliver.
var minTaskValueFactor = math.Pow(0.9747, 21.27)

// maxSustainIterations bounds the sustainable-buff-count fixed point.
// The domain guarantees convergence (the buff curves are bounded), but we
// do not trust that blindly.
const maxSustainIterations = 100

// ErrNotEnoughMana reports a requested buff-cast count whose mana cost
// exceeds the character's starting mana.
var ErrNotEnoughMana = errors.New("not enough starting mana")

// Character is one validated party member. All fields are set at
// construction and never mutated; every derived quantity below is a pure
// function of them.
type Character struct {
	name         string
	class        Class
	level        int
	equipment    Stats
	allocated    Stats
	dayBonus     bool
	startingMana int
	dailies      int // projected dailies + to-dos completed in the day
	habits       int // projected habit clicks in the day
}

// NewCharacter validates the record and constructs an immutable character.
// Violations fail construction; nothing is clamped.
func NewCharacter(name string, class Class, level int, equipment, allocated Stats, dayBonus bool, startingMana, dailies, habits int) (*Character, error) {
	if level < 1 {
		return nil, fmt.Errorf("character %q: level must be >= 1, got %d", name, level)
	}
	if equipment.Int < 0 || equipment.Str < 0 {
		return nil, fmt.Errorf("character %q: equipment stats must be >= 0, got (%g, %g)", name, equipment.Int, equipment.Str)
	}
	if allocated.Int < 0 || allocated.Str < 0 {
		return nil, fmt.Errorf("character %q: allocated stats must be >= 0, got (%g, %g)", name, allocated.Int, allocated.Str)
	}
	if sum := allocated.Int + allocated.Str; sum > float64(level) {
		return nil, fmt.Errorf("character %q: allocated stats sum %g exceeds level %d", name, sum, level)
	}
	if startingMana < 0 {
		return nil, fmt.Errorf("character %q: starting mana must be >= 0, got %d", name, startingMana)
	}
	if dailies < 0 {
		return nil, fmt.Errorf("character %q: dailies count must be >= 0, got %d", name, dailies)
	}
	if habits < 0 {
		return nil, fmt.Errorf("character %q: habits count must be >= 0, got %d", name, habits)
	}

	c := &Character{
		name:         name,
		class:        class,
		level:        level,
		equipment:    equipment,
		allocated:    allocated,
		dayBonus:     dayBonus,
		startingMana: startingMana,
		dailies:      dailies,
		habits:       habits,
	}

	if capacity := c.ManaCapacity(Stats{}); float64(startingMana) > capacity {
		return nil, fmt.Errorf("character %q: starting mana %d exceeds capacity %g", name, startingMana, capacity)
	}
	return c, nil
}

// Name returns the display name.
func (c *Character) Name() string { return c.name }

// Class returns the character's class.
func (c *Character) Class() Class { return c.class }

// Level returns the character's level.
func (c *Character) Level() int { return c.level }

// Equipment returns the equipment stat bonus.
func (c *Character) Equipment() Stats { return c.equipment }

// Allocated returns the player-allocated stat points.
func (c *Character) Allocated() Stats { return c.allocated }

// DayBonus reports whether the perfect-day stat bonus applies.
func (c *Character) DayBonus() bool { return c.dayBonus }

// StartingMana returns the mana available at the start of the day.
func (c *Character) StartingMana() int { return c.startingMana }

// Dailies returns the projected dailies-and-to-dos count.
func (c *Character) Dailies() int { return c.dailies }

// Habits returns the projected habit click count.
func (c *Character) Habits() int { return c.habits }

// UnbuffedStats returns base stats before any buff. The perfect-day bonus
// counts as a buff and is excluded here.
// Formula: floor(level/2) on both components + equipment + allocated.
func (c *Character) UnbuffedStats() Stats {
	return Stats{}.AddScalar(float64(c.level / 2)).Add(c.equipment).Add(c.allocated)
}

// StartingStats returns the stats at the start of the day. The perfect-day
// bonus behaves like a buff of floor((level+1)/2) on both components.
func (c *Character) StartingStats() Stats {
	s := c.UnbuffedStats()
	if c.dayBonus {
		s = s.AddScalar(float64((c.level + 1) / 2))
	}
	return s
}

// ManaCapacity returns the maximum storable mana under the given team buff.
// Formula: 2 × buffed intelligence + 30.
func (c *Character) ManaCapacity(buffs Stats) float64 {
	return 2*(c.StartingStats().Int+buffs.Int) + 30
}

// CronRegen returns the mana restored by the end-of-day cron, a tenth of
// the unbuffed capacity.
func (c *Character) CronRegen() float64 {
	return c.ManaCapacity(Stats{}) / 10
}

// TaskRegen returns the expected mana earned from completing the projected
// tasks, as a fraction of buffed capacity. A daily or to-do restores 1% of
// capacity; a habit click restores a quarter of that, since habits are
// assumed completed at half rate on average.
func (c *Character) TaskRegen(buffs Stats) float64 {
	return c.ManaCapacity(buffs) * (float64(c.dailies)*0.01 + float64(c.habits)*0.0025)
}

// BuffEffect returns the stat gain one team buff cast grants the whole
// party. Buff strength scales off un-buffed stats only.
func (c *Character) BuffEffect() Stats {
	return classTemplates[c.class].buffEffect(c.UnbuffedStats())
}

// MaxBuffCount returns how many buff casts the starting mana alone can pay
// for, ignoring regeneration.
func (c *Character) MaxBuffCount() int {
	return int(float64(c.startingMana) / classTemplates[c.class].buffCost)
}

// SustainableBuffCount returns the largest buff-cast count the daily mana
// income can fund indefinitely. Computed by fixed-point iteration: the buff
// raises intelligence, which raises capacity, which raises task regen,
// which may fund another cast. The sequence is non-decreasing and bounded;
// exceeding maxSustainIterations is an internal invariant violation.
func (c *Character) SustainableBuffCount() (int, error) {
	buffCost := classTemplates[c.class].buffCost
	effect := c.BuffEffect()

	n := int((c.TaskRegen(Stats{}) + c.CronRegen()) / buffCost)
	for i := 0; i < maxSustainIterations; i++ {
		next := int((c.TaskRegen(effect.Scale(float64(n))) + c.CronRegen()) / buffCost)
		if next <= n {
			return n, nil
		}
		n = next
	}
	return 0, fmt.Errorf("character %q: sustainable buff count did not converge in %d iterations", c.name, maxSustainIterations)
}

// TaskDamage returns the damage dealt by completing the projected tasks
// under the given team buff. Habits count as half a task; every task is
// valued at the decayed minimum and no crit is assumed.
// Formula: (dailies + habits/2) × (1 + 0.005 × buffed str) × minTaskValueFactor.
func (c *Character) TaskDamage(buffs Stats) float64 {
	str := c.StartingStats().Str + buffs.Str
	return (float64(c.dailies) + float64(c.habits)/2) * (1 + 0.005*str) * minTaskValueFactor
}

// CritChance returns the per-task critical hit probability under the given
// buff. Informational only: reported, never applied to optimizer totals.
func (c *Character) CritChance(buffs Stats) float64 {
	str := c.StartingStats().Str + buffs.Str
	return 0.03 * (1 + str/100)
}

// CritBonus returns the extra damage multiplier of a critical hit.
// Informational only, like CritChance.
func (c *Character) CritBonus(buffs Stats) float64 {
	str := c.StartingStats().Str + buffs.Str
	return 0.5 + 4*str/(str+200)
}

// AttackPlan is the breakdown behind a MaxAttackDamage result, kept for
// reporting; downstream math uses only Damage.
type AttackPlan struct {
	Damage     float64
	NumAttacks int
	PerAttack  float64
	TaskRegen  float64
}

// MaxAttackDamage returns the total attack-spell damage achievable in one
// day under the given team buff, after paying for numBuffsCast buff casts.
// The casts must be affordable from starting mana alone; otherwise
// ErrNotEnoughMana is returned.
func (c *Character) MaxAttackDamage(buffs Stats, numBuffsCast int) (AttackPlan, error) {
	tmpl := classTemplates[c.class]
	buffMana := float64(numBuffsCast) * tmpl.buffCost
	if buffMana > float64(c.startingMana) {
		return AttackPlan{}, fmt.Errorf("character %q: %d buff casts cost %g mana, have %d: %w",
			c.name, numBuffsCast, buffMana, c.startingMana, ErrNotEnoughMana)
	}

	regen := c.TaskRegen(buffs)
	totalMana := float64(c.startingMana) + regen
	numAttacks := int((totalMana - buffMana) / tmpl.attackCost)
	perAttack := tmpl.attackDamage(c.StartingStats().Add(buffs))

	return AttackPlan{
		Damage:     perAttack * float64(numAttacks),
		NumAttacks: numAttacks,
		PerAttack:  perAttack,
		TaskRegen:  regen,
	}, nil
}

// SustainableDamage returns the daily damage fundable from mana income
// alone (task + cron regen, starting mana untouched) at the given buff
// count. Used by the verbose report to show a day-over-day repeatable
// figure next to the one-shot maximum.
func (c *Character) SustainableDamage(numBuffsCast int) float64 {
	tmpl := classTemplates[c.class]
	buffs := c.BuffEffect().Scale(float64(numBuffsCast))
	income := c.TaskRegen(buffs) + c.CronRegen()
	numAttacks := int((income - float64(numBuffsCast)*tmpl.buffCost) / tmpl.attackCost)
	if numAttacks < 0 {
		numAttacks = 0
	}
	return tmpl.attackDamage(c.StartingStats().Add(buffs))*float64(numAttacks) + c.TaskDamage(buffs)
}
