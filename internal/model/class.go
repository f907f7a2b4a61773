package model

import (
	"fmt"
	"math"
	"strings"
)

// Class identifies one of the four fixed character classes.
// The set is closed by the game rules; there is no extension point.
type Class int

const (
	ClassWarrior Class = iota
	ClassMage
	ClassHealer
	ClassRogue
)

// String returns the lowercase class name as it appears in roster rows.
func (c Class) String() string {
	switch c {
	case ClassWarrior:
		return "warrior"
	case ClassMage:
		return "mage"
	case ClassHealer:
		return "healer"
	case ClassRogue:
		return "rogue"
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// ParseClass matches a class name case-insensitively.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(s) {
	case "warrior":
		return ClassWarrior, nil
	case "mage":
		return ClassMage, nil
	case "healer":
		return ClassHealer, nil
	case "rogue":
		return ClassRogue, nil
	}
	return 0, fmt.Errorf("unknown class %q", s)
}

// classTemplate binds the per-class mana costs and damage curves.
// buffEffect takes the caster's un-buffed stats; attackDamage takes the
// current (buffed) stats. All four curves are asymptotic in the relevant
// stat, which is what makes the optimizers' rise-then-fall pruning sound.
type classTemplate struct {
	attackCost   float64
	buffCost     float64
	buffEffect   func(unbuffed Stats) Stats
	attackDamage func(current Stats) float64
}

var zeroBuff = func(Stats) Stats { return Stats{} }
var zeroDamage = func(Stats) float64 { return 0 }

// classTemplates is indexed by Class.
//
// Formulas:
//
//	warrior buff:   str × 20/(str+200)  (valiance, strength only)
//	warrior attack: str × 55/(str+70)   (brutal smash)
//	mage buff:      int × 30/(int+200)  (earthquake, intelligence only)
//	mage attack:    ceil(int/10)        (burst of flames)
//
// Healer and rogue deal no spell damage and grant no team buff; they still
// pay mana costs and contribute task damage through the character model.
var classTemplates = [...]classTemplate{
	ClassWarrior: {
		attackCost: 10,
		buffCost:   20,
		buffEffect: func(u Stats) Stats {
			return Stats{Str: 20 * u.Str / (u.Str + 200)}
		},
		attackDamage: func(s Stats) float64 {
			return 55 * s.Str / (s.Str + 70)
		},
	},
	ClassMage: {
		attackCost: 10,
		buffCost:   35,
		buffEffect: func(u Stats) Stats {
			return Stats{Int: 30 * u.Int / (u.Int + 200)}
		},
		attackDamage: func(s Stats) float64 {
			return math.Ceil(s.Int / 10)
		},
	},
	ClassHealer: {
		attackCost:   15,
		buffCost:     30,
		buffEffect:   zeroBuff,
		attackDamage: zeroDamage,
	},
	ClassRogue: {
		attackCost:   10,
		buffCost:     25,
		buffEffect:   zeroBuff,
		attackDamage: zeroDamage,
	},
}

// AttackCost returns the mana cost of one attack spell cast.
func (c Class) AttackCost() float64 { return classTemplates[c].attackCost }

// BuffCost returns the mana cost of one team buff cast.
func (c Class) BuffCost() float64 { return classTemplates[c].buffCost }
