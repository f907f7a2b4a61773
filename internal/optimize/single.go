package optimize

import (
	"fmt"

	"github.com/velski/habopt/internal/model"
)

// AttackerResult is the outcome of BestSelfBuffs for one attacker.
type AttackerResult struct {
	Damage    float64
	Buffs     int
	TotalBuff model.Stats
	Plan      model.AttackPlan
}

// BestSelfBuffs finds the best number of self-buff casts for one attacker,
// assuming every teammate casts their own affordable maximum. The teammate
// contribution is an assumption of this mode, not itself optimized.
//
// The scan stops at the first buff count that fails to improve, assuming a
// strictly unimodal damage curve. This is stricter than the party-wide
// search's one-step dip tolerance; both behaviors are kept as designed.
func BestSelfBuffs(attacker *model.Character, party []*model.Character) (AttackerResult, error) {
	var teammateBuff model.Stats
	found := false
	for _, c := range party {
		if c == attacker {
			found = true
			continue
		}
		teammateBuff = teammateBuff.Add(c.BuffEffect().Scale(float64(c.MaxBuffCount())))
	}
	if !found {
		return AttackerResult{}, fmt.Errorf("attacker %q is not a party member", attacker.Name())
	}

	effect := attacker.BuffEffect()
	var best AttackerResult
	for k := 0; k <= attacker.MaxBuffCount(); k++ {
		totalBuff := teammateBuff.Add(effect.Scale(float64(k)))
		plan, err := attacker.MaxAttackDamage(totalBuff, k)
		if err != nil {
			return AttackerResult{}, err
		}
		damage := plan.Damage + attacker.TaskDamage(totalBuff)
		if k > 0 && damage <= best.Damage {
			break
		}
		best = AttackerResult{Damage: damage, Buffs: k, TotalBuff: totalBuff, Plan: plan}
	}
	return best, nil
}
