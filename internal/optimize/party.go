// Package optimize searches for the buff-cast allocation that maximizes one
// day of party damage. The search is a pure call tree over immutable
// characters; there is no shared mutable state and no concurrency.
package optimize

import (
	"fmt"
	"math"

	"github.com/velski/habopt/internal/model"
)

// pruneTolerance is how many consecutive non-improving buff counts the
// party search tries at one position before giving up on larger counts.
// The damage curves rise then fall, but the attack-count floor can produce
// a single flat or dipping step just before the true peak, so one extra
// step is allowed.
const pruneTolerance = 2

// TeamEval is the outcome of evaluating one full buff-cast assignment.
type TeamEval struct {
	Total     float64
	PerMember []float64
	TotalBuff model.Stats
}

// EvaluateTeam computes the total party damage for the given buff-cast
// assignment. Each member's casts buff the whole party. An assignment
// entry exceeding that member's affordable cast count is a caller contract
// violation and fails fast via model.ErrNotEnoughMana.
func EvaluateTeam(party []*model.Character, assignment []int) (TeamEval, error) {
	if len(assignment) != len(party) {
		return TeamEval{}, fmt.Errorf("assignment has %d entries for %d members", len(assignment), len(party))
	}

	var totalBuff model.Stats
	for i, c := range party {
		totalBuff = totalBuff.Add(c.BuffEffect().Scale(float64(assignment[i])))
	}

	eval := TeamEval{
		PerMember: make([]float64, len(party)),
		TotalBuff: totalBuff,
	}
	for i, c := range party {
		plan, err := c.MaxAttackDamage(totalBuff, assignment[i])
		if err != nil {
			return TeamEval{}, err
		}
		eval.PerMember[i] = plan.Damage + c.TaskDamage(totalBuff)
		eval.Total += eval.PerMember[i]
	}
	return eval, nil
}

// PartyResult is the best assignment found by BestAssignment.
type PartyResult struct {
	Assignment []int
	TeamEval
}

// BestAssignment finds the buff-cast count per member that maximizes total
// party damage, by recursive search over positions left to right. Each
// recursive call returns its own best (assignment, damage) pair, so sibling
// branches never observe each other's trial values.
func BestAssignment(party []*model.Character) (PartyResult, error) {
	if len(party) == 0 {
		return PartyResult{Assignment: []int{}}, nil
	}
	assignment, _, err := searchFrom(party, make([]int, len(party)), 0)
	if err != nil {
		return PartyResult{}, err
	}
	// Re-evaluate once for the per-member breakdown.
	eval, err := EvaluateTeam(party, assignment)
	if err != nil {
		return PartyResult{}, err
	}
	return PartyResult{Assignment: assignment, TeamEval: eval}, nil
}

// searchFrom optimizes positions pos..end with positions before pos fixed
// to prefix's values. It returns an owned assignment; prefix is never
// retained. At each position the scan over buff counts stops after
// pruneTolerance consecutive counts fail to improve on the best seen.
func searchFrom(party []*model.Character, prefix []int, pos int) ([]int, float64, error) {
	if pos == len(party) {
		eval, err := EvaluateTeam(party, prefix)
		if err != nil {
			return nil, 0, err
		}
		owned := make([]int, len(prefix))
		copy(owned, prefix)
		return owned, eval.Total, nil
	}

	best := math.Inf(-1)
	var bestAssignment []int
	misses := 0

	maxCasts := party[pos].MaxBuffCount()
	for k := 0; k <= maxCasts; k++ {
		trial := make([]int, len(prefix))
		copy(trial, prefix)
		trial[pos] = k

		assignment, total, err := searchFrom(party, trial, pos+1)
		if err != nil {
			return nil, 0, err
		}
		if total > best {
			best = total
			bestAssignment = assignment
			misses = 0
			continue
		}
		misses++
		if misses >= pruneTolerance {
			break
		}
	}
	return bestAssignment, best, nil
}
