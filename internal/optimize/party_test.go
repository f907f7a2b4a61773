package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velski/habopt/internal/model"
)

// gearedWarrior: level 20, equipment (0,10), allocated (0,10), day bonus.
// starting stats (20,40), capacity 70, buff effect ≈ 2.609 str per cast.
func gearedWarrior(t *testing.T, mana, dailies, habits int) *model.Character {
	t.Helper()
	c, err := model.NewCharacter("Ragna", model.ClassWarrior, 20,
		model.NewStats(0, 10), model.NewStats(0, 10), true, mana, dailies, habits)
	require.NoError(t, err)
	return c
}

func idleWarrior(t *testing.T) *model.Character {
	t.Helper()
	c, err := model.NewCharacter("Grog", model.ClassWarrior, 10,
		model.Stats{}, model.Stats{}, false, 0, 0, 0)
	require.NoError(t, err)
	return c
}

func testMage(t *testing.T) *model.Character {
	t.Helper()
	c, err := model.NewCharacter("Lia", model.ClassMage, 20,
		model.NewStats(10, 1), model.NewStats(10, 2), true, 70, 12, 5)
	require.NoError(t, err)
	return c
}

func testHealer(t *testing.T) *model.Character {
	t.Helper()
	c, err := model.NewCharacter("Mercy", model.ClassHealer, 20,
		model.NewStats(10, 10), model.Stats{}, false, 60, 10, 0)
	require.NoError(t, err)
	return c
}

// With no buffs: Ragna lands 6 attacks of 20 plus 8.35 task damage; the
// idle warrior contributes nothing.
func TestEvaluateTeam_AllZero(t *testing.T) {
	party := []*model.Character{gearedWarrior(t, 60, 10, 4), idleWarrior(t)}

	eval, err := EvaluateTeam(party, []int{0, 0})
	require.NoError(t, err)

	assert.InDelta(t, 128.35, eval.PerMember[0], 0.01)
	assert.Zero(t, eval.PerMember[1])
	assert.InDelta(t, 128.35, eval.Total, 0.01)
	assert.Equal(t, model.Stats{}, eval.TotalBuff)
}

// One warrior buff cast reaches the whole party: the total buff carries
// the caster's ≈2.609 str, and the caster pays two attacks for it.
func TestEvaluateTeam_BuffAppliesToWholeParty(t *testing.T) {
	party := []*model.Character{gearedWarrior(t, 60, 10, 4), idleWarrior(t)}

	eval, err := EvaluateTeam(party, []int{1, 0})
	require.NoError(t, err)

	assert.InDelta(t, 2.609, eval.TotalBuff.Str, 0.001)
	// 4 attacks of 55×42.609/112.609 ≈ 20.81, plus slightly buffed tasks.
	assert.InDelta(t, 91.68, eval.PerMember[0], 0.05)
}

func TestEvaluateTeam_LengthMismatch(t *testing.T) {
	party := []*model.Character{idleWarrior(t)}
	_, err := EvaluateTeam(party, []int{0, 0})
	assert.Error(t, err)
}

// An assignment above a member's affordable cast count is a contract
// violation and must fail fast, not clamp.
func TestEvaluateTeam_OverBudget(t *testing.T) {
	party := []*model.Character{gearedWarrior(t, 60, 0, 0)} // 3 casts affordable
	_, err := EvaluateTeam(party, []int{4})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotEnoughMana)
}

// exhaustiveBest scans every feasible assignment without pruning.
func exhaustiveBest(t *testing.T, party []*model.Character) ([]int, float64) {
	t.Helper()
	assignment := make([]int, len(party))
	best := -1.0
	var bestAssignment []int

	var walk func(pos int)
	walk = func(pos int) {
		if pos == len(party) {
			eval, err := EvaluateTeam(party, assignment)
			require.NoError(t, err)
			if eval.Total > best {
				best = eval.Total
				bestAssignment = append([]int(nil), assignment...)
			}
			return
		}
		for k := 0; k <= party[pos].MaxBuffCount(); k++ {
			assignment[pos] = k
			walk(pos + 1)
		}
		assignment[pos] = 0
	}
	walk(0)
	return bestAssignment, best
}

// The pruned search agrees with the unpruned scan on a party whose cast
// budgets (3, 2, 2) give 36 feasible assignments.
func TestBestAssignment_MatchesExhaustive(t *testing.T) {
	party := []*model.Character{
		gearedWarrior(t, 60, 10, 4),
		testHealer(t),
		testMage(t),
	}

	wantAssignment, wantTotal := exhaustiveBest(t, party)

	got, err := BestAssignment(party)
	require.NoError(t, err)
	assert.Equal(t, wantAssignment, got.Assignment)
	assert.InDelta(t, wantTotal, got.Total, 1e-9)
}

// Casting nothing is always a feasible assignment, so the optimum can
// never fall below it.
func TestBestAssignment_NeverWorseThanZero(t *testing.T) {
	parties := [][]*model.Character{
		{gearedWarrior(t, 60, 10, 4)},
		{gearedWarrior(t, 60, 10, 4), idleWarrior(t)},
		{testMage(t), testHealer(t)},
	}
	for _, party := range parties {
		zero, err := EvaluateTeam(party, make([]int, len(party)))
		require.NoError(t, err)

		got, err := BestAssignment(party)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Total, zero.Total)
	}
}

func TestBestAssignment_EmptyParty(t *testing.T) {
	got, err := BestAssignment(nil)
	require.NoError(t, err)
	assert.Empty(t, got.Assignment)
	assert.Zero(t, got.Total)
}

// The breakdown must agree with evaluating the returned assignment.
func TestBestAssignment_BreakdownConsistent(t *testing.T) {
	party := []*model.Character{gearedWarrior(t, 60, 10, 4), testHealer(t)}

	got, err := BestAssignment(party)
	require.NoError(t, err)
	require.Len(t, got.PerMember, len(party))

	sum := 0.0
	for _, d := range got.PerMember {
		sum += d
	}
	assert.InDelta(t, got.Total, sum, 1e-9)
}
