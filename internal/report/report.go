// Package report renders the core's numeric results as plain text. The
// strings are consumed by the CLI as-is; nothing downstream parses them.
package report

import (
	"fmt"
	"strings"

	"github.com/velski/habopt/internal/model"
	"github.com/velski/habopt/internal/optimize"
)

// Character renders the verbose per-character report: stats, crit numbers,
// buff counts, mana totals, and the task/attack/sustainable damage figures.
// All values print with one decimal place.
func Character(c *model.Character) (string, error) {
	sustain, err := c.SustainableBuffCount()
	if err != nil {
		return "", err
	}

	zero := model.Stats{}
	plan, err := c.MaxAttackDamage(zero, 0)
	if err != nil {
		return "", err
	}

	start := c.StartingStats()
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, level %d)\n", c.Name(), c.Class(), c.Level())
	fmt.Fprintf(&b, "  starting stats:    int %.1f, str %.1f\n", start.Int, start.Str)
	fmt.Fprintf(&b, "  crit:              %.1f%% chance, +%.1f%% damage\n",
		c.CritChance(zero)*100, c.CritBonus(zero)*100)
	fmt.Fprintf(&b, "  buff per cast:     int %.1f, str %.1f\n", c.BuffEffect().Int, c.BuffEffect().Str)
	fmt.Fprintf(&b, "  buff casts:        %d affordable, %d sustainable\n", c.MaxBuffCount(), sustain)
	fmt.Fprintf(&b, "  mana:              %d of %.1f, +%.1f from tasks, +%.1f from cron\n",
		c.StartingMana(), c.ManaCapacity(zero), c.TaskRegen(zero), c.CronRegen())
	fmt.Fprintf(&b, "  task damage:       %.1f\n", c.TaskDamage(zero))
	fmt.Fprintf(&b, "  attack damage:     %.1f (%d casts of %.1f)\n",
		plan.Damage, plan.NumAttacks, plan.PerAttack)
	fmt.Fprintf(&b, "  sustainable/day:   %.1f\n", c.SustainableDamage(sustain))
	return b.String(), nil
}

// Attacker renders one single-attacker optimum.
func Attacker(c *model.Character, res optimize.AttackerResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %.1f damage with %d self-buffs\n", c.Name(), res.Damage, res.Buffs)
	fmt.Fprintf(&b, "  team buff:         int %.1f, str %.1f\n", res.TotalBuff.Int, res.TotalBuff.Str)
	fmt.Fprintf(&b, "  attacks:           %d casts of %.1f, +%.1f mana from tasks\n",
		res.Plan.NumAttacks, res.Plan.PerAttack, res.Plan.TaskRegen)
	return b.String()
}

// Party renders the party-wide optimum with the per-member breakdown.
func Party(party []*model.Character, res optimize.PartyResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "party optimum: %.1f damage\n", res.Total)
	fmt.Fprintf(&b, "  team buff: int %.1f, str %.1f\n", res.TotalBuff.Int, res.TotalBuff.Str)
	for i, c := range party {
		fmt.Fprintf(&b, "  %-16s %d buffs, %.1f damage\n", c.Name(), res.Assignment[i], res.PerMember[i])
	}
	return b.String()
}
