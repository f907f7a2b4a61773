package db

import (
	"context"
	"fmt"

	"github.com/velski/habopt/internal/model"
)

// SaveParty stores a named roster, replacing any previous version
// atomically. Member order is preserved; the optimizers treat the party as
// an ordered sequence.
func (d *DB) SaveParty(ctx context.Context, party string, members []*model.Character) error {
	if len(members) == 0 {
		return fmt.Errorf("saving party %q: empty roster", party)
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction for party %q: %w", party, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO parties (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, party,
	); err != nil {
		return fmt.Errorf("upserting party %q: %w", party, err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM party_members WHERE party_name = $1`, party,
	); err != nil {
		return fmt.Errorf("clearing members of party %q: %w", party, err)
	}

	for i, c := range members {
		if _, err := tx.Exec(ctx,
			`INSERT INTO party_members
			 (party_name, position, name, class, level,
			  equipment_int, equipment_str, allocated_int, allocated_str,
			  day_bonus, starting_mana, dailies, habits)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			party, i, c.Name(), c.Class().String(), c.Level(),
			c.Equipment().Int, c.Equipment().Str, c.Allocated().Int, c.Allocated().Str,
			c.DayBonus(), c.StartingMana(), c.Dailies(), c.Habits(),
		); err != nil {
			return fmt.Errorf("inserting member %q of party %q: %w", c.Name(), party, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing party %q: %w", party, err)
	}
	return nil
}

// LoadParty retrieves a named roster in its stored order. Every row passes
// through model.NewCharacter again, so a roster edited behind the tool's
// back still cannot violate the model invariants.
func (d *DB) LoadParty(ctx context.Context, party string) ([]*model.Character, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT name, class, level,
		        equipment_int, equipment_str, allocated_int, allocated_str,
		        day_bonus, starting_mana, dailies, habits
		 FROM party_members WHERE party_name = $1 ORDER BY position`, party)
	if err != nil {
		return nil, fmt.Errorf("querying party %q: %w", party, err)
	}
	defer rows.Close()

	var members []*model.Character
	for rows.Next() {
		var (
			name, className                        string
			level, mana, dailies, habits           int
			equipInt, equipStr, allocInt, allocStr float64
			dayBonus                               bool
		)
		if err := rows.Scan(&name, &className, &level,
			&equipInt, &equipStr, &allocInt, &allocStr,
			&dayBonus, &mana, &dailies, &habits); err != nil {
			return nil, fmt.Errorf("scanning member of party %q: %w", party, err)
		}

		class, err := model.ParseClass(className)
		if err != nil {
			return nil, fmt.Errorf("party %q member %q: %w", party, name, err)
		}
		c, err := model.NewCharacter(name, class, level,
			model.NewStats(equipInt, equipStr), model.NewStats(allocInt, allocStr),
			dayBonus, mana, dailies, habits)
		if err != nil {
			return nil, fmt.Errorf("party %q: %w", party, err)
		}
		members = append(members, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading party %q: %w", party, err)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("party %q not found", party)
	}
	return members, nil
}

// ListParties returns the stored party names in creation order.
func (d *DB) ListParties(ctx context.Context) ([]string, error) {
	rows, err := d.pool.Query(ctx, `SELECT name FROM parties ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("listing parties: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning party name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading party names: %w", err)
	}
	return names, nil
}

// DeleteParty removes a stored roster and its members.
func (d *DB) DeleteParty(ctx context.Context, party string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM parties WHERE name = $1`, party)
	if err != nil {
		return fmt.Errorf("deleting party %q: %w", party, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("party %q not found", party)
	}
	return nil
}
