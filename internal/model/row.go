package model

import (
	"fmt"
	"strconv"
)

// rowFieldCount is the fixed shape of one roster row:
// name, class, level, equipInt, equipStr, allocInt, allocStr, dayBonus,
// startingMana, dailiesAndToDos, habits.
const rowFieldCount = 11

// ParseRow builds a validated Character from one 11-field roster row.
// The field count is checked before any field is parsed; class names are
// matched case-insensitively.
func ParseRow(fields []string) (*Character, error) {
	if len(fields) != rowFieldCount {
		return nil, fmt.Errorf("row has %d fields, want %d", len(fields), rowFieldCount)
	}

	name := fields[0]

	class, err := ParseClass(fields[1])
	if err != nil {
		return nil, fmt.Errorf("row %q: %w", name, err)
	}

	level, err := intField(name, "level", fields[2])
	if err != nil {
		return nil, err
	}
	equipInt, err := floatField(name, "equipment int", fields[3])
	if err != nil {
		return nil, err
	}
	equipStr, err := floatField(name, "equipment str", fields[4])
	if err != nil {
		return nil, err
	}
	allocInt, err := floatField(name, "allocated int", fields[5])
	if err != nil {
		return nil, err
	}
	allocStr, err := floatField(name, "allocated str", fields[6])
	if err != nil {
		return nil, err
	}
	dayBonus, err := strconv.ParseBool(fields[7])
	if err != nil {
		return nil, fmt.Errorf("row %q: parsing day bonus %q: %w", name, fields[7], err)
	}
	mana, err := intField(name, "starting mana", fields[8])
	if err != nil {
		return nil, err
	}
	dailies, err := intField(name, "dailies", fields[9])
	if err != nil {
		return nil, err
	}
	habits, err := intField(name, "habits", fields[10])
	if err != nil {
		return nil, err
	}

	return NewCharacter(name, class, level,
		NewStats(equipInt, equipStr), NewStats(allocInt, allocStr),
		dayBonus, mana, dailies, habits)
}

func intField(row, field, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("row %q: parsing %s %q: %w", row, field, value, err)
	}
	return v, nil
}

func floatField(row, field, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("row %q: parsing %s %q: %w", row, field, value, err)
	}
	return v, nil
}
