package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRow() []string {
	return []string{"Lia", "Mage", "20", "10", "1", "10", "2", "true", "70", "12", "5"}
}

func TestParseRow(t *testing.T) {
	c, err := ParseRow(validRow())
	require.NoError(t, err)

	assert.Equal(t, "Lia", c.Name())
	assert.Equal(t, ClassMage, c.Class())
	assert.Equal(t, 20, c.Level())
	assert.Equal(t, NewStats(10, 1), c.Equipment())
	assert.Equal(t, NewStats(10, 2), c.Allocated())
	assert.True(t, c.DayBonus())
	assert.Equal(t, 70, c.StartingMana())
	assert.Equal(t, 12, c.Dailies())
	assert.Equal(t, 5, c.Habits())
}

// A wrong field count is rejected outright, before any field is parsed:
// the garbage level in the truncated row must not surface in the error.
func TestParseRow_FieldCount(t *testing.T) {
	short := append(validRow()[:9], "garbage")
	_, err := ParseRow(short)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10 fields")
	assert.NotContains(t, err.Error(), "garbage")

	_, err = ParseRow(append(validRow(), "extra"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "12 fields")
}

func TestParseRow_BadFields(t *testing.T) {
	tests := []struct {
		name  string
		field int
		value string
	}{
		{name: "unknown class", field: 1, value: "bard"},
		{name: "level not a number", field: 2, value: "ten"},
		{name: "equipment not a number", field: 3, value: "x"},
		{name: "day bonus not a bool", field: 7, value: "maybe"},
		{name: "mana not an int", field: 8, value: "7.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			row[tt.field] = tt.value
			_, err := ParseRow(row)
			assert.Error(t, err)
		})
	}
}

// Model validation errors propagate through row parsing with the row name
// attached.
func TestParseRow_InvalidAttributes(t *testing.T) {
	row := validRow()
	row[5], row[6] = "15", "15" // allocation sum 30 > level 20
	_, err := ParseRow(row)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Lia"))
}
