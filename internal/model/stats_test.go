package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsArithmetic(t *testing.T) {
	a := NewStats(3, 4)
	b := NewStats(1, 2)

	assert.Equal(t, Stats{Int: 4, Str: 6}, a.Add(b))
	assert.Equal(t, Stats{Int: 5, Str: 6}, a.AddScalar(2))
	assert.Equal(t, Stats{Int: 6, Str: 8}, a.Scale(2))
	assert.Equal(t, Stats{}, b.Scale(0))
}

// Operations return new values; the receiver must never change.
func TestStatsImmutable(t *testing.T) {
	a := NewStats(3, 4)
	_ = a.Add(NewStats(10, 10))
	_ = a.AddScalar(5)
	_ = a.Scale(7)

	assert.Equal(t, Stats{Int: 3, Str: 4}, a)
}
