package model

// Stats holds the two attributes the damage model cares about.
// Value type, passed by value (immutable); every operation returns a new value.
type Stats struct {
	Int float64 // intelligence
	Str float64 // strength
}

// NewStats creates a Stats with the given components.
func NewStats(intelligence, strength float64) Stats {
	return Stats{Int: intelligence, Str: strength}
}

// Add returns the component-wise sum of two stat vectors.
func (s Stats) Add(other Stats) Stats {
	return Stats{Int: s.Int + other.Int, Str: s.Str + other.Str}
}

// AddScalar returns a copy with the scalar added to both components.
func (s Stats) AddScalar(v float64) Stats {
	return Stats{Int: s.Int + v, Str: s.Str + v}
}

// Scale returns a copy with both components multiplied by k.
func (s Stats) Scale(k float64) Stats {
	return Stats{Int: s.Int * k, Str: s.Str * k}
}
