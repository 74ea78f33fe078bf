package labor

import (
	"fmt"
	"math"
)

// Vector is a cost expressed in role-time: one non-negative magnitude per
// population role. It is a value type; every operation returns a new Vector.
type Vector [RoleCount]float64

// NewVector builds a vector from per-role components in tier order
func NewVector(pioneer, settler, technician, engineer, scientist float64) Vector {
	return Vector{pioneer, settler, technician, engineer, scientist}
}

// Of returns the component for a single role
func (v Vector) Of(r Role) float64 { return v[r] }

// Add returns the component-wise sum v + o
func (v Vector) Add(o Vector) Vector {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

// Sub returns the component-wise difference v - o
func (v Vector) Sub(o Vector) Vector {
	for i := range v {
		v[i] -= o[i]
	}
	return v
}

// Scale returns v multiplied by a scalar
func (v Vector) Scale(k float64) Vector {
	for i := range v {
		v[i] *= k
	}
	return v
}

// Sum returns the sum of all five role components
func (v Vector) Sum() float64 {
	s := 0.0
	for _, c := range v {
		s += c
	}
	return s
}

// Dot converts the vector into a scalar using one exchange rate per role
func (v Vector) Dot(rates Vector) float64 {
	s := 0.0
	for i := range v {
		s += v[i] * rates[i]
	}
	return s
}

// IsZero reports whether every component is exactly zero
func (v Vector) IsZero() bool {
	return v == Vector{}
}

// IsFinite reports whether no component is NaN or infinite
func (v Vector) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// MaxAbsDiff returns the largest absolute per-role difference between v and o.
// A NaN or infinite difference counts as +Inf.
func (v Vector) MaxAbsDiff(o Vector) float64 {
	m := 0.0
	for i := range v {
		d := math.Abs(v[i] - o[i])
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return math.Inf(1)
		}
		if d > m {
			m = d
		}
	}
	return m
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g,%g,%g,%g,%g)", v[0], v[1], v[2], v[3], v[4])
}
