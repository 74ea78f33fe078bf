package labor_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
)

func TestVector_Arithmetic(t *testing.T) {
	a := labor.NewVector(1, 2, 3, 4, 5)
	b := labor.NewVector(5, 4, 3, 2, 1)

	assert.Equal(t, labor.NewVector(6, 6, 6, 6, 6), a.Add(b))
	assert.Equal(t, labor.NewVector(-4, -2, 0, 2, 4), a.Sub(b))
	assert.Equal(t, labor.NewVector(2, 4, 6, 8, 10), a.Scale(2))
	assert.Equal(t, 15.0, a.Sum())
	assert.Equal(t, 35.0, a.Dot(b))

	// Operations never mutate the receiver
	assert.Equal(t, labor.NewVector(1, 2, 3, 4, 5), a)
}

func TestVector_IsFinite(t *testing.T) {
	assert.True(t, labor.NewVector(1, 0, 0, 0, 0).IsFinite())
	assert.False(t, labor.NewVector(math.NaN(), 0, 0, 0, 0).IsFinite())
	assert.False(t, labor.NewVector(0, 0, 0, 0, math.Inf(1)).IsFinite())
}

func TestVector_MaxAbsDiff(t *testing.T) {
	a := labor.NewVector(1, 2, 3, 4, 5)
	b := labor.NewVector(1, 2, 0, 4, 6)

	assert.Equal(t, 3.0, a.MaxAbsDiff(b))
	assert.True(t, labor.Vector{}.IsZero())
}

func TestVector_MaxAbsDiffNonFinite(t *testing.T) {
	a := labor.NewVector(1, math.NaN(), 3, 4, 5)
	b := labor.NewVector(1, 2, 3, 4, 5)
	c := labor.NewVector(math.Inf(1), 2, 3, 4, 5)

	assert.True(t, math.IsInf(a.MaxAbsDiff(b), 1))
	assert.True(t, math.IsInf(b.MaxAbsDiff(a), 1))
	assert.True(t, math.IsInf(c.MaxAbsDiff(c), 1))
}

func TestRole_NextAndParse(t *testing.T) {
	next, ok := labor.Pioneer.Next()
	assert.True(t, ok)
	assert.Equal(t, labor.Settler, next)

	_, ok = labor.Scientist.Next()
	assert.False(t, ok)

	role, err := labor.ParseRole("ENG")
	require.NoError(t, err)
	assert.Equal(t, labor.Engineer, role)
	assert.Equal(t, "ENG", role.String())

	_, err = labor.ParseRole("XYZ")
	assert.Error(t, err)
}
