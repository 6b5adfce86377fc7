package layout

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCanonicalSmall(t *testing.T) {
	// One clause, three literals. Engine order: all include states, then all
	// exclude states.
	engine := []int8{1, 2, 3, -1, -2, -3}

	canonical, err := ToCanonical(engine, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int8{1, -1, 2, -2, 3, -3}, canonical)
}

func TestFromCanonicalSmall(t *testing.T) {
	canonical := []int8{1, -1, 2, -2, 3, -3}

	engine, err := FromCanonical(canonical, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int8{1, 2, 3, -1, -2, -3}, engine)
}

func TestMultiClause(t *testing.T) {
	// Two clauses, two literals each.
	engine := []int8{
		10, 11, 20, 21, // clause 0: includes 10,11 / excludes 20,21
		30, 31, 40, 41, // clause 1
	}

	canonical, err := ToCanonical(engine, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int8{10, 20, 11, 21, 30, 40, 31, 41}, canonical)

	back, err := FromCanonical(canonical, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, engine, back)
}

func TestRoundTripIdentity(t *testing.T) {
	shapes := []struct{ clauses, literals int }{
		{1, 1},
		{1, 7},
		{10, 4},
		{33, 17},
		{128, 64},
	}

	rng := rand.New(rand.NewSource(42))
	for _, shape := range shapes {
		n := shape.clauses * shape.literals * 2
		states := make([]int8, n)
		for i := range states {
			states[i] = int8(rng.Intn(256) - 128)
		}

		canonical, err := ToCanonical(states, shape.clauses, shape.literals)
		require.NoError(t, err)
		back, err := FromCanonical(canonical, shape.clauses, shape.literals)
		require.NoError(t, err)
		assert.Equal(t, states, back, "shape (%d, %d)", shape.clauses, shape.literals)

		// And in the other direction.
		engine, err := FromCanonical(states, shape.clauses, shape.literals)
		require.NoError(t, err)
		forward, err := ToCanonical(engine, shape.clauses, shape.literals)
		require.NoError(t, err)
		assert.Equal(t, states, forward)
	}
}

func TestBadShape(t *testing.T) {
	_, err := ToCanonical(make([]int8, 6), 2, 2)
	assert.Error(t, err, "length mismatch")

	_, err = ToCanonical(nil, 0, 4)
	assert.Error(t, err)

	_, err = FromCanonical(make([]int8, 5), 1, 2)
	assert.Error(t, err)
}
