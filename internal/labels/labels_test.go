package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitSortsAndDeduplicates(t *testing.T) {
	m, err := Fit([]string{"cat", "dog", "cat", "bird", "dog"})
	require.NoError(t, err)

	assert.Equal(t, []string{"bird", "cat", "dog"}, m.Classes())
	assert.Equal(t, 3, m.NumClasses())
}

func TestFitTooFewClasses(t *testing.T) {
	_, err := Fit([]int{7, 7, 7})
	require.ErrorIs(t, err, ErrTooFewClasses)

	_, err = Fit([]int{})
	require.ErrorIs(t, err, ErrTooFewClasses)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ys := []int{10, 20, 30, 20, 10, 30, 30}
	m, err := Fit(ys)
	require.NoError(t, err)

	encoded, err := m.Encode(ys)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 1, 0, 2, 2}, encoded)

	decoded := m.Decode(encoded)
	assert.Equal(t, ys, decoded)
}

func TestEncodeUnknownLabel(t *testing.T) {
	m, err := Fit([]string{"a", "b"})
	require.NoError(t, err)

	_, err = m.Encode([]string{"a", "c"})
	require.ErrorIs(t, err, ErrUnknownLabel)
}

func TestDecodeOutOfRangePanics(t *testing.T) {
	m, err := Fit([]int{0, 1})
	require.NoError(t, err)

	assert.Panics(t, func() {
		m.Decode([]uint32{2})
	})
}

func TestEqual(t *testing.T) {
	m, err := Fit([]int{3, 1, 2})
	require.NoError(t, err)

	assert.True(t, m.Equal([]int{1, 2, 3}))
	assert.False(t, m.Equal([]int{3, 1, 2}), "order matters")
	assert.False(t, m.Equal([]int{1, 2}))
}

func TestClassesReturnsCopy(t *testing.T) {
	m, err := Fit([]int{1, 2})
	require.NoError(t, err)

	cs := m.Classes()
	cs[0] = 99
	assert.Equal(t, []int{1, 2}, m.Classes())
}
