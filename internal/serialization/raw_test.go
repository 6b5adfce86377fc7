package serialization

import (
	"bytes"
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsetlin-ml/tsetlin/internal/model"
)

func testState(t *testing.T) *model.State {
	t.Helper()
	s := &model.State{
		Params: model.Params{
			Threshold:         15,
			NumLiterals:       3,
			NumClauses:        2,
			NumClasses:        2,
			MaxState:          127,
			MinState:          -127,
			BoostTruePositive: true,
			S:                 3.9,
		},
	}
	s.Weights = []int16{1, -2, 3, -4}
	s.Clauses = make([]int8, s.StateCount())
	for i := range s.Clauses {
		s.Clauses[i] = int8(i - 6)
	}
	require.NoError(t, s.Validate())
	return s
}

func TestWriteRawLayout(t *testing.T) {
	s := testState(t)

	var buf bytes.Buffer
	require.NoError(t, WriteRaw(&buf, s))
	got := buf.Bytes()

	want := make([]byte, 32)
	binary.LittleEndian.PutUint32(want[0:], 15) // threshold
	binary.LittleEndian.PutUint32(want[4:], 3)  // literals
	binary.LittleEndian.PutUint32(want[8:], 2)  // clauses
	binary.LittleEndian.PutUint32(want[12:], 2) // classes
	want[16] = 127                              // max state
	minState := int8(-127)
	want[17] = byte(minState)                   // min state
	want[18] = 1                                // boost flag
	binary.LittleEndian.PutUint64(want[24:], math.Float64bits(3.9))
	for _, w := range s.Weights {
		want = binary.LittleEndian.AppendUint16(want, uint16(w))
	}
	for _, st := range s.Clauses {
		want = append(want, byte(st))
	}

	assert.Equal(t, want, got)
	assert.Len(t, got, 32+len(s.Weights)*2+len(s.Clauses))

	// Bytes 19..23 stay zero regardless of neighbouring fields.
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, got[19:24])
}

func TestRawRoundTrip(t *testing.T) {
	s := testState(t)

	var buf bytes.Buffer
	require.NoError(t, WriteRaw(&buf, s))

	got, err := ReadRaw(&buf)
	require.NoError(t, err)
	assert.Equal(t, s.Params, got.Params)
	assert.Equal(t, s.Weights, got.Weights)
	assert.Equal(t, s.Clauses, got.Clauses)
	assert.Nil(t, got.LiteralNames)
}

func TestReadRawTruncated(t *testing.T) {
	s := testState(t)
	var buf bytes.Buffer
	require.NoError(t, WriteRaw(&buf, s))
	full := buf.Bytes()

	cuts := map[string]int{
		"empty":          0,
		"mid header":     17,
		"header only":    32,
		"mid weights":    32 + 3,
		"missing states": len(full) - 1,
	}
	for name, n := range cuts {
		t.Run(name, func(t *testing.T) {
			_, err := ReadRaw(bytes.NewReader(full[:n]))
			assert.ErrorIs(t, err, ErrTruncated)
		})
	}
}

func TestWriteRawRejectsInvalidState(t *testing.T) {
	s := testState(t)
	s.Weights = s.Weights[:1]

	var buf bytes.Buffer
	err := WriteRaw(&buf, s)
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestRawFileRoundTrip(t *testing.T) {
	s := testState(t)
	path := filepath.Join(t.TempDir(), "model.bin")

	require.NoError(t, WriteRawFile(path, s))

	got, err := ReadRawFile(path)
	require.NoError(t, err)
	assert.Equal(t, s.Params, got.Params)
	assert.Equal(t, s.Weights, got.Weights)
	assert.Equal(t, s.Clauses, got.Clauses)
}

func TestReadRawFileMissing(t *testing.T) {
	_, err := ReadRawFile(filepath.Join(t.TempDir(), "nope.bin"))
	assert.Error(t, err)
}

func testSparseState(t *testing.T) *model.SparseState {
	t.Helper()
	s := &model.SparseState{
		Params: model.Params{
			Threshold:   10,
			NumLiterals: 4,
			NumClauses:  3,
			NumClasses:  2,
			MaxState:    100,
			MinState:    -100,
			S:           2.0,
		},
	}
	s.Weights = []int16{5, -5, 7, -7, 9, -9}
	s.Clauses = [][]model.StateNode{
		{{ID: 0, State: 12}, {ID: 5, State: -3}},
		nil, // a clause may hold no automatons at all
		{{ID: 7, State: 1}},
	}
	require.NoError(t, s.Validate())
	return s
}

func TestSparseRawRoundTrip(t *testing.T) {
	s := testSparseState(t)

	var buf bytes.Buffer
	require.NoError(t, WriteSparseRaw(&buf, s))

	got, err := ReadSparseRaw(&buf)
	require.NoError(t, err)
	assert.Equal(t, s.Params, got.Params)
	assert.Equal(t, s.Weights, got.Weights)
	require.Len(t, got.Clauses, 3)
	assert.Equal(t, s.Clauses[0], got.Clauses[0])
	assert.Empty(t, got.Clauses[1])
	assert.Equal(t, s.Clauses[2], got.Clauses[2])
	assert.Equal(t, []uint32{2, 0, 1}, got.ClauseSizes())
}

func TestSparseRawDelimiters(t *testing.T) {
	s := testSparseState(t)

	var buf bytes.Buffer
	require.NoError(t, WriteSparseRaw(&buf, s))
	raw := buf.Bytes()

	// Each clause run ends in the 0xFFFFFFFF delimiter; with 3 nodes of 5
	// bytes each and 3 delimiters the trailer length is fixed.
	trailer := raw[32+len(s.Weights)*2:]
	assert.Len(t, trailer, 3*5+3*4)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, trailer[len(trailer)-4:])
}

func TestReadSparseRawTruncated(t *testing.T) {
	s := testSparseState(t)
	var buf bytes.Buffer
	require.NoError(t, WriteSparseRaw(&buf, s))
	full := buf.Bytes()

	// Drop the final delimiter so the last clause never terminates.
	_, err := ReadSparseRaw(bytes.NewReader(full[:len(full)-4]))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestSparseRawFileRoundTrip(t *testing.T) {
	s := testSparseState(t)
	path := filepath.Join(t.TempDir(), "model.sparse.bin")

	require.NoError(t, WriteSparseRawFile(path, s))

	got, err := ReadSparseRawFile(path)
	require.NoError(t, err)
	assert.Equal(t, s.Params, got.Params)
	assert.Equal(t, s.Clauses[0], got.Clauses[0])
}
