package serialization

import (
	"path/filepath"
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsetlin-ml/tsetlin/internal/fbs"
)

func TestContainerRoundTrip(t *testing.T) {
	s := testState(t)

	buf, err := EncodeContainer(s)
	require.NoError(t, err)

	got, err := DecodeContainer(buf)
	require.NoError(t, err)
	assert.Equal(t, s.Params, got.Params)
	assert.Equal(t, s.Weights, got.Weights)
	assert.Equal(t, s.Clauses, got.Clauses)
	assert.Nil(t, got.LiteralNames)
}

func TestContainerLiteralNames(t *testing.T) {
	s := testState(t)
	s.LiteralNames = []string{"age>30", "smoker", "bmi>25"}

	buf, err := EncodeContainer(s)
	require.NoError(t, err)

	got, err := DecodeContainer(buf)
	require.NoError(t, err)
	assert.Equal(t, s.LiteralNames, got.LiteralNames)
}

func TestContainerCarriesShapes(t *testing.T) {
	s := testState(t)

	buf, err := EncodeContainer(s)
	require.NoError(t, err)

	m := fbs.GetRootAsModel(buf, 0)
	weights := m.ClauseWeights(nil)
	require.NotNil(t, weights)
	require.Equal(t, 2, weights.ShapeLength())
	assert.Equal(t, uint32(2), weights.Shape(0)) // clauses
	assert.Equal(t, uint32(2), weights.Shape(1)) // classes

	states := m.AutomatonStates(nil)
	require.NotNil(t, states)
	require.Equal(t, 3, states.ShapeLength())
	assert.Equal(t, uint32(2), states.Shape(0)) // clauses
	assert.Equal(t, uint32(3), states.Shape(1)) // literals
	assert.Equal(t, uint32(2), states.Shape(2)) // polarity
}

func TestDecodeContainerMissingTables(t *testing.T) {
	// A model table with only parameters present.
	builder := flatbuffers.NewBuilder(64)
	fbs.ParametersStart(builder)
	fbs.ParametersAddThreshold(builder, 1)
	params := fbs.ParametersEnd(builder)
	fbs.ModelStart(builder)
	fbs.ModelAddParams(builder, params)
	builder.Finish(fbs.ModelEnd(builder))

	_, err := DecodeContainer(builder.FinishedBytes())
	assert.ErrorIs(t, err, ErrMissingTable)
}

func TestDecodeContainerShapeMismatch(t *testing.T) {
	s := testState(t)
	buf, err := EncodeContainer(s)
	require.NoError(t, err)

	// Corrupt the weight shape in place so it disagrees with the buffer.
	m := fbs.GetRootAsModel(buf, 0)
	weights := m.ClauseWeights(nil)
	require.True(t, weights.MutateShape(0, weights.Shape(0)+1))

	_, err = DecodeContainer(buf)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestDecodeContainerTooShort(t *testing.T) {
	_, err := DecodeContainer([]byte{0, 1})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestContainerFileRoundTrip(t *testing.T) {
	s := testState(t)
	s.LiteralNames = []string{"a", "b", "c"}
	path := filepath.Join(t.TempDir(), "model.fb")

	require.NoError(t, WriteContainerFile(path, s))

	got, err := ReadContainerFile(path)
	require.NoError(t, err)
	assert.Equal(t, s.Params, got.Params)
	assert.Equal(t, s.Weights, got.Weights)
	assert.Equal(t, s.Clauses, got.Clauses)
	assert.Equal(t, s.LiteralNames, got.LiteralNames)
}

func TestFormatsShareTensors(t *testing.T) {
	// The same snapshot written through both codecs reads back identically.
	s := testState(t)

	var rawBuf []byte
	{
		dir := t.TempDir()
		path := filepath.Join(dir, "model.bin")
		require.NoError(t, WriteRawFile(path, s))
		fromRaw, err := ReadRawFile(path)
		require.NoError(t, err)
		rawBuf = make([]byte, len(fromRaw.Clauses))
		for i, v := range fromRaw.Clauses {
			rawBuf[i] = byte(v)
		}
	}

	cbuf, err := EncodeContainer(s)
	require.NoError(t, err)
	fromContainer, err := DecodeContainer(cbuf)
	require.NoError(t, err)

	for i, v := range fromContainer.Clauses {
		assert.Equal(t, rawBuf[i], byte(v), "state %d", i)
	}
	assert.Equal(t, s.Weights, fromContainer.Weights)
}
