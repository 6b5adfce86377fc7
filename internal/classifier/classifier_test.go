package classifier

import (
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsetlin-ml/tsetlin/internal/labels"
	"github.com/tsetlin-ml/tsetlin/internal/model"
)

// libDir returns the engine library directory, skipping the test when the
// native library is not available.
func libDir(t *testing.T) string {
	t.Helper()
	dir := os.Getenv("TSETLIN_LIB_DIR")
	if dir == "" {
		t.Skip("TSETLIN_LIB_DIR not set; skipping native engine test")
	}
	return dir
}

// testConfig returns a small, fast configuration. The lib dir defaults to a
// placeholder so validation-only tests never need the native library.
func testConfig() Config {
	cfg := DefaultConfig("testdata")
	cfg.Threshold = 15
	cfg.NumClauses = 40
	cfg.S = 3.9
	cfg.Epochs = 30
	seed := uint32(42)
	cfg.Seed = &seed
	return cfg
}

// xorData returns the noisy-free XOR truth table, replicated enough for the
// machine to overfit it.
func xorData(copies int) (x [][]uint8, y []string) {
	rows := [][]uint8{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	out := []string{"even", "odd", "odd", "even"}
	for i := 0; i < copies; i++ {
		x = append(x, rows...)
		y = append(y, out...)
	}
	return x, y
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero threshold", func(c *Config) { c.Threshold = 0 }},
		{"zero clauses", func(c *Config) { c.NumClauses = 0 }},
		{"inverted state bounds", func(c *Config) { c.MinState = 10; c.MaxState = -10 }},
		{"sensitivity below one", func(c *Config) { c.S = 0.5 }},
		{"zero epochs", func(c *Config) { c.Epochs = 0 }},
		{"missing lib dir", func(c *Config) { c.LibDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("libs")
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrValidation)
		})
	}

	assert.NoError(t, DefaultConfig("libs").Validate())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig("libs")
	cfg.Epochs = 0
	_, err := New[string](cfg)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFlattenX(t *testing.T) {
	flat, rows, cols, err := flattenX([][]uint8{{0, 1, 1}, {1, 0, 0}})
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 1, 1, 1, 0, 0}, flat)
	assert.Equal(t, uint32(2), rows)
	assert.Equal(t, uint32(3), cols)

	_, _, _, err = flattenX(nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, _, _, err = flattenX([][]uint8{{}})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, _, err = flattenX([][]uint8{{0, 1}, {1}})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, _, err = flattenX([][]uint8{{0, 2}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPredictUnfitted(t *testing.T) {
	c, err := New[string](testConfig())
	require.NoError(t, err)

	_, err = c.Predict([][]uint8{{0, 1}})
	assert.ErrorIs(t, err, ErrNotFitted)

	_, err = c.EstimateModelSize()
	assert.ErrorIs(t, err, ErrNotFitted)

	assert.ErrorIs(t, c.SaveModel("x.bin"), ErrNotFitted)

	_, err = c.ExportState()
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestFitValidatesBeforeEngineLoad(t *testing.T) {
	// All of these fail validation, so the placeholder lib dir is never
	// consulted.
	c, err := New[string](testConfig())
	require.NoError(t, err)

	x, _ := xorData(1)

	// Row/label count mismatch.
	err = c.Fit(x, []string{"a"})
	assert.ErrorIs(t, err, ErrValidation)

	// Single class.
	err = c.Fit(x, []string{"a", "a", "a", "a"})
	assert.ErrorIs(t, err, ErrValidation)

	// Non-binary input.
	err = c.Fit([][]uint8{{0, 3}, {1, 0}}, []string{"a", "b"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInitEmptyStateValidation(t *testing.T) {
	c, err := New[int](testConfig())
	require.NoError(t, err)

	assert.ErrorIs(t, c.InitEmptyState(0, []int{1, 2}), ErrValidation)
	assert.ErrorIs(t, c.InitEmptyState(4, []int{7}), ErrValidation)
}

func TestResetIdempotentWhenUnbound(t *testing.T) {
	c, err := New[string](testConfig())
	require.NoError(t, err)
	c.Reset()
	c.Reset()
	assert.Nil(t, c.Classes())
}

func TestGobRoundTripUnbound(t *testing.T) {
	c, err := New[string](testConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(c))

	var got Classifier[string]
	require.NoError(t, gob.NewDecoder(&buf).Decode(&got))
	assert.Equal(t, c.cfg.Threshold, got.cfg.Threshold)
	assert.Equal(t, c.cfg.Epochs, got.cfg.Epochs)
	require.NotNil(t, got.cfg.Seed)
	assert.Equal(t, uint32(42), *got.cfg.Seed)
	assert.Nil(t, got.Classes())
}

func TestGobRoundTripBound(t *testing.T) {
	c, err := New[string](testConfig())
	require.NoError(t, err)

	// Bind without the engine: the handle itself never crosses the gob
	// boundary, so only mapping and shape matter here.
	mapping, err := labels.Fit([]string{"even", "odd"})
	require.NoError(t, err)
	c.mapping = mapping
	c.params = c.cfg.params(2, 2)
	c.seed = 42

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(c))

	var got Classifier[string]
	require.NoError(t, gob.NewDecoder(&buf).Decode(&got))
	assert.Equal(t, []string{"even", "odd"}, got.Classes())
	assert.Equal(t, uint32(2), got.NumLiterals())
	assert.Equal(t, c.params, got.params)
	assert.Equal(t, uint32(42), got.seed)
	assert.Zero(t, got.handle)
	assert.Nil(t, got.eng)
}

func TestEstimateModelSizeFromShape(t *testing.T) {
	c, err := New[string](testConfig())
	require.NoError(t, err)
	mapping, err := labels.Fit([]string{"even", "odd"})
	require.NoError(t, err)
	c.mapping = mapping
	c.params = c.cfg.params(2, 2)

	size, err := c.EstimateModelSize()
	require.NoError(t, err)
	assert.Equal(t, model.DenseSizeBytes(c.params), size)
	assert.Positive(t, size)
}

func TestFitPredictXOR(t *testing.T) {
	cfg := testConfig()
	cfg.LibDir = libDir(t)
	c, err := New[string](cfg)
	require.NoError(t, err)
	defer c.Reset()

	x, y := xorData(16)
	require.NoError(t, c.Fit(x, y))

	assert.Equal(t, []string{"even", "odd"}, c.Classes())
	assert.Equal(t, uint32(2), c.NumLiterals())

	score, err := c.Score(x, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score, "machine should overfit the noise-free XOR truth table")
}

func TestPartialFitAccumulates(t *testing.T) {
	cfg := testConfig()
	cfg.LibDir = libDir(t)
	c, err := New[string](cfg)
	require.NoError(t, err)
	defer c.Reset()

	x, y := xorData(16)
	require.NoError(t, c.PartialFit(x, y, &PartialFitOptions[string]{Classes: []string{"even", "odd"}}))
	for i := 0; i < 4; i++ {
		require.NoError(t, c.PartialFit(x, y, nil))
	}

	score, err := c.Score(x, y)
	require.NoError(t, err)
	assert.Greater(t, score, 0.9)

	// A mismatched class set is rejected once bound.
	err = c.PartialFit(x, y, &PartialFitOptions[string]{Classes: []string{"a", "b"}})
	assert.ErrorIs(t, err, ErrValidation)
}

// copyBatches returns a linearly separable set split into two disjoint
// batches: the label copies feature 0, feature 1 marks the batch (0 in every
// A row, 1 in every B row), and features 2 and 3 enumerate distractors.
func copyBatches(copies int) (xA [][]uint8, yA []string, xB [][]uint8, yB []string) {
	names := []string{"neg", "pos"}
	for i := 0; i < copies; i++ {
		for label := uint8(0); label < 2; label++ {
			for d := uint8(0); d < 4; d++ {
				xA = append(xA, []uint8{label, 0, d >> 1, d & 1})
				yA = append(yA, names[label])
				xB = append(xB, []uint8{label, 1, d >> 1, d & 1})
				yB = append(yB, names[label])
			}
		}
	}
	return xA, yA, xB, yB
}

func TestPartialFitDisjointBatchesUnion(t *testing.T) {
	cfg := testConfig()
	cfg.LibDir = libDir(t)

	xA, yA, xB, yB := copyBatches(8)
	xAll := append(append([][]uint8{}, xA...), xB...)
	yAll := append(append([]string{}, yA...), yB...)
	classes := []string{"neg", "pos"}

	// One incremental pass over each batch, no reset in between.
	inc, err := New[string](cfg)
	require.NoError(t, err)
	defer inc.Reset()
	require.NoError(t, inc.PartialFit(xA, yA, &PartialFitOptions[string]{Classes: classes}))
	require.NoError(t, inc.PartialFit(xB, yB, nil))
	unionScore, err := inc.Score(xAll, yAll)
	require.NoError(t, err)

	// Baselines trained on a single batch each, scored on the union.
	for _, batch := range []struct {
		name string
		x    [][]uint8
		y    []string
	}{
		{"first batch only", xA, yA},
		{"second batch only", xB, yB},
	} {
		single, err := New[string](cfg)
		require.NoError(t, err)
		defer single.Reset()
		require.NoError(t, single.Fit(batch.x, batch.y))

		score, err := single.Score(xAll, yAll)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, unionScore, score,
			"training on both batches should not score below %s", batch.name)
	}
}

func TestSaveLoadModel(t *testing.T) {
	cfg := testConfig()
	cfg.LibDir = libDir(t)
	c, err := New[string](cfg)
	require.NoError(t, err)
	defer c.Reset()

	x, y := xorData(16)
	require.NoError(t, c.Fit(x, y))
	want, err := c.Predict(x)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "xor.bin")
	require.NoError(t, c.SaveModel(path))

	loaded, err := New[string](cfg)
	require.NoError(t, err)
	defer loaded.Reset()
	require.NoError(t, loaded.LoadModel(path, []string{"even", "odd"}))

	got, err := loaded.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExportImportState(t *testing.T) {
	cfg := testConfig()
	cfg.LibDir = libDir(t)
	c, err := New[string](cfg)
	require.NoError(t, err)
	defer c.Reset()

	x, y := xorData(16)
	require.NoError(t, c.Fit(x, y))
	want, err := c.Predict(x)
	require.NoError(t, err)

	state, err := c.ExportState()
	require.NoError(t, err)
	require.NoError(t, state.Validate())

	restored, err := New[string](cfg)
	require.NoError(t, err)
	defer restored.Reset()
	require.NoError(t, restored.ImportState(state, []string{"even", "odd"}))

	got, err := restored.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSparseFitPredictXOR(t *testing.T) {
	cfg := testConfig()
	cfg.LibDir = libDir(t)
	c, err := NewSparse[string](cfg)
	require.NoError(t, err)
	defer c.Reset()

	x, y := xorData(16)
	require.NoError(t, c.Fit(x, y))

	score, err := c.Score(x, y)
	require.NoError(t, err)
	assert.Greater(t, score, 0.9)

	size, err := c.EstimateModelSize()
	require.NoError(t, err)
	assert.Positive(t, size)

	state, err := c.ExportState()
	require.NoError(t, err)
	assert.NoError(t, state.Validate())
}

func TestSparsePredictUnfitted(t *testing.T) {
	c, err := NewSparse[string](testConfig())
	require.NoError(t, err)

	_, err = c.Predict([][]uint8{{0, 1}})
	assert.ErrorIs(t, err, ErrNotFitted)

	_, err = c.EstimateModelSize()
	assert.ErrorIs(t, err, ErrNotFitted)
}
