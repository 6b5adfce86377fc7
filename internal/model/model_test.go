package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() Params {
	return Params{
		Threshold:   15,
		NumLiterals: 4,
		NumClauses:  10,
		NumClasses:  2,
		MaxState:    127,
		MinState:    -127,
		S:           3.0,
	}
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, validParams().Validate())

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero threshold", func(p *Params) { p.Threshold = 0 }},
		{"zero clauses", func(p *Params) { p.NumClauses = 0 }},
		{"zero literals", func(p *Params) { p.NumLiterals = 0 }},
		{"one class", func(p *Params) { p.NumClasses = 1 }},
		{"inverted state bounds", func(p *Params) { p.MinState = 10; p.MaxState = -10 }},
		{"sensitivity below one", func(p *Params) { p.S = 0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestStateValidate(t *testing.T) {
	p := validParams()
	s := &State{
		Params:  p,
		Weights: make([]int16, p.WeightCount()),
		Clauses: make([]int8, p.StateCount()),
	}
	require.NoError(t, s.Validate())

	s.Weights = s.Weights[:len(s.Weights)-1]
	assert.Error(t, s.Validate())

	s.Weights = make([]int16, p.WeightCount())
	s.LiteralNames = []string{"a", "b"} // 2 names for 4 literals
	assert.Error(t, s.Validate())

	s.LiteralNames = []string{"a", "b", "c", "d"}
	assert.NoError(t, s.Validate())
}

func TestDenseSizeBytes(t *testing.T) {
	p := validParams()

	// Re-derive from the documented per-buffer byte counts.
	clauses, classes, literals := int64(10), int64(2), int64(4)
	want := clauses*literals*2*1 + // automaton states, int8
		clauses*classes*2 + // weights, int16
		clauses*1 + // clause outputs, uint8
		clauses*classes*3*1 + // feedback buffer, int8 x3
		classes*4 // votes, int32

	assert.Equal(t, want, DenseSizeBytes(p))
}

func TestSparseSizeBytes(t *testing.T) {
	p := validParams()
	sizes := []uint32{3, 0, 8, 1, 0, 2, 5, 4, 0, 1}

	var totalNodes int64
	for _, n := range sizes {
		totalNodes += int64(n)
	}
	clauses, classes := int64(10), int64(2)
	want := totalNodes*16 + // linked automaton nodes
		clauses*8 + // clause head pointers
		classes*8 + // active-literal pointers
		clauses*4 + // clause-size array, uint32
		clauses*classes*2 + // weights, int16
		clauses*1 + // clause outputs, uint8
		classes*4 // votes, int32

	assert.Equal(t, want, SparseSizeBytes(p, sizes))
}

func TestSparseStateClauseSizes(t *testing.T) {
	s := &SparseState{
		Clauses: [][]StateNode{
			{{ID: 0, State: 1}, {ID: 3, State: -2}},
			nil,
			{{ID: 5, State: 7}},
		},
	}
	assert.Equal(t, []uint32{2, 0, 1}, s.ClauseSizes())
}

func TestSparseStateValidate(t *testing.T) {
	p := validParams()
	s := &SparseState{
		Params:  p,
		Weights: make([]int16, p.WeightCount()),
		Clauses: make([][]StateNode, p.NumClauses),
	}
	require.NoError(t, s.Validate())

	s.Clauses[0] = []StateNode{{ID: p.NumLiterals * 2, State: 1}} // one past the end
	assert.Error(t, s.Validate())
}
