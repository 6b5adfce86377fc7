// Package model defines in-memory snapshots of a trained Tsetlin Machine and
// the size estimators mirroring the native engine's allocation strategy.
package model

import "fmt"

// Params holds the eight scalar hyperparameters carried by both file formats.
type Params struct {
	Threshold         uint32  // T threshold for clause votes
	NumLiterals       uint32  // number of binary input features
	NumClauses        uint32  // number of clauses
	NumClasses        uint32  // number of output classes
	MaxState          int8    // maximum automaton state
	MinState          int8    // minimum automaton state
	BoostTruePositive bool    // boost true positive feedback
	S                 float64 // learning sensitivity, >= 1.0
}

// Validate checks the invariants the native engine assumes.
func (p Params) Validate() error {
	if p.Threshold < 1 {
		return fmt.Errorf("threshold must be >= 1, got %d", p.Threshold)
	}
	if p.NumClauses < 1 {
		return fmt.Errorf("clause count must be >= 1, got %d", p.NumClauses)
	}
	if p.NumLiterals < 1 {
		return fmt.Errorf("literal count must be >= 1, got %d", p.NumLiterals)
	}
	if p.NumClasses < 2 {
		return fmt.Errorf("class count must be >= 2, got %d", p.NumClasses)
	}
	if p.MinState > p.MaxState {
		return fmt.Errorf("min state %d exceeds max state %d", p.MinState, p.MaxState)
	}
	if p.S < 1.0 {
		return fmt.Errorf("sensitivity must be >= 1.0, got %g", p.S)
	}
	return nil
}

// WeightCount returns the number of clause-weight entries.
func (p Params) WeightCount() int {
	return int(p.NumClauses) * int(p.NumClasses)
}

// StateCount returns the number of automaton-state entries.
func (p Params) StateCount() int {
	return int(p.NumClauses) * int(p.NumLiterals) * 2
}

// State is a read-only snapshot of a dense model.
//
// Clauses is in canonical on-disk order: shape (NumClauses, NumLiterals, 2)
// with polarity as the fastest axis. Weights has shape
// (NumClauses, NumClasses), row-major.
type State struct {
	Params

	Weights []int16
	Clauses []int8

	// LiteralNames optionally carries one human-readable name per literal.
	// Only the self-describing format stores it, and only when non-nil.
	LiteralNames []string
}

// Validate checks that the tensor buffers agree with the parameters.
func (s *State) Validate() error {
	if err := s.Params.Validate(); err != nil {
		return err
	}
	if len(s.Weights) != s.WeightCount() {
		return fmt.Errorf("weight buffer has %d entries, shape (%d, %d) needs %d",
			len(s.Weights), s.NumClauses, s.NumClasses, s.WeightCount())
	}
	if len(s.Clauses) != s.StateCount() {
		return fmt.Errorf("state buffer has %d entries, shape (%d, %d, 2) needs %d",
			len(s.Clauses), s.NumClauses, s.NumLiterals, s.StateCount())
	}
	if s.LiteralNames != nil && len(s.LiteralNames) != int(s.NumLiterals) {
		return fmt.Errorf("%d literal names for %d literals", len(s.LiteralNames), s.NumLiterals)
	}
	return nil
}

// StateNode is one automaton state of a sparse clause: the literal it tracks
// and its current state value.
type StateNode struct {
	ID    uint32
	State int8
}

// SparseState is a read-only snapshot of a sparse model. Each clause carries
// only the automaton nodes its linked per-literal storage actually holds.
type SparseState struct {
	Params

	Weights []int16
	Clauses [][]StateNode
}

// ClauseSizes returns the per-clause literal counts.
func (s *SparseState) ClauseSizes() []uint32 {
	sizes := make([]uint32, len(s.Clauses))
	for i, c := range s.Clauses {
		sizes[i] = uint32(len(c))
	}
	return sizes
}

// Validate checks that the buffers agree with the parameters.
func (s *SparseState) Validate() error {
	if err := s.Params.Validate(); err != nil {
		return err
	}
	if len(s.Weights) != s.WeightCount() {
		return fmt.Errorf("weight buffer has %d entries, shape (%d, %d) needs %d",
			len(s.Weights), s.NumClauses, s.NumClasses, s.WeightCount())
	}
	if len(s.Clauses) != int(s.NumClauses) {
		return fmt.Errorf("%d clause node lists for %d clauses", len(s.Clauses), s.NumClauses)
	}
	for i, clause := range s.Clauses {
		for _, node := range clause {
			if node.ID >= s.NumLiterals*2 {
				return fmt.Errorf("clause %d references automaton %d, model has %d",
					i, node.ID, s.NumLiterals*2)
			}
		}
	}
	return nil
}
