package classifier

import (
	"fmt"

	"github.com/tsetlin-ml/tsetlin/internal/model"
)

// Config holds the per-instance hyperparameters. A Config is immutable once
// handed to a classifier; changing hyperparameters means constructing a new
// classifier.
type Config struct {
	Threshold         uint32  // T threshold for clause votes
	NumClauses        uint32  // clauses per machine
	MaxState          int8    // maximum automaton state
	MinState          int8    // minimum automaton state
	BoostTruePositive bool    // boost true positive feedback
	S                 float64 // learning sensitivity, >= 1.0
	Epochs            uint32  // training epochs per fit call

	// Seed fixes the engine PRNG. When nil, a fresh seed is drawn on every
	// fit, so repeated fits produce different machines.
	Seed *uint32

	// LibDir is the directory holding the compiled engine library.
	LibDir string
}

// DefaultConfig returns the conventional hyperparameters for the engine.
func DefaultConfig(libDir string) Config {
	return Config{
		Threshold:  1000,
		NumClauses: 1000,
		MaxState:   127,
		MinState:   -127,
		S:          3.0,
		Epochs:     10,
		LibDir:     libDir,
	}
}

// Validate checks the hyperparameter ranges.
func (c Config) Validate() error {
	if c.Threshold < 1 {
		return fmt.Errorf("%w: threshold must be >= 1, got %d", ErrValidation, c.Threshold)
	}
	if c.NumClauses < 1 {
		return fmt.Errorf("%w: clause count must be >= 1, got %d", ErrValidation, c.NumClauses)
	}
	if c.MinState > c.MaxState {
		return fmt.Errorf("%w: min state %d exceeds max state %d", ErrValidation, c.MinState, c.MaxState)
	}
	if c.S < 1.0 {
		return fmt.Errorf("%w: sensitivity must be >= 1.0, got %g", ErrValidation, c.S)
	}
	if c.Epochs < 1 {
		return fmt.Errorf("%w: epochs must be >= 1, got %d", ErrValidation, c.Epochs)
	}
	if c.LibDir == "" {
		return fmt.Errorf("%w: engine library directory not set", ErrValidation)
	}
	return nil
}

// params assembles the full parameter set for a machine of the given shape.
func (c Config) params(numLiterals, numClasses uint32) model.Params {
	return model.Params{
		Threshold:         c.Threshold,
		NumLiterals:       numLiterals,
		NumClauses:        c.NumClauses,
		NumClasses:        numClasses,
		MaxState:          c.MaxState,
		MinState:          c.MinState,
		BoostTruePositive: c.BoostTruePositive,
		S:                 c.S,
	}
}
