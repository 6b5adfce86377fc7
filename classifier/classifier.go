// Package classifier provides Tsetlin Machine classifiers backed by the
// native C engine.
//
// This package wraps the internal lifecycle manager and exports a clean
// public API. The native library is loaded lazily from the configured
// directory on the first operation that needs it.
//
// Example usage:
//
//	import "github.com/tsetlin-ml/tsetlin/classifier"
//
//	cfg := classifier.DefaultConfig("/opt/tsetlin/lib")
//	clf, err := classifier.New[string](cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer clf.Reset()
//
//	if err := clf.Fit(x, y); err != nil {
//	    log.Fatal(err)
//	}
//	pred, err := clf.Predict(xTest)
package classifier

import (
	"cmp"

	"github.com/tsetlin-ml/tsetlin/internal/classifier"
	"github.com/tsetlin-ml/tsetlin/internal/engine"
)

// Config holds the per-instance hyperparameters.
type Config = classifier.Config

// Classifier trains and queries a dense native Tsetlin Machine.
type Classifier[L cmp.Ordered] = classifier.Classifier[L]

// Sparse trains and queries a sparse native Tsetlin Machine.
type Sparse[L cmp.Ordered] = classifier.Sparse[L]

// PartialFitOptions tunes a single incremental training call.
type PartialFitOptions[L cmp.Ordered] = classifier.PartialFitOptions[L]

// LinkError reports a failure to locate, open, or bind the native library.
type LinkError = engine.LinkError

var (
	// ErrValidation is returned when inputs fail shape, value, or class
	// checks.
	ErrValidation = classifier.ErrValidation

	// ErrNotFitted is returned when prediction is attempted on an unbound
	// classifier.
	ErrNotFitted = classifier.ErrNotFitted

	// ErrUnsupported is returned when an optional engine operation is
	// invoked on a library build that does not export it.
	ErrUnsupported = engine.ErrUnsupported
)

// DefaultConfig returns the conventional hyperparameters for the engine,
// loading the native library from libDir.
func DefaultConfig(libDir string) Config {
	return classifier.DefaultConfig(libDir)
}

// New constructs an unbound dense classifier.
func New[L cmp.Ordered](cfg Config) (*Classifier[L], error) {
	return classifier.New[L](cfg)
}

// NewSparse constructs an unbound sparse classifier.
func NewSparse[L cmp.Ordered](cfg Config) (*Sparse[L], error) {
	return classifier.NewSparse[L](cfg)
}
