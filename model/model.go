// Package model exposes Tsetlin Machine model snapshots and the two on-disk
// codecs: the fixed-layout raw binary format and the self-describing
// container format.
//
// Snapshots come from a classifier's ExportState or from reading a model
// file; both formats describe the same dense tensors, and converting between
// them is lossless apart from the container's optional literal names.
package model

import (
	"github.com/tsetlin-ml/tsetlin/internal/model"
	"github.com/tsetlin-ml/tsetlin/internal/serialization"
)

// Params holds the eight scalar hyperparameters carried by both formats.
type Params = model.Params

// State is a dense model snapshot with states in canonical on-disk order.
type State = model.State

// SparseState is a sparse model snapshot of live automaton nodes.
type SparseState = model.SparseState

// StateNode is one automaton state of a sparse clause.
type StateNode = model.StateNode

var (
	// ErrTruncated is returned when a raw model file ends mid-field.
	ErrTruncated = serialization.ErrTruncated

	// ErrShapeMismatch is returned when a container's shape vectors
	// disagree with its tensor buffers or parameters.
	ErrShapeMismatch = serialization.ErrShapeMismatch

	// ErrMissingTable is returned when a container lacks a required table.
	ErrMissingTable = serialization.ErrMissingTable
)

// DenseSizeBytes estimates the engine's allocation size for a dense machine.
func DenseSizeBytes(p Params) int64 {
	return model.DenseSizeBytes(p)
}

// SparseSizeBytes estimates the engine's allocation size for a sparse
// machine with the given live per-clause node counts.
func SparseSizeBytes(p Params, clauseSizes []uint32) int64 {
	return model.SparseSizeBytes(p, clauseSizes)
}

// ReadRawFile reads a raw-format dense model from path.
func ReadRawFile(path string) (*State, error) {
	return serialization.ReadRawFile(path)
}

// WriteRawFile writes a dense model to path in the raw format, atomically.
func WriteRawFile(path string, s *State) error {
	return serialization.WriteRawFile(path, s)
}

// ReadSparseRawFile reads a sparse raw-format model from path.
func ReadSparseRawFile(path string) (*SparseState, error) {
	return serialization.ReadSparseRawFile(path)
}

// WriteSparseRawFile writes a sparse model to path, atomically.
func WriteSparseRawFile(path string, s *SparseState) error {
	return serialization.WriteSparseRawFile(path, s)
}

// ReadContainerFile reads a container-format dense model from path.
func ReadContainerFile(path string) (*State, error) {
	return serialization.ReadContainerFile(path)
}

// WriteContainerFile writes a dense model to path in the container format,
// atomically.
func WriteContainerFile(path string, s *State) error {
	return serialization.WriteContainerFile(path, s)
}

// EncodeContainer serializes a dense model into a container buffer.
func EncodeContainer(s *State) ([]byte, error) {
	return serialization.EncodeContainer(s)
}

// DecodeContainer parses a container buffer into a dense model.
func DecodeContainer(buf []byte) (*State, error) {
	return serialization.DecodeContainer(buf)
}
