// Package serialization implements the two on-disk model formats.
//
// The raw format is a fixed-offset little-endian layout: a 32-byte header
// (threshold, literal/clause/class counts, state bounds, boost flag,
// sensitivity) followed by the flat weight tensor and the automaton-state
// tensor in canonical order. It carries no version tag and no checksum;
// a truncated file surfaces as an I/O error at the short read.
//
// The container format is a self-describing FlatBuffers model: the same
// scalars in a Parameters table, each tensor paired with an explicit shape
// vector, and an optional list of per-literal names. Readers reconstruct
// tensors from the carried shapes, never from the parameters, so shape and
// parameter disagreements are detectable.
//
// A sparse model saves the same header and weights but stores per-clause
// automaton node runs instead of a dense state tensor. Sparse and dense raw
// files are distinct formats; loading one as the other is a caller error and
// is not auto-detected.
package serialization
