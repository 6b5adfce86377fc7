package model

// Per-buffer element sizes, mirroring the native engine's allocations. These
// must track the engine's allocator: there is no feedback loop that would
// catch drift, so any change to the engine's memory layout has to be mirrored
// here by hand.
const (
	automatonStateBytes = 1 // int8 per (clause, literal, polarity)
	weightBytes         = 2 // int16 per (clause, class)
	clauseOutputBytes   = 1 // uint8 per clause
	feedbackBytes       = 3 // int8 per (clause, class), three slots
	voteBytes           = 4 // int32 per class

	// Sparse storage keeps one linked node per live automaton: uint32 id,
	// int8 state, next pointer, padded to 16 bytes on 64-bit targets.
	sparseNodeBytes = 16
	pointerBytes    = 8
	clauseSizeBytes = 4 // uint32 per clause
)

// DenseSizeBytes estimates the native memory footprint of a dense model:
// flat automaton-state and weight arrays plus the clause-output, feedback and
// vote work buffers.
func DenseSizeBytes(p Params) int64 {
	clauses := int64(p.NumClauses)
	classes := int64(p.NumClasses)
	literals := int64(p.NumLiterals)

	states := clauses * literals * 2 * automatonStateBytes
	weights := clauses * classes * weightBytes
	outputs := clauses * clauseOutputBytes
	feedback := clauses * classes * feedbackBytes
	votes := classes * voteBytes

	return states + weights + outputs + feedback + votes
}

// SparseSizeBytes estimates the native memory footprint of a sparse model.
// clauseSizes is the live per-clause literal-count array read from the
// handle; only automatons the sparse storage actually holds cost memory.
func SparseSizeBytes(p Params, clauseSizes []uint32) int64 {
	clauses := int64(p.NumClauses)
	classes := int64(p.NumClasses)

	var totalNodes int64
	for _, n := range clauseSizes {
		totalNodes += int64(n)
	}

	nodes := totalNodes * sparseNodeBytes
	clausePtrs := clauses * pointerBytes
	activeLiteralPtrs := classes * pointerBytes
	sizes := clauses * clauseSizeBytes
	weights := clauses * classes * weightBytes
	outputs := clauses * clauseOutputBytes
	votes := classes * voteBytes

	return nodes + clausePtrs + activeLiteralPtrs + sizes + weights + outputs + votes
}
