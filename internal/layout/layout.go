// Package layout converts automaton-state tensors between the engine's
// in-memory order and the canonical on-disk order.
//
// The engine keeps one contiguous run of 2*numLiterals states per clause with
// polarity as the slower axis: (numClauses, 2, numLiterals). Both file formats
// interleave polarity per literal instead: (numClauses, numLiterals, 2). The
// per-clause transform is reshape (2, numLiterals) -> transpose ->
// (numLiterals, 2) -> flatten, and it is exactly invertible.
package layout

import "fmt"

// ToCanonical reorders engine-order automaton states into canonical on-disk
// order. The input is left untouched.
func ToCanonical(states []int8, numClauses, numLiterals int) ([]int8, error) {
	if err := checkLen(states, numClauses, numLiterals); err != nil {
		return nil, err
	}
	out := make([]int8, len(states))
	run := 2 * numLiterals
	for c := 0; c < numClauses; c++ {
		src := states[c*run : (c+1)*run]
		dst := out[c*run : (c+1)*run]
		for l := 0; l < numLiterals; l++ {
			dst[l*2] = src[l]
			dst[l*2+1] = src[numLiterals+l]
		}
	}
	return out, nil
}

// FromCanonical is the inverse of ToCanonical: it reorders canonical on-disk
// states back into engine order.
func FromCanonical(states []int8, numClauses, numLiterals int) ([]int8, error) {
	if err := checkLen(states, numClauses, numLiterals); err != nil {
		return nil, err
	}
	out := make([]int8, len(states))
	run := 2 * numLiterals
	for c := 0; c < numClauses; c++ {
		src := states[c*run : (c+1)*run]
		dst := out[c*run : (c+1)*run]
		for l := 0; l < numLiterals; l++ {
			dst[l] = src[l*2]
			dst[numLiterals+l] = src[l*2+1]
		}
	}
	return out, nil
}

func checkLen(states []int8, numClauses, numLiterals int) error {
	if numClauses <= 0 || numLiterals <= 0 {
		return fmt.Errorf("invalid shape (%d clauses, %d literals)", numClauses, numLiterals)
	}
	if want := numClauses * numLiterals * 2; len(states) != want {
		return fmt.Errorf("state buffer has %d elements, shape (%d, %d, 2) needs %d",
			len(states), numClauses, numLiterals, want)
	}
	return nil
}
