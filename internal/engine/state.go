package engine

import (
	"unsafe"

	"github.com/tsetlin-ml/tsetlin/internal/model"
)

// Mirrors of the native machine structs. Field order and widths must match
// the C definitions exactly; Go and C agree on alignment for these member
// types, so offsets line up without explicit padding.

type fastPRNG struct {
	state uint32
}

type denseMachine struct {
	numClasses  uint32
	threshold   uint32
	numLiterals uint32
	numClauses  uint32
	maxState    int8
	minState    int8
	boost       uint8
	s           float32
	ySize       uint32
	yElemSize   uint32

	yEq               uintptr
	outputActivation  uintptr
	calculateFeedback uintptr

	midState int8
	sInv     float32
	sMin1Inv float32

	taState      *int8
	weights      *int16
	clauseOutput *uint8
	votes        *int32

	rng fastPRNG
}

type taStateNode struct {
	id    uint32
	state int8
	next  *taStateNode
}

type sparseMachine struct {
	numClasses      uint32
	threshold       uint32
	numLiterals     uint32
	numClauses      uint32
	maxState        int8
	minState        int8
	sparseInitState int8
	sparseMinState  int8
	boost           uint8
	s               float32
	ySize           uint32
	yElemSize       uint32

	yEq               uintptr
	outputActivation  uintptr
	calculateFeedback uintptr

	midState  int8
	alRowSize uint8
	sInv      float32
	sMin1Inv  float32

	taState        **taStateNode
	activeLiterals *uint8
	weights        *int16
	clauseOutput   *uint8
	votes          *int32

	rng fastPRNG
}

//nolint:govet // unsafeptr: handles come from the native allocator.
func denseFromHandle(h Handle) *denseMachine {
	return (*denseMachine)(unsafe.Pointer(h)) //nolint:gosec // G103
}

//nolint:govet // unsafeptr: handles come from the native allocator.
func sparseFromHandle(h Handle) *sparseMachine {
	return (*sparseMachine)(unsafe.Pointer(h)) //nolint:gosec // G103
}

// DenseInfo reads the hyperparameters out of a live dense machine.
func DenseInfo(h Handle) (model.Params, error) {
	if h == 0 {
		return model.Params{}, ErrNoHandle
	}
	m := denseFromHandle(h)
	return model.Params{
		Threshold:         m.threshold,
		NumLiterals:       m.numLiterals,
		NumClauses:        m.numClauses,
		NumClasses:        m.numClasses,
		MaxState:          m.maxState,
		MinState:          m.minState,
		BoostTruePositive: m.boost != 0,
		S:                 float64(m.s),
	}, nil
}

// ReadDenseState copies the weight and automaton-state tensors out of a live
// dense machine. The state tensor is in the engine's native order: per
// clause, all include-polarity states then all exclude-polarity states.
func ReadDenseState(h Handle) (weights []int16, states []int8, err error) {
	if h == 0 {
		return nil, nil, ErrNoHandle
	}
	m := denseFromHandle(h)
	p, _ := DenseInfo(h)

	weights = make([]int16, p.WeightCount())
	copy(weights, unsafe.Slice(m.weights, p.WeightCount()))
	states = make([]int8, p.StateCount())
	copy(states, unsafe.Slice(m.taState, p.StateCount()))
	return weights, states, nil
}

// WriteDenseState copies tensors into a live dense machine, overwriting its
// learned state. The state tensor must be in the engine's native order and
// both buffers must match the machine's shape.
func WriteDenseState(h Handle, weights []int16, states []int8) error {
	if h == 0 {
		return ErrNoHandle
	}
	m := denseFromHandle(h)
	p, _ := DenseInfo(h)
	if err := (&model.State{Params: p, Weights: weights, Clauses: states}).Validate(); err != nil {
		return err
	}

	copy(unsafe.Slice(m.weights, p.WeightCount()), weights)
	copy(unsafe.Slice(m.taState, p.StateCount()), states)
	return nil
}

// SparseInfo reads the hyperparameters out of a live sparse machine.
func SparseInfo(h Handle) (model.Params, error) {
	if h == 0 {
		return model.Params{}, ErrNoHandle
	}
	m := sparseFromHandle(h)
	return model.Params{
		Threshold:         m.threshold,
		NumLiterals:       m.numLiterals,
		NumClauses:        m.numClauses,
		NumClasses:        m.numClasses,
		MaxState:          m.maxState,
		MinState:          m.minState,
		BoostTruePositive: m.boost != 0,
		S:                 float64(m.s),
	}, nil
}

// SparseClauseSizes walks the per-clause automaton lists of a live sparse
// machine and returns the node count of each clause.
func SparseClauseSizes(h Handle) ([]uint32, error) {
	if h == 0 {
		return nil, ErrNoHandle
	}
	m := sparseFromHandle(h)
	heads := unsafe.Slice(m.taState, m.numClauses)

	sizes := make([]uint32, m.numClauses)
	for i, head := range heads {
		for node := head; node != nil; node = node.next {
			sizes[i]++
		}
	}
	return sizes, nil
}

// ReadSparseNodes copies every live automaton node out of a sparse machine,
// clause by clause, preserving the engine's list order.
func ReadSparseNodes(h Handle) ([][]model.StateNode, error) {
	if h == 0 {
		return nil, ErrNoHandle
	}
	m := sparseFromHandle(h)
	heads := unsafe.Slice(m.taState, m.numClauses)

	clauses := make([][]model.StateNode, m.numClauses)
	for i, head := range heads {
		for node := head; node != nil; node = node.next {
			clauses[i] = append(clauses[i], model.StateNode{ID: node.id, State: node.state})
		}
	}
	return clauses, nil
}

// ReadSparseWeights copies the weight tensor out of a live sparse machine.
func ReadSparseWeights(h Handle) ([]int16, error) {
	if h == 0 {
		return nil, ErrNoHandle
	}
	m := sparseFromHandle(h)
	p, _ := SparseInfo(h)
	weights := make([]int16, p.WeightCount())
	copy(weights, unsafe.Slice(m.weights, p.WeightCount()))
	return weights, nil
}
