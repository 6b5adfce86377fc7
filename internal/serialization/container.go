package serialization

import (
	"fmt"
	"io"
	"os"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/tsetlin-ml/tsetlin/internal/fbs"
	"github.com/tsetlin-ml/tsetlin/internal/model"
)

// EncodeContainer serializes a dense model snapshot into the self-describing
// container format. Literal names are written only when the snapshot carries
// them; otherwise the field is absent from the buffer entirely.
func EncodeContainer(s *model.State) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid state: %w", err)
	}

	builder := flatbuffers.NewBuilder(len(s.Weights)*2 + len(s.Clauses) + 256)

	// Vectors are prepended, so elements go in reverse.
	fbs.ClauseWeightsTensorStartWeightsVector(builder, len(s.Weights))
	for i := len(s.Weights) - 1; i >= 0; i-- {
		builder.PrependInt16(s.Weights[i])
	}
	weightsVec := builder.EndVector(len(s.Weights))

	weightsShape := []uint32{s.NumClauses, s.NumClasses}
	fbs.ClauseWeightsTensorStartShapeVector(builder, len(weightsShape))
	for i := len(weightsShape) - 1; i >= 0; i-- {
		builder.PrependUint32(weightsShape[i])
	}
	weightsShapeVec := builder.EndVector(len(weightsShape))

	fbs.ClauseWeightsTensorStart(builder)
	fbs.ClauseWeightsTensorAddWeights(builder, weightsVec)
	fbs.ClauseWeightsTensorAddShape(builder, weightsShapeVec)
	clauseWeights := fbs.ClauseWeightsTensorEnd(builder)

	fbs.AutomatonStatesTensorStartStatesVector(builder, len(s.Clauses))
	for i := len(s.Clauses) - 1; i >= 0; i-- {
		builder.PrependInt8(s.Clauses[i])
	}
	statesVec := builder.EndVector(len(s.Clauses))

	statesShape := []uint32{s.NumClauses, s.NumLiterals, 2}
	fbs.AutomatonStatesTensorStartShapeVector(builder, len(statesShape))
	for i := len(statesShape) - 1; i >= 0; i-- {
		builder.PrependUint32(statesShape[i])
	}
	statesShapeVec := builder.EndVector(len(statesShape))

	fbs.AutomatonStatesTensorStart(builder)
	fbs.AutomatonStatesTensorAddStates(builder, statesVec)
	fbs.AutomatonStatesTensorAddShape(builder, statesShapeVec)
	automatonStates := fbs.AutomatonStatesTensorEnd(builder)

	fbs.ParametersStart(builder)
	fbs.ParametersAddThreshold(builder, s.Threshold)
	fbs.ParametersAddNLiterals(builder, s.NumLiterals)
	fbs.ParametersAddNClauses(builder, s.NumClauses)
	fbs.ParametersAddNClasses(builder, s.NumClasses)
	fbs.ParametersAddMaxState(builder, s.MaxState)
	fbs.ParametersAddMinState(builder, s.MinState)
	fbs.ParametersAddBoostTp(builder, s.BoostTruePositive)
	fbs.ParametersAddLearnS(builder, s.S)
	params := fbs.ParametersEnd(builder)

	var literalNamesVec flatbuffers.UOffsetT
	if s.LiteralNames != nil {
		nameOffsets := make([]flatbuffers.UOffsetT, len(s.LiteralNames))
		for i, name := range s.LiteralNames {
			nameOffsets[i] = builder.CreateString(name)
		}
		fbs.ModelStartLiteralNamesVector(builder, len(nameOffsets))
		for i := len(nameOffsets) - 1; i >= 0; i-- {
			builder.PrependUOffsetT(nameOffsets[i])
		}
		literalNamesVec = builder.EndVector(len(nameOffsets))
	}

	fbs.ModelStart(builder)
	fbs.ModelAddParams(builder, params)
	fbs.ModelAddAutomatonStates(builder, automatonStates)
	fbs.ModelAddClauseWeights(builder, clauseWeights)
	if s.LiteralNames != nil {
		fbs.ModelAddLiteralNames(builder, literalNamesVec)
	}
	builder.Finish(fbs.ModelEnd(builder))

	return builder.FinishedBytes(), nil
}

// DecodeContainer parses a container buffer back into a model snapshot.
//
// Tensor shapes come from the shape vectors travelling with the data, not
// from the Parameters table; a disagreement between the two is reported as
// ErrShapeMismatch rather than silently trusting either side.
func DecodeContainer(buf []byte) (*model.State, error) {
	if len(buf) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("%w: %d-byte buffer", ErrTruncated, len(buf))
	}
	m := fbs.GetRootAsModel(buf, 0)

	params := m.Params(nil)
	if params == nil {
		return nil, fmt.Errorf("%w: parameters", ErrMissingTable)
	}
	weights := m.ClauseWeights(nil)
	if weights == nil {
		return nil, fmt.Errorf("%w: clause weights", ErrMissingTable)
	}
	states := m.AutomatonStates(nil)
	if states == nil {
		return nil, fmt.Errorf("%w: automaton states", ErrMissingTable)
	}

	s := &model.State{
		Params: model.Params{
			Threshold:         params.Threshold(),
			NumLiterals:       params.NLiterals(),
			NumClauses:        params.NClauses(),
			NumClasses:        params.NClasses(),
			MaxState:          params.MaxState(),
			MinState:          params.MinState(),
			BoostTruePositive: params.BoostTp(),
			S:                 params.LearnS(),
		},
	}

	// Reconstruct tensors from the carried shapes.
	weightCount, err := shapeProduct(weights.ShapeLength(), weights.Shape)
	if err != nil {
		return nil, fmt.Errorf("weight tensor: %w", err)
	}
	if weights.WeightsLength() != weightCount {
		return nil, fmt.Errorf("%w: weight shape wants %d entries, buffer has %d",
			ErrShapeMismatch, weightCount, weights.WeightsLength())
	}
	s.Weights = make([]int16, weightCount)
	for i := range s.Weights {
		s.Weights[i] = weights.Weights(i)
	}

	stateCount, err := shapeProduct(states.ShapeLength(), states.Shape)
	if err != nil {
		return nil, fmt.Errorf("state tensor: %w", err)
	}
	if states.StatesLength() != stateCount {
		return nil, fmt.Errorf("%w: state shape wants %d entries, buffer has %d",
			ErrShapeMismatch, stateCount, states.StatesLength())
	}
	s.Clauses = make([]int8, stateCount)
	for i := range s.Clauses {
		s.Clauses[i] = states.States(i)
	}

	if n := m.LiteralNamesLength(); n > 0 {
		s.LiteralNames = make([]string, n)
		for i := range s.LiteralNames {
			s.LiteralNames[i] = string(m.LiteralNames(i))
		}
	}

	// The carried shapes are authoritative for the buffers; now cross-check
	// them against the parameters so a mismatch is at least detectable.
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}
	return s, nil
}

// WriteContainerFile writes the container format to path atomically.
func WriteContainerFile(path string, s *model.State) error {
	buf, err := EncodeContainer(s)
	if err != nil {
		return err
	}
	return atomicWrite(path, func(w io.Writer) error {
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write container: %w", err)
		}
		return nil
	})
}

// ReadContainerFile reads a container-format model from path.
//
//nolint:gosec // G304: path comes from trusted caller, not user input.
func ReadContainerFile(path string) (*model.State, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return DecodeContainer(buf)
}

func shapeProduct(n int, dim func(int) uint32) (int, error) {
	if n == 0 {
		return 0, fmt.Errorf("%w: empty shape vector", ErrShapeMismatch)
	}
	product := 1
	for i := 0; i < n; i++ {
		product *= int(dim(i))
	}
	return product, nil
}
