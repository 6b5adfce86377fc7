package serialization

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/tsetlin-ml/tsetlin/internal/model"
)

// clauseDelimiter terminates each clause's automaton node run in the sparse
// raw format. Automaton ids are bounded by 2*numLiterals, so the maximum
// uint32 can never collide with a real id.
const clauseDelimiter = ^uint32(0)

// WriteSparseRaw writes a sparse model snapshot: the same fixed header and
// weight tensor as the dense raw format, then one (id, state) pair per live
// automaton node, clause by clause, each clause terminated by a delimiter.
// Only the automatons the sparse storage actually holds are serialized.
func WriteSparseRaw(w io.Writer, s *model.SparseState) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid state: %w", err)
	}

	header := make([]byte, rawHeaderSize)
	encodeRawHeader(header, &s.Params)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, s.Weights); err != nil {
		return fmt.Errorf("write weights: %w", err)
	}

	bw := bufio.NewWriter(w)
	for i, clause := range s.Clauses {
		for _, node := range clause {
			if err := binary.Write(bw, binary.LittleEndian, node.ID); err != nil {
				return fmt.Errorf("write clause %d node: %w", i, err)
			}
			if err := bw.WriteByte(byte(node.State)); err != nil {
				return fmt.Errorf("write clause %d node state: %w", i, err)
			}
		}
		if err := binary.Write(bw, binary.LittleEndian, clauseDelimiter); err != nil {
			return fmt.Errorf("write clause %d delimiter: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush clauses: %w", err)
	}
	return nil
}

// ReadSparseRaw reads a sparse model snapshot written by WriteSparseRaw.
func ReadSparseRaw(r io.Reader) (*model.SparseState, error) {
	header := make([]byte, rawHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read header: %w", truncated(err))
	}
	params := decodeRawHeader(header)
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}

	s := &model.SparseState{Params: params}
	s.Weights = make([]int16, s.WeightCount())
	if err := binary.Read(r, binary.LittleEndian, s.Weights); err != nil {
		return nil, fmt.Errorf("read weights: %w", truncated(err))
	}

	br := bufio.NewReader(r)
	s.Clauses = make([][]model.StateNode, s.NumClauses)
	for i := range s.Clauses {
		for {
			var id uint32
			if err := binary.Read(br, binary.LittleEndian, &id); err != nil {
				return nil, fmt.Errorf("read clause %d: %w", i, truncated(err))
			}
			if id == clauseDelimiter {
				break
			}
			state, err := br.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("read clause %d state: %w", i, truncated(err))
			}
			s.Clauses[i] = append(s.Clauses[i], model.StateNode{ID: id, State: int8(state)})
		}
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	return s, nil
}

// WriteSparseRawFile writes the sparse raw format to path atomically.
func WriteSparseRawFile(path string, s *model.SparseState) error {
	return atomicWrite(path, func(w io.Writer) error {
		return WriteSparseRaw(w, s)
	})
}

// ReadSparseRawFile reads a sparse raw-format model from path.
//
//nolint:gosec // G304: path comes from trusted caller, not user input.
func ReadSparseRawFile(path string) (*model.SparseState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() {
		_ = f.Close() // Ignore close error on read-only file.
	}()
	return ReadSparseRaw(f)
}
