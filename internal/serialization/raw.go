package serialization

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/tsetlin-ml/tsetlin/internal/model"
)

// Raw format layout. All multi-byte fields are little-endian.
const (
	rawOffsetThreshold   = 0  // uint32
	rawOffsetNumLiterals = 4  // uint32
	rawOffsetNumClauses  = 8  // uint32
	rawOffsetNumClasses  = 12 // uint32
	rawOffsetMaxState    = 16 // int8
	rawOffsetMinState    = 17 // int8
	rawOffsetBoost       = 18 // uint8
	rawOffsetS           = 24 // float64, after padding to 8-byte alignment
	rawHeaderSize        = 32 // weights start here
)

// WriteRaw writes a dense model snapshot in the raw format: the fixed header
// followed by the weight tensor and the canonical-order state tensor, as a
// single sequential append.
func WriteRaw(w io.Writer, s *model.State) error {
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
	if err := binary.Write(w, binary.LittleEndian, s.Clauses); err != nil {
		return fmt.Errorf("write states: %w", err)
	}
	return nil
}

// ReadRaw reads a dense model snapshot in the raw format. The fields are
// consumed in the exact order and width they were written; a short read
// anywhere yields ErrTruncated.
func ReadRaw(r io.Reader) (*model.State, error) {
	header := make([]byte, rawHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read header: %w", truncated(err))
	}

	s := &model.State{Params: decodeRawHeader(header)}
	if err := s.Params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}

	s.Weights = make([]int16, s.WeightCount())
	if err := binary.Read(r, binary.LittleEndian, s.Weights); err != nil {
		return nil, fmt.Errorf("read weights: %w", truncated(err))
	}
	s.Clauses = make([]int8, s.StateCount())
	if err := binary.Read(r, binary.LittleEndian, s.Clauses); err != nil {
		return nil, fmt.Errorf("read states: %w", truncated(err))
	}
	return s, nil
}

// WriteRawFile writes the raw format to path. The file is written to a
// temporary sibling and renamed into place so an interrupted write never
// leaves a half-written model behind.
func WriteRawFile(path string, s *model.State) error {
	return atomicWrite(path, func(w io.Writer) error {
		return WriteRaw(w, s)
	})
}

// ReadRawFile reads a raw-format model from path.
//
//nolint:gosec // G304: path comes from trusted caller, not user input.
func ReadRawFile(path string) (*model.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() {
		_ = f.Close() // Ignore close error on read-only file.
	}()
	return ReadRaw(f)
}

// atomicWrite writes via a temp file in the target directory, fsyncs, and
// renames over path.
func atomicWrite(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name()) // No-op after a successful rename.
	}()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func encodeRawHeader(header []byte, p *model.Params) {
	binary.LittleEndian.PutUint32(header[rawOffsetThreshold:], p.Threshold)
	binary.LittleEndian.PutUint32(header[rawOffsetNumLiterals:], p.NumLiterals)
	binary.LittleEndian.PutUint32(header[rawOffsetNumClauses:], p.NumClauses)
	binary.LittleEndian.PutUint32(header[rawOffsetNumClasses:], p.NumClasses)
	header[rawOffsetMaxState] = byte(p.MaxState)
	header[rawOffsetMinState] = byte(p.MinState)
	if p.BoostTruePositive {
		header[rawOffsetBoost] = 1
	}
	binary.LittleEndian.PutUint64(header[rawOffsetS:], math.Float64bits(p.S))
}

func decodeRawHeader(header []byte) model.Params {
	return model.Params{
		Threshold:         binary.LittleEndian.Uint32(header[rawOffsetThreshold:]),
		NumLiterals:       binary.LittleEndian.Uint32(header[rawOffsetNumLiterals:]),
		NumClauses:        binary.LittleEndian.Uint32(header[rawOffsetNumClauses:]),
		NumClasses:        binary.LittleEndian.Uint32(header[rawOffsetNumClasses:]),
		MaxState:          int8(header[rawOffsetMaxState]),
		MinState:          int8(header[rawOffsetMinState]),
		BoostTruePositive: header[rawOffsetBoost] != 0,
		S:                 math.Float64frombits(binary.LittleEndian.Uint64(header[rawOffsetS:])),
	}
}

// truncated maps EOF-ish read errors to ErrTruncated, keeping the original
// error in the chain.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	return err
}
