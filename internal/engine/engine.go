package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ebitengine/purego"

	"github.com/tsetlin-ml/tsetlin/internal/model"
)

// Shared library stems; the platform suffix comes from libFileName.
const (
	engineLibStem    = "libtsetlin_machine_c"
	companionLibStem = "libflatccrt"
)

// Labels cross the boundary as one uint32 class index per row.
const (
	ySizeClassIdx     = 1
	yElemSizeClassIdx = 4
)

// Handle is an opaque reference to an engine-allocated machine. The zero
// Handle is invalid.
type Handle uintptr

// Capability flags optional primitives probed at load time.
type Capability uint32

const (
	// CapContainer is set when the library exports the self-describing
	// save/load pair for dense machines.
	CapContainer Capability = 1 << iota
)

// Engine is a loaded native library with every primitive bound. It is safe
// for concurrent use; the machines it creates are not.
type Engine struct {
	path string
	caps Capability

	tmCreate func(numClasses, threshold, numLiterals, numClauses uint32,
		maxState, minState int8, boost uint8,
		ySize, yElemSize uint32, s float32, seed uint32) uintptr
	tmLoad     func(path string, ySize, yElemSize uint32) uintptr
	tmSave     func(h uintptr, path string)
	tmFree     func(h uintptr)
	tmTrain    func(h uintptr, x *uint8, y *uint32, rows, epochs uint32)
	tmPredict  func(h uintptr, x *uint8, yPred *uint32, rows uint32)
	tmEvaluate func(h uintptr, x *uint8, y *uint32, rows uint32)

	tmSaveFbs func(h uintptr, path string)
	tmLoadFbs func(path string, ySize, yElemSize uint32) uintptr

	stmCreate func(numClasses, threshold, numLiterals, numClauses uint32,
		maxState, minState int8, boost uint8,
		ySize, yElemSize uint32, s float32, seed uint32) uintptr
	stmLoadDense func(path string, ySize, yElemSize uint32) uintptr
	stmSave      func(h uintptr, path string)
	stmFree      func(h uintptr)
	stmTrain     func(h uintptr, x *uint8, y *uint32, rows, epochs uint32)
	stmPredict   func(h uintptr, x *uint8, yPred *uint32, rows uint32)
	stmEvaluate  func(h uintptr, x *uint8, y *uint32, rows uint32)
}

// Load opens the engine library from libDir and binds all primitives.
//
// If a companion runtime library sits next to the engine library it is
// opened first, with global visibility, so the engine's optional symbols can
// resolve against it. A missing or unopenable engine library yields a
// LinkError; missing optional symbols merely clear the capability.
func Load(libDir string) (*Engine, error) {
	companionPath := filepath.Join(libDir, libFileName(companionLibStem))
	if _, err := os.Stat(companionPath); err == nil {
		if _, err := openLibrary(companionPath); err != nil {
			return nil, &LinkError{Path: companionPath, Err: err}
		}
	}

	path := filepath.Join(libDir, libFileName(engineLibStem))
	lib, err := openLibrary(path)
	if err != nil {
		return nil, &LinkError{Path: path, Err: err}
	}

	e := &Engine{path: path}
	bind := func(fptr any, name string) {
		if err != nil {
			return
		}
		if !hasSymbol(lib, name) {
			err = fmt.Errorf("symbol %s not found", name)
			return
		}
		purego.RegisterLibFunc(fptr, lib, name)
	}

	bind(&e.tmCreate, "tm_create")
	bind(&e.tmLoad, "tm_load")
	bind(&e.tmSave, "tm_save")
	bind(&e.tmFree, "tm_free")
	bind(&e.tmTrain, "tm_train")
	bind(&e.tmPredict, "tm_predict")
	bind(&e.tmEvaluate, "tm_evaluate")

	bind(&e.stmCreate, "stm_create")
	bind(&e.stmLoadDense, "stm_load_dense")
	bind(&e.stmSave, "stm_save")
	bind(&e.stmFree, "stm_free")
	bind(&e.stmTrain, "stm_train")
	bind(&e.stmPredict, "stm_predict")
	bind(&e.stmEvaluate, "stm_evaluate")
	if err != nil {
		return nil, &LinkError{Path: path, Err: err}
	}

	if hasSymbol(lib, "tm_save_fbs") && hasSymbol(lib, "tm_load_fbs") {
		purego.RegisterLibFunc(&e.tmSaveFbs, lib, "tm_save_fbs")
		purego.RegisterLibFunc(&e.tmLoadFbs, lib, "tm_load_fbs")
		e.caps |= CapContainer
	}
	return e, nil
}

// Path returns the engine library path that was opened.
func (e *Engine) Path() string {
	return e.path
}

// Capabilities reports which optional primitives the library exports.
func (e *Engine) Capabilities() Capability {
	return e.caps
}

// CreateDense allocates a dense machine for the given hyperparameters.
func (e *Engine) CreateDense(p model.Params, seed uint32) (Handle, error) {
	h := e.tmCreate(p.NumClasses, p.Threshold, p.NumLiterals, p.NumClauses,
		p.MaxState, p.MinState, boolByte(p.BoostTruePositive),
		ySizeClassIdx, yElemSizeClassIdx, float32(p.S), seed)
	if h == 0 {
		return 0, fmt.Errorf("%w: dense create", ErrCreateFailed)
	}
	return Handle(h), nil
}

// LoadDense reconstructs a dense machine from a raw-format model file using
// the engine's own reader.
func (e *Engine) LoadDense(path string) (Handle, error) {
	h := e.tmLoad(path, ySizeClassIdx, yElemSizeClassIdx)
	if h == 0 {
		return 0, fmt.Errorf("%w: dense load from %s", ErrCreateFailed, path)
	}
	return Handle(h), nil
}

// SaveDense writes the machine to path in the engine's raw format.
func (e *Engine) SaveDense(h Handle, path string) error {
	if h == 0 {
		return ErrNoHandle
	}
	e.tmSave(uintptr(h), path)
	return nil
}

// LoadDenseContainer reconstructs a dense machine from a self-describing
// container file. Requires CapContainer.
func (e *Engine) LoadDenseContainer(path string) (Handle, error) {
	if e.caps&CapContainer == 0 {
		return 0, fmt.Errorf("%w: container load", ErrUnsupported)
	}
	h := e.tmLoadFbs(path, ySizeClassIdx, yElemSizeClassIdx)
	if h == 0 {
		return 0, fmt.Errorf("%w: container load from %s", ErrCreateFailed, path)
	}
	return Handle(h), nil
}

// SaveDenseContainer writes the machine to path in the self-describing
// container format. Requires CapContainer.
func (e *Engine) SaveDenseContainer(h Handle, path string) error {
	if e.caps&CapContainer == 0 {
		return fmt.Errorf("%w: container save", ErrUnsupported)
	}
	if h == 0 {
		return ErrNoHandle
	}
	e.tmSaveFbs(uintptr(h), path)
	return nil
}

// FreeDense releases the machine. The caller must not reuse the handle.
func (e *Engine) FreeDense(h Handle) {
	if h != 0 {
		e.tmFree(uintptr(h))
	}
}

// TrainDense runs the native training loop over rows examples for the given
// number of epochs. X is row-major (rows, numLiterals) of 0/1 bytes and y
// holds one class index per row; both must be pre-validated.
func (e *Engine) TrainDense(h Handle, x []uint8, y []uint32, rows, epochs uint32) error {
	if h == 0 {
		return ErrNoHandle
	}
	e.tmTrain(uintptr(h), &x[0], &y[0], rows, epochs)
	return nil
}

// PredictDense returns one class index per row.
func (e *Engine) PredictDense(h Handle, x []uint8, rows uint32) ([]uint32, error) {
	if h == 0 {
		return nil, ErrNoHandle
	}
	yPred := make([]uint32, rows)
	e.tmPredict(uintptr(h), &x[0], &yPred[0], rows)
	return yPred, nil
}

// EvaluateDense runs the engine's own accuracy report over the batch. The
// result goes to the engine's stdout; use PredictDense for programmatic
// scoring.
func (e *Engine) EvaluateDense(h Handle, x []uint8, y []uint32, rows uint32) error {
	if h == 0 {
		return ErrNoHandle
	}
	e.tmEvaluate(uintptr(h), &x[0], &y[0], rows)
	return nil
}

// CreateSparse allocates a sparse machine for the given hyperparameters.
func (e *Engine) CreateSparse(p model.Params, seed uint32) (Handle, error) {
	h := e.stmCreate(p.NumClasses, p.Threshold, p.NumLiterals, p.NumClauses,
		p.MaxState, p.MinState, boolByte(p.BoostTruePositive),
		ySizeClassIdx, yElemSizeClassIdx, float32(p.S), seed)
	if h == 0 {
		return 0, fmt.Errorf("%w: sparse create", ErrCreateFailed)
	}
	return Handle(h), nil
}

// LoadSparseFromDense reconstructs a sparse machine from a dense raw-format
// model file. Dense and sparse files are distinct formats; handing a sparse
// file to this primitive is a caller error the engine does not detect.
func (e *Engine) LoadSparseFromDense(path string) (Handle, error) {
	h := e.stmLoadDense(path, ySizeClassIdx, yElemSizeClassIdx)
	if h == 0 {
		return 0, fmt.Errorf("%w: sparse load from %s", ErrCreateFailed, path)
	}
	return Handle(h), nil
}

// SaveSparse writes the machine to path in the sparse raw format.
func (e *Engine) SaveSparse(h Handle, path string) error {
	if h == 0 {
		return ErrNoHandle
	}
	e.stmSave(uintptr(h), path)
	return nil
}

// FreeSparse releases the machine. The caller must not reuse the handle.
func (e *Engine) FreeSparse(h Handle) {
	if h != 0 {
		e.stmFree(uintptr(h))
	}
}

// TrainSparse runs the native sparse training loop; arguments as TrainDense.
func (e *Engine) TrainSparse(h Handle, x []uint8, y []uint32, rows, epochs uint32) error {
	if h == 0 {
		return ErrNoHandle
	}
	e.stmTrain(uintptr(h), &x[0], &y[0], rows, epochs)
	return nil
}

// PredictSparse returns one class index per row.
func (e *Engine) PredictSparse(h Handle, x []uint8, rows uint32) ([]uint32, error) {
	if h == 0 {
		return nil, ErrNoHandle
	}
	yPred := make([]uint32, rows)
	e.stmPredict(uintptr(h), &x[0], &yPred[0], rows)
	return yPred, nil
}

// EvaluateSparse runs the engine's own accuracy report over the batch.
func (e *Engine) EvaluateSparse(h Handle, x []uint8, y []uint32, rows uint32) error {
	if h == 0 {
		return ErrNoHandle
	}
	e.stmEvaluate(uintptr(h), &x[0], &y[0], rows)
	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
