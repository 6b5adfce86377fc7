package classifier

import (
	"cmp"
	"fmt"
	"log"
	"math/rand/v2"
	"runtime"

	"github.com/tsetlin-ml/tsetlin/internal/engine"
	"github.com/tsetlin-ml/tsetlin/internal/labels"
	"github.com/tsetlin-ml/tsetlin/internal/model"
)

// Sparse trains and queries a sparse native Tsetlin Machine. The sparse
// engine stores automaton states in per-clause linked lists instead of a
// dense array, trading lookup cost for memory on high-dimensional inputs.
//
// Not safe for concurrent use; callers must serialize access.
type Sparse[L cmp.Ordered] struct {
	cfg Config

	eng     *engine.Engine
	handle  engine.Handle
	mapping *labels.Mapping[L]
	params  model.Params
	seed    uint32
}

// NewSparse constructs an unbound sparse classifier.
func NewSparse[L cmp.Ordered](cfg Config) (*Sparse[L], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Sparse[L]{cfg: cfg}
	runtime.SetFinalizer(c, (*Sparse[L]).finalize)
	return c, nil
}

// Config returns the hyperparameters the classifier was built with.
func (c *Sparse[L]) Config() Config {
	return c.cfg
}

// Classes returns the bound class labels in index order, or nil when
// unbound.
func (c *Sparse[L]) Classes() []L {
	if c.mapping == nil {
		return nil
	}
	return c.mapping.Classes()
}

// NumLiterals returns the bound feature count, or 0 when unbound.
func (c *Sparse[L]) NumLiterals() uint32 {
	if c.mapping == nil {
		return 0
	}
	return c.params.NumLiterals
}

func (c *Sparse[L]) engineRef() (*engine.Engine, error) {
	if c.eng == nil {
		eng, err := engine.Load(c.cfg.LibDir)
		if err != nil {
			return nil, err
		}
		c.eng = eng
	}
	return c.eng, nil
}

func (c *Sparse[L]) drawSeed() uint32 {
	if c.cfg.Seed != nil {
		return *c.cfg.Seed
	}
	return rand.Uint32()
}

func (c *Sparse[L]) freeHandle() {
	if c.handle == 0 {
		return
	}
	h := c.handle
	c.handle = 0
	eng, err := c.engineRef()
	if err != nil {
		log.Printf("warning: cannot free machine, engine unavailable: %v", err)
		return
	}
	eng.FreeSparse(h)
}

func (c *Sparse[L]) bind(mapping *labels.Mapping[L], numLiterals uint32) error {
	eng, err := c.engineRef()
	if err != nil {
		return err
	}
	c.freeHandle()

	seed := c.drawSeed()
	params := c.cfg.params(numLiterals, uint32(mapping.NumClasses()))
	h, err := eng.CreateSparse(params, seed)
	if err != nil {
		return err
	}
	c.handle = h
	c.mapping = mapping
	c.params = params
	c.seed = seed
	return nil
}

func (c *Sparse[L]) rebind() error {
	if c.handle != 0 {
		return nil
	}
	eng, err := c.engineRef()
	if err != nil {
		return err
	}
	h, err := eng.CreateSparse(c.params, c.seed)
	if err != nil {
		return err
	}
	c.handle = h
	return nil
}

// Fit trains a fresh machine on X and y, discarding any previous state.
func (c *Sparse[L]) Fit(x [][]uint8, y []L) error {
	flat, rows, cols, err := flattenX(x)
	if err != nil {
		return err
	}
	if err := checkShape(cols, 0, rows, len(y), true); err != nil {
		return err
	}

	mapping, err := labels.Fit(y)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	yIdx, err := mapping.Encode(y)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := c.bind(mapping, cols); err != nil {
		return err
	}
	return c.eng.TrainSparse(c.handle, flat, yIdx, rows, c.cfg.Epochs)
}

// InitEmptyState binds a machine without training it; see the dense
// counterpart for semantics.
func (c *Sparse[L]) InitEmptyState(numLiterals uint32, classes []L) error {
	if numLiterals < 1 {
		return fmt.Errorf("%w: literal count must be >= 1, got %d", ErrValidation, numLiterals)
	}
	mapping, err := labels.Fit(classes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return c.bind(mapping, numLiterals)
}

// PartialFit trains the existing machine in place; learning accumulates
// across calls.
func (c *Sparse[L]) PartialFit(x [][]uint8, y []L, opts *PartialFitOptions[L]) error {
	flat, rows, cols, err := flattenX(x)
	if err != nil {
		return err
	}
	if err := checkShape(cols, 0, rows, len(y), true); err != nil {
		return err
	}

	var optClasses []L
	epochs := c.cfg.Epochs
	if opts != nil {
		optClasses = opts.Classes
		if opts.Epochs > 0 {
			epochs = opts.Epochs
		}
	}

	if c.mapping == nil {
		classes := optClasses
		if classes == nil {
			classes = y
		}
		if err := c.InitEmptyState(cols, classes); err != nil {
			return err
		}
	} else {
		if err := checkShape(cols, c.params.NumLiterals, rows, len(y), true); err != nil {
			return err
		}
		if optClasses != nil && !c.mapping.Equal(sortedDistinct(optClasses)) {
			return fmt.Errorf("%w: supplied classes do not match the bound class set", ErrValidation)
		}
		if err := c.rebind(); err != nil {
			return err
		}
	}

	yIdx, err := c.mapping.Encode(y)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return c.eng.TrainSparse(c.handle, flat, yIdx, rows, epochs)
}

// Predict returns one label per row of X.
func (c *Sparse[L]) Predict(x [][]uint8) ([]L, error) {
	if c.mapping == nil {
		return nil, ErrNotFitted
	}
	flat, rows, cols, err := flattenX(x)
	if err != nil {
		return nil, err
	}
	if err := checkShape(cols, c.params.NumLiterals, rows, 0, false); err != nil {
		return nil, err
	}
	if err := c.rebind(); err != nil {
		return nil, err
	}

	yIdx, err := c.eng.PredictSparse(c.handle, flat, rows)
	if err != nil {
		return nil, err
	}
	return c.mapping.Decode(yIdx), nil
}

// Score returns the fraction of rows whose prediction matches y.
func (c *Sparse[L]) Score(x [][]uint8, y []L) (float64, error) {
	pred, err := c.Predict(x)
	if err != nil {
		return 0, err
	}
	if len(pred) != len(y) {
		return 0, fmt.Errorf("%w: X has %d rows but y has %d labels",
			ErrValidation, len(pred), len(y))
	}
	correct := 0
	for i, p := range pred {
		if p == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y)), nil
}

// Reset frees the machine and discards the label mapping; see the dense
// counterpart for the best-effort free contract.
func (c *Sparse[L]) Reset() {
	c.freeHandle()
	c.mapping = nil
	c.params = model.Params{}
	c.seed = 0
}

// EstimateModelSize returns the engine's allocation size in bytes for the
// live machine. Unlike the dense estimate this depends on the machine's
// actual per-clause node counts, so the handle is consulted.
func (c *Sparse[L]) EstimateModelSize() (int64, error) {
	if c.mapping == nil {
		return 0, ErrNotFitted
	}
	if err := c.rebind(); err != nil {
		return 0, err
	}
	sizes, err := engine.SparseClauseSizes(c.handle)
	if err != nil {
		return 0, err
	}
	return model.SparseSizeBytes(c.params, sizes), nil
}

// SaveModel writes the machine to path in the sparse raw format using the
// engine's own writer.
func (c *Sparse[L]) SaveModel(path string) error {
	if c.mapping == nil {
		return ErrNotFitted
	}
	if err := c.rebind(); err != nil {
		return err
	}
	return c.eng.SaveSparse(c.handle, path)
}

// LoadModelDense reconstructs the machine from a file written in the dense
// raw format, pruning it into sparse storage as the engine loads it. Sparse
// and dense files are not interchangeable: this does not read files written
// by SaveModel. The full class list must be supplied as in the dense
// LoadModel.
func (c *Sparse[L]) LoadModelDense(path string, classes []L) error {
	eng, err := c.engineRef()
	if err != nil {
		return err
	}
	mapping, err := labels.Fit(classes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	h, err := eng.LoadSparseFromDense(path)
	if err != nil {
		return err
	}
	p, err := engine.SparseInfo(h)
	if err != nil {
		return err
	}
	if int(p.NumClasses) != mapping.NumClasses() {
		eng.FreeSparse(h)
		return fmt.Errorf("%w: model has %d classes but %d labels were supplied",
			ErrValidation, p.NumClasses, mapping.NumClasses())
	}

	c.freeHandle()
	c.handle = h
	c.mapping = mapping
	c.params = p
	return nil
}

// ExportState copies the machine's live automaton nodes and weights out of
// native memory, clause by clause.
func (c *Sparse[L]) ExportState() (*model.SparseState, error) {
	if c.mapping == nil {
		return nil, ErrNotFitted
	}
	if err := c.rebind(); err != nil {
		return nil, err
	}

	weights, err := engine.ReadSparseWeights(c.handle)
	if err != nil {
		return nil, err
	}
	clauses, err := engine.ReadSparseNodes(c.handle)
	if err != nil {
		return nil, err
	}
	return &model.SparseState{Params: c.params, Weights: weights, Clauses: clauses}, nil
}

func (c *Sparse[L]) finalize() {
	if c.handle == 0 {
		return
	}
	h := c.handle
	c.handle = 0
	eng := c.eng
	if eng == nil {
		var err error
		if eng, err = engine.Load(c.cfg.LibDir); err != nil {
			return
		}
	}
	eng.FreeSparse(h)
}
