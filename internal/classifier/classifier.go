package classifier

import (
	"cmp"
	"fmt"
	"log"
	"math/rand/v2"
	"runtime"

	"github.com/tsetlin-ml/tsetlin/internal/engine"
	"github.com/tsetlin-ml/tsetlin/internal/labels"
	"github.com/tsetlin-ml/tsetlin/internal/layout"
	"github.com/tsetlin-ml/tsetlin/internal/model"
)

// PartialFitOptions tunes a single incremental training call.
type PartialFitOptions[L cmp.Ordered] struct {
	// Classes is the full class set. Required information on the first call
	// only if y does not already contain every class; on later calls it must
	// match the bound mapping exactly.
	Classes []L

	// Epochs overrides the configured epoch count for this call when > 0.
	Epochs uint32
}

// Classifier trains and queries a dense native Tsetlin Machine.
//
// Not safe for concurrent use; callers must serialize access.
type Classifier[L cmp.Ordered] struct {
	cfg Config

	eng     *engine.Engine
	handle  engine.Handle
	mapping *labels.Mapping[L]
	params  model.Params // machine shape, valid while mapping != nil
	seed    uint32
}

// New constructs an unbound classifier. The engine library is not touched
// until the first operation that needs it.
func New[L cmp.Ordered](cfg Config) (*Classifier[L], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Classifier[L]{cfg: cfg}
	runtime.SetFinalizer(c, (*Classifier[L]).finalize)
	return c, nil
}

// Config returns the hyperparameters the classifier was built with.
func (c *Classifier[L]) Config() Config {
	return c.cfg
}

// Classes returns the bound class labels in index order, or nil when
// unbound.
func (c *Classifier[L]) Classes() []L {
	if c.mapping == nil {
		return nil
	}
	return c.mapping.Classes()
}

// NumLiterals returns the bound feature count, or 0 when unbound.
func (c *Classifier[L]) NumLiterals() uint32 {
	if c.mapping == nil {
		return 0
	}
	return c.params.NumLiterals
}

func (c *Classifier[L]) engineRef() (*engine.Engine, error) {
	if c.eng == nil {
		eng, err := engine.Load(c.cfg.LibDir)
		if err != nil {
			return nil, err
		}
		c.eng = eng
	}
	return c.eng, nil
}

func (c *Classifier[L]) drawSeed() uint32 {
	if c.cfg.Seed != nil {
		return *c.cfg.Seed
	}
	return rand.Uint32()
}

// freeHandle releases the current machine, if any. The handle field is
// cleared before the native call so a failure cannot lead to a double free.
func (c *Classifier[L]) freeHandle() {
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
	eng.FreeDense(h)
}

// bind creates a fresh machine for the given shape, replacing any existing
// one, and records the mapping.
func (c *Classifier[L]) bind(mapping *labels.Mapping[L], numLiterals uint32) error {
	eng, err := c.engineRef()
	if err != nil {
		return err
	}
	c.freeHandle()

	seed := c.drawSeed()
	params := c.cfg.params(numLiterals, uint32(mapping.NumClasses()))
	h, err := eng.CreateDense(params, seed)
	if err != nil {
		return err
	}
	c.handle = h
	c.mapping = mapping
	c.params = params
	c.seed = seed
	return nil
}

// rebind recreates a machine after cross-process reconstruction, where the
// mapping survived but the native handle did not. The recreated machine is
// in its initial, untrained state.
func (c *Classifier[L]) rebind() error {
	if c.handle != 0 {
		return nil
	}
	eng, err := c.engineRef()
	if err != nil {
		return err
	}
	h, err := eng.CreateDense(c.params, c.seed)
	if err != nil {
		return err
	}
	c.handle = h
	return nil
}

// Fit trains a fresh machine on X and y, discarding any previous state.
//
// X is a row-major matrix of 0/1 bytes; y holds one label per row and must
// contain at least two distinct labels. The class set and feature count of
// the classifier are rebuilt from this batch.
func (c *Classifier[L]) Fit(x [][]uint8, y []L) error {
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
	return c.eng.TrainDense(c.handle, flat, yIdx, rows, c.cfg.Epochs)
}

// InitEmptyState binds a machine without training it. The class set is
// taken from the supplied full list, not inferred from data; predictions on
// the untrained machine reflect its arbitrary initial state.
func (c *Classifier[L]) InitEmptyState(numLiterals uint32, classes []L) error {
	if numLiterals < 1 {
		return fmt.Errorf("%w: literal count must be >= 1, got %d", ErrValidation, numLiterals)
	}
	mapping, err := labels.Fit(classes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return c.bind(mapping, numLiterals)
}

// PartialFit trains the existing machine in place for additional epochs;
// learning accumulates across calls. An unbound classifier is first
// initialized from opts.Classes if given, else from the distinct labels in
// y. Unlike Fit, the machine is never recreated.
func (c *Classifier[L]) PartialFit(x [][]uint8, y []L, opts *PartialFitOptions[L]) error {
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
	return c.eng.TrainDense(c.handle, flat, yIdx, rows, epochs)
}

// Predict returns one label per row of X.
func (c *Classifier[L]) Predict(x [][]uint8) ([]L, error) {
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

	yIdx, err := c.eng.PredictDense(c.handle, flat, rows)
	if err != nil {
		return nil, err
	}
	return c.mapping.Decode(yIdx), nil
}

// Score returns the fraction of rows whose prediction matches y.
func (c *Classifier[L]) Score(x [][]uint8, y []L) (float64, error) {
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

// Reset frees the machine and discards the label mapping, returning the
// classifier to unbound. Freeing is best-effort: a failure is logged rather
// than returned so resource leakage never blocks further work. Repeated
// calls are safe.
func (c *Classifier[L]) Reset() {
	c.freeHandle()
	c.mapping = nil
	c.params = model.Params{}
	c.seed = 0
}

// EstimateModelSize returns the engine's allocation size in bytes for the
// bound machine shape.
func (c *Classifier[L]) EstimateModelSize() (int64, error) {
	if c.mapping == nil {
		return 0, ErrNotFitted
	}
	return model.DenseSizeBytes(c.params), nil
}

// SaveModel writes the machine to path in the raw binary format using the
// engine's own writer.
func (c *Classifier[L]) SaveModel(path string) error {
	if c.mapping == nil {
		return ErrNotFitted
	}
	if err := c.rebind(); err != nil {
		return err
	}
	return c.eng.SaveDense(c.handle, path)
}

// LoadModel reconstructs the machine from a raw-format model file. The file
// carries no labels, so the full class list must be supplied; it is mapped
// to engine indices in sorted order, which must be the order the model was
// trained with.
func (c *Classifier[L]) LoadModel(path string, classes []L) error {
	eng, err := c.engineRef()
	if err != nil {
		return err
	}
	mapping, err := labels.Fit(classes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	h, err := eng.LoadDense(path)
	if err != nil {
		return err
	}
	return c.adoptHandle(h, mapping)
}

// SaveModelContainer writes the machine to path in the self-describing
// container format. Fails with the engine's unsupported error if the
// library was built without container support.
func (c *Classifier[L]) SaveModelContainer(path string) error {
	if c.mapping == nil {
		return ErrNotFitted
	}
	if err := c.rebind(); err != nil {
		return err
	}
	return c.eng.SaveDenseContainer(c.handle, path)
}

// LoadModelContainer reconstructs the machine from a container-format model
// file; class handling as in LoadModel.
func (c *Classifier[L]) LoadModelContainer(path string, classes []L) error {
	eng, err := c.engineRef()
	if err != nil {
		return err
	}
	mapping, err := labels.Fit(classes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	h, err := eng.LoadDenseContainer(path)
	if err != nil {
		return err
	}
	return c.adoptHandle(h, mapping)
}

// adoptHandle takes ownership of a freshly loaded machine, checking its
// class count against the mapping and refreshing the bound shape from the
// machine itself.
func (c *Classifier[L]) adoptHandle(h engine.Handle, mapping *labels.Mapping[L]) error {
	p, err := engine.DenseInfo(h)
	if err != nil {
		return err
	}
	if int(p.NumClasses) != mapping.NumClasses() {
		c.eng.FreeDense(h)
		return fmt.Errorf("%w: model has %d classes but %d labels were supplied",
			ErrValidation, p.NumClasses, mapping.NumClasses())
	}

	c.freeHandle()
	c.handle = h
	c.mapping = mapping
	c.params = p
	return nil
}

// ExportState copies the machine's tensors out of native memory as a model
// snapshot with states in canonical on-disk order.
func (c *Classifier[L]) ExportState() (*model.State, error) {
	if c.mapping == nil {
		return nil, ErrNotFitted
	}
	if err := c.rebind(); err != nil {
		return nil, err
	}

	weights, states, err := engine.ReadDenseState(c.handle)
	if err != nil {
		return nil, err
	}
	canonical, err := layout.ToCanonical(states, int(c.params.NumClauses), int(c.params.NumLiterals))
	if err != nil {
		return nil, err
	}
	return &model.State{Params: c.params, Weights: weights, Clauses: canonical}, nil
}

// ImportState builds a fresh machine from a snapshot, converting the
// canonical-order state tensor back to the engine's layout. The class list
// must agree with the snapshot's class count.
func (c *Classifier[L]) ImportState(s *model.State, classes []L) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	mapping, err := labels.Fit(classes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if int(s.NumClasses) != mapping.NumClasses() {
		return fmt.Errorf("%w: snapshot has %d classes but %d labels were supplied",
			ErrValidation, s.NumClasses, mapping.NumClasses())
	}

	eng, err := c.engineRef()
	if err != nil {
		return err
	}
	native, err := layout.FromCanonical(s.Clauses, int(s.NumClauses), int(s.NumLiterals))
	if err != nil {
		return err
	}

	seed := c.drawSeed()
	h, err := eng.CreateDense(s.Params, seed)
	if err != nil {
		return err
	}
	if err := engine.WriteDenseState(h, s.Weights, native); err != nil {
		eng.FreeDense(h)
		return err
	}

	c.freeHandle()
	c.handle = h
	c.mapping = mapping
	c.params = s.Params
	c.seed = seed
	return nil
}

// finalize is a last-resort free for machines still live at collection
// time. The binding may itself be gone, so it is reloaded if needed and
// failures are swallowed.
func (c *Classifier[L]) finalize() {
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
	eng.FreeDense(h)
}
