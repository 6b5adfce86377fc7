package classifier

import (
	"bytes"
	"cmp"
	"encoding/gob"
	"fmt"
	"runtime"

	"github.com/tsetlin-ml/tsetlin/internal/labels"
	"github.com/tsetlin-ml/tsetlin/internal/model"
)

// snapshot is the portable classifier state. The native handle and the
// engine binding never cross a process boundary: on decode both are absent
// and are lazily re-established by the next operation that needs them. A
// machine recreated that way starts from its initial, untrained state; use
// SaveModel/LoadModel to carry learned state across processes.
type snapshot[L cmp.Ordered] struct {
	Config  Config
	Bound   bool
	Classes []L
	Params  model.Params
	Seed    uint32
}

// GobEncode serializes hyperparameters and, when bound, the label mapping
// and machine shape.
func (c *Classifier[L]) GobEncode() ([]byte, error) {
	return encodeSnapshot(snapshot[L]{
		Config:  c.cfg,
		Bound:   c.mapping != nil,
		Classes: c.Classes(),
		Params:  c.params,
		Seed:    c.seed,
	})
}

// GobDecode restores a classifier; the handle and binding stay absent until
// first use.
func (c *Classifier[L]) GobDecode(data []byte) error {
	snap, err := decodeSnapshot[L](data)
	if err != nil {
		return err
	}

	*c = Classifier[L]{cfg: snap.Config}
	runtime.SetFinalizer(c, (*Classifier[L]).finalize)
	if !snap.Bound {
		return nil
	}
	mapping, err := labels.Fit(snap.Classes)
	if err != nil {
		return fmt.Errorf("decode classifier: %w", err)
	}
	c.mapping = mapping
	c.params = snap.Params
	c.seed = snap.Seed
	return nil
}

// GobEncode serializes hyperparameters and, when bound, the label mapping
// and machine shape.
func (c *Sparse[L]) GobEncode() ([]byte, error) {
	return encodeSnapshot(snapshot[L]{
		Config:  c.cfg,
		Bound:   c.mapping != nil,
		Classes: c.Classes(),
		Params:  c.params,
		Seed:    c.seed,
	})
}

// GobDecode restores a sparse classifier; the handle and binding stay
// absent until first use.
func (c *Sparse[L]) GobDecode(data []byte) error {
	snap, err := decodeSnapshot[L](data)
	if err != nil {
		return err
	}

	*c = Sparse[L]{cfg: snap.Config}
	runtime.SetFinalizer(c, (*Sparse[L]).finalize)
	if !snap.Bound {
		return nil
	}
	mapping, err := labels.Fit(snap.Classes)
	if err != nil {
		return fmt.Errorf("decode classifier: %w", err)
	}
	c.mapping = mapping
	c.params = snap.Params
	c.seed = snap.Seed
	return nil
}

func encodeSnapshot[L cmp.Ordered](snap snapshot[L]) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, fmt.Errorf("encode classifier: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeSnapshot[L cmp.Ordered](data []byte) (snapshot[L], error) {
	var snap snapshot[L]
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return snapshot[L]{}, fmt.Errorf("decode classifier: %w", err)
	}
	return snap, nil
}
