package prefab

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/libovin/cocos-skills/internal/foundation/errors"
	"github.com/libovin/cocos-skills/internal/metrics"
)

// State is the lifecycle stage of a Builder.
type State int

const (
	StateBuilding State = iota
	StateFinalized
	StateSerialized
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateFinalized:
		return "finalized"
	case StateSerialized:
		return "serialized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrFinalized is reported once a component is added to a finalized document.
var ErrFinalized = errors.DocumentError("cannot add component after finalize").Build()

// maxIDAttempts bounds regeneration when an IDSource repeats itself.
const maxIDAttempts = 16

// Builder assembles one prefab document.
type Builder struct {
	items []Item
	// components lists component positions in add order; Finalize emits one
	// CompPrefabInfo for each, in this order.
	components []Ref

	ids      IDSource
	used     map[string]struct{}
	recorder metrics.Recorder

	state State
	err   error
}

// Option configures a Builder.
type Option func(*config)

type config struct {
	nodeName string
	layer    int
	ids      IDSource
	recorder metrics.Recorder
}

// WithNodeName names the root node. It defaults to the prefab name.
func WithNodeName(name string) Option {
	return func(c *config) { c.nodeName = name }
}

// WithLayer sets the root node layer. Zero keeps LayerUI.
func WithLayer(layer int) Option {
	return func(c *config) {
		if layer != 0 {
			c.layer = layer
		}
	}
}

// WithIDSource replaces the file id generator.
func WithIDSource(src IDSource) Option {
	return func(c *config) {
		if src != nil {
			c.ids = src
		}
	}
}

// WithRecorder records save outcomes.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *config) {
		if r != nil {
			c.recorder = r
		}
	}
}

// New starts a document whose asset is named name. The asset and root node
// occupy positions 0 and 1 for the builder's whole life.
func New(name string, opts ...Option) *Builder {
	cfg := config{layer: LayerUI, ids: UUIDSource{}, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.nodeName == "" {
		cfg.nodeName = name
	}
	return &Builder{
		items:    []Item{newAsset(name), newNode(cfg.nodeName, cfg.layer)},
		ids:      cfg.ids,
		used:     make(map[string]struct{}),
		recorder: cfg.recorder,
	}
}

// Name returns the prefab asset name.
func (b *Builder) Name() string { return b.asset().Name }

// State reports the builder's lifecycle stage.
func (b *Builder) State() State { return b.state }

// Err returns the first structural error, if any.
func (b *Builder) Err() error { return b.err }

// Len is the current number of records.
func (b *Builder) Len() int { return len(b.items) }

// Items returns a copy of the records. Mutating the result does not affect
// the builder.
func (b *Builder) Items() []Item {
	out := make([]Item, len(b.items))
	for i, it := range b.items {
		out[i] = it.clone()
	}
	return out
}

func (b *Builder) asset() *Asset { return b.items[rootAsset].(*Asset) }
func (b *Builder) node() *Node   { return b.items[rootNode].(*Node) }

// add appends a component to the arena and attaches it to the root node.
func (b *Builder) add(c Component) *Builder {
	if b.err != nil {
		return b
	}
	if b.state != StateBuilding {
		b.err = ErrFinalized.
			WithContext("component", c.TypeName()).
			WithContext("state", b.state.String())
		return b
	}
	at := Ref(len(b.items))
	b.items = append(b.items, c)
	b.components = append(b.components, at)
	n := b.node()
	n.Components = append(n.Components, at)
	return b
}

// Finalize appends the CompPrefabInfo records and the trailing PrefabInfo and
// patches every prefab reference to the position its record occupies.
// Calling it again is a no-op.
func (b *Builder) Finalize() error {
	if b.err != nil {
		return b.err
	}
	if b.state != StateBuilding {
		return nil
	}

	for _, at := range b.components {
		id, err := b.nextFileID()
		if err != nil {
			b.err = err
			return err
		}
		meta := Ref(len(b.items))
		b.items = append(b.items, &CompPrefabInfo{Type: TypeCompPrefabInfo, FileID: id})
		b.items[at].(Component).base().Prefab = meta
	}

	id, err := b.nextFileID()
	if err != nil {
		b.err = err
		return err
	}
	info := Ref(len(b.items))
	b.items = append(b.items, &PrefabInfo{
		Type:   TypePrefabInfo,
		Root:   rootNode,
		Asset:  rootAsset,
		FileID: id,
	})
	b.node().Prefab = info

	if err := b.validate(); err != nil {
		b.err = err
		return err
	}
	b.state = StateFinalized
	return nil
}

// Bytes finalizes if needed and renders the document as indented JSON.
// Non-ASCII text is written verbatim.
func (b *Builder) Bytes() ([]byte, error) {
	if err := b.Finalize(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b.items); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to encode prefab").Build()
	}
	b.state = StateSerialized
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// nextFileID draws from the IDSource until it yields an id not yet used in
// this document.
func (b *Builder) nextFileID() (string, error) {
	for range maxIDAttempts {
		id := b.ids.NextID()
		if _, dup := b.used[id]; dup || id == "" {
			continue
		}
		b.used[id] = struct{}{}
		return id, nil
	}
	return "", errors.InternalError("file id source keeps returning duplicates").
		WithContext("attempts", maxIDAttempts).
		Build()
}

// validate checks the fixed slots and that every reference lands inside the
// document, and that each component's __prefab points at a CompPrefabInfo.
func (b *Builder) validate() error {
	if _, ok := b.items[rootAsset].(*Asset); !ok {
		return errors.InternalError("position 0 is not the prefab asset").Build()
	}
	if _, ok := b.items[rootNode].(*Node); !ok {
		return errors.InternalError("position 1 is not the root node").Build()
	}
	n := Ref(len(b.items))
	for i, it := range b.items {
		for _, r := range it.Refs() {
			if r < 0 || r >= n {
				return errors.InternalError("dangling reference").
					WithContext("item", i).
					WithContext("type", it.TypeName()).
					WithContext("ref", int(r)).
					Build()
			}
		}
		if c, ok := it.(Component); ok {
			if _, ok := b.items[c.PrefabRef()].(*CompPrefabInfo); !ok {
				return errors.InternalError("component prefab reference does not point at a CompPrefabInfo").
					WithContext("item", i).
					WithContext("type", it.TypeName()).
					Build()
			}
		}
	}
	return nil
}
