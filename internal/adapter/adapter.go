// Package adapter hosts the per-builder integrations. Each adapter tells
// the scanner which attribute kinds it owns and how references look inside
// them; the scanner loops over the registered set, skipping formats that
// are not actually present in the store.
package adapter

import (
	"context"

	"github.com/ahmeddyounes/mediatrace/api"
	"github.com/ahmeddyounes/mediatrace/internal/rules"
	"github.com/ahmeddyounes/mediatrace/internal/store"
)

// Elementor scans Elementor-style page-builder blobs.
type Elementor struct {
	st store.ContentStore
}

// NewElementor returns the builtin Elementor adapter bound to st.
func NewElementor(st store.ContentStore) *Elementor {
	return &Elementor{st: st}
}

// Name implements api.Adapter.
func (e *Elementor) Name() string { return "elementor" }

// Kinds implements api.Adapter.
func (e *Elementor) Kinds() []api.BlobKind {
	return []api.BlobKind{"_elementor_data", "_elementor_page_settings"}
}

// Rules implements api.Adapter.
func (e *Elementor) Rules() api.RuleSet { return rules.Elementor() }

// Available implements api.Adapter: the format counts as present when the
// store holds at least one row of its kinds.
func (e *Elementor) Available(ctx context.Context) (bool, error) {
	return probeKinds(ctx, e.st, e.Kinds())
}

// Custom is an adapter configured from an HCL rule file, for builder
// formats the builtin heuristics do not cover.
type Custom struct {
	st   store.ContentStore
	name string
	kind []api.BlobKind
	rs   api.RuleSet
}

// NewCustom builds an adapter from a rule-file block.
func NewCustom(st store.ContentStore, cfg rules.AdapterConfig) *Custom {
	return &Custom{
		st:   st,
		name: cfg.Name,
		kind: cfg.BlobKinds(),
		rs:   cfg.RuleSet(),
	}
}

// Name implements api.Adapter.
func (c *Custom) Name() string { return c.name }

// Kinds implements api.Adapter.
func (c *Custom) Kinds() []api.BlobKind { return c.kind }

// Rules implements api.Adapter.
func (c *Custom) Rules() api.RuleSet { return c.rs }

// Available implements api.Adapter.
func (c *Custom) Available(ctx context.Context) (bool, error) {
	return probeKinds(ctx, c.st, c.kind)
}

func probeKinds(ctx context.Context, st store.ContentStore, kinds []api.BlobKind) (bool, error) {
	rows, err := st.FetchPage(ctx, store.PageQuery{Kinds: kinds, Limit: 1})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
