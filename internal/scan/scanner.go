// Package scan implements the media-reference resolution engine: deciding,
// for a media asset, whether any content item still references it — even
// through page-builder JSON, legacy-serialized blobs, or encoded
// sub-documents nested inside them.
//
// The pipeline is prefilter-then-verify: coarse substring patterns narrow a
// potentially huge attribute table to candidate rows cheaply, then every
// candidate is decoded and walked exactly. The prefilter admits false
// positives but never false negatives, so the expensive step only ever
// confirms or rejects, never misses.
package scan

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring"

	"github.com/ahmeddyounes/mediatrace/api"
	"github.com/ahmeddyounes/mediatrace/internal/decode"
	"github.com/ahmeddyounes/mediatrace/internal/prefilter"
	"github.com/ahmeddyounes/mediatrace/internal/store"
)

// DefaultUsageLimit bounds LocateUsages when the caller passes no limit.
const DefaultUsageLimit = 100

// Scanner orchestrates reference resolution across the registered
// integration adapters. It is synchronous and single-threaded per
// invocation; the store is its only I/O boundary and is read-only.
type Scanner struct {
	store     store.ContentStore
	adapters  []api.Adapter
	batchSize int
	batchCap  int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithBatchSize overrides the enumeration page size.
func WithBatchSize(n int) Option { return func(s *Scanner) { s.batchSize = n } }

// WithBatchCap overrides the safety cap on pages per pass.
func WithBatchCap(n int) Option { return func(s *Scanner) { s.batchCap = n } }

// New creates a scanner over st. Adapters are registered separately.
func New(st store.ContentStore, opts ...Option) *Scanner {
	s := &Scanner{store: st}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Register adds an integration adapter. Scans loop over registered
// adapters in registration order and skip unavailable ones.
func (s *Scanner) Register(a api.Adapter) {
	s.adapters = append(s.adapters, a)
}

// IsReferenced reports whether any content item references id. Candidates
// from the direct prefilter patterns are verified first with a short
// circuit on the first hit; only if none match is the generic-delimiter
// candidate set scanned.
func (s *Scanner) IsReferenced(ctx context.Context, id api.AssetID) (bool, api.ScanProgress, error) {
	var total api.ScanProgress
	if !id.Valid() {
		return false, total, nil
	}
	for _, a := range s.adapters {
		ok, err := a.Available(ctx)
		if err != nil {
			return false, total, fmt.Errorf("adapter %s: %w", a.Name(), err)
		}
		if !ok {
			continue
		}
		w := NewWalker(a.Rules())
		for _, patterns := range [][]string{prefilter.Patterns(id), prefilter.DynamicTagPatterns(id)} {
			found := false
			prog, err := s.enumerator().Each(ctx, "is-referenced/"+a.Name(), a.Kinds(), patterns,
				func(row api.ContentBlob) (bool, error) {
					tree, ok := decode.Decode(row.Raw)
					if !ok {
						return false, nil
					}
					if w.Contains(tree, id) {
						found = true
						return true, nil
					}
					return false, nil
				})
			total.Merge(prog)
			if err != nil {
				return false, total, err
			}
			if found {
				return true, total, nil
			}
		}
	}
	return false, total, nil
}

// LocateUsages returns up to limit places where id is referenced, with
// human-readable contexts, merging direct and generic-delimiter candidates
// across all available adapters. limit <= 0 means DefaultUsageLimit.
func (s *Scanner) LocateUsages(ctx context.Context, id api.AssetID, limit int) ([]api.UsageRecord, api.ScanProgress, error) {
	var total api.ScanProgress
	if !id.Valid() {
		return nil, total, nil
	}
	if limit <= 0 {
		limit = DefaultUsageLimit
	}

	var out []api.UsageRecord
	seen := make(map[string]bool) // content id + context, across both passes
	for _, a := range s.adapters {
		ok, err := a.Available(ctx)
		if err != nil {
			return out, total, fmt.Errorf("adapter %s: %w", a.Name(), err)
		}
		if !ok {
			continue
		}
		w := NewWalker(a.Rules())
		for _, patterns := range [][]string{prefilter.Patterns(id), prefilter.DynamicTagPatterns(id)} {
			prog, err := s.enumerator().Each(ctx, "locate-usages/"+a.Name(), a.Kinds(), patterns,
				func(row api.ContentBlob) (bool, error) {
					tree, ok := decode.Decode(row.Raw)
					if !ok {
						return false, nil
					}
					for _, c := range w.FindContexts(tree, id, "content") {
						key := fmt.Sprintf("%d\x00%s", row.ContentID, c)
						if seen[key] {
							continue
						}
						seen[key] = true
						out = append(out, api.UsageRecord{
							ContentID:    row.ContentID,
							ContentTitle: row.ContentTitle,
							Context:      c,
						})
						if len(out) >= limit {
							return true, nil
						}
					}
					return false, nil
				})
			total.Merge(prog)
			if err != nil {
				return out, total, err
			}
			if len(out) >= limit {
				return out, total, nil
			}
		}
	}
	return out, total, nil
}

// ExtractAllReferencedIDs makes a full-corpus pass over every blob of the
// registered kinds — no prefilter, the goal is exhaustive extraction — and
// returns the union of all referenced asset ids across adapters.
//
// When the returned progress is PossiblyIncomplete the set is a sound
// subset of the true references, never a complete account: treating a
// missing id as unused is only safe on a complete pass.
func (s *Scanner) ExtractAllReferencedIDs(ctx context.Context, batchSize int) (*roaring.Bitmap, api.ScanProgress, error) {
	refs := roaring.New()
	var total api.ScanProgress
	for _, a := range s.adapters {
		ok, err := a.Available(ctx)
		if err != nil {
			return refs, total, fmt.Errorf("adapter %s: %w", a.Name(), err)
		}
		if !ok {
			continue
		}
		w := NewWalker(a.Rules())
		enum := s.enumerator()
		if batchSize > 0 {
			enum.BatchSize = batchSize
		}
		prog, err := enum.Each(ctx, "extract-all/"+a.Name(), a.Kinds(), nil,
			func(row api.ContentBlob) (bool, error) {
				if tree, ok := decode.Decode(row.Raw); ok {
					w.CollectIDs(tree, refs)
				}
				return false, nil
			})
		total.Merge(prog)
		if err != nil {
			return refs, total, err
		}
	}
	return refs, total, nil
}

func (s *Scanner) enumerator() *Enumerator {
	return &Enumerator{Store: s.store, BatchSize: s.batchSize, BatchCap: s.batchCap}
}
