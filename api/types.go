package api

import "context"

// AssetID identifies a stored media file. Zero and negative values are
// never valid search keys.
type AssetID int64

// Valid reports whether id can be used as a search key.
func (id AssetID) Valid() bool { return id > 0 }

// BlobKind names one content-attribute key whose values the engine scans
// (e.g. "_elementor_data"). The set of kinds is registered by adapters.
type BlobKind string

// ContentBlob is one attribute value attached to a content item, as read
// from the content store. The payload may be JSON or legacy-serialized
// array text; the engine never mutates it.
type ContentBlob struct {
	ContentID    int64    `json:"content_id"`
	ContentTitle string   `json:"content_title"`
	Kind         BlobKind `json:"kind"`
	Raw          string   `json:"-"`
}

// UsageRecord is one place an asset is referenced. There is at most one
// record per distinct context per content item.
type UsageRecord struct {
	ContentID    int64  `json:"content_id"`
	ContentTitle string `json:"content_title"`
	Context      string `json:"context"`
}

// ScanProgress reports how far a bounded enumeration pass got.
//
// PossiblyIncomplete is set when the pass stopped at BatchCap while the
// final page was still full — the corpus may hold more rows than were
// visited, and any decision derived from the result must account for that.
type ScanProgress struct {
	Offset             int  `json:"offset"`
	BatchSize          int  `json:"batch_size"`
	BatchesConsumed    int  `json:"batches_consumed"`
	BatchCap           int  `json:"batch_cap"`
	RowsVisited        int  `json:"rows_visited"`
	PossiblyIncomplete bool `json:"possibly_incomplete"`
}

// Merge folds other into p: counters add up, the incomplete flag is sticky.
// Used when one logical operation runs several enumeration passes (multiple
// adapters, direct plus dynamic-tag candidate sets).
func (p *ScanProgress) Merge(other ScanProgress) {
	p.BatchesConsumed += other.BatchesConsumed
	p.RowsVisited += other.RowsVisited
	if other.BatchSize > p.BatchSize {
		p.BatchSize = other.BatchSize
	}
	if other.BatchCap > p.BatchCap {
		p.BatchCap = other.BatchCap
	}
	p.PossiblyIncomplete = p.PossiblyIncomplete || other.PossiblyIncomplete
}

// Adapter is implemented once per third-party builder format. It tells the
// scanner which attribute kinds to read and how to recognize references in
// that builder's blobs. Adapters are registered with the scanner; scans
// loop over the registered set and skip unavailable ones.
type Adapter interface {
	// Name identifies the adapter (stable, lowercase).
	Name() string
	// Kinds lists the attribute kinds this adapter owns.
	Kinds() []BlobKind
	// Rules returns the reference-field rule set for this builder's blobs.
	Rules() RuleSet
	// Available reports whether the builder format is actually present in
	// the store (capability check: no data, no scan).
	Available(ctx context.Context) (bool, error)
}
