// Package store provides read access to the content-attribute table the
// scan engine enumerates. The engine never writes: rows are owned by the
// host platform and consumed as-is.
package store

import (
	"context"

	"github.com/ahmeddyounes/mediatrace/api"
)

// PageQuery selects one page of content-attribute rows.
type PageQuery struct {
	// Kinds filters rows by attribute kind. Required: an empty list selects
	// nothing (kinds are registered by adapters, never implied).
	Kinds []api.BlobKind
	// Patterns, when non-empty, are literal substrings OR'd together; a row
	// matches if its payload contains any of them. The store is responsible
	// for escaping them into its pattern syntax.
	Patterns []string
	// Offset/Limit implement pagination. Row order is stable across calls
	// (internal row id ascending), so offsets are well-defined.
	Offset int
	Limit  int
}

// ContentStore is the external collaborator the engine enumerates rows
// from. Implementations must return rows in a stable order and propagate
// I/O failures as errors; the engine does not retry.
type ContentStore interface {
	// FetchPage returns up to q.Limit rows matching q. A short page means
	// the enumeration reached the natural end of the selection.
	FetchPage(ctx context.Context, q PageQuery) ([]api.ContentBlob, error)
	// EscapeLike escapes arbitrary text for safe inclusion in the store's
	// substring-pattern syntax.
	EscapeLike(s string) string
}
