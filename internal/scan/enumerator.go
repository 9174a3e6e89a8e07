package scan

import (
	"context"
	"fmt"
	"log"

	"github.com/ahmeddyounes/mediatrace/api"
	"github.com/ahmeddyounes/mediatrace/internal/store"
)

const (
	// DefaultBatchSize is the page size for store fetches.
	DefaultBatchSize = 50
	// DefaultBatchCap bounds one logical pass to DefaultBatchCap pages —
	// with the default batch size no single scan reads more than ~10 000
	// rows before the incomplete-scan warning fires. Sized for
	// shared-hosting-class infrastructure.
	DefaultBatchCap = 200
)

// Enumerator pages through content-attribute rows in fixed-size batches
// with a hard cap on total pages. Each call to Each is a fresh pass; the
// enumeration is not restartable mid-stream.
type Enumerator struct {
	Store     store.ContentStore
	BatchSize int // 0 means DefaultBatchSize
	BatchCap  int // 0 means DefaultBatchCap
}

// Each fetches pages matching kinds and patterns (OR'd, may be nil for an
// unfiltered pass) and calls fn for every row. fn returning stop=true ends
// the pass early; an fn error aborts it.
//
// The pass stops naturally on a short page, or at the batch cap. A cap stop
// on a full final page is ambiguous — more rows may exist — so the returned
// progress is flagged PossiblyIncomplete and an operator-visible warning is
// logged naming op. Silently truncating a reachability scan would poison
// any deletion decision built on it.
func (e *Enumerator) Each(ctx context.Context, op string, kinds []api.BlobKind, patterns []string, fn func(api.ContentBlob) (stop bool, err error)) (api.ScanProgress, error) {
	size := e.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	batchCap := e.BatchCap
	if batchCap <= 0 {
		batchCap = DefaultBatchCap
	}

	prog := api.ScanProgress{BatchSize: size, BatchCap: batchCap}
	for {
		if err := ctx.Err(); err != nil {
			return prog, err
		}
		page, err := e.Store.FetchPage(ctx, store.PageQuery{
			Kinds:    kinds,
			Patterns: patterns,
			Offset:   prog.Offset,
			Limit:    size,
		})
		if err != nil {
			return prog, fmt.Errorf("%s: fetch page at offset %d: %w", op, prog.Offset, err)
		}
		prog.BatchesConsumed++

		for _, row := range page {
			prog.RowsVisited++
			stop, err := fn(row)
			if err != nil {
				return prog, err
			}
			if stop {
				return prog, nil
			}
		}

		if len(page) < size {
			return prog, nil
		}
		if prog.BatchesConsumed >= batchCap {
			prog.PossiblyIncomplete = true
			log.Printf("WARN: %s: stopped after %d batches of %d rows (cap %d); scan may be incomplete",
				op, prog.BatchesConsumed, size, batchCap)
			return prog, nil
		}
		prog.Offset += size
	}
}
