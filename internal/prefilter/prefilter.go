// Package prefilter builds coarse substring patterns for an asset id so a
// string-search-capable store can narrow a huge attribute table down to
// candidate rows before any parsing happens.
//
// The contract is one-sided: every blob that truly references the id under a
// supported encoding contains at least one pattern (no false negatives).
// False positives are fine — the digits may appear in an unrelated value —
// because every candidate is re-verified by a full decode and tree walk.
// Scanning the whole table row by row with decode+walk is not viable; this
// two-phase filter-then-verify split is what makes single-asset lookups
// cheap.
package prefilter

import (
	"fmt"
	"strconv"

	"github.com/ahmeddyounes/mediatrace/api"
)

// Patterns returns the candidate-selection substrings for id across both
// supported encodings. Callers pass these to the store as OR'd LIKE filters.
func Patterns(id api.AssetID) []string {
	n := strconv.FormatInt(int64(id), 10)

	var out []string
	// JSON-style: "id":<n> terminated by , } or ], with and without a space
	// after the colon.
	for _, sep := range []string{",", "}", "]"} {
		out = append(out,
			fmt.Sprintf(`"id":%s%s`, n, sep),
			fmt.Sprintf(`"id": %s%s`, n, sep),
		)
	}
	// JSON-style with the id stored as a string; the closing quote is its
	// own terminator.
	out = append(out,
		fmt.Sprintf(`"id":"%s"`, n),
		fmt.Sprintf(`"id": "%s"`, n),
	)
	// Serialized-style: explicit-length key "id" followed by an integer or
	// string-encoded value.
	out = append(out,
		fmt.Sprintf(`s:2:"id";i:%s;`, n),
		fmt.Sprintf(`s:2:"id";s:%d:"%s"`, len(n), n),
	)
	return out
}

// DynamicTagPatterns returns the generic-delimiter patterns: the id value
// adjacent to a colon, terminator, or quote, with no key name attached.
// These catch two encodings Patterns cannot see. Inside nested encoded
// sub-documents ("dynamic tags") the document's own quotes are escaped, so
// key names are not visible to a substring search. And id-bearing fields
// other than "id" itself (image_id, attachment_id, adapter-declared names)
// share no key substring the filter could anchor on, so only the value's
// delimiters are left to match.
func DynamicTagPatterns(id api.AssetID) []string {
	n := strconv.FormatInt(int64(id), 10)
	var out []string
	for _, sep := range []string{",", "}", "]", ";", `\"`} {
		out = append(out,
			":"+n+sep,
			": "+n+sep,
		)
	}
	return append(out,
		`\"`+n+`\"`,
		`"`+n+`"`,
	)
}
