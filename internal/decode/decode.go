// Package decode turns raw content-attribute strings into generic trees.
//
// Two encodings are supported: JSON (what modern page builders write) and
// the legacy length-prefixed serialized-array format some older builders
// still store. Decode failure is an expected outcome, not an error — most
// attribute values in a real database belong to other plugins and decode
// to nothing.
package decode

import (
	"github.com/ohler55/ojg/oj"
)

// MaxBlobLen is the size ceiling applied to every decode attempt, including
// re-entrant decodes of nested string values. Oversized payloads are treated
// as undecodable rather than parsed — a guard against pathological rows.
const MaxBlobLen = 200_000

// Decode parses raw into a generic tree (map[string]any / []any / scalars).
// JSON is tried first, then the legacy serialized-array format. Only
// container results are accepted: a payload that parses to a bare scalar is
// not a blob this engine can hold references in.
//
// The second return is false when raw is oversized, malformed under both
// encodings, or decodes to a non-container. Decode never panics on
// malformed input.
func Decode(raw string) (any, bool) {
	if len(raw) > MaxBlobLen {
		return nil, false
	}
	if v, err := oj.ParseString(raw); err == nil {
		if isContainer(v) {
			return v, true
		}
		// Valid JSON scalar — fall through, the payload may still be a
		// serialized array that merely looks numeric up front.
	}
	if v, ok := parseSerialized(raw); ok && isContainer(v) {
		return v, true
	}
	return nil, false
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}
