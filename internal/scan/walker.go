package scan

import (
	"math"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring"

	"github.com/ahmeddyounes/mediatrace/api"
	"github.com/ahmeddyounes/mediatrace/internal/decode"
	"github.com/ahmeddyounes/mediatrace/internal/rules"
)

// Walker recursively searches decoded trees for asset references using a
// compiled rule set. One traversal serves three modes: membership test,
// exhaustive id collection, and human-readable context discovery.
type Walker struct {
	rules *rules.Compiled
}

// NewWalker compiles rs into a walker. Empty rule lists fall back to the
// generic defaults.
func NewWalker(rs api.RuleSet) *Walker {
	return &Walker{rules: rules.Compile(rs)}
}

// Contains reports whether id appears anywhere in tree under the rule set,
// including inside nested encoded sub-documents.
func (w *Walker) Contains(tree any, id api.AssetID) bool {
	if !id.Valid() {
		return false
	}
	found := false
	w.walk(tree, "", "", "", func(hit api.AssetID, _ string) bool {
		if hit == id {
			found = true
			return true
		}
		return false
	})
	return found
}

// CollectIDs adds every asset id found in tree to out.
func (w *Walker) CollectIDs(tree any, out *roaring.Bitmap) {
	w.walk(tree, "", "", "", func(hit api.AssetID, _ string) bool {
		if hit > 0 && int64(hit) <= math.MaxUint32 {
			out.Add(uint32(hit))
		}
		return false
	})
}

// FindContexts returns the distinct human-readable contexts in which id
// appears in tree (e.g. "Elementor image widget", "gallery"). parentLabel
// is used when no more specific description applies.
func (w *Walker) FindContexts(tree any, id api.AssetID, parentLabel string) []string {
	if !id.Valid() {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	w.walk(tree, "", "", parentLabel, func(hit api.AssetID, context string) bool {
		if hit != id || seen[context] {
			return false
		}
		seen[context] = true
		out = append(out, context)
		return false
	})
	return out
}

// emitFunc receives each discovered (id, context) pair; returning true
// stops the traversal.
type emitFunc func(id api.AssetID, context string) bool

// walk applies the reference-field rules at every container node.
//
//   - widget carries the nearest widget-type hint from a label field
//   - loc carries the nearest reference-field location ("gallery",
//     "slides image"), composing as the walk descends
//   - fallback is the caller's label for hits with no better description
//
// String values are re-entered through decode so dynamic-tag-embedded
// sub-documents are visible to the same rules without a separate code path.
func (w *Walker) walk(node any, widget, loc, fallback string, emit emitFunc) bool {
	switch n := node.(type) {
	case map[string]any:
		if l := w.rules.Label(n); l != "" {
			widget = l
		}
		for k, v := range n {
			if w.rules.DirectID(k) {
				if id, ok := asAssetID(v); ok {
					at := loc
					if f := directFieldLabel(k); f != "" {
						at = joinLoc(loc, f)
					}
					if emit(id, w.describe(widget, at, fallback)) {
						return true
					}
				}
			}
			childLoc := loc
			if w.rules.ObjectID(k) || w.rules.Composite(k) {
				childLoc = joinLoc(loc, k)
			}
			if w.rules.ObjectID(k) {
				if m, ok := v.(map[string]any); ok {
					if id, ok := asAssetID(m["id"]); ok {
						if emit(id, w.describe(widget, childLoc, fallback)) {
							return true
						}
					}
				}
			}
			if w.rules.Composite(k) {
				if seq, ok := v.([]any); ok {
					for _, el := range seq {
						if m, ok := el.(map[string]any); ok {
							if id, ok := asAssetID(m["id"]); ok {
								if emit(id, w.describe(widget, childLoc, fallback)) {
									return true
								}
							}
						}
					}
				}
			}
			if w.walkValue(v, widget, childLoc, fallback, emit) {
				return true
			}
		}
	case []any:
		for _, el := range n {
			if w.walkValue(el, widget, loc, fallback, emit) {
				return true
			}
		}
	}
	return false
}

func (w *Walker) walkValue(v any, widget, loc, fallback string, emit emitFunc) bool {
	switch val := v.(type) {
	case map[string]any, []any:
		return w.walk(val, widget, loc, fallback, emit)
	case string:
		// Any container encoding carries a brace or bracket; skip the
		// decode attempt for plain text.
		if !strings.ContainsAny(val, "{[") {
			return false
		}
		if sub, ok := decode.Decode(val); ok {
			return w.walk(sub, widget, loc, fallback, emit)
		}
	}
	return false
}

// describe renders the context label for one hit. The widget hint wins
// when present; the field location is appended only when it adds
// information.
func (w *Walker) describe(widget, loc, fallback string) string {
	if widget != "" {
		base := strings.TrimSpace(w.rules.DisplayName + " " + widget + " widget")
		if loc == "" || strings.Contains(base, loc) {
			return base
		}
		return base + " " + loc
	}
	if loc != "" {
		return loc
	}
	if fallback != "" {
		return fallback
	}
	return "content"
}

// directFieldLabel turns a direct-id key into a location word: "image_id"
// → "image". The bare "id" key says nothing about location.
func directFieldLabel(key string) string {
	if key == "id" {
		return ""
	}
	return humanize(strings.TrimSuffix(key, "_id"))
}

func joinLoc(loc, field string) string {
	f := humanize(field)
	switch {
	case loc == "":
		return f
	case strings.Contains(loc, f):
		return loc
	default:
		return loc + " " + f
	}
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// asAssetID extracts a positive asset id from the numeric shapes the two
// decoders produce, plus string-encoded digits (builders store ids both
// ways).
func asAssetID(v any) (api.AssetID, bool) {
	switch n := v.(type) {
	case int64:
		if n > 0 {
			return api.AssetID(n), true
		}
	case int:
		if n > 0 {
			return api.AssetID(n), true
		}
	case float64:
		if n > 0 && n == math.Trunc(n) && n <= math.MaxInt64 {
			return api.AssetID(n), true
		}
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		if err == nil && id > 0 {
			return api.AssetID(id), true
		}
	}
	return 0, false
}
