// Package rules holds the reference-field heuristics: which keys in a
// decoded blob can carry asset ids, and how. The builtin sets cover the
// field names known builder formats actually write; adapters with a
// different schema override them rather than the walker guessing new names.
package rules

import "github.com/ahmeddyounes/mediatrace/api"

// Generic returns the default rule set shared by builder formats that
// follow the common widget conventions.
//
// The field-name lists are intentionally closed: a builder inventing a new
// composite field name is not detected by these rules and must ship its own
// RuleSet override (the dynamic-tag fallback in the scanner partially
// compensates, but only for ids visible next to generic delimiters).
func Generic() api.RuleSet {
	return api.RuleSet{
		DirectIDFields:  []string{"id", "image_id", "thumbnail_id", "attachment_id", "media_id"},
		ObjectIDFields:  []string{"image", "background_image", "thumbnail"},
		CompositeFields: []string{"gallery", "slides"},
		LabelFields:     []string{"widgetType", "elType"},
	}
}

// Elementor returns the rule set for Elementor-style blobs: the generic
// conventions with the builder's display name for usage contexts.
func Elementor() api.RuleSet {
	rs := Generic()
	rs.DisplayName = "Elementor"
	return rs
}

// Compiled is a RuleSet turned into constant-time lookups for the tree walk.
type Compiled struct {
	DisplayName string
	directID    map[string]bool
	objectID    map[string]bool
	composite   map[string]bool
	labelFields []string
}

// Compile builds lookup tables from rs. Empty rule lists fall back to the
// generic defaults so a partial override stays usable.
func Compile(rs api.RuleSet) *Compiled {
	rs = rs.Merge(Generic())
	return &Compiled{
		DisplayName: rs.DisplayName,
		directID:    toSet(rs.DirectIDFields),
		objectID:    toSet(rs.ObjectIDFields),
		composite:   toSet(rs.CompositeFields),
		labelFields: rs.LabelFields,
	}
}

// DirectID reports whether key's numeric value is itself an asset id.
func (c *Compiled) DirectID(key string) bool { return c.directID[key] }

// ObjectID reports whether key's value is an object carrying an "id" field.
func (c *Compiled) ObjectID(key string) bool { return c.objectID[key] }

// Composite reports whether key's value is a sequence of reference-bearing
// objects.
func (c *Compiled) Composite(key string) bool { return c.composite[key] }

// Label extracts the widget-type hint from a map node, if any.
func (c *Compiled) Label(m map[string]any) string {
	for _, f := range c.labelFields {
		if s, ok := m[f].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func toSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
