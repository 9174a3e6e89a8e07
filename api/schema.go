package api

// RuleSet describes where asset ids can appear inside a decoded blob.
// It is the declarative schema an integration adapter supplies so the
// generic tree walk can recognize that builder's reference fields.
type RuleSet struct {
	// DisplayName prefixes human-readable usage contexts (e.g. "Elementor").
	DisplayName string `json:"display_name,omitempty"`
	// DirectIDFields are keys whose numeric value is itself an asset id.
	DirectIDFields []string `json:"direct_id_fields,omitempty"`
	// ObjectIDFields are keys whose value is an object carrying an "id" field
	// (e.g. "image", "background_image").
	ObjectIDFields []string `json:"object_id_fields,omitempty"`
	// CompositeFields are keys whose value is a sequence of objects, each
	// possibly carrying an id or an object-style reference (e.g. "gallery").
	CompositeFields []string `json:"composite_fields,omitempty"`
	// LabelFields are keys whose string value names the surrounding widget
	// (e.g. "widgetType"). The first match wins and feeds context labels.
	LabelFields []string `json:"label_fields,omitempty"`
}

// Merge returns a copy of rs with empty fields filled in from defaults.
// Used when an adapter overrides only part of the generic rule set.
func (rs RuleSet) Merge(defaults RuleSet) RuleSet {
	out := rs
	if out.DisplayName == "" {
		out.DisplayName = defaults.DisplayName
	}
	if len(out.DirectIDFields) == 0 {
		out.DirectIDFields = defaults.DirectIDFields
	}
	if len(out.ObjectIDFields) == 0 {
		out.ObjectIDFields = defaults.ObjectIDFields
	}
	if len(out.CompositeFields) == 0 {
		out.CompositeFields = defaults.CompositeFields
	}
	if len(out.LabelFields) == 0 {
		out.LabelFields = defaults.LabelFields
	}
	return out
}
