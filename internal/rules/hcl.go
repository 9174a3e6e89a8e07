package rules

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/ahmeddyounes/mediatrace/api"
)

// AdapterConfig is one adapter block from a rule file. Only kinds is
// mandatory; omitted rule lists fall back to the generic defaults at
// compile time.
type AdapterConfig struct {
	Name            string   `hcl:"name,label"`
	Kinds           []string `hcl:"kinds"`
	DisplayName     string   `hcl:"display_name,optional"`
	DirectIDFields  []string `hcl:"direct_id_fields,optional"`
	ObjectIDFields  []string `hcl:"object_id_fields,optional"`
	CompositeFields []string `hcl:"composite_fields,optional"`
	LabelFields     []string `hcl:"label_fields,optional"`
}

// File is the root of an HCL rule file:
//
//	adapter "my-builder" {
//	  kinds            = ["_builder_data"]
//	  display_name     = "MyBuilder"
//	  direct_id_fields = ["id", "media_id"]
//	}
type File struct {
	Adapters []AdapterConfig `hcl:"adapter,block"`
}

// LoadFile parses an HCL rule file describing extra integration adapters.
func LoadFile(path string) (*File, error) {
	var f File
	if err := hclsimple.DecodeFile(path, nil, &f); err != nil {
		return nil, fmt.Errorf("load rule file %s: %w", path, err)
	}
	for _, a := range f.Adapters {
		if len(a.Kinds) == 0 {
			return nil, fmt.Errorf("rule file %s: adapter %q declares no kinds", path, a.Name)
		}
	}
	return &f, nil
}

// RuleSet converts the config block into the public rule model.
func (a AdapterConfig) RuleSet() api.RuleSet {
	return api.RuleSet{
		DisplayName:     a.DisplayName,
		DirectIDFields:  a.DirectIDFields,
		ObjectIDFields:  a.ObjectIDFields,
		CompositeFields: a.CompositeFields,
		LabelFields:     a.LabelFields,
	}
}

// BlobKinds converts the declared kind names.
func (a AdapterConfig) BlobKinds() []api.BlobKind {
	kinds := make([]api.BlobKind, len(a.Kinds))
	for i, k := range a.Kinds {
		kinds[i] = api.BlobKind(k)
	}
	return kinds
}
