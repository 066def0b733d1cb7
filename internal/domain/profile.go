package domain

// RepoProfile records which capability areas a target repository actually
// has, so checks gate on the profile instead of re-querying the filesystem.
// A flag is true only if Evidence names the file or directory that justified
// it; there are no speculative flags.
type RepoProfile struct {
	Root              string            `json:"root"`
	HasValidators     bool              `json:"has_validators"`
	HasSchemas        bool              `json:"has_schemas"`
	HasTaxonomies     bool              `json:"has_taxonomies"`
	HasMetaFile       bool              `json:"has_meta_file"`
	HasDerivedSummary bool              `json:"has_derived_summary"`
	HasLocalRules     bool              `json:"has_local_rules"`
	Evidence          map[string]string `json:"evidence,omitempty"`
}

// Capability flag names as they appear in Evidence and verbose logs.
const (
	CapValidators     = "has_validators"
	CapSchemas        = "has_schemas"
	CapTaxonomies     = "has_taxonomies"
	CapMetaFile       = "has_meta_file"
	CapDerivedSummary = "has_derived_summary"
	CapLocalRules     = "has_local_rules"
)
