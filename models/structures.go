package models

// CompoundStructure is the structure lookup view of a :Compound node.
// The `sg` struct tags map fields to node properties; `label:` names the node
// label when it differs from the struct name.
type CompoundStructure struct {
	// InChIKey is the primary key, stored as the node's `hash` property.
	InChIKey string `sg:"pk,property:hash,label:Compound" json:"inchikey"`

	// NoStereoInChIKey is the skeleton block used for non-stereo matching.
	NoStereoInChIKey string `sg:"property:nostereo_hash" json:"nsinchikey"`

	SMILES string `sg:"property:smiles" json:"smiles"`
}

// PatternStructure is the structure lookup view of a :Pattern node.
type PatternStructure struct {
	PatternID   string `sg:"pk,property:pattern_id,label:Pattern" json:"pattern_id"`
	InChIKey    string `sg:"property:hash" json:"inchikey"`
	SMILES      string `sg:"property:smiles" json:"smiles"`
	PatternType string `sg:"property:pattern_type" json:"pattern_type"`
}
