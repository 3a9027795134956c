// Package export renders a canonical graph document as a structured JSON
// document or as GraphML.
//
// Both renderings are driven by the same flattened attribute lists, so they
// always agree on node and edge membership, attribute names and values.
package export

import (
	"strings"

	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/models"
)

// ListSeparator joins multi-valued attributes into one string.
const ListSeparator = ","

// Attr is one flattened attribute. Value is a string, float64, bool or int64.
type Attr struct {
	Name  string
	Value any
}

type attrs []Attr

func (a *attrs) add(name string, v any) {
	*a = append(*a, Attr{Name: name, Value: v})
}

// optional adds s only when it is not empty.
func (a *attrs) optional(name, s string) {
	if s != "" {
		a.add(name, s)
	}
}

// NodeAttrs flattens a node into its ordered attribute list.
func NodeAttrs(n models.Node) []Attr {
	var a attrs
	a.add("node_id", n.NodeID())
	a.add("node_type", string(n.Kind()))

	switch v := n.(type) {
	case *models.Compound:
		a.optional("uuid", v.UUID)
		a.add("inchikey", v.InChIKey)
		a.add("nsinchikey", v.NoStereoInChIKey)
		a.add("smiles", v.SMILES)
		a.add("name", v.Name())
	case *models.Target:
		a.optional("uuid", v.UUID)
		a.add("uniprot_id", v.UniprotID)
		a.add("fullname", v.FullName)
		a.add("activity_cutoff", v.ActivityCutoff)
		a.add("synonyms", strings.Join(v.Synonyms, ListSeparator))
		a.add("gene_symbols", strings.Join(v.GeneSymbols, ListSeparator))
	case *models.Pattern:
		a.optional("uuid", v.UUID)
		a.add("pattern_id", v.PatternID)
		a.add("inchikey", v.InChIKey)
		a.add("smiles", v.SMILES)
		a.add("pattern_type", v.PatternType)
	}
	return a
}

// EdgeAttrs flattens an edge into its ordered attribute list.
func EdgeAttrs(e models.Edge) []Attr {
	var a attrs
	base := e.Base()
	a.add("uuid", e.EdgeID())
	a.add("edge_type", string(e.Kind()))
	a.add("start_node", base.Start)
	a.add("end_node", base.End)
	a.optional("edge_label", base.Label)

	switch v := e.(type) {
	case *models.TestedOn:
		a.add("activity", v.Activity)
		a.add("activity_type", v.ActivityType)
		a.optional("activity_unit", v.ActivityUnit)
		a.optional("provenance", v.Provenance)
	case *models.Regulates:
		a.add("max_confidence_value", v.MaxConfidence)
		a.add("mechanism_details", v.MechanismDetails)
		a.add("action_type", v.ActionType)
		a.add("source_db", v.SourceDB)
	case *models.PatternOf:
		a.add("ratio", v.Ratio)
		a.add("is_largest", v.IsLargest)
		a.add("action_type", v.ActionType)
	}
	return a
}
