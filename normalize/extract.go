// Package normalize turns a raw store result into a canonical graph document.
//
// Extraction classifies every raw node and relationship by kind, derives its
// canonical identity and maps provider-specific property names onto canonical
// fields. Any element outside the known schema, or an edge whose endpoint
// cannot be resolved, fails the whole request with an IntegrityError; nothing
// is dropped silently. Aggregation then folds the extracted records into a
// Document.
package normalize

import (
	"strings"

	errs "github.com/saulfrancisco-ruizacevedo/go-smartgraph/errors"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/models"
)

const component = "normalize"

// endpointKeys names the property read off the stored start and end node of
// each edge kind to resolve its canonical endpoints.
var endpointKeys = map[models.EdgeKind][2]string{
	models.KindTestedOn:        {"hash", "uniprot_id"},
	models.KindRegulates:       {"uniprot_id", "uniprot_id"},
	models.KindPatternOf:       {"pattern_id", "hash"},
	models.KindPotentPatternOf: {"pattern_id", "uniprot_id"},
}

// Normalize extracts and aggregates g into a fresh Document.
// A nil or empty result yields an empty Document.
func Normalize(g *models.GraphResult) (*models.Document, error) {
	nodes, edges, err := Extract(g)
	if err != nil {
		return nil, err
	}
	return Aggregate(nodes, edges), nil
}

// Extract maps every raw node and relationship of g onto canonical records,
// preserving result order. Every edge endpoint must be the canonical id of an
// extracted node.
func Extract(g *models.GraphResult) ([]models.Node, []models.Edge, error) {
	if g == nil {
		return nil, nil, nil
	}

	nodes := make([]models.Node, 0, len(g.Nodes))
	ids := make(map[string]bool, len(g.Nodes))
	for _, raw := range g.Nodes {
		n, err := ExtractNode(raw)
		if err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, n)
		ids[n.NodeID()] = true
	}

	edges := make([]models.Edge, 0, len(g.Relationships))
	for _, raw := range g.Relationships {
		e, err := ExtractEdge(raw)
		if err != nil {
			return nil, nil, err
		}
		start, end := e.Endpoints()
		for _, id := range []string{start, end} {
			if !ids[id] {
				return nil, nil, errs.Integrity(component, "edge", errs.ErrUnresolvedEndpoint,
					"relationship %s (%s) endpoint %q is not a node of the result", raw.ID, raw.Type, id)
			}
		}
		edges = append(edges, e)
	}
	return nodes, edges, nil
}

// nodeKind picks the first label naming a known kind, case-insensitively.
func nodeKind(labels []string) (models.NodeKind, bool) {
	for _, l := range labels {
		switch k := models.NodeKind(strings.ToLower(l)); k {
		case models.KindCompound, models.KindTarget, models.KindPattern:
			return k, true
		}
	}
	return "", false
}

// ExtractNode maps one raw node onto its canonical record.
func ExtractNode(raw *models.GraphNode) (models.Node, error) {
	if raw == nil {
		return nil, errs.Integrity(component, "node", errs.ErrUnknownKind, "nil node in result")
	}
	kind, ok := nodeKind(raw.Labels)
	if !ok {
		return nil, errs.Integrity(component, "node", errs.ErrUnknownKind,
			"node %s has labels %v, want one of Compound, Target, Pattern", raw.ID, raw.Labels)
	}

	p := properties(raw.Properties)
	var n models.Node
	switch kind {
	case models.KindCompound:
		n = &models.Compound{
			InChIKey:         p.str("hash"),
			NoStereoInChIKey: p.str("nostereo_hash"),
			SMILES:           p.str("smiles"),
			UUID:             p.str("uuid"),
		}
	case models.KindTarget:
		cutoff, err := p.float("activity_cutoff")
		if err != nil {
			return nil, errs.Integrity(component, "node", errs.ErrMalformedProperty,
				"%s node %s: %v", kind, raw.ID, err)
		}
		n = &models.Target{
			UniprotID:      p.str("uniprot_id"),
			FullName:       p.str("fullname"),
			ActivityCutoff: cutoff,
			Synonyms:       p.list("synonyms"),
			GeneSymbols:    p.list("gene_symbols"),
			UUID:           p.str("uuid"),
		}
	case models.KindPattern:
		n = &models.Pattern{
			PatternID:   p.str("pattern_id"),
			InChIKey:    p.str("hash"),
			SMILES:      p.str("smiles"),
			PatternType: p.str("pattern_type"),
			UUID:        p.str("uuid"),
		}
	}

	if n.NodeID() == "" {
		return nil, errs.Integrity(component, "node", errs.ErrMissingProperty,
			"%s node %s has no identity property", kind, raw.ID)
	}
	return n, nil
}

// ExtractEdge maps one raw relationship onto its canonical record. Endpoints
// are read off the relationship's stored start and end nodes.
func ExtractEdge(raw *models.GraphRelationship) (models.Edge, error) {
	if raw == nil {
		return nil, errs.Integrity(component, "edge", errs.ErrUnknownKind, "nil relationship in result")
	}
	kind := models.EdgeKind(strings.ToLower(raw.Type))
	keys, ok := endpointKeys[kind]
	if !ok {
		return nil, errs.Integrity(component, "edge", errs.ErrUnknownKind,
			"relationship %s has type %q, want one of TESTED_ON, REGULATES, PATTERN_OF, POTENT_PATTERN_OF", raw.ID, raw.Type)
	}

	p := properties(raw.Properties)
	base := models.EdgeBase{
		UUID:  p.str("uuid"),
		Label: p.str("unique_label", "ppi_uid", "edge_label"),
	}
	if base.UUID == "" {
		return nil, errs.Integrity(component, "edge", errs.ErrMissingProperty,
			"%s relationship %s has no uuid", kind, raw.ID)
	}

	var err error
	if base.Start, err = endpoint(raw, raw.Start, "start", keys[0]); err != nil {
		return nil, err
	}
	if base.End, err = endpoint(raw, raw.End, "end", keys[1]); err != nil {
		return nil, err
	}

	measure := func(key string) float64 {
		if err != nil {
			return 0
		}
		var f float64
		if f, err = p.float(key); err != nil {
			err = errs.Integrity(component, "edge", errs.ErrMalformedProperty,
				"%s relationship %s: %v", kind, raw.ID, err)
		}
		return f
	}

	var e models.Edge
	switch kind {
	case models.KindTestedOn:
		e = &models.TestedOn{
			EdgeBase:     base,
			Activity:     measure("activity"),
			ActivityType: p.str("activity_type"),
			ActivityUnit: p.str("activity_unit"),
			Provenance:   p.str("provenance"),
		}
	case models.KindRegulates:
		e = &models.Regulates{
			EdgeBase:         base,
			MaxConfidence:    measure("max_confidence_value"),
			MechanismDetails: p.str("edgeInfo", "edge_info", "mechanism_details"),
			ActionType:       p.str("edgeType", "edge_type", "action_type"),
			SourceDB:         p.str("sourceDB", "source_db"),
		}
	case models.KindPatternOf:
		e = &models.PatternOf{
			EdgeBase:   base,
			Ratio:      measure("ratio"),
			IsLargest:  p.boolean("islargest", "is_largest"),
			ActionType: p.str("edgeType", "edge_type", "action_type"),
		}
	default:
		e = &models.PotentPatternOf{EdgeBase: base}
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func endpoint(raw *models.GraphRelationship, n *models.GraphNode, side, key string) (string, error) {
	if n == nil {
		return "", errs.Integrity(component, "edge", errs.ErrUnresolvedEndpoint,
			"relationship %s (%s) has no stored %s node", raw.ID, raw.Type, side)
	}
	id := properties(n.Properties).str(key)
	if id == "" {
		return "", errs.Integrity(component, "edge", errs.ErrUnresolvedEndpoint,
			"relationship %s (%s) %s node %s has no %q property", raw.ID, raw.Type, side, n.ID, key)
	}
	return id, nil
}
