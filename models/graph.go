// Package models contains the graph shapes that flow through an exploration
// request: the raw store result, the typed node and edge records extracted
// from it, the ordered canonical document they are folded into, and the
// structure lookup entities.
package models

// GraphNode represents a node as returned by the graph store.
// It is a domain-agnostic representation, capturing the essential components of any node:
// its unique store identifier, its labels, and its properties.
type GraphNode struct {
	// ID is the unique internal identifier assigned by Neo4j to the node (ElementId).
	ID string `json:"id"`

	// Labels is a slice of strings containing all the labels attached to the node (e.g., ["Compound"]).
	Labels []string `json:"labels"`

	// Properties is a map containing the key-value properties of the node.
	Properties map[string]any `json:"properties"`
}

// GraphRelationship represents a relationship as returned by the graph store,
// including references to the two nodes it connects so that edge endpoints
// can be read off the stored nodes themselves.
type GraphRelationship struct {
	// ID is the unique internal identifier assigned by Neo4j to the relationship (ElementId).
	ID string `json:"id"`

	// Type is the relationship's type (e.g., "TESTED_ON", "REGULATES").
	Type string `json:"type"`

	// Properties is a map containing the key-value properties of the relationship.
	Properties map[string]any `json:"properties"`

	// Start and End are the stored endpoint nodes. Either is nil when the store
	// result did not carry that node.
	Start *GraphNode `json:"-"`
	End   *GraphNode `json:"-"`
}

// GraphResult is the raw, de-duplicated node and relationship collection of
// one store call.
type GraphResult struct {
	Nodes         []*GraphNode         `json:"nodes"`
	Relationships []*GraphRelationship `json:"relationships"`
}
