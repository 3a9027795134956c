package smartgraph

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/models"
)

// CollectGraph walks every value of every record and gathers the nodes and
// relationships it finds, whether returned directly, inside a path, or nested
// in a list or map.
//
// Elements are de-duplicated by element id, keeping the first occurrence, so a
// node returned in many rows appears once. Relationship endpoints are linked
// to the collected nodes; an endpoint the result never carried stays nil and
// is reported by normalization.
func CollectGraph(records []*neo4j.Record) *models.GraphResult {
	c := &graphCollector{
		graph: &models.GraphResult{
			Nodes:         make([]*models.GraphNode, 0),
			Relationships: make([]*models.GraphRelationship, 0),
		},
		nodes:   make(map[string]*models.GraphNode),
		rels:    make(map[string]bool),
		pending: make(map[*models.GraphRelationship][2]string),
	}

	// 1. Gather every graph element of every row.
	for _, record := range records {
		if record == nil {
			continue
		}
		for _, value := range record.Values {
			c.visit(value)
		}
	}

	// 2. Link relationship endpoints once every node is known.
	for _, rel := range c.graph.Relationships {
		ends := c.pending[rel]
		rel.Start = c.nodes[ends[0]]
		rel.End = c.nodes[ends[1]]
	}
	return c.graph
}

type graphCollector struct {
	graph   *models.GraphResult
	nodes   map[string]*models.GraphNode
	rels    map[string]bool
	pending map[*models.GraphRelationship][2]string
}

func (c *graphCollector) visit(value any) {
	switch v := value.(type) {
	case neo4j.Node:
		c.addNode(v)
	case neo4j.Relationship:
		c.addRelationship(v)
	case neo4j.Path:
		for _, n := range v.Nodes {
			c.addNode(n)
		}
		for _, r := range v.Relationships {
			c.addRelationship(r)
		}
	case []any:
		for _, item := range v {
			c.visit(item)
		}
	case map[string]any:
		for _, item := range v {
			c.visit(item)
		}
	}
}

func (c *graphCollector) addNode(n neo4j.Node) {
	if _, seen := c.nodes[n.ElementId]; seen {
		return
	}
	node := &models.GraphNode{
		ID:         n.ElementId,
		Labels:     n.Labels,
		Properties: n.Props,
	}
	c.nodes[n.ElementId] = node
	c.graph.Nodes = append(c.graph.Nodes, node)
}

func (c *graphCollector) addRelationship(r neo4j.Relationship) {
	if c.rels[r.ElementId] {
		return
	}
	rel := &models.GraphRelationship{
		ID:         r.ElementId,
		Type:       r.Type,
		Properties: r.Props,
	}
	c.rels[r.ElementId] = true
	c.pending[rel] = [2]string{r.StartElementId, r.EndElementId}
	c.graph.Relationships = append(c.graph.Relationships, rel)
}
