package normalize

import "github.com/saulfrancisco-ruizacevedo/go-smartgraph/models"

// Aggregate folds extracted records into a new Document. A repeated id keeps
// its first position and takes the later record's fields.
func Aggregate(nodes []models.Node, edges []models.Edge) *models.Document {
	doc := models.NewDocument()
	for _, n := range nodes {
		doc.PutNode(n)
	}
	for _, e := range edges {
		doc.PutEdge(e)
	}
	return doc
}
