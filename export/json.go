package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/models"
)

// JSON renders doc as {"nodes": [...], "edges": [...]} with every object's
// keys in attribute order.
func JSON(doc *models.Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"nodes":[`)
	for i, n := range doc.NodeList() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeObject(&buf, NodeAttrs(n)); err != nil {
			return nil, fmt.Errorf("export: node %s: %w", n.NodeID(), err)
		}
	}
	buf.WriteString(`],"edges":[`)
	for i, e := range doc.EdgeList() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeObject(&buf, EdgeAttrs(e)); err != nil {
			return nil, fmt.Errorf("export: edge %s: %w", e.EdgeID(), err)
		}
	}
	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}

func writeObject(buf *bytes.Buffer, attrs []Attr) error {
	buf.WriteByte('{')
	for i, a := range attrs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return err
		}
		val, err := json.Marshal(a.Value)
		if err != nil {
			return fmt.Errorf("attribute %s: %w", a.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return nil
}
