package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/models"
)

const graphMLNamespace = "http://graphml.graphdrawing.org/xmlns"

type graphML struct {
	XMLName xml.Name   `xml:"graphml"`
	Xmlns   string     `xml:"xmlns,attr"`
	Keys    []graphKey `xml:"key"`
	Graph   graphBody  `xml:"graph"`
}

type graphKey struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
	Type string `xml:"attr.type,attr"`
}

type graphBody struct {
	EdgeDefault string      `xml:"edgedefault,attr"`
	Nodes       []graphNode `xml:"node"`
	Edges       []graphEdge `xml:"edge"`
}

type graphNode struct {
	ID   string      `xml:"id,attr"`
	Data []graphData `xml:"data"`
}

type graphEdge struct {
	ID     string      `xml:"id,attr"`
	Source string      `xml:"source,attr"`
	Target string      `xml:"target,attr"`
	Data   []graphData `xml:"data"`
}

type graphData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// keyTable assigns key ids d0, d1, ... per (domain, name) in first-use order.
type keyTable struct {
	ids  map[string]string
	keys []graphKey
}

func (t *keyTable) id(domain string, a Attr) (string, error) {
	typ, err := attrType(a.Value)
	if err != nil {
		return "", fmt.Errorf("attribute %s: %w", a.Name, err)
	}
	k := domain + "\x00" + a.Name
	if id, ok := t.ids[k]; ok {
		return id, nil
	}
	id := "d" + strconv.Itoa(len(t.keys))
	t.ids[k] = id
	t.keys = append(t.keys, graphKey{ID: id, For: domain, Name: a.Name, Type: typ})
	return id, nil
}

func attrType(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return "string", nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return "", fmt.Errorf("unsupported value %v", x)
		}
		return "double", nil
	case bool:
		return "boolean", nil
	case int64:
		return "long", nil
	}
	return "", fmt.Errorf("unsupported value type %T", v)
}

// FormatValue renders an attribute value as GraphML character data.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	}
	return fmt.Sprint(v)
}

func (t *keyTable) data(domain string, attrs []Attr) ([]graphData, error) {
	out := make([]graphData, 0, len(attrs))
	for _, a := range attrs {
		id, err := t.id(domain, a)
		if err != nil {
			return nil, err
		}
		out = append(out, graphData{Key: id, Value: FormatValue(a.Value)})
	}
	return out, nil
}

// GraphML renders doc as a directed GraphML document. Every edge is its own
// element, so parallel edges between the same nodes are kept.
func GraphML(doc *models.Document) ([]byte, error) {
	keys := &keyTable{ids: make(map[string]string)}
	g := graphML{Xmlns: graphMLNamespace, Graph: graphBody{EdgeDefault: "directed"}}

	for _, n := range doc.NodeList() {
		data, err := keys.data("node", NodeAttrs(n))
		if err != nil {
			return nil, fmt.Errorf("export: node %s: %w", n.NodeID(), err)
		}
		g.Graph.Nodes = append(g.Graph.Nodes, graphNode{ID: n.NodeID(), Data: data})
	}
	for _, e := range doc.EdgeList() {
		data, err := keys.data("edge", EdgeAttrs(e))
		if err != nil {
			return nil, fmt.Errorf("export: edge %s: %w", e.EdgeID(), err)
		}
		start, end := e.Endpoints()
		g.Graph.Edges = append(g.Graph.Edges, graphEdge{ID: e.EdgeID(), Source: start, Target: end, Data: data})
	}
	g.Keys = keys.keys

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(g); err != nil {
		return nil, fmt.Errorf("export: encode graphml: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
