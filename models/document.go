package models

// OrderedMap keeps values in first-insertion order. Setting an existing key
// replaces its value in place without moving it.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{values: make(map[K]V)}
}

// Set stores v under k. A new key is appended; an existing key keeps its
// position and takes the new value.
func (m *OrderedMap[K, V]) Set(k K, v V) {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Get returns the value stored under k.
func (m *OrderedMap[K, V]) Get(k K) (V, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Has reports whether k is present.
func (m *OrderedMap[K, V]) Has(k K) bool {
	_, ok := m.values[k]
	return ok
}

// Len returns the number of keys.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in first-insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in key order.
func (m *OrderedMap[K, V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}

// Document is the canonical graph of one request: nodes keyed by canonical id
// and edges keyed by edge id, both in first-seen order with last-write-wins
// values.
type Document struct {
	Nodes *OrderedMap[string, Node]
	Edges *OrderedMap[string, Edge]
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{
		Nodes: NewOrderedMap[string, Node](),
		Edges: NewOrderedMap[string, Edge](),
	}
}

// PutNode adds or replaces a node.
func (d *Document) PutNode(n Node) {
	d.Nodes.Set(n.NodeID(), n)
}

// PutEdge adds or replaces an edge.
func (d *Document) PutEdge(e Edge) {
	d.Edges.Set(e.EdgeID(), e)
}

// NodeList returns the nodes in document order.
func (d *Document) NodeList() []Node {
	return d.Nodes.Values()
}

// EdgeList returns the edges in document order.
func (d *Document) EdgeList() []Edge {
	return d.Edges.Values()
}
