package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapFirstPositionLastWrite(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)
	m.Set("c", 4)

	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
	assert.Equal(t, []int{3, 2, 4}, m.Values())
	assert.Equal(t, 3, m.Len())

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.False(t, m.Has("z"))
}

func TestOrderedMapKeysIsACopy(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("a", 1)
	keys := m.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a"}, m.Keys())
}

func TestDocumentDedupLaw(t *testing.T) {
	doc := NewDocument()
	doc.PutNode(&Target{UniprotID: "P11509", FullName: "first"})
	doc.PutNode(&Compound{InChIKey: "OXAZEQNCEUDROZ-UHFFFAOYSA-N"})
	doc.PutNode(&Target{UniprotID: "P11509", FullName: "second"})

	nodes := doc.NodeList()
	require.Len(t, nodes, 2)
	assert.Equal(t, "P11509", nodes[0].NodeID())
	assert.Equal(t, "second", nodes[0].(*Target).FullName)
	assert.Equal(t, KindCompound, nodes[1].Kind())
}

func TestEdgeID(t *testing.T) {
	assert.Equal(t, "u1", EdgeBase{UUID: "u1"}.EdgeID())
	assert.Equal(t, "u1_ppi-7", EdgeBase{UUID: "u1", Label: "ppi-7"}.EdgeID())

	doc := NewDocument()
	doc.PutEdge(&Regulates{EdgeBase: EdgeBase{UUID: "u1", Label: "a", Start: "P1", End: "P2"}})
	doc.PutEdge(&Regulates{EdgeBase: EdgeBase{UUID: "u1", Label: "b", Start: "P1", End: "P2"}})
	doc.PutEdge(&Regulates{EdgeBase: EdgeBase{UUID: "u1", Label: "a", Start: "P1", End: "P2"}, ActionType: "up"})

	edges := doc.EdgeList()
	require.Len(t, edges, 2, "parallel edges with distinct labels are kept")
	assert.Equal(t, "u1_a", edges[0].EdgeID())
	assert.Equal(t, "up", edges[0].(*Regulates).ActionType)

	start, end := edges[1].Endpoints()
	assert.Equal(t, "P1", start)
	assert.Equal(t, "P2", end)
}

func TestRecordKinds(t *testing.T) {
	nodes := []Node{&Compound{}, &Target{}, &Pattern{}}
	assert.Equal(t, []NodeKind{KindCompound, KindTarget, KindPattern},
		[]NodeKind{nodes[0].Kind(), nodes[1].Kind(), nodes[2].Kind()})

	edges := []Edge{&TestedOn{}, &Regulates{}, &PatternOf{}, &PotentPatternOf{}}
	kinds := make([]EdgeKind, len(edges))
	for i, e := range edges {
		kinds[i] = e.Kind()
	}
	assert.Equal(t, []EdgeKind{KindTestedOn, KindRegulates, KindPatternOf, KindPotentPatternOf}, kinds)

	c := &Compound{InChIKey: "K"}
	assert.Equal(t, "K", c.Name())
}
