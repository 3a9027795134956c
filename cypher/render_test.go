package cypher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSimpleMatch(t *testing.T) {
	q := Query{Clauses: []Clause{
		Match{
			Pattern: Path(Node{Var: "c", Label: "Compound"}).
				Then(Rel{Var: "rel", Types: []string{"TESTED_ON"}, Dir: Outgoing}, Node{Var: "t", Label: "Target"}),
			Where: And{
				In{Prop: Prop{"t", "uniprot_id"}, Values: []string{"P11509"}},
				Compare{Prop: Prop{"rel", "activity"}, Op: Le, Value: 0.001},
			},
		},
		Return{Vars: []string{"c", "t", "rel"}},
	}}

	stmt, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t,
		"MATCH (c:Compound)-[rel:TESTED_ON]->(t:Target) WHERE t.uniprot_id IN $p0 AND rel.activity <= $p1 RETURN c, t, rel",
		stmt.Text)
	assert.Equal(t, map[string]any{"p0": []string{"P11509"}, "p1": 0.001}, stmt.Params)
}

func TestRenderShortestVariableLength(t *testing.T) {
	q := Query{Clauses: []Clause{
		Match{
			PathVar:  "p",
			Shortest: true,
			Pattern: Path(Node{Var: "t1", Label: "Target"}).
				Then(Rel{Var: "r", Types: []string{"TESTED_ON", "REGULATES"}, Dir: Incoming, MaxHops: 3}, Node{Var: "x"}),
			Where: And{
				HasLabel{Var: "x", Labels: []string{"Compound", "Target"}},
				Distinct{A: "t1", B: "x"},
				All{Elem: "rel", List: "r", Pred: Compare{Prop: Prop{"rel", "max_confidence_value"}, Op: Ge, Value: 0.5}},
			},
		},
		Return{Vars: []string{"p"}},
	}}

	stmt, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t,
		"MATCH p = shortestPath((t1:Target)<-[r:TESTED_ON|REGULATES*1..3]-(x)) WHERE (x:Compound OR x:Target) AND t1 <> x AND ALL(rel IN r WHERE rel.max_confidence_value >= $p0) RETURN p",
		stmt.Text)
}

func TestRenderPipelineClauses(t *testing.T) {
	q := Query{Clauses: []Clause{
		Match{Pattern: Path(Node{Var: "t", Label: "Target"})},
		With{Items: []Projection{
			{Expr: Var("t")},
			{Expr: Collect{Var: "t", Distinct: true}, Alias: "targets"},
		}},
		Unwind{List: "targets", As: "target"},
		Match{Pattern: Path(Node{Var: "c"}), Where: And{Not{Expr: Exists{Pattern: Path(Node{Var: "c"}).
			Then(Rel{Types: []string{"TESTED_ON"}, Dir: Outgoing}, Node{Var: "target"})}}}},
		Return{Vars: []string{"target"}},
		Limit{Count: 10},
	}}

	stmt, err := Render(q)
	require.NoError(t, err)
	assert.Equal(t,
		"MATCH (t:Target) WITH t, COLLECT(DISTINCT t) AS targets UNWIND targets AS target MATCH (c) WHERE NOT (c)-[:TESTED_ON]->(target) RETURN target LIMIT $p0",
		stmt.Text)
	assert.Equal(t, int64(10), stmt.Params["p0"])
}

func TestRenderEmptyWhereIsOmitted(t *testing.T) {
	stmt, err := Render(Query{Clauses: []Clause{
		Match{Pattern: Path(Node{Var: "n"}), Where: And{nil, nil}},
		Return{Vars: []string{"n"}},
	}})
	require.NoError(t, err)
	assert.Equal(t, "MATCH (n) RETURN n", stmt.Text)
}

func TestRenderPropertyComparison(t *testing.T) {
	stmt, err := Render(Query{Clauses: []Clause{
		Match{
			Pattern: Path(Node{Var: "c"}).Then(Rel{Var: "rel", Dir: Outgoing}, Node{Var: "t"}),
			Where:   CompareProps{Left: Prop{"rel", "activity"}, Op: Le, Right: Prop{"t", "activity_cutoff"}},
		},
		Return{Vars: []string{"c"}},
	}})
	require.NoError(t, err)
	assert.Equal(t, "MATCH (c)-[rel]->(t) WHERE rel.activity <= t.activity_cutoff RETURN c", stmt.Text)
	assert.Empty(t, stmt.Params)
}

func TestRenderIsDeterministic(t *testing.T) {
	build := func() Query {
		return Query{Clauses: []Clause{
			Match{Pattern: Path(Node{Var: "t", Label: "Target"}), Where: And{
				In{Prop: Prop{"t", "uniprot_id"}, Values: []string{"A", "B"}},
				Compare{Prop: Prop{"t", "activity_cutoff"}, Op: Gt, Value: 1.0},
			}},
			Return{Vars: []string{"t"}},
		}}
	}
	a, err := Render(build())
	require.NoError(t, err)
	b, err := Render(build())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderValuesNeverInterpolated(t *testing.T) {
	hostile := "x' OR 1=1 //"
	stmt, err := Render(Query{Clauses: []Clause{
		Match{Pattern: Path(Node{Var: "t", Label: "Target"}), Where: In{Prop: Prop{"t", "uniprot_id"}, Values: []string{hostile}}},
		Return{Vars: []string{"t"}},
	}})
	require.NoError(t, err)
	assert.NotContains(t, stmt.Text, hostile)
	assert.Equal(t, []string{hostile}, stmt.Params["p0"])
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		q    Query
	}{
		{"empty", Query{}},
		{"nil clause", Query{Clauses: []Clause{nil}}},
		{"bad label", Query{Clauses: []Clause{Match{Pattern: Path(Node{Var: "n", Label: "Tar get"})}}}},
		{"bad variable", Query{Clauses: []Clause{Return{Vars: []string{"n) DETACH DELETE (n"}}}}},
		{"bad rel type", Query{Clauses: []Clause{Match{Pattern: Path(Node{Var: "a"}).Then(Rel{Types: []string{"A-B"}}, Node{Var: "b"})}}}},
		{"inverted hops", Query{Clauses: []Clause{Match{Pattern: Path(Node{Var: "a"}).Then(Rel{MinHops: 3, MaxHops: 2}, Node{Var: "b"})}}}},
		{"shortest without path var", Query{Clauses: []Clause{Match{Shortest: true, Pattern: Path(Node{Var: "a"})}}}},
		{"malformed pattern", Query{Clauses: []Clause{Match{Pattern: Pattern{}}}}},
		{"bad operator", Query{Clauses: []Clause{Match{Pattern: Path(Node{Var: "a"}), Where: Compare{Prop: Prop{"a", "b"}, Op: "=~", Value: 1}}}}},
		{"negative limit", Query{Clauses: []Clause{Limit{Count: -1}}}},
		{"empty return", Query{Clauses: []Clause{Return{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.q)
			assert.Error(t, err)
		})
	}
}

func TestPatternThenDoesNotAlias(t *testing.T) {
	base := Path(Node{Var: "a"})
	one := base.Then(Rel{Types: []string{"X"}}, Node{Var: "b"})
	two := base.Then(Rel{Types: []string{"Y"}}, Node{Var: "c"})

	assert.Len(t, base.Nodes, 1)
	assert.Equal(t, "b", one.Nodes[1].Var)
	assert.Equal(t, "c", two.Nodes[1].Var)
}
