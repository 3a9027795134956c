// Package cypher is a small typed representation of the read-only traversal
// queries the compiler emits, together with the single renderer that turns it
// into Cypher text.
//
// Values never appear in the rendered text: every literal becomes a numbered
// parameter ($p0, $p1, ...) in the order the renderer meets it. Identifiers
// (variables, labels, relationship types, property keys) are validated against
// a strict pattern, so nothing caller-supplied can change the query shape.
package cypher

// Op is a comparison operator.
type Op string

const (
	Eq Op = "="
	Ne Op = "<>"
	Lt Op = "<"
	Le Op = "<="
	Gt Op = ">"
	Ge Op = ">="
)

// Direction of a relationship step, relative to the node on its left.
type Direction int

const (
	Undirected Direction = iota
	Outgoing
	Incoming
)

// Node is a node pattern such as (t:Target). Either field may be empty.
type Node struct {
	Var   string
	Label string
}

// Rel is a relationship pattern. MaxHops > 0 makes it variable length with
// bounds MinHops..MaxHops; MinHops defaults to 1.
type Rel struct {
	Var     string
	Types   []string
	Dir     Direction
	MinHops int
	MaxHops int
}

// Pattern is a chain of nodes joined by relationships; len(Rels) is always
// len(Nodes)-1.
type Pattern struct {
	Nodes []Node
	Rels  []Rel
}

// Path starts a pattern at n.
func Path(n Node) Pattern {
	return Pattern{Nodes: []Node{n}}
}

// Then extends the pattern with one relationship and the node it reaches.
func (p Pattern) Then(r Rel, n Node) Pattern {
	return Pattern{
		Nodes: append(append([]Node{}, p.Nodes...), n),
		Rels:  append(append([]Rel{}, p.Rels...), r),
	}
}

// Clause is one top-level query clause.
type Clause interface {
	render(*renderer) error
}

// Match renders MATCH [path =] [shortestPath(]pattern[)] [WHERE ...].
type Match struct {
	PathVar  string
	Shortest bool
	Pattern  Pattern
	Where    Expr
}

// Projection is one item of a WITH clause.
type Projection struct {
	Expr  Expr
	Alias string
}

// With renders WITH item [AS alias], ...
type With struct {
	Items []Projection
}

// Unwind renders UNWIND list AS alias.
type Unwind struct {
	List string
	As   string
}

// Return renders RETURN var, ...
type Return struct {
	Vars []string
}

// Limit renders LIMIT $pN.
type Limit struct {
	Count int
}

// Query is an ordered list of clauses.
type Query struct {
	Clauses []Clause
}

// Statement is a rendered query ready for the store.
type Statement struct {
	Text   string
	Params map[string]any
}

// Expr is a predicate or projection expression.
type Expr interface {
	render(*renderer) error
}

// And joins predicates conjunctively; nil members are skipped.
type And []Expr

// Var references a bound variable.
type Var string

// Prop references variable.key.
type Prop struct {
	Var string
	Key string
}

// In renders prop IN $pN.
type In struct {
	Prop   Prop
	Values []string
}

// Compare renders prop op $pN.
type Compare struct {
	Prop  Prop
	Op    Op
	Value any
}

// CompareProps renders left op right between two properties.
type CompareProps struct {
	Left  Prop
	Op    Op
	Right Prop
}

// Distinct renders a <> b, a node identity inequality.
type Distinct struct {
	A string
	B string
}

// All renders ALL(elem IN list WHERE pred).
type All struct {
	Elem string
	List string
	Pred Expr
}

// HasLabel renders (v:A OR v:B ...).
type HasLabel struct {
	Var    string
	Labels []string
}

// Not renders NOT expr.
type Not struct {
	Expr Expr
}

// Exists renders a pattern used as a predicate.
type Exists struct {
	Pattern Pattern
}

// Collect renders COLLECT([DISTINCT ]var).
type Collect struct {
	Var      string
	Distinct bool
}
