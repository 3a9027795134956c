package cypher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Render turns q into Cypher text with numbered parameters.
// The same query always renders to the same text and parameter map.
func Render(q Query) (Statement, error) {
	if len(q.Clauses) == 0 {
		return Statement{}, fmt.Errorf("cypher: empty query")
	}

	r := &renderer{params: make(map[string]any)}
	for i, c := range q.Clauses {
		if c == nil {
			return Statement{}, fmt.Errorf("cypher: clause %d is nil", i)
		}
		if i > 0 {
			r.sb.WriteByte(' ')
		}
		if err := c.render(r); err != nil {
			return Statement{}, err
		}
	}
	return Statement{Text: r.sb.String(), Params: r.params}, nil
}

type renderer struct {
	sb     strings.Builder
	params map[string]any
	next   int
}

func (r *renderer) write(parts ...string) {
	for _, p := range parts {
		r.sb.WriteString(p)
	}
}

// param binds v to the next parameter name and writes its placeholder.
func (r *renderer) param(v any) {
	name := "p" + strconv.Itoa(r.next)
	r.next++
	r.params[name] = v
	r.write("$", name)
}

func (r *renderer) ident(kind, s string) error {
	if !identPattern.MatchString(s) {
		return fmt.Errorf("cypher: invalid %s identifier %q", kind, s)
	}
	r.write(s)
	return nil
}

func (r *renderer) node(n Node) error {
	r.write("(")
	if n.Var != "" {
		if err := r.ident("variable", n.Var); err != nil {
			return err
		}
	}
	if n.Label != "" {
		r.write(":")
		if err := r.ident("label", n.Label); err != nil {
			return err
		}
	}
	r.write(")")
	return nil
}

func (r *renderer) rel(rel Rel) error {
	if rel.Dir == Incoming {
		r.write("<-[")
	} else {
		r.write("-[")
	}
	if rel.Var != "" {
		if err := r.ident("variable", rel.Var); err != nil {
			return err
		}
	}
	for i, t := range rel.Types {
		if i == 0 {
			r.write(":")
		} else {
			r.write("|")
		}
		if err := r.ident("relationship type", t); err != nil {
			return err
		}
	}
	if rel.MaxHops > 0 {
		lo := rel.MinHops
		if lo == 0 {
			lo = 1
		}
		if lo > rel.MaxHops {
			return fmt.Errorf("cypher: hop bounds %d..%d are inverted", lo, rel.MaxHops)
		}
		r.write("*", strconv.Itoa(lo), "..", strconv.Itoa(rel.MaxHops))
	}
	if rel.Dir == Outgoing {
		r.write("]->")
	} else {
		r.write("]-")
	}
	return nil
}

func (r *renderer) pattern(p Pattern) error {
	if len(p.Nodes) == 0 || len(p.Rels) != len(p.Nodes)-1 {
		return fmt.Errorf("cypher: malformed pattern with %d nodes and %d relationships", len(p.Nodes), len(p.Rels))
	}
	if err := r.node(p.Nodes[0]); err != nil {
		return err
	}
	for i, rel := range p.Rels {
		if err := r.rel(rel); err != nil {
			return err
		}
		if err := r.node(p.Nodes[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) prop(p Prop) error {
	if err := r.ident("variable", p.Var); err != nil {
		return err
	}
	r.write(".")
	return r.ident("property", p.Key)
}

func (m Match) render(r *renderer) error {
	r.write("MATCH ")
	if m.PathVar != "" {
		if err := r.ident("variable", m.PathVar); err != nil {
			return err
		}
		r.write(" = ")
	}
	if m.Shortest {
		if m.PathVar == "" {
			return fmt.Errorf("cypher: shortestPath requires a path variable")
		}
		r.write("shortestPath(")
	}
	if err := r.pattern(m.Pattern); err != nil {
		return err
	}
	if m.Shortest {
		r.write(")")
	}
	if m.Where != nil {
		if and, ok := m.Where.(And); ok && and.empty() {
			return nil
		}
		r.write(" WHERE ")
		return m.Where.render(r)
	}
	return nil
}

func (w With) render(r *renderer) error {
	if len(w.Items) == 0 {
		return fmt.Errorf("cypher: WITH without items")
	}
	r.write("WITH ")
	for i, item := range w.Items {
		if i > 0 {
			r.write(", ")
		}
		if err := item.Expr.render(r); err != nil {
			return err
		}
		if item.Alias != "" {
			r.write(" AS ")
			if err := r.ident("alias", item.Alias); err != nil {
				return err
			}
		}
	}
	return nil
}

func (u Unwind) render(r *renderer) error {
	r.write("UNWIND ")
	if err := r.ident("variable", u.List); err != nil {
		return err
	}
	r.write(" AS ")
	return r.ident("alias", u.As)
}

func (ret Return) render(r *renderer) error {
	if len(ret.Vars) == 0 {
		return fmt.Errorf("cypher: RETURN without items")
	}
	r.write("RETURN ")
	for i, v := range ret.Vars {
		if i > 0 {
			r.write(", ")
		}
		if err := r.ident("variable", v); err != nil {
			return err
		}
	}
	return nil
}

func (l Limit) render(r *renderer) error {
	if l.Count < 0 {
		return fmt.Errorf("cypher: negative limit %d", l.Count)
	}
	r.write("LIMIT ")
	r.param(int64(l.Count))
	return nil
}

func (a And) empty() bool {
	for _, e := range a {
		if e != nil {
			return false
		}
	}
	return true
}

func (a And) render(r *renderer) error {
	first := true
	for _, e := range a {
		if e == nil {
			continue
		}
		if !first {
			r.write(" AND ")
		}
		first = false
		if err := e.render(r); err != nil {
			return err
		}
	}
	return nil
}

func (v Var) render(r *renderer) error {
	return r.ident("variable", string(v))
}

func (p Prop) render(r *renderer) error {
	return r.prop(p)
}

func (in In) render(r *renderer) error {
	if err := r.prop(in.Prop); err != nil {
		return err
	}
	r.write(" IN ")
	values := make([]string, len(in.Values))
	copy(values, in.Values)
	r.param(values)
	return nil
}

func (c Compare) render(r *renderer) error {
	if err := r.prop(c.Prop); err != nil {
		return err
	}
	if err := checkOp(c.Op); err != nil {
		return err
	}
	r.write(" ", string(c.Op), " ")
	r.param(c.Value)
	return nil
}

func (c CompareProps) render(r *renderer) error {
	if err := r.prop(c.Left); err != nil {
		return err
	}
	if err := checkOp(c.Op); err != nil {
		return err
	}
	r.write(" ", string(c.Op), " ")
	return r.prop(c.Right)
}

func (d Distinct) render(r *renderer) error {
	if err := r.ident("variable", d.A); err != nil {
		return err
	}
	r.write(" <> ")
	return r.ident("variable", d.B)
}

func (a All) render(r *renderer) error {
	r.write("ALL(")
	if err := r.ident("variable", a.Elem); err != nil {
		return err
	}
	r.write(" IN ")
	if err := r.ident("variable", a.List); err != nil {
		return err
	}
	r.write(" WHERE ")
	if err := a.Pred.render(r); err != nil {
		return err
	}
	r.write(")")
	return nil
}

func (h HasLabel) render(r *renderer) error {
	if len(h.Labels) == 0 {
		return fmt.Errorf("cypher: label predicate without labels")
	}
	r.write("(")
	for i, l := range h.Labels {
		if i > 0 {
			r.write(" OR ")
		}
		if err := r.ident("variable", h.Var); err != nil {
			return err
		}
		r.write(":")
		if err := r.ident("label", l); err != nil {
			return err
		}
	}
	r.write(")")
	return nil
}

func (n Not) render(r *renderer) error {
	r.write("NOT ")
	return n.Expr.render(r)
}

func (e Exists) render(r *renderer) error {
	return r.pattern(e.Pattern)
}

func (c Collect) render(r *renderer) error {
	r.write("COLLECT(")
	if c.Distinct {
		r.write("DISTINCT ")
	}
	if err := r.ident("variable", c.Var); err != nil {
		return err
	}
	r.write(")")
	return nil
}

func checkOp(op Op) error {
	switch op {
	case Eq, Ne, Lt, Le, Gt, Ge:
		return nil
	}
	return fmt.Errorf("cypher: unsupported operator %q", op)
}
