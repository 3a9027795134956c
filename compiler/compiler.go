// Package compiler maps a validated request onto the traversal query that
// answers it.
//
// Build produces the typed query; Compile renders it. Both are pure: the same
// request always yields the same statement text and parameters.
package compiler

import (
	"fmt"

	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/cypher"
	errs "github.com/saulfrancisco-ruizacevedo/go-smartgraph/errors"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/request"
)

// Store schema names.
const (
	LabelCompound = "Compound"
	LabelTarget   = "Target"
	LabelPattern  = "Pattern"

	RelTestedOn        = "TESTED_ON"
	RelRegulates       = "REGULATES"
	RelPatternOf       = "PATTERN_OF"
	RelPotentPatternOf = "POTENT_PATTERN_OF"
)

// Compile validates req and renders its traversal query.
func Compile(req request.Request) (cypher.Statement, error) {
	q, err := Build(req)
	if err != nil {
		return cypher.Statement{}, err
	}
	stmt, err := cypher.Render(q)
	if err != nil {
		return cypher.Statement{}, fmt.Errorf("compiler: render %s: %w", req.Operation(), err)
	}
	return stmt, nil
}

// Build validates req and returns its typed traversal query.
// Validation failures are RequestErrors and no query is produced.
func Build(req request.Request) (cypher.Query, error) {
	if req == nil {
		return cypher.Query{}, errs.Request("operation", errs.ErrMissingValue, "no request given")
	}
	if err := req.Validate(); err != nil {
		return cypher.Query{}, err
	}

	switch r := req.(type) {
	case request.BioactivityTarget:
		return bioactivityTarget(r), nil
	case request.BioactivityCompound:
		return bioactivityCompound(r), nil
	case request.BioactivityC2T:
		return bioactivityC2T(r), nil
	case request.PotentCompounds:
		return potentCompounds(r), nil
	case request.PathRegulatory:
		return pathRegulatory(r), nil
	case request.PathC2T:
		return pathC2T(r), nil
	case request.PathRegulatoryOpen:
		return pathRegulatoryOpen(r), nil
	case request.SubgraphTargetInduced:
		return subgraphTargetInduced(r), nil
	case request.SubgraphCompoundInduced:
		return subgraphCompoundInduced(r), nil
	case request.PatternsOfCompounds:
		return patternsOfCompounds(r), nil
	case request.PotentPatterns:
		return potentPatterns(r), nil
	case request.Predict:
		return predict(r), nil
	}
	return cypher.Query{}, errs.Request("operation", errs.ErrInvalidValue, "unsupported operation %q", req.Operation())
}

func prop(v, key string) cypher.Prop {
	return cypher.Prop{Var: v, Key: key}
}

func uniprotIn(v string, ids []string) cypher.Expr {
	return cypher.In{Prop: prop(v, "uniprot_id"), Values: ids}
}

func compoundIn(v string, set request.CompoundSet) cypher.Expr {
	return cypher.In{Prop: prop(v, set.Field()), Values: set.Values()}
}

// activityAtMost is nil unless a positive cutoff was requested.
func activityAtMost(rel string, cutoff float64) cypher.Expr {
	if cutoff <= 0 {
		return nil
	}
	return cypher.Compare{Prop: prop(rel, "activity"), Op: cypher.Le, Value: cutoff}
}

func activityTypeIs(rel, activityType string) cypher.Expr {
	if activityType == "" {
		return nil
	}
	return cypher.Compare{Prop: prop(rel, "activity_type"), Op: cypher.Eq, Value: activityType}
}

// everyEdge applies pred to each relationship of the variable-length list.
func everyEdge(list, key string, op cypher.Op, value any) cypher.Expr {
	return cypher.All{Elem: "rel", List: list, Pred: cypher.Compare{Prop: prop("rel", key), Op: op, Value: value}}
}

func confidenceAtLeast(list string, cutoff float64) cypher.Expr {
	if cutoff <= 0 {
		return nil
	}
	return everyEdge(list, "max_confidence_value", cypher.Ge, cutoff)
}

func exploreDirection(mode request.ExploreMode) cypher.Direction {
	switch mode {
	case request.ExploreSource:
		return cypher.Outgoing
	case request.ExploreTarget:
		return cypher.Incoming
	default:
		return cypher.Undirected
	}
}

func testedOn(where cypher.And) cypher.Query {
	return cypher.Query{Clauses: []cypher.Clause{
		cypher.Match{
			Pattern: cypher.Path(cypher.Node{Var: "c", Label: LabelCompound}).
				Then(cypher.Rel{Var: "rel", Types: []string{RelTestedOn}, Dir: cypher.Outgoing},
					cypher.Node{Var: "t", Label: LabelTarget}),
			Where: where,
		},
		cypher.Return{Vars: []string{"c", "t", "rel"}},
	}}
}

func bioactivityTarget(r request.BioactivityTarget) cypher.Query {
	return testedOn(cypher.And{
		uniprotIn("t", r.Targets),
		activityAtMost("rel", r.ActivityCutoff),
		activityTypeIs("rel", r.ActivityType),
	})
}

func bioactivityCompound(r request.BioactivityCompound) cypher.Query {
	return testedOn(cypher.And{
		compoundIn("c", r.Compounds),
		activityAtMost("rel", r.ActivityCutoff),
		activityTypeIs("rel", r.ActivityType),
	})
}

func bioactivityC2T(r request.BioactivityC2T) cypher.Query {
	return testedOn(cypher.And{
		compoundIn("c", r.Compounds),
		uniprotIn("t", r.Targets),
		activityTypeIs("rel", r.ActivityType),
	})
}

// potentCompounds compares against each target's stored cutoff, not a
// request value.
func potentCompounds(r request.PotentCompounds) cypher.Query {
	return testedOn(cypher.And{
		uniprotIn("t", r.Targets),
		cypher.CompareProps{Left: prop("rel", "activity"), Op: cypher.Le, Right: prop("t", "activity_cutoff")},
		activityTypeIs("rel", r.ActivityType),
	})
}

func pathRegulatory(r request.PathRegulatory) cypher.Query {
	dir := cypher.Undirected
	if r.Directed {
		dir = cypher.Outgoing
	}
	return cypher.Query{Clauses: []cypher.Clause{
		cypher.Match{
			PathVar:  "p",
			Shortest: r.Mode == request.PathShortest,
			Pattern: cypher.Path(cypher.Node{Var: "t1", Label: LabelTarget}).
				Then(cypher.Rel{Var: "r", Types: []string{RelRegulates}, Dir: dir, MaxHops: r.MaxLength},
					cypher.Node{Var: "t2", Label: LabelTarget}),
			Where: cypher.And{
				uniprotIn("t1", r.Sources),
				uniprotIn("t2", r.Targets),
				cypher.Distinct{A: "t1", B: "t2"},
				confidenceAtLeast("r", r.ConfidenceCutoff),
			},
		},
		cypher.Return{Vars: []string{"p"}},
	}}
}

// pathC2T first constrains the measured compound-target links, then walks the
// regulatory network from each measured target to the requested targets, and
// finally re-materializes the direct measurement links of the collected pairs.
func pathC2T(r request.PathC2T) cypher.Query {
	return cypher.Query{Clauses: []cypher.Clause{
		cypher.Match{
			Pattern: cypher.Path(cypher.Node{Var: "c", Label: LabelCompound}).
				Then(cypher.Rel{Var: "a", Types: []string{RelTestedOn}, Dir: cypher.Outgoing},
					cypher.Node{Var: "t1", Label: LabelTarget}),
			Where: cypher.And{
				compoundIn("c", r.Compounds),
				activityAtMost("a", r.ActivityCutoff),
				activityTypeIs("a", r.ActivityType),
			},
		},
		cypher.With{Items: []cypher.Projection{
			{Expr: cypher.Var("t1")},
			{Expr: cypher.Collect{Var: "c"}, Alias: "compounds"},
			{Expr: cypher.Collect{Var: "t1"}, Alias: "targets"},
		}},
		cypher.Match{
			PathVar:  "p1",
			Shortest: r.Mode == request.PathShortest,
			Pattern: cypher.Path(cypher.Node{Var: "t1"}).
				Then(cypher.Rel{Var: "r", Types: []string{RelRegulates}, Dir: cypher.Outgoing, MaxHops: r.MaxLength},
					cypher.Node{Var: "q", Label: LabelTarget}),
			Where: cypher.And{
				uniprotIn("q", r.Targets),
				cypher.Distinct{A: "t1", B: "q"},
				confidenceAtLeast("r", r.ConfidenceCutoff),
			},
		},
		cypher.Unwind{List: "compounds", As: "x"},
		cypher.Unwind{List: "targets", As: "y"},
		cypher.Match{
			PathVar:  "p2",
			Shortest: true,
			Pattern: cypher.Path(cypher.Node{Var: "x"}).
				Then(cypher.Rel{Var: "z", Types: []string{RelTestedOn}}, cypher.Node{Var: "y"}),
		},
		cypher.Return{Vars: []string{"p1", "p2"}},
	}}
}

func pathRegulatoryOpen(r request.PathRegulatoryOpen) cypher.Query {
	return cypher.Query{Clauses: []cypher.Clause{
		cypher.Match{
			PathVar:  "p",
			Shortest: r.Mode == request.PathShortest,
			Pattern: cypher.Path(cypher.Node{Var: "t1", Label: LabelTarget}).
				Then(cypher.Rel{Var: "r", Types: []string{RelRegulates}, Dir: exploreDirection(r.Explore), MaxHops: r.MaxLength},
					cypher.Node{Var: "t2", Label: LabelTarget}),
			Where: cypher.And{
				uniprotIn("t1", r.Targets),
				cypher.Distinct{A: "t1", B: "t2"},
				confidenceAtLeast("r", r.ConfidenceCutoff),
			},
		},
		cypher.Return{Vars: []string{"p"}},
	}}
}

func subgraphTargetInduced(r request.SubgraphTargetInduced) cypher.Query {
	var far cypher.Node
	var farWhere cypher.And
	switch r.Endpoint {
	case request.EndpointCompound:
		far = cypher.Node{Var: "c", Label: LabelCompound}
	case request.EndpointTarget:
		far = cypher.Node{Var: "t2", Label: LabelTarget}
		farWhere = cypher.And{cypher.Distinct{A: "t1", B: "t2"}}
	default:
		far = cypher.Node{Var: "x"}
		farWhere = cypher.And{
			cypher.HasLabel{Var: "x", Labels: []string{LabelCompound, LabelTarget}},
			cypher.Distinct{A: "t1", B: "x"},
		}
	}

	return cypher.Query{Clauses: []cypher.Clause{
		cypher.Match{
			PathVar:  "p",
			Shortest: r.Mode == request.PathShortest,
			Pattern: cypher.Path(cypher.Node{Var: "t1", Label: LabelTarget}).
				Then(cypher.Rel{Var: "r", Types: []string{RelTestedOn, RelRegulates}, Dir: exploreDirection(r.Explore), MaxHops: r.MaxLength}, far),
			Where: append(cypher.And{uniprotIn("t1", r.Targets)}, farWhere...),
		},
		cypher.Return{Vars: []string{"p"}},
	}}
}

func subgraphCompoundInduced(r request.SubgraphCompoundInduced) cypher.Query {
	rel := func(v string) cypher.Rel {
		return cypher.Rel{Var: v, Types: []string{RelTestedOn, RelRegulates}, Dir: cypher.Outgoing, MaxHops: r.MaxLength}
	}
	return cypher.Query{Clauses: []cypher.Clause{
		cypher.Match{
			Pattern: cypher.Path(cypher.Node{Var: "c", Label: LabelCompound}).
				Then(rel("r"), cypher.Node{Var: "t", Label: LabelTarget}),
			Where: compoundIn("c", r.Compounds),
		},
		cypher.With{Items: []cypher.Projection{
			{Expr: cypher.Collect{Var: "t", Distinct: true}, Alias: "targets"},
			{Expr: cypher.Collect{Var: "c", Distinct: true}, Alias: "compounds"},
		}},
		cypher.Unwind{List: "compounds", As: "compound"},
		cypher.Unwind{List: "targets", As: "target"},
		cypher.Match{
			PathVar:  "p",
			Shortest: r.Mode == request.PathShortest,
			Pattern:  cypher.Path(cypher.Node{Var: "compound"}).Then(rel("s"), cypher.Node{Var: "target"}),
		},
		cypher.Return{Vars: []string{"p"}},
	}}
}

func patternsOfCompounds(r request.PatternsOfCompounds) cypher.Query {
	where := cypher.And{
		compoundIn("c", r.Compounds),
		cypher.Compare{Prop: prop("pt", "pattern_type"), Op: cypher.Eq, Value: r.PatternType},
	}
	if r.MinRatio > 0 {
		where = append(where, everyEdge("r", "ratio", cypher.Ge, r.MinRatio))
	}
	if r.IsLargest != nil {
		// stored as the strings "true" and "false"
		where = append(where, everyEdge("r", "islargest", cypher.Eq, fmt.Sprint(*r.IsLargest)))
	}
	return cypher.Query{Clauses: []cypher.Clause{
		cypher.Match{
			PathVar:  "p",
			Shortest: true,
			Pattern: cypher.Path(cypher.Node{Var: "c", Label: LabelCompound}).
				Then(cypher.Rel{Var: "r", Types: []string{RelPatternOf}, Dir: cypher.Incoming, MaxHops: 1},
					cypher.Node{Var: "pt", Label: LabelPattern}),
			Where: where,
		},
		cypher.Return{Vars: []string{"p"}},
	}}
}

func potentPatterns(r request.PotentPatterns) cypher.Query {
	return cypher.Query{Clauses: []cypher.Clause{
		cypher.Match{
			PathVar:  "p",
			Shortest: true,
			Pattern: cypher.Path(cypher.Node{Var: "pt", Label: LabelPattern}).
				Then(cypher.Rel{Var: "r", Types: []string{RelPotentPatternOf}, Dir: cypher.Outgoing, MaxHops: 1},
					cypher.Node{Var: "t", Label: LabelTarget}),
			Where: cypher.And{
				uniprotIn("t", r.Targets),
				cypher.Compare{Prop: prop("pt", "pattern_type"), Op: cypher.Eq, Value: r.PatternType},
			},
		},
		cypher.Return{Vars: []string{"p"}},
	}}
}

// predict proposes compounds sharing a potent pattern with the target that
// have never been measured on it.
func predict(r request.Predict) cypher.Query {
	clauses := []cypher.Clause{
		cypher.Match{
			Pattern: cypher.Path(cypher.Node{Var: "t", Label: LabelTarget}),
			Where:   uniprotIn("t", r.Targets),
		},
		cypher.Match{
			Pattern: cypher.Path(cypher.Node{Var: "t"}).
				Then(cypher.Rel{Var: "r1", Types: []string{RelPotentPatternOf}, Dir: cypher.Incoming},
					cypher.Node{Var: "pt", Label: LabelPattern}),
		},
		cypher.Match{
			Pattern: cypher.Path(cypher.Node{Var: "pt"}).
				Then(cypher.Rel{Var: "r2", Types: []string{RelPatternOf}, Dir: cypher.Outgoing},
					cypher.Node{Var: "c", Label: LabelCompound}),
			Where: cypher.Not{Expr: cypher.Exists{Pattern: cypher.Path(cypher.Node{Var: "c"}).
				Then(cypher.Rel{Types: []string{RelTestedOn}, Dir: cypher.Outgoing}, cypher.Node{Var: "t"})}},
		},
		cypher.Return{Vars: []string{"t", "r1", "pt", "r2", "c"}},
	}
	if r.Limit > 0 {
		clauses = append(clauses, cypher.Limit{Count: r.Limit})
	}
	return cypher.Query{Clauses: clauses}
}
