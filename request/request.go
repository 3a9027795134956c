// Package request holds the typed, validated form of every graph exploration
// operation.
//
// Boundary input arrives as a flat map of string parameters (path segments and
// query values). Parse turns it into exactly one Request variant, applying the
// operation's defaults and rejecting unknown parameters and out-of-range values
// before anything downstream sees them.
package request

import (
	"strings"

	errs "github.com/saulfrancisco-ruizacevedo/go-smartgraph/errors"
)

// Operation is the wire name of a graph exploration operation.
type Operation string

const (
	OpBioactivityTarget       Operation = "bioactivity_target"
	OpBioactivityCompound     Operation = "bioactivity_compound"
	OpBioactivityC2T          Operation = "bioactivity_c2t"
	OpPotentCompounds         Operation = "potent_compounds"
	OpPathRegulatory          Operation = "path_regulatory"
	OpPathC2T                 Operation = "path_c2t"
	OpPathRegulatoryOpen      Operation = "path_regulatory_open"
	OpSubgraphTargetInduced   Operation = "subgraph_target_induced"
	OpSubgraphCompoundInduced Operation = "subgraph_compound_induced"
	OpPatternsOfCompounds     Operation = "patterns_of_compounds"
	OpPotentPatterns          Operation = "potent_patterns"
	OpPredict                 Operation = "predict"
)

// Operations lists every graph operation in a stable order.
var Operations = []Operation{
	OpBioactivityTarget,
	OpBioactivityCompound,
	OpBioactivityC2T,
	OpPotentCompounds,
	OpPathRegulatory,
	OpPathC2T,
	OpPathRegulatoryOpen,
	OpSubgraphTargetInduced,
	OpSubgraphCompoundInduced,
	OpPatternsOfCompounds,
	OpPotentPatterns,
	OpPredict,
}

// Format selects the rendering of a graph document.
type Format string

const (
	FormatJSON    Format = "json"
	FormatGraphML Format = "graphml"
)

// ExploreMode selects edge direction for open-ended traversals.
type ExploreMode string

const (
	ExploreUndirected ExploreMode = "undirected"
	ExploreSource     ExploreMode = "source"
	ExploreTarget     ExploreMode = "target"
)

// EndpointType constrains the far endpoint of an induced subgraph traversal.
type EndpointType string

const (
	EndpointCompound EndpointType = "compound"
	EndpointTarget   EndpointType = "target"
	EndpointBoth     EndpointType = "both"
)

// PathMode selects between a single minimal witness path and every path.
type PathMode int

const (
	PathShortest PathMode = iota
	PathAll
)

// String returns the string representation of PathMode
func (m PathMode) String() string {
	if m == PathAll {
		return "all"
	}
	return "shortest"
}

// PatternScaffold is the only pattern category present in the graph.
const PatternScaffold = "scaffold"

// Accepted enumerated values, in the order they are reported back to callers.
var (
	Formats       = []string{string(FormatJSON), string(FormatGraphML)}
	ExploreModes  = []string{string(ExploreUndirected), string(ExploreSource), string(ExploreTarget)}
	EndpointTypes = []string{string(EndpointCompound), string(EndpointTarget), string(EndpointBoth)}
	PatternTypes  = []string{PatternScaffold}
)

// Request is a validated graph operation. The set of implementations is closed.
type Request interface {
	Operation() Operation
	OutputFormat() Format
	Validate() error
	request()
}

// Common carries the parameters every graph operation accepts.
type Common struct {
	Format Format
}

// OutputFormat returns the requested rendering, defaulting to JSON.
func (c Common) OutputFormat() Format {
	if c.Format == "" {
		return FormatJSON
	}
	return c.Format
}

func (c Common) validate() error {
	if c.Format == "" {
		return nil
	}
	return checkEnum("format", string(c.Format), Formats)
}

// CompoundSet is a list of compound structural hashes plus the stereo flag that
// decides which stored hash they are compared against.
type CompoundSet struct {
	Hashes []string
	Stereo bool
}

// Field returns the compound property the set is matched against.
func (s CompoundSet) Field() string {
	if s.Stereo {
		return "hash"
	}
	return "nostereo_hash"
}

// Values returns the comparison tokens: the hashes themselves for stereo
// matching, otherwise each hash's skeleton block.
func (s CompoundSet) Values() []string {
	if s.Stereo {
		return s.Hashes
	}
	out := make([]string, len(s.Hashes))
	for i, h := range s.Hashes {
		out[i] = NoStereoKey(h)
	}
	return out
}

func (s CompoundSet) validate(field string) error {
	if err := checkIDs(field, s.Hashes); err != nil {
		return err
	}
	if s.Stereo {
		return nil
	}
	for _, h := range s.Hashes {
		if NoStereoKey(h) == "" {
			return errs.Request(field, errs.ErrInvalidValue, "%q has no skeleton block for non-stereo matching", h)
		}
	}
	return nil
}

// NoStereoKey derives the non-stereo comparison token of an InChIKey-style
// hash: the first hyphen-delimited block, trimmed.
func NoStereoKey(hash string) string {
	return strings.TrimSpace(strings.SplitN(hash, "-", 2)[0])
}

// SplitIDs splits a comma-delimited identifier list into trimmed, non-empty
// tokens, preserving order.
func SplitIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

func checkIDs(field string, ids []string) error {
	if len(ids) == 0 {
		return errs.Request(field, errs.ErrMissingValue, "at least one identifier is required")
	}
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return errs.Request(field, errs.ErrInvalidValue, "identifiers must not be blank")
		}
	}
	return nil
}

func checkEnum(field, value string, accepted []string) error {
	for _, a := range accepted {
		if a == value {
			return nil
		}
	}
	return errs.Request(field, errs.ErrInvalidValue, "%q is not one of %v", value, accepted)
}

func checkMaxLength(n int) error {
	if n < 1 {
		return errs.Request("max_length", errs.ErrInvalidValue, "must be at least 1, got %d", n)
	}
	return nil
}

func checkNonNegative(field string, v float64) error {
	if v < 0 || v != v {
		return errs.Request(field, errs.ErrInvalidValue, "must be >= 0, got %v", v)
	}
	return nil
}
