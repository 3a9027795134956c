package request

import (
	"math"
	"sort"
	"strconv"
	"strings"

	errs "github.com/saulfrancisco-ruizacevedo/go-smartgraph/errors"
)

// Params is the raw boundary input of one operation: path segments and query
// values keyed by parameter name.
type Params map[string]string

// Parse validates params for op and returns the typed request.
// Unknown parameter names, malformed values and values outside an accepted set
// are RequestErrors; no request is returned alongside an error.
func Parse(op Operation, params Params) (Request, error) {
	r := newReader(params)

	var req Request
	switch op {
	case OpBioactivityTarget:
		req = BioactivityTarget{
			Common:         r.common(),
			Targets:        r.ids("target_uniprot_ids"),
			ActivityCutoff: r.float("activity_cutoff", 0),
			ActivityType:   r.str("activity_type"),
		}
	case OpBioactivityCompound:
		req = BioactivityCompound{
			Common:         r.common(),
			Compounds:      r.compounds("inchikeys"),
			ActivityCutoff: r.float("activity_cutoff", 0),
			ActivityType:   r.str("activity_type"),
		}
	case OpBioactivityC2T:
		req = BioactivityC2T{
			Common:       r.common(),
			Compounds:    r.compounds("inchikeys"),
			Targets:      r.ids("uniprot_ids"),
			ActivityType: r.str("activity_type"),
		}
	case OpPotentCompounds:
		req = PotentCompounds{
			Common:       r.common(),
			Targets:      r.ids("uniprot_ids"),
			ActivityType: r.str("activity_type"),
		}
	case OpPathRegulatory:
		req = PathRegulatory{
			Common:           r.common(),
			Sources:          r.ids("source_uniprot_ids"),
			Targets:          r.ids("target_uniprot_ids"),
			Mode:             r.pathMode(),
			MaxLength:        r.integer("max_length", 4),
			ConfidenceCutoff: r.float("confidence_cutoff", 0),
			Directed:         r.boolean("directed", true),
		}
	case OpPathC2T:
		req = PathC2T{
			Common:           r.common(),
			Compounds:        r.compounds("inchikeys"),
			Targets:          r.ids("uniprot_ids"),
			Mode:             r.pathMode(),
			MaxLength:        r.integer("max_length", 2),
			ActivityCutoff:   r.float("activity_cutoff", 0),
			ActivityType:     r.str("activity_type"),
			ConfidenceCutoff: r.float("confidence_cutoff", 0),
		}
	case OpPathRegulatoryOpen:
		req = PathRegulatoryOpen{
			Common:           r.common(),
			Targets:          r.ids("uniprot_ids"),
			Mode:             r.pathMode(),
			MaxLength:        r.integer("max_length", 2),
			Explore:          ExploreMode(r.enum("explore_mode", string(ExploreUndirected), ExploreModes)),
			ConfidenceCutoff: r.float("confidence_cutoff", 0),
		}
	case OpSubgraphTargetInduced:
		req = SubgraphTargetInduced{
			Common:    r.common(),
			Targets:   r.ids("uniprot_ids"),
			Endpoint:  EndpointType(r.enum("endpoint_type", string(EndpointBoth), EndpointTypes, "endnode_type")),
			Mode:      r.pathMode(),
			MaxLength: r.integer("max_length", 4),
			Explore:   ExploreMode(r.enum("explore_mode", string(ExploreUndirected), ExploreModes)),
		}
	case OpSubgraphCompoundInduced:
		req = SubgraphCompoundInduced{
			Common:    r.common(),
			Compounds: r.compounds("inchikeys"),
			Mode:      r.pathMode(),
			MaxLength: r.integer("max_length", 4),
		}
	case OpPatternsOfCompounds:
		req = PatternsOfCompounds{
			Common:      r.common(),
			Compounds:   r.compounds("inchikeys"),
			PatternType: r.enum("pattern_type", PatternScaffold, PatternTypes),
			MinRatio:    r.float("min_ratio", 0),
			IsLargest:   r.optionalBool("is_largest"),
		}
	case OpPotentPatterns:
		req = PotentPatterns{
			Common:      r.common(),
			Targets:     r.ids("uniprot_ids"),
			PatternType: r.enum("pattern_type", PatternScaffold, PatternTypes),
		}
	case OpPredict:
		req = Predict{
			Common:  r.common(),
			Targets: r.ids("uniprot_id"),
			Limit:   r.integer("limit", 300),
		}
	default:
		return nil, errs.Request("operation", errs.ErrInvalidValue, "unsupported operation %q", op)
	}

	if err := r.finish(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// SmilesCompound looks up the structure string of a compound.
type SmilesCompound struct {
	InChIKey string
	Stereo   bool
}

// SmilesPattern looks up the structure string of a pattern.
type SmilesPattern struct {
	PatternID string
}

// ParseSmilesCompound validates a compound structure lookup.
func ParseSmilesCompound(params Params) (SmilesCompound, error) {
	r := newReader(params)
	req := SmilesCompound{
		InChIKey: r.single("inchikey"),
		Stereo:   r.boolean("stereo", true),
	}
	if req.InChIKey != "" {
		r.fail(CompoundSet{Hashes: []string{req.InChIKey}, Stereo: req.Stereo}.validate("inchikey"))
	}
	return req, r.finish()
}

// ParseSmilesPattern validates a pattern structure lookup.
func ParseSmilesPattern(params Params) (SmilesPattern, error) {
	r := newReader(params)
	req := SmilesPattern{PatternID: r.single("pattern_id")}
	return req, r.finish()
}

// reader consumes named parameters and records the first failure. Every
// lookup marks the name as known so finish can reject the leftovers.
type reader struct {
	params Params
	known  map[string]bool
	err    error
}

func newReader(params Params) *reader {
	return &reader{params: params, known: make(map[string]bool)}
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// lookup returns the value of the first present name among aliases.
func (r *reader) lookup(names ...string) (string, string, bool) {
	for _, n := range names {
		r.known[n] = true
	}
	for _, n := range names {
		if v, ok := r.params[n]; ok {
			v = strings.TrimSpace(v)
			if v == "" {
				return n, "", false
			}
			return n, v, true
		}
	}
	return names[0], "", false
}

func (r *reader) common() Common {
	return Common{Format: Format(r.enum("format", string(FormatJSON), Formats))}
}

func (r *reader) ids(name string) []string {
	_, v, _ := r.lookup(name)
	ids := SplitIDs(v)
	if len(ids) == 0 {
		r.fail(errs.Request(name, errs.ErrMissingValue, "at least one identifier is required"))
	}
	return ids
}

func (r *reader) single(name string) string {
	_, v, ok := r.lookup(name)
	if !ok {
		r.fail(errs.Request(name, errs.ErrMissingValue, "a value is required"))
	}
	return v
}

func (r *reader) compounds(name string) CompoundSet {
	return CompoundSet{Hashes: r.ids(name), Stereo: r.boolean("stereo", true)}
}

func (r *reader) str(name string) string {
	_, v, _ := r.lookup(name)
	return v
}

func (r *reader) boolean(name string, def bool) bool {
	if b := r.optionalBool(name); b != nil {
		return *b
	}
	return def
}

func (r *reader) optionalBool(name string) *bool {
	_, v, ok := r.lookup(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(errs.Request(name, errs.ErrInvalidValue, "%q is not a boolean", v))
		return nil
	}
	return &b
}

func (r *reader) pathMode() PathMode {
	if r.boolean("shortest_paths", true) {
		return PathShortest
	}
	return PathAll
}

func (r *reader) float(name string, def float64) float64 {
	_, v, ok := r.lookup(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		r.fail(errs.Request(name, errs.ErrInvalidValue, "%q is not a finite number", v))
		return def
	}
	return f
}

func (r *reader) integer(name string, def int) int {
	_, v, ok := r.lookup(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(errs.Request(name, errs.ErrInvalidValue, "%q is not an integer", v))
		return def
	}
	return n
}

func (r *reader) enum(name, def string, accepted []string, aliases ...string) string {
	field, v, ok := r.lookup(append([]string{name}, aliases...)...)
	if !ok {
		return def
	}
	if err := checkEnum(field, v, accepted); err != nil {
		r.fail(err)
		return def
	}
	return v
}

func (r *reader) finish() error {
	if r.err != nil {
		return r.err
	}
	var unknown []string
	for name := range r.params {
		if !r.known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return errs.Request(unknown[0], errs.ErrUnknownParameter, "parameter not accepted by this operation (got %v)", unknown)
	}
	return nil
}
