package models

// NodeKind is the lowercase kind of a canonical node.
type NodeKind string

const (
	KindCompound NodeKind = "compound"
	KindTarget   NodeKind = "target"
	KindPattern  NodeKind = "pattern"
)

// EdgeKind is the lowercase kind of a canonical edge.
type EdgeKind string

const (
	KindTestedOn        EdgeKind = "tested_on"
	KindRegulates       EdgeKind = "regulates"
	KindPatternOf       EdgeKind = "pattern_of"
	KindPotentPatternOf EdgeKind = "potent_pattern_of"
)

// Node is a canonical node record. Implementations are *Compound, *Target and
// *Pattern; the set is closed.
type Node interface {
	// NodeID is the canonical identity key.
	NodeID() string
	Kind() NodeKind
	node()
}

// Compound is a chemical substance identified by its stereo InChIKey.
type Compound struct {
	InChIKey         string
	NoStereoInChIKey string
	SMILES           string
	UUID             string
}

// Target is a protein target identified by its UniProt accession.
type Target struct {
	UniprotID      string
	FullName       string
	ActivityCutoff float64
	Synonyms       []string
	GeneSymbols    []string
	UUID           string
}

// Pattern is a substructure (e.g. a scaffold) identified by its pattern id.
type Pattern struct {
	PatternID   string
	InChIKey    string
	SMILES      string
	PatternType string
	UUID        string
}

func (c *Compound) NodeID() string { return c.InChIKey }
func (c *Compound) Kind() NodeKind { return KindCompound }
func (*Compound) node()            {}

// Name mirrors the InChIKey.
func (c *Compound) Name() string { return c.InChIKey }

func (t *Target) NodeID() string { return t.UniprotID }
func (t *Target) Kind() NodeKind { return KindTarget }
func (*Target) node()            {}

func (p *Pattern) NodeID() string { return p.PatternID }
func (p *Pattern) Kind() NodeKind { return KindPattern }
func (*Pattern) node()            {}

// Edge is a canonical edge record. Implementations are *TestedOn, *Regulates,
// *PatternOf and *PotentPatternOf; the set is closed.
type Edge interface {
	// EdgeID is the canonical identity key.
	EdgeID() string
	Kind() EdgeKind
	// Endpoints returns the canonical ids of the start and end nodes.
	Endpoints() (start, end string)
	// Base exposes the identity fields shared by every edge kind.
	Base() EdgeBase
	edge()
}

// EdgeBase holds the identity of an edge. Label disambiguates parallel edges
// that share a store uuid.
type EdgeBase struct {
	UUID  string
	Label string
	Start string
	End   string
}

// EdgeID is the store uuid, suffixed with "_" and the label when one exists.
func (b EdgeBase) EdgeID() string {
	if b.Label == "" {
		return b.UUID
	}
	return b.UUID + "_" + b.Label
}

func (b EdgeBase) Endpoints() (string, string) { return b.Start, b.End }
func (b EdgeBase) Base() EdgeBase             { return b }

// TestedOn is a bioactivity measurement of a compound on a target.
type TestedOn struct {
	EdgeBase
	Activity     float64
	ActivityType string
	ActivityUnit string
	Provenance   string
}

// Regulates is a regulatory interaction between two targets.
type Regulates struct {
	EdgeBase
	MaxConfidence    float64
	MechanismDetails string
	ActionType       string
	SourceDB         string
}

// PatternOf links a pattern to a compound containing it.
type PatternOf struct {
	EdgeBase
	Ratio      float64
	IsLargest  bool
	ActionType string
}

// PotentPatternOf links a pattern to a target it is predictive for.
type PotentPatternOf struct {
	EdgeBase
}

func (*TestedOn) Kind() EdgeKind        { return KindTestedOn }
func (*Regulates) Kind() EdgeKind       { return KindRegulates }
func (*PatternOf) Kind() EdgeKind       { return KindPatternOf }
func (*PotentPatternOf) Kind() EdgeKind { return KindPotentPatternOf }

func (*TestedOn) edge()        {}
func (*Regulates) edge()       {}
func (*PatternOf) edge()       {}
func (*PotentPatternOf) edge() {}
