package request

import (
	errs "github.com/saulfrancisco-ruizacevedo/go-smartgraph/errors"
)

// BioactivityTarget finds every compound tested on the given targets.
type BioactivityTarget struct {
	Common
	Targets        []string
	ActivityCutoff float64
	ActivityType   string
}

// BioactivityCompound finds every target the given compounds were tested on.
type BioactivityCompound struct {
	Common
	Compounds      CompoundSet
	ActivityCutoff float64
	ActivityType   string
}

// BioactivityC2T finds measurements between the given compounds and targets.
type BioactivityC2T struct {
	Common
	Compounds    CompoundSet
	Targets      []string
	ActivityType string
}

// PotentCompounds finds compounds whose activity on a target is within the
// target's own stored activity cutoff.
type PotentCompounds struct {
	Common
	Targets      []string
	ActivityType string
}

// PathRegulatory searches regulatory paths between two target sets.
type PathRegulatory struct {
	Common
	Sources          []string
	Targets          []string
	Mode             PathMode
	MaxLength        int
	ConfidenceCutoff float64
	Directed         bool
}

// PathC2T links compounds to targets through the regulatory network.
type PathC2T struct {
	Common
	Compounds        CompoundSet
	Targets          []string
	Mode             PathMode
	MaxLength        int
	ActivityCutoff   float64
	ActivityType     string
	ConfidenceCutoff float64
}

// PathRegulatoryOpen explores the regulatory neighbourhood of targets.
type PathRegulatoryOpen struct {
	Common
	Targets          []string
	Mode             PathMode
	MaxLength        int
	Explore          ExploreMode
	ConfidenceCutoff float64
}

// SubgraphTargetInduced extracts the bioactivity and regulatory subgraph
// reachable from the given targets.
type SubgraphTargetInduced struct {
	Common
	Targets   []string
	Endpoint  EndpointType
	Mode      PathMode
	MaxLength int
	Explore   ExploreMode
}

// SubgraphCompoundInduced extracts the subgraph spanned by the given compounds
// and the targets they reach.
type SubgraphCompoundInduced struct {
	Common
	Compounds CompoundSet
	Mode      PathMode
	MaxLength int
}

// PatternsOfCompounds finds the structural patterns of the given compounds.
type PatternsOfCompounds struct {
	Common
	Compounds   CompoundSet
	PatternType string
	MinRatio    float64
	// IsLargest restricts to largest (true) or non-largest (false) patterns; nil keeps both.
	IsLargest *bool
}

// PotentPatterns finds patterns predictive for the given targets.
type PotentPatterns struct {
	Common
	Targets     []string
	PatternType string
}

// Predict proposes untested compounds sharing a potent pattern with a target.
type Predict struct {
	Common
	Targets []string
	// Limit caps the number of returned rows; 0 disables the cap.
	Limit int
}

func (BioactivityTarget) Operation() Operation       { return OpBioactivityTarget }
func (BioactivityCompound) Operation() Operation     { return OpBioactivityCompound }
func (BioactivityC2T) Operation() Operation          { return OpBioactivityC2T }
func (PotentCompounds) Operation() Operation         { return OpPotentCompounds }
func (PathRegulatory) Operation() Operation          { return OpPathRegulatory }
func (PathC2T) Operation() Operation                 { return OpPathC2T }
func (PathRegulatoryOpen) Operation() Operation      { return OpPathRegulatoryOpen }
func (SubgraphTargetInduced) Operation() Operation   { return OpSubgraphTargetInduced }
func (SubgraphCompoundInduced) Operation() Operation { return OpSubgraphCompoundInduced }
func (PatternsOfCompounds) Operation() Operation     { return OpPatternsOfCompounds }
func (PotentPatterns) Operation() Operation          { return OpPotentPatterns }
func (Predict) Operation() Operation                 { return OpPredict }

func (BioactivityTarget) request()       {}
func (BioactivityCompound) request()     {}
func (BioactivityC2T) request()          {}
func (PotentCompounds) request()         {}
func (PathRegulatory) request()          {}
func (PathC2T) request()                 {}
func (PathRegulatoryOpen) request()      {}
func (SubgraphTargetInduced) request()   {}
func (SubgraphCompoundInduced) request() {}
func (PatternsOfCompounds) request()     {}
func (PotentPatterns) request()          {}
func (Predict) request()                 {}

// firstError returns the first non-nil error.
func firstError(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

func (r BioactivityTarget) Validate() error {
	return firstError(
		r.Common.validate(),
		checkIDs("target_uniprot_ids", r.Targets),
		checkNonNegative("activity_cutoff", r.ActivityCutoff),
	)
}

func (r BioactivityCompound) Validate() error {
	return firstError(
		r.Common.validate(),
		r.Compounds.validate("inchikeys"),
		checkNonNegative("activity_cutoff", r.ActivityCutoff),
	)
}

func (r BioactivityC2T) Validate() error {
	return firstError(
		r.Common.validate(),
		r.Compounds.validate("inchikeys"),
		checkIDs("uniprot_ids", r.Targets),
	)
}

func (r PotentCompounds) Validate() error {
	return firstError(r.Common.validate(), checkIDs("uniprot_ids", r.Targets))
}

func (r PathRegulatory) Validate() error {
	return firstError(
		r.Common.validate(),
		checkIDs("source_uniprot_ids", r.Sources),
		checkIDs("target_uniprot_ids", r.Targets),
		checkMaxLength(r.MaxLength),
		checkNonNegative("confidence_cutoff", r.ConfidenceCutoff),
	)
}

func (r PathC2T) Validate() error {
	return firstError(
		r.Common.validate(),
		r.Compounds.validate("inchikeys"),
		checkIDs("uniprot_ids", r.Targets),
		checkMaxLength(r.MaxLength),
		checkNonNegative("activity_cutoff", r.ActivityCutoff),
		checkNonNegative("confidence_cutoff", r.ConfidenceCutoff),
	)
}

func (r PathRegulatoryOpen) Validate() error {
	return firstError(
		r.Common.validate(),
		checkIDs("uniprot_ids", r.Targets),
		checkMaxLength(r.MaxLength),
		checkEnum("explore_mode", string(r.Explore), ExploreModes),
		checkNonNegative("confidence_cutoff", r.ConfidenceCutoff),
	)
}

func (r SubgraphTargetInduced) Validate() error {
	return firstError(
		r.Common.validate(),
		checkIDs("uniprot_ids", r.Targets),
		checkEnum("endpoint_type", string(r.Endpoint), EndpointTypes),
		checkMaxLength(r.MaxLength),
		checkEnum("explore_mode", string(r.Explore), ExploreModes),
	)
}

func (r SubgraphCompoundInduced) Validate() error {
	return firstError(
		r.Common.validate(),
		r.Compounds.validate("inchikeys"),
		checkMaxLength(r.MaxLength),
	)
}

func (r PatternsOfCompounds) Validate() error {
	if r.MinRatio < 0 || r.MinRatio > 1 || r.MinRatio != r.MinRatio {
		return errs.Request("min_ratio", errs.ErrInvalidValue, "must be within [0, 1], got %v", r.MinRatio)
	}
	return firstError(
		r.Common.validate(),
		r.Compounds.validate("inchikeys"),
		checkEnum("pattern_type", r.PatternType, PatternTypes),
	)
}

func (r PotentPatterns) Validate() error {
	return firstError(
		r.Common.validate(),
		checkIDs("uniprot_ids", r.Targets),
		checkEnum("pattern_type", r.PatternType, PatternTypes),
	)
}

func (r Predict) Validate() error {
	if r.Limit < 0 {
		return errs.Request("limit", errs.ErrInvalidValue, "must be >= 0, got %d", r.Limit)
	}
	return firstError(r.Common.validate(), checkIDs("uniprot_id", r.Targets))
}
