package smartgraph

import (
	"context"

	errs "github.com/saulfrancisco-ruizacevedo/go-smartgraph/errors"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/models"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/request"
)

// CompoundSMILES is the body of a compound structure lookup.
type CompoundSMILES struct {
	Compound CompoundInfo `json:"compound"`
}

// CompoundInfo is a compound structure plus the matching mode that found it.
type CompoundInfo struct {
	SMILES           string `json:"smiles"`
	InChIKey         string `json:"inchikey"`
	NoStereoInChIKey string `json:"nsinchikey"`
	Stereo           bool   `json:"stereo"`
}

// PatternSMILES is the body of a pattern structure lookup.
type PatternSMILES struct {
	Pattern models.PatternStructure `json:"pattern"`
}

// Structures answers structure string lookups of single compounds and
// patterns. Unlike graph operations it returns one entity, and a missing
// entity is ErrNotFound rather than an empty result.
type Structures struct {
	compounds *Repository[models.CompoundStructure]
	patterns  *Repository[models.PatternStructure]
}

// NewStructures creates the structure lookups over runner.
func NewStructures(runner DBRunner) (*Structures, error) {
	compounds, err := NewRepository[models.CompoundStructure](runner)
	if err != nil {
		return nil, err
	}
	patterns, err := NewRepository[models.PatternStructure](runner)
	if err != nil {
		return nil, err
	}
	return &Structures{compounds: compounds, patterns: patterns}, nil
}

// SmilesCompound looks up the structure of a compound by InChIKey. Non-stereo
// lookups match the key's skeleton block and return the first compound found.
func (s *Structures) SmilesCompound(ctx context.Context, req request.SmilesCompound) (*CompoundSMILES, error) {
	var (
		c   *models.CompoundStructure
		err error
	)
	if req.Stereo {
		c, err = s.compounds.FindOne(ctx, "InChIKey", req.InChIKey)
	} else {
		c, err = s.compounds.FindOne(ctx, "NoStereoInChIKey", request.NoStereoKey(req.InChIKey))
	}
	if err != nil {
		return nil, lookupError(err, "SmilesCompound", "compound", req.InChIKey)
	}
	return &CompoundSMILES{Compound: CompoundInfo{
		SMILES:           c.SMILES,
		InChIKey:         c.InChIKey,
		NoStereoInChIKey: c.NoStereoInChIKey,
		Stereo:           req.Stereo,
	}}, nil
}

// SmilesPattern looks up the structure of a pattern by its id.
func (s *Structures) SmilesPattern(ctx context.Context, req request.SmilesPattern) (*PatternSMILES, error) {
	p, err := s.patterns.FindOne(ctx, "PatternID", req.PatternID)
	if err != nil {
		return nil, lookupError(err, "SmilesPattern", "pattern", req.PatternID)
	}
	return &PatternSMILES{Pattern: *p}, nil
}

func lookupError(err error, method, kind, id string) error {
	if errs.Is(err, ErrNotFound) {
		return errs.Wrap(err, "Structures", method, "find "+kind+" "+id)
	}
	if _, classified := errs.ClassOf(err); classified {
		return err
	}
	return errs.WrapGateway(err, "Structures", method, "find "+kind)
}
