package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/saulfrancisco-ruizacevedo/go-smartgraph/errors"
)

func TestSplitIDs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single", "P11509", []string{"P11509"}},
		{"trimmed", " P11509 , Q13315 ", []string{"P11509", "Q13315"}},
		{"empties dropped", "P11509,,  ,Q13315,", []string{"P11509", "Q13315"}},
		{"order kept", "B,A,C", []string{"B", "A", "C"}},
		{"blank", " , ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitIDs(tt.raw))
		})
	}
}

func TestNoStereoKey(t *testing.T) {
	assert.Equal(t, "OXAZEQNCEUDROZ", NoStereoKey("OXAZEQNCEUDROZ-UHFFFAOYSA-N"))
	assert.Equal(t, "OXAZEQNCEUDROZ", NoStereoKey(" OXAZEQNCEUDROZ -UHFFFAOYSA-N"))
	assert.Equal(t, "NODELIMITER", NoStereoKey("NODELIMITER"))
}

func TestCompoundSet(t *testing.T) {
	stereo := CompoundSet{Hashes: []string{"OXAZEQNCEUDROZ-UHFFFAOYSA-N"}, Stereo: true}
	assert.Equal(t, "hash", stereo.Field())
	assert.Equal(t, []string{"OXAZEQNCEUDROZ-UHFFFAOYSA-N"}, stereo.Values())

	flat := CompoundSet{Hashes: []string{"OXAZEQNCEUDROZ-UHFFFAOYSA-N", "BSYNRYMUTXBXSQ-UHFFFAOYSA-N"}}
	assert.Equal(t, "nostereo_hash", flat.Field())
	assert.Equal(t, []string{"OXAZEQNCEUDROZ", "BSYNRYMUTXBXSQ"}, flat.Values())
}

func TestCompoundSetSkeletonBlock(t *testing.T) {
	// The full hash is still a valid stereo identifier.
	require.NoError(t, CompoundSet{Hashes: []string{"-UHFFFAOYSA-N"}, Stereo: true}.validate("inchikeys"))

	err := CompoundSet{Hashes: []string{" -UHFFFAOYSA-N"}}.validate("inchikeys")
	require.Error(t, err)
	assert.True(t, errs.IsRequest(err))
	assert.ErrorIs(t, err, errs.ErrInvalidValue)

	req, err := Parse(OpBioactivityCompound, Params{"inchikeys": "-UHFFFAOYSA-N"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-UHFFFAOYSA-N"}, req.(BioactivityCompound).Compounds.Values())
}

func TestParseDefaults(t *testing.T) {
	req, err := Parse(OpPathRegulatory, Params{
		"source_uniprot_ids": "P11509",
		"target_uniprot_ids": "Q13315,P04637",
	})
	require.NoError(t, err)

	pr, ok := req.(PathRegulatory)
	require.True(t, ok)
	assert.Equal(t, []string{"P11509"}, pr.Sources)
	assert.Equal(t, []string{"Q13315", "P04637"}, pr.Targets)
	assert.Equal(t, PathShortest, pr.Mode)
	assert.Equal(t, 4, pr.MaxLength)
	assert.True(t, pr.Directed)
	assert.Zero(t, pr.ConfidenceCutoff)
	assert.Equal(t, FormatJSON, pr.OutputFormat())
}

func TestParseOperationDefaults(t *testing.T) {
	req, err := Parse(OpPathC2T, Params{"inchikeys": "A-B-C", "uniprot_ids": "P1"})
	require.NoError(t, err)
	assert.Equal(t, 2, req.(PathC2T).MaxLength)
	assert.True(t, req.(PathC2T).Compounds.Stereo)

	req, err = Parse(OpPathRegulatoryOpen, Params{"uniprot_ids": "P1"})
	require.NoError(t, err)
	assert.Equal(t, 2, req.(PathRegulatoryOpen).MaxLength)
	assert.Equal(t, ExploreUndirected, req.(PathRegulatoryOpen).Explore)

	req, err = Parse(OpSubgraphTargetInduced, Params{"uniprot_ids": "P1"})
	require.NoError(t, err)
	assert.Equal(t, EndpointBoth, req.(SubgraphTargetInduced).Endpoint)
	assert.Equal(t, 4, req.(SubgraphTargetInduced).MaxLength)

	req, err = Parse(OpPatternsOfCompounds, Params{"inchikeys": "A-B-C"})
	require.NoError(t, err)
	assert.Equal(t, PatternScaffold, req.(PatternsOfCompounds).PatternType)
	assert.Nil(t, req.(PatternsOfCompounds).IsLargest)

	req, err = Parse(OpPredict, Params{"uniprot_id": "P1"})
	require.NoError(t, err)
	assert.Equal(t, 300, req.(Predict).Limit)
}

func TestParseValues(t *testing.T) {
	req, err := Parse(OpSubgraphTargetInduced, Params{
		"uniprot_ids":    "Q13315",
		"endnode_type":   "target",
		"explore_mode":   "source",
		"max_length":     "2",
		"shortest_paths": "false",
		"format":         "graphml",
	})
	require.NoError(t, err)

	st := req.(SubgraphTargetInduced)
	assert.Equal(t, EndpointTarget, st.Endpoint)
	assert.Equal(t, ExploreSource, st.Explore)
	assert.Equal(t, 2, st.MaxLength)
	assert.Equal(t, PathAll, st.Mode)
	assert.Equal(t, FormatGraphML, st.OutputFormat())

	req, err = Parse(OpPatternsOfCompounds, Params{
		"inchikeys":  "OXAZEQNCEUDROZ-UHFFFAOYSA-N",
		"stereo":     "false",
		"min_ratio":  "0.5",
		"is_largest": "true",
	})
	require.NoError(t, err)
	pc := req.(PatternsOfCompounds)
	assert.False(t, pc.Compounds.Stereo)
	assert.Equal(t, 0.5, pc.MinRatio)
	require.NotNil(t, pc.IsLargest)
	assert.True(t, *pc.IsLargest)
}

func TestParseEmptyValueMeansDefault(t *testing.T) {
	req, err := Parse(OpBioactivityTarget, Params{
		"target_uniprot_ids": "P11509",
		"activity_type":      "",
		"activity_cutoff":    " ",
	})
	require.NoError(t, err)
	bt := req.(BioactivityTarget)
	assert.Empty(t, bt.ActivityType)
	assert.Zero(t, bt.ActivityCutoff)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		op     Operation
		params Params
		field  string
		cause  error
	}{
		{"missing ids", OpBioactivityTarget, Params{}, "target_uniprot_ids", errs.ErrMissingValue},
		{"blank ids", OpPotentCompounds, Params{"uniprot_ids": " , "}, "uniprot_ids", errs.ErrMissingValue},
		{"unknown parameter", OpBioactivityTarget, Params{"target_uniprot_ids": "P1", "depth": "3"}, "depth", errs.ErrUnknownParameter},
		{"parameter of other operation", OpPotentCompounds, Params{"uniprot_ids": "P1", "activity_cutoff": "1"}, "activity_cutoff", errs.ErrUnknownParameter},
		{"bad explore mode", OpPathRegulatoryOpen, Params{"uniprot_ids": "P1", "explore_mode": "sideways"}, "explore_mode", errs.ErrInvalidValue},
		{"bad endpoint alias", OpSubgraphTargetInduced, Params{"uniprot_ids": "P1", "endnode_type": "disease"}, "endnode_type", errs.ErrInvalidValue},
		{"bad format", OpPredict, Params{"uniprot_id": "P1", "format": "csv"}, "format", errs.ErrInvalidValue},
		{"bad pattern type", OpPotentPatterns, Params{"uniprot_ids": "P1", "pattern_type": "ring"}, "pattern_type", errs.ErrInvalidValue},
		{"zero max length", OpPathRegulatory, Params{"source_uniprot_ids": "P1", "target_uniprot_ids": "P2", "max_length": "0"}, "max_length", errs.ErrInvalidValue},
		{"non integer max length", OpPathRegulatory, Params{"source_uniprot_ids": "P1", "target_uniprot_ids": "P2", "max_length": "two"}, "max_length", errs.ErrInvalidValue},
		{"negative cutoff", OpBioactivityTarget, Params{"target_uniprot_ids": "P1", "activity_cutoff": "-1"}, "activity_cutoff", errs.ErrInvalidValue},
		{"nan cutoff", OpBioactivityTarget, Params{"target_uniprot_ids": "P1", "activity_cutoff": "NaN"}, "activity_cutoff", errs.ErrInvalidValue},
		{"ratio above one", OpPatternsOfCompounds, Params{"inchikeys": "A", "min_ratio": "1.5"}, "min_ratio", errs.ErrInvalidValue},
		{"empty skeleton block", OpBioactivityCompound, Params{"inchikeys": "-UHFFFAOYSA-N", "stereo": "false"}, "inchikeys", errs.ErrInvalidValue},
		{"empty skeleton block in list", OpPatternsOfCompounds, Params{"inchikeys": "OXAZEQNCEUDROZ-UHFFFAOYSA-N, -X", "stereo": "false"}, "inchikeys", errs.ErrInvalidValue},
		{"bad boolean", OpBioactivityCompound, Params{"inchikeys": "A", "stereo": "maybe"}, "stereo", errs.ErrInvalidValue},
		{"negative limit", OpPredict, Params{"uniprot_id": "P1", "limit": "-5"}, "limit", errs.ErrInvalidValue},
		{"unsupported operation", Operation("drop_database"), Params{}, "operation", errs.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Parse(tt.op, tt.params)
			require.Error(t, err)
			assert.Nil(t, req)
			assert.True(t, errs.IsRequest(err))
			assert.ErrorIs(t, err, tt.cause)

			var ce *errs.ClassifiedError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestEnumErrorNamesAcceptedSet(t *testing.T) {
	_, err := Parse(OpPathRegulatoryOpen, Params{"uniprot_ids": "P1", "explore_mode": "up"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[undirected source target]")
}

func TestValidateProgrammaticRequests(t *testing.T) {
	assert.Error(t, PathRegulatoryOpen{Targets: []string{"P1"}, MaxLength: 2}.Validate(), "empty explore mode")
	assert.Error(t, BioactivityC2T{Compounds: CompoundSet{Hashes: []string{"A"}}}.Validate(), "no targets")
	assert.Error(t, Predict{Targets: []string{"P1"}, Common: Common{Format: "xml"}}.Validate())
	assert.NoError(t, Predict{Targets: []string{"P1"}}.Validate())
	assert.NoError(t, SubgraphCompoundInduced{Compounds: CompoundSet{Hashes: []string{"A"}}, MaxLength: 1}.Validate())
}

func TestParseSmiles(t *testing.T) {
	sc, err := ParseSmilesCompound(Params{"inchikey": "OXAZEQNCEUDROZ-UHFFFAOYSA-N", "stereo": "false"})
	require.NoError(t, err)
	assert.False(t, sc.Stereo)
	assert.Equal(t, "OXAZEQNCEUDROZ-UHFFFAOYSA-N", sc.InChIKey)

	_, err = ParseSmilesCompound(Params{"inchikey": "-UHFFFAOYSA-N", "stereo": "false"})
	assert.True(t, errs.IsRequest(err))
	assert.ErrorIs(t, err, errs.ErrInvalidValue)

	_, err = ParseSmilesCompound(Params{"inchikey": "X", "format": "json"})
	assert.ErrorIs(t, err, errs.ErrUnknownParameter)

	sp, err := ParseSmilesPattern(Params{"pattern_id": "SCAF-1"})
	require.NoError(t, err)
	assert.Equal(t, "SCAF-1", sp.PatternID)

	_, err = ParseSmilesPattern(Params{})
	assert.ErrorIs(t, err, errs.ErrMissingValue)
}

func TestEveryOperationParses(t *testing.T) {
	ids := Params{
		"target_uniprot_ids": "P1", "source_uniprot_ids": "P2",
		"uniprot_ids": "P1", "uniprot_id": "P1", "inchikeys": "A-B-C",
	}
	required := map[Operation][]string{
		OpBioactivityTarget:       {"target_uniprot_ids"},
		OpBioactivityCompound:     {"inchikeys"},
		OpBioactivityC2T:          {"inchikeys", "uniprot_ids"},
		OpPotentCompounds:         {"uniprot_ids"},
		OpPathRegulatory:          {"source_uniprot_ids", "target_uniprot_ids"},
		OpPathC2T:                 {"inchikeys", "uniprot_ids"},
		OpPathRegulatoryOpen:      {"uniprot_ids"},
		OpSubgraphTargetInduced:   {"uniprot_ids"},
		OpSubgraphCompoundInduced: {"inchikeys"},
		OpPatternsOfCompounds:     {"inchikeys"},
		OpPotentPatterns:          {"uniprot_ids"},
		OpPredict:                 {"uniprot_id"},
	}
	require.Len(t, required, len(Operations))

	for _, op := range Operations {
		params := Params{}
		for _, name := range required[op] {
			params[name] = ids[name]
		}
		req, err := Parse(op, params)
		require.NoError(t, err, op)
		assert.Equal(t, op, req.Operation())
	}
}
