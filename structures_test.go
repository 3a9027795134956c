package smartgraph

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/saulfrancisco-ruizacevedo/go-smartgraph/errors"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/request"
)

func TestSmilesCompound(t *testing.T) {
	stored := neo4j.Node{ElementId: "c1", Labels: []string{"Compound"}, Props: map[string]any{
		"hash":          "JUZUBCBEFKWHQP-UHFFFAOYSA-N",
		"nostereo_hash": "JUZUBCBEFKWHQP",
		"smiles":        "CC(=O)O",
	}}

	tests := []struct {
		name      string
		req       request.SmilesCompound
		wantValue string
	}{
		{
			name:      "stereo matches the full key",
			req:       request.SmilesCompound{InChIKey: "JUZUBCBEFKWHQP-UHFFFAOYSA-N", Stereo: true},
			wantValue: "JUZUBCBEFKWHQP-UHFFFAOYSA-N",
		},
		{
			name:      "non-stereo matches the skeleton block",
			req:       request.SmilesCompound{InChIKey: "JUZUBCBEFKWHQP-XXXXXXXXXX-N", Stereo: false},
			wantValue: "JUZUBCBEFKWHQP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{nodes: []neo4j.Node{stored}}
			structures, err := NewStructures(runner)
			require.NoError(t, err)

			got, err := structures.SmilesCompound(context.Background(), tt.req)
			require.NoError(t, err)
			assert.True(t, hasParamValue(runner.params, tt.wantValue))
			assert.Equal(t, CompoundInfo{
				SMILES:           "CC(=O)O",
				InChIKey:         "JUZUBCBEFKWHQP-UHFFFAOYSA-N",
				NoStereoInChIKey: "JUZUBCBEFKWHQP",
				Stereo:           tt.req.Stereo,
			}, got.Compound)
		})
	}
}

func TestSmilesCompoundJSON(t *testing.T) {
	b, err := json.Marshal(CompoundSMILES{Compound: CompoundInfo{SMILES: "C", InChIKey: "K-A-N", NoStereoInChIKey: "K", Stereo: true}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"compound":{"smiles":"C","inchikey":"K-A-N","nsinchikey":"K","stereo":true}}`, string(b))
}

func TestSmilesPattern(t *testing.T) {
	runner := &fakeRunner{nodes: []neo4j.Node{{ElementId: "p1", Labels: []string{"Pattern"}, Props: map[string]any{
		"pattern_id":   "scaffold.100077",
		"hash":         "PHASH",
		"smiles":       "c1ccccc1",
		"pattern_type": "scaffold",
	}}}}
	structures, err := NewStructures(runner)
	require.NoError(t, err)

	got, err := structures.SmilesPattern(context.Background(), request.SmilesPattern{PatternID: "scaffold.100077"})
	require.NoError(t, err)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pattern":{"pattern_id":"scaffold.100077","inchikey":"PHASH","smiles":"c1ccccc1","pattern_type":"scaffold"}}`, string(b))
}

func TestStructureLookupErrors(t *testing.T) {
	structures, err := NewStructures(&fakeRunner{})
	require.NoError(t, err)

	_, err = structures.SmilesPattern(context.Background(), request.SmilesPattern{PatternID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "missing")

	structures, err = NewStructures(&fakeRunner{err: errors.New("connection reset")})
	require.NoError(t, err)
	_, err = structures.SmilesCompound(context.Background(), request.SmilesCompound{InChIKey: "K", Stereo: true})
	assert.True(t, errs.IsGateway(err))
}

func TestCite(t *testing.T) {
	assert.Contains(t, Cite().Citation, "doi.org/10.1186/s13321-020-0409-9")
	assert.Contains(t, BibTeX, "doi = {10.1186/s13321-020-0409-9}")
	assert.Equal(t, "SmartGraph API v1", Version)
}
