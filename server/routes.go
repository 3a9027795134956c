package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	smartgraph "github.com/saulfrancisco-ruizacevedo/go-smartgraph"
	errs "github.com/saulfrancisco-ruizacevedo/go-smartgraph/errors"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/export"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/request"
)

// Names of the non-graph operations.
const (
	opSmilesCompound = "smiles_compound"
	opSmilesPattern  = "smiles_pattern"
	opCite           = "cite"
	opBibTeX         = "bibtex"
	opVersion        = "version"
)

// route maps an operation onto its URL: the operation name followed by one
// path segment per identifier parameter.
type route struct {
	operation string
	segments  []string
}

func (rt route) pattern() string {
	var b strings.Builder
	b.WriteString("/" + rt.operation)
	for _, seg := range rt.segments {
		b.WriteString("/{" + seg + "}")
	}
	return b.String()
}

var routes = []route{
	{opCite, nil},
	{opBibTeX, nil},
	{opVersion, nil},
	{string(request.OpBioactivityTarget), []string{"target_uniprot_ids"}},
	{string(request.OpBioactivityCompound), []string{"inchikeys"}},
	{string(request.OpBioactivityC2T), []string{"inchikeys", "uniprot_ids"}},
	{string(request.OpPotentCompounds), []string{"uniprot_ids"}},
	{string(request.OpPredict), []string{"uniprot_id"}},
	{string(request.OpPathC2T), []string{"inchikeys", "uniprot_ids"}},
	{string(request.OpPathRegulatory), []string{"source_uniprot_ids", "target_uniprot_ids"}},
	{string(request.OpPathRegulatoryOpen), []string{"uniprot_ids"}},
	{string(request.OpSubgraphTargetInduced), []string{"uniprot_ids"}},
	{string(request.OpSubgraphCompoundInduced), []string{"inchikeys"}},
	{string(request.OpPatternsOfCompounds), []string{"inchikeys"}},
	{string(request.OpPotentPatterns), []string{"uniprot_ids"}},
	{opSmilesCompound, []string{"inchikey"}},
	{opSmilesPattern, []string{"pattern_id"}},
}

func isGraphOperation(op string) bool {
	for _, known := range request.Operations {
		if string(known) == op {
			return true
		}
	}
	return false
}

// dispatch runs one operation and returns the response body with its content
// type. HTTP and WebSocket share it.
func (s *Server) dispatch(ctx context.Context, op string, params request.Params) ([]byte, string, error) {
	if isGraphOperation(op) {
		req, err := request.Parse(request.Operation(op), params)
		if err != nil {
			return nil, "", err
		}
		return s.graph.Export(ctx, req)
	}

	var (
		payload any
		err     error
	)
	switch op {
	case opSmilesCompound:
		var req request.SmilesCompound
		if req, err = request.ParseSmilesCompound(params); err == nil {
			payload, err = s.structures.SmilesCompound(ctx, req)
		}
	case opSmilesPattern:
		var req request.SmilesPattern
		if req, err = request.ParseSmilesPattern(params); err == nil {
			payload, err = s.structures.SmilesPattern(ctx, req)
		}
	case opCite:
		payload, err = smartgraph.Cite(), noParams(params)
	case opBibTeX:
		payload, err = smartgraph.BibTeX, noParams(params)
	case opVersion:
		payload, err = map[string]string{"version": smartgraph.Version}, noParams(params)
	default:
		return nil, "", errs.Request("operation", errs.ErrInvalidValue, "unsupported operation %q", op)
	}
	if err != nil {
		return nil, "", err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("encode %s response: %w", op, err)
	}
	return body, export.ContentTypeJSON, nil
}

func noParams(params request.Params) error {
	for name := range params {
		return errs.Request(name, errs.ErrUnknownParameter, "parameter not accepted by this operation")
	}
	return nil
}
