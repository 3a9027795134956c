// Package smartgraph answers graph exploration requests over a Neo4j
// knowledge graph of compounds, protein targets and structural patterns.
//
// A request is compiled to a parameterized Cypher statement, executed through
// a read-only store gateway, and the raw result is normalized into a canonical
// graph document rendered as JSON or GraphML.
package smartgraph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	neo4jconfig "github.com/neo4j/neo4j-go-driver/v5/neo4j/config"

	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/config"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/cypher"
	errs "github.com/saulfrancisco-ruizacevedo/go-smartgraph/errors"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/models"
)

// DBRunner defines the interface for a generic read query executor.
// It abstracts the execution of a Cypher query, allowing for different implementations
// or mocking in tests.
type DBRunner interface {
	// Run executes a given Cypher query with parameters and returns a fully-buffered result.
	Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
}

// Gateway executes one compiled statement and returns the raw graph it matched.
type Gateway interface {
	Fetch(ctx context.Context, stmt cypher.Statement) (*models.GraphResult, error)
}

//---

// OpenDriver creates the process-wide, pooled Neo4j driver described by cfg.
// The driver does not connect until first use; call Verify to check it.
//
// Parameters:
//   - cfg: The connection settings (URI, credentials, pool limits).
//
// Returns:
//
//	The driver, or an error if the URI or settings are invalid.
func OpenDriver(cfg config.Neo4j) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *neo4jconfig.Config) {
			if cfg.MaxConnectionLifetime > 0 {
				c.MaxConnectionLifetime = cfg.MaxConnectionLifetime
			}
			if cfg.MaxConnectionPoolSize > 0 {
				c.MaxConnectionPoolSize = cfg.MaxConnectionPoolSize
			}
			if cfg.ConnectionAcquisitionTimeout > 0 {
				c.ConnectionAcquisitionTimeout = cfg.ConnectionAcquisitionTimeout
			}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("could not create Neo4j driver: %w", err)
	}
	return driver, nil
}

// Neo4jGateway is the read-only store gateway. It holds an explicit driver
// handle and opens a fresh read session for every call, closing it on every
// exit path. It never retries and never caches.
type Neo4jGateway struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jGateway creates a gateway over an open driver.
//
// Parameters:
//   - driver: The pooled driver, owned and closed by the caller.
//   - database: The database to read from; empty selects the server default.
func NewNeo4jGateway(driver neo4j.DriverWithContext, database string) *Neo4jGateway {
	return &Neo4jGateway{driver: driver, database: database}
}

// Verify checks the connectivity to the Neo4j server.
func (g *Neo4jGateway) Verify(ctx context.Context) error {
	return errs.WrapGateway(g.driver.VerifyConnectivity(ctx), "Neo4jGateway", "Verify", "verify connectivity")
}

// Run executes a read query in a dedicated read session and buffers every
// record before returning.
//
// Parameters:
//   - ctx: Bounds the whole call, including session acquisition.
//   - query: The Cypher query string to execute.
//   - params: A map of parameters to be used in the query.
//
// Returns:
//
//	An EagerResult containing all buffered records, or a GatewayError.
func (g *Neo4jGateway) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: g.database,
	})
	defer session.Close(ctx)

	// Auto-commit, so the driver never retries.
	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, errs.WrapGateway(err, "Neo4jGateway", "Run", "run query")
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, errs.WrapGateway(err, "Neo4jGateway", "Run", "collect records")
	}
	keys, err := result.Keys()
	if err != nil {
		return nil, errs.WrapGateway(err, "Neo4jGateway", "Run", "read keys")
	}
	return &neo4j.EagerResult{Keys: keys, Records: records}, nil
}

// Fetch runs stmt and collects the nodes and relationships it returned.
func (g *Neo4jGateway) Fetch(ctx context.Context, stmt cypher.Statement) (*models.GraphResult, error) {
	res, err := g.Run(ctx, stmt.Text, stmt.Params)
	if err != nil {
		return nil, err
	}
	return CollectGraph(res.Records), nil
}
