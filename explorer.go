package smartgraph

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/compiler"
	errs "github.com/saulfrancisco-ruizacevedo/go-smartgraph/errors"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/export"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/models"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/normalize"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/request"
)

// Explorer runs graph exploration requests end to end: compile the request,
// fetch the matching subgraph through the gateway, and normalize it into a
// canonical document. It is safe for concurrent use; every call is independent.
type Explorer struct {
	gateway Gateway
	logger  *zap.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Explorer) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records request counts, latency and document sizes in m.
func WithMetrics(m *Metrics) Option {
	return func(e *Explorer) { e.metrics = m }
}

// WithTracer sets the tracer used for explore spans. Defaults to a no-op tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Explorer) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// NewExplorer creates an Explorer over gw.
func NewExplorer(gw Gateway, opts ...Option) *Explorer {
	e := &Explorer{
		gateway: gw,
		logger:  zap.NewNop(),
		tracer:  noop.NewTracerProvider().Tracer("smartgraph"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Explore runs req and returns its canonical graph document.
//
// Returns:
//
//	The document (possibly empty), or a RequestError, IntegrityError or
//	GatewayError. No partial document is returned alongside an error.
func (e *Explorer) Explore(ctx context.Context, req request.Request) (doc *models.Document, err error) {
	if req == nil {
		return nil, errs.Request("operation", errs.ErrMissingValue, "no request given")
	}
	started := time.Now()
	op := req.Operation()

	ctx, span := e.tracer.Start(ctx, "smartgraph.explore",
		trace.WithAttributes(attribute.String("smartgraph.operation", string(op))))
	defer func() {
		nodes, edges := 0, 0
		if doc != nil {
			nodes, edges = doc.Nodes.Len(), doc.Edges.Len()
		}
		e.metrics.observe(op, started, nodes, edges, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(
				attribute.Int("smartgraph.nodes", nodes),
				attribute.Int("smartgraph.edges", edges),
			)
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	// 1. Compile.
	_, compileSpan := e.tracer.Start(ctx, "smartgraph.compile")
	stmt, err := compiler.Compile(req)
	compileSpan.End()
	if err != nil {
		e.logger.Debug("rejected request", zap.String("operation", string(op)), zap.Error(err))
		return nil, err
	}
	e.logger.Debug("compiled statement",
		zap.String("operation", string(op)),
		zap.String("cypher", stmt.Text),
		zap.Int("params", len(stmt.Params)))

	// 2. Fetch.
	fetchCtx, fetchSpan := e.tracer.Start(ctx, "smartgraph.fetch")
	raw, err := e.gateway.Fetch(fetchCtx, stmt)
	fetchSpan.End()
	if err != nil {
		if _, classified := errs.ClassOf(err); !classified {
			err = errs.WrapGateway(err, "Explorer", "Explore", "fetch graph")
		}
		e.logger.Error("store call failed", zap.String("operation", string(op)), zap.Error(err))
		return nil, err
	}

	// 3. Normalize.
	_, normSpan := e.tracer.Start(ctx, "smartgraph.normalize")
	doc, err = normalize.Normalize(raw)
	normSpan.End()
	if err != nil {
		fields := []zap.Field{zap.String("operation", string(op)), zap.Error(err)}
		var ce *errs.ClassifiedError
		if errs.As(err, &ce) && ce.Field != "" {
			fields = append(fields, zap.String("field", ce.Field))
		}
		e.logger.Error("store returned inconsistent graph", fields...)
		return nil, err
	}

	e.logger.Info("explored graph",
		zap.String("operation", string(op)),
		zap.Int("nodes", doc.Nodes.Len()),
		zap.Int("edges", doc.Edges.Len()),
		zap.Duration("duration", time.Since(started)))
	return doc, nil
}

// Export runs req and renders the document in the request's output format.
//
// Returns:
//
//	The rendered body and its content type, or the Explore error.
func (e *Explorer) Export(ctx context.Context, req request.Request) ([]byte, string, error) {
	doc, err := e.Explore(ctx, req)
	if err != nil {
		return nil, "", err
	}
	body, contentType, err := export.Render(doc, req.OutputFormat())
	if err != nil {
		return nil, "", errs.Wrap(err, "Explorer", "Export", "render document")
	}
	return body, contentType, nil
}
