// Command smartgraph-api serves the SmartGraph graph exploration API over
// HTTP and WebSocket.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	smartgraph "github.com/saulfrancisco-ruizacevedo/go-smartgraph"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/config"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/server"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "smartgraph-api: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	// 1. Configuration: file over defaults, then the deployment environment.
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// 2. One pooled driver for the whole process.
	driver, err := smartgraph.OpenDriver(cfg.Neo4j)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := driver.Close(closeCtx); err != nil {
			logger.Warn("failed to close Neo4j driver", zap.Error(err))
		}
	}()

	gateway := smartgraph.NewNeo4jGateway(driver, cfg.Neo4j.Database)
	verifyCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := gateway.Verify(verifyCtx); err != nil {
		// The store may still be starting; requests fail with 502 until it is up.
		logger.Warn("Neo4j is not reachable yet", zap.String("uri", cfg.Neo4j.URI), zap.Error(err))
	}
	cancel()

	// 3. Metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := smartgraph.NewMetrics()
	if err := metrics.Register(reg); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	// 4. Services and transport.
	explorer := smartgraph.NewExplorer(gateway,
		smartgraph.WithLogger(logger.Named("explorer")),
		smartgraph.WithMetrics(metrics))
	structures, err := smartgraph.NewStructures(gateway)
	if err != nil {
		return err
	}
	srv := server.New(cfg.Server, explorer, structures,
		server.WithLogger(logger.Named("server")),
		server.WithGatherer(reg),
		server.WithHealthCheck(gateway.Verify))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting SmartGraph API", zap.String("version", smartgraph.Version), zap.String("neo4j", cfg.Neo4j.URI))
	if err := srv.Run(ctx); err != nil {
		return err
	}
	logger.Info("SmartGraph API stopped")
	return nil
}

func newLogger(cfg config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
