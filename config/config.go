// Package config loads the service configuration from YAML and the
// deployment environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration.
type Config struct {
	Neo4j  Neo4j  `yaml:"neo4j"`
	Server Server `yaml:"server"`
	Log    Log    `yaml:"log"`
}

// Neo4j configures the store driver.
type Neo4j struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// Database selects the database to read; empty is the server default.
	Database string `yaml:"database"`

	MaxConnectionLifetime        time.Duration `yaml:"max_connection_lifetime"`
	MaxConnectionPoolSize        int           `yaml:"max_connection_pool_size"`
	ConnectionAcquisitionTimeout time.Duration `yaml:"connection_acquisition_timeout"`
}

// Server configures the HTTP and WebSocket transport.
type Server struct {
	Addr string `yaml:"addr"`
	// BasePath prefixes every route, e.g. "/api".
	BasePath        string        `yaml:"base_path"`
	QueryTimeout    time.Duration `yaml:"query_timeout"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Log configures the structured logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a configuration for a local Neo4j instance.
func Default() Config {
	return Config{
		Neo4j: Neo4j{
			URI:                          "bolt://localhost:7687",
			Username:                     "neo4j",
			MaxConnectionLifetime:        1000 * time.Second,
			MaxConnectionPoolSize:        100,
			ConnectionAcquisitionTimeout: 60 * time.Second,
		},
		Server: Server{
			Addr:            ":8080",
			QueryTimeout:    60 * time.Second,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the YAML configuration file over the defaults using strict
// parsing: unknown keys are an error. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("YAML syntax error in config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides cfg with the deployment environment variables found by
// lookup (usually os.LookupEnv):
//
//	neo4j_host, neo4j_port_bolt    store address, as bolt://host:port
//	neo4j_user, neo4j_password     store credentials
//	neo4j_database                 store database
//	sg_api_int_port                listen port
//	SMARTGRAPH_API_BASE_PATH       route prefix
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	get := func(name string) (string, bool) {
		v, ok := lookup(name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	host, hasHost := get("neo4j_host")
	port, hasPort := get("neo4j_port_bolt")
	if hasHost || hasPort {
		if !hasHost {
			host = "localhost"
		}
		if !hasPort {
			port = "7687"
		}
		c.Neo4j.URI = "bolt://" + net.JoinHostPort(host, port)
	}
	if v, ok := get("neo4j_user"); ok {
		c.Neo4j.Username = v
	}
	if v, ok := lookup("neo4j_password"); ok {
		c.Neo4j.Password = v
	}
	if v, ok := get("neo4j_database"); ok {
		c.Neo4j.Database = v
	}
	if v, ok := get("sg_api_int_port"); ok {
		c.Server.Addr = ":" + v
	}
	if v, ok := get("SMARTGRAPH_API_BASE_PATH"); ok {
		c.Server.BasePath = v
	}
}

// Validate checks the configuration and normalizes the base path to either
// "" or a "/"-prefixed path without a trailing slash.
func (c *Config) Validate() error {
	var problems []error

	if c.Neo4j.URI == "" {
		problems = append(problems, errors.New("neo4j.uri is required"))
	}
	if c.Neo4j.MaxConnectionPoolSize < 0 {
		problems = append(problems, errors.New("neo4j.max_connection_pool_size must not be negative"))
	}
	if c.Server.Addr == "" {
		problems = append(problems, errors.New("server.addr is required"))
	}
	if c.Server.QueryTimeout <= 0 {
		problems = append(problems, errors.New("server.query_timeout must be positive"))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		problems = append(problems, fmt.Errorf("log.format %q is not one of json, console", c.Log.Format))
	}

	base := strings.Trim(strings.TrimSpace(c.Server.BasePath), "/")
	if base != "" {
		c.Server.BasePath = "/" + base
	} else {
		c.Server.BasePath = ""
	}

	return errors.Join(problems...)
}
