package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000*time.Second, cfg.Neo4j.MaxConnectionLifetime)
	assert.Equal(t, "", cfg.Server.BasePath)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
neo4j:
  uri: bolt://graph:7687
  username: reader
  database: smartgraph
server:
  base_path: /api
  query_timeout: 5s
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bolt://graph:7687", cfg.Neo4j.URI)
	assert.Equal(t, "reader", cfg.Neo4j.Username)
	assert.Equal(t, "smartgraph", cfg.Neo4j.Database)
	assert.Equal(t, 5*time.Second, cfg.Server.QueryTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched keys keep their defaults
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "neo4j:\n  url: bolt://graph:7687\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg Config)
	}{
		{
			name: "host and port build the bolt uri",
			env:  map[string]string{"neo4j_host": "db", "neo4j_port_bolt": "7688"},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "bolt://db:7688", cfg.Neo4j.URI)
			},
		},
		{
			name: "host alone uses the default bolt port",
			env:  map[string]string{"neo4j_host": "db"},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "bolt://db:7687", cfg.Neo4j.URI)
			},
		},
		{
			name: "credentials and database",
			env:  map[string]string{"neo4j_user": "sg", "neo4j_password": "secret", "neo4j_database": "graph"},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "sg", cfg.Neo4j.Username)
				assert.Equal(t, "secret", cfg.Neo4j.Password)
				assert.Equal(t, "graph", cfg.Neo4j.Database)
			},
		},
		{
			name: "listen port and base path",
			env:  map[string]string{"sg_api_int_port": "9000", "SMARTGRAPH_API_BASE_PATH": "/sg"},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, ":9000", cfg.Server.Addr)
				assert.Equal(t, "/sg", cfg.Server.BasePath)
			},
		},
		{
			name: "empty values are ignored",
			env:  map[string]string{"neo4j_host": " ", "neo4j_user": ""},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, Default().Neo4j.URI, cfg.Neo4j.URI)
				assert.Equal(t, "neo4j", cfg.Neo4j.Username)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.ApplyEnv(envOf(tt.env))
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "missing uri", mutate: func(c *Config) { c.Neo4j.URI = "" }, wantErr: "neo4j.uri"},
		{name: "zero query timeout", mutate: func(c *Config) { c.Server.QueryTimeout = 0 }, wantErr: "query_timeout"},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: "log.level"},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{name: "negative pool", mutate: func(c *Config) { c.Neo4j.MaxConnectionPoolSize = -1 }, wantErr: "pool_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateNormalizesBasePath(t *testing.T) {
	for in, want := range map[string]string{"": "", "/": "", "api": "/api", "/api/": "/api", " /a/b ": "/a/b"} {
		cfg := Default()
		cfg.Server.BasePath = in
		require.NoError(t, cfg.Validate())
		assert.Equal(t, want, cfg.Server.BasePath, "base path %q", in)
	}
}
