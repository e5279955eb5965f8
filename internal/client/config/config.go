package config

import (
	"github.com/dmitrijs2005/mrtrade/internal/cryptox"
	"github.com/dmitrijs2005/mrtrade/internal/repositories/repomanager"
	"github.com/dmitrijs2005/mrtrade/internal/snapshot"
)

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerAddress: host:port of the accounts server. When empty the CLI
//     opens the store described by Store directly.
//   - Store: local backend settings.
//   - Snapshot: bucket used by the backup and restore commands.
type Config struct {
	ServerAddress string `env:"SERVER_ADDR"`
	Store         repomanager.Options
	Snapshot      snapshot.Options
	HashScheme    string `env:"HASH_SCHEME"`
	LogLevel      string `env:"LOG_LEVEL"`
	LogFormat     string `env:"LOG_FORMAT"`
}

// LoadDefaults populates c with defaults for a local, file backed store.
func (c *Config) LoadDefaults() {
	c.ServerAddress = ""
	c.Store = repomanager.DefaultOptions()
	c.Snapshot = snapshot.DefaultOptions()
	c.HashScheme = cryptox.SchemeSHA256
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// Remote reports whether the CLI talks to a server.
func (c *Config) Remote() bool {
	return c.ServerAddress != ""
}

// LoadConfig applies defaults, then JSON, environment and flags from args.
// Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
