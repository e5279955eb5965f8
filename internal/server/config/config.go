// Package config handles configuration for the server component:
// defaults, an optional JSON file, MRTRADE_* environment variables and
// command-line flags, applied in that order.
package config

import (
	"time"

	"github.com/dmitrijs2005/mrtrade/internal/cryptox"
	"github.com/dmitrijs2005/mrtrade/internal/repositories/repomanager"
)

// Config holds runtime settings for the accounts server.
//
// Fields:
//   - Store: backend selection and its connection settings.
//   - GRPCAddr / HTTPAddr: bind addresses; an empty HTTPAddr disables HTTP.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the
//     default outside development.
//   - AccessTokenTTL: lifetime of issued access tokens.
//   - HashScheme: sha256 (store file compatible) or argon2id.
type Config struct {
	Store          repomanager.Options
	GRPCAddr       string        `env:"GRPC_ADDR"`
	HTTPAddr       string        `env:"HTTP_ADDR"`
	SecretKey      string        `env:"SECRET_KEY"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL"`
	HashScheme     string        `env:"HASH_SCHEME"`
	LogLevel       string        `env:"LOG_LEVEL"`
	LogFormat      string        `env:"LOG_FORMAT"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Store = repomanager.DefaultOptions()
	c.GRPCAddr = ":50051"
	c.HTTPAddr = ":8080"
	c.SecretKey = "secretKey"
	c.AccessTokenTTL = 15 * time.Minute
	c.HashScheme = cryptox.SchemeSHA256
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then the environment, then the remaining flags in args.
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
