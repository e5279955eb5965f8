package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/mrtrade/internal/flagx"
	"github.com/dmitrijs2005/mrtrade/internal/repositories/repomanager"
	"github.com/dmitrijs2005/mrtrade/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations
// use timex.Duration so both "15m" and nanosecond integers parse.
type JsonConfig struct {
	repomanager.Options
	GRPCAddr       string         `json:"grpc_addr"`
	HTTPAddr       string         `json:"http_addr"`
	SecretKey      string         `json:"secret_key"`
	AccessTokenTTL timex.Duration `json:"access_token_ttl"`
	HashScheme     string         `json:"hash_scheme"`
	LogLevel       string         `json:"log_level"`
	LogFormat      string         `json:"log_format"`
}

// parseJson overlays the file named by -c/-config onto config. Keys absent
// from the file keep their current values.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := JsonConfig{
		Options:        config.Store,
		GRPCAddr:       config.GRPCAddr,
		HTTPAddr:       config.HTTPAddr,
		SecretKey:      config.SecretKey,
		AccessTokenTTL: timex.Duration{Duration: config.AccessTokenTTL},
		HashScheme:     config.HashScheme,
		LogLevel:       config.LogLevel,
		LogFormat:      config.LogFormat,
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	config.Store = c.Options
	config.GRPCAddr = c.GRPCAddr
	config.HTTPAddr = c.HTTPAddr
	config.SecretKey = c.SecretKey
	config.AccessTokenTTL = c.AccessTokenTTL.Duration
	config.HashScheme = c.HashScheme
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
	return nil
}
