package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/mrtrade/internal/flagx"
	"github.com/dmitrijs2005/mrtrade/internal/repositories/repomanager"
	"github.com/dmitrijs2005/mrtrade/internal/snapshot"
)

// Aliases give the two embedded option structs distinct field names.
type (
	StoreOptions    = repomanager.Options
	SnapshotOptions = snapshot.Options
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Store and
// snapshot keys sit at the top level.
type JsonConfig struct {
	StoreOptions
	SnapshotOptions
	ServerAddress string `json:"server_addr"`
	HashScheme    string `json:"hash_scheme"`
	LogLevel      string `json:"log_level"`
	LogFormat     string `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c/-config, if any. Keys
// missing from the file keep their current values.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	jc := JsonConfig{
		StoreOptions:    cfg.Store,
		SnapshotOptions: cfg.Snapshot,
		ServerAddress:   cfg.ServerAddress,
		HashScheme:      cfg.HashScheme,
		LogLevel:        cfg.LogLevel,
		LogFormat:       cfg.LogFormat,
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.ServerAddress = jc.ServerAddress
	cfg.Store = jc.StoreOptions
	cfg.Snapshot = jc.SnapshotOptions
	cfg.HashScheme = jc.HashScheme
	cfg.LogLevel = jc.LogLevel
	cfg.LogFormat = jc.LogFormat
	return nil
}
