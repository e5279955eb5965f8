package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// EnvPrefix is shared with the server, e.g. MRTRADE_SERVER_ADDR.
const EnvPrefix = "MRTRADE_"

func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
