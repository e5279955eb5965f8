package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// EnvPrefix is prepended to every variable name, e.g. MRTRADE_GRPC_ADDR.
const EnvPrefix = "MRTRADE_"

// parseEnv overlays MRTRADE_* variables; unset ones leave config alone.
func parseEnv(config *Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
