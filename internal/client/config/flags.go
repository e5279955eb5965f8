package config

import (
	"flag"
	"fmt"

	"github.com/dmitrijs2005/mrtrade/internal/flagx"
	"github.com/dmitrijs2005/mrtrade/internal/repositories/repomanager"
	"github.com/dmitrijs2005/mrtrade/internal/snapshot"
)

// parseFlags populates cfg from the flags in args it knows about. Others
// are dropped with flagx.FilterArgs so they cannot make parsing fail.
func parseFlags(cfg *Config, args []string) error {
	allowed := []string{"-a", "-x", "-v"}
	allowed = append(allowed, repomanager.FlagNames...)
	allowed = append(allowed, snapshot.FlagNames...)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "address and port of the accounts server")
	fs.StringVar(&cfg.HashScheme, "x", cfg.HashScheme, "password hash scheme")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	cfg.Store.RegisterFlags(fs)
	cfg.Snapshot.RegisterFlags(fs)

	if err := fs.Parse(flagx.FilterArgs(args, allowed...)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
