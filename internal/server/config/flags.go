package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mrtrade/internal/flagx"
	"github.com/dmitrijs2005/mrtrade/internal/repositories/repomanager"
)

var serverFlags = []string{"-a", "-w", "-s", "-t", "-x", "-v"}

// parseFlags applies the server flags found in args.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g. ":50051")
//	-w string   HTTP bind address, empty disables the HTTP API
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-x string   hash scheme: sha256 or argon2id
//	-v string   log level: debug, info, warn, error
//
// plus the store flags of repomanager.Options.RegisterFlags. Other flags
// are filtered out with flagx.FilterArgs.
func parseFlags(config *Config, args []string) error {
	allowed := append(append([]string{}, serverFlags...), repomanager.FlagNames...)
	filtered := flagx.FilterArgs(args, allowed...)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.GRPCAddr, "a", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.HTTPAddr, "w", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	ttl := fs.Int("t", int(config.AccessTokenTTL.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&config.HashScheme, "x", config.HashScheme, "password hash scheme")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	config.Store.RegisterFlags(fs)

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenTTL = time.Duration(*ttl) * time.Minute
		}
	})
	return nil
}
