package repomanager

import "flag"

// FlagNames lists the flags RegisterFlags defines, for flagx.FilterArgs.
var FlagNames = []string{"-b", "-f", "-p", "-q", "-d", "-r"}

// RegisterFlags binds the store options to fs, using the current values
// as defaults.
func (o *Options) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.Backend, "b", o.Backend, "store backend: file, sqlite, postgres or redis")
	fs.StringVar(&o.FilePath, "f", o.FilePath, "users JSON file (file backend)")
	fs.StringVar(&o.LoadPolicy, "p", o.LoadPolicy, "unreadable file policy: reset, backup or fail")
	fs.StringVar(&o.SQLitePath, "q", o.SQLitePath, "SQLite database path (sqlite backend)")
	fs.StringVar(&o.DatabaseDSN, "d", o.DatabaseDSN, "PostgreSQL DSN (postgres backend)")
	fs.StringVar(&o.RedisURL, "r", o.RedisURL, "Redis URL (redis backend)")
}
