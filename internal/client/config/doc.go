// Package config loads runtime configuration for the MR Trade CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. MRTRADE_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the accounts server; empty works on the local store
//	-x string   password hash scheme for new accounts: sha256 or argon2id
//	-v string   log level
//
// plus the store flags (-b -f -p -q -d -r) and the snapshot bucket flags
// (-s3-bucket -s3-prefix -s3-region -s3-endpoint).
//
// # JSON schema
//
//	{
//	  "server_addr": "",
//	  "backend": "file",
//	  "file_path": "users_db.json",
//	  "load_policy": "backup",
//	  "s3_bucket": "mrtrade",
//	  "hash_scheme": "sha256",
//	  "log_level": "warn"
//	}
package config
