// Package cli provides the interactive MR Trade command-line client.
//
// It wires configuration, the credential store (local or remote through
// the accounts server) and an interactive REPL. Typical flow: prompt for
// credentials, then execute user commands until exit.
//
// Key features:
//   - Login / Logout
//   - Signup over three steps with a live password strength check
//   - Forgot password (simulated reset link)
//   - Profile of the logged-in user
//   - Backup / Restore of the local store to an S3 bucket
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
