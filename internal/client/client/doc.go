// Package client is the remote side of the credential store for the CLI.
//
// GRPCClient talks to the accounts server over gRPC. It keeps the access
// token returned by a successful login, attaches it to every call through
// a unary interceptor, and maps gRPC status codes back to the sentinel
// errors of the credentials package, so callers handle a remote store the
// same way as a local one.
//
// Transport conditions are exposed as ErrUnavailable and ErrUnauthorized.
package client
