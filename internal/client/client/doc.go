// Package client talks to the messenger server over gRPC.
//
// GRPCClient keeps the session token returned by Register/Login and attaches
// it to every call through a unary interceptor. gRPC status codes are mapped
// to the sentinel errors in errors.go so callers can match them with
// errors.Is.
package client
