// Package cli provides the interactive messenger command-line client.
//
// It wires configuration, the gRPC API client and a REPL. A background
// watcher pings the server and shows whether it is reachable.
//
// Commands:
//   - register / login / logout
//   - users, me
//   - inbox, outbox, send, show
//
// The REPL is started via App.Run, which blocks until the user exits.
package cli
