// Package cli provides the interactive Shelf command-line client.
//
// It wires configuration, the persisted session, the local metadata cache,
// the HTTP API client and the document viewer into an interactive REPL.
// Typical flow: restore the previous session (or log in), then manage and
// read documents.
//
// Key features:
//   - Register / Login / Logout with a session that survives restarts
//   - List, upload, download and delete documents
//   - View document pages rendered to PNG files
//   - Inspect the subscription and pay for a plan via mobile money
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
