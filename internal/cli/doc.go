// Package cli provides the interactive tripquote command-line client.
//
// It wires configuration, the SQLite state, the quote and library stores, the
// remote sync collaborator and an interactive REPL. Typical flow: open the
// database, run a background sync of stale channels, then execute user
// commands until exit.
//
// Key features:
//   - Quotes: new / open / show / set / save, itinerary items and tags
//   - Library: list, add, edit and remove master data; itinerary templates
//   - Proposal preview as text and export as PDF, locally or to S3
//   - Remote sync of the shared library and templates
//   - Backups of the whole database, plain or sealed with a passphrase
//   - Itinerary suggestions from a language model
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
