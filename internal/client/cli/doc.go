// Package cli provides the interactive NoteHub command-line client.
//
// An App wires the session, search browser and feature services into a
// read-eval-print loop. Searches run against the REST API until a catalog
// snapshot is loaded ("sync" or "offline"), after which they are answered
// locally until "online" is issued.
//
// Key features:
//   - Register / Login / Logout, with the session resumed from the local DB
//   - Search with text, tags, course, owner, visibility and sort; paging
//   - Note detail, upload with OCR progress, download/export
//   - Bookmarks, comments, reactions, follows, courses and stats
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
