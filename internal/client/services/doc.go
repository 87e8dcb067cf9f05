// Package services contains the application services the CLI drives:
// session handling, bookmarks, the social graph, note detail and upload,
// the offline catalog and exports. Each service depends on a narrow
// interface over the API so tests can substitute fakes.
package services
