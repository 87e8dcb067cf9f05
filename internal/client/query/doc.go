// Package query turns a models.SearchQuery into a models.Page of notes.
//
// The same rules apply whether the server answers the query (Engine.Remote)
// or an already-fetched snapshot does (Engine.Local):
//
//   - Filter keeps notes matching every predicate of the query.
//   - Sort orders them stably by the query's sort key.
//   - Paginate slices one page and computes the page-selector metadata.
//
// Browser keeps the state of one interactive search session on top of an
// Engine.
package query
