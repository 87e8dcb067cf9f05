// Package models defines the data exchanged with the NoteHub API and the
// value objects the query engine works on: Note, Tag, User, Course,
// SearchQuery, Page and SearchResult.
package models
