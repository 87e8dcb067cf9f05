package models

import (
	"encoding/json"
	"time"
)

// OCRStatus is the backend-owned processing state of a note's source file.
// The client only ever reads it.
type OCRStatus string

const (
	OCRPending    OCRStatus = "pending"
	OCRProcessing OCRStatus = "processing"
	OCRCompleted  OCRStatus = "completed"
	OCRFailed     OCRStatus = "failed"
)

// Terminal reports whether the backend will not change the status again.
func (s OCRStatus) Terminal() bool {
	return s == OCRCompleted || s == OCRFailed
}

// Owner references a user by username.
type Owner struct {
	Username string `json:"username"`
}

// Tag is keyed by Name. NotesCount is only filled by ranking endpoints.
type Tag struct {
	Name       string `json:"name"`
	NotesCount int    `json:"notes_count,omitempty"`
}

// UnmarshalJSON accepts both {"name": "..."} and a bare "name" string;
// older endpoints return tags as plain strings.
func (t *Tag) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		*t = Tag{Name: name}
		return nil
	}
	type plain Tag
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*t = Tag(p)
	return nil
}

// Note is a user-submitted document plus its metadata.
type Note struct {
	PublicID       string         `json:"public_id"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Owner          Owner          `json:"owner"`
	IsPublic       bool           `json:"is_public"`
	CreatedAt      time.Time      `json:"created_at"`
	Tags           []Tag          `json:"tags"`
	CourseCode     string         `json:"course_code,omitempty"`
	OCRStatus      OCRStatus      `json:"ocr_status"`
	HasMarkdown    bool           `json:"has_markdown"`
	ReactionCounts map[string]int `json:"reaction_counts,omitempty"`
	CommentCount   int            `json:"comment_count"`
}

// HasTag reports whether the note carries a tag with exactly this name.
func (n *Note) HasTag(name string) bool {
	for _, t := range n.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// TagNames returns the note's tag names in order.
func (n *Note) TagNames() []string {
	names := make([]string, len(n.Tags))
	for i, t := range n.Tags {
		names[i] = t.Name
	}
	return names
}

type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    Owner     `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

type Collaborator struct {
	Username string    `json:"username"`
	Role     string    `json:"role,omitempty"`
	AddedAt  time.Time `json:"added_at,omitempty"`
}

// Reactions maps a reaction kind ("like", "helpful", ...) to its count.
type Reactions map[string]int

// NoteDetail is everything the note detail view shows.
type NoteDetail struct {
	Note          *Note
	Comments      []Comment
	Reactions     Reactions
	Collaborators []Collaborator
}

// NoteUpdate is the body of PUT /notes/{id}. Nil fields are left unchanged.
type NoteUpdate struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// DownloadKind selects which representation of a note to download.
type DownloadKind string

const (
	DownloadOriginal DownloadKind = "original"
	DownloadMarkdown DownloadKind = "markdown"
)

// Valid reports whether k is a known download kind.
func (k DownloadKind) Valid() bool {
	return k == DownloadOriginal || k == DownloadMarkdown
}

// NoteUpload is the metadata part of POST /notes. The file travels as a
// separate multipart part.
type NoteUpload struct {
	Title       string `validate:"required,max=255"`
	Description string `validate:"max=5000"`
	IsPublic    bool
}

// Download is a fetched note file.
type Download struct {
	FileName    string
	ContentType string
	Data        []byte
}

// NewComment is the body of POST /notes/{id}/comments.
type NewComment struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// NewCollaborator is the body of POST /notes/{id}/collaborators.
type NewCollaborator struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=viewer editor"`
}
