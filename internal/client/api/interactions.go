package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/notehub/internal/client/models"
)

func (a *API) Comments(ctx context.Context, noteID string) ([]models.Comment, error) {
	p, err := notePath(noteID, "comments")
	if err != nil {
		return nil, err
	}
	out := []models.Comment{}
	if err := a.get(ctx, p, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) AddComment(ctx context.Context, noteID string, c models.NewComment) (*models.Comment, error) {
	p, err := notePath(noteID, "comments")
	if err != nil {
		return nil, err
	}
	if err := models.Validate(c); err != nil {
		return nil, err
	}
	var out models.Comment
	if err := a.post(ctx, p, c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reactions returns the reaction counts of a note.
func (a *API) Reactions(ctx context.Context, noteID string) (models.Reactions, error) {
	p, err := notePath(noteID, "react")
	if err != nil {
		return nil, err
	}
	out := models.Reactions{}
	if err := a.get(ctx, p, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// React toggles the caller's reaction of the given kind.
func (a *API) React(ctx context.Context, noteID, kind string) error {
	p, err := notePath(noteID, "react")
	if err != nil {
		return err
	}
	if kind == "" {
		return &models.ValidationError{Field: "reaction_type", Reason: "is required"}
	}
	return a.post(ctx, p, map[string]string{"reaction_type": kind}, nil)
}

func (a *API) Collaborators(ctx context.Context, noteID string) ([]models.Collaborator, error) {
	p, err := notePath(noteID, "collaborators")
	if err != nil {
		return nil, err
	}
	out := []models.Collaborator{}
	if err := a.get(ctx, p, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) AddCollaborator(ctx context.Context, noteID string, c models.NewCollaborator) error {
	p, err := notePath(noteID, "collaborators")
	if err != nil {
		return err
	}
	if err := models.Validate(c); err != nil {
		return err
	}
	return a.post(ctx, p, c, nil)
}

func (a *API) Bookmark(ctx context.Context, noteID string) error {
	p, err := notePath(noteID, "bookmark")
	if err != nil {
		return err
	}
	return a.post(ctx, p, nil, nil)
}

func (a *API) Unbookmark(ctx context.Context, noteID string) error {
	p, err := notePath(noteID, "bookmark")
	if err != nil {
		return err
	}
	return a.send(ctx, http.MethodDelete, p, nil, nil)
}
