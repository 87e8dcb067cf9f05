package api

import (
	"context"

	"github.com/dmitrijs2005/notehub/internal/client/models"
)

func userPath(username string, rest string) (string, error) {
	seg, err := segment("username", username)
	if err != nil {
		return "", err
	}
	p := "/users/" + seg
	if rest != "" {
		p += "/" + rest
	}
	return p, nil
}

func (a *API) Profile(ctx context.Context, username string) (*models.Profile, error) {
	p, err := userPath(username, "")
	if err != nil {
		return nil, err
	}
	var out models.Profile
	if err := a.get(ctx, p, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Follow(ctx context.Context, username string) error {
	p, err := userPath(username, "follow")
	if err != nil {
		return err
	}
	return a.post(ctx, p, nil, nil)
}

func (a *API) Unfollow(ctx context.Context, username string) error {
	p, err := userPath(username, "unfollow")
	if err != nil {
		return err
	}
	return a.post(ctx, p, nil, nil)
}

// Recommendations returns users the server suggests following.
func (a *API) Recommendations(ctx context.Context) ([]models.Profile, error) {
	out := []models.Profile{}
	if err := a.get(ctx, "/users/recommendations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
