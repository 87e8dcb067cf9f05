package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/notehub/internal/client/client"
	"github.com/dmitrijs2005/notehub/internal/logging"
)

// BookmarkAPI is the subset of the API used by BookmarkService.
type BookmarkAPI interface {
	Bookmark(ctx context.Context, noteID string) error
	Unbookmark(ctx context.Context, noteID string) error
}

// alreadyBookmarked is matched case-insensitively against the server's
// error message. The server offers no other way to read the current state.
const alreadyBookmarked = "already bookmarked"

type BookmarkService struct {
	api BookmarkAPI
	log logging.Logger
}

func NewBookmarkService(api BookmarkAPI, log logging.Logger) *BookmarkService {
	if log == nil {
		log = logging.Nop()
	}
	return &BookmarkService{api: api, log: log}
}

// Toggle bookmarks noteID, or removes the bookmark when the server reports
// it already exists. It returns the resulting state. Concurrent toggles of
// the same note are not coalesced.
func (s *BookmarkService) Toggle(ctx context.Context, noteID string) (bookmarked bool, err error) {
	err = s.api.Bookmark(ctx, noteID)
	if err == nil {
		return true, nil
	}
	if !isAlreadyBookmarked(err) {
		return false, err
	}

	s.log.Debug(ctx, "note already bookmarked, removing", "note", noteID)
	if err := s.api.Unbookmark(ctx, noteID); err != nil {
		return true, err
	}
	return false, nil
}

func isAlreadyBookmarked(err error) bool {
	var herr *client.HTTPError
	if !errors.As(err, &herr) {
		return false
	}
	return strings.Contains(strings.ToLower(herr.Message), alreadyBookmarked)
}
