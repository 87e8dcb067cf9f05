package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/notehub/internal/client/client"
	"github.com/dmitrijs2005/notehub/internal/client/models"
)

// ListNotes fetches one page of public notes.
func (a *API) ListNotes(ctx context.Context, page, perPage int) (*models.SearchResult[models.Note], error) {
	if page < 1 {
		return nil, &models.ValidationError{Field: "Page", Reason: "must be at least 1"}
	}
	if perPage <= 0 {
		return nil, &models.ValidationError{Field: "PerPage", Reason: "must be greater than 0"}
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var res models.SearchResult[models.Note]
	if err := a.get(ctx, "/notes", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Search calls the server-side search endpoint with pre-built parameters.
func (a *API) Search(ctx context.Context, params url.Values) (*models.SearchResult[models.Note], error) {
	var res models.SearchResult[models.Note]
	if err := a.get(ctx, "/notes/search", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (a *API) GetNote(ctx context.Context, id string) (*models.Note, error) {
	p, err := notePath(id)
	if err != nil {
		return nil, err
	}
	var n models.Note
	if err := a.get(ctx, p, nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateNote uploads a new note. content is read fully into the request.
func (a *API) CreateNote(ctx context.Context, meta models.NoteUpload, fileName string, content io.Reader) (*models.Note, error) {
	if err := models.Validate(meta); err != nil {
		return nil, err
	}
	if fileName == "" || content == nil {
		return nil, &models.ValidationError{Field: "file", Reason: "is required"}
	}

	form := client.Form{
		Fields: []client.FormField{
			{Name: "title", Value: meta.Title},
			{Name: "description", Value: meta.Description},
			{Name: "is_public", Value: strconv.FormatBool(meta.IsPublic)},
		},
		Files: []client.FormFile{{Field: "file", FileName: fileName, Content: content}},
	}
	body, err := a.c.RequestMultipart(ctx, "/notes", form)
	if err != nil {
		return nil, err
	}
	var n models.Note
	if err := decode(body, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (a *API) UpdateNote(ctx context.Context, id string, upd models.NoteUpdate) (*models.Note, error) {
	p, err := notePath(id)
	if err != nil {
		return nil, err
	}
	if err := models.Validate(upd); err != nil {
		return nil, err
	}
	var n models.Note
	if err := a.send(ctx, http.MethodPut, p, upd, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (a *API) DeleteNote(ctx context.Context, id string) error {
	p, err := notePath(id)
	if err != nil {
		return err
	}
	return a.send(ctx, http.MethodDelete, p, nil, nil)
}

// Markdown returns the OCR-generated Markdown of a note. The endpoint may
// answer with {"markdown": "..."} or with the text itself.
func (a *API) Markdown(ctx context.Context, id string) (string, error) {
	p, err := notePath(id, "markdown")
	if err != nil {
		return "", err
	}
	body, err := a.c.Request(ctx, p, nil)
	if err != nil {
		return "", err
	}
	if !body.IsJSON {
		return body.String(), nil
	}

	var s string
	if json.Unmarshal(body.Raw, &s) == nil {
		return s, nil
	}
	var payload struct {
		Markdown *string `json:"markdown"`
		Content  *string `json:"content"`
	}
	if err := body.Decode(&payload); err != nil {
		return "", err
	}
	switch {
	case payload.Markdown != nil:
		return *payload.Markdown, nil
	case payload.Content != nil:
		return *payload.Content, nil
	}
	return "", fmt.Errorf("%w: no markdown field", client.ErrMalformedBody)
}

// Download fetches the original file or the Markdown rendition of a note.
func (a *API) Download(ctx context.Context, id string, kind models.DownloadKind) (*models.Download, error) {
	if !kind.Valid() {
		return nil, &models.ValidationError{Field: "kind", Reason: "must be original or markdown"}
	}
	p, err := notePath(id, "download", string(kind))
	if err != nil {
		return nil, err
	}
	body, err := a.c.Request(ctx, p, nil)
	if err != nil {
		return nil, err
	}
	return &models.Download{
		FileName:    body.Filename(),
		ContentType: body.Header.Get("Content-Type"),
		Data:        body.Raw,
	}, nil
}
