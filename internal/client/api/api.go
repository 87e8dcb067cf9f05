// Package api exposes one method per NoteHub REST endpoint. Every method is
// a thin wrapper over the HTTP client core: it validates its arguments,
// shapes the request and decodes the response. Errors from the core are
// returned unchanged.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/notehub/internal/client/client"
	"github.com/dmitrijs2005/notehub/internal/client/models"
)

// Requester is the part of *client.HTTPClient the API needs.
type Requester interface {
	Request(ctx context.Context, path string, opts *client.RequestOptions) (*client.Body, error)
	RequestMultipart(ctx context.Context, path string, form client.Form) (*client.Body, error)
}

// API groups the endpoint wrappers.
type API struct {
	c Requester
}

func New(c Requester) *API {
	return &API{c: c}
}

func (a *API) get(ctx context.Context, path string, query url.Values, out any) error {
	body, err := a.c.Request(ctx, path, &client.RequestOptions{Query: query})
	if err != nil {
		return err
	}
	return decode(body, out)
}

func (a *API) send(ctx context.Context, method, path string, in, out any) error {
	body, err := a.c.Request(ctx, path, &client.RequestOptions{Method: method, Body: in})
	if err != nil {
		return err
	}
	return decode(body, out)
}

func (a *API) post(ctx context.Context, path string, in, out any) error {
	return a.send(ctx, http.MethodPost, path, in, out)
}

// decode fills out from body. A nil out or an empty body is not decoded.
func decode(body *client.Body, out any) error {
	if out == nil || len(strings.TrimSpace(body.String())) == 0 {
		return nil
	}
	return body.Decode(out)
}

// segment escapes one path element, rejecting empty values.
func segment(field, v string) (string, error) {
	if strings.TrimSpace(v) == "" {
		return "", &models.ValidationError{Field: field, Reason: "is required"}
	}
	return url.PathEscape(v), nil
}

func notePath(id string, rest ...string) (string, error) {
	seg, err := segment("id", id)
	if err != nil {
		return "", err
	}
	p := "/notes/" + seg
	if len(rest) > 0 {
		p += "/" + strings.Join(rest, "/")
	}
	return p, nil
}
