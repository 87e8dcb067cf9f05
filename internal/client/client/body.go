package client

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// Body is a successfully received response body.
type Body struct {
	Status int
	Header http.Header
	Raw    []byte
	// IsJSON is set when the response Content-Type is application/json or
	// a +json media type.
	IsJSON bool
}

// Decode unmarshals a JSON body into v.
func (b *Body) Decode(v any) error {
	if !b.IsJSON {
		return fmt.Errorf("%w: expected JSON, got %q", ErrMalformedBody, b.Header.Get("Content-Type"))
	}
	if err := json.Unmarshal(b.Raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}

// String returns the body as text.
func (b *Body) String() string {
	return string(b.Raw)
}

// Filename returns the filename from a Content-Disposition header, if any.
func (b *Body) Filename() string {
	_, params, err := mime.ParseMediaType(b.Header.Get("Content-Disposition"))
	if err != nil {
		return ""
	}
	return params["filename"]
}

func isJSONContentType(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// errorMessage picks the message for a failed response: the JSON "message"
// field, then the raw body text, then a generic status line.
func errorMessage(status int, raw []byte, isJSON bool) string {
	if isJSON {
		var payload struct {
			Message any `json:"message"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			if s, ok := payload.Message.(string); ok && s != "" {
				return s
			}
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}
