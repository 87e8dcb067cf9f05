package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/notehub/internal/logging"
	"github.com/dmitrijs2005/notehub/internal/metrics"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request UUID for server-side correlation.
const RequestIDHeader = "X-Request-ID"

// HTTPClient issues requests against the REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	log     logging.Logger
	metrics *metrics.Collector
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets a whole-request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

// NewHTTPClient builds a client for baseURL (e.g. "https://host/api/v1").
// tokens may be nil, in which case no Authorization header is ever sent.
func NewHTTPClient(baseURL string, tokens TokenStore, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("component", "http")
	return c
}

// Tokens exposes the store the client reads the bearer token from.
func (c *HTTPClient) Tokens() TokenStore { return c.tokens }

// RequestOptions describes one call. A nil *RequestOptions means a plain GET.
//
// Body is sent as-is when it is []byte or io.Reader and JSON-encoded
// otherwise. Header entries override the default Content-Type.
type RequestOptions struct {
	Method string
	Header http.Header
	Query  url.Values
	Body   any
}

// Request performs a call against path and returns the response body.
func (c *HTTPClient) Request(ctx context.Context, path string, opts *RequestOptions) (*Body, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		c.log.Error(ctx, "encode request body", "method", method, "path", path, "error", err)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, opts.Query), body)
	if err != nil {
		c.log.Error(ctx, "build request", "method", method, "path", path, "error", err)
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, vs := range opts.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	return c.do(ctx, req)
}

// FormField is a plain multipart field.
type FormField struct {
	Name  string
	Value string
}

// FormFile is a multipart file part.
type FormFile struct {
	Field    string
	FileName string
	Content  io.Reader
}

// Form is the payload of RequestMultipart.
type Form struct {
	Fields []FormField
	Files  []FormFile
}

// RequestMultipart POSTs form as multipart/form-data. The Content-Type,
// including its boundary, comes from the multipart writer; callers cannot
// set it.
func (c *HTTPClient) RequestMultipart(ctx context.Context, path string, form Form) (*Body, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := writeForm(mw, form); err != nil {
		c.log.Error(ctx, "encode multipart body", "path", path, "error", err)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), &buf)
	if err != nil {
		c.log.Error(ctx, "build request", "method", http.MethodPost, "path", path, "error", err)
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(ctx, req)
}

func writeForm(mw *multipart.Writer, form Form) error {
	for _, f := range form.Fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}
	for _, f := range form.Files {
		part, err := mw.CreateFormFile(f.Field, f.FileName)
		if err != nil {
			return fmt.Errorf("create file part %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return fmt.Errorf("copy file %s: %w", f.FileName, err)
		}
	}
	return mw.Close()
}

func (c *HTTPClient) url(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) == 0 {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + query.Encode()
}

func encodeBody(v any) (io.Reader, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case io.Reader:
		return b, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}

// do attaches auth and tracing headers, sends req and classifies the result.
func (c *HTTPClient) do(ctx context.Context, req *http.Request) (*Body, error) {
	if c.tokens != nil {
		token, err := c.tokens.Get(ctx)
		if err != nil {
			err = fmt.Errorf("read token: %w", err)
			c.log.Error(ctx, "request aborted", "method", req.Method, "url", req.URL.String(), "error", err)
			return nil, err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())

	log := c.log.With("method", req.Method, "url", req.URL.String(), "request_id", req.Header.Get(RequestIDHeader))
	log.Debug(ctx, "sending request")

	done := c.metrics.Start(req.Method)
	resp, err := c.http.Do(req)
	if err != nil {
		done(0)
		nerr := &NetworkError{Method: req.Method, URL: req.URL.String(), Err: err}
		log.Error(ctx, "request failed", "error", nerr)
		return nil, nerr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	done(resp.StatusCode)
	if err != nil {
		nerr := &NetworkError{Method: req.Method, URL: req.URL.String(), Err: fmt.Errorf("read body: %w", err)}
		log.Error(ctx, "request failed", "status", resp.StatusCode, "error", nerr)
		return nil, nerr
	}

	body := &Body{
		Status: resp.StatusCode,
		Header: resp.Header,
		Raw:    raw,
		IsJSON: isJSONContentType(resp.Header.Get("Content-Type")),
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		herr := &HTTPError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw, body.IsJSON)}
		log.Error(ctx, "request failed", "status", resp.StatusCode, "error", herr)
		return nil, herr
	}

	if body.IsJSON && len(bytes.TrimSpace(raw)) > 0 && !json.Valid(raw) {
		merr := fmt.Errorf("%w: invalid JSON from %s %s", ErrMalformedBody, req.Method, req.URL.Path)
		log.Error(ctx, "request failed", "status", resp.StatusCode, "error", merr)
		return nil, merr
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "bytes", len(raw))
	return body, nil
}
