// Package client is the typed REST client for the BrainPin backend. It owns
// the wire contract: JSON envelopes, the error body shape, and the defensive
// normalization of loosely-typed responses into domain values.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"brainpin/domain/links"
	apperrors "brainpin/pkg/errors"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8080"

// Client talks to the backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger attaches a logger for request-level debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the given base URL. A trailing slash is stripped;
// an empty base URL falls back to DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire envelopes. Every successful response wraps its payload in a single
// named field; a missing field is a format error, not an empty result.

type linkEnvelope struct {
	Link *links.RawLink `json:"link"`
}

type linksEnvelope struct {
	Links []links.RawLink `json:"links"`
}

type categoryEnvelope struct {
	Category *links.RawCategory `json:"category"`
}

type categoriesEnvelope struct {
	Categories []links.RawCategory `json:"categories"`
}

type errorBody struct {
	Message string `json:"message"`
}

// ListLinks fetches every link.
func (c *Client) ListLinks(ctx context.Context) ([]links.Link, error) {
	var env linksEnvelope
	if err := c.do(ctx, http.MethodGet, "/links", nil, &env); err != nil {
		return nil, err
	}
	if env.Links == nil {
		return nil, apperrors.NewFormatError("response is missing 'links'")
	}
	return normalizeLinks(env.Links)
}

// GetLink fetches a single link by id.
func (c *Client) GetLink(ctx context.Context, id string) (links.Link, error) {
	var env linkEnvelope
	if err := c.do(ctx, http.MethodGet, "/links/"+url.PathEscape(id), nil, &env); err != nil {
		return links.Link{}, err
	}
	return normalizeLinkEnvelope(env)
}

// CreateLink creates a link and returns the authoritative server copy.
func (c *Client) CreateLink(ctx context.Context, payload links.LinkPayload) (links.Link, error) {
	var env linkEnvelope
	if err := c.do(ctx, http.MethodPost, "/links", payload, &env); err != nil {
		return links.Link{}, err
	}
	return normalizeLinkEnvelope(env)
}

// UpdateLink applies a partial update and returns the updated link.
func (c *Client) UpdateLink(ctx context.Context, id string, patch links.LinkPatch) (links.Link, error) {
	var env linkEnvelope
	if err := c.do(ctx, http.MethodPut, "/links/"+url.PathEscape(id), patch, &env); err != nil {
		return links.Link{}, err
	}
	return normalizeLinkEnvelope(env)
}

// DeleteLink removes a link.
func (c *Client) DeleteLink(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/links/"+url.PathEscape(id), nil, nil)
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]links.Category, error) {
	var env categoriesEnvelope
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &env); err != nil {
		return nil, err
	}
	if env.Categories == nil {
		return nil, apperrors.NewFormatError("response is missing 'categories'")
	}
	out := make([]links.Category, 0, len(env.Categories))
	for _, raw := range env.Categories {
		category, err := raw.Normalize()
		if err != nil {
			return nil, err
		}
		out = append(out, category)
	}
	return out, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, payload links.CategoryPayload) (links.Category, error) {
	var env categoryEnvelope
	if err := c.do(ctx, http.MethodPost, "/categories", payload, &env); err != nil {
		return links.Category{}, err
	}
	return normalizeCategoryEnvelope(env)
}

// UpdateCategory applies a partial category update.
func (c *Client) UpdateCategory(ctx context.Context, id string, patch links.CategoryPatch) (links.Category, error) {
	var env categoryEnvelope
	if err := c.do(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), patch, &env); err != nil {
		return links.Category{}, err
	}
	return normalizeCategoryEnvelope(env)
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
}

// CreateSublink adds a sublink and returns the entire updated parent link,
// mirroring the server-side denormalization.
func (c *Client) CreateSublink(ctx context.Context, linkID string, payload links.SublinkPayload) (links.Link, error) {
	var env linkEnvelope
	path := "/links/" + url.PathEscape(linkID) + "/sublinks"
	if err := c.do(ctx, http.MethodPost, path, payload, &env); err != nil {
		return links.Link{}, err
	}
	return normalizeLinkEnvelope(env)
}

// UpdateSublink updates a sublink and returns the updated parent link.
func (c *Client) UpdateSublink(ctx context.Context, linkID, sublinkID string, patch links.SublinkPatch) (links.Link, error) {
	var env linkEnvelope
	path := "/links/" + url.PathEscape(linkID) + "/sublinks/" + url.PathEscape(sublinkID)
	if err := c.do(ctx, http.MethodPut, path, patch, &env); err != nil {
		return links.Link{}, err
	}
	return normalizeLinkEnvelope(env)
}

// DeleteSublink removes a sublink and returns the updated parent link.
func (c *Client) DeleteSublink(ctx context.Context, linkID, sublinkID string) (links.Link, error) {
	var env linkEnvelope
	path := "/links/" + url.PathEscape(linkID) + "/sublinks/" + url.PathEscape(sublinkID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &env); err != nil {
		return links.Link{}, err
	}
	return normalizeLinkEnvelope(env)
}

// do performs one request/response cycle. A nil out skips body decoding, as
// does a 204 response.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError("failed to encode request body").WithCause(err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.NewInternalError("failed to build request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("API request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(err, fmt.Sprintf("%s %s failed", method, path))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(resp)
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return apperrors.NewFormatError("response is not JSON")
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewFormatError("unexpected response format").WithCause(err)
	}
	return nil
}

// errorFromResponse maps a non-2xx response to an API error, preferring the
// message the backend reported.
func (c *Client) errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && strings.TrimSpace(body.Message) != "" {
		return apperrors.NewAPIError(resp.StatusCode, body.Message)
	}
	return apperrors.NewAPIError(resp.StatusCode, "")
}

func normalizeLinks(raws []links.RawLink) ([]links.Link, error) {
	out := make([]links.Link, 0, len(raws))
	for _, raw := range raws {
		link, err := raw.Normalize()
		if err != nil {
			return nil, err
		}
		out = append(out, link)
	}
	return out, nil
}

func normalizeLinkEnvelope(env linkEnvelope) (links.Link, error) {
	if env.Link == nil {
		return links.Link{}, apperrors.NewFormatError("response is missing 'link'")
	}
	return env.Link.Normalize()
}

func normalizeCategoryEnvelope(env categoryEnvelope) (links.Category, error) {
	if env.Category == nil {
		return links.Category{}, apperrors.NewFormatError("response is missing 'category'")
	}
	return env.Category.Normalize()
}
