package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brainpin/domain/links"
	apperrors "brainpin/pkg/errors"
)

type mockLinkService struct {
	mock.Mock
}

func (m *mockLinkService) List(ctx context.Context) ([]links.Link, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]links.Link), args.Error(1)
}

func (m *mockLinkService) Get(ctx context.Context, id string) (links.Link, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(links.Link), args.Error(1)
}

func (m *mockLinkService) Create(ctx context.Context, payload links.LinkPayload) (links.Link, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(links.Link), args.Error(1)
}

func (m *mockLinkService) Update(ctx context.Context, id string, patch links.LinkPatch) (links.Link, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(links.Link), args.Error(1)
}

func (m *mockLinkService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLinkService) CreateSublink(ctx context.Context, linkID string, payload links.SublinkPayload) (links.Link, error) {
	args := m.Called(ctx, linkID, payload)
	return args.Get(0).(links.Link), args.Error(1)
}

func (m *mockLinkService) UpdateSublink(ctx context.Context, linkID, sublinkID string, patch links.SublinkPatch) (links.Link, error) {
	args := m.Called(ctx, linkID, sublinkID, patch)
	return args.Get(0).(links.Link), args.Error(1)
}

func (m *mockLinkService) DeleteSublink(ctx context.Context, linkID, sublinkID string) (links.Link, error) {
	args := m.Called(ctx, linkID, sublinkID)
	return args.Get(0).(links.Link), args.Error(1)
}

func linkTestRouter(svc LinkService) *chi.Mux {
	h := NewLinkHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/links", h.ListLinks)
	r.Post("/links", h.CreateLink)
	r.Get("/links/{linkID}", h.GetLink)
	r.Put("/links/{linkID}", h.UpdateLink)
	r.Delete("/links/{linkID}", h.DeleteLink)
	r.Post("/links/{linkID}/sublinks", h.CreateSublink)
	r.Delete("/links/{linkID}/sublinks/{sublinkID}", h.DeleteSublink)
	return r
}

func TestListLinks_Envelope(t *testing.T) {
	svc := new(mockLinkService)
	svc.On("List", mock.Anything).Return([]links.Link{
		{ID: "lnk-1", Name: "News", URL: "https://example.com", CategoryIDs: []string{"cat-1"}, Sublinks: []links.Sublink{}},
	}, nil)

	rec := httptest.NewRecorder()
	linkTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/links", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]links.Link
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body["links"], 1)
	assert.Equal(t, "lnk-1", body["links"][0].ID)
}

func TestCreateLink_Created(t *testing.T) {
	svc := new(mockLinkService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(p links.LinkPayload) bool {
		return p.Name == "News" && len(p.CategoryIDs) == 1
	})).Return(links.Link{ID: "lnk-1", Name: "News", URL: "https://example.com", CategoryIDs: []string{"cat-1"}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/links",
		strings.NewReader(`{"name":"News","url":"https://example.com","categoryIds":["cat-1"]}`))
	rec := httptest.NewRecorder()
	linkTestRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]links.Link
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "lnk-1", body["link"].ID)
}

func TestCreateLink_MissingFieldsRejectedBeforeService(t *testing.T) {
	svc := new(mockLinkService)

	req := httptest.NewRequest(http.MethodPost, "/links", strings.NewReader(`{"name":"News"}`))
	rec := httptest.NewRecorder()
	linkTestRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "url is required")
}

func TestGetLink_NotFound(t *testing.T) {
	svc := new(mockLinkService)
	svc.On("Get", mock.Anything, "lnk-404").Return(links.Link{}, apperrors.NewNotFoundError("Link"))

	rec := httptest.NewRecorder()
	linkTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/links/lnk-404", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Link not found", body["message"])
}

func TestDeleteLink_NoContent(t *testing.T) {
	svc := new(mockLinkService)
	svc.On("Delete", mock.Anything, "lnk-1").Return(nil)

	rec := httptest.NewRecorder()
	linkTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/links/lnk-1", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestCreateSublink_ReturnsParentLink(t *testing.T) {
	svc := new(mockLinkService)
	parent := links.Link{ID: "lnk-1", Name: "News", URL: "https://example.com",
		CategoryIDs: []string{"cat-1"},
		Sublinks:    []links.Sublink{{ID: "sln-1", Name: "Docs", URL: "https://example.com/docs"}}}
	svc.On("CreateSublink", mock.Anything, "lnk-1", mock.Anything).Return(parent, nil)

	req := httptest.NewRequest(http.MethodPost, "/links/lnk-1/sublinks",
		strings.NewReader(`{"name":"Docs","url":"https://example.com/docs"}`))
	rec := httptest.NewRecorder()
	linkTestRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]links.Link
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body["link"].Sublinks, 1)
}

func TestDeleteSublink_Conflict(t *testing.T) {
	svc := new(mockLinkService)
	svc.On("DeleteSublink", mock.Anything, "lnk-1", "sln-404").
		Return(links.Link{}, apperrors.NewNotFoundError("Sublink"))

	rec := httptest.NewRecorder()
	linkTestRouter(svc).ServeHTTP(rec,
		httptest.NewRequest(http.MethodDelete, "/links/lnk-1/sublinks/sln-404", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
