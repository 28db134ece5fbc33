package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"brainpin/domain/links"
	"brainpin/pkg/utils"
)

// LinkService is the application surface the link handler drives.
type LinkService interface {
	List(ctx context.Context) ([]links.Link, error)
	Get(ctx context.Context, id string) (links.Link, error)
	Create(ctx context.Context, payload links.LinkPayload) (links.Link, error)
	Update(ctx context.Context, id string, patch links.LinkPatch) (links.Link, error)
	Delete(ctx context.Context, id string) error
	CreateSublink(ctx context.Context, linkID string, payload links.SublinkPayload) (links.Link, error)
	UpdateSublink(ctx context.Context, linkID, sublinkID string, patch links.SublinkPatch) (links.Link, error)
	DeleteSublink(ctx context.Context, linkID, sublinkID string) (links.Link, error)
}

// LinkHandler handles link-related HTTP requests
type LinkHandler struct {
	service LinkService
	logger  *zap.Logger
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(service LinkService, logger *zap.Logger) *LinkHandler {
	return &LinkHandler{
		service: service,
		logger:  logger,
	}
}

// CreateLinkRequest represents the request body for creating a link
type CreateLinkRequest struct {
	Name        string           `json:"name" validate:"required"`
	URL         string           `json:"url" validate:"required"`
	CategoryIDs []string         `json:"categoryIds" validate:"required,min=1"`
	Description *string          `json:"description,omitempty"`
	Sublinks    []SublinkRequest `json:"sublinks,omitempty" validate:"omitempty,dive"`
}

// SublinkRequest represents one sublink in a request body
type SublinkRequest struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name" validate:"required"`
	URL         string  `json:"url" validate:"required"`
	Description *string `json:"description,omitempty"`
}

// UpdateLinkRequest represents the request body for a partial link update
type UpdateLinkRequest struct {
	Name        *string           `json:"name,omitempty"`
	URL         *string           `json:"url,omitempty"`
	CategoryIDs *[]string         `json:"categoryIds,omitempty"`
	Description *string           `json:"description,omitempty"`
	Sublinks    *[]SublinkRequest `json:"sublinks,omitempty"`
}

// UpdateSublinkRequest represents the request body for a partial sublink update
type UpdateSublinkRequest struct {
	Name        *string `json:"name,omitempty"`
	URL         *string `json:"url,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ListLinks handles GET /links
func (h *LinkHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"links": result})
}

// GetLink handles GET /links/{linkID}
func (h *LinkHandler) GetLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.service.Get(r.Context(), chi.URLParam(r, "linkID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"link": link})
}

// CreateLink handles POST /links
func (h *LinkHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	link, err := h.service.Create(r.Context(), links.LinkPayload{
		Name:        req.Name,
		URL:         req.URL,
		CategoryIDs: req.CategoryIDs,
		Description: req.Description,
		Sublinks:    toSublinks(req.Sublinks),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"link": link})
}

// UpdateLink handles PUT /links/{linkID}
func (h *LinkHandler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	var req UpdateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	patch := links.LinkPatch{
		Name:        req.Name,
		URL:         req.URL,
		CategoryIDs: req.CategoryIDs,
		Description: req.Description,
	}
	if req.Sublinks != nil {
		subs := toSublinks(*req.Sublinks)
		patch.Sublinks = &subs
	}

	link, err := h.service.Update(r.Context(), chi.URLParam(r, "linkID"), patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"link": link})
}

// DeleteLink handles DELETE /links/{linkID}
func (h *LinkHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "linkID")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateSublink handles POST /links/{linkID}/sublinks
func (h *LinkHandler) CreateSublink(w http.ResponseWriter, r *http.Request) {
	var req SublinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	link, err := h.service.CreateSublink(r.Context(), chi.URLParam(r, "linkID"), links.SublinkPayload{
		ID:          req.ID,
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"link": link})
}

// UpdateSublink handles PUT /links/{linkID}/sublinks/{sublinkID}
func (h *LinkHandler) UpdateSublink(w http.ResponseWriter, r *http.Request) {
	var req UpdateSublinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	link, err := h.service.UpdateSublink(r.Context(),
		chi.URLParam(r, "linkID"), chi.URLParam(r, "sublinkID"),
		links.SublinkPatch{
			Name:        req.Name,
			URL:         req.URL,
			Description: req.Description,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"link": link})
}

// DeleteSublink handles DELETE /links/{linkID}/sublinks/{sublinkID}
func (h *LinkHandler) DeleteSublink(w http.ResponseWriter, r *http.Request) {
	link, err := h.service.DeleteSublink(r.Context(),
		chi.URLParam(r, "linkID"), chi.URLParam(r, "sublinkID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"link": link})
}

func toSublinks(reqs []SublinkRequest) []links.Sublink {
	if reqs == nil {
		return nil
	}
	out := make([]links.Sublink, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, links.Sublink{
			ID:          req.ID,
			Name:        req.Name,
			URL:         req.URL,
			Description: req.Description,
		})
	}
	return out
}
