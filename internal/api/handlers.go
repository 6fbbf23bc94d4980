package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/OPRYAN90/robodog-request-system/internal/constants"
	"github.com/OPRYAN90/robodog-request-system/internal/geo"
	"github.com/OPRYAN90/robodog-request-system/internal/logging"
	"github.com/OPRYAN90/robodog-request-system/internal/models/dtos"
	"github.com/OPRYAN90/robodog-request-system/internal/models/entities"
	"github.com/OPRYAN90/robodog-request-system/internal/repository"
)

// Handlers bundles the HTTP handlers with their dependencies
type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new Handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{deps: deps}
}

// CreatePath handles POST /api/v1/paths
func (h *Handlers) CreatePath(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	path, err := h.deps.Services.Paths.CreatePath(req.Waypoints, req.Name, req.Description, entities.Priority(req.Priority))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	resp := dtos.NewPathResponse(path)
	respondWithSuccess(w, http.StatusCreated, &resp)
}

// ListPaths handles GET /api/v1/paths
func (h *Handlers) ListPaths(w http.ResponseWriter, r *http.Request) {
	resp := dtos.NewPathListResponse(h.deps.Services.Paths.ListPaths())
	respondWithSuccess(w, http.StatusOK, &resp)
}

// GetPath handles GET /api/v1/paths/{pathID}
func (h *Handlers) GetPath(w http.ResponseWriter, r *http.Request) {
	pathID := chi.URLParam(r, "pathID")
	path, err := h.deps.Services.Paths.GetPath(pathID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	resp := dtos.NewPathResponse(path)
	respondWithSuccess(w, http.StatusOK, &resp)
}

// ActivatePath handles POST /api/v1/paths/{pathID}/activate
func (h *Handlers) ActivatePath(w http.ResponseWriter, r *http.Request) {
	pathID := chi.URLParam(r, "pathID")
	if err := h.deps.Services.Paths.ActivatePath(pathID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	logging.Info("Path activation requested", "path_id", pathID)
	path, err := h.deps.Services.Paths.GetPath(pathID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	resp := dtos.NewPathResponse(path)
	respondWithSuccess(w, http.StatusOK, &resp)
}

// DeactivatePath handles POST /api/v1/paths/{pathID}/deactivate
func (h *Handlers) DeactivatePath(w http.ResponseWriter, r *http.Request) {
	pathID := chi.URLParam(r, "pathID")
	if err := h.deps.Services.Paths.DeactivatePath(pathID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	path, err := h.deps.Services.Paths.GetPath(pathID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	resp := dtos.NewPathResponse(path)
	respondWithSuccess(w, http.StatusOK, &resp)
}

// DeletePath handles DELETE /api/v1/paths/{pathID}
func (h *Handlers) DeletePath(w http.ResponseWriter, r *http.Request) {
	pathID := chi.URLParam(r, "pathID")
	if err := h.deps.Services.Paths.DeletePath(pathID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	resp := map[string]string{"deleted": pathID}
	respondWithSuccess(w, http.StatusOK, &resp)
}

// PathTelemetry handles GET /api/v1/paths/{pathID}/telemetry
func (h *Handlers) PathTelemetry(w http.ResponseWriter, r *http.Request) {
	pathID := chi.URLParam(r, "pathID")
	if _, err := h.deps.Services.Paths.GetPath(pathID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	tel, found := h.deps.Services.Paths.LatestTelemetry(pathID)
	if !found {
		respondWithError(w, http.StatusNotFound, "no telemetry recorded for path")
		return
	}
	respondWithSuccess(w, http.StatusOK, tel)
}

// RobotPosition handles GET /api/v1/robot
func (h *Handlers) RobotPosition(w http.ResponseWriter, r *http.Request) {
	resp := dtos.RobotPositionResponse{Position: h.deps.Services.Paths.RobotPosition()}
	respondWithSuccess(w, http.StatusOK, &resp)
}

// BeginDraft handles POST /api/v1/draft
func (h *Handlers) BeginDraft(w http.ResponseWriter, r *http.Request) {
	h.deps.Services.Draft.Begin()
	h.respondDraft(w, http.StatusCreated)
}

// AddDraftPoint handles POST /api/v1/draft/points
func (h *Handlers) AddDraftPoint(w http.ResponseWriter, r *http.Request) {
	var req dtos.AddDraftPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := h.deps.Services.Draft.AddPoint(geo.Coordinate{Lat: req.Lat, Lng: req.Lng}); err != nil {
		respondWithDomainError(w, err)
		return
	}
	h.respondDraft(w, http.StatusOK)
}

// GetDraft handles GET /api/v1/draft
func (h *Handlers) GetDraft(w http.ResponseWriter, r *http.Request) {
	h.respondDraft(w, http.StatusOK)
}

// CancelDraft handles DELETE /api/v1/draft
func (h *Handlers) CancelDraft(w http.ResponseWriter, r *http.Request) {
	h.deps.Services.Draft.Cancel()
	h.respondDraft(w, http.StatusOK)
}

// CompleteDraft handles POST /api/v1/draft/complete: turns the drawn
// sequence plus the save-dialog fields into a stored path.
func (h *Handlers) CompleteDraft(w http.ResponseWriter, r *http.Request) {
	var req dtos.CompleteDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Reject an unnamed save before consuming the draft, so the user keeps
	// the drawn points and can retry the dialog.
	if strings.TrimSpace(req.Name) == "" {
		respondWithDomainError(w, &repository.ValidationError{Reason: constants.MsgPathNameRequired})
		return
	}

	points, err := h.deps.Services.Draft.Complete()
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	path, err := h.deps.Services.Paths.CreatePath(points, req.Name, req.Description, entities.Priority(req.Priority))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	resp := dtos.NewPathResponse(path)
	respondWithSuccess(w, http.StatusCreated, &resp)
}

func (h *Handlers) respondDraft(w http.ResponseWriter, statusCode int) {
	points, active := h.deps.Services.Draft.Points()
	resp := dtos.DraftResponse{Active: active, Points: points, Count: len(points)}
	respondWithSuccess(w, statusCode, &resp)
}
