package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
	"github.com/smartlabel/smartlabel-backend/internal/label/service"
	"github.com/smartlabel/smartlabel-backend/pkg/httputil"
	"github.com/smartlabel/smartlabel-backend/pkg/logger"
)

// Handler exposes the label API
type Handler struct {
	service *service.Service
	logger  *logger.Logger
}

// New creates a new label handler
func New(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{
		service: svc,
		logger:  log.WithComponent("label-handler"),
	}
}

// RegisterRoutes registers the label routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/labels/generate", h.Generate)
	r.Get("/labels", h.List)
	r.Get("/labels/{id}", h.Get)
	r.Delete("/labels/{id}", h.Delete)
	r.Get("/labels/{id}/compliance", h.Compliance)
}

// generateRequest accepts the product data plus either a single market or
// a list of markets for fan-out generation.
type generateRequest struct {
	domain.ProductData
	Markets []domain.Market `json:"markets,omitempty"`
}

// Generate handles POST /labels/generate
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if len(req.Markets) > 0 {
		result, err := h.service.GenerateForMarkets(r.Context(), &req.ProductData, req.Markets)
		if err != nil {
			httputil.Error(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, result)
		return
	}

	label, err := h.service.Generate(r.Context(), &req.ProductData)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, label)
}

// List handles GET /labels
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	labels, err := h.service.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSONWithMeta(w, http.StatusOK, labels, &httputil.Meta{Total: len(labels)})
}

// Get handles GET /labels/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	label, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, label)
}

// Delete handles DELETE /labels/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	labelID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), labelID); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"labelId": labelID,
		"deleted": true,
	})
}

// Compliance handles GET /labels/{id}/compliance
func (h *Handler) Compliance(w http.ResponseWriter, r *http.Request) {
	score, err := h.service.Compliance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, score)
}
