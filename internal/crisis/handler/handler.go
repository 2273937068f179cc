package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartlabel/smartlabel-backend/internal/crisis/domain"
	"github.com/smartlabel/smartlabel-backend/internal/crisis/service"
	"github.com/smartlabel/smartlabel-backend/pkg/httputil"
	"github.com/smartlabel/smartlabel-backend/pkg/logger"
)

// Handler exposes the crisis response API
type Handler struct {
	service *service.Service
	logger  *logger.Logger
}

// New creates a new crisis handler
func New(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{
		service: svc,
		logger:  log.WithComponent("crisis-handler"),
	}
}

// RegisterRoutes registers the crisis routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/crisis/response", h.GenerateResponse)
}

// GenerateResponse handles POST /crisis/response
func (h *Handler) GenerateResponse(w http.ResponseWriter, r *http.Request) {
	var scenario domain.Scenario
	if err := httputil.DecodeJSON(r, &scenario); err != nil {
		httputil.Error(w, err)
		return
	}

	response, err := h.service.Generate(r.Context(), &scenario)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, response)
}
