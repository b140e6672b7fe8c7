package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"guardian/internal/alerts"
	"guardian/internal/api/types"
	"guardian/internal/models"
)

type AlertsHandler struct {
	service *alerts.Service
}

func NewAlertsHandler(s *alerts.Service) *AlertsHandler {
	return &AlertsHandler{service: s}
}

// List answers active alerts; ?all=true includes dismissed ones.
func (h *AlertsHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		items []models.SystemAlert
		err   error
	)
	if r.URL.Query().Get("all") == "true" {
		items, err = h.service.ListAll(r.Context())
	} else {
		items, err = h.service.ListActive(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    items,
		Meta:    &types.Meta{Total: int64(len(items))},
	})
}

func (h *AlertsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var a models.SystemAlert
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.service.Create(r.Context(), &a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: a})
}

func (h *AlertsHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Dismiss(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true})
}

func (h *AlertsHandler) DismissAll(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DismissAll(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true})
}
