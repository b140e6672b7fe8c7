package handlers

import (
	"net/http"
	"strconv"

	"guardian/internal/api/types"
	"guardian/internal/dashboard"
)

type DashboardHandler struct {
	service *dashboard.Service
}

func NewDashboardHandler(s *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// Summary answers the fleet aggregates; ?recent=N bounds the activity
// feed.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("recent"))
	sum, err := h.service.Summarize(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: sum})
}
