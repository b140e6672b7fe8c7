package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"guardian/internal/api/types"
	"guardian/internal/communes"
	"guardian/internal/geo"
	"guardian/internal/models"
	"guardian/internal/planner"
	"guardian/internal/store"
)

// ResourcesHandler serves the resource collection: CRUD plus the
// annotated, filtered listing the map and tables consume.
type ResourcesHandler struct {
	store     store.ResourceStore
	annotator *communes.Annotator
	reference geo.Coordinate
}

func NewResourcesHandler(s store.ResourceStore, a *communes.Annotator, reference geo.Coordinate) *ResourcesHandler {
	return &ResourcesHandler{store: s, annotator: a, reference: reference}
}

// List answers the full pipeline: load, annotate with commune names,
// then apply the filter state decoded from the query string. With an
// empty query the whole collection comes back in store order.
func (h *ResourcesHandler) List(w http.ResponseWriter, r *http.Request) {
	resources, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	annotated := h.annotator.Annotate(r.Context(), resources)
	state := planner.DecodeQuery(r.URL.Query())
	filtered := planner.Filter(annotated, state, h.reference)

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    filtered,
		Meta:    &types.Meta{Total: int64(len(filtered))},
	})
}

func (h *ResourcesHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: res})
}

func (h *ResourcesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var res models.Resource
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.store.Add(r.Context(), &res); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: res})
}

func (h *ResourcesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var res models.Resource
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	// The path owns the id; a divergent body id is ignored.
	res.ID = chi.URLParam(r, "id")
	if err := h.store.Update(r.Context(), &res); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: res})
}

func (h *ResourcesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true})
}

// Options serves the closed enumerations with their Polish labels plus
// the organizations currently present in the store, for filter
// dropdowns.
func (h *ResourcesHandler) Options(w http.ResponseWriter, r *http.Request) {
	resources, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	type option struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
	categories := make([]option, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		categories = append(categories, option{Value: string(c), Label: c.Label()})
	}
	statuses := make([]option, 0, len(models.Statuses()))
	for _, s := range models.Statuses() {
		statuses = append(statuses, option{Value: string(s), Label: s.Label()})
	}
	seen := map[string]struct{}{}
	var organizations []string
	for _, res := range resources {
		if _, ok := seen[res.Organization]; ok {
			continue
		}
		seen[res.Organization] = struct{}{}
		organizations = append(organizations, res.Organization)
	}

	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]any{
		"categories":    categories,
		"statuses":      statuses,
		"organizations": organizations,
	}})
}
