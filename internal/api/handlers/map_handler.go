package handlers

import (
	"net/http"

	"guardian/internal/api/types"
	"guardian/internal/communes"
	"guardian/internal/geo"
	"guardian/internal/overlay"
	"guardian/internal/planner"
	"guardian/internal/store"
)

// MapHandler serves the map view: camera directives for the filtered
// set and commune boundary overlays.
type MapHandler struct {
	store     store.ResourceStore
	annotator *communes.Annotator
	overlays  *overlay.Loader
	reference geo.Coordinate
}

func NewMapHandler(s store.ResourceStore, a *communes.Annotator, o *overlay.Loader, reference geo.Coordinate) *MapHandler {
	return &MapHandler{store: s, annotator: a, overlays: o, reference: reference}
}

// View computes the camera plan plus the markers for the current
// filter state. A selected resource id overrides framing with a
// close-up on that resource.
func (h *MapHandler) View(w http.ResponseWriter, r *http.Request) {
	resources, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	annotated := h.annotator.Annotate(r.Context(), resources)
	state := planner.DecodeQuery(r.URL.Query())
	filtered := planner.Filter(annotated, state, h.reference)

	var coords []geo.Coordinate
	for _, res := range filtered {
		if c := res.Location.Coordinates; c != nil {
			coords = append(coords, *c)
		}
	}

	plan := planner.PlanView(coords, state, h.reference)
	if selected := r.URL.Query().Get("selected"); selected != "" {
		for _, res := range filtered {
			if res.ID == selected && res.Location.Coordinates != nil {
				plan = planner.PlanSelection(*res.Location.Coordinates)
				break
			}
		}
	}

	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]any{
		"plan":      plan,
		"resources": filtered,
	}})
}

// Overlays loads boundary polygons for the communes of the currently
// filtered resources. Communes without boundary files are simply
// absent from the collection.
func (h *MapHandler) Overlays(w http.ResponseWriter, r *http.Request) {
	resources, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	annotated := h.annotator.Annotate(r.Context(), resources)
	state := planner.DecodeQuery(r.URL.Query())
	filtered := planner.Filter(annotated, state, h.reference)

	var names []string
	for _, res := range filtered {
		if res.CommuneName != "" {
			names = append(names, res.CommuneName)
		}
	}

	fc := h.overlays.Load(r.Context(), names)
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: fc})
}
