package planner

import "guardian/internal/geo"

// Camera framing constants. FitMaxZoom caps bounds fitting so tightly
// clustered points never zoom in past a readable level.
const (
	ZoomClose    = 14
	ZoomSelected = 15
	FitMaxZoom   = 12
	FitPaddingPx = 48
)

// Camera is an absolute center/zoom directive.
type Camera struct {
	Center geo.Coordinate `json:"center"`
	Zoom   int            `json:"zoom"`
}

// BoundsFit asks the renderer to frame the box with padding, never
// exceeding MaxZoom.
type BoundsFit struct {
	Bounds    geo.Bounds `json:"bounds"`
	PaddingPx int        `json:"paddingPx"`
	MaxZoom   int        `json:"maxZoom"`
}

// RadiusCircle is the search-radius indicator. At most one exists at a
// time; the renderer replaces rather than mutates it.
type RadiusCircle struct {
	Center   geo.Coordinate `json:"center"`
	RadiusKm float64        `json:"radiusKm"`
}

// ViewPlan tells the map renderer how to react to a filtered-set
// change. All fields nil means leave the camera exactly where the user
// put it.
type ViewPlan struct {
	Camera *Camera       `json:"camera,omitempty"`
	Fit    *BoundsFit    `json:"fit,omitempty"`
	Circle *RadiusCircle `json:"circle,omitempty"`
}

// PlanView computes the camera reaction to a new filtered set. One
// positioned resource centers close; several fit their bounding box;
// none leaves the camera untouched. Resources without coordinates
// contribute nothing to framing.
func PlanView(filtered []geo.Coordinate, state FilterState, reference geo.Coordinate) ViewPlan {
	var plan ViewPlan

	switch len(filtered) {
	case 0:
	case 1:
		plan.Camera = &Camera{Center: filtered[0], Zoom: ZoomClose}
	default:
		if b, ok := geo.BoundsOf(filtered); ok {
			plan.Fit = &BoundsFit{Bounds: b, PaddingPx: FitPaddingPx, MaxZoom: FitMaxZoom}
		}
	}

	state = state.ClampRadius()
	if state.RadiusKm != RadiusDefaultKm {
		plan.Circle = &RadiusCircle{Center: reference, RadiusKm: state.RadiusKm}
	}
	return plan
}

// PlanSelection re-centers on a selected resource at popup zoom.
func PlanSelection(c geo.Coordinate) ViewPlan {
	return ViewPlan{Camera: &Camera{Center: c, Zoom: ZoomSelected}}
}
