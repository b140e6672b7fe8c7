package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"guardian/internal/alerts"
	"guardian/internal/api"
	"guardian/internal/api/handlers"
	"guardian/internal/communes"
	"guardian/internal/dashboard"
	"guardian/internal/geo"
	"guardian/internal/models"
	"guardian/internal/overlay"
	"guardian/internal/store"
)

var warsaw = geo.Coordinate{Lat: 52.2297, Lng: 21.0122}

// stubResolver answers every coordinate with the same commune.
type stubResolver struct{ name string }

func (s stubResolver) FindCommunes(ctx context.Context, coords []geo.Coordinate) ([]communes.LookupResult, error) {
	out := make([]communes.LookupResult, len(coords))
	for i, c := range coords {
		out[i] = communes.LookupResult{
			InputCoordinate: communes.LookupCoordinate{Lat: c.Lat, Lon: c.Lng},
			CommuneName:     s.name,
			Status:          communes.StatusFound,
		}
	}
	return out, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryResourceStore, *store.MemoryAlertStore) {
	t.Helper()

	resourceStore := store.NewMemoryResourceStore(store.SeedResources())
	alertStore := store.NewMemoryAlertStore(store.SeedAlerts())
	annotator := communes.NewAnnotator(stubResolver{name: "Warszawa"})

	boundarySrv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(boundarySrv.Close)

	router := api.NewRouter(api.Dependencies{
		ResourcesHandler: handlers.NewResourcesHandler(resourceStore, annotator, warsaw),
		MapHandler:       handlers.NewMapHandler(resourceStore, annotator, overlay.NewLoader(boundarySrv.URL), warsaw),
		AlertsHandler:    handlers.NewAlertsHandler(alerts.NewService(alertStore)),
		DashboardHandler: handlers.NewDashboardHandler(dashboard.NewService(resourceStore)),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, resourceStore, alertStore
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

func getEnvelope(t *testing.T, url string, wantStatus int) envelope {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, want %d", url, resp.StatusCode, wantStatus)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestListResourcesUnfiltered(t *testing.T) {
	srv, _, _ := newTestServer(t)

	env := getEnvelope(t, srv.URL+"/api/v1/resources/", http.StatusOK)
	if !env.Success {
		t.Fatal("success = false")
	}
	var resources []models.AnnotatedResource
	if err := json.Unmarshal(env.Data, &resources); err != nil {
		t.Fatalf("decode resources: %v", err)
	}
	if len(resources) != 18 {
		t.Fatalf("got %d resources, want 18", len(resources))
	}
	if resources[0].CommuneName != "Warszawa" {
		t.Errorf("communeName = %q, want Warszawa", resources[0].CommuneName)
	}
	if env.Meta == nil || env.Meta.Total != 18 {
		t.Errorf("meta = %+v, want total 18", env.Meta)
	}
}

func TestListResourcesFiltered(t *testing.T) {
	srv, _, _ := newTestServer(t)

	env := getEnvelope(t, srv.URL+"/api/v1/resources/?category=vehicle&status=available", http.StatusOK)
	var resources []models.AnnotatedResource
	if err := json.Unmarshal(env.Data, &resources); err != nil {
		t.Fatalf("decode resources: %v", err)
	}
	if len(resources) == 0 {
		t.Fatal("filter matched nothing")
	}
	for _, r := range resources {
		if r.Category != models.CategoryVehicle || r.Status != models.StatusAvailable {
			t.Errorf("resource %q leaked through the filter: %s/%s", r.ID, r.Category, r.Status)
		}
	}
}

func TestListResourcesRadius(t *testing.T) {
	srv, _, _ := newTestServer(t)

	// 100 km around Warsaw excludes the Kraków and Gdańsk fleets.
	env := getEnvelope(t, srv.URL+"/api/v1/resources/?radius=100", http.StatusOK)
	var resources []models.AnnotatedResource
	if err := json.Unmarshal(env.Data, &resources); err != nil {
		t.Fatalf("decode resources: %v", err)
	}
	if len(resources) != 12 {
		t.Fatalf("got %d resources within 100km of Warsaw, want 12", len(resources))
	}
}

func TestGetResourceNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	env := getEnvelope(t, srv.URL+"/api/v1/resources/nope", http.StatusNotFound)
	if env.Success || env.Error == nil || env.Error.Code != "not_found" {
		t.Fatalf("envelope = %+v, want not_found error", env)
	}
}

func TestResourceLifecycle(t *testing.T) {
	srv, _, _ := newTestServer(t)

	body, _ := json.Marshal(models.Resource{
		Name: "Radiotelefony", Quantity: 30, Unit: "szt",
		Category: models.CategoryEquipment, Status: models.StatusAvailable,
		Location:     models.Location{Name: "Magazyn", Coordinates: &warsaw},
		Organization: "OSP",
	})
	resp, err := http.Post(srv.URL+"/api/v1/resources/", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201", resp.StatusCode)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var created models.Resource
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created resource has no id")
	}

	created.Quantity = 25
	upd, _ := json.Marshal(created)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/resources/"+created.ID, bytes.NewReader(upd))
	req.Header.Set("Content-Type", "application/json")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200", resp2.StatusCode)
	}

	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/resources/"+created.ID, nil)
	resp3, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusOK {
		t.Fatalf("DELETE status = %d, want 200", resp3.StatusCode)
	}

	getEnvelope(t, srv.URL+"/api/v1/resources/"+created.ID, http.StatusNotFound)
}

func TestCreateResourceRejectsInvalid(t *testing.T) {
	srv, _, _ := newTestServer(t)

	body, _ := json.Marshal(models.Resource{Name: "Bez kategorii"})
	resp, err := http.Post(srv.URL+"/api/v1/resources/", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("POST status = %d, want 400", resp.StatusCode)
	}
}

func TestResourceOptions(t *testing.T) {
	srv, _, _ := newTestServer(t)

	env := getEnvelope(t, srv.URL+"/api/v1/resources/options", http.StatusOK)
	var data struct {
		Categories []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"categories"`
		Statuses      []any    `json:"statuses"`
		Organizations []string `json:"organizations"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode options: %v", err)
	}
	if len(data.Categories) != 9 || len(data.Statuses) != 4 {
		t.Errorf("got %d categories and %d statuses, want 9 and 4", len(data.Categories), len(data.Statuses))
	}
	if data.Categories[0].Label == "" {
		t.Error("category label is empty")
	}
	if len(data.Organizations) == 0 {
		t.Error("no organizations listed")
	}
}

func TestMapViewSingleResult(t *testing.T) {
	srv, _, _ := newTestServer(t)

	env := getEnvelope(t, srv.URL+"/api/v1/map/view?q=defibrylator", http.StatusOK)
	var data struct {
		Plan struct {
			Camera *struct {
				Center geo.Coordinate `json:"center"`
				Zoom   int            `json:"zoom"`
			} `json:"camera"`
			Fit *json.RawMessage `json:"fit"`
		} `json:"plan"`
		Resources []models.AnnotatedResource `json:"resources"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if len(data.Resources) != 1 {
		t.Fatalf("got %d resources, want 1", len(data.Resources))
	}
	if data.Plan.Camera == nil {
		t.Fatal("single result: want a camera directive")
	}
	if data.Plan.Fit != nil {
		t.Error("single result: unexpected bounds fit")
	}
}

func TestMapOverlaysDegradeGracefully(t *testing.T) {
	srv, _, _ := newTestServer(t)

	// The boundary host serves nothing; the overlay set is just empty.
	env := getEnvelope(t, srv.URL+"/api/v1/map/overlays", http.StatusOK)
	var fc struct {
		Type     string `json:"type"`
		Features []any  `json:"features"`
	}
	if err := json.Unmarshal(env.Data, &fc); err != nil {
		t.Fatalf("decode overlays: %v", err)
	}
	if fc.Type != "FeatureCollection" {
		t.Errorf("type = %q, want FeatureCollection", fc.Type)
	}
	if len(fc.Features) != 0 {
		t.Errorf("got %d features, want 0", len(fc.Features))
	}
}

func TestAlertsDismissFlow(t *testing.T) {
	srv, _, _ := newTestServer(t)

	env := getEnvelope(t, srv.URL+"/api/v1/alerts/", http.StatusOK)
	var active []models.SystemAlert
	if err := json.Unmarshal(env.Data, &active); err != nil {
		t.Fatalf("decode alerts: %v", err)
	}
	if len(active) != 8 {
		t.Fatalf("got %d active alerts, want 8", len(active))
	}

	resp, err := http.Post(srv.URL+"/api/v1/alerts/"+active[0].ID+"/dismiss", "application/json", nil)
	if err != nil {
		t.Fatalf("POST dismiss: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dismiss status = %d, want 200", resp.StatusCode)
	}

	env = getEnvelope(t, srv.URL+"/api/v1/alerts/", http.StatusOK)
	if err := json.Unmarshal(env.Data, &active); err != nil {
		t.Fatalf("decode alerts: %v", err)
	}
	if len(active) != 7 {
		t.Fatalf("got %d active alerts after dismiss, want 7", len(active))
	}

	// Dismissed alerts still show in the full listing.
	env = getEnvelope(t, srv.URL+"/api/v1/alerts/?all=true", http.StatusOK)
	var all []models.SystemAlert
	if err := json.Unmarshal(env.Data, &all); err != nil {
		t.Fatalf("decode alerts: %v", err)
	}
	if len(all) != 8 {
		t.Fatalf("got %d alerts in full listing, want 8", len(all))
	}

	resp, err = http.Post(srv.URL+"/api/v1/alerts/dismiss-all", "application/json", nil)
	if err != nil {
		t.Fatalf("POST dismiss-all: %v", err)
	}
	resp.Body.Close()
	env = getEnvelope(t, srv.URL+"/api/v1/alerts/", http.StatusOK)
	if err := json.Unmarshal(env.Data, &active); err != nil {
		t.Fatalf("decode alerts: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("got %d active alerts after dismiss-all, want 0", len(active))
	}
}

func TestDashboardSummary(t *testing.T) {
	srv, _, _ := newTestServer(t)

	env := getEnvelope(t, srv.URL+"/api/v1/dashboard/summary?recent=3", http.StatusOK)
	var sum struct {
		Total      int            `json:"total"`
		ByCategory map[string]int `json:"byCategory"`
		Recent     []any          `json:"recent"`
	}
	if err := json.Unmarshal(env.Data, &sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.Total != 18 {
		t.Errorf("total = %d, want 18", sum.Total)
	}
	if sum.ByCategory["shelter"] != 4 {
		t.Errorf("shelter count = %d, want 4", sum.ByCategory["shelter"])
	}
	if len(sum.Recent) != 3 {
		t.Errorf("recent = %d entries, want 3", len(sum.Recent))
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t)
	getEnvelope(t, srv.URL+"/healthz", http.StatusOK)
	getEnvelope(t, srv.URL+"/readyz", http.StatusOK)
}
