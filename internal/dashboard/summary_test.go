package dashboard

import (
	"context"
	"testing"
	"time"

	"guardian/internal/models"
	"guardian/internal/store"
)

func pct(v float64) *float64 { return &v }

func fleet() []models.Resource {
	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	return []models.Resource{
		{
			ID: "a", Name: "Agregat", Category: models.CategoryPower, Status: models.StatusAvailable,
			Organization: "X", LastUpdated: base,
			Telemetry: &models.Telemetry{Fuel: pct(10)},
		},
		{
			ID: "b", Name: "Wóz", Category: models.CategoryVehicle, Status: models.StatusUnavailable,
			Organization: "X", LastUpdated: base.Add(2 * time.Hour),
		},
		{
			ID: "c", Name: "Namiot", Category: models.CategoryShelter, Status: models.StatusAvailable,
			Organization: "Y", LastUpdated: base.Add(time.Hour),
		},
	}
}

func TestSummarizeAggregates(t *testing.T) {
	svc := NewService(store.NewMemoryResourceStore(fleet()))
	sum, err := svc.Summarize(context.Background(), 0)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if sum.Total != 3 {
		t.Errorf("total = %d, want 3", sum.Total)
	}
	if sum.ByCategory[models.CategoryPower] != 1 || sum.ByCategory[models.CategoryVehicle] != 1 {
		t.Errorf("byCategory = %v", sum.ByCategory)
	}
	if sum.ByStatus[models.StatusAvailable] != 2 || sum.ByStatus[models.StatusUnavailable] != 1 {
		t.Errorf("byStatus = %v", sum.ByStatus)
	}
}

func TestSummarizeCritical(t *testing.T) {
	svc := NewService(store.NewMemoryResourceStore(fleet()))
	sum, err := svc.Summarize(context.Background(), 0)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	// "a" has low fuel, "b" is unavailable; "c" is healthy.
	if len(sum.Critical) != 2 {
		t.Fatalf("critical = %d resources, want 2", len(sum.Critical))
	}
	got := map[string]bool{}
	for _, r := range sum.Critical {
		got[r.ID] = true
	}
	if !got["a"] || !got["b"] {
		t.Errorf("critical ids = %v, want a and b", got)
	}
}

func TestSummarizeRecentOrderAndLimit(t *testing.T) {
	svc := NewService(store.NewMemoryResourceStore(fleet()))
	sum, err := svc.Summarize(context.Background(), 2)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if len(sum.Recent) != 2 {
		t.Fatalf("recent = %d resources, want 2", len(sum.Recent))
	}
	if sum.Recent[0].ID != "b" || sum.Recent[1].ID != "c" {
		t.Errorf("recent order = [%s %s], want [b c]", sum.Recent[0].ID, sum.Recent[1].ID)
	}
}
