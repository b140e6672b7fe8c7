package planner

import (
	"net/url"
	"testing"
)

func TestEncodeQueryOmitsDefaults(t *testing.T) {
	v := EncodeQuery(DefaultFilterState())
	if len(v) != 0 {
		t.Fatalf("default state encoded to %q, want empty", v.Encode())
	}

	s := DefaultFilterState()
	s.Category = "vehicle"
	s.RadiusKm = 120
	v = EncodeQuery(s)
	if got := v.Get("category"); got != "vehicle" {
		t.Errorf("category = %q, want %q", got, "vehicle")
	}
	if got := v.Get("radius"); got != "120" {
		t.Errorf("radius = %q, want %q", got, "120")
	}
	if v.Has("status") || v.Has("org") || v.Has("q") {
		t.Errorf("default fields leaked into query: %q", v.Encode())
	}
}

func TestQueryRoundTrip(t *testing.T) {
	s := FilterState{
		SearchText:   "agregat",
		Category:     "power",
		Status:       "available",
		Organization: "Straż Pożarna",
		RadiusKm:     75,
	}
	got := DecodeQuery(EncodeQuery(s))
	if got != s {
		t.Fatalf("round trip = %+v, want %+v", got, s)
	}
}

func TestDecodeQueryClampsAndDefaults(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, s FilterState)
	}{
		{
			name: "empty query yields defaults",
			raw:  "",
			check: func(t *testing.T, s FilterState) {
				if !s.IsDefault() {
					t.Errorf("got %+v, want default state", s)
				}
			},
		},
		{
			name: "radius above max is clamped",
			raw:  "radius=10000",
			check: func(t *testing.T, s FilterState) {
				if s.RadiusKm != RadiusMaxKm {
					t.Errorf("radius = %v, want %v", s.RadiusKm, RadiusMaxKm)
				}
			},
		},
		{
			name: "unparsable radius falls back to default",
			raw:  "radius=abc",
			check: func(t *testing.T, s FilterState) {
				if s.RadiusKm != RadiusDefaultKm {
					t.Errorf("radius = %v, want %v", s.RadiusKm, RadiusDefaultKm)
				}
			},
		},
		{
			name: "negative radius falls back to default",
			raw:  "radius=-10",
			check: func(t *testing.T, s FilterState) {
				if s.RadiusKm != RadiusDefaultKm {
					t.Errorf("radius = %v, want %v", s.RadiusKm, RadiusDefaultKm)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.raw)
			if err != nil {
				t.Fatalf("ParseQuery(%q) error = %v", tt.raw, err)
			}
			tt.check(t, DecodeQuery(v))
		})
	}
}

func TestNeedsSyncAvoidsLoops(t *testing.T) {
	s := DefaultFilterState()
	s.Category = "medical"

	// A freshly written address never needs rewriting.
	if NeedsSync(EncodeQuery(s), s) {
		t.Error("NeedsSync() = true for an address derived from the same state")
	}

	// Equivalent representations do not trigger a write either.
	v, _ := url.ParseQuery("category=medical&radius=50")
	if NeedsSync(v, s) {
		t.Error("NeedsSync() = true for an equivalent address with explicit default radius")
	}

	v, _ = url.ParseQuery("category=vehicle")
	if !NeedsSync(v, s) {
		t.Error("NeedsSync() = false for a diverging address")
	}
}
