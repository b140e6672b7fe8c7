package planner

import (
	"net/url"
	"strconv"
)

// Query parameter names mirrored to the navigable address.
const (
	paramSearch       = "q"
	paramCategory     = "category"
	paramStatus       = "status"
	paramOrganization = "org"
	paramRadius       = "radius"
)

// EncodeQuery serializes only the fields that differ from the default
// state, keeping shared links minimal.
func EncodeQuery(s FilterState) url.Values {
	s = s.ClampRadius()
	v := url.Values{}
	if s.SearchText != "" {
		v.Set(paramSearch, s.SearchText)
	}
	if s.Category != "" && s.Category != FilterAll {
		v.Set(paramCategory, s.Category)
	}
	if s.Status != "" && s.Status != FilterAll {
		v.Set(paramStatus, s.Status)
	}
	if s.Organization != "" && s.Organization != FilterAll {
		v.Set(paramOrganization, s.Organization)
	}
	if s.RadiusKm != RadiusDefaultKm {
		v.Set(paramRadius, strconv.FormatFloat(s.RadiusKm, 'f', -1, 64))
	}
	return v
}

// DecodeQuery parses query parameters back into a FilterState. Missing
// or invalid values fall back to defaults; the radius is clamped into
// its valid range.
func DecodeQuery(v url.Values) FilterState {
	s := DefaultFilterState()
	if q := v.Get(paramSearch); q != "" {
		s.SearchText = q
	}
	if c := v.Get(paramCategory); c != "" {
		s.Category = c
	}
	if st := v.Get(paramStatus); st != "" {
		s.Status = st
	}
	if o := v.Get(paramOrganization); o != "" {
		s.Organization = o
	}
	if raw := v.Get(paramRadius); raw != "" {
		if r, err := strconv.ParseFloat(raw, 64); err == nil {
			s.RadiusKm = r
		}
	}
	return s.ClampRadius()
}

// NeedsSync reports whether the current address diverges from the
// state. Comparing serialized forms keeps the state/address feedback
// loop from ping-ponging on equivalent representations.
func NeedsSync(current url.Values, s FilterState) bool {
	return EncodeQuery(s).Encode() != EncodeQuery(DecodeQuery(current)).Encode()
}
