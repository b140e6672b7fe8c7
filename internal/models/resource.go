package models

import (
	"time"

	"github.com/go-playground/validator/v10"

	"guardian/internal/geo"
)

// Category classifies a resource. The set is closed.
type Category string

const (
	CategoryEquipment Category = "equipment"
	CategoryMedical   Category = "medical"
	CategoryVehicle   Category = "vehicle"
	CategoryShelter   Category = "shelter"
	CategoryPersonnel Category = "personnel"
	CategoryFood      Category = "food"
	CategoryWater     Category = "water"
	CategoryPower     Category = "power"
	CategoryOther     Category = "other"
)

// Status is the availability state of a resource. The set is closed.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusReserved    Status = "reserved"
	StatusUnavailable Status = "unavailable"
	StatusMaintenance Status = "maintenance"
)

var categoryLabels = map[Category]string{
	CategoryEquipment: "Sprzęt",
	CategoryMedical:   "Zasoby medyczne",
	CategoryVehicle:   "Pojazdy",
	CategoryShelter:   "Schronienie",
	CategoryPersonnel: "Personel",
	CategoryFood:      "Żywność",
	CategoryWater:     "Woda",
	CategoryPower:     "Zasilanie",
	CategoryOther:     "Inne",
}

var statusLabels = map[Status]string{
	StatusAvailable:   "Dostępny",
	StatusReserved:    "Zarezerwowany",
	StatusUnavailable: "Niedostępny",
	StatusMaintenance: "W serwisie",
}

func (c Category) Valid() bool { _, ok := categoryLabels[c]; return ok }
func (s Status) Valid() bool   { _, ok := statusLabels[s]; return ok }

// Label returns the Polish display label for the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Label returns the Polish display label for the status.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Categories lists every valid category.
func Categories() []Category {
	return []Category{
		CategoryEquipment, CategoryMedical, CategoryVehicle, CategoryShelter,
		CategoryPersonnel, CategoryFood, CategoryWater, CategoryPower, CategoryOther,
	}
}

// Statuses lists every valid status.
func Statuses() []Status {
	return []Status{StatusAvailable, StatusReserved, StatusUnavailable, StatusMaintenance}
}

// Location is where a resource is stationed. Coordinates may be absent
// for records ingested without a position fix.
type Location struct {
	Name        string          `json:"name" validate:"required"`
	Address     string          `json:"address"`
	Coordinates *geo.Coordinate `json:"coordinates,omitempty"`
}

// Telemetry carries optional device readings; any subset may be absent.
type Telemetry struct {
	Battery     *float64   `json:"battery,omitempty" validate:"omitempty,gte=0,lte=100"`
	Fuel        *float64   `json:"fuel,omitempty" validate:"omitempty,gte=0,lte=100"`
	Temperature *float64   `json:"temperature,omitempty"`
	LastSignal  *time.Time `json:"lastSignal,omitempty"`
}

// Resource is the central entity: an emergency-response asset owned by
// an organization at a location.
type Resource struct {
	ID           string     `json:"id"`
	Name         string     `json:"name" validate:"required"`
	Description  string     `json:"description"`
	Quantity     int        `json:"quantity" validate:"gte=0"`
	Unit         string     `json:"unit" validate:"required"`
	Category     Category   `json:"category" validate:"required"`
	Status       Status     `json:"status" validate:"required"`
	Location     Location   `json:"location"`
	Organization string     `json:"organization" validate:"required"`
	LastUpdated  time.Time  `json:"lastUpdated"`
	QRCode       string     `json:"qrCode,omitempty"`
	Telemetry    *Telemetry `json:"telemetry,omitempty"`
}

// AnnotatedResource is a Resource plus the derived commune name. Never
// persisted; recomputed whenever the base collection changes.
type AnnotatedResource struct {
	Resource
	CommuneName string `json:"communeName,omitempty"`
}

// Annotate wraps resources without commune names, preserving order.
func Annotate(resources []Resource) []AnnotatedResource {
	out := make([]AnnotatedResource, len(resources))
	for i, r := range resources {
		out[i] = AnnotatedResource{Resource: r}
	}
	return out
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural constraints plus the closed enumerations
// and WGS84 coordinate bounds.
func (r *Resource) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if !r.Category.Valid() {
		return &EnumError{Field: "category", Value: string(r.Category)}
	}
	if !r.Status.Valid() {
		return &EnumError{Field: "status", Value: string(r.Status)}
	}
	if c := r.Location.Coordinates; c != nil && !c.Valid() {
		return &EnumError{Field: "coordinates", Value: "out of WGS84 bounds"}
	}
	return nil
}

// EnumError reports a value outside a closed enumeration.
type EnumError struct {
	Field string
	Value string
}

func (e *EnumError) Error() string { return "invalid " + e.Field + ": " + e.Value }
