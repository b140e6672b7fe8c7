package store

import (
	"time"

	"guardian/internal/geo"
	"guardian/internal/models"
)

// Demo dataset: emergency-response assets across Warsaw, Kraków and
// Gdańsk. Used by the memory store and by the migrate seeder.

func coord(lat, lng float64) *geo.Coordinate { return &geo.Coordinate{Lat: lat, Lng: lng} }

func f64(v float64) *float64 { return &v }

func at(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func atp(s string) *time.Time {
	t := at(s)
	return &t
}

// SeedResources returns the demo resource fleet.
func SeedResources() []models.Resource {
	return []models.Resource{
		{
			ID: "r1", Name: "Agregat prądotwórczy 15kVA",
			Description: "Agregat prądotwórczy 15kVA diesel, mobilny na przyczepie",
			Quantity:    2, Unit: "szt", Category: models.CategoryPower, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Magazyn Główny PSP", Address: "ul. Strażacka 1, 00-001 Warszawa", Coordinates: coord(52.2297, 21.0122)},
			Organization: "Straż Pożarna", LastUpdated: at("2023-05-10T10:30:00Z"),
			Telemetry: &models.Telemetry{Battery: f64(100), Fuel: f64(98), Temperature: f64(21), LastSignal: atp("2023-05-10T10:25:00Z")},
		},
		{
			ID: "r2", Name: "Wóz strażacki GCBA 5/32",
			Description: "Ciężki samochód gaśniczy na podwoziu MAN",
			Quantity:    1, Unit: "szt", Category: models.CategoryVehicle, Status: models.StatusUnavailable,
			Location:     models.Location{Name: "Jednostka Ratowniczo-Gaśnicza nr 3", Address: "ul. Polna 14, 00-625 Warszawa", Coordinates: coord(52.2180, 21.0220)},
			Organization: "Straż Pożarna", LastUpdated: at("2023-05-09T16:45:00Z"),
			Telemetry: &models.Telemetry{Fuel: f64(45), LastSignal: atp("2023-05-09T16:40:00Z")},
		},
		{
			ID: "r3", Name: "Materace składane",
			Description: "Materace składane pojedyncze 190x90 cm",
			Quantity:    50, Unit: "szt", Category: models.CategoryShelter, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Magazyn Miejski", Address: "ul. Magazynowa 8, 00-811 Warszawa", Coordinates: coord(52.2310, 20.9800)},
			Organization: "Urząd Miasta", LastUpdated: at("2023-04-28T09:15:00Z"),
		},
		{
			ID: "r4", Name: "Stacja uzdatniania wody mobilna",
			Description: "Mobilna stacja uzdatniająca wodę, wydajność 2000l/h",
			Quantity:    1, Unit: "szt", Category: models.CategoryWater, Status: models.StatusMaintenance,
			Location:     models.Location{Name: "Magazyn Miejski", Address: "ul. Magazynowa 8, 00-811 Warszawa", Coordinates: coord(52.2310, 20.9800)},
			Organization: "Urząd Miasta", LastUpdated: at("2023-05-02T13:40:00Z"),
			Telemetry: &models.Telemetry{Battery: f64(78), LastSignal: atp("2023-05-01T18:20:00Z")},
		},
		{
			ID: "r5", Name: "Namiot pneumatyczny 6x10m",
			Description: "Namiot pneumatyczny 6x10m, ogrzewany, 50 miejsc",
			Quantity:    4, Unit: "szt", Category: models.CategoryShelter, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Magazyn PCK", Address: "ul. Czerwonego Krzyża 5, 00-355 Warszawa", Coordinates: coord(52.2400, 21.0000)},
			Organization: "Czerwony Krzyż", LastUpdated: at("2023-05-08T11:20:00Z"),
		},
		{
			ID: "r6", Name: "Zespół ratownictwa medycznego",
			Description: "ZRM podstawowy: 2 ratowników medycznych + kierowca",
			Quantity:    8, Unit: "zespół", Category: models.CategoryPersonnel, Status: models.StatusReserved,
			Location:     models.Location{Name: "Stacja Pogotowia Ratunkowego", Address: "ul. Hoża 56, 00-682 Warszawa", Coordinates: coord(52.2220, 21.0150)},
			Organization: "Pogotowie Ratunkowe", LastUpdated: at("2023-05-10T08:00:00Z"),
		},
		{
			ID: "r7", Name: "Racje żywnościowe długoterminowe",
			Description: "Racje żywnościowe 2000kcal/dzień, termin ważności 5 lat",
			Quantity:    1000, Unit: "szt", Category: models.CategoryFood, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Magazyn Wojewódzki", Address: "ul. Reymonta 28, 01-842 Warszawa", Coordinates: coord(52.2500, 20.9500)},
			Organization: "Urząd Wojewódzki", LastUpdated: at("2023-03-15T13:30:00Z"),
		},
		{
			ID: "r8", Name: "Woda pitna butelkowana 1,5L",
			Description: "Woda pitna niegazowana w butelkach 1,5L",
			Quantity:    5000, Unit: "szt", Category: models.CategoryWater, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Magazyn Miejski", Address: "ul. Magazynowa 8, 00-811 Warszawa", Coordinates: coord(52.2310, 20.9800)},
			Organization: "Urząd Miasta", LastUpdated: at("2023-04-20T09:45:00Z"),
		},
		{
			ID: "r9", Name: "Defibrylator AED",
			Description: "Automatyczny defibrylator zewnętrzny z instrukcjami głosowymi",
			Quantity:    10, Unit: "szt", Category: models.CategoryMedical, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Magazyn PCK", Address: "ul. Czerwonego Krzyża 5, 00-355 Warszawa", Coordinates: coord(52.2400, 21.0000)},
			Organization: "Czerwony Krzyż", LastUpdated: at("2023-04-28T14:15:00Z"),
			Telemetry: &models.Telemetry{Battery: f64(95), LastSignal: atp("2023-04-28T14:10:00Z")},
		},
		{
			ID: "r10", Name: "Łódka ratunkowa",
			Description: "Łódź ratunkowa z silnikiem zaburtowym 15KM",
			Quantity:    3, Unit: "szt", Category: models.CategoryEquipment, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Jednostka Ratownictwa Wodnego", Address: "ul. Wybrzeże Kościuszkowskie 2, 00-390 Warszawa", Coordinates: coord(52.2370, 21.0380)},
			Organization: "WOPR", LastUpdated: at("2023-05-01T09:30:00Z"),
			Telemetry: &models.Telemetry{Fuel: f64(100), LastSignal: atp("2023-05-01T09:25:00Z")},
		},
		{
			ID: "r11", Name: "Koce termiczne",
			Description: "Koce termiczne ratunkowe, folia NRC",
			Quantity:    500, Unit: "szt", Category: models.CategoryMedical, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Magazyn PCK", Address: "ul. Czerwonego Krzyża 5, 00-355 Warszawa", Coordinates: coord(52.2400, 21.0000)},
			Organization: "Czerwony Krzyż", LastUpdated: at("2023-04-15T10:00:00Z"),
		},
		{
			ID: "r12", Name: "Zestaw pomp wysokowydajnych",
			Description: "Pompy wysokowydajne 4000l/min, elektryczne",
			Quantity:    5, Unit: "zestaw", Category: models.CategoryEquipment, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Magazyn Główny PSP", Address: "ul. Strażacka 1, 00-001 Warszawa", Coordinates: coord(52.2297, 21.0122)},
			Organization: "Straż Pożarna", LastUpdated: at("2023-05-05T11:30:00Z"),
			Telemetry: &models.Telemetry{Battery: f64(100), LastSignal: atp("2023-05-05T11:25:00Z")},
		},
		{
			ID: "kr1", Name: "Agregat prądotwórczy 20kVA",
			Description: "Agregat prądotwórczy 20kVA diesel, stacjonarny",
			Quantity:    1, Unit: "szt", Category: models.CategoryPower, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Magazyn Miejski Kraków", Address: "ul. Centralna 53, 31-586 Kraków", Coordinates: coord(50.0647, 19.9450)},
			Organization: "Urząd Miasta Kraków", LastUpdated: at("2023-05-08T14:30:00Z"),
			Telemetry: &models.Telemetry{Battery: f64(100), Fuel: f64(87), Temperature: f64(22), LastSignal: atp("2023-05-08T14:25:00Z")},
		},
		{
			ID: "kr2", Name: "Samochód terenowy 4x4",
			Description: "Land Rover Defender, wyposażenie ratunkowe",
			Quantity:    2, Unit: "szt", Category: models.CategoryVehicle, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Komenda Miejska PSP Kraków", Address: "ul. Westerplatte 19, 31-033 Kraków", Coordinates: coord(50.0591, 19.9400)},
			Organization: "Straż Pożarna", LastUpdated: at("2023-05-09T09:15:00Z"),
			Telemetry: &models.Telemetry{Fuel: f64(95), LastSignal: atp("2023-05-09T09:10:00Z")},
		},
		{
			ID: "kr3", Name: "Łóżka polowe",
			Description: "Łóżka polowe składane z materacami",
			Quantity:    75, Unit: "szt", Category: models.CategoryShelter, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Magazyn PCK Kraków", Address: "ul. Studencka 19, 31-116 Kraków", Coordinates: coord(50.0637, 19.9318)},
			Organization: "Czerwony Krzyż", LastUpdated: at("2023-05-01T10:45:00Z"),
		},
		{
			ID: "gd1", Name: "Kontener mieszkalny",
			Description: "Kontenery mieszkalne ocieplone 6x2,4m z wyposażeniem",
			Quantity:    8, Unit: "szt", Category: models.CategoryShelter, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Baza Logistyczna Gdańsk", Address: "ul. Oliwska 35, 80-563 Gdańsk", Coordinates: coord(54.3520, 18.6466)},
			Organization: "Urząd Wojewódzki Pomorski", LastUpdated: at("2023-05-07T12:10:00Z"),
		},
		{
			ID: "gd2", Name: "Łódź ratownicza motorowa",
			Description: "Łódź motorowa ratunkowa 15 osób",
			Quantity:    4, Unit: "szt", Category: models.CategoryVehicle, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Baza WOPR Gdańsk", Address: "ul. Stogi 20, 80-642 Gdańsk", Coordinates: coord(54.3700, 18.6700)},
			Organization: "WOPR", LastUpdated: at("2023-05-06T09:30:00Z"),
			Telemetry: &models.Telemetry{Fuel: f64(100), LastSignal: atp("2023-05-06T09:25:00Z")},
		},
		{
			ID: "gd3", Name: "Zespół nurków ratownictwa",
			Description: "Zespół nurków ratownictwa wodnego z wyposażeniem",
			Quantity:    2, Unit: "zespół", Category: models.CategoryPersonnel, Status: models.StatusAvailable,
			Location:     models.Location{Name: "Baza WOPR Gdańsk", Address: "ul. Stogi 20, 80-642 Gdańsk", Coordinates: coord(54.3700, 18.6700)},
			Organization: "WOPR", LastUpdated: at("2023-05-09T08:15:00Z"),
		},
	}
}

// SeedAlerts returns the demo alert feed.
func SeedAlerts() []models.SystemAlert {
	now := time.Now().UTC()
	return []models.SystemAlert{
		{
			ID: "1", Title: "Krytyczny poziom paliwa w agregacie",
			Description: "Agregat prądotwórczy 20kVA w lokalizacji Magazyn Miejski wymaga natychmiastowego uzupełnienia paliwa.",
			Severity:    models.SeverityCritical, Timestamp: now, Category: models.CategoryPower,
			ResourceID: "kr1", ActionLink: "/resources/kr1", ActionText: "Zobacz szczegóły",
		},
		{
			ID: "2", Title: "Zbliżający się termin przeglądu",
			Description: "Trzy zasoby wymagają przeglądu technicznego w ciągu najbliższych 7 dni.",
			Severity:    models.SeverityWarning, Timestamp: now,
			ActionLink: "/resources", ActionText: "Lista zasobów",
		},
		{
			ID: "3", Title: "Awaria systemu chłodzenia",
			Description: "Wykryto awarię systemu chłodzenia w mobilnej stacji uzdatniania wody. Wymagana natychmiastowa interwencja.",
			Severity:    models.SeverityCritical, Timestamp: now, Category: models.CategoryWater,
			ResourceID: "r4", ActionLink: "/resources/r4", ActionText: "Sprawdź urządzenie",
		},
		{
			ID: "4", Title: "Niski stan paliwa w pojazdach",
			Description: "Trzy pojazdy ratownicze mają stan paliwa poniżej 25%. Należy uzupełnić paliwo przed kolejną zmianą.",
			Severity:    models.SeverityWarning, Timestamp: now, Category: models.CategoryVehicle,
			ActionLink: "/resources?category=vehicle", ActionText: "Lista pojazdów",
		},
		{
			ID: "5", Title: "Przekroczony limit temperatury",
			Description: "Temperatura w magazynie żywności przekroczyła 15°C. Ryzyko uszkodzenia zapasów żywności.",
			Severity:    models.SeverityCritical, Timestamp: now, Category: models.CategoryFood,
			ActionLink: "/resources?category=food", ActionText: "Sprawdź magazyn",
		},
		{
			ID: "6", Title: "Kończący się termin ważności",
			Description: "Za 14 dni upływa termin ważności 200 racji żywnościowych.",
			Severity:    models.SeverityWarning, Timestamp: now, Category: models.CategoryFood,
			ResourceID: "r7", ActionLink: "/resources/r7", ActionText: "Szczegóły zasobu",
		},
		{
			ID: "7", Title: "Brak łączności z zespołem",
			Description: "Utracono łączność z zespołem ratownictwa medycznego #3. Ostatni kontakt: 15 minut temu.",
			Severity:    models.SeverityCritical, Timestamp: now, Category: models.CategoryPersonnel,
			ResourceID: "r6", ActionLink: "/resources/r6", ActionText: "Lokalizacja zespołu",
		},
		{
			ID: "8", Title: "Niski poziom baterii",
			Description: "Wykryto niski poziom baterii w 3 defibrylatorach AED. Wymagane natychmiastowe ładowanie.",
			Severity:    models.SeverityWarning, Timestamp: now, Category: models.CategoryMedical,
			ResourceID: "r9", ActionLink: "/resources/r9", ActionText: "Lista urządzeń",
		},
	}
}
