package models

import "encoding/json"

// GeoPoint is a latitude/longitude pair in decimal degrees
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Lawyer represents a lawyer profile from the lawyer corpus
type Lawyer struct {
	Name          string   `json:"name"`
	OfficeAddress string   `json:"alamat_kantor"`
	Specialties   []string `json:"specialitas"`
	Text          string   `json:"text,omitempty"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

// UnmarshalJSON accepts the field spellings found in the scraped lawyer data
// and drops partial coordinate pairs.
func (l *Lawyer) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name         string   `json:"name"`
		AlamatKantor string   `json:"alamat_kantor"`
		Alamat       string   `json:"alamat"`
		Specialitas  []string `json:"specialitas"`
		Spesialisasi []string `json:"spesialisasi"`
		Text         string   `json:"text"`
		Latitude     *float64 `json:"latitude"`
		Longitude    *float64 `json:"longitude"`
		Lat          *float64 `json:"lat"`
		Lon          *float64 `json:"lon"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	l.Name = raw.Name
	l.OfficeAddress = raw.AlamatKantor
	if l.OfficeAddress == "" {
		l.OfficeAddress = raw.Alamat
	}
	l.Specialties = raw.Specialitas
	if len(l.Specialties) == 0 {
		l.Specialties = raw.Spesialisasi
	}
	l.Text = raw.Text

	lat, lon := raw.Latitude, raw.Longitude
	if lat == nil && lon == nil {
		lat, lon = raw.Lat, raw.Lon
	}
	if lat == nil || lon == nil {
		l.Latitude, l.Longitude = nil, nil
	} else {
		l.Latitude, l.Longitude = lat, lon
	}
	return nil
}

// Location returns the lawyer's office location, if known
func (l Lawyer) Location() (GeoPoint, bool) {
	if l.Latitude == nil || l.Longitude == nil {
		return GeoPoint{}, false
	}
	return GeoPoint{Lat: *l.Latitude, Lon: *l.Longitude}, true
}

// RankedLawyer is a per-request recommendation entry
type RankedLawyer struct {
	Name          string    `json:"name"`
	OfficeAddress string    `json:"alamat_kantor"`
	Specialties   []string  `json:"specialitas"`
	Location      *GeoPoint `json:"location,omitempty"`
	DistanceKM    *float64  `json:"distance_km"` // nil when the lawyer has no coordinates
	SemanticScore float64   `json:"semantic_score"`
	FinalScore    float64   `json:"final_score"`
}
