package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"themisai-backend/models"
)

var coordinateKeys = []string{"latitude", "longitude", "lat", "lon"}

// LawyerRecord keeps every scraped field of a lawyer next to its parsed form
type LawyerRecord struct {
	Lawyer models.Lawyer
	Raw    map[string]any
}

// ParseLawyerRecord decodes one line of the lawyer corpus input
func ParseLawyerRecord(line []byte) (LawyerRecord, error) {
	var rec LawyerRecord
	if err := json.Unmarshal(line, &rec.Lawyer); err != nil {
		return rec, fmt.Errorf("invalid lawyer record: %w", err)
	}
	if err := json.Unmarshal(line, &rec.Raw); err != nil {
		return rec, fmt.Errorf("invalid lawyer record: %w", err)
	}
	return rec, nil
}

// LawyerEmbeddingText joins name, status, address, specialties and free text with " | "
func LawyerEmbeddingText(rec LawyerRecord) string {
	name := rec.Lawyer.Name
	if name == "" {
		name = rawString(rec.Raw, "nama")
	}
	status := rawString(rec.Raw, "status")

	parts := []string{name}
	if status != "" {
		parts = append(parts, "Status: "+status)
	}
	if rec.Lawyer.OfficeAddress != "" {
		parts = append(parts, "Alamat: "+rec.Lawyer.OfficeAddress)
	}
	if len(rec.Lawyer.Specialties) > 0 {
		parts = append(parts, "Spesialisasi: "+strings.Join(rec.Lawyer.Specialties, ", "))
	}
	parts = append(parts, rec.Lawyer.Text)

	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " | ")
}

// Metadata is the record written to the lawyer metadata file: the scraped fields,
// text replaced by the embedding text, and coordinates removed unless both are present.
func (rec LawyerRecord) Metadata(text string) map[string]any {
	out := make(map[string]any, len(rec.Raw)+1)
	for k, v := range rec.Raw {
		out[k] = v
	}
	out["text"] = text

	for _, k := range coordinateKeys {
		delete(out, k)
	}
	if loc, ok := rec.Lawyer.Location(); ok {
		out["latitude"] = loc.Lat
		out["longitude"] = loc.Lon
	}
	return out
}

func rawString(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}
