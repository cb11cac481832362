package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// LegalChunk represents a chunk of Indonesian legal text from the knowledge base.
// Chunks are produced by the offline index builder and never change while serving.
type LegalChunk struct {
	ID           string      `json:"id"`
	ChunkID      string      `json:"chunk_id"`
	Text         string      `json:"text"`
	Title        string      `json:"title"`
	URL          string      `json:"url"`
	DocType      string      `json:"doc_type"`
	Number       LooseString `json:"number"`
	Year         LooseString `json:"year"`
	Level        string      `json:"level"`
	CaseNumber   string      `json:"case_number"`
	DecisionDate string      `json:"decision_date"`
	Court        string      `json:"court"`
	Subject      string      `json:"subject"`
	Source       string      `json:"source"`
}

// LooseString accepts JSON strings, numbers and null. Scraped metadata is not
// consistent about "year": 2023 vs "year": "2023".
type LooseString string

// UnmarshalJSON implements json.Unmarshaler
func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = LooseString(str)
		return nil
	}
	*s = LooseString(strings.Trim(string(data), `"`))
	return nil
}

// String returns the underlying value
func (s LooseString) String() string {
	return string(s)
}
