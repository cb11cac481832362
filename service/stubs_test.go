package service

import (
	"context"
	"sync"

	"themisai-backend/geocoder"
	"themisai-backend/llm"
	"themisai-backend/models"
	"themisai-backend/vectorindex"

	"github.com/google/uuid"
)

type stubChat struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []llm.ChatRequest
}

func (s *stubChat) Complete(_ context.Context, req llm.ChatRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return s.reply, s.err
}

func (s *stubChat) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

type stubLegalRetriever struct {
	matches []vectorindex.Match[models.LegalChunk]
	err     error
	lastK   int
}

func (s *stubLegalRetriever) Search(_ context.Context, _ string, k int) ([]vectorindex.Match[models.LegalChunk], error) {
	s.lastK = k
	return s.matches, s.err
}

type stubLawyerSearcher struct {
	matches []vectorindex.Match[models.Lawyer]
	err     error
	lastK   int
	calls   int
}

func (s *stubLawyerSearcher) Search(_ context.Context, _ string, k int) ([]vectorindex.Match[models.Lawyer], error) {
	s.calls++
	s.lastK = k
	if s.err != nil {
		return nil, s.err
	}
	if k < len(s.matches) {
		return s.matches[:k], nil
	}
	return s.matches, nil
}

type stubGeocoder struct {
	result    geocoder.Result
	addresses []string
}

func (s *stubGeocoder) Resolve(_ context.Context, address string) geocoder.Result {
	s.addresses = append(s.addresses, address)
	return s.result
}

type stubDocumentStore struct {
	docs    []*models.Document
	created []*models.Document
	err     error
}

func (s *stubDocumentStore) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*models.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*models.Document
	for _, id := range ids {
		for _, d := range s.docs {
			if d.ID == id {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func (s *stubDocumentStore) Create(_ context.Context, doc *models.Document) error {
	if s.err != nil {
		return s.err
	}
	doc.ID = uuid.New()
	s.created = append(s.created, doc)
	return nil
}

func ptr[T any](v T) *T { return &v }

func lawyer(name string, lat, lon *float64, specialties ...string) models.Lawyer {
	return models.Lawyer{
		Name:          name,
		OfficeAddress: "Kantor " + name,
		Specialties:   specialties,
		Latitude:      lat,
		Longitude:     lon,
	}
}

func personWithAddress(line1, city *string) *models.Person {
	return &models.Person{
		ID:       uuid.New(),
		FullName: "Budi",
		Address:  &models.Address{Line1: line1, City: city},
	}
}

var jakartaSelatan = models.GeoPoint{Lat: -6.2615, Lon: 106.8106}
