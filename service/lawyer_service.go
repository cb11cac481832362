package service

import (
	"context"
	"errors"
	"fmt"

	"themisai-backend/geocoder"
	"themisai-backend/logger"
	"themisai-backend/metrics"
	"themisai-backend/models"
	"themisai-backend/vectorindex"
)

// GeocodePolicy decides what happens when the user's address cannot be geocoded
type GeocodePolicy string

const (
	// GeocodePolicyFail reports the failure and does not rank
	GeocodePolicyFail GeocodePolicy = "fail"
	// GeocodePolicySemanticOnly ranks by semantic score alone
	GeocodePolicySemanticOnly GeocodePolicy = "semantic_only"
)

const (
	DefaultLawyerTopK  = 3
	DefaultSearchPoolK = 50
	DefaultAlpha       = 0.6
)

// LawyerSearcher runs semantic search over the lawyer corpus
type LawyerSearcher interface {
	Search(ctx context.Context, query string, k int) ([]vectorindex.Match[models.Lawyer], error)
}

// LawyerService recommends lawyers by fusing semantic and geographic scores
type LawyerService struct {
	searcher    LawyerSearcher
	geocoder    geocoder.Geocoder
	topK        int
	searchPoolK int
	alpha       float64
	policy      GeocodePolicy
	logger      logger.Logger
	metrics     *metrics.Recorder
}

// LawyerServiceOption is a functional option for LawyerService
type LawyerServiceOption func(*LawyerService)

// LawyerWithSearcher sets the lawyer corpus
func LawyerWithSearcher(searcher LawyerSearcher) LawyerServiceOption {
	return func(s *LawyerService) {
		s.searcher = searcher
	}
}

// LawyerWithGeocoder sets the geocoder
func LawyerWithGeocoder(g geocoder.Geocoder) LawyerServiceOption {
	return func(s *LawyerService) {
		s.geocoder = g
	}
}

// LawyerWithTopK sets the number of returned lawyers
func LawyerWithTopK(k int) LawyerServiceOption {
	return func(s *LawyerService) {
		s.topK = k
	}
}

// LawyerWithSearchPoolK sets how many candidates are fetched before re-ranking
func LawyerWithSearchPoolK(k int) LawyerServiceOption {
	return func(s *LawyerService) {
		s.searchPoolK = k
	}
}

// LawyerWithAlpha sets the weight of the semantic score
func LawyerWithAlpha(alpha float64) LawyerServiceOption {
	return func(s *LawyerService) {
		s.alpha = alpha
	}
}

// LawyerWithGeocodePolicy sets the geocode failure policy
func LawyerWithGeocodePolicy(policy GeocodePolicy) LawyerServiceOption {
	return func(s *LawyerService) {
		s.policy = policy
	}
}

// LawyerWithLogger sets the logger
func LawyerWithLogger(l logger.Logger) LawyerServiceOption {
	return func(s *LawyerService) {
		s.logger = l
	}
}

// LawyerWithMetrics sets the metrics recorder
func LawyerWithMetrics(m *metrics.Recorder) LawyerServiceOption {
	return func(s *LawyerService) {
		s.metrics = m
	}
}

// NewLawyerService creates a new lawyer service
func NewLawyerService(opts ...LawyerServiceOption) *LawyerService {
	s := &LawyerService{
		topK:        DefaultLawyerTopK,
		searchPoolK: DefaultSearchPoolK,
		alpha:       DefaultAlpha,
		policy:      GeocodePolicyFail,
		logger:      logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.searchPoolK < s.topK {
		s.searchPoolK = s.topK
	}
	return s
}

// RecommendRequest represents a request for lawyer recommendations
type RecommendRequest struct {
	Person          *models.Person
	CaseDescription string
}

// Recommendation is the outcome of a request. Reason is set when no ranking was produced.
type Recommendation struct {
	Location     string
	Geocode      geocoder.Status
	Lawyers      []models.RankedLawyer
	SemanticOnly bool
	Reason       error
	Message      string
}

// Failed reports whether the request ended without a ranking
func (r *Recommendation) Failed() bool {
	return r.Reason != nil
}

// Recommend ranks lawyers for the case using the profile address as origin.
// Profile, address and geocoding problems are reported in the Recommendation;
// only search failures are returned as errors.
func (s *LawyerService) Recommend(ctx context.Context, req RecommendRequest) (*Recommendation, error) {
	address, err := BuildAddress(req.Person)
	if err != nil {
		return &Recommendation{Reason: err, Message: addressMessage(err)}, nil
	}

	rec := &Recommendation{Location: address}
	alpha := s.alpha
	var origin *models.GeoPoint

	geo := s.geocoder.Resolve(ctx, address)
	rec.Geocode = geo.Status
	s.metrics.ObserveGeocode(string(geo.Status))

	if geo.Found() {
		origin = &geo.Point
		if geo.DisplayName != "" {
			s.logger.Debug("geocoded user address", "address", address, "display_name", geo.DisplayName)
		}
	} else {
		if s.policy != GeocodePolicySemanticOnly {
			rec.Reason = ErrGeocodeFailed
			rec.Message = GeocodeFailedMessage
			return rec, nil
		}
		s.logger.Warn("geocode failed, ranking by semantic score only", "address", address, "status", geo.Status)
		rec.SemanticOnly = true
		alpha = 1
	}

	matches, err := s.searcher.Search(ctx, req.CaseDescription, s.searchPoolK)
	if err != nil {
		return nil, fmt.Errorf("lawyer search failed: %w", err)
	}
	s.metrics.ObserveRetrieval("lawyers", len(matches) > 0)

	rec.Lawyers = Rank(origin, matches, alpha, s.topK)
	return rec, nil
}

func addressMessage(err error) string {
	switch {
	case errors.Is(err, ErrProfileMissing):
		return ProfileMissingMessage
	case errors.Is(err, ErrAddressMissing):
		return AddressMissingMessage
	default:
		return AddressIncompleteMessage
	}
}
