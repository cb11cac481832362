package service

import (
	"errors"
	"fmt"
)

// Stage names the pipeline step that failed
type Stage string

const (
	StageClassification Stage = "classification"
	StageGeneration     Stage = "generation"
	StageRecommendation Stage = "recommendation"
)

// StageError is a hard failure that must be reported to the caller
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

var (
	ErrProfileMissing    = errors.New("user profile not available")
	ErrAddressMissing    = errors.New("user address not set")
	ErrAddressIncomplete = errors.New("user address has no city")
	ErrGeocodeFailed     = errors.New("failed to geocode user location")
	ErrRetrievalFailed   = errors.New("failed to retrieve legal context")
	ErrGenerationFailed  = errors.New("failed to generate answer")
	ErrDocumentNoText    = errors.New("document has no extractable text")
)
