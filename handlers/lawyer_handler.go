package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"themisai-backend/geocoder"
	"themisai-backend/logger"
	"themisai-backend/models"
	"themisai-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LawyerRecommender ranks lawyers for a profile
type LawyerRecommender interface {
	Recommend(ctx context.Context, req service.RecommendRequest) (*service.Recommendation, error)
}

// LawyerHandler serves structured lawyer recommendations
type LawyerHandler struct {
	recommender LawyerRecommender
	profiles    ProfileLoader
	logger      logger.Logger
}

// NewLawyerHandler creates a new lawyer handler
func NewLawyerHandler(recommender LawyerRecommender, profiles ProfileLoader, l logger.Logger) *LawyerHandler {
	if l == nil {
		l = logger.Default()
	}
	return &LawyerHandler{recommender: recommender, profiles: profiles, logger: l}
}

// RecommendRequest represents the request body for a recommendation
type RecommendRequest struct {
	UserID          string `json:"user_id" binding:"required"`
	CaseDescription string `json:"case_description" binding:"required"`
}

// RecommendResponse is the ranked list for API clients
type RecommendResponse struct {
	Location     string                `json:"location"`
	Geocode      geocoder.Status       `json:"geocode_status"`
	SemanticOnly bool                  `json:"semantic_only"`
	Lawyers      []models.RankedLawyer `json:"lawyers"`
	Message      string                `json:"message,omitempty"`
}

// Recommend handles POST /api/lawyers/recommend
func (h *LawyerHandler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	caseDescription := strings.TrimSpace(req.CaseDescription)
	if caseDescription == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "case_description must not be empty")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_USER_ID", "Invalid user_id format")
		return
	}

	ctx := c.Request.Context()
	person, err := loadProfile(ctx, h.profiles, userID)
	if err != nil {
		h.logger.Error("failed to load profile", "user_id", userID, "error", err)
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load user profile")
		return
	}
	if person == nil {
		respondError(c, http.StatusNotFound, "PROFILE_NOT_FOUND", service.ProfileMissingMessage)
		return
	}

	rec, err := h.recommender.Recommend(ctx, service.RecommendRequest{
		Person:          person,
		CaseDescription: caseDescription,
	})
	if err != nil {
		h.logger.Error("lawyer recommendation failed", "user_id", userID, "error", err)
		respondError(c, http.StatusBadGateway, "RECOMMENDATION_FAILED", "Failed to search lawyers")
		return
	}
	if rec.Failed() {
		respondError(c, http.StatusUnprocessableEntity, reasonCode(rec.Reason), rec.Message)
		return
	}

	resp := RecommendResponse{
		Location:     rec.Location,
		Geocode:      rec.Geocode,
		SemanticOnly: rec.SemanticOnly,
		Lawyers:      rec.Lawyers,
	}
	if len(rec.Lawyers) == 0 {
		resp.Lawyers = []models.RankedLawyer{}
		resp.Message = service.NoLawyerFoundMessage
	}
	respondOK(c, http.StatusOK, resp)
}

func reasonCode(reason error) string {
	switch {
	case errors.Is(reason, service.ErrProfileMissing):
		return "PROFILE_NOT_FOUND"
	case errors.Is(reason, service.ErrAddressMissing):
		return "ADDRESS_MISSING"
	case errors.Is(reason, service.ErrAddressIncomplete):
		return "ADDRESS_INCOMPLETE"
	case errors.Is(reason, service.ErrGeocodeFailed):
		return "GEOCODE_FAILED"
	default:
		return "RECOMMENDATION_FAILED"
	}
}
