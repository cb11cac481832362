package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"themisai-backend/logger"
	"themisai-backend/models"
	"themisai-backend/repository"
	"themisai-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MessageRouter routes one chat message to its intent handler
type MessageRouter interface {
	Route(ctx context.Context, req service.RouteRequest) (*models.AgentState, error)
}

// ProfileLoader loads the profile of a user
type ProfileLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Person, error)
}

// DocumentExcerpter renders attached documents as prompt text
type DocumentExcerpter interface {
	Excerpts(ctx context.Context, ids []uuid.UUID) (*service.ExcerptResult, error)
}

// ChatHandler handles HTTP requests for the chatbot
type ChatHandler struct {
	router    MessageRouter
	profiles  ProfileLoader
	documents DocumentExcerpter
	logger    logger.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(router MessageRouter, profiles ProfileLoader, documents DocumentExcerpter, l logger.Logger) *ChatHandler {
	if l == nil {
		l = logger.Default()
	}
	return &ChatHandler{
		router:    router,
		profiles:  profiles,
		documents: documents,
		logger:    l,
	}
}

// ChatRequest represents the request body for a chat message
type ChatRequest struct {
	Question    string   `json:"question" binding:"required"`
	UserID      string   `json:"user_id"`
	DocumentIDs []string `json:"document_ids"`
}

// ChatResponse is the routed intent and the reply
type ChatResponse struct {
	Intent    models.Intent     `json:"intent"`
	Answer    string            `json:"answer"`
	Documents []DocumentOutcome `json:"documents,omitempty"`
}

// DocumentOutcome reports whether an attached document made it into the prompt
type DocumentOutcome struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Used    bool      `json:"used"`
	Problem string    `json:"problem,omitempty"`
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "question must not be empty")
		return
	}

	ctx := c.Request.Context()

	var person *models.Person
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_USER_ID", "Invalid user_id format")
			return
		}
		person, err = loadProfile(ctx, h.profiles, userID)
		if err != nil {
			h.logger.Error("failed to load profile", "user_id", userID, "error", err)
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load user profile")
			return
		}
		if person == nil {
			h.logger.Warn("profile not found, continuing without it", "user_id", userID)
		}
	}

	docIDs, err := parseIDs(req.DocumentIDs)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_DOCUMENT_ID", err.Error())
		return
	}

	var extra string
	var outcomes []DocumentOutcome
	if len(docIDs) > 0 {
		excerpts, err := h.documents.Excerpts(ctx, docIDs)
		if err != nil {
			h.logger.Error("failed to load documents", "error", err)
			respondError(c, http.StatusInternalServerError, "DOCUMENT_LOAD_FAILED", "Failed to load attached documents")
			return
		}
		extra = excerpts.Text
		outcomes = documentOutcomes(excerpts)
	}

	state, err := h.router.Route(ctx, service.RouteRequest{
		Question:     question,
		Person:       person,
		ExtraContext: extra,
	})
	if err != nil {
		h.logger.Error("chat routing failed", "error", err)
		status, code, message := stageFailure(err)
		respondError(c, status, code, message)
		return
	}

	var answer string
	if state.Answer != nil {
		answer = *state.Answer
	}
	respondOK(c, http.StatusOK, ChatResponse{
		Intent:    state.Intent,
		Answer:    answer,
		Documents: outcomes,
	})
}

// loadProfile returns a nil person when the user has no profile
func loadProfile(ctx context.Context, profiles ProfileLoader, id uuid.UUID) (*models.Person, error) {
	person, err := profiles.GetByID(ctx, id)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, nil
	}
	return person, err
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid document_id format: %q", s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func documentOutcomes(res *service.ExcerptResult) []DocumentOutcome {
	out := make([]DocumentOutcome, 0, len(res.Excerpts))
	for _, e := range res.Excerpts {
		o := DocumentOutcome{ID: e.DocumentID, Name: e.Name, Used: e.Err == nil}
		if e.Err != nil {
			o.Problem = documentProblem(e.Err)
		}
		out = append(out, o)
	}
	return out
}

// documentProblem is the client-facing reason a document was skipped; details stay in the service log
func documentProblem(err error) string {
	if errors.Is(err, service.ErrDocumentNoText) {
		return "Document has no readable text"
	}
	return "Document could not be read"
}

// stageFailure maps a pipeline error to status, code and message
func stageFailure(err error) (int, string, string) {
	var stageErr *service.StageError
	if !errors.As(err, &stageErr) {
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process the message"
	}
	switch stageErr.Stage {
	case service.StageClassification:
		return http.StatusBadGateway, "CLASSIFICATION_FAILED", "Failed to classify the question"
	case service.StageRecommendation:
		return http.StatusBadGateway, "RECOMMENDATION_FAILED", "Failed to search lawyers"
	default:
		return http.StatusBadGateway, "GENERATION_FAILED", "Failed to generate an answer"
	}
}
