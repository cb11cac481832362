package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"themisai-backend/llm"
	"themisai-backend/logger"
	"themisai-backend/metrics"
	"themisai-backend/models"
	"themisai-backend/vectorindex"
)

const (
	DefaultLegalTopK         = 2
	DefaultMaxTokens         = 2048
	DefaultDocumentMaxTokens = 1200
	DefaultTemperature       = 0.1
	DefaultGenerationTimeout = 300 * time.Second
)

// LegalRetriever runs semantic search over the legal corpus
type LegalRetriever interface {
	Search(ctx context.Context, query string, k int) ([]vectorindex.Match[models.LegalChunk], error)
}

// RAGService answers criminal-law questions from retrieved legal context
type RAGService struct {
	retriever         LegalRetriever
	chat              llm.Chat
	assembler         ContextAssembler
	topK              int
	model             string
	temperature       float64
	maxTokens         int
	documentMaxTokens int
	timeout           time.Duration
	logger            logger.Logger
	metrics           *metrics.Recorder
}

// RAGServiceOption is a functional option for RAGService
type RAGServiceOption func(*RAGService)

// RAGWithRetriever sets the legal corpus
func RAGWithRetriever(r LegalRetriever) RAGServiceOption {
	return func(s *RAGService) {
		s.retriever = r
	}
}

// RAGWithChat sets the generation model client
func RAGWithChat(chat llm.Chat) RAGServiceOption {
	return func(s *RAGService) {
		s.chat = chat
	}
}

// RAGWithAssembler sets the context budgets
func RAGWithAssembler(a ContextAssembler) RAGServiceOption {
	return func(s *RAGService) {
		s.assembler = a
	}
}

// RAGWithTopK sets how many chunks are retrieved
func RAGWithTopK(k int) RAGServiceOption {
	return func(s *RAGService) {
		s.topK = k
	}
}

// RAGWithModel overrides the client's default model
func RAGWithModel(model string) RAGServiceOption {
	return func(s *RAGService) {
		s.model = model
	}
}

// RAGWithTemperature sets the sampling temperature
func RAGWithTemperature(t float64) RAGServiceOption {
	return func(s *RAGService) {
		s.temperature = t
	}
}

// RAGWithMaxTokens sets the generation budgets without and with user documents
func RAGWithMaxTokens(plain, withDocuments int) RAGServiceOption {
	return func(s *RAGService) {
		s.maxTokens = plain
		s.documentMaxTokens = withDocuments
	}
}

// RAGWithTimeout bounds the generation call
func RAGWithTimeout(d time.Duration) RAGServiceOption {
	return func(s *RAGService) {
		s.timeout = d
	}
}

// RAGWithLogger sets the logger
func RAGWithLogger(l logger.Logger) RAGServiceOption {
	return func(s *RAGService) {
		s.logger = l
	}
}

// RAGWithMetrics sets the metrics recorder
func RAGWithMetrics(m *metrics.Recorder) RAGServiceOption {
	return func(s *RAGService) {
		s.metrics = m
	}
}

// NewRAGService creates a new RAG service
func NewRAGService(opts ...RAGServiceOption) *RAGService {
	s := &RAGService{
		assembler:         NewContextAssembler(0, 0),
		topK:              DefaultLegalTopK,
		temperature:       DefaultTemperature,
		maxTokens:         DefaultMaxTokens,
		documentMaxTokens: DefaultDocumentMaxTokens,
		timeout:           DefaultGenerationTimeout,
		logger:            logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnswerRequest represents a legal question with optional user document text
type AnswerRequest struct {
	Question     string
	ExtraContext string
}

// AnswerResult is the generator's reply and the context it was given
type AnswerResult struct {
	Answer    string
	Sources   string
	Chunks    []models.LegalChunk
	Truncated bool
	MaxTokens int
}

// Answer retrieves context, assembles the prompt and returns the reply verbatim
func (s *RAGService) Answer(ctx context.Context, req AnswerRequest) (*AnswerResult, error) {
	matches, err := s.retriever.Search(ctx, req.Question, s.topK)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrievalFailed, err)
	}
	s.metrics.ObserveRetrieval("legal", len(matches) > 0)

	chunks := make([]models.LegalChunk, 0, len(matches))
	for _, m := range matches {
		chunks = append(chunks, m.Record)
	}
	if len(chunks) == 0 {
		s.logger.Warn("no legal context retrieved, using placeholder", "question", req.Question)
	}

	assembled := s.assembler.Assemble(chunks, req.ExtraContext)
	if assembled.Truncated {
		s.logger.Warn("context truncated", "max_chars", s.assembler.MaxChars)
	}

	maxTokens := s.maxTokens
	if strings.TrimSpace(req.ExtraContext) != "" {
		maxTokens = s.documentMaxTokens
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.chat.Complete(genCtx, llm.ChatRequest{
		Model:       s.model,
		System:      RAGSystemPrompt,
		User:        fmt.Sprintf(ragUserTemplate, req.Question, assembled.Context, assembled.Sources),
		Temperature: s.temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return &AnswerResult{
		Answer:    reply,
		Sources:   assembled.Sources,
		Chunks:    chunks,
		Truncated: assembled.Truncated,
		MaxTokens: maxTokens,
	}, nil
}
