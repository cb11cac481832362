package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"themisai-backend/llm"
	"themisai-backend/logger"
	"themisai-backend/models"
)

// LawyerKeywords force LAWYER_REC without asking the model
var LawyerKeywords = []string{"pengacara", "advokat", "lawyer", "kuasa hukum"}

// Classification sources
const (
	SourceKeyword  = "keyword"
	SourceModel    = "model"
	SourceFallback = "fallback"
)

const (
	DefaultClassificationTimeout   = 60 * time.Second
	DefaultClassificationMaxTokens = 4
)

// HasLawyerKeyword reports whether the message mentions a lawyer, case-insensitively
func HasLawyerKeyword(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range LawyerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Classification is the routed intent and how it was decided
type Classification struct {
	Intent models.Intent
	Source string
	Raw    string
}

// IntentClassifier applies the keyword rule, then asks a model for a label
type IntentClassifier struct {
	chat      llm.Chat
	model     string
	timeout   time.Duration
	maxTokens int
	logger    logger.Logger
}

// IntentClassifierOption is a functional option for IntentClassifier
type IntentClassifierOption func(*IntentClassifier)

// ClassifierWithModel overrides the client's default model
func ClassifierWithModel(model string) IntentClassifierOption {
	return func(c *IntentClassifier) {
		c.model = model
	}
}

// ClassifierWithTimeout bounds the model call
func ClassifierWithTimeout(d time.Duration) IntentClassifierOption {
	return func(c *IntentClassifier) {
		c.timeout = d
	}
}

// ClassifierWithMaxTokens sets the label token budget
func ClassifierWithMaxTokens(n int) IntentClassifierOption {
	return func(c *IntentClassifier) {
		c.maxTokens = n
	}
}

// ClassifierWithLogger sets the logger
func ClassifierWithLogger(l logger.Logger) IntentClassifierOption {
	return func(c *IntentClassifier) {
		c.logger = l
	}
}

// NewIntentClassifier creates a classifier backed by chat
func NewIntentClassifier(chat llm.Chat, opts ...IntentClassifierOption) *IntentClassifier {
	c := &IntentClassifier{
		chat:      chat,
		timeout:   DefaultClassificationTimeout,
		maxTokens: DefaultClassificationMaxTokens,
		logger:    logger.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the intent of message. Model errors are returned; unknown labels become NON_PIDANA.
func (c *IntentClassifier) Classify(ctx context.Context, message string) (Classification, error) {
	if HasLawyerKeyword(message) {
		return Classification{Intent: models.IntentLawyerRec, Source: SourceKeyword}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.chat.Complete(ctx, llm.ChatRequest{
		Model:       c.model,
		System:      IntentSystemPrompt,
		User:        message,
		Temperature: 0,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return Classification{}, fmt.Errorf("intent classification failed: %w", err)
	}

	intent, ok := models.ParseIntent(raw)
	if !ok {
		c.logger.Warn("unrecognised intent label, falling back", "label", raw, "intent", intent)
		return Classification{Intent: intent, Source: SourceFallback, Raw: raw}, nil
	}
	return Classification{Intent: intent, Source: SourceModel, Raw: raw}, nil
}
