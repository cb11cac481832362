package service

import (
	"context"

	"themisai-backend/logger"
	"themisai-backend/metrics"
	"themisai-backend/models"
)

// Classifier decides the intent of a message
type Classifier interface {
	Classify(ctx context.Context, message string) (Classification, error)
}

// Answerer produces a retrieval-augmented answer
type Answerer interface {
	Answer(ctx context.Context, req AnswerRequest) (*AnswerResult, error)
}

// Recommender ranks lawyers for a profile
type Recommender interface {
	Recommend(ctx context.Context, req RecommendRequest) (*Recommendation, error)
}

// Messages are the fixed replies of the SAPA and NON_PIDANA handlers
type Messages struct {
	Sapa      string
	NonPidana string
}

type intentHandler func(ctx context.Context, state *models.AgentState) error

// Router classifies a message once and dispatches it to the handler of its intent
type Router struct {
	classifier  Classifier
	answerer    Answerer
	recommender Recommender
	messages    Messages
	handlers    map[models.Intent]intentHandler
	logger      logger.Logger
	metrics     *metrics.Recorder
}

// RouterOption is a functional option for Router
type RouterOption func(*Router)

// RouterWithClassifier sets the intent classifier
func RouterWithClassifier(c Classifier) RouterOption {
	return func(r *Router) {
		r.classifier = c
	}
}

// RouterWithAnswerer sets the PIDANA_QA backend
func RouterWithAnswerer(a Answerer) RouterOption {
	return func(r *Router) {
		r.answerer = a
	}
}

// RouterWithRecommender sets the LAWYER_REC backend
func RouterWithRecommender(rec Recommender) RouterOption {
	return func(r *Router) {
		r.recommender = rec
	}
}

// RouterWithMessages sets the fixed replies
func RouterWithMessages(m Messages) RouterOption {
	return func(r *Router) {
		r.messages = m
	}
}

// RouterWithLogger sets the logger
func RouterWithLogger(l logger.Logger) RouterOption {
	return func(r *Router) {
		r.logger = l
	}
}

// RouterWithMetrics sets the metrics recorder
func RouterWithMetrics(m *metrics.Recorder) RouterOption {
	return func(r *Router) {
		r.metrics = m
	}
}

// NewRouter creates a router
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{logger: logger.Default()}
	for _, opt := range opts {
		opt(r)
	}
	r.handlers = map[models.Intent]intentHandler{
		models.IntentPidanaQA:  r.handlePidanaQA,
		models.IntentLawyerRec: r.handleLawyerRec,
		models.IntentSapa:      r.handleSapa,
		models.IntentNonPidana: r.handleNonPidana,
	}
	return r
}

// RouteRequest is one inbound message
type RouteRequest struct {
	Question     string
	Person       *models.Person
	ExtraContext string
}

// Route classifies the message and runs exactly one handler.
// Classifier, generator and search failures are returned as *StageError.
func (r *Router) Route(ctx context.Context, req RouteRequest) (*models.AgentState, error) {
	state := &models.AgentState{
		Question:     req.Question,
		Intent:       models.IntentUnclassified,
		Person:       req.Person,
		ExtraContext: req.ExtraContext,
	}

	classification, err := r.classify(ctx, req.Question)
	if err != nil {
		return nil, r.fail(StageClassification, err)
	}
	state.Intent = classification.Intent
	r.metrics.ObserveIntent(string(state.Intent), classification.Source)

	handler, ok := r.handlers[state.Intent]
	if !ok {
		state.Intent = models.IntentNonPidana
		handler = r.handleNonPidana
	}
	if err := handler(ctx, state); err != nil {
		return nil, err
	}

	r.logger.Debug("message routed", "intent", state.Intent, "source", classification.Source)
	return state, nil
}

// classify applies the lawyer keyword rule before asking the classifier
func (r *Router) classify(ctx context.Context, question string) (Classification, error) {
	if HasLawyerKeyword(question) {
		return Classification{Intent: models.IntentLawyerRec, Source: SourceKeyword}, nil
	}
	return r.classifier.Classify(ctx, question)
}

func (r *Router) fail(stage Stage, err error) error {
	r.metrics.ObserveStageFailure(string(stage))
	r.logger.Error("pipeline stage failed", "stage", stage, "error", err)
	return &StageError{Stage: stage, Err: err}
}

func (r *Router) handleSapa(_ context.Context, state *models.AgentState) error {
	answer := r.messages.Sapa
	state.Answer = &answer
	return nil
}

func (r *Router) handleNonPidana(_ context.Context, state *models.AgentState) error {
	answer := r.messages.NonPidana
	state.Answer = &answer
	return nil
}

func (r *Router) handlePidanaQA(ctx context.Context, state *models.AgentState) error {
	res, err := r.answerer.Answer(ctx, AnswerRequest{
		Question:     state.Question,
		ExtraContext: state.ExtraContext,
	})
	if err != nil {
		return r.fail(StageGeneration, err)
	}
	state.Answer = &res.Answer
	return nil
}

func (r *Router) handleLawyerRec(ctx context.Context, state *models.AgentState) error {
	if state.Person == nil {
		answer := ProfileMissingMessage
		state.Answer = &answer
		return nil
	}

	rec, err := r.recommender.Recommend(ctx, RecommendRequest{
		Person:          state.Person,
		CaseDescription: state.Question,
	})
	if err != nil {
		return r.fail(StageRecommendation, err)
	}

	answer := FormatRecommendation(rec.Location, state.Question, rec)
	state.Answer = &answer
	return nil
}
