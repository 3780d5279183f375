// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/venuescout/internal/adapters/corpus"
	"github.com/okian/venuescout/internal/adapters/llm"
	"github.com/okian/venuescout/internal/domain/agents"
	"github.com/okian/venuescout/internal/domain/feedback"
	"github.com/okian/venuescout/internal/domain/model"
	"github.com/okian/venuescout/internal/domain/ranking"
	"github.com/okian/venuescout/internal/domain/retrieval"
	"github.com/okian/venuescout/pkg/logger"
	"github.com/okian/venuescout/pkg/metrics"
)

// explainTimeout bounds each explanation call on top of the HTTP client's
// own timeout, so a slow collaborator cannot hold a request open.
const explainTimeout = 10 * time.Second

// Service implements the API dependencies for the venue recommender.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     *corpus.Store
	retriever *retrieval.Retriever
	ranker    *ranking.Ranker
	explainer llm.Explainer

	// Configuration
	dataDir         string
	topK            int
	defaultTopN     int
	emptyFullCredit bool
	agentWeights    map[string]float64
	blendAgent      float64
	blendSimilarity float64
	blendFeedback   float64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataDir sets the directory containing the corpus files.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithTopK sets how many similar historical events retrieval returns.
func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithDefaultTopN sets the recommendation count used when a caller
// does not ask for a specific one.
func WithDefaultTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultTopN = n
		}
	}
}

// WithEmptyRequirementsFullCredit flips the empty-requirement-set policy
// of the amenity and special agents.
func WithEmptyRequirementsFullCredit(enabled bool) Option {
	return func(s *Service) {
		s.emptyFullCredit = enabled
	}
}

// WithAgentWeights sets the per-agent composite weights.
func WithAgentWeights(weights map[string]float64) Option {
	return func(s *Service) {
		if len(weights) > 0 {
			s.agentWeights = weights
		}
	}
}

// WithBlendWeights sets the hybrid blend across agent composite,
// similarity and feedback.
func WithBlendWeights(agent, similarity, feedback float64) Option {
	return func(s *Service) {
		s.blendAgent = agent
		s.blendSimilarity = similarity
		s.blendFeedback = feedback
	}
}

// WithExplainer sets the explanation collaborator. Leaving it unset keeps
// explanations at the placeholder text.
func WithExplainer(e llm.Explainer) Option {
	return func(s *Service) {
		s.explainer = e
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:         "./data",
		topK:            6,
		defaultTopN:     3,
		blendAgent:      0.45,
		blendSimilarity: 0.45,
		blendFeedback:   0.10,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the corpus and builds the recommendation pipeline.
// A corpus that cannot be loaded is fatal; the service refuses to start.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting venue recommendation service...")

	store, err := corpus.Load(ctx, s.dataDir)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	s.store = store

	index := retrieval.NewIndex(store.Events())
	s.retriever = retrieval.NewRetriever(index, retrieval.WithTopK(s.topK))

	agentSet := agents.All(agents.WithEmptyRequirementsFullCredit(s.emptyFullCredit))

	rankerOpts := []ranking.Option{
		ranking.WithHybridWeights(s.blendAgent, s.blendSimilarity, s.blendFeedback),
		ranking.WithDefaultTopN(s.defaultTopN),
	}
	if s.agentWeights != nil {
		rankerOpts = append(rankerOpts, ranking.WithAgentWeights(s.agentWeights))
	}
	s.ranker = ranking.NewRanker(store, agentSet, feedback.NewScorer(), rankerOpts...)

	metrics.UpdateCorpusSizes(store.VenueCount(), store.RequestCount(), store.EventCount())

	s.started = true
	s.logger.Info(ctx, "venue recommendation service started",
		logger.Int("venues", store.VenueCount()),
		logger.Int("requests", store.RequestCount()),
		logger.Int("events", store.EventCount()),
		logger.Bool("explainer", s.explainer != nil),
	)

	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "venue recommendation service stopped")
}

// Recommend produces ranked venue recommendations for the given event
// request. topN <= 0 asks for the configured default.
func (s *Service) Recommend(ctx context.Context, eventID string, topN int) (model.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return model.Result{}, ErrNotStarted
	}

	req, err := s.store.RequestByID(ctx, eventID)
	if err != nil {
		return model.Result{}, fmt.Errorf("event request %s: %w", eventID, err)
	}

	retrievalStart := time.Now()
	candidates := s.retriever.Retrieve(ctx, req)
	metrics.RecordRetrievalLatency(float64(time.Since(retrievalStart).Milliseconds()))

	recommendations, err := s.ranker.Rank(ctx, req, candidates, topN)
	if err != nil {
		metrics.RecordRecommendationEmpty()
		return model.Result{}, fmt.Errorf("rank candidates: %w", err)
	}

	s.explainAll(ctx, req, recommendations)

	metrics.RecordRecommendationServed()
	s.logger.Debug(ctx, "served recommendations",
		logger.String("eventID", eventID),
		logger.Int("count", len(recommendations)),
	)

	return model.Result{
		RequestID:       uuid.NewString(),
		EventID:         eventID,
		Recommendations: recommendations,
	}, nil
}

// explainAll fills the explanation of every recommendation, concurrently.
// Failures degrade to the placeholder text rather than failing the request.
func (s *Service) explainAll(ctx context.Context, req *model.EventRequest, recs []model.Recommendation) {
	if s.explainer == nil {
		for i := range recs {
			recs[i].Analysis.Explanation = llm.Placeholder
		}
		return
	}

	var wg sync.WaitGroup
	for i := range recs {
		wg.Add(1)
		go func(rec *model.Recommendation) {
			defer wg.Done()
			rec.Analysis.Explanation = s.explain(ctx, req, rec)
		}(&recs[i])
	}
	wg.Wait()
}

func (s *Service) explain(ctx context.Context, req *model.EventRequest, rec *model.Recommendation) string {
	metrics.RecordExplanationRequest()

	ctx, cancel := context.WithTimeout(ctx, explainTimeout)
	defer cancel()

	start := time.Now()
	text, err := s.explainer.Explain(ctx, llm.BuildPrompt(req, rec))
	metrics.RecordExplanationLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordExplanationFailure()
		s.logger.Warn(ctx, "explanation failed, using placeholder",
			logger.String("venueID", rec.VenueID),
			logger.Error(err),
		)
		return llm.Placeholder
	}
	return text
}

// GetStats returns service statistics for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"retrieval_top_k":   s.topK,
		"default_top_n":     s.defaultTopN,
		"explainer_enabled": s.explainer != nil,
	}
	if s.store != nil {
		stats["venues"] = s.store.VenueCount()
		stats["event_requests"] = s.store.RequestCount()
		stats["historical_events"] = s.store.EventCount()
	}
	return stats
}
