package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mikey/smishguard/internal/utils"
)

const unavailableJustification = "Análisis del modelo de lenguaje no disponible"

// AnalysisService is the core service behind the analyze gateway
type AnalysisService struct {
	repo         VerdictRepository
	fanOut       *FanOut
	aggregator   *Aggregator
	freshness    FreshnessPolicy
	logger       *zap.Logger
	cacheEnabled bool
	validate     *validator.Validate
	inflight     singleflight.Group
	now          func() time.Time
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	repo VerdictRepository,
	fanOut *FanOut,
	aggregator *Aggregator,
	freshness FreshnessPolicy,
	logger *zap.Logger,
	cacheEnabled bool,
) *AnalysisService {
	validate := validator.New()
	_ = validate.RegisterValidation("notblank", validators.NotBlank)

	return &AnalysisService{
		repo:         repo,
		fanOut:       fanOut,
		aggregator:   aggregator,
		freshness:    freshness,
		logger:       logger,
		cacheEnabled: cacheEnabled && repo != nil,
		validate:     validate,
		now:          time.Now,
	}
}

// WithClock replaces the time source, used by tests
func (s *AnalysisService) WithClock(now func() time.Time) *AnalysisService {
	s.now = now
	return s
}

// Analyze returns the verdict for a message, serving a fresh stored verdict
// when one exists and running the classifiers otherwise
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalysisResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	var existing *Verdict
	if s.cacheEnabled {
		existing = s.lookup(ctx, req.Message)
		if existing != nil && s.freshness.IsFresh(existing, s.now()) {
			s.logger.Debug("Cache hit for message",
				zap.String("verdict_id", existing.ID),
				zap.Time("analyzed_at", existing.AnalyzedAt))
			return &AnalysisResult{Verdict: existing, FromCache: true, Persisted: true}, nil
		}
	}

	// Identical concurrent requests share one fan-out and one write. The shared
	// work outlives any single caller and is bounded by the per-classifier timeouts.
	shared := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(req.Message, func() (interface{}, error) {
		return s.analyze(shared, req, existing), nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		result := res.Val.(*AnalysisResult)
		if res.Shared {
			s.logger.Debug("Shared in-flight analysis for identical message")
			result = result.forCaller(req)
		}
		return result, nil
	case <-ctx.Done():
		s.logger.Debug("Caller left before analysis completed", zap.Error(ctx.Err()))
		return nil, ctx.Err()
	}
}

// lookup degrades store failures to a cache miss
func (s *AnalysisService) lookup(ctx context.Context, content string) *Verdict {
	verdict, err := s.repo.FindByContent(ctx, content)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("Verdict lookup failed, treating as cache miss", zap.Error(err))
		}
		return nil
	}
	return verdict
}

func (s *AnalysisService) analyze(ctx context.Context, req AnalyzeRequest, existing *Verdict) *AnalysisResult {
	url, hasURL := utils.PrimaryURL(req.Message)

	outcomes := s.fanOut.Run(ctx, req.Message, url)
	agg := s.aggregator.Aggregate(outcomes)

	verdict := &Verdict{
		Content:         req.Message,
		PhoneNumber:     req.PhoneNumber,
		ExtractedURL:    NoURL,
		Scores:          scoresFrom(outcomes, agg.Signals),
		WeightedScore:   agg.WeightedScore,
		TierScore:       agg.TierScore,
		RiskTier:        agg.Tier,
		WeightingScheme: agg.Weights.Scheme,
		AnalyzedAt:      s.now().UTC(),
	}
	if hasURL {
		verdict.ExtractedURL = url
	}

	s.logger.Info("Analyzed message",
		zap.String("tier", string(verdict.RiskTier)),
		zap.Int("tier_score", verdict.TierScore),
		zap.Float64("weighted_score", verdict.WeightedScore),
		zap.String("scheme", verdict.WeightingScheme),
		zap.Bool("has_url", hasURL))

	result := &AnalysisResult{Verdict: verdict, Outcomes: outcomes}
	if !s.cacheEnabled {
		return result
	}
	if outcomes.AnyFailed() {
		s.logger.Info("Skipping persistence of partial verdict")
		return result
	}

	result.Persisted = s.persist(ctx, verdict, existing)
	return result
}

// persist inserts a new verdict or replaces a stale one in place
func (s *AnalysisService) persist(ctx context.Context, verdict *Verdict, existing *Verdict) bool {
	var err error
	if existing != nil {
		verdict.ID = existing.ID
		err = s.repo.UpdateByID(ctx, existing.ID, verdict)
	} else {
		err = s.repo.Insert(ctx, verdict)
	}
	if err != nil {
		s.logger.Error("Failed to persist verdict", zap.Error(err))
		return false
	}
	return true
}

// Stats counts stored verdicts per tier
func (s *AnalysisService) Stats(ctx context.Context) (TierCounts, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("%w: no repository configured", ErrStore)
	}
	counts := make(TierCounts, len(Tiers))
	for _, tier := range Tiers {
		n, err := s.repo.CountByTier(ctx, tier)
		if err != nil {
			return nil, fmt.Errorf("count %s verdicts: %w", tier, err)
		}
		counts[tier] = n
	}
	return counts, nil
}

// RandomVerdict returns an arbitrary stored verdict
func (s *AnalysisService) RandomVerdict(ctx context.Context) (*Verdict, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("%w: no repository configured", ErrStore)
	}
	return s.repo.Random(ctx)
}

func scoresFrom(outcomes *FanOutResult, signals Signals) Scores {
	scores := Scores{
		LanguageModelScore: signals.LM,
		Justification:      unavailableJustification,
		SpamLabel:          SpamLabelUnknown,
		URLReputation:      URLUnknown,
	}
	if outcomes.LM.Status == Succeeded {
		scores.Justification = outcomes.LM.Value.Justification
	}
	if outcomes.Spam.Status == Succeeded {
		scores.SpamLabel = outcomes.Spam.Value
	}
	if outcomes.URL.Status != Failed {
		scores.URLReputation = outcomes.URL.Value
	}
	return scores
}
