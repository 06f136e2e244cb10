package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// OutcomeStatus tags how a classifier call settled
type OutcomeStatus string

const (
	Succeeded OutcomeStatus = "succeeded"
	Failed    OutcomeStatus = "failed"
	Skipped   OutcomeStatus = "skipped"
)

// Outcome is the settled result of one classifier call
type Outcome[T any] struct {
	Status  OutcomeStatus
	Value   T
	Err     *ClassifierError
	Elapsed time.Duration
}

// FanOutResult holds the three independent outcomes
type FanOutResult struct {
	LM   Outcome[*Judgement]
	Spam Outcome[SpamLabel]
	URL  Outcome[URLReputation]
}

// AnyFailed reports whether at least one classifier call errored
func (r *FanOutResult) AnyFailed() bool {
	return r.LM.Status == Failed || r.Spam.Status == Failed || r.URL.Status == Failed
}

// AnySucceeded reports whether at least one classifier answered
func (r *FanOutResult) AnySucceeded() bool {
	return r.LM.Status == Succeeded || r.Spam.Status == Succeeded || r.URL.Status == Succeeded
}

// Timeouts bounds each classifier call
type Timeouts struct {
	LanguageModel time.Duration
	Spam          time.Duration
	URL           time.Duration
}

// DefaultTimeouts are the per-classifier floors
var DefaultTimeouts = Timeouts{
	LanguageModel: 15 * time.Second,
	Spam:          15 * time.Second,
	URL:           45 * time.Second,
}

// FanOut issues the classifier calls concurrently
type FanOut struct {
	judge    LanguageModelJudge
	spam     SpamClassifier
	urls     URLReputationChecker
	timeouts Timeouts
	logger   *zap.Logger
}

// NewFanOut creates a new fan-out orchestrator. Nil clients settle as failed.
func NewFanOut(
	judge LanguageModelJudge,
	spam SpamClassifier,
	urls URLReputationChecker,
	timeouts Timeouts,
	logger *zap.Logger,
) *FanOut {
	return &FanOut{
		judge:    judge,
		spam:     spam,
		urls:     urls,
		timeouts: timeouts,
		logger:   logger,
	}
}

// Run calls every applicable classifier in parallel and waits for all of them.
// A failure of one call never cancels its siblings; the URL checker is skipped
// when url is empty.
func (f *FanOut) Run(ctx context.Context, text string, url string) *FanOutResult {
	var (
		wg     sync.WaitGroup
		result FanOutResult
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		if f.judge == nil {
			result.LM = unavailable[*Judgement](ClassifierLanguageModel)
			return
		}
		result.LM = settle(ctx, ClassifierLanguageModel, f.timeouts.LanguageModel, func(ctx context.Context) (*Judgement, error) {
			j, err := f.judge.Judge(ctx, text)
			if err == nil && j == nil {
				return nil, fmt.Errorf("empty judgement: %w", ErrMalformedResponse)
			}
			return j, err
		})
	}()

	go func() {
		defer wg.Done()
		if f.spam == nil {
			result.Spam = unavailable[SpamLabel](ClassifierSpam)
			return
		}
		result.Spam = settle(ctx, ClassifierSpam, f.timeouts.Spam, func(ctx context.Context) (SpamLabel, error) {
			return f.spam.Classify(ctx, text)
		})
	}()

	go func() {
		defer wg.Done()
		switch {
		case url == "":
			result.URL = Outcome[URLReputation]{Status: Skipped, Value: URLNoURL}
		case f.urls == nil:
			result.URL = unavailable[URLReputation](ClassifierURL)
		default:
			result.URL = settle(ctx, ClassifierURL, f.timeouts.URL, func(ctx context.Context) (URLReputation, error) {
				return f.urls.Check(ctx, url)
			})
		}
	}()

	wg.Wait()

	f.logOutcome(ClassifierLanguageModel, result.LM.Status, result.LM.Err, result.LM.Elapsed)
	f.logOutcome(ClassifierSpam, result.Spam.Status, result.Spam.Err, result.Spam.Elapsed)
	f.logOutcome(ClassifierURL, result.URL.Status, result.URL.Err, result.URL.Elapsed)

	return &result
}

func (f *FanOut) logOutcome(c Classifier, status OutcomeStatus, err *ClassifierError, elapsed time.Duration) {
	if status == Failed {
		f.logger.Warn("Classifier call failed",
			zap.String("classifier", string(c)),
			zap.String("cause", string(err.Cause)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err.Err))
		return
	}
	f.logger.Debug("Classifier call settled",
		zap.String("classifier", string(c)),
		zap.String("status", string(status)),
		zap.Duration("elapsed", elapsed))
}

type settled[T any] struct {
	value T
	err   error
}

// settle runs fn under its own deadline. The caller is released as soon as the
// deadline passes even if fn ignores its context.
func settle[T any](parent context.Context, c Classifier, timeout time.Duration, fn func(context.Context) (T, error)) Outcome[T] {
	start := time.Now()
	ctx, cancel := parent, context.CancelFunc(func() {})
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, timeout)
	}
	defer cancel()

	done := make(chan settled[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- settled[T]{err: fmt.Errorf("classifier panic: %v", r)}
			}
		}()
		v, err := fn(ctx)
		done <- settled[T]{value: v, err: err}
	}()

	var s settled[T]
	select {
	case s = <-done:
	case <-ctx.Done():
		s = settled[T]{err: ctx.Err()}
	}

	out := Outcome[T]{Elapsed: time.Since(start)}
	if s.err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			s.err = fmt.Errorf("after %s: %w", timeout, ErrTimeout)
		}
		out.Status = Failed
		out.Err = NewClassifierError(c, s.err)
		return out
	}

	out.Status = Succeeded
	out.Value = s.value
	return out
}

func unavailable[T any](c Classifier) Outcome[T] {
	return Outcome[T]{
		Status: Failed,
		Err:    &ClassifierError{Classifier: c, Cause: CauseUnavailable, Err: ErrUnavailable},
	}
}
