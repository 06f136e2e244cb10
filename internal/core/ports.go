//go:generate go run go.uber.org/mock/mockgen -source=ports.go -destination=../mocks/mock_ports.go -package=mocks
package core

import (
	"context"
)

// LanguageModelJudge asks a generative model how likely a message is a scam
type LanguageModelJudge interface {
	// Judge returns a confidence in [0,1] and a free-text justification
	Judge(ctx context.Context, text string) (*Judgement, error)
}

// SpamClassifier labels a message as spam or not
type SpamClassifier interface {
	Classify(ctx context.Context, text string) (SpamLabel, error)
}

// URLReputationChecker reports whether a URL is known to be malicious
type URLReputationChecker interface {
	Check(ctx context.Context, url string) (URLReputation, error)
}

// VerdictRepository persists verdicts keyed by message content
type VerdictRepository interface {
	// FindByContent returns ErrNotFound when no verdict exists for content
	FindByContent(ctx context.Context, content string) (*Verdict, error)

	// Insert stores a new verdict, assigning an ID when empty
	Insert(ctx context.Context, verdict *Verdict) error

	// UpdateByID replaces the stored verdict with the given ID
	UpdateByID(ctx context.Context, id string, verdict *Verdict) error

	// CountByTier counts stored verdicts in a risk tier
	CountByTier(ctx context.Context, tier RiskTier) (int, error)

	// Random returns an arbitrary stored verdict
	Random(ctx context.Context) (*Verdict, error)

	// Close releases the underlying resources
	Close() error
}
