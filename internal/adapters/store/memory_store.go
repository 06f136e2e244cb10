package store

import (
	"context"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/core"
)

// MemoryStore is an in-memory implementation of the VerdictRepository interface
type MemoryStore struct {
	byKey  map[string]*core.Verdict
	byID   map[string]string
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		byKey:  make(map[string]*core.Verdict),
		byID:   make(map[string]string),
		logger: logger,
	}
}

// FindByContent retrieves the verdict for a message
func (s *MemoryStore) FindByContent(ctx context.Context, content string) (*core.Verdict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byKey[ContentKey(content)]
	if !ok {
		return nil, core.ErrNotFound
	}
	return clone(v), nil
}

// Insert stores a verdict, replacing any verdict with the same content
func (s *MemoryStore) Insert(ctx context.Context, verdict *core.Verdict) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ContentKey(verdict.Content)
	if existing, ok := s.byKey[key]; ok && verdict.ID == "" {
		verdict.ID = existing.ID
	}
	ensureID(verdict)

	s.byKey[key] = clone(verdict)
	s.byID[verdict.ID] = key
	return nil
}

// UpdateByID replaces the verdict with the given ID
func (s *MemoryStore) UpdateByID(ctx context.Context, id string, verdict *core.Verdict) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	oldKey, ok := s.byID[id]
	if !ok {
		return core.ErrNotFound
	}

	updated := clone(verdict)
	updated.ID = id
	newKey := ContentKey(updated.Content)
	if newKey != oldKey {
		delete(s.byKey, oldKey)
	}
	s.byKey[newKey] = updated
	s.byID[id] = newKey
	return nil
}

// CountByTier counts stored verdicts in a tier
func (s *MemoryStore) CountByTier(ctx context.Context, tier core.RiskTier) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.CountBy(lo.Values(s.byKey), func(v *core.Verdict) bool {
		return v.RiskTier == tier
	}), nil
}

// Random returns an arbitrary stored verdict
func (s *MemoryStore) Random(ctx context.Context) (*core.Verdict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.byKey) == 0 {
		return nil, core.ErrNotFound
	}
	return clone(lo.Sample(lo.Values(s.byKey))), nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.logger.Debug("Closing memory store", zap.Int("verdicts", len(s.byKey)))
	return nil
}
