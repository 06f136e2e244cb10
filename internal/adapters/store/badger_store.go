package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/core"
)

const (
	verdictPrefix = "verdict:"
	idPrefix      = "id:"
	maxTxnRetries = 3
)

// BadgerStore is a BadgerDB implementation of the VerdictRepository interface.
// Verdicts are JSON values under verdict:<sha256(content)> with an id:<id> index.
type BadgerStore struct {
	db     *badger.DB
	logger *zap.Logger
}

// NewBadgerStore opens a Badger database in dir
func NewBadgerStore(dir string, logger *zap.Logger) (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("failed to open Badger database: %w", err)
	}
	return &BadgerStore{db: db, logger: logger}, nil
}

func verdictKey(content string) []byte {
	return []byte(verdictPrefix + ContentKey(content))
}

func idKey(id string) []byte {
	return []byte(idPrefix + id)
}

// FindByContent retrieves the verdict for a message
func (s *BadgerStore) FindByContent(ctx context.Context, content string) (*core.Verdict, error) {
	var v core.Verdict
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(verdictKey(content))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &v)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("failed to read verdict", err)
	}
	return &v, nil
}

// Insert stores a verdict, replacing any verdict with the same content
func (s *BadgerStore) Insert(ctx context.Context, verdict *core.Verdict) error {
	err := s.update(func(txn *badger.Txn) error {
		key := verdictKey(verdict.Content)
		if verdict.ID == "" {
			if existing, err := getVerdict(txn, key); err == nil {
				verdict.ID = existing.ID
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		ensureID(verdict)
		return putVerdict(txn, key, verdict)
	})
	if err != nil {
		return storeErr("failed to insert verdict", err)
	}
	return nil
}

// UpdateByID replaces the verdict with the given ID
func (s *BadgerStore) UpdateByID(ctx context.Context, id string, verdict *core.Verdict) error {
	err := s.update(func(txn *badger.Txn) error {
		item, err := txn.Get(idKey(id))
		if err != nil {
			return err
		}
		oldKey, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		newKey := verdictKey(verdict.Content)
		if string(oldKey) != string(newKey) {
			if err := txn.Delete(oldKey); err != nil {
				return err
			}
		}

		updated := clone(verdict)
		updated.ID = id
		return putVerdict(txn, newKey, updated)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return core.ErrNotFound
	}
	if err != nil {
		return storeErr("failed to update verdict", err)
	}
	verdict.ID = id
	return nil
}

// CountByTier counts stored verdicts in a tier
func (s *BadgerStore) CountByTier(ctx context.Context, tier core.RiskTier) (int, error) {
	verdicts, err := s.all()
	if err != nil {
		return 0, storeErr("failed to count verdicts", err)
	}
	return lo.CountBy(verdicts, func(v core.Verdict) bool {
		return v.RiskTier == tier
	}), nil
}

// Random returns an arbitrary stored verdict
func (s *BadgerStore) Random(ctx context.Context) (*core.Verdict, error) {
	verdicts, err := s.all()
	if err != nil {
		return nil, storeErr("failed to read verdicts", err)
	}
	if len(verdicts) == 0 {
		return nil, core.ErrNotFound
	}
	v := lo.Sample(verdicts)
	return &v, nil
}

// Close closes the Badger database
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) all() ([]core.Verdict, error) {
	var verdicts []core.Verdict
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(verdictPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var v core.Verdict
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &v)
			}); err != nil {
				return err
			}
			verdicts = append(verdicts, v)
		}
		return nil
	})
	return verdicts, err
}

// update retries transactions that lost a write conflict
func (s *BadgerStore) update(fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		s.logger.Debug("Badger transaction conflict, retrying", zap.Int("attempt", attempt+1))
	}
	return err
}

func getVerdict(txn *badger.Txn, key []byte) (*core.Verdict, error) {
	item, err := txn.Get(key)
	if err != nil {
		return nil, err
	}
	var v core.Verdict
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &v)
	})
	return &v, err
}

func putVerdict(txn *badger.Txn, key []byte, v *core.Verdict) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	if err := txn.Set(key, data); err != nil {
		return err
	}
	return txn.Set(idKey(v.ID), key)
}
