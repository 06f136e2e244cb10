package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/core"
)

func newVerdict(content string, tier core.RiskTier) *core.Verdict {
	return &core.Verdict{
		Content:      content,
		PhoneNumber:  "+5215512345678",
		ExtractedURL: core.NoURL,
		Scores: core.Scores{
			LanguageModelScore: 0.25,
			Justification:      "Mensaje común",
			SpamLabel:          core.SpamLabelNotSpam,
			URLReputation:      core.URLNoURL,
		},
		WeightedScore:   0.1,
		TierScore:       2,
		RiskTier:        tier,
		WeightingScheme: "no_url",
		AnalyzedAt:      time.Date(2025, 1, 2, 3, 4, 5, 600, time.UTC),
	}
}

func backends(t *testing.T) map[string]func(t *testing.T) core.VerdictRepository {
	return map[string]func(t *testing.T) core.VerdictRepository{
		"memory": func(t *testing.T) core.VerdictRepository {
			return NewMemoryStore(zap.NewNop())
		},
		"sqlite": func(t *testing.T) core.VerdictRepository {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "verdicts.db"), zap.NewNop())
			require.NoError(t, err)
			return s
		},
		"badger": func(t *testing.T) core.VerdictRepository {
			s, err := NewBadgerStore(t.TempDir(), zap.NewNop())
			require.NoError(t, err)
			return s
		},
	}
}

func TestRepository(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("find missing", func(t *testing.T) {
				repo := open(t)
				defer repo.Close()

				_, err := repo.FindByContent(context.Background(), "nada")
				require.ErrorIs(t, err, core.ErrNotFound)
			})

			t.Run("insert and find", func(t *testing.T) {
				req := require.New(t)
				repo := open(t)
				defer repo.Close()
				ctx := context.Background()

				v := newVerdict("Hola, ¿cómo estás?", core.TierSafe)
				req.NoError(repo.Insert(ctx, v))
				req.NotEmpty(v.ID)

				got, err := repo.FindByContent(ctx, "Hola, ¿cómo estás?")
				req.NoError(err)
				req.Equal(v.ID, got.ID)
				req.Equal(v.Content, got.Content)
				req.Equal(v.PhoneNumber, got.PhoneNumber)
				req.Equal(v.Scores, got.Scores)
				req.Equal(v.TierScore, got.TierScore)
				req.Equal(v.RiskTier, got.RiskTier)
				req.Equal(v.WeightingScheme, got.WeightingScheme)
				req.InDelta(v.WeightedScore, got.WeightedScore, 1e-9)
				req.True(v.AnalyzedAt.Equal(got.AnalyzedAt))

				// Content is matched exactly
				_, err = repo.FindByContent(ctx, "hola, ¿cómo estás?")
				req.ErrorIs(err, core.ErrNotFound)
			})

			t.Run("insert same content keeps one verdict", func(t *testing.T) {
				req := require.New(t)
				repo := open(t)
				defer repo.Close()
				ctx := context.Background()

				first := newVerdict("duplicado", core.TierSafe)
				req.NoError(repo.Insert(ctx, first))

				second := newVerdict("duplicado", core.TierDangerous)
				req.NoError(repo.Insert(ctx, second))
				req.Equal(first.ID, second.ID)

				got, err := repo.FindByContent(ctx, "duplicado")
				req.NoError(err)
				req.Equal(core.TierDangerous, got.RiskTier)

				n, err := repo.CountByTier(ctx, core.TierSafe)
				req.NoError(err)
				req.Zero(n)
			})

			t.Run("update by id", func(t *testing.T) {
				req := require.New(t)
				repo := open(t)
				defer repo.Close()
				ctx := context.Background()

				v := newVerdict("reanalizar", core.TierSafe)
				req.NoError(repo.Insert(ctx, v))

				fresh := newVerdict("reanalizar", core.TierSuspicious)
				fresh.AnalyzedAt = v.AnalyzedAt.Add(48 * time.Hour)
				req.NoError(repo.UpdateByID(ctx, v.ID, fresh))
				req.Equal(v.ID, fresh.ID)

				got, err := repo.FindByContent(ctx, "reanalizar")
				req.NoError(err)
				req.Equal(v.ID, got.ID)
				req.Equal(core.TierSuspicious, got.RiskTier)
				req.True(fresh.AnalyzedAt.Equal(got.AnalyzedAt))

				// Writing identical values again is not a miss
				req.NoError(repo.UpdateByID(ctx, v.ID, fresh))

				err = repo.UpdateByID(ctx, "does-not-exist", fresh)
				req.ErrorIs(err, core.ErrNotFound)
			})

			t.Run("count by tier", func(t *testing.T) {
				req := require.New(t)
				repo := open(t)
				defer repo.Close()
				ctx := context.Background()

				req.NoError(repo.Insert(ctx, newVerdict("a", core.TierSafe)))
				req.NoError(repo.Insert(ctx, newVerdict("b", core.TierSafe)))
				req.NoError(repo.Insert(ctx, newVerdict("c", core.TierDangerous)))

				for tier, want := range map[core.RiskTier]int{
					core.TierSafe:       2,
					core.TierSuspicious: 0,
					core.TierDangerous:  1,
				} {
					n, err := repo.CountByTier(ctx, tier)
					req.NoError(err)
					req.Equal(want, n, "tier %s", tier)
				}
			})

			t.Run("random", func(t *testing.T) {
				req := require.New(t)
				repo := open(t)
				defer repo.Close()
				ctx := context.Background()

				_, err := repo.Random(ctx)
				req.ErrorIs(err, core.ErrNotFound)

				req.NoError(repo.Insert(ctx, newVerdict("x", core.TierSafe)))
				req.NoError(repo.Insert(ctx, newVerdict("y", core.TierSafe)))

				v, err := repo.Random(ctx)
				req.NoError(err)
				req.Contains([]string{"x", "y"}, v.Content)
			})
		})
	}
}

func TestMemoryStore_Returns_Copies(t *testing.T) {
	req := require.New(t)
	repo := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	v := newVerdict("copia", core.TierSafe)
	req.NoError(repo.Insert(ctx, v))
	v.RiskTier = core.TierDangerous

	got, err := repo.FindByContent(ctx, "copia")
	req.NoError(err)
	req.Equal(core.TierSafe, got.RiskTier)
}

func TestSQLiteStore_Persists_Across_Reopen(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "verdicts.db")
	ctx := context.Background()

	repo, err := NewSQLiteStore(path, zap.NewNop())
	req.NoError(err)
	v := newVerdict("persistente", core.TierSuspicious)
	req.NoError(repo.Insert(ctx, v))
	req.NoError(repo.Close())

	repo, err = NewSQLiteStore(path, zap.NewNop())
	req.NoError(err)
	defer repo.Close()

	got, err := repo.FindByContent(ctx, "persistente")
	req.NoError(err)
	req.Equal(v.ID, got.ID)
}

func TestContentKey(t *testing.T) {
	req := require.New(t)
	req.Equal(ContentKey("hola"), ContentKey("hola"))
	req.NotEqual(ContentKey("hola"), ContentKey("hola "))
	req.Len(ContentKey(""), 64)
}
