package factory

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/adapters/store"
	"github.com/mikey/smishguard/internal/config"
	"github.com/mikey/smishguard/internal/core"
	"github.com/mikey/smishguard/internal/utils"
)

func testConfig(overrides map[string]interface{}) *config.Config {
	v := config.NewEmptyViper()
	for k, val := range overrides {
		v.Set(k, val)
	}
	return config.NewFromViper(v)
}

func TestStoreFactory(t *testing.T) {
	req := require.New(t)

	repo, err := NewStoreFactory(testConfig(nil), zap.NewNop()).CreateVerdictRepository()
	req.NoError(err)
	req.IsType(&store.MemoryStore{}, repo)

	cfg := testConfig(map[string]interface{}{
		"store.type":        "sqlite",
		"store.sqlite_path": filepath.Join(t.TempDir(), "nested", "verdicts.db"),
	})
	repo, err = NewStoreFactory(cfg, zap.NewNop()).CreateVerdictRepository()
	req.NoError(err)
	req.IsType(&store.SQLStore{}, repo)
	req.NoError(repo.Close())

	_, err = NewStoreFactory(testConfig(map[string]interface{}{"store.type": "redis"}), zap.NewNop()).
		CreateVerdictRepository()
	req.ErrorContains(err, "unsupported store type")
}

func TestStoreFactory_Freshness(t *testing.T) {
	req := require.New(t)
	f := NewStoreFactory(testConfig(map[string]interface{}{"store.max_age": "2h"}), zap.NewNop())

	policy, err := f.CreateFreshnessPolicy()
	req.NoError(err)
	req.Equal(core.MaxAgePolicy{MaxAge: 2 * time.Hour}, policy)
	req.True(f.IsStoreEnabled())
}

func TestClassifierFactory(t *testing.T) {
	req := require.New(t)
	f := NewClassifierFactory(testConfig(map[string]interface{}{
		"urlscan.enabled": false,
		"spam.timeout":    "3s",
		"llm.timeout":     "30s",
		"scoring.mode":    "fixed",
	}), zap.NewNop())

	spam, err := f.CreateSpamClassifier()
	req.NoError(err)
	req.NotNil(spam)

	urls, err := f.CreateURLChecker()
	req.NoError(err)
	req.Nil(urls)

	timeouts, err := f.CreateTimeouts()
	req.NoError(err)
	// Defaults are floors: lower values are raised, higher ones kept
	req.Equal(core.DefaultTimeouts.Spam, timeouts.Spam)
	req.Equal(30*time.Second, timeouts.LanguageModel)
	req.Equal(core.DefaultTimeouts.URL, timeouts.URL)

	agg, err := f.CreateAggregator()
	req.NoError(err)
	req.NotNil(agg)
}

func TestClassifierFactory_Invalid(t *testing.T) {
	req := require.New(t)

	_, err := NewClassifierFactory(testConfig(map[string]interface{}{"spam.endpoint": ""}), zap.NewNop()).
		CreateSpamClassifier()
	req.Error(err)

	_, err = NewClassifierFactory(testConfig(map[string]interface{}{"scoring.mode": "median"}), zap.NewNop()).
		CreateAggregator()
	req.Error(err)
}

func TestLLMFactory(t *testing.T) {
	req := require.New(t)
	tp := utils.NewTextProcessor(zap.NewNop())

	judge, err := NewLLMFactory(testConfig(map[string]interface{}{"llm.enabled": false}), zap.NewNop(), tp).CreateJudge()
	req.NoError(err)
	req.Nil(judge)

	_, err = NewLLMFactory(testConfig(map[string]interface{}{"llm.provider": "cohere"}), zap.NewNop(), tp).CreateJudge()
	req.ErrorContains(err, "unsupported LLM provider")

	_, err = NewLLMFactory(testConfig(nil), zap.NewNop(), tp).CreateJudge()
	req.ErrorContains(err, "API key is required")

	judge, err = NewLLMFactory(testConfig(map[string]interface{}{
		"openai.api_key":  "sk-test",
		"openai.base_url": "http://localhost:11434/v1",
	}), zap.NewNop(), tp).CreateJudge()
	req.NoError(err)
	req.NotNil(judge)
}

func TestGatewayFactory(t *testing.T) {
	req := require.New(t)

	gateways, err := NewGatewayFactory(testConfig(nil), zap.NewNop(), nil).CreateGateways()
	req.NoError(err)
	req.Len(gateways, 1)
	req.Equal("http", gateways[0].Name())

	gateways, err = NewGatewayFactory(testConfig(map[string]interface{}{"server.smtp.enabled": true}), zap.NewNop(), nil).
		CreateGateways()
	req.NoError(err)
	req.Len(gateways, 2)
	req.Equal("smtp", gateways[1].Name())
}
