package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	req := require.New(t)
	cfg := NewFromViper(NewEmptyViper())

	llm, err := cfg.GetLLM()
	req.NoError(err)
	req.Equal("openai", llm.Provider)
	req.True(llm.Enabled)
	req.Equal(15*time.Second, llm.Timeout)

	spam, err := cfg.GetSpam()
	req.NoError(err)
	req.Equal(15*time.Second, spam.Timeout)

	urls, err := cfg.GetURLScan()
	req.NoError(err)
	req.Equal(45*time.Second, urls.Timeout)
	req.Empty(urls.APIKey)

	store, err := cfg.GetStore()
	req.NoError(err)
	req.Equal("memory", store.Type)
	req.Equal(720*time.Hour, store.MaxAge)

	srv, err := cfg.GetServer()
	req.NoError(err)
	req.Equal("0.0.0.0:8080", srv.ListenAddress)
	req.Zero(srv.RequestTimeout)
	req.False(srv.SMTP.Enabled)
	req.EqualValues(1024*1024, srv.SMTP.MaxMessageBytes)

	req.Equal("dynamic", cfg.GetScoring().Mode)
	req.Equal("gpt-4o-mini", cfg.GetOpenAI().ModelName)
	req.InDelta(0.1, cfg.GetBedrock().Temperature, 1e-6)
}

func TestNewWithFile(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "smishguard.yaml")
	req.NoError(os.WriteFile(path, []byte(`
llm:
  provider: gemini
gemini:
  api_key: from-file
store:
  type: sqlite
  max_age: 24h
server:
  smtp:
    enabled: true
    reject_dangerous: true
`), 0o600))

	t.Setenv("SMISHGUARD_STORE_TYPE", "badger")
	t.Setenv("SMISHGUARD_URLSCAN_API_KEY", "env-key")

	cfg, err := NewWithFile(path)
	req.NoError(err)
	req.Equal(path, cfg.GetViper().ConfigFileUsed())

	llm, err := cfg.GetLLM()
	req.NoError(err)
	req.Equal("gemini", llm.Provider)
	req.Equal("from-file", cfg.GetGemini().APIKey)

	store, err := cfg.GetStore()
	req.NoError(err)
	req.Equal("badger", store.Type)
	req.Equal(24*time.Hour, store.MaxAge)

	urls, err := cfg.GetURLScan()
	req.NoError(err)
	req.Equal("env-key", urls.APIKey)

	srv, err := cfg.GetServer()
	req.NoError(err)
	req.True(srv.SMTP.Enabled)
	req.True(srv.SMTP.RejectDangerous)
}

func TestNewWithFile_Missing_Explicit_File(t *testing.T) {
	_, err := NewWithFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestInvalid_Duration(t *testing.T) {
	req := require.New(t)
	v := NewEmptyViper()
	v.Set("store.max_age", "forever")
	v.Set("server.read_timeout", "10 seconds")
	cfg := NewFromViper(v)

	_, err := cfg.GetStore()
	req.ErrorContains(err, "store.max_age")

	_, err = cfg.GetServer()
	req.ErrorContains(err, "server.read_timeout")
}
