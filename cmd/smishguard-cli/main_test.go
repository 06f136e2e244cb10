package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mikey/smishguard/internal/core"
)

func TestReadMessage(t *testing.T) {
	req := require.New(t)

	msg, err := readMessage([]string{"Ganaste", "un", "premio"}, "", nil)
	req.NoError(err)
	req.Equal("Ganaste un premio", msg)

	msg, err = readMessage(nil, "", strings.NewReader("desde stdin\n"))
	req.NoError(err)
	req.Equal("desde stdin", msg)

	path := filepath.Join(t.TempDir(), "sms.txt")
	req.NoError(os.WriteFile(path, []byte("desde archivo\r\n"), 0o600))
	msg, err = readMessage(nil, path, nil)
	req.NoError(err)
	req.Equal("desde archivo", msg)

	_, err = readMessage(nil, filepath.Join(t.TempDir(), "missing.txt"), nil)
	req.Error(err)
}

func TestPrintStats(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	printStats(&buf, core.TierCounts{core.TierSafe: 3, core.TierDangerous: 2})
	out := buf.String()
	req.Contains(out, "Seguro")
	req.Contains(out, "Peligroso")
	req.Contains(strings.ToUpper(out), "TOTAL")
	req.Contains(out, "5")
}

func TestPrintResult(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	result := &core.AnalysisResult{
		Verdict: &core.Verdict{
			Content:         "hola",
			ExtractedURL:    core.NoURL,
			RiskTier:        core.TierSafe,
			TierScore:       1,
			WeightingScheme: "no_url",
			AnalyzedAt:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Outcomes: &core.FanOutResult{
			LM:   core.Outcome[*core.Judgement]{Status: core.Succeeded, Value: &core.Judgement{}},
			Spam: core.Outcome[core.SpamLabel]{Status: core.Succeeded},
			URL:  core.Outcome[core.URLReputation]{Status: core.Skipped},
		},
	}
	printResult(&buf, result, 1500*time.Millisecond)

	out := buf.String()
	req.Contains(out, "hola")
	req.Contains(out, "1/10")
	req.Contains(out, string(core.ClassifierURL))
	req.Contains(out, "skipped")
	req.Contains(out, "Persisted: false")
}
