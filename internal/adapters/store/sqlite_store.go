package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

var sqliteDialect = dialect{
	name: "sqlite",
	schema: []string{`
		CREATE TABLE IF NOT EXISTS verdicts (
			id TEXT PRIMARY KEY,
			content_hash TEXT NOT NULL UNIQUE,
			content TEXT NOT NULL,
			phone_number TEXT NOT NULL DEFAULT '',
			extracted_url TEXT NOT NULL,
			lm_score REAL NOT NULL,
			justification TEXT NOT NULL,
			spam_label TEXT NOT NULL,
			url_reputation TEXT NOT NULL,
			weighted_score REAL NOT NULL,
			tier_score INTEGER NOT NULL,
			risk_tier TEXT NOT NULL,
			weighting_scheme TEXT NOT NULL,
			analyzed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_verdicts_risk_tier ON verdicts(risk_tier)`,
	},
	upsert: `ON CONFLICT(content_hash) DO UPDATE SET
		content = excluded.content,
		phone_number = excluded.phone_number,
		extracted_url = excluded.extracted_url,
		lm_score = excluded.lm_score,
		justification = excluded.justification,
		spam_label = excluded.spam_label,
		url_reputation = excluded.url_reputation,
		weighted_score = excluded.weighted_score,
		tier_score = excluded.tier_score,
		risk_tier = excluded.risk_tier,
		weighting_scheme = excluded.weighting_scheme,
		analyzed_at = excluded.analyzed_at`,
	randomFunc: "RANDOM()",
}

// NewSQLiteStore opens a SQLite database at dbPath and ensures the schema exists
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	return newSQLStore(db, sqliteDialect, logger)
}
