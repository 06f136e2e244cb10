package store

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var mysqlDialect = dialect{
	name: "mysql",
	schema: []string{`
		CREATE TABLE IF NOT EXISTS verdicts (
			id VARCHAR(36) PRIMARY KEY,
			content_hash CHAR(64) NOT NULL,
			content TEXT NOT NULL,
			phone_number VARCHAR(32) NOT NULL DEFAULT '',
			extracted_url TEXT NOT NULL,
			lm_score DOUBLE NOT NULL,
			justification TEXT NOT NULL,
			spam_label VARCHAR(32) NOT NULL,
			url_reputation VARCHAR(32) NOT NULL,
			weighted_score DOUBLE NOT NULL,
			tier_score INT NOT NULL,
			risk_tier VARCHAR(32) NOT NULL,
			weighting_scheme VARCHAR(32) NOT NULL,
			analyzed_at VARCHAR(40) NOT NULL,
			UNIQUE KEY uq_content_hash (content_hash),
			INDEX idx_risk_tier (risk_tier)
		) DEFAULT CHARSET=utf8mb4`,
	},
	upsert: `ON DUPLICATE KEY UPDATE
		content = VALUES(content),
		phone_number = VALUES(phone_number),
		extracted_url = VALUES(extracted_url),
		lm_score = VALUES(lm_score),
		justification = VALUES(justification),
		spam_label = VALUES(spam_label),
		url_reputation = VALUES(url_reputation),
		weighted_score = VALUES(weighted_score),
		tier_score = VALUES(tier_score),
		risk_tier = VALUES(risk_tier),
		weighting_scheme = VALUES(weighting_scheme),
		analyzed_at = VALUES(analyzed_at)`,
	randomFunc: "RAND()",
}

// NewMySQLStore connects to MySQL and ensures the schema exists
func NewMySQLStore(dsn string, logger *zap.Logger) (*SQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	return newSQLStore(db, mysqlDialect, logger)
}
