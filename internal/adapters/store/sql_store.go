package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/core"
)

const verdictColumns = `id, content_hash, content, phone_number, extracted_url,
	lm_score, justification, spam_label, url_reputation,
	weighted_score, tier_score, risk_tier, weighting_scheme, analyzed_at`

// dialect captures the statements that differ between SQL engines
type dialect struct {
	name       string
	schema     []string
	upsert     string
	randomFunc string
}

// SQLStore is a database/sql implementation of the VerdictRepository interface
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	logger  *zap.Logger
}

func newSQLStore(db *sql.DB, d dialect, logger *zap.Logger) (*SQLStore, error) {
	for _, stmt := range d.schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create %s schema: %w", d.name, err)
		}
	}
	return &SQLStore{db: db, dialect: d, logger: logger}, nil
}

// FindByContent retrieves the verdict for a message
func (s *SQLStore) FindByContent(ctx context.Context, content string) (*core.Verdict, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+verdictColumns+` FROM verdicts WHERE content_hash = ?`,
		ContentKey(content))

	v, err := scanVerdict(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("failed to query verdict", err)
	}
	return v, nil
}

// Insert stores a verdict. A concurrent insert of the same content collapses
// into an update of the existing row.
func (s *SQLStore) Insert(ctx context.Context, verdict *core.Verdict) error {
	ensureID(verdict)
	key := ContentKey(verdict.Content)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO verdicts (`+verdictColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) `+s.dialect.upsert,
		append([]interface{}{verdict.ID, key}, verdictValues(verdict)...)...)
	if err != nil {
		return storeErr("failed to insert verdict", err)
	}

	// The row keeps the ID of whichever insert came first
	var storedID string
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM verdicts WHERE content_hash = ?`, key).Scan(&storedID); err != nil {
		return storeErr("failed to read verdict id", err)
	}
	verdict.ID = storedID

	s.logger.Debug("Inserted verdict", zap.String("id", storedID), zap.String("store", s.dialect.name))
	return nil
}

// UpdateByID replaces the verdict with the given ID
func (s *SQLStore) UpdateByID(ctx context.Context, id string, verdict *core.Verdict) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE verdicts SET
			content_hash = ?, content = ?, phone_number = ?, extracted_url = ?,
			lm_score = ?, justification = ?, spam_label = ?, url_reputation = ?,
			weighted_score = ?, tier_score = ?, risk_tier = ?, weighting_scheme = ?, analyzed_at = ?
		WHERE id = ?`,
		append(append([]interface{}{ContentKey(verdict.Content)}, verdictValues(verdict)...), id)...)
	if err != nil {
		return storeErr("failed to update verdict", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("failed to update verdict", err)
	}
	if n == 0 {
		// MySQL reports zero rows when the new values equal the old ones
		var exists int
		err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM verdicts WHERE id = ?`, id).Scan(&exists)
		if err != nil {
			return storeErr("failed to update verdict", err)
		}
		if exists == 0 {
			return core.ErrNotFound
		}
	}

	verdict.ID = id
	return nil
}

// CountByTier counts stored verdicts in a tier
func (s *SQLStore) CountByTier(ctx context.Context, tier core.RiskTier) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM verdicts WHERE risk_tier = ?`, string(tier)).Scan(&n)
	if err != nil {
		return 0, storeErr("failed to count verdicts", err)
	}
	return n, nil
}

// Random returns an arbitrary stored verdict
func (s *SQLStore) Random(ctx context.Context) (*core.Verdict, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+verdictColumns+` FROM verdicts ORDER BY `+s.dialect.randomFunc+` LIMIT 1`)

	v, err := scanVerdict(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("failed to query random verdict", err)
	}
	return v, nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// verdictValues lists every column after content_hash in verdictColumns order
func verdictValues(v *core.Verdict) []interface{} {
	return []interface{}{
		v.Content,
		v.PhoneNumber,
		v.ExtractedURL,
		v.Scores.LanguageModelScore,
		v.Scores.Justification,
		string(v.Scores.SpamLabel),
		string(v.Scores.URLReputation),
		v.WeightedScore,
		v.TierScore,
		string(v.RiskTier),
		v.WeightingScheme,
		v.AnalyzedAt.UTC().Format(time.RFC3339Nano),
	}
}

func scanVerdict(row *sql.Row) (*core.Verdict, error) {
	var (
		v          core.Verdict
		hash       string
		spamLabel  string
		urlRep     string
		tier       string
		analyzedAt string
	)

	err := row.Scan(
		&v.ID, &hash, &v.Content, &v.PhoneNumber, &v.ExtractedURL,
		&v.Scores.LanguageModelScore, &v.Scores.Justification, &spamLabel, &urlRep,
		&v.WeightedScore, &v.TierScore, &tier, &v.WeightingScheme, &analyzedAt,
	)
	if err != nil {
		return nil, err
	}

	v.Scores.SpamLabel = core.SpamLabel(spamLabel)
	v.Scores.URLReputation = core.URLReputation(urlRep)
	v.RiskTier = core.RiskTier(tier)
	v.AnalyzedAt, err = time.Parse(time.RFC3339Nano, analyzedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse analyzed_at timestamp: %w", err)
	}
	return &v, nil
}
