package repository

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/booldo/booldo/internal/model"
)

// FetchRules returns the full active redirect-rule set.
func (r *Repository) FetchRules(ctx context.Context) ([]model.RedirectRule, error) {
	query := `
		SELECT id, source_path, target_url, redirect_type, match_exact, is_active
		FROM redirect_rules
		WHERE is_active = true
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query redirect rules: %w", err)
	}
	defer rows.Close()

	var rules []model.RedirectRule
	for rows.Next() {
		var rule model.RedirectRule
		if err := rows.Scan(
			&rule.ID,
			&rule.SourcePath,
			&rule.TargetURL,
			&rule.RedirectType,
			&rule.MatchExact,
			&rule.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan redirect rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate redirect rules: %w", err)
	}

	return rules, nil
}

// ReplaceRules swaps the full rule set in one transaction. Rules without
// an ID get a ULID. Used by the content sync job.
func (r *Repository) ReplaceRules(ctx context.Context, rules []model.RedirectRule) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM redirect_rules`); err != nil {
		return fmt.Errorf("failed to clear redirect rules: %w", err)
	}

	insert := `
		INSERT INTO redirect_rules (id, source_path, target_url, redirect_type, match_exact, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	now := time.Now().UTC()
	for _, rule := range rules {
		id := rule.ID
		if id == "" {
			id = ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
		}
		if _, err := tx.Exec(ctx, insert,
			id,
			rule.SourcePath,
			rule.TargetURL,
			string(rule.RedirectType),
			rule.MatchExact,
			rule.IsActive,
			now,
		); err != nil {
			return fmt.Errorf("failed to insert redirect rule %q: %w", rule.SourcePath, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit redirect rules: %w", err)
	}
	return nil
}
