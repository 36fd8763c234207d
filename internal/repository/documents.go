package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/booldo/booldo/internal/content"
	"github.com/booldo/booldo/internal/model"
)

// FetchDoc looks up a synced document by type and slug. The typed query's
// document type and slug parameter select the row; the projection is
// fixed at sync time to the minimal lifecycle fields.
func (r *Repository) FetchDoc(ctx context.Context, q *content.Query) (*content.Document, error) {
	slug := q.Params()["slug"]
	if slug == "" {
		return nil, content.ErrNotFound
	}

	query := `
		SELECT title, COALESCE(bookmaker, ''), COALESCE(to_char(expires, 'YYYY-MM-DD'), ''), noindex, sitemap_include
		FROM documents
		WHERE doc_type = $1 AND slug = $2
	`

	var doc content.Document
	err := r.pool.QueryRow(ctx, query, q.DocType(), slug).Scan(
		&doc.Title,
		&doc.Bookmaker,
		&doc.Expires,
		&doc.NoIndex,
		&doc.SitemapInclude,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document %s/%s: %w", q.DocType(), slug, err)
	}
	doc.Slug = slug
	return &doc, nil
}

// FetchFooterLinks returns the footer link rows in display order.
func (r *Repository) FetchFooterLinks(ctx context.Context) ([]content.FooterLink, error) {
	query := `
		SELECT label, slug, noindex, sitemap_include
		FROM footer_links
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query footer links: %w", err)
	}
	defer rows.Close()

	var links []content.FooterLink
	for rows.Next() {
		var link content.FooterLink
		if err := rows.Scan(&link.Label, &link.Slug, &link.NoIndex, &link.SitemapInclude); err != nil {
			return nil, fmt.Errorf("failed to scan footer link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate footer links: %w", err)
	}
	return links, nil
}

// FetchOptions builds the country's filter option universe: bonus types
// are global, bookmakers belong to the country, and the advanced lists
// are the distinct union of the country's bookmaker arrays.
func (r *Repository) FetchOptions(ctx context.Context, country string) (*model.OptionUniverse, error) {
	universe := &model.OptionUniverse{}

	rows, err := r.pool.Query(ctx, `SELECT name FROM bonus_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bonus types: %w", err)
	}
	universe.BonusTypes, err = scanOptions(rows)
	if err != nil {
		return nil, err
	}

	bmQuery := `
		SELECT name, payment_methods, licenses
		FROM bookmakers
		WHERE country = $1
		ORDER BY name
	`
	bmRows, err := r.pool.Query(ctx, bmQuery, country)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmakers: %w", err)
	}
	defer bmRows.Close()

	seenPayment := map[string]bool{}
	seenLicense := map[string]bool{}
	for bmRows.Next() {
		var name string
		var paymentMethods, licenses []string
		if err := bmRows.Scan(&name, pq.Array(&paymentMethods), pq.Array(&licenses)); err != nil {
			return nil, fmt.Errorf("failed to scan bookmaker: %w", err)
		}
		universe.Bookmakers = append(universe.Bookmakers, model.FilterOption{Name: name})
		for _, pm := range paymentMethods {
			if !seenPayment[pm] {
				seenPayment[pm] = true
				universe.PaymentMethods = append(universe.PaymentMethods, model.FilterOption{Name: pm})
			}
		}
		for _, lc := range licenses {
			if !seenLicense[lc] {
				seenLicense[lc] = true
				universe.Licenses = append(universe.Licenses, model.FilterOption{Name: lc})
			}
		}
	}
	if err := bmRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmakers: %w", err)
	}

	return universe, nil
}

func scanOptions(rows pgx.Rows) ([]model.FilterOption, error) {
	defer rows.Close()
	var opts []model.FilterOption
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		opts = append(opts, model.FilterOption{Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate options: %w", err)
	}
	return opts, nil
}
