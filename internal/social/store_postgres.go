// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/playbill/internal/catalog"
	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/database/schema"
	"github.com/taibuivan/playbill/internal/platform/dberr"
)

const (
	resourcePlay   = "Play"
	resourceReview = "Review"
)

// # Relations

type PostgresRelationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRelationRepository(db *pgxpool.Pool) *PostgresRelationRepository {
	return &PostgresRelationRepository{db: db}
}

func tableFor(list List) schema.SocialMembershipTable {
	if list == ListWatchlist {
		return schema.SocialWatchlist
	}
	return schema.SocialFavorite
}

func (repository *PostgresRelationRepository) Exists(context context.Context, list List, userID, playID string) (bool, error) {
	table := tableFor(list)
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		table.Table, table.UserID, table.PlayID)

	var exists bool
	if err := repository.db.QueryRow(context, query, userID, playID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resourcePlay, string(list)+"_exists")
	}
	return exists, nil
}

func (repository *PostgresRelationRepository) Add(context context.Context, list List, userID, playID string) error {
	table := tableFor(list)
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT (%s, %s) DO NOTHING`,
		table.Table, table.UserID, table.PlayID, table.UserID, table.PlayID)

	_, err := repository.db.Exec(context, query, userID, playID)
	return dberr.Wrap(err, resourcePlay, string(list)+"_add")
}

func (repository *PostgresRelationRepository) Remove(context context.Context, list List, userID, playID string) error {
	table := tableFor(list)
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.UserID, table.PlayID)

	_, err := repository.db.Exec(context, query, userID, playID)
	return dberr.Wrap(err, resourcePlay, string(list)+"_remove")
}

func (repository *PostgresRelationRepository) ListPlays(context context.Context, list List, userID string) ([]*catalog.Play, error) {
	table := tableFor(list)
	columns := make([]string, 0, len(schema.CatalogPlay.Columns()))
	for _, column := range schema.CatalogPlay.Columns() {
		columns = append(columns, "p."+column)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s m
		JOIN %s p ON p.%s = m.%s
		WHERE m.%s = $1
		ORDER BY m.%s DESC
	`,
		strings.Join(columns, ", "),
		table.Table, schema.CatalogPlay.Table, schema.CatalogPlay.ID, table.PlayID,
		table.UserID, table.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, resourcePlay, string(list)+"_list")
	}

	plays, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*catalog.Play, error) {
		play := &catalog.Play{}
		err := row.Scan(&play.ID, &play.Title, &play.Playwright, &play.Year, &play.Genre,
			&play.Description, &play.PosterURL, &play.CreatedAt)
		return play, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, resourcePlay, string(list)+"_list")
	}
	return plays, nil
}

// # Reviews

type PostgresReviewRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReviewRepository(db *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

func (repository *PostgresReviewRepository) Upsert(context context.Context, review *Review) error {
	r := schema.SocialReview
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
		RETURNING %s, %s, %s
	`,
		r.Table, r.ID, r.UserID, r.PlayID, r.Rating, r.Content,
		r.UserID, r.PlayID,
		r.Rating, r.Rating, r.Content, r.Content, r.UpdatedAt,
		r.ID, r.CreatedAt, r.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		review.ID, review.UserID, review.PlayID, review.Rating, review.Content,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	return dberr.Wrap(err, resourcePlay, "review_upsert")
}

func (repository *PostgresReviewRepository) Delete(context context.Context, userID, playID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialReview.Table, schema.SocialReview.UserID, schema.SocialReview.PlayID)

	command, err := repository.db.Exec(context, query, userID, playID)
	if err != nil {
		return dberr.Wrap(err, resourceReview, "review_delete")
	}
	if command.RowsAffected() == 0 {
		return apperr.NotFound(resourceReview)
	}
	return nil
}

// reviewSelect joins reviewer identity and play title onto review rows.
func reviewSelect() string {
	r, u, p := schema.SocialReview, schema.UsersProfile, schema.CatalogPlay
	return fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
		       u.%s, u.%s, p.%s
		FROM %s r
		JOIN %s u ON u.%s = r.%s
		JOIN %s p ON p.%s = r.%s
	`,
		r.ID, r.UserID, r.PlayID, r.Rating, r.Content, r.CreatedAt, r.UpdatedAt,
		u.DisplayName, u.AvatarURL, p.Title,
		r.Table,
		u.Table, u.UserID, r.UserID,
		p.Table, p.ID, r.PlayID,
	)
}

func (repository *PostgresReviewRepository) ListByPlay(context context.Context, playID string) ([]*Review, error) {
	query := reviewSelect() + fmt.Sprintf(` WHERE r.%s = $1 ORDER BY r.%s DESC`,
		schema.SocialReview.PlayID, schema.SocialReview.CreatedAt)
	return repository.list(context, "review_list_play", query, playID)
}

func (repository *PostgresReviewRepository) ListByUser(context context.Context, userID string) ([]*Review, error) {
	query := reviewSelect() + fmt.Sprintf(` WHERE r.%s = $1 ORDER BY r.%s DESC`,
		schema.SocialReview.UserID, schema.SocialReview.CreatedAt)
	return repository.list(context, "review_list_user", query, userID)
}

func (repository *PostgresReviewRepository) ListRecent(context context.Context, limit int) ([]*Review, error) {
	query := reviewSelect() + fmt.Sprintf(` ORDER BY r.%s DESC LIMIT $1`, schema.SocialReview.CreatedAt)
	return repository.list(context, "review_list_recent", query, limit)
}

func (repository *PostgresReviewRepository) Summary(context context.Context, playID string) (Summary, error) {
	query := fmt.Sprintf(`SELECT COALESCE(AVG(%s), 0)::float8, COUNT(*) FROM %s WHERE %s = $1`,
		schema.SocialReview.Rating, schema.SocialReview.Table, schema.SocialReview.PlayID)

	var summary Summary
	err := repository.db.QueryRow(context, query, playID).Scan(&summary.Average, &summary.Count)
	if err != nil {
		return Summary{}, dberr.Wrap(err, resourceReview, "review_summary")
	}
	return summary, nil
}

func (repository *PostgresReviewRepository) list(context context.Context, action, query string, args ...any) ([]*Review, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceReview, action)
	}

	reviews, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Review, error) {
		review := &Review{Reviewer: &Reviewer{}, Play: &PlayRef{}}
		err := row.Scan(
			&review.ID, &review.UserID, &review.PlayID, &review.Rating, &review.Content,
			&review.CreatedAt, &review.UpdatedAt,
			&review.Reviewer.DisplayName, &review.Reviewer.AvatarURL, &review.Play.Title,
		)
		review.Reviewer.UserID = review.UserID
		review.Play.ID = review.PlayID
		return review, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, resourceReview, action)
	}
	return reviews, nil
}
