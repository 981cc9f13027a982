// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/database/schema"
	"github.com/taibuivan/playbill/internal/platform/dberr"
)

const resourcePlay = "Play"

// likeEscaper makes user input literal inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectPlays is the column list shared by every play query.
func selectPlays() string {
	return fmt.Sprintf(`SELECT %s FROM %s`,
		strings.Join(schema.CatalogPlay.Columns(), ", "), schema.CatalogPlay.Table)
}

func (repository *PostgresRepository) Search(context context.Context, query string, limit int) ([]*Play, error) {
	args := []any{}
	statement := selectPlays()

	if query != "" {
		statement += fmt.Sprintf(` WHERE %s ILIKE $1 ESCAPE '\'`, schema.CatalogPlay.Title)
		args = append(args, "%"+likeEscaper.Replace(query)+"%")
	}

	statement += fmt.Sprintf(` ORDER BY %s ASC, %s ASC LIMIT $%d`,
		schema.CatalogPlay.Title, schema.CatalogPlay.ID, len(args)+1)
	args = append(args, limit)

	return repository.query(context, "play_search", statement, args...)
}

func (repository *PostgresRepository) ListRecent(context context.Context, limit int) ([]*Play, error) {
	statement := selectPlays() + fmt.Sprintf(` ORDER BY %s DESC LIMIT $1`, schema.CatalogPlay.CreatedAt)
	return repository.query(context, "play_list_recent", statement, limit)
}

// ListSample has no ORDER BY; the popular shelf is an unranked placeholder.
func (repository *PostgresRepository) ListSample(context context.Context, limit int) ([]*Play, error) {
	return repository.query(context, "play_list_sample", selectPlays()+` LIMIT $1`, limit)
}

func (repository *PostgresRepository) ListAll(context context.Context) ([]*Play, error) {
	statement := selectPlays() + fmt.Sprintf(` ORDER BY %s DESC`, schema.CatalogPlay.CreatedAt)
	return repository.query(context, "play_list_all", statement)
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Play, error) {
	statement := selectPlays() + fmt.Sprintf(` WHERE %s = $1`, schema.CatalogPlay.ID)

	rows, err := repository.db.Query(context, statement, id)
	if err != nil {
		return nil, dberr.Wrap(err, resourcePlay, "play_find")
	}

	play, err := pgx.CollectExactlyOneRow(rows, scanPlay)
	if err != nil {
		return nil, dberr.Wrap(err, resourcePlay, "play_find")
	}
	return play, nil
}

func (repository *PostgresRepository) Create(context context.Context, play *Play) error {
	statement := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`,
		schema.CatalogPlay.Table,
		schema.CatalogPlay.ID, schema.CatalogPlay.Title, schema.CatalogPlay.Playwright, schema.CatalogPlay.Year,
		schema.CatalogPlay.Genre, schema.CatalogPlay.Description, schema.CatalogPlay.PosterURL,
		schema.CatalogPlay.CreatedAt,
	)

	err := repository.db.QueryRow(context, statement,
		play.ID, play.Title, play.Playwright, play.Year, play.Genre, play.Description, play.PosterURL,
	).Scan(&play.CreatedAt)

	return dberr.Wrap(err, resourcePlay, "play_create")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	statement := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogPlay.Table, schema.CatalogPlay.ID)

	command, err := repository.db.Exec(context, statement, id)
	if err != nil {
		return dberr.Wrap(err, resourcePlay, "play_delete")
	}

	if command.RowsAffected() == 0 {
		return apperr.NotFound(resourcePlay)
	}
	return nil
}

func (repository *PostgresRepository) query(context context.Context, action, statement string, args ...any) ([]*Play, error) {
	rows, err := repository.db.Query(context, statement, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourcePlay, action)
	}

	plays, err := pgx.CollectRows(rows, scanPlay)
	if err != nil {
		return nil, dberr.Wrap(err, resourcePlay, action)
	}
	return plays, nil
}

func scanPlay(row pgx.CollectableRow) (*Play, error) {
	play := &Play{}
	err := row.Scan(
		&play.ID, &play.Title, &play.Playwright, &play.Year, &play.Genre,
		&play.Description, &play.PosterURL, &play.CreatedAt,
	)
	return play, err
}
