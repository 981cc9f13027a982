// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/playbill/internal/platform/database/schema"
	"github.com/taibuivan/playbill/internal/platform/dberr"
)

const resourceProfile = "Profile"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) FindByUserID(context context.Context, userID string) (*Profile, error) {
	return repository.findOne(context, "profile_find", schema.UsersProfile.UserID+" = $1", userID)
}

func (repository *PostgresRepository) FindByIdentity(context context.Context, issuer, subject string) (*Profile, error) {
	where := fmt.Sprintf("%s = $1 AND %s = $2", schema.UsersProfile.Issuer, schema.UsersProfile.Subject)
	return repository.findOne(context, "profile_find_identity", where, issuer, subject)
}

func (repository *PostgresRepository) Create(context context.Context, profile *Profile) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s
	`,
		schema.UsersProfile.Table,
		schema.UsersProfile.UserID, schema.UsersProfile.Issuer, schema.UsersProfile.Subject,
		schema.UsersProfile.Email, schema.UsersProfile.DisplayName, schema.UsersProfile.AvatarURL,
		schema.UsersProfile.IsAdmin,
		schema.UsersProfile.CreatedAt, schema.UsersProfile.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		profile.UserID, profile.Issuer, profile.Subject, profile.Email, profile.DisplayName,
		profile.AvatarURL, profile.IsAdmin,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)

	return dberr.Wrap(err, resourceProfile, "profile_create")
}

func (repository *PostgresRepository) Update(context context.Context, profile *Profile) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.UsersProfile.Table,
		schema.UsersProfile.DisplayName, schema.UsersProfile.Bio, schema.UsersProfile.AvatarURL,
		schema.UsersProfile.IsAdmin, schema.UsersProfile.UpdatedAt,
		schema.UsersProfile.UserID,
		schema.UsersProfile.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		profile.UserID, profile.DisplayName, profile.Bio, profile.AvatarURL, profile.IsAdmin,
	).Scan(&profile.UpdatedAt)

	return dberr.Wrap(err, resourceProfile, "profile_update")
}

func (repository *PostgresRepository) findOne(context context.Context, action, where string, args ...any) (*Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s`,
		strings.Join(schema.UsersProfile.Columns(), ", "), schema.UsersProfile.Table, where)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceProfile, action)
	}

	profile, err := pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) (*Profile, error) {
		p := &Profile{}
		err := row.Scan(
			&p.UserID, &p.Issuer, &p.Subject, &p.Email, &p.DisplayName, &p.Bio, &p.AvatarURL,
			&p.IsAdmin, &p.CreatedAt, &p.UpdatedAt,
		)
		return p, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, resourceProfile, action)
	}
	return profile, nil
}
