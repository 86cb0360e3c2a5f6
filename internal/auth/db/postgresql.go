package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mirellenails/salon-backend/internal/auth"
	"go.uber.org/zap"
)

type repository struct {
	client *pgxpool.Pool
	logger *zap.Logger
}

func NewRepository(client *pgxpool.Pool, logger *zap.Logger) *repository {
	return &repository{
		client: client,
		logger: logger,
	}
}

func (r *repository) logSQLQuery(sql string) {
	r.logger.Debug("SQL query", zap.String("query", strings.Join(strings.Fields(sql), " ")))
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*auth.Admin, error) {
	sql := `
        SELECT id, email, password_hash
        FROM admin_users
        WHERE email=$1
    `

	r.logSQLQuery(sql)

	var admin auth.Admin
	if err := r.client.QueryRow(ctx, sql, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}

		return nil, err
	}

	return &admin, nil
}

func (r *repository) Create(ctx context.Context, email string, passwordHash []byte) (int, error) {
	sql := `
        INSERT INTO admin_users (email, password_hash)
        VALUES ($1, $2)
        RETURNING id
    `

	r.logSQLQuery(sql)

	var id int
	if err := r.client.QueryRow(ctx, sql, email, passwordHash).Scan(&id); err != nil {
		return id, err
	}

	return id, nil
}
