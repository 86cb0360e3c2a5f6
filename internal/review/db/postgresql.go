package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mirellenails/salon-backend/internal/review"
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

func (r *repository) Create(ctx context.Context, data review.Review) (int, error) {
	sql := `
        INSERT INTO reviews (name, service, rating, text, date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `

	r.logSQLQuery(sql)

	var id int
	err := r.client.QueryRow(ctx, sql, data.Name, data.Service, data.Rating, data.Text, data.Date).Scan(&id)
	if err != nil {
		return id, err
	}

	return id, nil
}

func (r *repository) Delete(ctx context.Context, id int) (bool, error) {
	sql := `
        DELETE FROM reviews
        WHERE id=$1
    `

	r.logSQLQuery(sql)

	tag, err := r.client.Exec(ctx, sql, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *repository) GetAll(ctx context.Context) ([]review.Review, error) {
	sql := `
        SELECT id, name, service, rating, text, date
        FROM reviews
        ORDER BY date DESC
    `

	r.logSQLQuery(sql)

	rows, err := r.client.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]review.Review, 0)

	for rows.Next() {
		var item review.Review
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Service,
			&item.Rating,
			&item.Text,
			&item.Date); err != nil {
			return nil, err
		}

		reviews = append(reviews, item)
	}

	return reviews, rows.Err()
}
