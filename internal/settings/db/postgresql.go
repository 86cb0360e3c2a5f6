package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mirellenails/salon-backend/internal/settings/store"
	"go.uber.org/zap"
)

// DocumentName is the fixed key of the settings row; the whole site's
// settings live in one document.
const DocumentName = "site_settings"

// notifyChannel is raised by a trigger on site_documents (see migrations), so
// writes from any connection wake the subscription.
const notifyChannel = "site_documents_changed"

type remoteStore struct {
	client *pgxpool.Pool
	logger *zap.Logger
}

func NewRemoteStore(client *pgxpool.Pool, logger *zap.Logger) store.RemoteStore {
	return &remoteStore{
		client: client,
		logger: logger,
	}
}

func (r *remoteStore) logSQLQuery(sql string) {
	r.logger.Debug("SQL query", zap.String("query", strings.Join(strings.Fields(sql), " ")))
}

func (r *remoteStore) Fetch(ctx context.Context) ([]byte, error) {
	sql := `
        SELECT data
        FROM site_documents
        WHERE name=$1
    `

	r.logSQLQuery(sql)

	var data []byte
	if err := r.client.QueryRow(ctx, sql, DocumentName).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrDocumentNotFound
		}

		return nil, err
	}

	return data, nil
}

func (r *remoteStore) Write(ctx context.Context, doc []byte) error {
	sql := `
        INSERT INTO site_documents (name, data)
        VALUES ($1, $2)
        ON CONFLICT (name) DO UPDATE
        SET data=EXCLUDED.data, updated_at=now()
    `

	r.logSQLQuery(sql)

	_, err := r.client.Exec(ctx, sql, DocumentName, doc)

	return err
}

// Subscribe holds a dedicated connection on LISTEN and re-fetches the
// document on every notification for our row. The returned stop function
// releases the connection and ends the loop.
func (r *remoteStore) Subscribe(ctx context.Context, onChange func(doc []byte), onError func(err error)) (func(), error) {
	conn, err := r.client.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer conn.Release()

		for {
			notification, err := conn.Conn().WaitForNotification(subCtx)
			if err != nil {
				if subCtx.Err() != nil {
					return
				}

				onError(err)

				return
			}

			if notification.Payload != DocumentName {
				continue
			}

			doc, err := r.Fetch(subCtx)
			if err != nil {
				onError(err)
				continue
			}

			onChange(doc)
		}
	}()

	return cancel, nil
}
