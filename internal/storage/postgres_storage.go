package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/streamkit/donation-notifier/internal/model"
)

type PostgresStorage struct {
	db *pgxpool.Pool
}

func NewPostgresStorage(pool *pgxpool.Pool) NotificationStorage {
	return &PostgresStorage{db: pool}
}

// Save inserts a new notification row. The database assigns id, is_read and
// created_at; the caller's struct is filled in from RETURNING. Errors are
// returned as-is: the consumer treats any save failure as a failed message.
func (ps *PostgresStorage) Save(ctx context.Context, n *model.Notification) error {
	if n == nil {
		return fmt.Errorf("notification cannot be nil")
	}

	const query = `
		INSERT INTO donation_notification (user_id, user_name, amount, message)
		VALUES ($1, $2, $3::numeric, $4)
		RETURNING id, is_read, created_at
	`

	row := ps.db.QueryRow(ctx, query, n.UserID, n.UserName, n.Amount.String(), n.Message)
	if err := row.Scan(&n.ID, &n.IsRead, &n.CreatedAt); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

// ListUnread returns unread notifications, newest first.
func (ps *PostgresStorage) ListUnread(ctx context.Context) ([]model.Notification, error) {
	const query = `
		SELECT id, user_id, user_name, amount::text, message, is_read, created_at
		FROM donation_notification
		WHERE is_read = FALSE
		ORDER BY created_at DESC
	`
	return ps.list(ctx, query)
}

// ListAll returns every notification regardless of read state, newest first.
func (ps *PostgresStorage) ListAll(ctx context.Context) ([]model.Notification, error) {
	const query = `
		SELECT id, user_id, user_name, amount::text, message, is_read, created_at
		FROM donation_notification
		ORDER BY created_at DESC
	`
	return ps.list(ctx, query)
}

func (ps *PostgresStorage) list(ctx context.Context, query string) ([]model.Notification, error) {
	rows, err := ps.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var notifs []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		notifs = append(notifs, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return notifs, nil
}

func scanNotification(row pgx.Row) (model.Notification, error) {
	var (
		n         model.Notification
		amountStr string
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.UserName, &amountStr, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
		return model.Notification{}, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return model.Notification{}, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	n.Amount = amount
	return n, nil
}

func (ps *PostgresStorage) Ping(ctx context.Context) error {
	return ps.db.Ping(ctx)
}
