package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamkit/donation-notifier/internal/model"
)

// newTestStorage connects to the database named by TEST_DATABASE_URL, applies
// the schema and starts from an empty table. Tests are skipped when the
// variable is unset so the suite stays runnable without a live Postgres.
func newTestStorage(t *testing.T) (NotificationStorage, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping storage tests")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_donation_notification.sql"))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	_, err = pool.Exec(ctx, "TRUNCATE donation_notification RESTART IDENTITY")
	require.NoError(t, err)

	return NewPostgresStorage(pool), pool
}

func insertAt(t *testing.T, pool *pgxpool.Pool, message string, isRead bool, createdAt time.Time) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO donation_notification (user_name, amount, message, is_read, created_at)
		VALUES ($1, 1000, $2, $3, $4)
	`, "Alice", message, isRead, createdAt)
	require.NoError(t, err)
}

func TestPostgresStorage_Save(t *testing.T) {
	store, _ := newTestStorage(t)
	ctx := context.Background()

	userID := int64(42)
	userName := "Alice"
	n := &model.Notification{
		UserID:   &userID,
		UserName: &userName,
		Amount:   decimal.RequireFromString("1000"),
		Message:  "Alice님이 1000원을 기부했습니다!",
	}

	require.NoError(t, store.Save(ctx, n))

	assert.NotZero(t, n.ID)
	assert.False(t, n.IsRead)
	assert.False(t, n.CreatedAt.IsZero())

	got, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1000.00", got[0].Amount.String())
	assert.Equal(t, n.Message, got[0].Message)
}

func TestPostgresStorage_ListOrderingAndFilter(t *testing.T) {
	store, pool := newTestStorage(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	insertAt(t, pool, "oldest unread", false, base)
	insertAt(t, pool, "middle read", true, base.Add(time.Hour))
	insertAt(t, pool, "newest unread", false, base.Add(2*time.Hour))

	unread, err := store.ListUnread(ctx)
	require.NoError(t, err)
	require.Len(t, unread, 2)
	assert.Equal(t, "newest unread", unread[0].Message)
	assert.Equal(t, "oldest unread", unread[1].Message)
	for _, n := range unread {
		assert.False(t, n.IsRead)
	}

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "newest unread", all[0].Message)
	assert.Equal(t, "middle read", all[1].Message)
	assert.Equal(t, "oldest unread", all[2].Message)
}
