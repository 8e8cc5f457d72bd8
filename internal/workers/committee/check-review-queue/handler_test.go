package checkreviewqueue

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"credentialing-workers/internal/common/logger"
	"credentialing-workers/internal/models"
)

var queueColumns = []string{
	"id", "name", "specialty", "market", "status",
	"network_impact", "work_experience", "submission_date", "assigned_analyst",
}

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	cfg := &Config{
		Timeout:  5 * time.Second,
		CacheKey: "committee:review-queue",
		CacheTTL: time.Minute,
	}
	return NewHandler(cfg, db, cache, logger.NewZapAdapter(zaptest.NewLogger(t))), mock
}

func queueRows() *sqlmock.Rows {
	return sqlmock.NewRows(queueColumns).
		AddRow("APP-001", "Dr. Sarah Chen", "Cardiology", "Dallas", models.StatusCommitteeReview,
			models.NetworkImpactHigh, 12, "2026-05-01", "jordan.reyes").
		AddRow("APP-002", "Dr. Amit Patel", "Oncology", "Austin", models.StatusInProgress,
			models.NetworkImpactMedium, 8, "2026-05-03", "")
}

func TestHandler_Execute_FetchesQueue(t *testing.T) {
	handler, mock := setupHandler(t)

	mock.ExpectQuery(`SELECT id, name, specialty, market, status`).
		WillReturnRows(queueRows())

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	assert.Equal(t, 2, output.QueueSize)
	assert.Equal(t, 1, output.HighImpact)
	assert.False(t, output.FromCache)
	assert.Equal(t, "APP-001", output.Queue[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_SecondCallHitsCache(t *testing.T) {
	handler, mock := setupHandler(t)

	// Only one database round trip is expected.
	mock.ExpectQuery(`SELECT id, name, specialty, market, status`).
		WillReturnRows(queueRows())

	ctx := context.Background()
	first, err := handler.Execute(ctx, &Input{})
	require.NoError(t, err)
	require.False(t, first.FromCache)

	second, err := handler.Execute(ctx, &Input{})
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.QueueSize, second.QueueSize)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_ForceRefreshSkipsCache(t *testing.T) {
	handler, mock := setupHandler(t)

	mock.ExpectQuery(`SELECT id, name, specialty, market, status`).
		WillReturnRows(queueRows())
	mock.ExpectQuery(`SELECT id, name, specialty, market, status`).
		WillReturnRows(queueRows())

	ctx := context.Background()
	_, err := handler.Execute(ctx, &Input{})
	require.NoError(t, err)

	refreshed, err := handler.Execute(ctx, &Input{ForceRefresh: true})
	require.NoError(t, err)
	assert.False(t, refreshed.FromCache)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_MarketFilter(t *testing.T) {
	handler, mock := setupHandler(t)

	mock.ExpectQuery(`SELECT id, name, specialty, market, status`).
		WillReturnRows(queueRows())

	output, err := handler.Execute(context.Background(), &Input{Market: "Austin"})
	require.NoError(t, err)

	require.Equal(t, 1, output.QueueSize)
	assert.Equal(t, "APP-002", output.Queue[0].ID)
	assert.Equal(t, 0, output.HighImpact)
}

func TestHandler_Execute_EmptyQueue(t *testing.T) {
	handler, mock := setupHandler(t)

	mock.ExpectQuery(`SELECT id, name, specialty, market, status`).
		WillReturnRows(sqlmock.NewRows(queueColumns))

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, 0, output.QueueSize)
	assert.NotNil(t, output.Queue)
}

func TestHandler_Execute_DatabaseError(t *testing.T) {
	handler, mock := setupHandler(t)

	mock.ExpectQuery(`SELECT id, name, specialty, market, status`).
		WillReturnError(assert.AnError)

	_, err := handler.Execute(context.Background(), &Input{})
	assert.ErrorIs(t, err, ErrQueueLookupFailed)
}

func TestHandler_Execute_NoCacheConfigured(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &Config{Timeout: 5 * time.Second, CacheKey: "committee:review-queue", CacheTTL: time.Minute}
	handler := NewHandler(cfg, db, nil, logger.NewZapAdapter(zaptest.NewLogger(t)))

	mock.ExpectQuery(`SELECT id, name, specialty, market, status`).
		WillReturnRows(queueRows())

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, 2, output.QueueSize)
}
