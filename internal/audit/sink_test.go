// AngelaMos | 2026
// sink_test.go

package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campaignhq/campaign-backend/internal/auth"
)

func newTestSink(t *testing.T) *Sink {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "audit.db")

	sink, err := NewSink(context.Background(), "sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, sink.Close())
	})

	return sink
}

func TestSink_RecordAndRecent(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	attempts := []auth.LoginAttempt{
		{Email: "admin@campaign.com", Timestamp: base, Success: false},
		{Email: "admin@campaign.com", Timestamp: base.Add(time.Minute), Success: true},
		{Email: "ghost@campaign.com", Timestamp: base.Add(2 * time.Minute), Success: false},
	}
	for _, attempt := range attempts {
		require.NoError(t, sink.RecordAttempt(ctx, attempt))
	}

	recent, err := sink.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	// Newest first.
	assert.Equal(t, "ghost@campaign.com", recent[0].Email)
	assert.False(t, recent[0].Success)
	assert.Equal(t, "admin@campaign.com", recent[1].Email)
	assert.True(t, recent[1].Success)
}

func TestSink_RecentLimit(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, sink.RecordAttempt(ctx, auth.LoginAttempt{
			Email:     "admin@campaign.com",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Success:   false,
		}))
	}

	recent, err := sink.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	// Non-positive limits fall back to the default instead of erroring.
	recent, err = sink.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 5)
}

func TestSink_SchemaIsIdempotent(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "audit.db")
	ctx := context.Background()

	first, err := NewSink(ctx, "sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, first.RecordAttempt(ctx, auth.LoginAttempt{
		Email:     "admin@campaign.com",
		Timestamp: time.Now().UTC(),
		Success:   true,
	}))
	require.NoError(t, first.Close())

	// Reopening against the same file keeps existing rows.
	second, err := NewSink(ctx, "sqlite", dsn)
	require.NoError(t, err)
	defer second.Close() //nolint:errcheck // test cleanup

	recent, err := second.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	assert.NoError(t, second.Ping(ctx))
}

func TestSink_BadDriver(t *testing.T) {
	_, err := NewSink(context.Background(), "no-such-driver", "dsn")
	assert.Error(t, err)
}
