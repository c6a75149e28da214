package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDownloadCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	n, err := s.DownloadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	for want := int64(1); want <= 3; want++ {
		n, err = s.RecordDownload(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
}

func TestHashIP(t *testing.T) {
	s := openTestStore(t)

	a := s.HashIP("203.0.113.7")
	assert.Len(t, a, 16)
	assert.Equal(t, a, s.HashIP("203.0.113.7"))
	assert.NotEqual(t, a, s.HashIP("203.0.113.8"))
	assert.NotContains(t, a, "203")
}

func TestTrackVisitAndStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now.Add(-10 * 24 * time.Hour) }
	require.NoError(t, s.TrackVisit(ctx, "10.0.0.1", "old-agent", "/"))

	s.now = func() time.Time { return now.Add(-2 * 24 * time.Hour) }
	require.NoError(t, s.TrackVisit(ctx, "10.0.0.2", "agent", "/"))

	s.now = func() time.Time { return now }
	require.NoError(t, s.TrackVisit(ctx, "10.0.0.1", "agent", "/projects"))
	_, err := s.RecordDownload(ctx)
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalVisitors)
	assert.Equal(t, int64(2), stats.UniqueVisitors)
	assert.Equal(t, int64(1), stats.VisitorsToday)
	assert.Equal(t, int64(2), stats.VisitorsThisWeek)
	assert.Equal(t, int64(1), stats.TotalDownloads)
	assert.Equal(t, int64(1), stats.DownloadsToday)
	require.Len(t, stats.RecentVisitors, 3)
	assert.Equal(t, "/projects", stats.RecentVisitors[0].Path)
	assert.Equal(t, now, stats.RecentVisitors[0].Timestamp)
	assert.Equal(t, s.HashIP("10.0.0.1"), stats.RecentVisitors[0].HashedIP)
}

func TestCleanupVisitors(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now.Add(-400 * 24 * time.Hour) }
	require.NoError(t, s.TrackVisit(ctx, "10.0.0.1", "a", "/"))
	s.now = func() time.Time { return now }
	require.NoError(t, s.TrackVisit(ctx, "10.0.0.2", "b", "/"))

	removed, err := s.CleanupVisitors(ctx, 365*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	visitors, err := s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visitors, 1)
	assert.Equal(t, "b", visitors[0].UserAgent)
}

func TestJanitor(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now.Add(-48 * time.Hour) }
	require.NoError(t, s.TrackVisit(ctx, "10.0.0.1", "a", "/"))
	s.now = time.Now

	j, err := NewJanitor(s, "0 0 3 * * *", 24*time.Hour)
	require.NoError(t, err)
	j.RunOnce()

	visitors, err := s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, visitors)
}

func TestJanitorStopWaitsForInitialCleanup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now.Add(-48 * time.Hour) }
	require.NoError(t, s.TrackVisit(ctx, "10.0.0.1", "a", "/"))
	s.now = time.Now

	j, err := NewJanitor(s, "0 0 3 * * *", 24*time.Hour)
	require.NoError(t, err)
	j.Start()
	j.Stop()

	// Stop returned, so the startup pass has run and the store can close.
	visitors, err := s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, visitors)
}

func TestJanitorRejectsBadSchedule(t *testing.T) {
	s := openTestStore(t)
	_, err := NewJanitor(s, "every tuesday", time.Hour)
	assert.Error(t, err)
}
