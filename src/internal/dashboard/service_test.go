package dashboard

import (
	"context"
	"testing"
	"time"

	"mindnest-svc/src/internal/journal"
	"mindnest-svc/src/internal/mood"
	"mindnest-svc/src/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeUserService struct {
	profile *user.Profile
	err     error
}

func (f *fakeUserService) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	return nil, nil
}

func (f *fakeUserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	return nil, nil
}

func (f *fakeUserService) Profile(ctx context.Context, userID string) (*user.Profile, error) {
	return f.profile, f.err
}

type fakeJournalService struct {
	entries []*journal.Entry
	count   int64

	recentLimit int64
}

func (f *fakeJournalService) CreateEntry(ctx context.Context, userID string, req *journal.CreateEntryRequest) (*journal.Entry, error) {
	return nil, nil
}

func (f *fakeJournalService) ListEntries(ctx context.Context, userID string) ([]*journal.Entry, error) {
	return f.entries, nil
}

func (f *fakeJournalService) RecentEntries(ctx context.Context, userID string, limit int64) ([]*journal.Entry, error) {
	f.recentLimit = limit
	if int64(len(f.entries)) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func (f *fakeJournalService) CountEntries(ctx context.Context, userID string) (int64, error) {
	return f.count, nil
}

func (f *fakeJournalService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	return nil
}

type fakeMoodService struct {
	logs  []*mood.Log
	count int64

	seriesLimit int64
}

func (f *fakeMoodService) CreateLog(ctx context.Context, userID string, req *mood.CreateLogRequest) (*mood.Log, error) {
	return nil, nil
}

func (f *fakeMoodService) ListLogs(ctx context.Context, userID string) ([]*mood.Log, error) {
	return f.logs, nil
}

func (f *fakeMoodService) RecentLogs(ctx context.Context, userID string, limit int64) ([]*mood.Log, error) {
	return f.logs, nil
}

func (f *fakeMoodService) CountLogs(ctx context.Context, userID string) (int64, error) {
	return f.count, nil
}

func (f *fakeMoodService) RecentSeries(ctx context.Context, userID string, limit int64) (*mood.ChartSeries, error) {
	f.seriesLimit = limit
	logs := f.logs
	if int64(len(logs)) > limit {
		logs = logs[:limit]
	}
	return mood.BuildSeries(logs), nil
}

// --- tests ---

func TestDailyQuote_StableWithinADay(t *testing.T) {
	morning := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 1, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, DailyQuote(morning), DailyQuote(evening))
}

func TestDailyQuote_CoversWholeList(t *testing.T) {
	seen := make(map[string]bool)
	day := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 60; i++ {
		q := DailyQuote(day.AddDate(0, 0, i))
		seen[q.Text] = true
	}

	assert.Greater(t, len(seen), 1, "the quote must rotate across days")
}

func TestOverview_AssemblesAggregates(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	journals := &fakeJournalService{count: 12}
	for i := 0; i < 8; i++ {
		journals.entries = append(journals.entries, &journal.Entry{
			Title:     "entry",
			CreatedAt: base.AddDate(0, 0, -i),
		})
	}

	moods := &fakeMoodService{count: 9}
	for i := 0; i < 9; i++ {
		moods.logs = append(moods.logs, &mood.Log{
			MoodValue: (i % 5) + 1,
			CreatedAt: base.AddDate(0, 0, -i),
		})
	}

	users := &fakeUserService{profile: &user.Profile{TotalMinutes: 87}}

	svc := NewDashboardService(users, journals, moods, &fakeClock{now: base})

	overview, err := svc.Overview(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, int64(12), overview.TotalEntries)
	assert.Equal(t, int64(9), overview.TotalMoods)
	assert.Equal(t, int64(87), overview.TotalMinutes)
	assert.Len(t, overview.RecentEntries, 5, "dashboard shows the five most recent entries")
	assert.Equal(t, int64(5), journals.recentLimit)
	assert.Equal(t, int64(7), moods.seriesLimit, "mood chart covers the last seven check-ins")
	assert.Len(t, overview.MoodChart.Values, 7)

	// Chart is oldest first: the seventh-newest log comes first.
	assert.Equal(t, (6%5)+1, overview.MoodChart.Values[0])
}

func TestOverview_EmptyAccountHasEmptyCollections(t *testing.T) {
	users := &fakeUserService{profile: &user.Profile{TotalMinutes: 0}}
	svc := NewDashboardService(users, &fakeJournalService{}, &fakeMoodService{}, &fakeClock{now: time.Now()})

	overview, err := svc.Overview(context.Background(), "user-1")
	require.NoError(t, err)

	assert.NotNil(t, overview.RecentEntries)
	assert.Empty(t, overview.RecentEntries)
	assert.Empty(t, overview.MoodChart.Values)
	assert.Equal(t, int64(0), overview.TotalMinutes)
}
