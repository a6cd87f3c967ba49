package timetrack

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeCheckpointStore struct {
	checkpoints map[string]time.Time
	getErr      error
	setErr      error
	setCalls    int
}

func newFakeCheckpointStore() *fakeCheckpointStore {
	return &fakeCheckpointStore{checkpoints: make(map[string]time.Time)}
}

func ckey(userID, sessionID string) string {
	return fmt.Sprintf("%s:%s", userID, sessionID)
}

func (s *fakeCheckpointStore) GetCheckpoint(ctx context.Context, userID, sessionID string) (time.Time, bool, error) {
	if s.getErr != nil {
		return time.Time{}, false, s.getErr
	}
	start, ok := s.checkpoints[ckey(userID, sessionID)]
	return start, ok, nil
}

func (s *fakeCheckpointStore) SetCheckpoint(ctx context.Context, userID, sessionID string, start time.Time) error {
	s.setCalls++
	if s.setErr != nil {
		return s.setErr
	}
	s.checkpoints[ckey(userID, sessionID)] = start
	return nil
}

func (s *fakeCheckpointStore) clear(userID, sessionID string) {
	delete(s.checkpoints, ckey(userID, sessionID))
}

type fakeTotalStore struct {
	totals map[string]int64
	incErr error
}

func newFakeTotalStore() *fakeTotalStore {
	return &fakeTotalStore{totals: make(map[string]int64)}
}

func (s *fakeTotalStore) IncrementTotalMinutes(ctx context.Context, userID string, minutes int64) error {
	if s.incErr != nil {
		return s.incErr
	}
	s.totals[userID] += minutes
	return nil
}

type publishedActivity struct {
	userID   string
	action   string
	metadata map[string]string
}

type fakePublisher struct {
	published []publishedActivity
}

func (p *fakePublisher) PublishActivityWithMetadata(userID, sessionID, serviceName, action string, metadata map[string]string) error {
	p.published = append(p.published, publishedActivity{userID: userID, action: action, metadata: metadata})
	return nil
}

// --- helpers ---

const (
	testUser    = "user-1"
	testSession = "session-1"
)

func newTestAccumulator(t *testing.T) (*Accumulator, *fakeClock, *fakeCheckpointStore, *fakeTotalStore) {
	t.Helper()
	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	checkpoints := newFakeCheckpointStore()
	totals := newFakeTotalStore()
	acc := NewAccumulator(checkpoints, totals, clk, nil)
	return acc, clk, checkpoints, totals
}

// --- tests ---

func TestTick_FirstTickEstablishesBaselineWithoutCredit(t *testing.T) {
	acc, clk, checkpoints, totals := newTestAccumulator(t)
	ctx := context.Background()

	acc.Tick(ctx, testUser, testSession)

	assert.Equal(t, int64(0), totals.totals[testUser])
	start, found, err := checkpoints.GetCheckpoint(ctx, testUser, testSession)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, clk.now, start)
}

func TestTick_SubMinuteLeavesTotalAndCheckpointUnchanged(t *testing.T) {
	acc, clk, checkpoints, totals := newTestAccumulator(t)
	ctx := context.Background()

	acc.Tick(ctx, testUser, testSession)
	baseline := clk.now

	clk.advance(45 * time.Second)
	acc.Tick(ctx, testUser, testSession)

	assert.Equal(t, int64(0), totals.totals[testUser])
	start, found, _ := checkpoints.GetCheckpoint(ctx, testUser, testSession)
	require.True(t, found)
	assert.Equal(t, baseline, start, "checkpoint must not advance when nothing is credited")
}

func TestTick_CreditsWholeMinutesAndPreservesRemainder(t *testing.T) {
	acc, clk, checkpoints, totals := newTestAccumulator(t)
	ctx := context.Background()

	acc.Tick(ctx, testUser, testSession)
	baseline := clk.now

	clk.advance(125 * time.Second)
	acc.Tick(ctx, testUser, testSession)

	assert.Equal(t, int64(2), totals.totals[testUser])
	start, found, _ := checkpoints.GetCheckpoint(ctx, testUser, testSession)
	require.True(t, found)
	assert.Equal(t, baseline.Add(120*time.Second), start,
		"checkpoint must advance by exactly the credited 120s, keeping the 5s remainder")
}

func TestTick_RemainderAccumulatesAcrossTicks(t *testing.T) {
	acc, clk, _, totals := newTestAccumulator(t)
	ctx := context.Background()

	acc.Tick(ctx, testUser, testSession)

	// 125s: credit 2 min, 5s remainder carried.
	clk.advance(125 * time.Second)
	acc.Tick(ctx, testUser, testSession)

	// Another 56s brings the carried remainder to 61s: one more minute.
	clk.advance(56 * time.Second)
	acc.Tick(ctx, testUser, testSession)

	assert.Equal(t, int64(3), totals.totals[testUser])
}

func TestTick_NegativeElapsedCreditsNothing(t *testing.T) {
	acc, clk, checkpoints, totals := newTestAccumulator(t)
	ctx := context.Background()

	acc.Tick(ctx, testUser, testSession)
	baseline := clk.now

	clk.now = clk.now.Add(-10 * time.Minute)
	assert.NotPanics(t, func() {
		acc.Tick(ctx, testUser, testSession)
	})

	assert.Equal(t, int64(0), totals.totals[testUser])
	start, found, _ := checkpoints.GetCheckpoint(ctx, testUser, testSession)
	require.True(t, found)
	assert.Equal(t, baseline, start)
}

func TestTick_LoginScenario(t *testing.T) {
	acc, clk, checkpoints, totals := newTestAccumulator(t)
	ctx := context.Background()
	t0 := clk.now

	// Login at t=0 establishes the baseline.
	acc.Baseline(ctx, testUser, testSession)

	// t=45: under a minute, nothing credited.
	clk.advance(45 * time.Second)
	acc.Tick(ctx, testUser, testSession)
	assert.Equal(t, int64(0), totals.totals[testUser])

	// t=130: 130s elapsed since baseline, 2 minutes credited.
	clk.advance(85 * time.Second)
	acc.Tick(ctx, testUser, testSession)
	assert.Equal(t, int64(2), totals.totals[testUser])

	start, _, _ := checkpoints.GetCheckpoint(ctx, testUser, testSession)
	assert.Equal(t, t0.Add(120*time.Second), start)

	// t=170: only 50s since the credit point, no further credit.
	clk.advance(40 * time.Second)
	acc.Tick(ctx, testUser, testSession)
	assert.Equal(t, int64(2), totals.totals[testUser])
}

func TestTick_TotalEqualsFlooredElapsedOverManyTicks(t *testing.T) {
	acc, clk, _, totals := newTestAccumulator(t)
	ctx := context.Background()

	acc.Baseline(ctx, testUser, testSession)

	steps := []time.Duration{
		7 * time.Second,
		42 * time.Second,
		193 * time.Second,
		1 * time.Second,
		59 * time.Second,
		600 * time.Second,
		31 * time.Second,
		88 * time.Second,
	}

	var totalElapsed time.Duration
	for _, step := range steps {
		clk.advance(step)
		totalElapsed += step
		acc.Tick(ctx, testUser, testSession)
	}

	want := int64(totalElapsed / time.Minute)
	assert.Equal(t, want, totals.totals[testUser],
		"no minutes may be lost or double counted across a tick sequence")
}

func TestTick_PersistenceFailureDefersCredit(t *testing.T) {
	acc, clk, checkpoints, totals := newTestAccumulator(t)
	ctx := context.Background()

	acc.Baseline(ctx, testUser, testSession)
	baseline := clk.now

	clk.advance(3 * time.Minute)
	totals.incErr = errors.New("store unavailable")
	assert.NotPanics(t, func() {
		acc.Tick(ctx, testUser, testSession)
	})

	// Neither the total nor the checkpoint moved.
	assert.Equal(t, int64(0), totals.totals[testUser])
	start, _, _ := checkpoints.GetCheckpoint(ctx, testUser, testSession)
	assert.Equal(t, baseline, start)

	// Next healthy tick credits the full interval.
	totals.incErr = nil
	clk.advance(1 * time.Minute)
	acc.Tick(ctx, testUser, testSession)
	assert.Equal(t, int64(4), totals.totals[testUser])
}

func TestTick_CheckpointReadFailureSkipsTick(t *testing.T) {
	acc, _, checkpoints, totals := newTestAccumulator(t)
	ctx := context.Background()

	checkpoints.getErr = errors.New("redis down")
	acc.Tick(ctx, testUser, testSession)

	assert.Equal(t, int64(0), totals.totals[testUser])
	assert.Equal(t, 0, checkpoints.setCalls)
}

func TestTick_UnauthenticatedIsNoop(t *testing.T) {
	acc, _, checkpoints, totals := newTestAccumulator(t)
	ctx := context.Background()

	acc.Tick(ctx, "", testSession)
	acc.Tick(ctx, testUser, "")

	assert.Empty(t, totals.totals)
	assert.Equal(t, 0, checkpoints.setCalls)
}

func TestTick_LogoutClearsCheckpointAndNextSessionStartsFresh(t *testing.T) {
	acc, clk, checkpoints, totals := newTestAccumulator(t)
	ctx := context.Background()

	acc.Baseline(ctx, testUser, testSession)
	clk.advance(2 * time.Minute)
	acc.Tick(ctx, testUser, testSession)
	require.Equal(t, int64(2), totals.totals[testUser])

	// Logout clears the slot; time passing afterwards is not tracked.
	checkpoints.clear(testUser, testSession)
	clk.advance(30 * time.Minute)

	// Fresh login, first tick only baselines.
	acc.Baseline(ctx, testUser, "session-2")
	acc.Tick(ctx, testUser, "session-2")
	assert.Equal(t, int64(2), totals.totals[testUser])

	clk.advance(61 * time.Second)
	acc.Tick(ctx, testUser, "session-2")
	assert.Equal(t, int64(3), totals.totals[testUser])
}

func TestTick_PublishesCreditActivity(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	checkpoints := newFakeCheckpointStore()
	totals := newFakeTotalStore()
	publisher := &fakePublisher{}
	acc := NewAccumulator(checkpoints, totals, clk, publisher)
	ctx := context.Background()

	acc.Baseline(ctx, testUser, testSession)
	clk.advance(90 * time.Second)
	acc.Tick(ctx, testUser, testSession)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, testUser, publisher.published[0].userID)
	assert.Equal(t, "time_credited", publisher.published[0].action)
	assert.Equal(t, "1", publisher.published[0].metadata["minutes"])

	// No publish when nothing is credited.
	clk.advance(10 * time.Second)
	acc.Tick(ctx, testUser, testSession)
	assert.Len(t, publisher.published, 1)
}

func TestTick_TotalIsMonotonicallyNonDecreasing(t *testing.T) {
	acc, clk, _, totals := newTestAccumulator(t)
	ctx := context.Background()

	acc.Baseline(ctx, testUser, testSession)

	var last int64
	for i := 0; i < 50; i++ {
		clk.advance(time.Duration(13*i%97) * time.Second)
		acc.Tick(ctx, testUser, testSession)
		current := totals.totals[testUser]
		require.GreaterOrEqual(t, current, last)
		last = current
	}
}
