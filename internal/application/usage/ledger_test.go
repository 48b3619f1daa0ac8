package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain/identity"
	"inkwell/internal/domain/usage"
	"inkwell/internal/shared/logger"
)

// fixedNow is noon Sept 4 in the business timezone (Asia/Seoul).
var fixedNow = time.Date(2026, time.September, 4, 3, 0, 0, 0, time.UTC)

type mockUsageRepo struct {
	record       *usage.Record
	getErr       error
	addErr       error
	getCalls     int
	addCalls     int
	lastDelta    usage.Delta
	lastDay      int
	lastScope    identity.Scope
	lastYear     int
	lastMonth    time.Month
}

func (m *mockUsageRepo) GetCurrent(ctx context.Context, scope identity.Scope, year int, month time.Month) (*usage.Record, error) {
	m.getCalls++
	m.lastScope = scope
	m.lastYear = year
	m.lastMonth = month
	return m.record, m.getErr
}

func (m *mockUsageRepo) AddUsage(ctx context.Context, scope identity.Scope, year int, month time.Month, day int, delta usage.Delta) error {
	m.addCalls++
	m.lastScope = scope
	m.lastDay = day
	m.lastDelta = delta
	return m.addErr
}

type mockDecisionCache struct {
	denial   *usage.Decision
	getErr   error
	setCalls int
}

func (m *mockDecisionCache) GetDenial(ctx context.Context, scope identity.Scope) (*usage.Decision, error) {
	return m.denial, m.getErr
}

func (m *mockDecisionCache) SetDenial(ctx context.Context, scope identity.Scope, decision usage.Decision) error {
	m.setCalls++
	m.denial = &decision
	return nil
}

func newTestLedger(repo usage.Repository, opts ...Option) *Ledger {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewLedger(repo, usage.DefaultTiers(), logger.NewLogger(), opts...)
}

func guestRecord(t *testing.T, day int, daily, monthly int64) *usage.Record {
	t.Helper()
	rec, err := usage.ReconstructRecord(
		identity.Scope{Kind: identity.ScopeDevice, ID: "dev1"},
		2026, time.September, day, daily, monthly, 10, 8000, 4000, fixedNow,
	)
	require.NoError(t, err)
	return rec
}

func TestLedger_Decide_AllowsUnderLimits(t *testing.T) {
	repo := &mockUsageRepo{record: guestRecord(t, 4, 14999, 20000)}
	ledger := newTestLedger(repo)

	decision := ledger.Decide(context.Background(), identity.Guest("dev1"))

	assert.True(t, decision.Allowed)
	assert.Equal(t, identity.ScopeDevice, repo.lastScope.Kind)
	assert.Equal(t, 2026, repo.lastYear)
	assert.Equal(t, time.September, repo.lastMonth)
}

func TestLedger_Decide_DailyLimitAfterRecording(t *testing.T) {
	// Guest at 14999 records 5 more tokens, then the next decide denies.
	repo := &mockUsageRepo{record: guestRecord(t, 4, 14999, 20000)}
	ledger := newTestLedger(repo)
	guest := identity.Guest("dev1")

	err := ledger.Record(context.Background(), guest, usage.Delta{TotalTokens: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.addCalls)

	repo.record = guestRecord(t, 4, 15004, 20005)

	decision := ledger.Decide(context.Background(), guest)
	assert.False(t, decision.Allowed)
	assert.Equal(t, usage.LimitDaily, decision.Limit)
	assert.Contains(t, decision.Message, "daily token limit reached")
}

func TestLedger_Decide_StaleDayReadsAsZero(t *testing.T) {
	// Stored day 3, today is day 4: the 12000 daily bucket is stale and
	// must not count against the limit.
	repo := &mockUsageRepo{record: guestRecord(t, 3, 12000, 20000)}
	ledger := newTestLedger(repo)

	decision := ledger.Decide(context.Background(), identity.Guest("dev1"))

	assert.True(t, decision.Allowed)
}

func TestLedger_Decide_MonthlyLimit(t *testing.T) {
	repo := &mockUsageRepo{record: guestRecord(t, 4, 0, 50000)}
	ledger := newTestLedger(repo)

	decision := ledger.Decide(context.Background(), identity.Guest("dev1"))

	assert.False(t, decision.Allowed)
	assert.Equal(t, usage.LimitMonthly, decision.Limit)
	assert.Contains(t, decision.Message, "monthly token limit reached")
}

func TestLedger_Decide_MemberTier(t *testing.T) {
	// 20000 daily tokens denies a guest but not a member.
	repo := &mockUsageRepo{}

	rec, err := usage.ReconstructRecord(
		identity.Scope{Kind: identity.ScopeUser, ID: "u1"},
		2026, time.September, 4, 20000, 60000, 10, 0, 0, fixedNow,
	)
	require.NoError(t, err)
	repo.record = rec

	ledger := newTestLedger(repo)
	decision := ledger.Decide(context.Background(), identity.Authenticated("u1"))
	assert.True(t, decision.Allowed)
}

func TestLedger_Decide_NoRecordAllows(t *testing.T) {
	repo := &mockUsageRepo{record: nil}
	ledger := newTestLedger(repo)

	decision := ledger.Decide(context.Background(), identity.Guest("dev1"))
	assert.True(t, decision.Allowed)
}

func TestLedger_Decide_StorageFailureFailsClosed(t *testing.T) {
	repo := &mockUsageRepo{getErr: errors.New("connection refused")}
	ledger := newTestLedger(repo)

	decision := ledger.Decide(context.Background(), identity.Guest("dev1"))

	assert.False(t, decision.Allowed)
	assert.NotEmpty(t, decision.Message)
}

func TestLedger_Decide_BlockedDenied(t *testing.T) {
	repo := &mockUsageRepo{}
	ledger := newTestLedger(repo)

	decision := ledger.Decide(context.Background(), identity.Blocked())

	assert.False(t, decision.Allowed)
	assert.Zero(t, repo.getCalls)
}

func TestLedger_Decide_CachedDenialServed(t *testing.T) {
	repo := &mockUsageRepo{}
	cached := usage.Deny(usage.LimitDaily, "daily token limit reached")
	cache := &mockDecisionCache{denial: &cached}
	ledger := newTestLedger(repo, WithDecisionCache(cache))

	decision := ledger.Decide(context.Background(), identity.Guest("dev1"))

	assert.False(t, decision.Allowed)
	assert.Zero(t, repo.getCalls, "cached denial should skip storage")
}

func TestLedger_Decide_CacheFailureIsHarmless(t *testing.T) {
	repo := &mockUsageRepo{record: guestRecord(t, 4, 0, 0)}
	cache := &mockDecisionCache{getErr: errors.New("redis down")}
	ledger := newTestLedger(repo, WithDecisionCache(cache))

	decision := ledger.Decide(context.Background(), identity.Guest("dev1"))
	assert.True(t, decision.Allowed)
}

func TestLedger_Record_ZeroDeltaSkipsStorage(t *testing.T) {
	repo := &mockUsageRepo{}
	ledger := newTestLedger(repo)

	err := ledger.Record(context.Background(), identity.Guest("dev1"), usage.Delta{})

	require.NoError(t, err)
	assert.Zero(t, repo.addCalls)
	assert.Zero(t, repo.getCalls)
}

func TestLedger_Record_NegativeDeltaRejectedBeforeStorage(t *testing.T) {
	repo := &mockUsageRepo{}
	ledger := newTestLedger(repo)

	err := ledger.Record(context.Background(), identity.Guest("dev1"), usage.Delta{TotalTokens: -1})

	assert.Error(t, err)
	assert.Zero(t, repo.addCalls)
}

func TestLedger_Record_DerivesTotalTokens(t *testing.T) {
	repo := &mockUsageRepo{}
	ledger := newTestLedger(repo)

	err := ledger.Record(context.Background(), identity.Guest("dev1"), usage.Delta{
		InputTokens:  120,
		OutputTokens: 80,
	})

	require.NoError(t, err)
	require.Equal(t, 1, repo.addCalls)
	assert.Equal(t, int64(200), repo.lastDelta.TotalTokens)
	assert.Equal(t, 4, repo.lastDay)
}

func TestLedger_Record_StorageFailureSwallowed(t *testing.T) {
	repo := &mockUsageRepo{addErr: errors.New("deadlock")}
	ledger := newTestLedger(repo)

	err := ledger.Record(context.Background(), identity.Guest("dev1"), usage.Delta{TotalTokens: 5})

	assert.NoError(t, err)
}

func TestLedger_Status(t *testing.T) {
	repo := &mockUsageRepo{record: guestRecord(t, 3, 12000, 20000)}
	ledger := newTestLedger(repo)

	status, err := ledger.Status(context.Background(), identity.Guest("dev1"))

	require.NoError(t, err)
	assert.Equal(t, 2026, status.Year)
	assert.Equal(t, 9, status.Month)
	assert.Equal(t, 4, status.Day)
	assert.Zero(t, status.DailyUsage, "stale daily bucket reads as zero")
	assert.Equal(t, int64(20000), status.MonthlyUsage)
}

func TestLedger_Status_NoRecord(t *testing.T) {
	repo := &mockUsageRepo{}
	ledger := newTestLedger(repo)

	status, err := ledger.Status(context.Background(), identity.Guest("dev1"))

	require.NoError(t, err)
	assert.Zero(t, status.DailyUsage)
	assert.Zero(t, status.MonthlyUsage)
}
