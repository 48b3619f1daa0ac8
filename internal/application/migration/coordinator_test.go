package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain/migration"
	"inkwell/internal/shared/logger"
)

// fakeGuestDataRepo simulates per-table guest rows in memory.
type fakeGuestDataRepo struct {
	guestRows  map[migration.Table]int64
	failTables map[migration.Table]error
	probeCalls []migration.Table
	claimCalls []migration.Table
}

func newFakeGuestDataRepo() *fakeGuestDataRepo {
	return &fakeGuestDataRepo{
		guestRows:  make(map[migration.Table]int64),
		failTables: make(map[migration.Table]error),
	}
}

func (f *fakeGuestDataRepo) HasGuestRows(ctx context.Context, table migration.Table, deviceID string) (bool, error) {
	f.probeCalls = append(f.probeCalls, table)
	if err := f.failTables[table]; err != nil {
		return false, err
	}
	return f.guestRows[table] > 0, nil
}

func (f *fakeGuestDataRepo) ClaimGuestRows(ctx context.Context, table migration.Table, userID, deviceID string) (int64, error) {
	f.claimCalls = append(f.claimCalls, table)
	if err := f.failTables[table]; err != nil {
		return 0, err
	}
	claimed := f.guestRows[table]
	f.guestRows[table] = 0
	return claimed, nil
}

func newTestCoordinator(repo migration.GuestDataRepository) *Coordinator {
	return NewCoordinator(repo, logger.NewLogger())
}

func TestCoordinator_HasGuestData_ShortCircuits(t *testing.T) {
	repo := newFakeGuestDataRepo()
	repo.guestRows[migration.TableNotes] = 3

	found, err := newTestCoordinator(repo).HasGuestData(context.Background(), "u1", "dev1")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []migration.Table{migration.TableNotes}, repo.probeCalls,
		"first hit should stop the scan")
}

func TestCoordinator_HasGuestData_ChecksAllTablesWhenEmpty(t *testing.T) {
	repo := newFakeGuestDataRepo()

	found, err := newTestCoordinator(repo).HasGuestData(context.Background(), "u1", "dev1")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, migration.Tables(), repo.probeCalls)
}

func TestCoordinator_HasGuestData_LaterTableHit(t *testing.T) {
	repo := newFakeGuestDataRepo()
	repo.guestRows[migration.TableHistoryEntries] = 1

	found, err := newTestCoordinator(repo).HasGuestData(context.Background(), "u1", "dev1")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, repo.probeCalls, len(migration.Tables()))
}

func TestCoordinator_Merge_ClaimsAllTables(t *testing.T) {
	repo := newFakeGuestDataRepo()
	repo.guestRows[migration.TableNotes] = 3
	repo.guestRows[migration.TableHistoryEntries] = 5

	coord := newTestCoordinator(repo)
	result, err := coord.Merge(context.Background(), "u1", "dev1")

	require.NoError(t, err)
	assert.False(t, result.Failed)
	assert.Equal(t, int64(8), result.TotalClaimed())
	assert.Equal(t, int64(3), result.ClaimedRows[migration.TableNotes])

	// hasGuestData flips to false right after a successful merge.
	found, err := coord.HasGuestData(context.Background(), "u1", "dev1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCoordinator_Merge_IsIdempotent(t *testing.T) {
	repo := newFakeGuestDataRepo()
	repo.guestRows[migration.TableNotes] = 3

	coord := newTestCoordinator(repo)

	first, err := coord.Merge(context.Background(), "u1", "dev1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.TotalClaimed())

	second, err := coord.Merge(context.Background(), "u1", "dev1")
	require.NoError(t, err)
	assert.Zero(t, second.TotalClaimed(), "second merge must claim zero rows")
}

func TestCoordinator_Merge_AbortsOnFirstFailure(t *testing.T) {
	repo := newFakeGuestDataRepo()
	repo.guestRows[migration.TableNotes] = 2
	repo.guestRows[migration.TableNoteDetails] = 4
	repo.failTables[migration.TableNoteDetails] = errors.New("lock wait timeout")

	coord := newTestCoordinator(repo)
	result, err := coord.Merge(context.Background(), "u1", "dev1")

	require.Error(t, err)
	assert.True(t, result.Failed)
	assert.Equal(t, migration.TableNoteDetails, result.FailedTable)
	assert.Equal(t, int64(2), result.TotalClaimed(), "notes stay claimed")
	assert.NotContains(t, repo.claimCalls, migration.TableHistoryEntries,
		"tables after the failure must not be attempted")
}

func TestCoordinator_Merge_RetryResumesAfterPartialFailure(t *testing.T) {
	repo := newFakeGuestDataRepo()
	repo.guestRows[migration.TableNotes] = 2
	repo.guestRows[migration.TableNoteDetails] = 4
	repo.failTables[migration.TableNoteDetails] = errors.New("lock wait timeout")

	coord := newTestCoordinator(repo)
	_, err := coord.Merge(context.Background(), "u1", "dev1")
	require.Error(t, err)

	// Failure clears; the retry claims only what the first pass missed.
	delete(repo.failTables, migration.TableNoteDetails)

	result, err := coord.Merge(context.Background(), "u1", "dev1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.TotalClaimed())
	assert.Zero(t, result.ClaimedRows[migration.TableNotes])
}

func TestCoordinator_InputValidation(t *testing.T) {
	coord := newTestCoordinator(newFakeGuestDataRepo())

	_, err := coord.HasGuestData(context.Background(), "", "dev1")
	assert.Error(t, err)

	_, err = coord.Merge(context.Background(), "u1", "")
	assert.Error(t, err)
}
