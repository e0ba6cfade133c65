package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mbergmann/wachplan/pkg/core/model"
	"github.com/mbergmann/wachplan/pkg/core/roster"
	"github.com/mbergmann/wachplan/pkg/db"
)

// mockStore implements a test double for the roster store
type mockStore struct {
	rows        []db.AvailabilityRow
	profiles    []db.ProfileRow
	rowsErr     error
	profilesErr error
}

func (m *mockStore) GetAvailabilities(ctx context.Context) ([]db.AvailabilityRow, error) {
	if m.rowsErr != nil {
		return nil, m.rowsErr
	}
	return m.rows, nil
}

func (m *mockStore) GetProfiles(ctx context.Context) ([]db.ProfileRow, error) {
	if m.profilesErr != nil {
		return nil, m.profilesErr
	}
	return m.profiles, nil
}

func testStore() *mockStore {
	return &mockStore{
		rows: []db.AvailabilityRow{
			{
				ID:        "r1",
				OwnerID:   "p1",
				StartDate: "2025-01-06",
				ShiftType: "earlyShift",
				Locations: "Köln, Essen",
				CreatedAt: time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC),
			},
			{
				ID:          "r2",
				OwnerID:     "p2",
				StartDate:   "2025-01-01",
				EndDate:     "2025-01-31",
				ShiftType:   "nightShift",
				Locations:   "Köln",
				IsRecurring: true,
				Weekdays:    "saturday, sunday",
				CreatedAt:   time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
			},
		},
		profiles: []db.ProfileRow{
			{ID: "p1", FirstName: "Ana", LastName: "Müller"},
			{ID: "p2", FirstName: "Bob", LastName: "Smith"},
		},
	}
}

func TestDashboardView_NoCriteriaDefaultsToCreatedAt(t *testing.T) {
	store := testStore()
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := DashboardView(ctx, store, logger, roster.Criteria{}, "", "")
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, 2, result.MatchedCount)
	require.Len(t, result.Records, 2)

	// createdAt ascending: r2 was submitted first.
	assert.Equal(t, "r2", result.Records[0].ID)
	assert.Equal(t, "r1", result.Records[1].ID)

	// Profiles are merged before the engine runs.
	assert.Equal(t, "Bob Smith", result.Records[0].Owner.FullName())
}

func TestDashboardView_FilterAndSort(t *testing.T) {
	store := testStore()
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := DashboardView(ctx, store, logger,
		roster.Criteria{Location: "Köln"}, roster.SortByName, roster.Ascending)
	require.NoError(t, err)

	assert.Equal(t, 2, result.MatchedCount)
	assert.Equal(t, "Ana Müller", result.Records[0].Owner.FullName())
	assert.Equal(t, "Bob Smith", result.Records[1].Owner.FullName())

	result, err = DashboardView(ctx, store, logger,
		roster.Criteria{ShiftType: model.ShiftEarly}, roster.SortByName, roster.Ascending)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, 1, result.MatchedCount)
	assert.Equal(t, "r1", result.Records[0].ID)
}

func TestDashboardView_InvalidCriteria(t *testing.T) {
	store := testStore()
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := DashboardView(ctx, store, logger,
		roster.Criteria{ShiftType: "midShift"}, "", "")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestDashboardView_InvalidSortField(t *testing.T) {
	store := testStore()
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := DashboardView(ctx, store, logger,
		roster.Criteria{}, "phoneNumber", "")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "unrecognized sort field")
}

func TestDashboardView_StoreErrors(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	store := testStore()
	store.rowsErr = errors.New("connection refused")
	_, err := DashboardView(ctx, store, logger, roster.Criteria{}, "", "")
	assert.ErrorContains(t, err, "failed to fetch availabilities")

	store = testStore()
	store.profilesErr = errors.New("connection refused")
	_, err = DashboardView(ctx, store, logger, roster.Criteria{}, "", "")
	assert.ErrorContains(t, err, "failed to fetch profiles")
}
