package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbergmann/wachplan/pkg/core/model"
)

func boolPtr(b bool) *bool { return &b }

func testRecords() []model.AvailabilityRecord {
	return []model.AvailabilityRecord{
		{
			ID:      "r1",
			OwnerID: "p1",
			Owner: model.PersonProfile{
				ID: "p1", FirstName: "Ana", LastName: "Müller",
				PhoneNumber: "+49 170 1111111", GuardIDNumber: "GID-100",
			},
			StartDate:        "2025-01-06",
			EndDate:          "2025-01-06",
			ShiftType:        model.ShiftEarly,
			Locations:        []string{"Köln", "Essen"},
			MobileDeployable: model.TriYes,
			CreatedAt:        time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:      "r2",
			OwnerID: "p2",
			Owner: model.PersonProfile{
				ID: "p2", FirstName: "Bob", LastName: "Smith",
				PhoneNumber: "+49 170 2222222", EPinNumber: "E-200",
			},
			StartDate:        "2025-01-01",
			EndDate:          "2025-01-31",
			StartTime:        "06:00",
			EndTime:          "14:00",
			ShiftType:        model.ShiftNight,
			Locations:        []string{"Köln"},
			MobileDeployable: model.TriNo,
			IsRecurring:      true,
			Weekdays:         []model.Weekday{model.Saturday, model.Sunday},
			Notes:            "weekends only",
			CreatedAt:        time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "r3",
			StartDate: "2025-02-10",
			EndDate:   "2025-02-14",
			Locations: []string{"Berlin"},
			CreatedAt: time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC),
		},
	}
}

func recordIDs(records []model.AvailabilityRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

func TestFilter_EmptyCriteriaReturnsAllInOrder(t *testing.T) {
	records := testRecords()

	matched, err := Filter(records, Criteria{})
	require.NoError(t, err)

	assert.Equal(t, []string{"r1", "r2", "r3"}, recordIDs(matched))
}

func TestFilter_EmptyInput(t *testing.T) {
	matched, err := Filter(nil, Criteria{Search: "anything"})
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestFilter_Search(t *testing.T) {
	records := testRecords()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"owner name, case-insensitive", "müller", []string{"r1"}},
		{"partial first name", "bo", []string{"r2"}},
		{"location", "köln", []string{"r1", "r2"}},
		{"notes", "weekend", []string{"r2"}},
		{"shift type", "early", []string{"r1"}},
		{"weekday name", "saturday", []string{"r2"}},
		{"guard id", "gid-100", []string{"r1"}},
		{"e-pin", "e-200", []string{"r2"}},
		{"phone", "1111111", []string{"r1"}},
		{"no match", "does-not-exist", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := Filter(records, Criteria{Search: tt.search})
			require.NoError(t, err)
			assert.Equal(t, tt.want, idsOrNil(matched))
		})
	}
}

func idsOrNil(records []model.AvailabilityRecord) []string {
	if len(records) == 0 {
		return nil
	}
	return recordIDs(records)
}

func TestFilter_LocationAndMobile(t *testing.T) {
	// One record names Köln among others and is mobile, another names
	// only Köln but is not mobile. Criteria combine with AND.
	records := testRecords()

	matched, err := Filter(records, Criteria{
		Location:         "Köln",
		MobileDeployable: model.TriYes,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"r1"}, recordIDs(matched))
}

func TestFilter_LocationIsCaseInsensitive(t *testing.T) {
	matched, err := Filter(testRecords(), Criteria{Location: "köln"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, recordIDs(matched))
}

func TestFilter_EmptyLocationsNeverMatchLocation(t *testing.T) {
	records := []model.AvailabilityRecord{{ID: "r1", StartDate: "2025-01-06"}}

	matched, err := Filter(records, Criteria{Location: "Köln"})
	require.NoError(t, err)
	assert.Empty(t, matched)

	// The same record is unaffected by other constraints.
	matched, err = Filter(records, Criteria{OnDate: "2025-01-06"})
	require.NoError(t, err)
	assert.Len(t, matched, 1)
}

func TestFilter_Recurring(t *testing.T) {
	matched, err := Filter(testRecords(), Criteria{Recurring: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, recordIDs(matched))

	matched, err = Filter(testRecords(), Criteria{Recurring: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r3"}, recordIDs(matched))
}

func TestFilter_WeekdaysAny(t *testing.T) {
	records := testRecords()

	matched, err := Filter(records, Criteria{WeekdaysAny: []model.Weekday{model.Sunday, model.Monday}})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, recordIDs(matched))

	// Non-recurring records never match a weekday constraint, even when
	// their date range covers the weekday.
	matched, err = Filter(records, Criteria{WeekdaysAny: []model.Weekday{model.Monday}})
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestFilter_OnDate(t *testing.T) {
	records := testRecords()

	tests := []struct {
		date string
		want []string
	}{
		{"2025-01-06", []string{"r1", "r2"}},
		{"2025-01-07", []string{"r2"}},
		{"2025-02-12", []string{"r3"}},
		{"2024-12-31", nil},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			matched, err := Filter(records, Criteria{OnDate: tt.date})
			require.NoError(t, err)
			assert.Equal(t, tt.want, idsOrNil(matched))
		})
	}
}

func TestFilter_OnDateClampsInvertedInterval(t *testing.T) {
	// endDate before startDate spans just startDate.
	records := []model.AvailabilityRecord{{
		ID:        "r1",
		StartDate: "2025-03-10",
		EndDate:   "2025-03-01",
	}}

	matched, err := Filter(records, Criteria{OnDate: "2025-03-10"})
	require.NoError(t, err)
	assert.Len(t, matched, 1)

	matched, err = Filter(records, Criteria{OnDate: "2025-03-05"})
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestFilter_AtTime(t *testing.T) {
	records := testRecords()

	// r2 is bounded 06:00-14:00; r1 and r3 have no time bounds and
	// always match.
	matched, err := Filter(records, Criteria{AtTime: "08:30"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3"}, recordIDs(matched))

	matched, err = Filter(records, Criteria{AtTime: "15:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r3"}, recordIDs(matched))

	// Bounds are inclusive.
	matched, err = Filter(records, Criteria{AtTime: "14:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3"}, recordIDs(matched))
}

func TestFilter_MissingStartDateNeverMatchesDate(t *testing.T) {
	records := []model.AvailabilityRecord{{ID: "broken", Locations: []string{"Köln"}}}

	matched, err := Filter(records, Criteria{OnDate: "2025-01-06"})
	require.NoError(t, err)
	assert.Empty(t, matched)

	// But it still appears under the identity criteria.
	matched, err = Filter(records, Criteria{})
	require.NoError(t, err)
	assert.Len(t, matched, 1)
}

func TestFilter_Monotonicity(t *testing.T) {
	records := testRecords()

	base := Criteria{Location: "Köln"}
	baseMatched, err := Filter(records, base)
	require.NoError(t, err)

	narrower := base
	narrower.ShiftType = model.ShiftNight
	narrowMatched, err := Filter(records, narrower)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(narrowMatched), len(baseMatched))
}

func TestFilter_InvalidCriteria(t *testing.T) {
	records := testRecords()

	tests := []struct {
		name     string
		criteria Criteria
	}{
		{"unknown shift type", Criteria{ShiftType: "midShift"}},
		{"unknown tri-state", Criteria{MobileDeployable: "maybe"}},
		{"unknown weekday", Criteria{WeekdaysAny: []model.Weekday{"mondey"}}},
		{"bad date", Criteria{OnDate: "06.01.2025"}},
		{"bad time", Criteria{AtTime: "8 o'clock"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := Filter(records, tt.criteria)
			assert.Error(t, err)
			assert.Nil(t, matched)
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := testRecords()
	before := recordIDs(records)

	_, err := Filter(records, Criteria{Search: "köln"})
	require.NoError(t, err)

	assert.Equal(t, before, recordIDs(records))
}
