package roster

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mbergmann/wachplan/pkg/core/model"
)

// SortField selects the comparison key for Sort.
type SortField string

const (
	SortByName      SortField = "name"
	SortByDate      SortField = "date"
	SortByLocation  SortField = "location"
	SortByShiftType SortField = "shiftType"
	SortByCreatedAt SortField = "createdAt"
)

// IsValid reports whether f is a known sort field.
func (f SortField) IsValid() bool {
	switch f {
	case SortByName, SortByDate, SortByLocation, SortByShiftType, SortByCreatedAt:
		return true
	}
	return false
}

// Direction selects ascending or descending order. The empty string
// defaults to ascending.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// newCollator returns the collator used for locale-aware string keys.
// German collation keeps umlauts where users expect them ("Müller"
// before "Smith"). Collators are not safe for concurrent use, so each
// Sort call gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.German, collate.IgnoreCase)
}

// Sort returns a new slice ordered by the given field and direction.
// The sort is stable: records with equal keys keep their prior relative
// order, so repeated re-sorting of the same filtered set behaves
// predictably when the caller toggles direction. An unknown field or
// direction is a caller bug and fails fast.
func Sort(records []model.AvailabilityRecord, field SortField, dir Direction) ([]model.AvailabilityRecord, error) {
	if !field.IsValid() {
		return nil, fmt.Errorf("unrecognized sort field: %q", field)
	}
	switch dir {
	case Ascending, Descending, "":
	default:
		return nil, fmt.Errorf("unrecognized sort direction: %q", dir)
	}

	out := make([]model.AvailabilityRecord, len(records))
	copy(out, records)

	less := lessFunc(field)
	if dir == Descending {
		asc := less
		less = func(a, b model.AvailabilityRecord) bool { return asc(b, a) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out, nil
}

// lessFunc builds the ascending comparator for a field. String keys use
// locale-aware collation; absent values sort first in ascending order
// (empty string, zero time).
func lessFunc(field SortField) func(a, b model.AvailabilityRecord) bool {
	col := newCollator()

	switch field {
	case SortByName:
		return func(a, b model.AvailabilityRecord) bool {
			return col.CompareString(a.Owner.FullName(), b.Owner.FullName()) < 0
		}
	case SortByDate:
		return func(a, b model.AvailabilityRecord) bool {
			return startDateValue(a).Before(startDateValue(b))
		}
	case SortByLocation:
		return func(a, b model.AvailabilityRecord) bool {
			return col.CompareString(a.JoinedLocations(), b.JoinedLocations()) < 0
		}
	case SortByShiftType:
		return func(a, b model.AvailabilityRecord) bool {
			return col.CompareString(string(a.ShiftType), string(b.ShiftType)) < 0
		}
	default: // SortByCreatedAt, validated by the caller
		return func(a, b model.AvailabilityRecord) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
}

// startDateValue parses the record's start date as a calendar-date
// value, avoiding lexicographic pitfalls with non-padded formats.
// Unparseable dates sort as the zero time.
func startDateValue(r model.AvailabilityRecord) time.Time {
	t, err := time.Parse(model.DateLayout, r.StartDate)
	if err != nil {
		return time.Time{}
	}
	return t
}
