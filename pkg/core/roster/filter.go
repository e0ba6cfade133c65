// Package roster implements the availability roster engine: predicate
// filtering, multi-key sorting and calendar-day activity projection
// over in-memory snapshots of availability records. All operations are
// pure and synchronous; they never mutate their input and perform no
// I/O, so a caller may re-run them on every state change.
package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/mbergmann/wachplan/pkg/core/model"
)

// Criteria is a compound AND of independently optional filter
// dimensions. A zero-value field means "do not constrain on this
// dimension", so the zero Criteria matches every record.
type Criteria struct {
	// Search is a case-insensitive substring tested against the owner
	// name, phone number, locations, notes, shift type, weekdays and
	// identifier fields. A record matches if any one field contains it.
	Search string

	// ShiftType requires exact equality when set.
	ShiftType model.ShiftType

	// Location requires membership in the record's location set.
	Location string

	// MobileDeployable requires exact equality of the tri-state flag.
	MobileDeployable model.TriState

	// Recurring requires exact equality of the recurrence flag.
	// nil means unconstrained.
	Recurring *bool

	// WeekdaysAny requires a non-empty intersection with the record's
	// weekday set. Non-recurring records never match this constraint.
	WeekdaysAny []model.Weekday

	// OnDate ("2006-01-02") requires the date to fall within the
	// record's inclusive date interval.
	OnDate string

	// AtTime ("15:04") requires the time to fall within the record's
	// time bounds. Records without time bounds always match.
	AtTime string
}

// IsZero reports whether no dimension is constrained.
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.ShiftType == "" && c.Location == "" &&
		c.MobileDeployable == model.TriUnset && c.Recurring == nil &&
		len(c.WeekdaysAny) == 0 && c.OnDate == "" && c.AtTime == ""
}

// Validate checks that every set criterion carries a recognized value.
// A violation is a caller bug, not bad data, so filtering fails fast
// instead of silently dropping the constraint.
func (c Criteria) Validate() error {
	if c.ShiftType != "" && !c.ShiftType.IsValid() {
		return fmt.Errorf("unrecognized shift type in criteria: %q", c.ShiftType)
	}
	if !c.MobileDeployable.IsValid() {
		return fmt.Errorf("unrecognized mobile-deployable value in criteria: %q", c.MobileDeployable)
	}
	for _, w := range c.WeekdaysAny {
		if _, ok := model.ParseWeekday(string(w)); !ok {
			return fmt.Errorf("unrecognized weekday in criteria: %q", w)
		}
	}
	if c.OnDate != "" {
		if _, err := time.Parse(model.DateLayout, c.OnDate); err != nil {
			return fmt.Errorf("invalid onDate criterion %q: %w", c.OnDate, err)
		}
	}
	if c.AtTime != "" {
		if _, err := time.Parse(model.TimeLayout, c.AtTime); err != nil {
			return fmt.Errorf("invalid atTime criterion %q: %w", c.AtTime, err)
		}
	}
	return nil
}

// Filter returns the records matching every set criterion, preserving
// the input's relative order. The input slice is never modified. The
// only error condition is an invalid Criteria value; malformed
// individual records are silently excluded from the predicates that
// need the missing field and are otherwise unaffected.
func Filter(records []model.AvailabilityRecord, c Criteria) ([]model.AvailabilityRecord, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	matched := make([]model.AvailabilityRecord, 0, len(records))
	for _, rec := range records {
		if matches(rec, c) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// matches applies the compound AND. Criteria are assumed validated.
func matches(rec model.AvailabilityRecord, c Criteria) bool {
	if c.Search != "" && !matchesSearch(rec, c.Search) {
		return false
	}

	if c.ShiftType != "" && rec.ShiftType != c.ShiftType {
		return false
	}

	if c.Location != "" && !containsLocation(rec.Locations, c.Location) {
		return false
	}

	if c.MobileDeployable != model.TriUnset && rec.MobileDeployable != c.MobileDeployable {
		return false
	}

	if c.Recurring != nil && rec.IsRecurring != *c.Recurring {
		return false
	}

	if len(c.WeekdaysAny) > 0 {
		// Weekday sets are only meaningful on recurring records.
		if !rec.IsRecurring || !intersectsWeekdays(rec, c.WeekdaysAny) {
			return false
		}
	}

	if c.OnDate != "" {
		day, _ := time.Parse(model.DateLayout, c.OnDate)
		if !rec.ContainsDate(day) {
			return false
		}
	}

	if c.AtTime != "" && !matchesTime(rec, c.AtTime) {
		return false
	}

	return true
}

// matchesSearch tests the search needle against every searchable field,
// OR-combined. Comparison is case-insensitive; absent owner fields are
// empty strings and simply never match.
func matchesSearch(rec model.AvailabilityRecord, needle string) bool {
	needle = strings.ToLower(needle)

	haystacks := []string{
		rec.Owner.FullName(),
		rec.Owner.PhoneNumber,
		rec.JoinedLocations(),
		rec.Notes,
		string(rec.ShiftType),
		rec.JoinedWeekdays(),
		rec.Owner.GuardIDNumber,
		rec.Owner.EPinNumber,
	}

	for _, h := range haystacks {
		if h != "" && strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func containsLocation(locations []string, wanted string) bool {
	for _, loc := range locations {
		if strings.EqualFold(loc, wanted) {
			return true
		}
	}
	return false
}

func intersectsWeekdays(rec model.AvailabilityRecord, wanted []model.Weekday) bool {
	for _, w := range wanted {
		if rec.HasWeekday(w) {
			return true
		}
	}
	return false
}

// matchesTime tests an "15:04" point against the record's inclusive
// time bounds. A record with no time bounds is unconstrained by time; a
// half-bounded record constrains only on the bound it has. Unparseable
// bounds are treated like missing ones.
func matchesTime(rec model.AvailabilityRecord, at string) bool {
	point, err := time.Parse(model.TimeLayout, at)
	if err != nil {
		return false
	}
	minute := point.Hour()*60 + point.Minute()

	lo := 0
	if t, err := time.Parse(model.TimeLayout, rec.StartTime); rec.StartTime != "" && err == nil {
		lo = t.Hour()*60 + t.Minute()
	}

	hi := 24*60 - 1
	if t, err := time.Parse(model.TimeLayout, rec.EndTime); rec.EndTime != "" && err == nil {
		hi = t.Hour()*60 + t.Minute()
	}

	return minute >= lo && minute <= hi
}
