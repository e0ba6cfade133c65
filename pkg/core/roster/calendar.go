package roster

import (
	"time"

	"github.com/mbergmann/wachplan/pkg/core/model"
)

// ActiveOn returns the records active on the given calendar day, in
// input order. A record is active when the day falls within its
// inclusive date interval and, for recurring records, the day's weekday
// is in the record's weekday set. A recurring record with an empty
// weekday set is active on no day at all.
//
// The calendar view calls this once per visible cell, so it is a single
// linear pass with no allocation beyond the result slice.
func ActiveOn(records []model.AvailabilityRecord, day time.Time) []model.AvailabilityRecord {
	day = model.Midnight(day)
	weekday := model.WeekdayOf(day)

	active := make([]model.AvailabilityRecord, 0)
	for _, rec := range records {
		if !rec.ContainsDate(day) {
			continue
		}
		if rec.IsRecurring && !rec.HasWeekday(weekday) {
			continue
		}
		active = append(active, rec)
	}
	return active
}

// GroupByPerson groups records by the owner's full name, preserving
// record order within each group. Records without any owner name are
// grouped under the empty key.
func GroupByPerson(records []model.AvailabilityRecord) map[string][]model.AvailabilityRecord {
	groups := make(map[string][]model.AvailabilityRecord)
	for _, rec := range records {
		name := rec.Owner.FullName()
		groups[name] = append(groups[name], rec)
	}
	return groups
}

// CountDistinctPeople counts the distinct owners among the given
// records, the number shown on each calendar cell badge.
func CountDistinctPeople(records []model.AvailabilityRecord) int {
	return len(GroupByPerson(records))
}
