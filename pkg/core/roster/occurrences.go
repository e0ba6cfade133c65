package roster

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/mbergmann/wachplan/pkg/core/model"
)

// Occurrences expands a record into the concrete calendar days it is
// active on within [from, until] inclusive. Plain date-range records
// expand day by day; recurring records expand weekly on their weekday
// set. The result agrees with ActiveOn for every day in the window.
//
// Records without a valid start date, and recurring records with an
// empty weekday set, have no occurrences. That is not an error, it is
// the same never-matches policy the filter and projector apply.
func Occurrences(rec model.AvailabilityRecord, from, until time.Time) ([]time.Time, error) {
	start, end, ok := rec.DateInterval()
	if !ok {
		return nil, nil
	}

	from = model.Midnight(from)
	until = model.Midnight(until)

	lo := start
	if from.After(lo) {
		lo = from
	}
	hi := end
	if until.Before(hi) {
		hi = until
	}
	if lo.After(hi) {
		return nil, nil
	}

	opt := rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: start,
		Until:   end,
	}

	if rec.IsRecurring {
		if len(rec.Weekdays) == 0 {
			return nil, nil
		}
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = rruleWeekdays(rec.Weekdays)
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule for record %s: %w", rec.ID, err)
	}

	return rule.Between(lo, hi, true), nil
}

func rruleWeekdays(weekdays []model.Weekday) []rrule.Weekday {
	out := make([]rrule.Weekday, 0, len(weekdays))
	for _, w := range weekdays {
		switch w {
		case model.Monday:
			out = append(out, rrule.MO)
		case model.Tuesday:
			out = append(out, rrule.TU)
		case model.Wednesday:
			out = append(out, rrule.WE)
		case model.Thursday:
			out = append(out, rrule.TH)
		case model.Friday:
			out = append(out, rrule.FR)
		case model.Saturday:
			out = append(out, rrule.SA)
		case model.Sunday:
			out = append(out, rrule.SU)
		}
	}
	return out
}
