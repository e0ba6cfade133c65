package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mbergmann/wachplan/pkg/core/model"
	"github.com/mbergmann/wachplan/pkg/core/roster"
)

// CalendarDay is one cell of the month view: the records active on that
// day and the number of distinct people among them.
type CalendarDay struct {
	Date        time.Time
	Records     []model.AvailabilityRecord
	PeopleCount int
}

// CalendarMonthResult contains the projected month view
type CalendarMonthResult struct {
	Year  int
	Month time.Month

	// Days holds one entry per calendar day of the month, in order.
	Days []CalendarDay

	// LeadingOffset is the number of blank cells before day 1 in a
	// Monday-first grid.
	LeadingOffset int
}

// CalendarMonth projects the availability snapshot onto every day of
// the given month. The snapshot is fetched once; each day is a single
// linear pass through the records.
func CalendarMonth(
	ctx context.Context,
	store RosterStore,
	logger *zap.Logger,
	year int,
	month time.Month,
) (*CalendarMonthResult, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month: %d", month)
	}

	logger.Debug("Projecting calendar month",
		zap.Int("year", year),
		zap.String("month", month.String()))

	records, err := loadRoster(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]CalendarDay, 0, daysInMonth)
	for d := 0; d < daysInMonth; d++ {
		date := first.AddDate(0, 0, d)
		active := roster.ActiveOn(records, date)
		days = append(days, CalendarDay{
			Date:        date,
			Records:     active,
			PeopleCount: roster.CountDistinctPeople(active),
		})
	}

	// Monday-first grid: Monday -> 0 ... Sunday -> 6.
	leadingOffset := (int(first.Weekday()) + 6) % 7

	logger.Debug("Calendar month projected",
		zap.Int("days", len(days)),
		zap.Int("records", len(records)))

	return &CalendarMonthResult{
		Year:          year,
		Month:         month,
		Days:          days,
		LeadingOffset: leadingOffset,
	}, nil
}

// ActiveOnDay projects the snapshot onto a single selected day, the
// query behind the day-detail panel.
func ActiveOnDay(
	ctx context.Context,
	store RosterStore,
	logger *zap.Logger,
	day time.Time,
) ([]model.AvailabilityRecord, error) {
	records, err := loadRoster(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	active := roster.ActiveOn(records, day)
	logger.Debug("Projected single day",
		zap.String("day", day.Format(model.DateLayout)),
		zap.Int("active", len(active)))

	return active, nil
}
