package model

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used throughout the application.
// Dates are compared as calendar dates, never as instants.
const DateLayout = "2006-01-02"

// TimeLayout is the time-of-day format for optional shift time bounds.
const TimeLayout = "15:04"

// ShiftType is the enumerated shift tag an availability entry may carry.
type ShiftType string

const (
	ShiftEarly    ShiftType = "earlyShift"
	ShiftLate     ShiftType = "lateShift"
	ShiftNight    ShiftType = "nightShift"
	ShiftFlexible ShiftType = "flexible"
)

// IsValid reports whether s is a known shift type. The empty string is
// not valid here; callers treat it as "unset" before validating.
func (s ShiftType) IsValid() bool {
	switch s {
	case ShiftEarly, ShiftLate, ShiftNight, ShiftFlexible:
		return true
	}
	return false
}

// TriState is a yes/no/unset flag, used for mobile deployability.
type TriState string

const (
	TriYes   TriState = "yes"
	TriNo    TriState = "no"
	TriUnset TriState = ""
)

// IsValid reports whether t is one of the three meaningful states.
func (t TriState) IsValid() bool {
	return t == TriYes || t == TriNo || t == TriUnset
}

// Weekday is a lowercase English weekday name as stored in availability
// entries ("monday" .. "sunday").
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// AllWeekdays lists the weekdays in Monday-first display order.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday parses a weekday name case-insensitively.
// Unknown names return ok=false rather than an error so that
// normalization can silently drop malformed tokens.
func ParseWeekday(s string) (Weekday, bool) {
	w := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllWeekdays {
		if w == known {
			return w, true
		}
	}
	return "", false
}

// WeekdayOf returns the Weekday name for a calendar date.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// PersonProfile is the read-only owner data merged onto availability
// records before the roster engine runs. The engine never fetches it.
type PersonProfile struct {
	ID            string
	FirstName     string
	LastName      string
	PhoneNumber   string
	GuardIDNumber string
	EPinNumber    string
}

// FullName returns "FirstName LastName" with missing parts trimmed away.
func (p PersonProfile) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// AvailabilityRecord is one availability submission, denormalized with
// its owner profile. Records are value-immutable from the roster
// engine's perspective: filtering, sorting and projection return new
// slices and never mutate a record in place.
type AvailabilityRecord struct {
	ID      string
	OwnerID string // empty for legacy records without an owner reference
	Owner   PersonProfile

	// StartDate and EndDate bound the inclusive calendar-date interval
	// this entry covers. EndDate empty means a single-day entry.
	StartDate string
	EndDate   string

	// StartTime and EndTime are optional time-of-day bounds. Both empty
	// means the entry is unconstrained by time.
	StartTime string
	EndTime   string

	ShiftType        ShiftType
	Locations        []string
	MobileDeployable TriState

	// IsRecurring restricts the entry to the Weekdays set within the
	// date interval. A recurring entry with an empty weekday set
	// applies to no day at all.
	IsRecurring bool
	Weekdays    []Weekday

	Notes     string
	CreatedAt time.Time
}

// JoinedLocations returns the locations as a single comma-joined string,
// the form used for display, search and location-keyed sorting.
func (r AvailabilityRecord) JoinedLocations() string {
	return strings.Join(r.Locations, ", ")
}

// JoinedWeekdays returns the weekday set as a comma-joined string.
func (r AvailabilityRecord) JoinedWeekdays() string {
	parts := make([]string, len(r.Weekdays))
	for i, w := range r.Weekdays {
		parts[i] = string(w)
	}
	return strings.Join(parts, ", ")
}

// HasWeekday reports whether w is in the record's weekday set.
func (r AvailabilityRecord) HasWeekday(w Weekday) bool {
	for _, d := range r.Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// DateInterval returns the record's inclusive calendar interval as
// midnight-UTC times. EndDate defaults to StartDate when absent, and an
// EndDate before StartDate is clamped to StartDate so a corrupted
// record spans a single day instead of matching nothing by accident or
// crashing. ok is false when StartDate is missing or unparseable; such
// a record never takes part in any date-based match.
func (r AvailabilityRecord) DateInterval() (start, end time.Time, ok bool) {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	end = start
	if r.EndDate != "" {
		parsed, err := time.Parse(DateLayout, r.EndDate)
		if err == nil && !parsed.Before(start) {
			end = parsed
		}
	}

	return start, end, true
}

// ContainsDate reports whether day falls within the record's inclusive
// date interval. Records without a valid StartDate contain no day.
func (r AvailabilityRecord) ContainsDate(day time.Time) bool {
	start, end, ok := r.DateInterval()
	if !ok {
		return false
	}
	day = Midnight(day)
	return !day.Before(start) && !day.After(end)
}

// Midnight truncates t to its calendar date at midnight UTC, the
// canonical form for calendar-date comparison.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
