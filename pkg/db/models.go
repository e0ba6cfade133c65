package db

import "time"

// AvailabilityRow is the storage shape of one availability submission.
// Multi-value fields (locations, weekdays) are stored as comma-joined
// text; splitting them into sets happens during normalization, not here.
type AvailabilityRow struct {
	ID               string
	OwnerID          string // empty for legacy rows without an owner
	StartDate        string // "2006-01-02"
	EndDate          string // empty for single-day entries
	StartTime        string // "15:04", empty when unconstrained
	EndTime          string
	ShiftType        string
	Locations        string // comma-joined labels
	MobileDeployable string // "yes", "no" or empty
	IsRecurring      bool
	Weekdays         string // comma-joined weekday names
	Notes            string
	CreatedAt        time.Time
}

// ProfileRow is the storage shape of one person profile.
type ProfileRow struct {
	ID            string
	FirstName     string
	LastName      string
	PhoneNumber   string
	GuardIDNumber string
	EPinNumber    string
}
