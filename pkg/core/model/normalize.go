package model

import (
	"strings"

	"github.com/mbergmann/wachplan/pkg/db"
)

// Normalize converts storage rows into availability records ready for
// filtering, sorting and calendar projection. It splits the comma-joined
// multi-value fields into sets and merges each owner's profile onto the
// record. Malformed rows are never rejected here: a row with a bad
// field simply carries the zero value for it and is excluded later,
// predicate by predicate.
func Normalize(rows []db.AvailabilityRow, profiles []db.ProfileRow) []AvailabilityRecord {
	profilesByID := make(map[string]PersonProfile, len(profiles))
	for _, p := range profiles {
		profilesByID[p.ID] = PersonProfile{
			ID:            p.ID,
			FirstName:     p.FirstName,
			LastName:      p.LastName,
			PhoneNumber:   p.PhoneNumber,
			GuardIDNumber: p.GuardIDNumber,
			EPinNumber:    p.EPinNumber,
		}
	}

	records := make([]AvailabilityRecord, 0, len(rows))
	for _, row := range rows {
		rec := AvailabilityRecord{
			ID:               row.ID,
			OwnerID:          row.OwnerID,
			StartDate:        strings.TrimSpace(row.StartDate),
			EndDate:          strings.TrimSpace(row.EndDate),
			StartTime:        strings.TrimSpace(row.StartTime),
			EndTime:          strings.TrimSpace(row.EndTime),
			ShiftType:        ShiftType(strings.TrimSpace(row.ShiftType)),
			Locations:        SplitList(row.Locations),
			MobileDeployable: TriState(strings.TrimSpace(row.MobileDeployable)),
			IsRecurring:      row.IsRecurring,
			Weekdays:         splitWeekdays(row.Weekdays),
			Notes:            row.Notes,
			CreatedAt:        row.CreatedAt,
		}

		if row.OwnerID != "" {
			rec.Owner = profilesByID[row.OwnerID]
		}

		records = append(records, rec)
	}

	return records
}

// SplitList splits a comma-joined multi-value field into a set of
// trimmed labels. Empty labels and duplicates are dropped; first-seen
// order is preserved.
func SplitList(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(joined, ",") {
		label := strings.TrimSpace(part)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	return out
}

// splitWeekdays splits a comma-joined weekday field, dropping unknown
// names. Weekday names are lowercased so that storage casing never
// affects matching.
func splitWeekdays(joined string) []Weekday {
	var out []Weekday
	seen := make(map[Weekday]bool)
	for _, part := range SplitList(joined) {
		w, ok := ParseWeekday(part)
		if !ok || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
