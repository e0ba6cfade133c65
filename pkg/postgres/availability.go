package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mbergmann/wachplan/pkg/db"
)

// GetAvailabilities retrieves all availability rows ordered by creation
// time, the snapshot the roster engine runs over. Owner IDs may be
// empty for legacy rows submitted before accounts were linked.
func (d *DB) GetAvailabilities(ctx context.Context) ([]db.AvailabilityRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, COALESCE(owner_id, ''), start_date, end_date, start_time, end_time,
		       shift_type, locations, mobile_deployable, is_recurring, weekdays, notes, created_at
		FROM availability
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query availabilities: %w", err)
	}
	defer rows.Close()

	var out []db.AvailabilityRow
	for rows.Next() {
		var row db.AvailabilityRow
		if err := rows.Scan(
			&row.ID, &row.OwnerID, &row.StartDate, &row.EndDate, &row.StartTime, &row.EndTime,
			&row.ShiftType, &row.Locations, &row.MobileDeployable, &row.IsRecurring,
			&row.Weekdays, &row.Notes, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan availability row: %w", err)
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate availability rows: %w", err)
	}

	return out, nil
}

// InsertAvailability stores a new availability row. An empty ID is
// filled with a generated UUID; an empty owner ID is stored as NULL.
func (d *DB) InsertAvailability(ctx context.Context, row *db.AvailabilityRow) error {
	if row.ID == "" {
		row.ID = uuid.New().String()
	}

	var ownerID *string
	if row.OwnerID != "" {
		ownerID = &row.OwnerID
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO availability (
			id, owner_id, start_date, end_date, start_time, end_time,
			shift_type, locations, mobile_deployable, is_recurring, weekdays, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		row.ID, ownerID, row.StartDate, row.EndDate, row.StartTime, row.EndTime,
		row.ShiftType, row.Locations, row.MobileDeployable, row.IsRecurring,
		row.Weekdays, row.Notes, row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert availability: %w", err)
	}

	return nil
}
