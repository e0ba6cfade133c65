package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mbergmann/wachplan/pkg/db"
)

// GetProfiles retrieves all person profiles.
func (d *DB) GetProfiles(ctx context.Context) ([]db.ProfileRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, first_name, last_name, phone_number, guard_id_number, e_pin_number
		FROM profile
		ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var out []db.ProfileRow
	for rows.Next() {
		var row db.ProfileRow
		if err := rows.Scan(
			&row.ID, &row.FirstName, &row.LastName,
			&row.PhoneNumber, &row.GuardIDNumber, &row.EPinNumber,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profile rows: %w", err)
	}

	return out, nil
}

// InsertProfile stores a new person profile. An empty ID is filled with
// a generated UUID.
func (d *DB) InsertProfile(ctx context.Context, row *db.ProfileRow) error {
	if row.ID == "" {
		row.ID = uuid.New().String()
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO profile (id, first_name, last_name, phone_number, guard_id_number, e_pin_number)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, row.ID, row.FirstName, row.LastName, row.PhoneNumber, row.GuardIDNumber, row.EPinNumber)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}
