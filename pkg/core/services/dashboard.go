package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mbergmann/wachplan/pkg/core/model"
	"github.com/mbergmann/wachplan/pkg/core/roster"
	"github.com/mbergmann/wachplan/pkg/db"
)

// RosterStore defines the database operations needed to load a roster snapshot
type RosterStore interface {
	GetAvailabilities(ctx context.Context) ([]db.AvailabilityRow, error)
	GetProfiles(ctx context.Context) ([]db.ProfileRow, error)
}

// DashboardResult contains the filtered, sorted roster view for display
type DashboardResult struct {
	Records      []model.AvailabilityRecord
	TotalCount   int
	MatchedCount int
}

// DashboardView loads the availability snapshot, normalizes it, applies
// the filter criteria and sorts the result. An empty sort field
// defaults to creation time so the newest submissions surface in a
// predictable place.
func DashboardView(
	ctx context.Context,
	store RosterStore,
	logger *zap.Logger,
	criteria roster.Criteria,
	field roster.SortField,
	dir roster.Direction,
) (*DashboardResult, error) {
	logger.Debug("Building dashboard view",
		zap.String("sort_field", string(field)),
		zap.String("direction", string(dir)),
		zap.Bool("unfiltered", criteria.IsZero()))

	records, err := loadRoster(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	matched, err := roster.Filter(records, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to filter records: %w", err)
	}
	logger.Debug("Filtered records",
		zap.Int("total", len(records)),
		zap.Int("matched", len(matched)))

	if field == "" {
		field = roster.SortByCreatedAt
	}

	sorted, err := roster.Sort(matched, field, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to sort records: %w", err)
	}

	return &DashboardResult{
		Records:      sorted,
		TotalCount:   len(records),
		MatchedCount: len(matched),
	}, nil
}

// loadRoster fetches availability rows and profiles and normalizes them
// into the denormalized record shape the roster engine consumes.
func loadRoster(ctx context.Context, store RosterStore, logger *zap.Logger) ([]model.AvailabilityRecord, error) {
	logger.Debug("Fetching availability rows")
	rows, err := store.GetAvailabilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availabilities: %w", err)
	}
	logger.Debug("Found availability rows", zap.Int("count", len(rows)))

	logger.Debug("Fetching profiles")
	profiles, err := store.GetProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}
	logger.Debug("Found profiles", zap.Int("count", len(profiles)))

	return model.Normalize(rows, profiles), nil
}
