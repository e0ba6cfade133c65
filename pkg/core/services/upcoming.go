package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mbergmann/wachplan/pkg/core/model"
	"github.com/mbergmann/wachplan/pkg/core/roster"
)

// Deployment is one concrete day a record is in effect.
type Deployment struct {
	Date   time.Time
	Record model.AvailabilityRecord
}

// UpcomingDeployments expands every availability record into its
// concrete active days within the next `days` days starting at `from`,
// sorted by date. Records that cannot be expanded (missing start date,
// recurring without weekdays) simply contribute nothing.
func UpcomingDeployments(
	ctx context.Context,
	store RosterStore,
	logger *zap.Logger,
	from time.Time,
	days int,
) ([]Deployment, error) {
	if days <= 0 {
		return nil, fmt.Errorf("day window must be positive, got %d", days)
	}

	records, err := loadRoster(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	from = model.Midnight(from)
	until := from.AddDate(0, 0, days-1)

	var deployments []Deployment
	for _, rec := range records {
		occurrences, err := roster.Occurrences(rec, from, until)
		if err != nil {
			return nil, fmt.Errorf("failed to expand record %s: %w", rec.ID, err)
		}
		for _, day := range occurrences {
			deployments = append(deployments, Deployment{Date: day, Record: rec})
		}
	}

	// Stable so same-day deployments keep snapshot order.
	sort.SliceStable(deployments, func(i, j int) bool {
		return deployments[i].Date.Before(deployments[j].Date)
	})

	logger.Debug("Expanded upcoming deployments",
		zap.String("from", from.Format(model.DateLayout)),
		zap.Int("days", days),
		zap.Int("deployments", len(deployments)))

	return deployments, nil
}
