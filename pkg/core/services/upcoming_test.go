package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUpcomingDeployments(t *testing.T) {
	store := testStore()
	logger := zap.NewNop()
	ctx := context.Background()

	// Window: Jan 3 (Fri) to Jan 9 (Thu). The weekend recurrence
	// contributes Jan 4 and 5, the single-day record Jan 6.
	from := time.Date(2025, 1, 3, 15, 30, 0, 0, time.UTC)
	deployments, err := UpcomingDeployments(ctx, store, logger, from, 7)
	require.NoError(t, err)

	require.Len(t, deployments, 3)
	assert.Equal(t, "2025-01-04", deployments[0].Date.Format("2006-01-02"))
	assert.Equal(t, "r2", deployments[0].Record.ID)
	assert.Equal(t, "2025-01-05", deployments[1].Date.Format("2006-01-02"))
	assert.Equal(t, "r2", deployments[1].Record.ID)
	assert.Equal(t, "2025-01-06", deployments[2].Date.Format("2006-01-02"))
	assert.Equal(t, "r1", deployments[2].Record.ID)
}

func TestUpcomingDeployments_EmptyWindow(t *testing.T) {
	store := testStore()
	logger := zap.NewNop()
	ctx := context.Background()

	deployments, err := UpcomingDeployments(ctx, store, logger,
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 14)
	require.NoError(t, err)
	assert.Empty(t, deployments)
}

func TestUpcomingDeployments_InvalidWindow(t *testing.T) {
	store := testStore()
	logger := zap.NewNop()
	ctx := context.Background()

	tests := []struct {
		name string
		days int
	}{
		{"zero days", 0},
		{"negative days", -7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deployments, err := UpcomingDeployments(ctx, store, logger, time.Now(), tt.days)
			assert.Error(t, err)
			assert.Nil(t, deployments)
			assert.Contains(t, err.Error(), "day window must be positive")
		})
	}
}
