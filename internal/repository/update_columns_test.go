package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"spotbook/internal/model"
)

// dryRunDB renders statements without a server and hands back the last
// UPDATE it built.
func dryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=spotbook dbname=spotbook sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	var sql string
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:capture", func(tx *gorm.DB) {
		sql = tx.Statement.SQL.String()
	}))
	return db, &sql
}

func TestUpdatesBumpUpdatedAt(t *testing.T) {
	ctx := context.Background()

	t.Run("booking", func(t *testing.T) {
		db, sql := dryRunDB(t)
		day := datatypes.Date(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))
		booking := &model.Booking{ID: 3, SpotID: 1, UserID: 2, StartDate: day, EndDate: day}

		require.NoError(t, NewBookingRepository(db).Update(ctx, booking))
		assert.Contains(t, *sql, "start_date")
		assert.Contains(t, *sql, "end_date")
		assert.Contains(t, *sql, "updated_at")
		assert.NotContains(t, *sql, "spot_id")
	})

	t.Run("review", func(t *testing.T) {
		db, sql := dryRunDB(t)
		review := &model.Review{ID: 4, SpotID: 1, UserID: 2, Review: "Quiet", Stars: 4}

		require.NoError(t, NewReviewRepository(db).Update(ctx, review))
		assert.Contains(t, *sql, "stars")
		assert.Contains(t, *sql, "updated_at")
	})
}
