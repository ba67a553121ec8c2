//go:build integration

package store_test

import (
	"context"
	"io"
	"testing"
	"time"

	"octofit/config"
	"octofit/models"
	"octofit/store"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRepositoryAgainstPostgres(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("octofit_db"),
		postgrescontainer.WithUsername("octofit"),
		postgrescontainer.WithPassword("octofit"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateDB(db))

	quietLogger := logrus.New()
	quietLogger.SetOutput(io.Discard)

	users := store.NewRepository[models.User](db)
	require.NoError(t, users.Create(ctx, &models.User{Name: "Hal Jordan", Email: "greenlantern@dc.com", Age: 32}))
	err = users.Create(ctx, &models.User{Name: "John Stewart", Email: "greenlantern@dc.com", Age: 30})
	require.ErrorIs(t, err, store.ErrConflict)

	activities := store.NewRepository[models.Activity](db)
	activity := models.Activity{
		User:         "greenlantern@dc.com",
		ActivityType: "Power ring constructs",
		Duration:     50,
		Date:         time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, activities.Create(ctx, &activity))

	stored, err := activities.Get(ctx, activity.ID)
	require.NoError(t, err)
	require.Equal(t, "2024-01-14", stored.Date.Format("2006-01-02"))

	counts, err := models.SeedFixtures(ctx, db, quietLogger)
	require.NoError(t, err)
	require.Equal(t, models.SeedCounts{Users: 10, Teams: 2, Activities: 10, Leaderboard: 10, Workouts: 5}, counts)
}
