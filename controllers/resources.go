package controller

import (
	"context"
	"fmt"

	"octofit/models"
	"octofit/serializers"
	"octofit/store"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Resource is one record type mounted on the API.
type Resource interface {
	ResourceName() string
	Register(router fiber.Router)
}

// NewResources is the dispatch table from resource name to its model, payload,
// serializer and default ordering. Order here is the order of the API root document.
// Ties in every ordering fall back to insertion order (id ascending).
func NewResources(db *gorm.DB) []Resource {
	return []Resource{
		&ResourceController[models.User, serializers.UserInput, serializers.User]{
			Name:      "users",
			Label:     "User",
			Ordering:  "name ASC, id ASC",
			Repo:      store.NewRepository[models.User](db),
			Serialize: serializers.SerializeUser,
			Conflicts: uniqueUserEmail,
			Logger:    resourceLogger("users"),
		},
		&ResourceController[models.Team, serializers.TeamInput, serializers.Team]{
			Name:      "teams",
			Label:     "Team",
			Ordering:  "name ASC, id ASC",
			Repo:      store.NewRepository[models.Team](db),
			Serialize: serializers.SerializeTeam,
			Logger:    resourceLogger("teams"),
		},
		&ResourceController[models.Activity, serializers.ActivityInput, serializers.Activity]{
			Name:      "activities",
			Label:     "Activity",
			Ordering:  "date DESC, id ASC",
			Repo:      store.NewRepository[models.Activity](db),
			Serialize: serializers.SerializeActivity,
			Logger:    resourceLogger("activities"),
		},
		&ResourceController[models.Leaderboard, serializers.LeaderboardInput, serializers.Leaderboard]{
			Name:      "leaderboard",
			Label:     "Leaderboard entry",
			Ordering:  "score DESC, id ASC",
			Repo:      store.NewRepository[models.Leaderboard](db),
			Serialize: serializers.SerializeLeaderboard,
			Logger:    resourceLogger("leaderboard"),
		},
		&ResourceController[models.Workout, serializers.WorkoutInput, serializers.Workout]{
			Name:      "workouts",
			Label:     "Workout",
			Ordering:  "name ASC, id ASC",
			Repo:      store.NewRepository[models.Workout](db),
			Serialize: serializers.SerializeWorkout,
			Logger:    resourceLogger("workouts"),
		},
	}
}

// ResourceNames lists the mounted resources in registration order.
func ResourceNames(resources []Resource) []string {
	names := make([]string, 0, len(resources))
	for _, r := range resources {
		names = append(names, r.ResourceName())
	}
	return names
}

func resourceLogger(name string) *logrus.Entry {
	return logrus.WithField("resource", name)
}

// uniqueUserEmail is checked before writing so the common case gets a clear message;
// the unique index still catches concurrent writers.
func uniqueUserEmail(ctx context.Context, repo *store.Repository[models.User], u *models.User) error {
	exists, err := repo.ExistsBy(ctx, "email", u.Email, u.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("email %s: %w", u.Email, store.ErrConflict)
	}
	return nil
}
