package models

import (
	"context"
	"fmt"
	"time"

	"octofit/store"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedCounts reports how many rows each table holds after seeding.
type SeedCounts struct {
	Users       int64 `json:"users"`
	Teams       int64 `json:"teams"`
	Activities  int64 `json:"activities"`
	Leaderboard int64 `json:"leaderboard"`
	Workouts    int64 `json:"workouts"`
}

type exercise map[string]any

type workoutFixture struct {
	name        string
	description string
	exercises   []exercise
}

var marvelHeroes = []User{
	{Name: "Tony Stark", Email: "ironman@marvel.com", Age: 45},
	{Name: "Peter Parker", Email: "spiderman@marvel.com", Age: 22},
	{Name: "Natasha Romanoff", Email: "blackwidow@marvel.com", Age: 35},
	{Name: "Steve Rogers", Email: "captain_america@marvel.com", Age: 105},
	{Name: "Thor Odinson", Email: "thor@marvel.com", Age: 1500},
}

var dcHeroes = []User{
	{Name: "Bruce Wayne", Email: "batman@dc.com", Age: 40},
	{Name: "Clark Kent", Email: "superman@dc.com", Age: 35},
	{Name: "Diana Prince", Email: "wonderwoman@dc.com", Age: 800},
	{Name: "Barry Allen", Email: "flash@dc.com", Age: 28},
	{Name: "Hal Jordan", Email: "greenlantern@dc.com", Age: 32},
}

func day(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }

var activityFixtures = []Activity{
	{User: "ironman@marvel.com", ActivityType: "Flying in Iron Man suit", Duration: 60, Date: day(10)},
	{User: "spiderman@marvel.com", ActivityType: "Web-slinging across NYC", Duration: 45, Date: day(11)},
	{User: "blackwidow@marvel.com", ActivityType: "Combat training", Duration: 90, Date: day(12)},
	{User: "captain_america@marvel.com", ActivityType: "Shield throwing practice", Duration: 75, Date: day(13)},
	{User: "thor@marvel.com", ActivityType: "Hammer wielding workout", Duration: 120, Date: day(14)},
	{User: "batman@dc.com", ActivityType: "Gotham night patrol", Duration: 180, Date: day(10)},
	{User: "superman@dc.com", ActivityType: "Flying over Metropolis", Duration: 30, Date: day(11)},
	{User: "wonderwoman@dc.com", ActivityType: "Lasso of Truth training", Duration: 60, Date: day(12)},
	{User: "flash@dc.com", ActivityType: "Speed force run", Duration: 5, Date: day(13)},
	{User: "greenlantern@dc.com", ActivityType: "Power ring constructs", Duration: 50, Date: day(14)},
}

var leaderboardFixtures = []Leaderboard{
	{User: "thor@marvel.com", Score: 950},
	{User: "batman@dc.com", Score: 910},
	{User: "wonderwoman@dc.com", Score: 880},
	{User: "captain_america@marvel.com", Score: 860},
	{User: "superman@dc.com", Score: 840},
	{User: "ironman@marvel.com", Score: 820},
	{User: "blackwidow@marvel.com", Score: 800},
	{User: "flash@dc.com", Score: 790},
	{User: "spiderman@marvel.com", Score: 750},
	{User: "greenlantern@dc.com", Score: 700},
}

var workoutFixtures = []workoutFixture{
	{
		name:        "Iron Man Endurance Circuit",
		description: "High-intensity endurance training inspired by Tony Stark's arc reactor powered suit.",
		exercises: []exercise{
			{"name": "Repulsor blast holds", "sets": 3, "reps": 15},
			{"name": "Suit-up sprint drills", "sets": 4, "reps": 10},
			{"name": "Core stabilization plank", "sets": 3, "duration_seconds": 60},
		},
	},
	{
		name:        "Spider-Man Agility Training",
		description: "Agility and flexibility workout inspired by Peter Parker's spider-like abilities.",
		exercises: []exercise{
			{"name": "Wall crawl simulation", "sets": 3, "reps": 12},
			{"name": "Web-swing squats", "sets": 4, "reps": 15},
			{"name": "Spider-sense reaction drills", "sets": 3, "reps": 20},
		},
	},
	{
		name:        "Batman Combat Conditioning",
		description: "Full-body combat conditioning from Bruce Wayne's training regimen.",
		exercises: []exercise{
			{"name": "Batarang throws (resistance band)", "sets": 3, "reps": 20},
			{"name": "Gotham obstacle course run", "sets": 2, "duration_minutes": 15},
			{"name": "Defensive grappling holds", "sets": 4, "reps": 10},
		},
	},
	{
		name:        "Wonder Woman Power Build",
		description: "Strength and power training inspired by Diana Prince's Amazonian warrior training.",
		exercises: []exercise{
			{"name": "Lasso pull rows", "sets": 4, "reps": 12},
			{"name": "Shield block press", "sets": 3, "reps": 15},
			{"name": "Amazonian warrior lunges", "sets": 3, "reps": 20},
		},
	},
	{
		name:        "Flash Speed Intervals",
		description: "High-speed interval training inspired by Barry Allen's speed force abilities.",
		exercises: []exercise{
			{"name": "Speed force sprints", "sets": 10, "duration_seconds": 30},
			{"name": "Treadmill acceleration bursts", "sets": 5, "duration_seconds": 60},
			{"name": "Reaction time drills", "sets": 3, "reps": 25},
		},
	},
}

// SeedFixtures wipes every table and loads the fixed superhero data set.
// Tables are cleared in reverse creation order and the whole run is one transaction,
// so repeated runs always converge to the same rows.
func SeedFixtures(ctx context.Context, db *gorm.DB, log logrus.FieldLogger) (SeedCounts, error) {
	var counts SeedCounts

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := store.NewRepository[User](tx)
		teams := store.NewRepository[Team](tx)
		activities := store.NewRepository[Activity](tx)
		leaderboard := store.NewRepository[Leaderboard](tx)
		workouts := store.NewRepository[Workout](tx)

		log.Info("Clearing existing data...")
		for _, wipe := range []struct {
			table string
			run   func(context.Context) (int64, error)
		}{
			{"leaderboard", leaderboard.DeleteAll},
			{"activities", activities.DeleteAll},
			{"workouts", workouts.DeleteAll},
			{"teams", teams.DeleteAll},
			{"users", users.DeleteAll},
		} {
			n, err := wipe.run(ctx)
			if err != nil {
				return fmt.Errorf("clear %s: %w", wipe.table, err)
			}
			log.WithFields(logrus.Fields{"table": wipe.table, "deleted": n}).Debug("Cleared table")
		}

		log.Info("Creating superhero users...")
		marvel, err := createUsers(ctx, users, log, marvelHeroes)
		if err != nil {
			return err
		}
		dc, err := createUsers(ctx, users, log, dcHeroes)
		if err != nil {
			return err
		}

		log.Info("Creating teams...")
		for _, t := range []struct {
			name    string
			members []string
		}{
			{"Team Marvel", marvel},
			{"Team DC", dc},
		} {
			members, err := EncodeJSONText(t.members)
			if err != nil {
				return err
			}
			team := Team{Name: t.name, Members: members}
			if err := teams.Create(ctx, &team); err != nil {
				return fmt.Errorf("create team %q: %w", t.name, err)
			}
			log.WithField("team", team.Name).Info("Created team")
		}

		log.Info("Creating activities...")
		for _, fixture := range activityFixtures {
			activity := fixture
			if err := activities.Create(ctx, &activity); err != nil {
				return fmt.Errorf("create activity for %s: %w", activity.User, err)
			}
			log.WithField("activity", activity.String()).Info("Created activity")
		}

		log.Info("Creating leaderboard entries...")
		for _, fixture := range leaderboardFixtures {
			entry := fixture
			if err := leaderboard.Create(ctx, &entry); err != nil {
				return fmt.Errorf("create leaderboard entry for %s: %w", entry.User, err)
			}
			log.WithField("entry", entry.String()).Info("Created leaderboard entry")
		}

		log.Info("Creating workouts...")
		for _, fixture := range workoutFixtures {
			exercises, err := EncodeJSONText(fixture.exercises)
			if err != nil {
				return err
			}
			workout := Workout{Name: fixture.name, Description: fixture.description, Exercises: exercises}
			if err := workouts.Create(ctx, &workout); err != nil {
				return fmt.Errorf("create workout %q: %w", fixture.name, err)
			}
			log.WithField("workout", workout.Name).Info("Created workout")
		}

		for _, c := range []struct {
			table string
			count func(context.Context) (int64, error)
			dst   *int64
		}{
			{"users", users.Count, &counts.Users},
			{"teams", teams.Count, &counts.Teams},
			{"activities", activities.Count, &counts.Activities},
			{"leaderboard", leaderboard.Count, &counts.Leaderboard},
			{"workouts", workouts.Count, &counts.Workouts},
		} {
			n, err := c.count(ctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", c.table, err)
			}
			*c.dst = n
		}
		return nil
	})
	if err != nil {
		return SeedCounts{}, err
	}
	return counts, nil
}

func createUsers(ctx context.Context, repo *store.Repository[User], log logrus.FieldLogger, heroes []User) ([]string, error) {
	emails := make([]string, 0, len(heroes))
	for _, hero := range heroes {
		user := hero
		if err := repo.Create(ctx, &user); err != nil {
			return nil, fmt.Errorf("create user %s: %w", user.Email, err)
		}
		emails = append(emails, user.Email)
		log.WithField("user", user.Name).Info("Created user")
	}
	return emails, nil
}
