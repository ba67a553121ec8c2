// Command populate-db clears every table and loads the superhero test data set.
package main

import (
	"context"

	"octofit/config"
	"octofit/models"
	"octofit/utils"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := utils.InitLogger(config.AppConfig.LogLevel, config.AppConfig.LogFormat); err != nil {
		log.Fatalf("Failed to configure logger: %v", err)
	}
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = config.CloseDB() }()

	counts, err := models.SeedFixtures(context.Background(), config.DB, log.WithField("command", "populate_db"))
	if err != nil {
		log.Fatalf("Failed to populate database: %v", err)
	}

	log.WithFields(log.Fields{
		"users":       counts.Users,
		"teams":       counts.Teams,
		"activities":  counts.Activities,
		"leaderboard": counts.Leaderboard,
		"workouts":    counts.Workouts,
	}).Info("Database populated successfully with superhero test data")
}
