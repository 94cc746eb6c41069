package main

import (
	"os"

	"github.com/courseapp/course-service/internal/config"
	"github.com/courseapp/course-service/internal/database"
	"github.com/sirupsen/logrus"
)

// Drops and recreates the users and courses tables. Every row is lost; meant
// for development databases, never production.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Sync(db); err != nil {
		logger.Errorf("Error syncing the database: %v", err)
		os.Exit(1)
	}

	logger.Info("Database & tables created!")
}
