package main

import (
	"alcyxob/ai-trainer/internal/config"
	"alcyxob/ai-trainer/internal/logger"
	"alcyxob/ai-trainer/internal/repository/mongo"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	driver "go.mongodb.org/mongo-driver/mongo"
)

var (
	configPath string
	cfg        config.Config
	dbClient   *driver.Client
	appDB      *driver.Database
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Prepare an AI Trainer database",
	Long: `Seed fills a fresh AI Trainer database with the data the API expects.

  $ seed catalog                      # equipment catalog and starter locations
  $ seed admin --email a@b.c --name Admin --password ...

Configuration is read the same way as the server: config.yaml in --config,
then environment variables (DATABASE_URI, DATABASE_NAME, JWT_SECRET).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger.Initialize(logger.ParseLevel(cfg.Log.Level), cfg.Log.Dev)

		dbClient, err = mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		appDB = dbClient.Database(cfg.Database.Name)

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if dbClient != nil {
			return mongo.DisconnectDB(dbClient)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory holding config.yaml")
}
