package main

import (
	"context"
	"time"

	migrations "staybook/internal/migrations/mongo"
	"staybook/pkg/config"
)

const ServiceName = "migrate"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := migrations.RunMigration(ctx, db, cfg.Log); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
}
