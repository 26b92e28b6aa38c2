package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/metalvault/metalvault/mongo"
)

func NewMongoDatabase(env *Env) (mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.NewClient(env.MongoURI())
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect mongo: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	slog.Info("connected to mongo", "host", env.DBHost, "db", env.DBName)
	return client, nil
}

func CloseMongoDBConnection(client mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		slog.Error("failed to disconnect mongo", "err", err)
		return
	}
	slog.Info("connection to mongo closed")
}
