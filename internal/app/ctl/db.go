package ctl

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// withDB connects, runs fn, and disconnects.
func withDB(ctx context.Context, v *viper.Viper, fn func(ctx context.Context, db *mongo.Database) error) error {
	uri := v.GetString("mongo_uri")
	name := v.GetString("mongo_database")
	if name == "" {
		return fmt.Errorf("mongo database name is empty")
	}

	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := mongo.Connect(cctx, options.Client().ApplyURI(uri).SetAppName("fresherlinkctl"))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := client.Ping(cctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return fn(ctx, client.Database(name))
}
