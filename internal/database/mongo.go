// server/internal/database/mongo.go
package database

import (
	"context"
	"fmt"
	"time"

	"waste-retrieval-api-server/config"

	"github.com/op/go-logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Connect mở kết nối tới MongoDB và kiểm tra bằng Ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// RetrievalIndexes back the duplicate check (location + timestamp range) and
// the newest-first listing.
func RetrievalIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "location", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("location_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("timestamp_desc"),
		},
	}
}

// EnsureRetrievalIndexes tạo index nếu chưa có. Creating an existing index is a no-op.
func EnsureRetrievalIndexes(ctx context.Context, collection *mongo.Collection, log *logging.Logger) error {
	names, err := collection.Indexes().CreateMany(ctx, RetrievalIndexes())
	if err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", collection.Name(), err)
	}
	log.Infof("Indexes ready on %s: %v", collection.Name(), names)
	return nil
}
