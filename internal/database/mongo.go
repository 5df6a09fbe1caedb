package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/synergy-india/admin-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoConnectTimeout = 10 * time.Second

type tableNamer interface {
	TableName() string
}

// NewMongoDB connects to MongoDB, verifies the connection and makes sure
// every collection has a unique index on the document id.
func NewMongoDB(ctx context.Context, logger *logrus.Logger, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	log := logger.WithFields(logrus.Fields{
		"component": "database",
		"driver":    "mongo",
		"database":  dbName,
	})

	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("database ping failed: %w", err)
	}

	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		log.WithError(err).Error("Index creation failed")
		return nil, nil, err
	}

	log.Info("Database connection established")
	return client, db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, m := range models.All() {
		name := m.(tableNamer).TableName()
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("create id index on %s: %w", name, err)
		}
	}

	_, err := db.Collection(models.AdminUser{}.TableName()).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}
