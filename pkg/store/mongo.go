package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBackend stores placement blobs in a MongoDB collection, one document
// per player keyed by the storage key.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	URI        string // e.g. mongodb://localhost:27017
	Database   string // default "dotstitch"
	Collection string // default "placements"
}

type mongoDoc struct {
	Key  string `bson:"_id"`
	Data []byte `bson:"data"`
}

// NewMongoBackend connects to MongoDB and verifies the connection.
func NewMongoBackend(ctx context.Context, cfg MongoConfig) (*MongoBackend, error) {
	if cfg.Database == "" {
		cfg.Database = "dotstitch"
	}
	if cfg.Collection == "" {
		cfg.Collection = "placements"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoBackend{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get retrieves a blob.
func (m *MongoBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc mongoDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc.Data, true, nil
}

// Set stores a blob, upserting the player's document.
func (m *MongoBackend) Set(ctx context.Context, key string, data []byte) error {
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key},
		mongoDoc{Key: key, Data: data},
		options.Replace().SetUpsert(true))
	return err
}

// Delete removes a blob.
func (m *MongoBackend) Delete(ctx context.Context, key string) error {
	_, err := m.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// Close disconnects from MongoDB.
func (m *MongoBackend) Close() error {
	return m.client.Disconnect(context.Background())
}

// Ensure MongoBackend implements Backend.
var _ Backend = (*MongoBackend)(nil)
