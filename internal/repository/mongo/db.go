package mongo

import (
	"alcyxob/exercise-catalog/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary node: Connect succeeds even when the server is unreachable.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	err = client.Ping(pingCtx, readpref.Primary())
	if err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// NewStore wires every catalog repository onto db. Closing the store
// disconnects client.
func NewStore(client *mongo.Client, db *mongo.Database) *repository.Store {
	return &repository.Store{
		Exercises:    NewMongoExerciseRepository(db),
		Variants:     NewMongoVariantRepository(db),
		Categories:   NewMongoCategoryRepository(db),
		Descriptions: NewMongoDescriptionRepository(db),
		Close: func() error {
			return DisconnectDB(client)
		},
	}
}

// EnsureCatalogIndexes creates the indexes of every catalog collection.
// Failures are logged, not fatal.
func EnsureCatalogIndexes(ctx context.Context, db *mongo.Database) {
	EnsureExerciseIndexes(ctx, db.Collection(exerciseCollectionName))
	EnsureVariantIndexes(ctx, db.Collection(variantCollectionName))
	EnsureCategoryIndexes(ctx, db.Collection(categoryCollectionName))
	EnsureDescriptionIndexes(ctx, db.Collection(descriptionCollectionName))
}

func createIndexes(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) {
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}

// translateError maps driver errors onto the repository error kinds.
func translateError(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, repository.ErrConflict)
	default:
		return fmt.Errorf("%s: %w: %w", op, repository.ErrStoreFault, err)
	}
}
