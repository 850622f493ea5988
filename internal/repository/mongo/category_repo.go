package mongo

import (
	"alcyxob/exercise-catalog/internal/domain"
	"alcyxob/exercise-catalog/internal/repository"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCategoryRepository struct {
	collection *mongo.Collection
}

// NewMongoCategoryRepository creates a new Category repository backed by MongoDB.
func NewMongoCategoryRepository(db *mongo.Database) repository.CategoryRepository {
	return &mongoCategoryRepository{
		collection: db.Collection(categoryCollectionName),
	}
}

// List returns every category sorted by name.
func (r *mongoCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, translateError("list categories", err)
	}
	defer cursor.Close(ctx)

	categories := []domain.Category{}
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, translateError("list categories", err)
	}
	return categories, nil
}

// EnsureNames upserts categories by name, leaving existing ones untouched.
func (r *mongoCategoryRepository) EnsureNames(ctx context.Context, names []string) error {
	opts := options.Update().SetUpsert(true)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":       uuid.NewString(),
				"createdAt": time.Now().UTC(),
			},
		}
		if _, err := r.collection.UpdateOne(ctx, bson.M{"name": name}, update, opts); err != nil {
			return translateError("ensure category "+name, err)
		}
	}
	return nil
}

// EnsureCategoryIndexes creates necessary indexes for the categories collection.
func EnsureCategoryIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
