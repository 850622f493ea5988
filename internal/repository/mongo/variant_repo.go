package mongo

import (
	"alcyxob/exercise-catalog/internal/domain"
	"alcyxob/exercise-catalog/internal/repository"
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoVariantRepository implements repository.VariantRepository
type mongoVariantRepository struct {
	collection *mongo.Collection
}

// NewMongoVariantRepository creates a new Variant repository backed by MongoDB.
func NewMongoVariantRepository(db *mongo.Database) repository.VariantRepository {
	return &mongoVariantRepository{
		collection: db.Collection(variantCollectionName),
	}
}

// Create inserts a new variant. The unique (exerciseId, userId) index turns
// a second variant for the same pair into repository.ErrConflict.
func (r *mongoVariantRepository) Create(ctx context.Context, variant *domain.Variant) (*domain.Variant, error) {
	if variant.Name == "" || variant.UserID == "" || variant.ExerciseID == "" {
		return nil, domain.Validationf("variant name, user and exercise are required")
	}

	doc := *variant
	doc.ID = uuid.NewString()
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, translateError("create variant", err)
	}
	return &doc, nil
}

// Update modifies a variant owned by variant.UserID and returns the stored
// result. Owner and parent exercise are never changed; an empty CategoryID
// leaves the category as is.
func (r *mongoVariantRepository) Update(ctx context.Context, variant *domain.Variant) (*domain.Variant, error) {
	if variant.ID == "" || variant.UserID == "" {
		return nil, domain.Validationf("variant id and user are required for update")
	}
	if variant.Name == "" {
		return nil, domain.Validationf("variant name cannot be empty")
	}

	filter := bson.M{"_id": variant.ID, "userId": variant.UserID}
	set := bson.M{
		"name":      variant.Name,
		"video":     variant.Video,
		"image":     variant.Image,
		"updatedAt": time.Now().UTC(),
	}
	if variant.CategoryID != "" { // Empty keeps the current category
		set["categoryId"] = variant.CategoryID
	}
	update := bson.M{"$set": set}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Variant
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		// ErrNoDocuments covers both a missing id and a variant owned by someone else.
		return nil, translateError("update variant", err)
	}
	return &updated, nil
}

// EnsureVariantIndexes creates necessary indexes for the variants collection.
func EnsureVariantIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			// One personalization per user and exercise; also serves the $lookup.
			Keys:    bson.D{{Key: "exerciseId", Value: 1}, {Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
