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

type mongoDescriptionRepository struct {
	collection *mongo.Collection
}

// NewMongoDescriptionRepository creates a new Description repository backed by MongoDB.
func NewMongoDescriptionRepository(db *mongo.Database) repository.DescriptionRepository {
	return &mongoDescriptionRepository{
		collection: db.Collection(descriptionCollectionName),
	}
}

func (r *mongoDescriptionRepository) Create(ctx context.Context, description *domain.Description) (*domain.Description, error) {
	if description.Description == "" || description.UserID == "" {
		return nil, domain.Validationf("description text and user are required")
	}

	doc := *description
	doc.ID = uuid.NewString()
	doc.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, translateError("create description", err)
	}
	return &doc, nil
}

// ListByUser returns the user's descriptions, oldest first.
func (r *mongoDescriptionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Description, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, translateError("list descriptions", err)
	}
	defer cursor.Close(ctx)

	descriptions := []domain.Description{}
	if err = cursor.All(ctx, &descriptions); err != nil {
		return nil, translateError("list descriptions", err)
	}
	return descriptions, nil
}

// EnsureDescriptionIndexes creates necessary indexes for the descriptions collection.
func EnsureDescriptionIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
	})
}
