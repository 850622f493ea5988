package mongo

import (
	"alcyxob/exercise-catalog/internal/catalog"
	"alcyxob/exercise-catalog/internal/domain"
	"alcyxob/exercise-catalog/internal/repository"
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	exerciseCollectionName    = "exercises"
	variantCollectionName     = "variants"
	categoryCollectionName    = "exercises_categories"
	descriptionCollectionName = "exercises_descriptions"
)

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// exerciseDocument is one result of the aggregation in List.
// $lookup always yields an array; $unwind turns the variant one into a document.
type exerciseDocument struct {
	domain.Exercise `bson:",inline"`
	Variant         *domain.Variant   `bson:"variant,omitempty"`
	Category        []domain.Category `bson:"category"`
}

func (d exerciseDocument) toRow() catalog.Row {
	row := catalog.Row{Exercise: d.Exercise, Variant: d.Variant}
	if len(d.Category) > 0 {
		c := d.Category[0]
		row.Category = &c
	}
	return row
}

// Create inserts a new exercise into the database.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" || exercise.CategoryID == "" {
		return nil, domain.Validationf("exercise name and category are required")
	}

	doc := *exercise
	doc.ID = uuid.NewString()
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, translateError("create exercise", err)
	}
	return &doc, nil
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise); err != nil {
		return nil, translateError("get exercise", err)
	}
	return &exercise, nil
}

// List runs the visibility- and search-filtered aggregation.
func (r *mongoExerciseRepository) List(ctx context.Context, q catalog.Query) ([]catalog.Row, error) {
	cursor, err := r.collection.Aggregate(ctx, exerciseListPipeline(q))
	if err != nil {
		return nil, translateError("list exercises", err)
	}
	defer cursor.Close(ctx)

	var docs []exerciseDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, translateError("list exercises", err)
	}

	rows := make([]catalog.Row, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, d.toRow())
	}
	return rows, nil
}

// exerciseListPipeline builds the aggregation: visible exercises, left-joined
// with their category and the requesting user's variant, then narrowed by
// the search text over both names.
func exerciseListPipeline(q catalog.Query) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: visibleTo(q.UserID)}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: categoryCollectionName},
			{Key: "localField", Value: "categoryId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "category"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: variantCollectionName},
			{Key: "let", Value: bson.D{{Key: "exerciseId", Value: "$_id"}}},
			{Key: "pipeline", Value: mongo.Pipeline{
				{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{{Key: "$and", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$exerciseId", "$$exerciseId"}}},
					// $literal keeps an id starting with "$" from being read as a field path
					bson.D{{Key: "$eq", Value: bson.A{"$userId", bson.D{{Key: "$literal", Value: q.UserID}}}}},
				}}}}}}},
			}},
			{Key: "as", Value: "variant"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$variant"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	if search := q.Search(); search != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: nameMatches(search)}})
	}

	return append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}}})
}

// visibleTo keeps global exercises (userId null or missing) and userID's own.
func visibleTo(userID string) bson.D {
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "userId", Value: nil}},
		bson.D{{Key: "userId", Value: userID}},
	}}}
}

// nameMatches ORs a case-insensitive substring match on both names.
func nameMatches(search string) bson.D {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "name", Value: pattern}},
		bson.D{{Key: "variant.name", Value: pattern}},
	}}}
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			// Visibility filter
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index(),
		},
	})
}
