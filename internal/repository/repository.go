package repository

import (
	"alcyxob/exercise-catalog/internal/catalog"
	"alcyxob/exercise-catalog/internal/domain" // Import our defined domain models
	"context"
)

// Error kinds returned by every store implementation.
// Stores translate driver errors into these so services can branch on them.
var (
	ErrNotFound   = domain.ErrNotFound   // No row matched (insert returned nothing, update matched nothing)
	ErrConflict   = domain.ErrConflict   // Unique constraint violated
	ErrStoreFault = domain.ErrStoreFault // Anything else the driver reported
)

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	// List returns exercises left-joined with their category and with the
	// requesting user's variant, restricted to rows visible to q.UserID and
	// matching q.Name. Rows are raw; callers run them through catalog.Merge.
	List(ctx context.Context, q catalog.Query) ([]catalog.Row, error)
}

// VariantRepository defines the interface for interacting with variant data.
type VariantRepository interface {
	Create(ctx context.Context, variant *domain.Variant) (*domain.Variant, error)
	// Update rewrites the display fields of the variant with variant.ID owned
	// by variant.UserID. Returns ErrNotFound when nothing matched.
	Update(ctx context.Context, variant *domain.Variant) (*domain.Variant, error)
}

// CategoryRepository defines the interface for the category lookup set.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	// EnsureNames inserts any of names not already present.
	EnsureNames(ctx context.Context, names []string) error
}

// DescriptionRepository defines the interface for per-user descriptions.
type DescriptionRepository interface {
	Create(ctx context.Context, description *domain.Description) (*domain.Description, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Description, error)
}

// Store bundles the repositories one backend provides.
type Store struct {
	Exercises    ExerciseRepository
	Variants     VariantRepository
	Categories   CategoryRepository
	Descriptions DescriptionRepository
	// Close releases the backend connection.
	Close func() error
}
