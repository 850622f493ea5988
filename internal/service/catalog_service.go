package service

import (
	"alcyxob/exercise-catalog/internal/catalog"
	"alcyxob/exercise-catalog/internal/domain"
	"alcyxob/exercise-catalog/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = fmt.Errorf("exercise %w", domain.ErrNotFound)
	ErrVariantNotFound  = fmt.Errorf("variant %w", domain.ErrNotFound)
	ErrVariantExists    = fmt.Errorf("variant for this exercise already exists: %w", domain.ErrConflict)
	ErrMediaNotFound    = fmt.Errorf("media %w", domain.ErrNotFound)
)

// --- Inputs ---

// CreateExerciseInput holds the writable fields of an exercise.
// A nil UserID creates a global exercise.
type CreateExerciseInput struct {
	Name       string
	Video      string
	Image      string
	CategoryID string
	UserID     *string
}

// CreateVariantInput holds the writable fields of a variant.
// An empty CategoryID inherits the parent exercise's category.
type CreateVariantInput struct {
	Name       string
	Video      string
	Image      string
	CategoryID string
	UserID     string
	ExerciseID string
}

type CreateDescriptionInput struct {
	Description string
	UserID      string
	ExerciseID  *string
}

// UpdateVariantInput replaces the display fields of a variant UserID owns.
// An empty CategoryID keeps the current category.
type UpdateVariantInput struct {
	VariantID  string
	Name       string
	Video      string
	Image      string
	CategoryID string
	UserID     string
}

// --- Service Interface ---

// CatalogService is the public surface of the exercise catalog. Every error
// it returns carries one of the domain kinds (see domain.KindOf).
type CatalogService interface {
	CreateExercise(ctx context.Context, in CreateExerciseInput) (*domain.Exercise, error)
	CreateVariant(ctx context.Context, in CreateVariantInput) (*domain.Variant, error)
	CreateExerciseDescription(ctx context.Context, in CreateDescriptionInput) (*domain.Description, error)
	ReadExercises(ctx context.Context, userID, name string) ([]domain.UnifiedExercise, error)
	ReadExercisesCategories(ctx context.Context) ([]domain.Category, error)
	ReadExercisesDescriptions(ctx context.Context, userID string) ([]domain.Description, error)
	UpdateVariant(ctx context.Context, in UpdateVariantInput) (*domain.Variant, error)
}

// --- Service Implementation ---

type catalogService struct {
	exerciseRepo    repository.ExerciseRepository
	variantRepo     repository.VariantRepository
	categoryRepo    repository.CategoryRepository
	descriptionRepo repository.DescriptionRepository
}

// NewCatalogService creates a CatalogService over the repositories of store.
func NewCatalogService(store *repository.Store) CatalogService {
	return &catalogService{
		exerciseRepo:    store.Exercises,
		variantRepo:     store.Variants,
		categoryRepo:    store.Categories,
		descriptionRepo: store.Descriptions,
	}
}

// CreateExercise stores a new exercise, global when in.UserID is nil.
func (s *catalogService) CreateExercise(ctx context.Context, in CreateExerciseInput) (*domain.Exercise, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.Validationf("exercise name and category are required")
	}
	if in.UserID != nil && strings.TrimSpace(*in.UserID) == "" {
		return nil, domain.Validationf("owner id cannot be blank")
	}

	created, err := s.exerciseRepo.Create(ctx, &domain.Exercise{
		Name:       in.Name,
		Video:      in.Video,
		Image:      in.Image,
		CategoryID: in.CategoryID,
		UserID:     in.UserID,
	})
	if err != nil {
		return nil, domain.Classify("create exercise", err)
	}

	exercise, err := catalog.NormalizeExercise(*created)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

// CreateVariant personalizes an exercise the user can see. Exercises that
// are missing or private to someone else are both reported as not found.
func (s *catalogService) CreateVariant(ctx context.Context, in CreateVariantInput) (*domain.Variant, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.UserID == "" || in.ExerciseID == "" {
		return nil, domain.Validationf("variant name, user and exercise are required")
	}

	parent, err := s.visibleExercise(ctx, in.ExerciseID, in.UserID)
	if err != nil {
		return nil, err
	}
	if in.CategoryID == "" {
		in.CategoryID = parent.CategoryID
	}

	created, err := s.variantRepo.Create(ctx, &domain.Variant{
		Name:       in.Name,
		Video:      in.Video,
		Image:      in.Image,
		CategoryID: in.CategoryID,
		UserID:     in.UserID,
		ExerciseID: in.ExerciseID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrVariantExists
		}
		return nil, domain.Classify("create variant", err)
	}

	variant, err := catalog.NormalizeVariant(*created)
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// CreateExerciseDescription stores a user's note, optionally pinned to an
// exercise that user can see.
func (s *catalogService) CreateExerciseDescription(ctx context.Context, in CreateDescriptionInput) (*domain.Description, error) {
	if strings.TrimSpace(in.Description) == "" || in.UserID == "" {
		return nil, domain.Validationf("description text and user are required")
	}
	if in.ExerciseID != nil && *in.ExerciseID == "" {
		in.ExerciseID = nil
	}
	if in.ExerciseID != nil {
		if _, err := s.visibleExercise(ctx, *in.ExerciseID, in.UserID); err != nil {
			return nil, err
		}
	}

	created, err := s.descriptionRepo.Create(ctx, &domain.Description{
		Description: in.Description,
		UserID:      in.UserID,
		ExerciseID:  in.ExerciseID,
	})
	if err != nil {
		return nil, domain.Classify("create description", err)
	}

	description, err := catalog.NormalizeDescription(*created)
	if err != nil {
		return nil, err
	}
	return &description, nil
}

// ReadExercises returns every exercise visible to userID, merged with that
// user's variants and filtered by name when name is not blank.
func (s *catalogService) ReadExercises(ctx context.Context, userID, name string) ([]domain.UnifiedExercise, error) {
	q := catalog.Query{UserID: userID, Name: name}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.exerciseRepo.List(ctx, q)
	if err != nil {
		return nil, domain.Classify("read exercises", err)
	}
	return catalog.Merge(q, rows)
}

func (s *catalogService) ReadExercisesCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, domain.Classify("read categories", err)
	}
	return catalog.NormalizeCategories(categories)
}

func (s *catalogService) ReadExercisesDescriptions(ctx context.Context, userID string) ([]domain.Description, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.Validationf("user id is required")
	}

	descriptions, err := s.descriptionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Classify("read descriptions", err)
	}
	return catalog.NormalizeDescriptions(descriptions)
}

// UpdateVariant rewrites a variant the caller owns. A missing variant, or
// one owned by another user, fails with ErrVariantNotFound.
func (s *catalogService) UpdateVariant(ctx context.Context, in UpdateVariantInput) (*domain.Variant, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.VariantID == "" || in.UserID == "" || in.Name == "" {
		return nil, domain.Validationf("variant id, user and name are required")
	}

	updated, err := s.variantRepo.Update(ctx, &domain.Variant{
		ID:         in.VariantID,
		Name:       in.Name,
		Video:      in.Video,
		Image:      in.Image,
		CategoryID: in.CategoryID,
		UserID:     in.UserID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, domain.Classify("update variant", err)
	}

	variant, err := catalog.NormalizeVariant(*updated)
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// visibleExercise loads an exercise and hides it unless userID may see it.
func (s *catalogService) visibleExercise(ctx context.Context, exerciseID, userID string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, domain.Classify("load exercise", err)
	}
	if !catalog.IsVisible(exercise.UserID, userID) {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}
