package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alcyxob/exercise-catalog/internal/catalog"
	"alcyxob/exercise-catalog/internal/domain"
	"alcyxob/exercise-catalog/internal/repository"
)

// exerciseRowColumns projects the left join into exerciseRow.
const exerciseRowColumns = `e.id, e.name, e.video, e.image, e.category_id, e.user_id, e.created_at, e.updated_at,
	v.id AS variant_id, v.name AS variant_name, v.video AS variant_video, v.image AS variant_image,
	v.category_id AS variant_category_id, v.user_id AS variant_user_id, v.exercise_id AS variant_exercise_id,
	v.created_at AS variant_created_at, v.updated_at AS variant_updated_at,
	c.id AS category_ref_id, c.name AS category_name, c.created_at AS category_created_at`

// exerciseRow is one flat result of the exercise/variant/category join.
// Joined columns are nullable.
type exerciseRow struct {
	ID         string
	Name       string
	Video      string
	Image      string
	CategoryID string
	UserID     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	VariantID         *string
	VariantName       *string
	VariantVideo      *string
	VariantImage      *string
	VariantCategoryID *string
	VariantUserID     *string
	VariantExerciseID *string
	VariantCreatedAt  *time.Time
	VariantUpdatedAt  *time.Time

	CategoryRefID     *string
	CategoryName      *string
	CategoryCreatedAt *time.Time
}

func (r exerciseRow) toRow() catalog.Row {
	row := catalog.Row{
		Exercise: domain.Exercise{
			ID:         r.ID,
			Name:       r.Name,
			Video:      r.Video,
			Image:      r.Image,
			CategoryID: r.CategoryID,
			UserID:     r.UserID,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		},
	}
	if r.VariantID != nil {
		row.Variant = &domain.Variant{
			ID:         *r.VariantID,
			Name:       deref(r.VariantName),
			Video:      deref(r.VariantVideo),
			Image:      deref(r.VariantImage),
			CategoryID: deref(r.VariantCategoryID),
			UserID:     deref(r.VariantUserID),
			ExerciseID: deref(r.VariantExerciseID),
			CreatedAt:  derefTime(r.VariantCreatedAt),
			UpdatedAt:  derefTime(r.VariantUpdatedAt),
		}
	}
	if r.CategoryRefID != nil {
		row.Category = &domain.Category{
			ID:        *r.CategoryRefID,
			Name:      deref(r.CategoryName),
			CreatedAt: derefTime(r.CategoryCreatedAt),
		}
	}
	return row
}

// ExerciseRepository implements repository.ExerciseRepository on gorm.
type ExerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

var _ repository.ExerciseRepository = (*ExerciseRepository)(nil)

// Create inserts a new exercise. A nil UserID makes it global.
func (r *ExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" || exercise.CategoryID == "" {
		return nil, domain.Validationf("exercise name and category are required")
	}

	now := time.Now().UTC()
	m := exerciseModel{
		ID:         uuid.NewString(),
		Name:       exercise.Name,
		Video:      exercise.Video,
		Image:      exercise.Image,
		CategoryID: exercise.CategoryID,
		UserID:     exercise.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	res := r.db.WithContext(ctx).Create(&m)
	if res.Error != nil {
		return nil, translateError("create exercise", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("create exercise: %w", repository.ErrNotFound)
	}

	out := m.toDomain()
	return &out, nil
}

// GetByID retrieves an exercise by its ID.
func (r *ExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	var m exerciseModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError("get exercise", err)
	}
	out := m.toDomain()
	return &out, nil
}

// List runs the visibility- and search-filtered left join.
func (r *ExerciseRepository) List(ctx context.Context, q catalog.Query) ([]catalog.Row, error) {
	var raw []exerciseRow
	if err := exerciseListQuery(r.db.WithContext(ctx), q).Scan(&raw).Error; err != nil {
		return nil, translateError("list exercises", err)
	}

	rows := make([]catalog.Row, 0, len(raw))
	for _, rec := range raw {
		rows = append(rows, rec.toRow())
	}
	return rows, nil
}

// exerciseListQuery builds the read: exercises left-joined to their category
// and to the requesting user's variant, then narrowed by visibility and search.
func exerciseListQuery(db *gorm.DB, q catalog.Query) *gorm.DB {
	return db.Table("exercises AS e").
		Select(exerciseRowColumns).
		Joins("LEFT JOIN exercises_categories AS c ON c.id = e.category_id").
		Joins("LEFT JOIN variants AS v ON v.exercise_id = e.id AND v.user_id = ?", q.UserID).
		Scopes(visibleTo(q.UserID), nameMatches(q.Search())).
		Order("e.name ASC, e.id ASC")
}

// visibleTo keeps global exercises and the ones userID owns.
func visibleTo(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(e.user_id IS NULL OR e.user_id = ?)", userID)
	}
}

// nameMatches ORs the exercise and joined variant names; empty search is a no-op.
func nameMatches(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		pattern := catalog.LikePattern(search)
		return db.Where(`(casefold(e.name) LIKE ? ESCAPE '\' OR casefold(COALESCE(v.name, '')) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
