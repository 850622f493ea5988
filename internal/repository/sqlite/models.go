package sqlite

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"alcyxob/exercise-catalog/internal/domain"
	"alcyxob/exercise-catalog/internal/repository"
)

// exerciseModel is the exercises table. A NULL user_id marks a global row.
type exerciseModel struct {
	ID         string  `gorm:"primaryKey;size:36"`
	Name       string  `gorm:"not null;index"`
	Video      string
	Image      string
	CategoryID string  `gorm:"size:36;index"`
	UserID     *string `gorm:"size:64;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (exerciseModel) TableName() string { return "exercises" }

// variantModel is the variants table; one row per (exercise, user).
type variantModel struct {
	ID         string `gorm:"primaryKey;size:36"`
	Name       string `gorm:"not null"`
	Video      string
	Image      string
	CategoryID string `gorm:"size:36"`
	ExerciseID string `gorm:"size:36;not null;uniqueIndex:idx_variant_exercise_user,priority:1"`
	UserID     string `gorm:"size:64;not null;uniqueIndex:idx_variant_exercise_user,priority:2"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (variantModel) TableName() string { return "variants" }

type categoryModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time
}

func (categoryModel) TableName() string { return "exercises_categories" }

type descriptionModel struct {
	ID          string  `gorm:"primaryKey;size:36"`
	Description string  `gorm:"type:text;not null"`
	UserID      string  `gorm:"size:64;not null;index"`
	ExerciseID  *string `gorm:"size:36;index"`
	CreatedAt   time.Time
}

func (descriptionModel) TableName() string { return "exercises_descriptions" }

func (m exerciseModel) toDomain() domain.Exercise {
	return domain.Exercise{
		ID:         m.ID,
		Name:       m.Name,
		Video:      m.Video,
		Image:      m.Image,
		CategoryID: m.CategoryID,
		UserID:     m.UserID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (m variantModel) toDomain() domain.Variant {
	return domain.Variant{
		ID:         m.ID,
		Name:       m.Name,
		Video:      m.Video,
		Image:      m.Image,
		CategoryID: m.CategoryID,
		UserID:     m.UserID,
		ExerciseID: m.ExerciseID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (m categoryModel) toDomain() domain.Category {
	return domain.Category{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
}

func (m descriptionModel) toDomain() domain.Description {
	return domain.Description{
		ID:          m.ID,
		Description: m.Description,
		UserID:      m.UserID,
		ExerciseID:  m.ExerciseID,
		CreatedAt:   m.CreatedAt,
	}
}

// translateError maps gorm/driver errors onto the repository error kinds.
func translateError(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, repository.ErrConflict)
	default:
		return fmt.Errorf("%s: %w: %w", op, repository.ErrStoreFault, err)
	}
}
