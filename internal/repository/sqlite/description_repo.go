package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alcyxob/exercise-catalog/internal/domain"
	"alcyxob/exercise-catalog/internal/repository"
)

// DescriptionRepository stores per-user exercise descriptions.
type DescriptionRepository struct {
	db *gorm.DB
}

func NewDescriptionRepository(db *gorm.DB) *DescriptionRepository {
	return &DescriptionRepository{db: db}
}

var _ repository.DescriptionRepository = (*DescriptionRepository)(nil)

func (r *DescriptionRepository) Create(ctx context.Context, description *domain.Description) (*domain.Description, error) {
	if description.Description == "" || description.UserID == "" {
		return nil, domain.Validationf("description text and user are required")
	}

	m := descriptionModel{
		ID:          uuid.NewString(),
		Description: description.Description,
		UserID:      description.UserID,
		ExerciseID:  description.ExerciseID,
		CreatedAt:   time.Now().UTC(),
	}

	res := r.db.WithContext(ctx).Create(&m)
	if res.Error != nil {
		return nil, translateError("create description", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("create description: %w", repository.ErrNotFound)
	}

	out := m.toDomain()
	return &out, nil
}

func (r *DescriptionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Description, error) {
	var models []descriptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, translateError("list descriptions", err)
	}

	descriptions := make([]domain.Description, 0, len(models))
	for _, m := range models {
		descriptions = append(descriptions, m.toDomain())
	}
	return descriptions, nil
}
