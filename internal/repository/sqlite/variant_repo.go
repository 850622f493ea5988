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

// VariantRepository implements repository.VariantRepository on gorm.
type VariantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) *VariantRepository {
	return &VariantRepository{db: db}
}

var _ repository.VariantRepository = (*VariantRepository)(nil)

// Create inserts a variant. A second variant for the same (exercise, user)
// pair fails with repository.ErrConflict.
func (r *VariantRepository) Create(ctx context.Context, variant *domain.Variant) (*domain.Variant, error) {
	if variant.Name == "" || variant.UserID == "" || variant.ExerciseID == "" {
		return nil, domain.Validationf("variant name, user and exercise are required")
	}

	now := time.Now().UTC()
	m := variantModel{
		ID:         uuid.NewString(),
		Name:       variant.Name,
		Video:      variant.Video,
		Image:      variant.Image,
		CategoryID: variant.CategoryID,
		ExerciseID: variant.ExerciseID,
		UserID:     variant.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	res := r.db.WithContext(ctx).Create(&m)
	if res.Error != nil {
		return nil, translateError("create variant", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("create variant: %w", repository.ErrNotFound)
	}

	out := m.toDomain()
	return &out, nil
}

// Update rewrites name, media and category of a variant the user owns.
// The owner and parent exercise never change. An empty CategoryID keeps
// the stored category.
func (r *VariantRepository) Update(ctx context.Context, variant *domain.Variant) (*domain.Variant, error) {
	if variant.ID == "" || variant.UserID == "" {
		return nil, domain.Validationf("variant id and user are required for update")
	}
	if variant.Name == "" {
		return nil, domain.Validationf("variant name cannot be empty")
	}

	fields := map[string]any{
		"name":       variant.Name,
		"video":      variant.Video,
		"image":      variant.Image,
		"updated_at": time.Now().UTC(),
	}
	if variant.CategoryID != "" {
		fields["category_id"] = variant.CategoryID
	}

	var updated variantModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&variantModel{}).
			Where("id = ? AND user_id = ?", variant.ID, variant.UserID).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&updated, "id = ?", variant.ID).Error
	})
	if err != nil {
		return nil, translateError("update variant", err)
	}

	out := updated.toDomain()
	return &out, nil
}
