package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alcyxob/exercise-catalog/internal/domain"
	"alcyxob/exercise-catalog/internal/repository"
)

// CategoryRepository manages the global category lookup set.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var models []categoryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, translateError("list categories", err)
	}

	categories := make([]domain.Category, 0, len(models))
	for _, m := range models {
		categories = append(categories, m.toDomain())
	}
	return categories, nil
}

// EnsureNames creates missing categories by name; existing ones are untouched.
func (r *CategoryRepository) EnsureNames(ctx context.Context, names []string) error {
	db := r.db.WithContext(ctx)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var m categoryModel
		err := db.Where(categoryModel{Name: name}).
			Attrs(categoryModel{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}).
			FirstOrCreate(&m).Error
		if err != nil {
			return translateError("ensure category "+name, err)
		}
	}
	return nil
}
