package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"eventnotifier/internal/models/db_models"
)

type CategoryRepositoryInterface interface {
	CreateCategory(ctx context.Context, category *db_models.Category) error
	GetCategoryByID(ctx context.Context, categoryID uint) (*db_models.Category, error)
	GetAllCategories(ctx context.Context) ([]db_models.Category, error)
	CountCategories(ctx context.Context) (int64, error)
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &CategoryRepository{db: db}
}

type CategoryRepository struct {
	db *gorm.DB
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category *db_models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, categoryID uint) (*db_models.Category, error) {
	var category db_models.Category
	err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]db_models.Category, error) {
	var categories []db_models.Category
	if err := r.db.WithContext(ctx).Order("category_id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Category{}).Count(&count).Error
	return count, err
}
