package category_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"eventnotifier/internal/repositories"
)

var Module = fx.Provide(
	provideCategoryRepo)

func provideCategoryRepo(db *gorm.DB) repositories.CategoryRepositoryInterface {
	return repositories.NewCategoryRepository(db)
}
