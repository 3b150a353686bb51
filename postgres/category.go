package postgres

import (
	"moviestore/category"
)

// CategoryModel represents the database model for categories
type CategoryModel struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(150);not null"`
}

// TableName specifies the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

func (m CategoryModel) toDomain() category.Category {
	return category.Category{
		ID:   m.ID,
		Name: m.Name,
	}
}

func toCategoryModel(c category.Category) CategoryModel {
	return CategoryModel{
		ID:   c.ID,
		Name: c.Name,
	}
}

// CategoryRepository implements category.Repository. It adds nothing to the
// generic repository.
type CategoryRepository struct {
	*Repository[category.Category, CategoryModel]
}

// NewCategoryRepository creates a category repository bound to the session
func NewCategoryRepository(s *Session) *CategoryRepository {
	return &CategoryRepository{
		Repository: NewRepository(s, toCategoryModel),
	}
}
