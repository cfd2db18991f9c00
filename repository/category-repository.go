package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// Category is an age/gender eligibility bracket. Categories are reusable
// across competitions and have no lifecycle of their own.
type Category struct {
	Id     int    `gorm:"primaryKey"`
	Name   string `gorm:"not null"`
	MinAge int    `gorm:"not null"`
	MaxAge int    `gorm:"not null"`
	Gender Gender `gorm:"type:crux.gender;not null"`
}

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) GetCategoryById(categoryId int) (*Category, error) {
	var category Category
	result := r.DB.First(&category, categoryId)
	if result.Error != nil {
		return nil, fmt.Errorf("category with id %d not found", categoryId)
	}
	return &category, nil
}

func (r *CategoryRepository) GetCategoriesByIds(categoryIds []int) ([]*Category, error) {
	categories := make([]*Category, 0)
	result := r.DB.Find(&categories, "id IN ?", categoryIds)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(categories) != len(categoryIds) {
		return nil, fmt.Errorf("some categories do not exist")
	}
	return categories, nil
}

func (r *CategoryRepository) SaveCategory(category *Category) (*Category, error) {
	result := r.DB.Save(category)
	if result.Error != nil {
		return nil, result.Error
	}
	return category, nil
}

func (r *CategoryRepository) FindAll() ([]*Category, error) {
	categories := make([]*Category, 0)
	result := r.DB.Order("min_age ASC").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}
