package service

import (
	"crux/app_error"
	"crux/repository"

	"gorm.io/gorm"
)

type CategoryService struct {
	categoryRepository *repository.CategoryRepository
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{
		categoryRepository: repository.NewCategoryRepository(db),
	}
}

func (s *CategoryService) GetAllCategories() ([]*repository.Category, error) {
	return s.categoryRepository.FindAll()
}

func (s *CategoryService) CreateCategory(category *repository.Category) (*repository.Category, error) {
	if category.Name == "" {
		return nil, app_error.Rejected("category name is required")
	}
	if category.MinAge > category.MaxAge {
		return nil, app_error.Rejected("minimum age must not exceed maximum age")
	}
	switch category.Gender {
	case repository.GenderMale, repository.GenderFemale, repository.GenderMixed:
	default:
		return nil, app_error.Rejected("gender must be male, female or mixed")
	}
	category, err := s.categoryRepository.SaveCategory(category)
	if err != nil {
		return nil, app_error.Persistence(err)
	}
	return category, nil
}
