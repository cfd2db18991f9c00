package service

import (
	"crux/app_error"
	"crux/repository"

	"gorm.io/gorm"
)

type LevelService struct {
	levelRepository *repository.LevelRepository
}

func NewLevelService(db *gorm.DB) *LevelService {
	return &LevelService{
		levelRepository: repository.NewLevelRepository(db),
	}
}

func (s *LevelService) GetAllLevels() ([]*repository.Level, error) {
	return s.levelRepository.FindAll()
}

func (s *LevelService) CreateLevel(level *repository.Level) (*repository.Level, error) {
	if level.Name == "" {
		return nil, app_error.Rejected("level name is required")
	}
	level, err := s.levelRepository.SaveLevel(level)
	if err != nil {
		return nil, app_error.Persistence(err)
	}
	return level, nil
}
