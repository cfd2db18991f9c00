package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// Level is a difficulty grade carrying the base point value shared by all
// routes of that grade.
type Level struct {
	Id    int    `gorm:"primaryKey"`
	Name  string `gorm:"not null;unique"`
	Score int    `gorm:"not null"`
}

type LevelRepository struct {
	DB *gorm.DB
}

func NewLevelRepository(db *gorm.DB) *LevelRepository {
	return &LevelRepository{DB: db}
}

func (r *LevelRepository) GetLevelById(levelId int) (*Level, error) {
	var level Level
	result := r.DB.First(&level, levelId)
	if result.Error != nil {
		return nil, fmt.Errorf("level with id %d not found", levelId)
	}
	return &level, nil
}

func (r *LevelRepository) SaveLevel(level *Level) (*Level, error) {
	result := r.DB.Save(level)
	if result.Error != nil {
		return nil, result.Error
	}
	return level, nil
}

func (r *LevelRepository) FindAll() ([]*Level, error) {
	levels := make([]*Level, 0)
	result := r.DB.Order("score DESC").Find(&levels)
	if result.Error != nil {
		return nil, result.Error
	}
	return levels, nil
}
