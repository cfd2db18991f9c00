package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Competition struct {
	Id               int         `gorm:"primaryKey"`
	Name             string      `gorm:"not null"`
	StartsAt         time.Time   `gorm:"not null"`
	EndsAt           time.Time   `gorm:"not null"`
	MaxParticipants  int         `gorm:"not null;default:100"`
	IsOpen           bool        `gorm:"not null;default:false"`
	RegistrationOpen bool        `gorm:"not null;default:false"`
	Categories       []*Category `gorm:"many2many:competition_categories;constraint:OnDelete:CASCADE"`
	Routes           []*Route    `gorm:"many2many:competition_routes;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time
}

func (c *Competition) IsFuture() bool {
	return c.StartsAt.After(time.Now())
}

// IsCurrent reports whether now falls within [StartsAt, EndsAt].
func (c *Competition) IsCurrent() bool {
	now := time.Now()
	return !c.StartsAt.After(now) && !c.EndsAt.Before(now)
}

func (c *Competition) IsPast() bool {
	return c.EndsAt.Before(time.Now())
}

type CompetitionRepository struct {
	DB *gorm.DB
}

func NewCompetitionRepository(db *gorm.DB) *CompetitionRepository {
	return &CompetitionRepository{DB: db}
}

func (r *CompetitionRepository) GetCompetitionById(competitionId int, preloads ...string) (*Competition, error) {
	var competition Competition
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.First(&competition, competitionId)
	if result.Error != nil {
		return nil, fmt.Errorf("competition with id %d not found", competitionId)
	}
	return &competition, nil
}

func (r *CompetitionRepository) SaveCompetition(competition *Competition) (*Competition, error) {
	result := r.DB.Save(competition)
	if result.Error != nil {
		return nil, result.Error
	}
	return competition, nil
}

// CreateWithCategories writes the competition and its category links as one
// transaction so a failed link insert rolls everything back.
func (r *CompetitionRepository) CreateWithCategories(competition *Competition, categories []*Category) (*Competition, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(competition).Error; err != nil {
			return err
		}
		if len(categories) == 0 {
			return nil
		}
		return tx.Model(competition).Association("Categories").Replace(categories)
	})
	if err != nil {
		return nil, err
	}
	return competition, nil
}

// ReplaceRoutes swaps the competition's route associations atomically.
func (r *CompetitionRepository) ReplaceRoutes(competition *Competition, routes []*Route) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(competition).Association("Routes").Replace(routes)
	})
}

func (r *CompetitionRepository) FindAll(preloads ...string) ([]*Competition, error) {
	competitions := make([]*Competition, 0)
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.Order("created_at DESC").Find(&competitions)
	if result.Error != nil {
		return nil, result.Error
	}
	return competitions, nil
}

// GetOpenCompetitionsForClimber returns the open competitions running today
// in which the climber is enrolled.
func (r *CompetitionRepository) GetOpenCompetitionsForClimber(climberId int) ([]*Competition, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	competitions := make([]*Competition, 0)
	result := r.DB.
		Joins("JOIN crux.enrollments ON crux.enrollments.competition_id = crux.competitions.id").
		Where("crux.enrollments.climber_id = ?", climberId).
		Where("crux.competitions.is_open = ?", true).
		Where("crux.competitions.starts_at < ? AND crux.competitions.ends_at >= ?", dayEnd, dayStart).
		Find(&competitions)
	if result.Error != nil {
		return nil, result.Error
	}
	return competitions, nil
}

func (r *CompetitionRepository) Delete(competition *Competition) error {
	return r.DB.Delete(&competition).Error
}
