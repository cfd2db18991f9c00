package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Validation records a climber's furthest reported checkpoint on a route
// within a competition. At most one row exists per (climber, route,
// competition); a later report overwrites checkpoint and timestamp.
type Validation struct {
	Id            int          `gorm:"primaryKey"`
	ClimberId     int          `gorm:"not null;uniqueIndex:idx_validation_triple"`
	RouteId       int          `gorm:"not null;uniqueIndex:idx_validation_triple"`
	CompetitionId int          `gorm:"not null;uniqueIndex:idx_validation_triple"`
	CheckpointId  int          `gorm:"not null"`
	Timestamp     time.Time    `gorm:"not null"`
	Climber       *Climber     `gorm:"foreignKey:ClimberId;constraint:OnDelete:CASCADE"`
	Route         *Route       `gorm:"foreignKey:RouteId;constraint:OnDelete:CASCADE"`
	Competition   *Competition `gorm:"foreignKey:CompetitionId;constraint:OnDelete:CASCADE"`
	Checkpoint    *Checkpoint  `gorm:"foreignKey:CheckpointId"`
}

type ValidationRepository struct {
	DB *gorm.DB
}

func NewValidationRepository(db *gorm.DB) *ValidationRepository {
	return &ValidationRepository{DB: db}
}

func (r *ValidationRepository) GetValidation(climberId int, routeId int, competitionId int) (*Validation, error) {
	validation := Validation{}
	result := r.DB.First(&validation, &Validation{ClimberId: climberId, RouteId: routeId, CompetitionId: competitionId})
	if result.Error != nil {
		return nil, result.Error
	}
	return &validation, nil
}

func (r *ValidationRepository) SaveValidation(validation *Validation) (*Validation, error) {
	result := r.DB.Save(validation)
	if result.Error != nil {
		return nil, result.Error
	}
	return validation, nil
}

// GetValidationsForClimberInCompetition preloads route, level and checkpoint
// so scores can be derived without further queries.
func (r *ValidationRepository) GetValidationsForClimberInCompetition(climberId int, competitionId int) ([]*Validation, error) {
	validations := make([]*Validation, 0)
	result := r.DB.Preload("Route").Preload("Route.Level").Preload("Checkpoint").
		Find(&validations, &Validation{ClimberId: climberId, CompetitionId: competitionId})
	if result.Error != nil {
		return nil, result.Error
	}
	return validations, nil
}

// GetValidationsForCompetition returns every validation of a competition
// with scoring preloads, keyed later by climber in the ranking engine.
func (r *ValidationRepository) GetValidationsForCompetition(competitionId int) ([]*Validation, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetValidationsForCompetition"))
	defer timer.ObserveDuration()
	validations := make([]*Validation, 0)
	result := r.DB.Preload("Route").Preload("Route.Level").Preload("Checkpoint").
		Find(&validations, &Validation{CompetitionId: competitionId})
	if result.Error != nil {
		return nil, result.Error
	}
	return validations, nil
}

func (r *ValidationRepository) CountForClimber(climberId int) (int64, error) {
	var count int64
	result := r.DB.Model(&Validation{}).Where("climber_id = ?", climberId).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
