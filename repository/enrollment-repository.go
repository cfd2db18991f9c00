package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Enrollment links a climber to a competition. Created once by the
// registration workflow and never mutated afterwards.
type Enrollment struct {
	CompetitionId int          `gorm:"primaryKey"`
	ClimberId     int          `gorm:"primaryKey"`
	Timestamp     time.Time    `gorm:"not null"`
	Climber       *Climber     `gorm:"foreignKey:ClimberId;constraint:OnDelete:CASCADE"`
	Competition   *Competition `gorm:"foreignKey:CompetitionId;constraint:OnDelete:CASCADE"`
}

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) CreateEnrollment(enrollment *Enrollment) (*Enrollment, error) {
	result := r.DB.Create(enrollment)
	if result.Error != nil {
		return nil, result.Error
	}
	return enrollment, nil
}

func (r *EnrollmentRepository) GetEnrollment(climberId int, competitionId int) (*Enrollment, error) {
	enrollment := Enrollment{}
	result := r.DB.First(&enrollment, &Enrollment{ClimberId: climberId, CompetitionId: competitionId})
	if result.Error != nil {
		return nil, result.Error
	}
	return &enrollment, nil
}

// GetEnrollmentsForCompetition returns enrollments oldest first. Rankings
// enumerate climbers in this order, which makes the stable tie-break
// deterministic.
func (r *EnrollmentRepository) GetEnrollmentsForCompetition(competitionId int) ([]*Enrollment, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetEnrollmentsForCompetition"))
	defer timer.ObserveDuration()
	enrollments := make([]*Enrollment, 0)
	result := r.DB.Preload("Climber").Order("timestamp ASC").Find(&enrollments, &Enrollment{CompetitionId: competitionId})
	if result.Error != nil {
		return nil, result.Error
	}
	return enrollments, nil
}

func (r *EnrollmentRepository) CountForCompetition(competitionId int) (int64, error) {
	var count int64
	result := r.DB.Model(&Enrollment{}).Where("competition_id = ?", competitionId).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (r *EnrollmentRepository) CountForClimber(climberId int) (int64, error) {
	var count int64
	result := r.DB.Model(&Enrollment{}).Where("climber_id = ?", climberId).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
