package service

import (
	"crux/app_error"
	"crux/repository"
	"crux/scoring"
	"crux/utils"

	"gorm.io/gorm"
)

type RankingService struct {
	competitionRepository *repository.CompetitionRepository
	enrollmentRepository  *repository.EnrollmentRepository
	validationRepository  *repository.ValidationRepository
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{
		competitionRepository: repository.NewCompetitionRepository(db),
		enrollmentRepository:  repository.NewEnrollmentRepository(db),
		validationRepository:  repository.NewValidationRepository(db),
	}
}

// GetRankings recomputes the full leaderboard of a competition from the
// current ledger state. No caching: competitions are small enough that a
// fresh computation per request is fine.
func (s *RankingService) GetRankings(competitionId int) (scoring.Rankings, error) {
	competition, err := s.competitionRepository.GetCompetitionById(competitionId, "Categories")
	if err != nil {
		return nil, app_error.NotFound("%v", err)
	}
	enrollments, err := s.enrollmentRepository.GetEnrollmentsForCompetition(competitionId)
	if err != nil {
		return nil, app_error.Persistence(err)
	}
	climbers := utils.Map(enrollments, func(enrollment *repository.Enrollment) *repository.Climber {
		return enrollment.Climber
	})
	validations, err := s.validationRepository.GetValidationsForCompetition(competitionId)
	if err != nil {
		return nil, app_error.Persistence(err)
	}
	validationsByClimber := make(map[int][]*repository.Validation)
	for _, validation := range validations {
		validationsByClimber[validation.ClimberId] = append(validationsByClimber[validation.ClimberId], validation)
	}
	return scoring.Rank(climbers, validationsByClimber, competition.Categories), nil
}
