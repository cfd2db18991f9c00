package service

import (
	"errors"
	"strings"
	"time"

	"crux/app_error"
	"crux/repository"
	"crux/scoring"

	"gorm.io/gorm"
)

type RegistrationService struct {
	competitionRepository *repository.CompetitionRepository
	enrollmentRepository  *repository.EnrollmentRepository
	climberService        *ClimberService
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{
		competitionRepository: repository.NewCompetitionRepository(db),
		enrollmentRepository:  repository.NewEnrollmentRepository(db),
		climberService:        NewClimberService(db),
	}
}

// Register runs the public registration workflow for one competition:
// registration must be open, capacity not reached, the climber identity is
// upserted by natural key, the climber must fit at least one of the
// competition's categories and must not be enrolled yet. Every rejection
// carries its own reason so callers can surface it verbatim.
func (s *RegistrationService) Register(competitionId int, identity *ClimberIdentity) (*repository.Climber, error) {
	competition, err := s.competitionRepository.GetCompetitionById(competitionId, "Categories")
	if err != nil {
		return nil, app_error.NotFound("%v", err)
	}
	if !competition.RegistrationOpen {
		return nil, app_error.Rejected("registration is closed for this competition")
	}
	enrolled, err := s.enrollmentRepository.CountForCompetition(competitionId)
	if err != nil {
		return nil, app_error.Persistence(err)
	}
	if enrolled >= int64(competition.MaxParticipants) {
		return nil, app_error.Rejected("competition is full")
	}

	identity.Role = repository.RoleClimber
	climber, _, err := s.climberService.UpsertByIdentity(identity)
	if err != nil {
		return nil, err
	}

	if !scoring.MatchesAny(climber, competition.Categories) {
		return nil, app_error.Rejected("no category of this competition matches the climber's profile")
	}

	_, err = s.enrollmentRepository.GetEnrollment(climber.Id, competitionId)
	if err == nil {
		return nil, app_error.Rejected("climber is already enrolled in this competition")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_error.Persistence(err)
	}

	enrollment := &repository.Enrollment{
		CompetitionId: competitionId,
		ClimberId:     climber.Id,
		Timestamp:     time.Now(),
	}
	if _, err := s.enrollmentRepository.CreateEnrollment(enrollment); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, app_error.Rejected("climber is already enrolled in this competition")
		}
		return nil, app_error.Persistence(err)
	}
	return climber, nil
}
