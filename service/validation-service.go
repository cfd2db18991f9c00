package service

import (
	"errors"
	"time"

	"crux/app_error"
	"crux/repository"

	"gorm.io/gorm"
)

type ValidationService struct {
	validationRepository  *repository.ValidationRepository
	enrollmentRepository  *repository.EnrollmentRepository
	routeRepository       *repository.RouteRepository
	climberRepository     *repository.ClimberRepository
	competitionRepository *repository.CompetitionRepository
}

func NewValidationService(db *gorm.DB) *ValidationService {
	return &ValidationService{
		validationRepository:  repository.NewValidationRepository(db),
		enrollmentRepository:  repository.NewEnrollmentRepository(db),
		routeRepository:       repository.NewRouteRepository(db),
		climberRepository:     repository.NewClimberRepository(db),
		competitionRepository: repository.NewCompetitionRepository(db),
	}
}

// RecordSelfValidation is the climber-facing entry point: an enrollment in
// the competition is required.
func (s *ValidationService) RecordSelfValidation(climberId int, routeId int, competitionId int, checkpointId int) (*repository.Validation, error) {
	_, err := s.enrollmentRepository.GetEnrollment(climberId, competitionId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.Forbidden("climber is not enrolled in this competition")
		}
		return nil, app_error.Persistence(err)
	}
	return s.record(climberId, routeId, competitionId, checkpointId)
}

// RecordStaffValidation lets staff validate any climber, enrolled or not.
// The missing enrollment check is an intentional override capability.
func (s *ValidationService) RecordStaffValidation(climberId int, routeId int, competitionId int, checkpointId int) (*repository.Validation, error) {
	return s.record(climberId, routeId, competitionId, checkpointId)
}

// record upserts the validation keyed by (climber, route, competition). A
// second report for the same triple overwrites checkpoint and timestamp;
// the last reported checkpoint is authoritative regardless of arrival order.
func (s *ValidationService) record(climberId int, routeId int, competitionId int, checkpointId int) (*repository.Validation, error) {
	if _, err := s.climberRepository.GetClimberById(climberId); err != nil {
		return nil, app_error.NotFound("%v", err)
	}
	if _, err := s.competitionRepository.GetCompetitionById(competitionId); err != nil {
		return nil, app_error.NotFound("%v", err)
	}
	checkpoint, err := s.routeRepository.GetCheckpointById(checkpointId)
	if err != nil {
		return nil, app_error.NotFound("%v", err)
	}
	if checkpoint.RouteId != routeId {
		return nil, app_error.NotFound("checkpoint %d does not belong to route %d", checkpointId, routeId)
	}

	validation, err := s.validationRepository.GetValidation(climberId, routeId, competitionId)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.Persistence(err)
		}
		validation = &repository.Validation{
			ClimberId:     climberId,
			RouteId:       routeId,
			CompetitionId: competitionId,
		}
	}
	validation.CheckpointId = checkpointId
	validation.Timestamp = time.Now()
	validation, err = s.validationRepository.SaveValidation(validation)
	if err != nil {
		return nil, app_error.Persistence(err)
	}
	return validation, nil
}

// ValidatedRouteIds returns the set of routes the climber has validated in
// the competition, one query for the whole route listing.
func (s *ValidationService) ValidatedRouteIds(climberId int, competitionId int) (map[int]bool, error) {
	validations, err := s.validationRepository.GetValidationsForClimberInCompetition(climberId, competitionId)
	if err != nil {
		return nil, app_error.Persistence(err)
	}
	validated := make(map[int]bool, len(validations))
	for _, validation := range validations {
		validated[validation.RouteId] = true
	}
	return validated, nil
}
