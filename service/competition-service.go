package service

import (
	"time"

	"crux/app_error"
	"crux/repository"

	"gorm.io/gorm"
)

type CompetitionService struct {
	competitionRepository *repository.CompetitionRepository
	categoryRepository    *repository.CategoryRepository
	routeRepository       *repository.RouteRepository
	enrollmentRepository  *repository.EnrollmentRepository
}

func NewCompetitionService(db *gorm.DB) *CompetitionService {
	return &CompetitionService{
		competitionRepository: repository.NewCompetitionRepository(db),
		categoryRepository:    repository.NewCategoryRepository(db),
		routeRepository:       repository.NewRouteRepository(db),
		enrollmentRepository:  repository.NewEnrollmentRepository(db),
	}
}

func (s *CompetitionService) GetCompetitionById(competitionId int, preloads ...string) (*repository.Competition, error) {
	return s.competitionRepository.GetCompetitionById(competitionId, preloads...)
}

func (s *CompetitionService) GetAllCompetitions() ([]*repository.Competition, error) {
	return s.competitionRepository.FindAll("Categories", "Routes")
}

func (s *CompetitionService) GetOpenCompetitionsForClimber(climberId int) ([]*repository.Competition, error) {
	return s.competitionRepository.GetOpenCompetitionsForClimber(climberId)
}

func (s *CompetitionService) CountEnrollments(competitionId int) (int64, error) {
	return s.enrollmentRepository.CountForCompetition(competitionId)
}

// CreateCompetition stores the competition together with its category
// associations in a single transaction.
func (s *CompetitionService) CreateCompetition(competition *repository.Competition, categoryIds []int) (*repository.Competition, error) {
	if competition.Name == "" || competition.StartsAt.IsZero() || competition.EndsAt.IsZero() {
		return nil, app_error.Rejected("name, start and end dates are required")
	}
	if !competition.StartsAt.Before(competition.EndsAt) {
		return nil, app_error.Rejected("end date must be after start date")
	}
	if competition.MaxParticipants <= 0 {
		competition.MaxParticipants = 100
	}
	categories, err := s.categoryRepository.GetCategoriesByIds(categoryIds)
	if err != nil {
		return nil, app_error.NotFound("%v", err)
	}
	competition, err = s.competitionRepository.CreateWithCategories(competition, categories)
	if err != nil {
		return nil, app_error.Persistence(err)
	}
	return competition, nil
}

// CompetitionUpdate carries a partial update. Nil booleans mean "leave the
// flag alone": a rename must not silently close a competition.
type CompetitionUpdate struct {
	Name             string
	StartsAt         time.Time
	EndsAt           time.Time
	MaxParticipants  int
	IsOpen           *bool
	RegistrationOpen *bool
}

func (s *CompetitionService) UpdateCompetition(competitionId int, update *CompetitionUpdate) (*repository.Competition, error) {
	competition, err := s.competitionRepository.GetCompetitionById(competitionId)
	if err != nil {
		return nil, app_error.NotFound("%v", err)
	}
	if update.Name != "" {
		competition.Name = update.Name
	}
	if !update.StartsAt.IsZero() {
		competition.StartsAt = update.StartsAt
	}
	if !update.EndsAt.IsZero() {
		competition.EndsAt = update.EndsAt
	}
	if update.MaxParticipants != 0 {
		competition.MaxParticipants = update.MaxParticipants
	}
	if update.IsOpen != nil {
		competition.IsOpen = *update.IsOpen
	}
	if update.RegistrationOpen != nil {
		competition.RegistrationOpen = *update.RegistrationOpen
	}
	competition, err = s.competitionRepository.SaveCompetition(competition)
	if err != nil {
		return nil, app_error.Persistence(err)
	}
	return competition, nil
}

// CanMutateRoutes is the competition side of the lock policy: the route set
// is frozen while the competition is open.
func (s *CompetitionService) CanMutateRoutes(competition *repository.Competition) bool {
	return !competition.IsOpen
}

// ReplaceRoutes swaps the competition's route set, rejected while the
// competition is open.
func (s *CompetitionService) ReplaceRoutes(competitionId int, routeIds []int) error {
	competition, err := s.competitionRepository.GetCompetitionById(competitionId)
	if err != nil {
		return app_error.NotFound("%v", err)
	}
	if !s.CanMutateRoutes(competition) {
		return app_error.Forbidden("routes of an open competition cannot be modified")
	}
	routes := make([]*repository.Route, 0, len(routeIds))
	for _, routeId := range routeIds {
		route, err := s.routeRepository.GetRouteById(routeId)
		if err != nil {
			return app_error.NotFound("%v", err)
		}
		routes = append(routes, route)
	}
	if err := s.competitionRepository.ReplaceRoutes(competition, routes); err != nil {
		return app_error.Persistence(err)
	}
	return nil
}

func (s *CompetitionService) DeleteCompetition(competitionId int) error {
	competition, err := s.competitionRepository.GetCompetitionById(competitionId)
	if err != nil {
		return app_error.NotFound("%v", err)
	}
	if competition.IsOpen {
		return app_error.Forbidden("an open competition cannot be deleted")
	}
	return s.competitionRepository.Delete(competition)
}
