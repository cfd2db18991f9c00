package service

import (
	"crux/app_error"
	"crux/repository"

	"gorm.io/gorm"
)

type RouteService struct {
	routeRepository *repository.RouteRepository
	levelRepository *repository.LevelRepository
}

func NewRouteService(db *gorm.DB) *RouteService {
	return &RouteService{
		routeRepository: repository.NewRouteRepository(db),
		levelRepository: repository.NewLevelRepository(db),
	}
}

func (s *RouteService) GetRouteById(routeId int, preloads ...string) (*repository.Route, error) {
	return s.routeRepository.GetRouteById(routeId, preloads...)
}

func (s *RouteService) GetAllRoutes() ([]*repository.Route, error) {
	return s.routeRepository.FindAll("Level", "Checkpoints")
}

func (s *RouteService) GetRoutesForCompetition(competitionId int) ([]*repository.Route, error) {
	return s.routeRepository.GetRoutesForCompetition(competitionId, "Level")
}

func (s *RouteService) GetCheckpointsForRoute(routeId int) ([]*repository.Checkpoint, error) {
	return s.routeRepository.GetCheckpointsForRoute(routeId)
}

// CanMutateRoute is the route side of the lock policy: a route is mutable
// only while no competition it belongs to is flagged open.
func (s *RouteService) CanMutateRoute(routeId int) (bool, error) {
	count, err := s.routeRepository.CountOpenCompetitionsForRoute(routeId)
	if err != nil {
		return false, app_error.Persistence(err)
	}
	return count == 0, nil
}

func validateCheckpoints(checkpoints []*repository.Checkpoint) error {
	seen := make(map[int]bool)
	for _, checkpoint := range checkpoints {
		if checkpoint.Order < 1 {
			return app_error.Rejected("checkpoint order must be at least 1")
		}
		if seen[checkpoint.Order] {
			return app_error.Rejected("checkpoint order %d appears twice", checkpoint.Order)
		}
		seen[checkpoint.Order] = true
	}
	return nil
}

// CreateRoute writes the route and its checkpoints in one transaction.
func (s *RouteService) CreateRoute(route *repository.Route) (*repository.Route, error) {
	if route.Name == "" || route.LevelId == nil {
		return nil, app_error.Rejected("route name and level are required")
	}
	if _, err := s.levelRepository.GetLevelById(*route.LevelId); err != nil {
		return nil, app_error.NotFound("%v", err)
	}
	if err := validateCheckpoints(route.Checkpoints); err != nil {
		return nil, err
	}
	route, err := s.routeRepository.SaveRoute(route)
	if err != nil {
		return nil, app_error.Persistence(err)
	}
	return route, nil
}

// UpdateRoute applies metadata changes and replaces the checkpoint set,
// refusing both while the route sits in an open competition.
func (s *RouteService) UpdateRoute(routeId int, update *repository.Route, checkpoints []*repository.Checkpoint) (*repository.Route, error) {
	route, err := s.routeRepository.GetRouteById(routeId)
	if err != nil {
		return nil, app_error.NotFound("%v", err)
	}
	mutable, err := s.CanMutateRoute(routeId)
	if err != nil {
		return nil, err
	}
	if !mutable {
		return nil, app_error.Forbidden("route belongs to an open competition and cannot be modified")
	}
	if err := validateCheckpoints(checkpoints); err != nil {
		return nil, err
	}

	if update.Name != "" {
		route.Name = update.Name
	}
	if update.LevelId != nil {
		if _, err := s.levelRepository.GetLevelById(*update.LevelId); err != nil {
			return nil, app_error.NotFound("%v", err)
		}
		route.LevelId = update.LevelId
	}
	if update.ImagePath != nil {
		route.ImagePath = update.ImagePath
	}
	route.Comment = update.Comment
	route.Checkpoints = nil
	if err := s.routeRepository.UpdateWithCheckpoints(route, checkpoints); err != nil {
		return nil, app_error.Persistence(err)
	}
	return s.routeRepository.GetRouteById(routeId, "Level", "Checkpoints")
}

func (s *RouteService) DeleteRoute(routeId int) error {
	route, err := s.routeRepository.GetRouteById(routeId)
	if err != nil {
		return app_error.NotFound("%v", err)
	}
	mutable, err := s.CanMutateRoute(routeId)
	if err != nil {
		return err
	}
	if !mutable {
		return app_error.Forbidden("route belongs to an open competition and cannot be deleted")
	}
	return s.routeRepository.Delete(route)
}
