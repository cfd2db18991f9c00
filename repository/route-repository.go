package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Route is a climbing route ("voie") with an ordered set of checkpoints and
// a difficulty level.
type Route struct {
	Id          int           `gorm:"primaryKey"`
	Name        string        `gorm:"not null"`
	ImagePath   *string       `gorm:"null"`
	Comment     string        `gorm:"null"`
	LevelId     *int          `gorm:"null"`
	Level       *Level        `gorm:"foreignKey:LevelId"`
	Checkpoints []*Checkpoint `gorm:"foreignKey:RouteId;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
}

// Checkpoint is a scoring point ("circle") on a route. Coordinates are
// percentages of the route image and play no part in scoring; Order is the
// divisor of the scoring function and is unique within the route.
type Checkpoint struct {
	Id      int     `gorm:"primaryKey"`
	X       float64 `gorm:"not null"`
	Y       float64 `gorm:"not null"`
	Radius  float64 `gorm:"not null"`
	Order   int     `gorm:"not null;uniqueIndex:idx_checkpoint_route_order"`
	RouteId int     `gorm:"not null;uniqueIndex:idx_checkpoint_route_order"`
}

type RouteRepository struct {
	DB *gorm.DB
}

func NewRouteRepository(db *gorm.DB) *RouteRepository {
	return &RouteRepository{DB: db}
}

func (r *RouteRepository) GetRouteById(routeId int, preloads ...string) (*Route, error) {
	var route Route
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.First(&route, routeId)
	if result.Error != nil {
		return nil, fmt.Errorf("route with id %d not found", routeId)
	}
	return &route, nil
}

func (r *RouteRepository) GetCheckpointById(checkpointId int) (*Checkpoint, error) {
	var checkpoint Checkpoint
	result := r.DB.First(&checkpoint, checkpointId)
	if result.Error != nil {
		return nil, fmt.Errorf("checkpoint with id %d not found", checkpointId)
	}
	return &checkpoint, nil
}

func (r *RouteRepository) GetCheckpointsForRoute(routeId int) ([]*Checkpoint, error) {
	checkpoints := make([]*Checkpoint, 0)
	result := r.DB.Order(`"order" ASC`).Find(&checkpoints, "route_id = ?", routeId)
	if result.Error != nil {
		return nil, result.Error
	}
	return checkpoints, nil
}

func (r *RouteRepository) SaveRoute(route *Route) (*Route, error) {
	result := r.DB.Save(route)
	if result.Error != nil {
		return nil, result.Error
	}
	return route, nil
}

// UpdateWithCheckpoints saves the route's metadata and swaps its full
// checkpoint set in one transaction. A failed insert leaves both the
// previous metadata and the previous set intact.
func (r *RouteRepository) UpdateWithCheckpoints(route *Route, checkpoints []*Checkpoint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(route).Error; err != nil {
			return err
		}
		result := tx.Delete(&Checkpoint{}, "route_id = ?", route.Id)
		if result.Error != nil {
			return result.Error
		}
		for _, checkpoint := range checkpoints {
			checkpoint.Id = 0
			checkpoint.RouteId = route.Id
		}
		if len(checkpoints) == 0 {
			return nil
		}
		return tx.Create(&checkpoints).Error
	})
}

func (r *RouteRepository) FindAll(preloads ...string) ([]*Route, error) {
	routes := make([]*Route, 0)
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.Order("created_at DESC").Find(&routes)
	if result.Error != nil {
		return nil, result.Error
	}
	return routes, nil
}

func (r *RouteRepository) GetRoutesForCompetition(competitionId int, preloads ...string) ([]*Route, error) {
	routes := make([]*Route, 0)
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.
		Joins("JOIN crux.competition_routes ON crux.competition_routes.route_id = crux.routes.id").
		Where("crux.competition_routes.competition_id = ?", competitionId).
		Find(&routes)
	if result.Error != nil {
		return nil, result.Error
	}
	return routes, nil
}

// CountOpenCompetitionsForRoute counts competitions associated with the
// route that are currently flagged open. A non-zero count locks the route.
func (r *RouteRepository) CountOpenCompetitionsForRoute(routeId int) (int64, error) {
	var count int64
	result := r.DB.Model(&Competition{}).
		Joins("JOIN crux.competition_routes ON crux.competition_routes.competition_id = crux.competitions.id").
		Where("crux.competition_routes.route_id = ? AND crux.competitions.is_open = ?", routeId, true).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (r *RouteRepository) Delete(route *Route) error {
	return r.DB.Delete(&route).Error
}
