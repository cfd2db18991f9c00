package controller

import (
	"strconv"
	"time"

	"crux/repository"
	"crux/service"
	"crux/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CompetitionController struct {
	competitionService *service.CompetitionService
	routeService       *service.RouteService
	validationService  *service.ValidationService
}

func NewCompetitionController(db *gorm.DB) *CompetitionController {
	return &CompetitionController{
		competitionService: service.NewCompetitionService(db),
		routeService:       service.NewRouteService(db),
		validationService:  service.NewValidationService(db),
	}
}

func setupCompetitionController(db *gorm.DB) []RouteInfo {
	e := NewCompetitionController(db)
	basePath := "/competitions"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getCompetitionsHandler(), Authenticated: true, RequiredRoles: staffRoles},
		{Method: "POST", Path: "", HandlerFunc: e.createCompetitionHandler(), Authenticated: true, RequiredRoles: staffRoles},
		{Method: "GET", Path: "/current", HandlerFunc: e.getCurrentCompetitionsHandler(), Authenticated: true},
		{Method: "PATCH", Path: "/:competition_id", HandlerFunc: e.updateCompetitionHandler(), Authenticated: true, RequiredRoles: staffRoles},
		{Method: "DELETE", Path: "/:competition_id", HandlerFunc: e.deleteCompetitionHandler(), Authenticated: true, RequiredRoles: adminOnly},
		{Method: "GET", Path: "/:competition_id/routes", HandlerFunc: e.getCompetitionRoutesHandler(), Authenticated: true},
		{Method: "PUT", Path: "/:competition_id/routes", HandlerFunc: e.replaceCompetitionRoutesHandler(), Authenticated: true, RequiredRoles: staffRoles},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Lists all competitions with enrollment and route counts
// @Tags competition
// @Produce json
// @Success 200 {array} CompetitionResponse
// @Router /competitions [get]
func (e *CompetitionController) getCompetitionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitions, err := e.competitionService.GetAllCompetitions()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		response := make([]*CompetitionResponse, 0, len(competitions))
		for _, competition := range competitions {
			enrolled, err := e.competitionService.CountEnrollments(competition.Id)
			if err != nil {
				c.JSON(500, gin.H{"error": err.Error()})
				return
			}
			response = append(response, toCompetitionResponse(competition, enrolled))
		}
		c.JSON(200, response)
	}
}

type CompetitionCreate struct {
	Name             string    `json:"name" binding:"required"`
	StartsAt         time.Time `json:"starts_at" binding:"required"`
	EndsAt           time.Time `json:"ends_at" binding:"required"`
	MaxParticipants  int       `json:"max_participants"`
	IsOpen           bool      `json:"is_open"`
	RegistrationOpen bool      `json:"registration_open"`
	CategoryIds      []int     `json:"category_ids"`
}

// @Description Creates a competition with its category associations
// @Tags competition
// @Accept json
// @Produce json
// @Param competition body CompetitionCreate true "Competition to create"
// @Success 201 {object} CompetitionResponse
// @Router /competitions [post]
func (e *CompetitionController) createCompetitionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request CompetitionCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		competition := &repository.Competition{
			Name:             request.Name,
			StartsAt:         request.StartsAt,
			EndsAt:           request.EndsAt,
			MaxParticipants:  request.MaxParticipants,
			IsOpen:           request.IsOpen,
			RegistrationOpen: request.RegistrationOpen,
		}
		competition, err := e.competitionService.CreateCompetition(competition, request.CategoryIds)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(201, toCompetitionResponse(competition, 0))
	}
}

// @Description Lists the open competitions of the day the caller is enrolled in
// @Tags competition
// @Produce json
// @Success 200 {array} CompetitionResponse
// @Router /competitions/current [get]
func (e *CompetitionController) getCurrentCompetitionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		competitions, err := e.competitionService.GetOpenCompetitionsForClimber(claims.ClimberId())
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		response := make([]*CompetitionResponse, 0, len(competitions))
		for _, competition := range competitions {
			enrolled, err := e.competitionService.CountEnrollments(competition.Id)
			if err != nil {
				c.JSON(500, gin.H{"error": err.Error()})
				return
			}
			response = append(response, toCompetitionResponse(competition, enrolled))
		}
		c.JSON(200, response)
	}
}

type CompetitionUpdate struct {
	Name             string    `json:"name"`
	StartsAt         time.Time `json:"starts_at"`
	EndsAt           time.Time `json:"ends_at"`
	MaxParticipants  int       `json:"max_participants"`
	IsOpen           *bool     `json:"is_open"`
	RegistrationOpen *bool     `json:"registration_open"`
}

// @Description Updates a competition's flags and metadata
// @Tags competition
// @Accept json
// @Produce json
// @Param competition body CompetitionUpdate true "Fields to update"
// @Success 200 {object} CompetitionResponse
// @Router /competitions/{competition_id} [patch]
func (e *CompetitionController) updateCompetitionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, err := strconv.Atoi(c.Param("competition_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request CompetitionUpdate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		competition, err := e.competitionService.UpdateCompetition(competitionId, &service.CompetitionUpdate{
			Name:             request.Name,
			StartsAt:         request.StartsAt,
			EndsAt:           request.EndsAt,
			MaxParticipants:  request.MaxParticipants,
			IsOpen:           request.IsOpen,
			RegistrationOpen: request.RegistrationOpen,
		})
		if err != nil {
			handleServiceError(c, err)
			return
		}
		enrolled, err := e.competitionService.CountEnrollments(competition.Id)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, toCompetitionResponse(competition, enrolled))
	}
}

// @Description Deletes a competition that is not open
// @Tags competition
// @Router /competitions/{competition_id} [delete]
func (e *CompetitionController) deleteCompetitionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, err := strconv.Atoi(c.Param("competition_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.competitionService.DeleteCompetition(competitionId); err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(200, gin.H{})
	}
}

// @Description Lists a competition's routes; climbers see their own validated flag
// @Tags competition
// @Produce json
// @Success 200 {array} CompetitionRouteResponse
// @Router /competitions/{competition_id}/routes [get]
func (e *CompetitionController) getCompetitionRoutesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, err := strconv.Atoi(c.Param("competition_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		claims := getClaims(c)
		routes, err := e.routeService.GetRoutesForCompetition(competitionId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		validated := map[int]bool{}
		if claims.ClimberId() != 0 {
			validated, err = e.validationService.ValidatedRouteIds(claims.ClimberId(), competitionId)
			if err != nil {
				c.JSON(500, gin.H{"error": err.Error()})
				return
			}
		}
		response := make([]*CompetitionRouteResponse, 0, len(routes))
		for _, route := range routes {
			response = append(response, &CompetitionRouteResponse{
				RouteResponse: *toRouteResponse(route),
				Validated:     validated[route.Id],
			})
		}
		c.JSON(200, response)
	}
}

type RouteIdList struct {
	RouteIds []int `json:"route_ids"`
}

// @Description Replaces the route set of a competition that is not open
// @Tags competition
// @Accept json
// @Param routes body RouteIdList true "Route ids"
// @Success 200
// @Router /competitions/{competition_id}/routes [put]
func (e *CompetitionController) replaceCompetitionRoutesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, err := strconv.Atoi(c.Param("competition_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request RouteIdList
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.competitionService.ReplaceRoutes(competitionId, request.RouteIds); err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(200, gin.H{})
	}
}

type CompetitionResponse struct {
	Id               int       `json:"id"`
	Name             string    `json:"name"`
	StartsAt         time.Time `json:"starts_at"`
	EndsAt           time.Time `json:"ends_at"`
	MaxParticipants  int       `json:"max_participants"`
	IsOpen           bool      `json:"is_open"`
	RegistrationOpen bool      `json:"registration_open"`
	EnrollmentCount  int64     `json:"enrollment_count"`
	RouteCount       int       `json:"route_count"`
	Categories       []string  `json:"categories"`
	Status           string    `json:"status"`
}

type CompetitionRouteResponse struct {
	RouteResponse
	Validated bool `json:"validated"`
}

func competitionStatus(competition *repository.Competition) string {
	switch {
	case competition.IsFuture():
		return "future"
	case competition.IsCurrent():
		return "current"
	default:
		return "past"
	}
}

func toCompetitionResponse(competition *repository.Competition, enrolled int64) *CompetitionResponse {
	return &CompetitionResponse{
		Id:               competition.Id,
		Name:             competition.Name,
		StartsAt:         competition.StartsAt,
		EndsAt:           competition.EndsAt,
		MaxParticipants:  competition.MaxParticipants,
		IsOpen:           competition.IsOpen,
		RegistrationOpen: competition.RegistrationOpen,
		EnrollmentCount:  enrolled,
		RouteCount:       len(competition.Routes),
		Categories: utils.Map(competition.Categories, func(category *repository.Category) string {
			return category.Name
		}),
		Status: competitionStatus(competition),
	}
}
