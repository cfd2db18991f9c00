package controller

import (
	"strconv"
	"time"

	"crux/repository"
	"crux/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClimberController struct {
	climberService *service.ClimberService
}

func NewClimberController(db *gorm.DB) *ClimberController {
	return &ClimberController{
		climberService: service.NewClimberService(db),
	}
}

func setupClimberController(db *gorm.DB) []RouteInfo {
	e := NewClimberController(db)
	basePath := "/climbers"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getClimbersHandler(), Authenticated: true, RequiredRoles: staffRoles},
		{Method: "POST", Path: "", HandlerFunc: e.createClimberHandler(), Authenticated: true, RequiredRoles: staffRoles},
		{Method: "PUT", Path: "/:climber_id/login-code", HandlerFunc: e.reissueLoginCodeHandler(), Authenticated: true, RequiredRoles: adminOnly},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Lists all climbers with their validation and enrollment counts
// @Tags climber
// @Produce json
// @Success 200 {array} ClimberDetailResponse
// @Router /climbers [get]
func (e *ClimberController) getClimbersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		climbers, err := e.climberService.GetAllClimbers()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		response := make([]*ClimberDetailResponse, 0, len(climbers))
		for _, climber := range climbers {
			validations, enrollments, err := e.climberService.GetClimberCounts(climber.Id)
			if err != nil {
				c.JSON(500, gin.H{"error": err.Error()})
				return
			}
			response = append(response, &ClimberDetailResponse{
				ClimberResponse: *toClimberResponse(climber),
				ValidationCount: validations,
				EnrollmentCount: enrollments,
			})
		}
		c.JSON(200, response)
	}
}

type ClimberCreate struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	BirthDate string `json:"birth_date" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender" binding:"required"`
	Role      string `json:"role"`
}

func (c *ClimberCreate) toIdentity() (*service.ClimberIdentity, error) {
	birthDate, err := time.Parse("2006-01-02", c.BirthDate)
	if err != nil {
		return nil, err
	}
	return &service.ClimberIdentity{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		BirthDate: birthDate,
		Email:     c.Email,
		Phone:     c.Phone,
		Gender:    repository.Gender(c.Gender),
		Role:      repository.Role(c.Role),
	}, nil
}

// @Description Creates a climber, or updates the existing one with the same
// @Description first name, last name and birth date
// @Tags climber
// @Accept json
// @Produce json
// @Param climber body ClimberCreate true "Climber to create"
// @Success 201 {object} ClimberResponse
// @Router /climbers [post]
func (e *ClimberController) createClimberHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request ClimberCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		identity, err := request.toIdentity()
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		climber, created, err := e.climberService.UpsertByIdentity(identity)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		status := 200
		if created {
			status = 201
		}
		c.JSON(status, toClimberResponse(climber))
	}
}

type LoginCodeUpdate struct {
	LoginCode string `json:"login_code" binding:"required"`
}

// @Description Replaces a climber's login code (collision fixup)
// @Tags climber
// @Accept json
// @Produce json
// @Param code body LoginCodeUpdate true "New login code"
// @Success 200 {object} ClimberResponse
// @Router /climbers/{climber_id}/login-code [put]
func (e *ClimberController) reissueLoginCodeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		climberId, err := strconv.Atoi(c.Param("climber_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request LoginCodeUpdate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		climber, err := e.climberService.ReissueLoginCode(climberId, request.LoginCode)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(200, toClimberResponse(climber))
	}
}

type ClimberResponse struct {
	Id        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	Role      string `json:"role"`
	LoginCode string `json:"login_code"`
	Age       int    `json:"age"`
}

type ClimberDetailResponse struct {
	ClimberResponse
	ValidationCount int64 `json:"validation_count"`
	EnrollmentCount int64 `json:"enrollment_count"`
}

func toClimberResponse(climber *repository.Climber) *ClimberResponse {
	if climber == nil {
		return nil
	}
	return &ClimberResponse{
		Id:        climber.Id,
		FirstName: climber.FirstName,
		LastName:  climber.LastName,
		BirthDate: climber.BirthDate.Format("2006-01-02"),
		Email:     climber.Email,
		Phone:     climber.Phone,
		Gender:    string(climber.Gender),
		Role:      string(climber.Role),
		LoginCode: climber.LoginCode,
		Age:       climber.Age(),
	}
}
