package controller

import (
	"crux/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationController struct {
	validationService *service.ValidationService
}

func NewValidationController(db *gorm.DB) *ValidationController {
	return &ValidationController{
		validationService: service.NewValidationService(db),
	}
}

func setupValidationController(db *gorm.DB) []RouteInfo {
	e := NewValidationController(db)
	basePath := "/validations"
	routes := []RouteInfo{
		{Method: "POST", Path: "", HandlerFunc: e.selfValidateHandler(), Authenticated: true},
		{Method: "POST", Path: "/staff", HandlerFunc: e.staffValidateHandler(), Authenticated: true, RequiredRoles: staffRoles},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type ValidationCreate struct {
	RouteId       int `json:"route_id" binding:"required"`
	CompetitionId int `json:"competition_id" binding:"required"`
	CheckpointId  int `json:"checkpoint_id" binding:"required"`
	// ClimberId is honored for staff validation only; self-service always
	// acts as the session's climber.
	ClimberId int `json:"climber_id"`
}

// @Description Records the caller's furthest checkpoint on a route. A second
// @Description report for the same route replaces the previous one.
// @Tags validation
// @Accept json
// @Success 200
// @Failure 403 {object} map[string]string
// @Router /validations [post]
func (e *ValidationController) selfValidateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request ValidationCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		claims := getClaims(c)
		_, err := e.validationService.RecordSelfValidation(claims.ClimberId(), request.RouteId, request.CompetitionId, request.CheckpointId)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(200, gin.H{"success": true})
	}
}

// @Description Records a validation on behalf of any climber, enrolled or not
// @Tags validation
// @Accept json
// @Success 200
// @Router /validations/staff [post]
func (e *ValidationController) staffValidateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request ValidationCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if request.ClimberId == 0 {
			c.JSON(400, gin.H{"error": "climber_id is required"})
			return
		}
		_, err := e.validationService.RecordStaffValidation(request.ClimberId, request.RouteId, request.CompetitionId, request.CheckpointId)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(200, gin.H{"success": true})
	}
}
