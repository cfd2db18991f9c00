package controller

import (
	"strconv"

	"crux/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegistrationController struct {
	registrationService *service.RegistrationService
}

func NewRegistrationController(db *gorm.DB) *RegistrationController {
	return &RegistrationController{
		registrationService: service.NewRegistrationService(db),
	}
}

func setupRegistrationController(db *gorm.DB) []RouteInfo {
	e := NewRegistrationController(db)
	routes := []RouteInfo{
		// Public: visitors register themselves or their children.
		{Method: "POST", Path: "/competitions/:competition_id/register", HandlerFunc: e.registerHandler()},
	}
	return routes
}

type RegistrationResponse struct {
	ClimberId int    `json:"climber_id"`
	LoginCode string `json:"login_code"`
}

// @Description Registers a climber for a competition. Re-registering the same
// @Description person updates their contact info instead of duplicating them.
// @Tags registration
// @Accept json
// @Produce json
// @Param climber body ClimberCreate true "Climber identity"
// @Success 201 {object} RegistrationResponse
// @Failure 422 {object} map[string]string
// @Router /competitions/{competition_id}/register [post]
func (e *RegistrationController) registerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, err := strconv.Atoi(c.Param("competition_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request ClimberCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		request.Role = ""
		identity, err := request.toIdentity()
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		climber, err := e.registrationService.Register(competitionId, identity)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(201, RegistrationResponse{
			ClimberId: climber.Id,
			LoginCode: climber.LoginCode,
		})
	}
}
