package controller

import (
	"crux/auth"
	"crux/repository"
	"crux/service"
	"crux/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	climberService *service.ClimberService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		climberService: service.NewClimberService(db),
	}
}

func setupAuthController(db *gorm.DB) []RouteInfo {
	e := NewAuthController(db)
	basePath := "/auth"
	routes := []RouteInfo{
		{Method: "POST", Path: "/login", HandlerFunc: e.loginHandler()},
		{Method: "POST", Path: "/login/multiple", HandlerFunc: e.loginMultipleHandler()},
		{Method: "GET", Path: "/current", HandlerFunc: e.currentUserHandler(), Authenticated: true},
		{Method: "POST", Path: "/logout", HandlerFunc: e.logoutHandler()},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type LoginRequest struct {
	Code string `json:"code" binding:"required"`
}

type MultiLoginRequest struct {
	Codes []string `json:"codes" binding:"required"`
}

type LoginResponse struct {
	Climbers []*ClimberResponse `json:"climbers"`
	Role     string             `json:"role"`
}

// @Description Logs a climber in with their 6-digit code
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Login code"
// @Success 200 {object} LoginResponse
// @Router /auth/login [post]
func (e *AuthController) loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request LoginRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		climbers, err := e.climberService.LoginByCodes([]string{request.Code})
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid login code"})
			return
		}
		e.startSession(c, climbers, climbers[0].Role)
	}
}

// @Description Logs several climbers in at once (one parent, many children)
// @Tags auth
// @Accept json
// @Produce json
// @Param login body MultiLoginRequest true "Login codes"
// @Success 200 {object} LoginResponse
// @Router /auth/login/multiple [post]
func (e *AuthController) loginMultipleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request MultiLoginRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		climbers, err := e.climberService.LoginByCodes(request.Codes)
		if err != nil {
			c.JSON(400, gin.H{"error": "no valid login code"})
			return
		}
		// A shared session never carries staff rights.
		e.startSession(c, climbers, repository.RoleClimber)
	}
}

func (e *AuthController) startSession(c *gin.Context, climbers []*repository.Climber, role repository.Role) {
	token, err := auth.CreateToken(climbers, role)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.SetCookie("auth", token, 60*60*24, "/", "", false, true)
	c.JSON(200, LoginResponse{
		Climbers: utils.Map(climbers, toClimberResponse),
		Role:     string(role),
	})
}

// @Description Returns the climbers of the current session
// @Tags auth
// @Produce json
// @Success 200 {object} LoginResponse
// @Router /auth/current [get]
func (e *AuthController) currentUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		climbers, err := e.climberService.GetClimbersByIds(claims.ClimberIds)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, LoginResponse{
			Climbers: utils.Map(climbers, toClimberResponse),
			Role:     claims.Role,
		})
	}
}

// @Description Clears the session cookie
// @Tags auth
// @Success 200
// @Router /auth/logout [post]
func (e *AuthController) logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("auth", "", -1, "/", "", false, true)
		c.JSON(200, gin.H{})
	}
}
