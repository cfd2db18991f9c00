package controller

import (
	"time"

	"crux/repository"
	"crux/service"
	"crux/utils"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LevelController struct {
	levelService *service.LevelService
}

func NewLevelController(db *gorm.DB) *LevelController {
	return &LevelController{
		levelService: service.NewLevelService(db),
	}
}

func setupLevelController(db *gorm.DB, cacheStore persistence.CacheStore) []RouteInfo {
	e := NewLevelController(db)
	basePath := "/levels"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: cache.CachePage(cacheStore, time.Minute, e.getLevelsHandler()), Authenticated: true},
		{Method: "POST", Path: "", HandlerFunc: e.createLevelHandler(), Authenticated: true, RequiredRoles: adminOnly},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Lists difficulty levels, highest score first
// @Tags level
// @Produce json
// @Success 200 {array} LevelResponse
// @Router /levels [get]
func (e *LevelController) getLevelsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		levels, err := e.levelService.GetAllLevels()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(levels, toLevelResponse))
	}
}

type LevelCreate struct {
	Name  string `json:"name" binding:"required"`
	Score int    `json:"score" binding:"required"`
}

// @Description Creates a difficulty level
// @Tags level
// @Accept json
// @Produce json
// @Param level body LevelCreate true "Level to create"
// @Success 201 {object} LevelResponse
// @Router /levels [post]
func (e *LevelController) createLevelHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request LevelCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		level, err := e.levelService.CreateLevel(&repository.Level{Name: request.Name, Score: request.Score})
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(201, toLevelResponse(level))
	}
}

type LevelResponse struct {
	Id    int    `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func toLevelResponse(level *repository.Level) *LevelResponse {
	return &LevelResponse{Id: level.Id, Name: level.Name, Score: level.Score}
}
