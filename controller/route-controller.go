package controller

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"crux/config"
	"crux/repository"
	"crux/service"
	"crux/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RouteController struct {
	routeService *service.RouteService
}

func NewRouteController(db *gorm.DB) *RouteController {
	return &RouteController{
		routeService: service.NewRouteService(db),
	}
}

func setupRouteController(db *gorm.DB) []RouteInfo {
	e := NewRouteController(db)
	basePath := "/routes"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getRoutesHandler(), Authenticated: true, RequiredRoles: staffRoles},
		{Method: "POST", Path: "", HandlerFunc: e.createRouteHandler(), Authenticated: true, RequiredRoles: staffRoles},
		{Method: "GET", Path: "/:route_id", HandlerFunc: e.getRouteHandler(), Authenticated: true},
		{Method: "PUT", Path: "/:route_id", HandlerFunc: e.updateRouteHandler(), Authenticated: true, RequiredRoles: staffRoles},
		{Method: "DELETE", Path: "/:route_id", HandlerFunc: e.deleteRouteHandler(), Authenticated: true, RequiredRoles: staffRoles},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Lists all routes with level and checkpoint counts
// @Tags route
// @Produce json
// @Success 200 {array} RouteResponse
// @Router /routes [get]
func (e *RouteController) getRoutesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		routes, err := e.routeService.GetAllRoutes()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(routes, toRouteResponse))
	}
}

// @Description Fetches a route with its ordered checkpoints
// @Tags route
// @Produce json
// @Success 200 {object} RouteDetailResponse
// @Router /routes/{route_id} [get]
func (e *RouteController) getRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		routeId, err := strconv.Atoi(c.Param("route_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		route, err := e.routeService.GetRouteById(routeId, "Level")
		if err != nil {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		checkpoints, err := e.routeService.GetCheckpointsForRoute(routeId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, &RouteDetailResponse{
			RouteResponse: *toRouteResponse(route),
			Comment:       route.Comment,
			Checkpoints:   utils.Map(checkpoints, toCheckpointResponse),
		})
	}
}

type CheckpointCreate struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Order  int     `json:"order"`
}

func parseCheckpoints(data string) ([]*repository.Checkpoint, error) {
	if data == "" {
		return []*repository.Checkpoint{}, nil
	}
	parsed := make([]*CheckpointCreate, 0)
	if err := json.Unmarshal([]byte(data), &parsed); err != nil {
		return nil, fmt.Errorf("invalid checkpoints payload: %v", err)
	}
	return utils.Map(parsed, func(checkpoint *CheckpointCreate) *repository.Checkpoint {
		return &repository.Checkpoint{
			X:      checkpoint.X,
			Y:      checkpoint.Y,
			Radius: checkpoint.Radius,
			Order:  checkpoint.Order,
		}
	}), nil
}

// saveImage stores an uploaded route picture under the configured upload dir
// with a random prefix to dodge filename clashes.
func saveImage(c *gin.Context) (*string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// The image is optional.
		return nil, nil
	}
	cfg := config.Env()
	filename := fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(file.Filename))
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, err
	}
	if err := c.SaveUploadedFile(file, filepath.Join(cfg.UploadDir, filename)); err != nil {
		return nil, err
	}
	imagePath := cfg.UploadURL + "/" + filename
	return &imagePath, nil
}

// @Description Creates a route with its checkpoints, optionally with an image
// @Tags route
// @Accept mpfd
// @Produce json
// @Param name formData string true "Route name"
// @Param level_id formData int true "Level id"
// @Param comment formData string false "Free-text comment"
// @Param checkpoints formData string false "JSON array of checkpoints"
// @Param image formData file false "Route picture"
// @Success 201 {object} RouteDetailResponse
// @Router /routes [post]
func (e *RouteController) createRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		levelId, err := strconv.Atoi(c.PostForm("level_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": "level_id is required"})
			return
		}
		checkpoints, err := parseCheckpoints(c.PostForm("checkpoints"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		imagePath, err := saveImage(c)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		route := &repository.Route{
			Name:        c.PostForm("name"),
			LevelId:     &levelId,
			Comment:     c.PostForm("comment"),
			ImagePath:   imagePath,
			Checkpoints: checkpoints,
		}
		route, err = e.routeService.CreateRoute(route)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(201, &RouteDetailResponse{
			RouteResponse: *toRouteResponse(route),
			Comment:       route.Comment,
			Checkpoints:   utils.Map(route.Checkpoints, toCheckpointResponse),
		})
	}
}

// @Description Updates a route and replaces its checkpoint set. Rejected
// @Description while the route belongs to an open competition.
// @Tags route
// @Accept mpfd
// @Produce json
// @Success 200 {object} RouteDetailResponse
// @Router /routes/{route_id} [put]
func (e *RouteController) updateRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		routeId, err := strconv.Atoi(c.Param("route_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		checkpoints, err := parseCheckpoints(c.PostForm("checkpoints"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		imagePath, err := saveImage(c)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		update := &repository.Route{
			Name:      c.PostForm("name"),
			Comment:   c.PostForm("comment"),
			ImagePath: imagePath,
		}
		if levelId, err := strconv.Atoi(c.PostForm("level_id")); err == nil {
			update.LevelId = &levelId
		}
		route, err := e.routeService.UpdateRoute(routeId, update, checkpoints)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(200, &RouteDetailResponse{
			RouteResponse: *toRouteResponse(route),
			Comment:       route.Comment,
			Checkpoints:   utils.Map(route.Checkpoints, toCheckpointResponse),
		})
	}
}

// @Description Deletes a route that is not part of an open competition
// @Tags route
// @Router /routes/{route_id} [delete]
func (e *RouteController) deleteRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		routeId, err := strconv.Atoi(c.Param("route_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.routeService.DeleteRoute(routeId); err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(200, gin.H{})
	}
}

type RouteResponse struct {
	Id              int    `json:"id"`
	Name            string `json:"name"`
	LevelName       string `json:"level_name"`
	LevelScore      int    `json:"level_score"`
	ImagePath       string `json:"image_path"`
	CheckpointCount int    `json:"checkpoint_count"`
}

type RouteDetailResponse struct {
	RouteResponse
	Comment     string                `json:"comment"`
	Checkpoints []*CheckpointResponse `json:"checkpoints"`
}

type CheckpointResponse struct {
	Id     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Order  int     `json:"order"`
}

func toCheckpointResponse(checkpoint *repository.Checkpoint) *CheckpointResponse {
	return &CheckpointResponse{
		Id:     checkpoint.Id,
		X:      checkpoint.X,
		Y:      checkpoint.Y,
		Radius: checkpoint.Radius,
		Order:  checkpoint.Order,
	}
}

func toRouteResponse(route *repository.Route) *RouteResponse {
	response := &RouteResponse{
		Id:              route.Id,
		Name:            route.Name,
		LevelName:       "N/A",
		CheckpointCount: len(route.Checkpoints),
	}
	if route.Level != nil {
		response.LevelName = route.Level.Name
		response.LevelScore = route.Level.Score
	}
	if route.ImagePath != nil {
		response.ImagePath = *route.ImagePath
	}
	return response
}
