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

type CategoryController struct {
	categoryService *service.CategoryService
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{
		categoryService: service.NewCategoryService(db),
	}
}

func setupCategoryController(db *gorm.DB, cacheStore persistence.CacheStore) []RouteInfo {
	e := NewCategoryController(db)
	basePath := "/categories"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: cache.CachePage(cacheStore, time.Minute, e.getCategoriesHandler()), Authenticated: true, RequiredRoles: staffRoles},
		{Method: "POST", Path: "", HandlerFunc: e.createCategoryHandler(), Authenticated: true, RequiredRoles: adminOnly},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Lists all categories
// @Tags category
// @Produce json
// @Success 200 {array} CategoryResponse
// @Router /categories [get]
func (e *CategoryController) getCategoriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := e.categoryService.GetAllCategories()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(categories, toCategoryResponse))
	}
}

type CategoryCreate struct {
	Name   string `json:"name" binding:"required"`
	MinAge int    `json:"min_age" binding:"required"`
	MaxAge int    `json:"max_age" binding:"required"`
	Gender string `json:"gender" binding:"required"`
}

// @Description Creates an age/gender category
// @Tags category
// @Accept json
// @Produce json
// @Param category body CategoryCreate true "Category to create"
// @Success 201 {object} CategoryResponse
// @Router /categories [post]
func (e *CategoryController) createCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request CategoryCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		category, err := e.categoryService.CreateCategory(&repository.Category{
			Name:   request.Name,
			MinAge: request.MinAge,
			MaxAge: request.MaxAge,
			Gender: repository.Gender(request.Gender),
		})
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(201, toCategoryResponse(category))
	}
}

type CategoryResponse struct {
	Id     int    `json:"id"`
	Name   string `json:"name"`
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
	Gender string `json:"gender"`
}

func toCategoryResponse(category *repository.Category) *CategoryResponse {
	return &CategoryResponse{
		Id:     category.Id,
		Name:   category.Name,
		MinAge: category.MinAge,
		MaxAge: category.MaxAge,
		Gender: string(category.Gender),
	}
}
