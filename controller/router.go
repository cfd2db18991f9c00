package controller

import (
	"crux/auth"
	"crux/repository"
	"crux/utils"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
	RequiredRoles []string
}

func SetRoutes(r *gin.Engine, db *gorm.DB, cacheStore persistence.CacheStore) {
	routes := make([]RouteInfo, 0)
	routes = append(routes, setupAuthController(db)...)
	routes = append(routes, setupClimberController(db)...)
	routes = append(routes, setupCompetitionController(db)...)
	routes = append(routes, setupRegistrationController(db)...)
	routes = append(routes, setupRouteController(db)...)
	routes = append(routes, setupValidationController(db)...)
	routes = append(routes, setupRankingController(db)...)
	routes = append(routes, setupLevelController(db, cacheStore)...)
	routes = append(routes, setupCategoryController(db, cacheStore)...)
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated {
			handlerfuncs = append(handlerfuncs, AuthMiddleware(route.RequiredRoles))
		}
		handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		r.Handle(route.Method, "/api"+route.Path, handlerfuncs...)
	}
}

func AuthMiddleware(roles []string) gin.HandlerFunc {
	return func(r *gin.Context) {
		authCookie, err := r.Cookie("auth")
		if err != nil {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		token, err := auth.ParseToken(authCookie)
		if err != nil {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		if !token.Valid {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		claims := &auth.Claims{}
		claims.FromJWTClaims(token.Claims)
		if err := claims.Valid(); err != nil {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		r.Set("claims", claims)
		if len(roles) == 0 {
			r.Next()
			return
		}

		for _, requiredRole := range roles {
			if claims.Role == requiredRole {
				r.Next()
				return
			}
		}
		r.JSON(403, gin.H{"error": "Unauthorized"})
		r.Abort()
	}
}

// getClaims returns the claims stored by AuthMiddleware, nil on
// unauthenticated routes.
func getClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get("claims")
	if !ok {
		return nil
	}
	return value.(*auth.Claims)
}

var staffRoles = utils.Map(repository.StaffRoles, func(role repository.Role) string { return string(role) })
var adminOnly = []string{string(repository.RoleAdmin)}
