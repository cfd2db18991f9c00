package controller

import (
	"strconv"

	"crux/scoring"
	"crux/service"
	"crux/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RankingController struct {
	rankingService     *service.RankingService
	competitionService *service.CompetitionService
}

func NewRankingController(db *gorm.DB) *RankingController {
	return &RankingController{
		rankingService:     service.NewRankingService(db),
		competitionService: service.NewCompetitionService(db),
	}
}

func setupRankingController(db *gorm.DB) []RouteInfo {
	e := NewRankingController(db)
	routes := []RouteInfo{
		// Deliberately not cached: rankings are recomputed on every request.
		{Method: "GET", Path: "/competitions/:competition_id/rankings", HandlerFunc: e.getRankingsHandler(), Authenticated: true},
	}
	return routes
}

// @Description Returns the leaderboards of a competition, one per category.
// @Description Until the competition has ended only staff may read them.
// @Tags ranking
// @Produce json
// @Success 200 {object} map[string][]ClimberResultResponse
// @Failure 403 {object} map[string]string
// @Router /competitions/{competition_id}/rankings [get]
func (e *RankingController) getRankingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, err := strconv.Atoi(c.Param("competition_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		competition, err := e.competitionService.GetCompetitionById(competitionId)
		if err != nil {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		claims := getClaims(c)
		if !competition.IsPast() && !claims.IsStaff() {
			c.JSON(403, gin.H{"error": "rankings are not available before the competition ends"})
			return
		}
		rankings, err := e.rankingService.GetRankings(competitionId)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response := make(map[string][]*ClimberResultResponse, len(rankings))
		for category, results := range rankings {
			response[category] = utils.Map(results, toClimberResultResponse)
		}
		c.JSON(200, response)
	}
}

type RouteScoreResponse struct {
	RouteName       string  `json:"route_name"`
	Score           float64 `json:"score"`
	CheckpointOrder int     `json:"checkpoint_order"`
}

type ClimberResultResponse struct {
	Position        int                   `json:"position"`
	ClimberName     string                `json:"climber_name"`
	TotalScore      float64               `json:"total_score"`
	RouteCount      int                   `json:"route_count"`
	ValidatedRoutes []*RouteScoreResponse `json:"validated_routes"`
}

func toClimberResultResponse(result *scoring.ClimberResult) *ClimberResultResponse {
	return &ClimberResultResponse{
		Position:    result.Position,
		ClimberName: result.ClimberName,
		TotalScore:  result.TotalScore,
		RouteCount:  len(result.ValidatedRoutes),
		ValidatedRoutes: utils.Map(result.ValidatedRoutes, func(route *scoring.RouteScore) *RouteScoreResponse {
			return &RouteScoreResponse{
				RouteName:       route.RouteName,
				Score:           route.Score,
				CheckpointOrder: route.CheckpointOrder,
			}
		}),
	}
}
