package scoring

import (
	"sort"

	"crux/repository"
)

// RouteScore is one validated route in a climber's breakdown.
type RouteScore struct {
	RouteName       string
	Score           float64
	CheckpointOrder int
}

type ClimberResult struct {
	ClimberId       int
	ClimberName     string
	TotalScore      float64
	ValidatedRoutes []*RouteScore
	Position        int
}

// Rankings maps a category name to its ordered leaderboard.
type Rankings = map[string][]*ClimberResult

// Rank builds one leaderboard per category. Climbers must be passed in
// enrollment order: climbers with equal totals keep that relative order
// (stable sort), and positions are dense 1-based with no sharing even on
// exact ties. Validations with a missing level or checkpoint are skipped
// entirely, matching the scoring function.
func Rank(climbers []*repository.Climber, validationsByClimber map[int][]*repository.Validation, categories []*repository.Category) Rankings {
	rankings := make(Rankings, len(categories))
	for _, category := range categories {
		results := make([]*ClimberResult, 0)
		for _, climber := range climbers {
			if !Matches(climber, category) {
				continue
			}
			result := &ClimberResult{
				ClimberId:       climber.Id,
				ClimberName:     climber.FullName(),
				ValidatedRoutes: make([]*RouteScore, 0),
			}
			for _, validation := range validationsByClimber[climber.Id] {
				if validation.Route == nil || validation.Route.Level == nil || validation.Checkpoint == nil {
					continue
				}
				score := Score(validation)
				result.TotalScore += score
				result.ValidatedRoutes = append(result.ValidatedRoutes, &RouteScore{
					RouteName:       validation.Route.Name,
					Score:           score,
					CheckpointOrder: validation.Checkpoint.Order,
				})
			}
			results = append(results, result)
		}
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].TotalScore > results[j].TotalScore
		})
		for i, result := range results {
			result.Position = i + 1
		}
		rankings[category.Name] = results
	}
	return rankings
}
