package scoring

import (
	"crux/repository"
)

// Score derives the point value of a validation: the route level's base
// score divided by the order of the reached checkpoint. Reaching an early
// checkpoint on a hard route is worth more than a late checkpoint on an easy
// one. A validation whose route has no level, or whose checkpoint reference
// is dangling, scores 0.
func Score(validation *repository.Validation) float64 {
	if validation.Route == nil || validation.Route.Level == nil || validation.Checkpoint == nil {
		return 0
	}
	return float64(validation.Route.Level.Score) / float64(validation.Checkpoint.Order)
}
