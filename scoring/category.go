package scoring

import (
	"crux/repository"
)

// Matches reports whether a climber belongs to a category: calendar-year age
// within the inclusive [MinAge, MaxAge] bounds and a satisfied gender
// constraint (mixed admits anyone). Registration eligibility and ranking
// filters both go through this function so the two can never diverge.
func Matches(climber *repository.Climber, category *repository.Category) bool {
	age := climber.Age()
	if age < category.MinAge || age > category.MaxAge {
		return false
	}
	return category.Gender == repository.GenderMixed || category.Gender == climber.Gender
}

// MatchesAny reports whether a climber belongs to at least one of the
// categories attached to a competition.
func MatchesAny(climber *repository.Climber, categories []*repository.Category) bool {
	for _, category := range categories {
		if Matches(climber, category) {
			return true
		}
	}
	return false
}
