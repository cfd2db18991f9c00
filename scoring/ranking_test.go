package scoring

import (
	"testing"
	"time"

	"crux/repository"

	"github.com/stretchr/testify/assert"
)

func rankingFixture() ([]*repository.Climber, map[int][]*repository.Validation, []*repository.Category) {
	year := time.Now().Year()
	climbers := []*repository.Climber{
		{Id: 1, FirstName: "Alice", LastName: "Martin", BirthDate: time.Date(year-25, time.May, 1, 0, 0, 0, 0, time.UTC), Gender: repository.GenderFemale},
		{Id: 2, FirstName: "Bob", LastName: "Durand", BirthDate: time.Date(year-30, time.May, 1, 0, 0, 0, 0, time.UTC), Gender: repository.GenderMale},
		{Id: 3, FirstName: "Chloe", LastName: "Petit", BirthDate: time.Date(year-22, time.May, 1, 0, 0, 0, 0, time.UTC), Gender: repository.GenderFemale},
	}
	hard := &repository.Level{Id: 1, Name: "7a", Score: 100}
	easy := &repository.Level{Id: 2, Name: "5c", Score: 40}
	wall := &repository.Route{Id: 1, Name: "Le Mur", Level: hard}
	slab := &repository.Route{Id: 2, Name: "La Dalle", Level: easy}
	validations := map[int][]*repository.Validation{
		1: {
			{ClimberId: 1, Route: wall, Checkpoint: &repository.Checkpoint{Order: 2}}, // 50
			{ClimberId: 1, Route: slab, Checkpoint: &repository.Checkpoint{Order: 1}}, // 40
		},
		2: {
			{ClimberId: 2, Route: wall, Checkpoint: &repository.Checkpoint{Order: 1}}, // 100
		},
		3: {
			{ClimberId: 3, Route: slab, Checkpoint: &repository.Checkpoint{Order: 2}}, // 20
		},
	}
	categories := []*repository.Category{
		{Id: 1, Name: "Senior", MinAge: 20, MaxAge: 39, Gender: repository.GenderMixed},
		{Id: 2, Name: "Senior F", MinAge: 20, MaxAge: 39, Gender: repository.GenderFemale},
	}
	return climbers, validations, categories
}

func TestRankOrdersByTotalDescending(t *testing.T) {
	climbers, validations, categories := rankingFixture()
	rankings := Rank(climbers, validations, categories)

	senior := rankings["Senior"]
	assert.Len(t, senior, 3)
	assert.Equal(t, "Bob Durand", senior[0].ClimberName)
	assert.Equal(t, 100.0, senior[0].TotalScore)
	assert.Equal(t, "Alice Martin", senior[1].ClimberName)
	assert.Equal(t, 90.0, senior[1].TotalScore)
	assert.Equal(t, "Chloe Petit", senior[2].ClimberName)

	for i, result := range senior {
		assert.Equal(t, i+1, result.Position)
		if i > 0 {
			assert.LessOrEqual(t, result.TotalScore, senior[i-1].TotalScore)
		}
	}
}

func TestRankFiltersByCategory(t *testing.T) {
	climbers, validations, categories := rankingFixture()
	rankings := Rank(climbers, validations, categories)

	seniorF := rankings["Senior F"]
	assert.Len(t, seniorF, 2)
	assert.Equal(t, "Alice Martin", seniorF[0].ClimberName)
	assert.Equal(t, 1, seniorF[0].Position)
	assert.Equal(t, "Chloe Petit", seniorF[1].ClimberName)
	assert.Equal(t, 2, seniorF[1].Position)
}

func TestRankBreakdownPerRoute(t *testing.T) {
	climbers, validations, categories := rankingFixture()
	rankings := Rank(climbers, validations, categories)

	alice := rankings["Senior"][1]
	assert.Len(t, alice.ValidatedRoutes, 2)
	assert.Equal(t, "Le Mur", alice.ValidatedRoutes[0].RouteName)
	assert.Equal(t, 50.0, alice.ValidatedRoutes[0].Score)
	assert.Equal(t, 2, alice.ValidatedRoutes[0].CheckpointOrder)
}

func TestRankTiesKeepEnrollmentOrderWithDistinctPositions(t *testing.T) {
	year := time.Now().Year()
	climbers := []*repository.Climber{
		{Id: 1, FirstName: "First", LastName: "Enrolled", BirthDate: time.Date(year-25, time.May, 1, 0, 0, 0, 0, time.UTC), Gender: repository.GenderMale},
		{Id: 2, FirstName: "Second", LastName: "Enrolled", BirthDate: time.Date(year-25, time.May, 1, 0, 0, 0, 0, time.UTC), Gender: repository.GenderMale},
	}
	route := &repository.Route{Id: 1, Name: "Le Mur", Level: &repository.Level{Score: 60}}
	validations := map[int][]*repository.Validation{
		1: {{ClimberId: 1, Route: route, Checkpoint: &repository.Checkpoint{Order: 1}}},
		2: {{ClimberId: 2, Route: route, Checkpoint: &repository.Checkpoint{Order: 1}}},
	}
	categories := []*repository.Category{{Name: "Senior", MinAge: 20, MaxAge: 39, Gender: repository.GenderMixed}}

	results := Rank(climbers, validations, categories)["Senior"]
	assert.Len(t, results, 2)
	// Equal totals: enumeration order survives, positions stay distinct.
	assert.Equal(t, "First Enrolled", results[0].ClimberName)
	assert.Equal(t, 1, results[0].Position)
	assert.Equal(t, "Second Enrolled", results[1].ClimberName)
	assert.Equal(t, 2, results[1].Position)
}

func TestRankSkipsDanglingValidations(t *testing.T) {
	year := time.Now().Year()
	climbers := []*repository.Climber{
		{Id: 1, FirstName: "Ana", LastName: "Gomez", BirthDate: time.Date(year-25, time.May, 1, 0, 0, 0, 0, time.UTC), Gender: repository.GenderFemale},
	}
	scored := &repository.Route{Id: 1, Name: "Le Mur", Level: &repository.Level{Score: 60}}
	unleveled := &repository.Route{Id: 2, Name: "Sans Niveau"}
	validations := map[int][]*repository.Validation{
		1: {
			{ClimberId: 1, Route: scored, Checkpoint: &repository.Checkpoint{Order: 2}},
			{ClimberId: 1, Route: unleveled, Checkpoint: &repository.Checkpoint{Order: 1}},
			{ClimberId: 1, Route: scored},
		},
	}
	categories := []*repository.Category{{Name: "Senior", MinAge: 20, MaxAge: 39, Gender: repository.GenderMixed}}

	results := Rank(climbers, validations, categories)["Senior"]
	assert.Len(t, results, 1)
	assert.Equal(t, 30.0, results[0].TotalScore)
	// Dangling validations do not count as validated routes.
	assert.Len(t, results[0].ValidatedRoutes, 1)
}

func TestRankEmptyCategory(t *testing.T) {
	climbers, validations, _ := rankingFixture()
	categories := []*repository.Category{{Name: "Veteran", MinAge: 60, MaxAge: 99, Gender: repository.GenderMixed}}

	rankings := Rank(climbers, validations, categories)
	assert.Len(t, rankings["Veteran"], 0)
}
