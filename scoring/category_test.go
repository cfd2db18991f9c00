package scoring

import (
	"testing"
	"time"

	"crux/repository"

	"github.com/stretchr/testify/assert"
)

func climberAged(age int, gender repository.Gender) *repository.Climber {
	return &repository.Climber{
		FirstName: "Test",
		LastName:  "Climber",
		BirthDate: time.Date(time.Now().Year()-age, time.March, 15, 0, 0, 0, 0, time.UTC),
		Gender:    gender,
	}
}

func TestMatchesAgeBounds(t *testing.T) {
	category := &repository.Category{Name: "U12 M", MinAge: 11, MaxAge: 12, Gender: repository.GenderMale}

	assert.True(t, Matches(climberAged(11, repository.GenderMale), category))
	assert.True(t, Matches(climberAged(12, repository.GenderMale), category))
	assert.False(t, Matches(climberAged(10, repository.GenderMale), category))
	assert.False(t, Matches(climberAged(13, repository.GenderMale), category))
}

func TestMatchesGenderConstraint(t *testing.T) {
	male := &repository.Category{Name: "U12 M", MinAge: 11, MaxAge: 12, Gender: repository.GenderMale}
	mixed := &repository.Category{Name: "U12", MinAge: 11, MaxAge: 12, Gender: repository.GenderMixed}

	assert.False(t, Matches(climberAged(12, repository.GenderFemale), male))
	assert.True(t, Matches(climberAged(11, repository.GenderFemale), mixed))
	assert.True(t, Matches(climberAged(11, repository.GenderMale), mixed))
}

func TestMatchesCalendarYearAge(t *testing.T) {
	// Age is year subtraction: a climber born in December of year-12 is
	// already 12 in January, regardless of birth month.
	climber := &repository.Climber{
		BirthDate: time.Date(time.Now().Year()-12, time.December, 31, 0, 0, 0, 0, time.UTC),
		Gender:    repository.GenderFemale,
	}
	category := &repository.Category{Name: "U12", MinAge: 12, MaxAge: 12, Gender: repository.GenderMixed}
	assert.True(t, Matches(climber, category))
}

func TestMatchesAny(t *testing.T) {
	categories := []*repository.Category{
		{Name: "U12 M", MinAge: 11, MaxAge: 12, Gender: repository.GenderMale},
		{Name: "Senior F", MinAge: 20, MaxAge: 39, Gender: repository.GenderFemale},
	}

	assert.True(t, MatchesAny(climberAged(25, repository.GenderFemale), categories))
	assert.False(t, MatchesAny(climberAged(25, repository.GenderMale), categories))
	assert.False(t, MatchesAny(climberAged(25, repository.GenderFemale), nil))
}
