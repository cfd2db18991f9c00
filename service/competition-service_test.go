package service

import (
	"testing"
	"time"

	"crux/repository"

	"github.com/stretchr/testify/assert"
)

func TestUpdateCompetitionKeepsUnsentFlags(t *testing.T) {
	competition := SetUp()
	defer TearDown()
	service := NewCompetitionService(db)

	// a plain rename must not touch the open flags
	updated, err := service.UpdateCompetition(competition.Id, &CompetitionUpdate{Name: "renamed"})
	assert.Nil(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.True(t, updated.IsOpen)
	assert.True(t, updated.RegistrationOpen)

	closed := false
	updated, err = service.UpdateCompetition(competition.Id, &CompetitionUpdate{IsOpen: &closed})
	assert.Nil(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.False(t, updated.IsOpen)
	assert.True(t, updated.RegistrationOpen)
}

func TestCreateCompetitionValidation(t *testing.T) {
	SetUp()
	defer TearDown()
	service := NewCompetitionService(db)

	category := &repository.Category{Name: "Junior", MinAge: 10, MaxAge: 15, Gender: repository.GenderMixed}
	assert.Nil(t, db.Create(category).Error)

	day := time.Date(2026, 4, 18, 9, 0, 0, 0, time.UTC)
	competition, err := service.CreateCompetition(&repository.Competition{
		Name:     "spring open",
		StartsAt: day,
		EndsAt:   day.Add(8 * time.Hour),
	}, []int{category.Id})
	assert.Nil(t, err)
	assert.Equal(t, 100, competition.MaxParticipants)

	_, err = service.CreateCompetition(&repository.Competition{
		Name:     "backwards",
		StartsAt: day.Add(8 * time.Hour),
		EndsAt:   day,
	}, nil)
	assert.NotNil(t, err)
}
