package service

import (
	"testing"

	"crux/app_error"

	"github.com/stretchr/testify/assert"
)

func TestGetRankingsEndToEnd(t *testing.T) {
	competition := SetUp()
	defer TearDown()
	route := competition.Routes[0]

	alice := register(t, competition, "Alice", "Moreau")
	bob := register(t, competition, "Bob", "Martin")

	validations := NewValidationService(db)
	// blue is worth 40: Alice reaches the order-2 checkpoint (40/2 = 20),
	// Bob the order-1 checkpoint (40/1 = 40)
	_, err := validations.RecordSelfValidation(alice.Id, route.Id, competition.Id, route.Checkpoints[1].Id)
	assert.Nil(t, err)
	_, err = validations.RecordSelfValidation(bob.Id, route.Id, competition.Id, route.Checkpoints[0].Id)
	assert.Nil(t, err)

	rankings, err := NewRankingService(db).GetRankings(competition.Id)
	assert.Nil(t, err)

	senior := rankings["Senior"]
	assert.Len(t, senior, 2)
	assert.Equal(t, 1, senior[0].Position)
	assert.Equal(t, "Bob Martin", senior[0].ClimberName)
	assert.Equal(t, 40.0, senior[0].TotalScore)
	assert.Equal(t, 2, senior[1].Position)
	assert.Equal(t, "Alice Moreau", senior[1].ClimberName)
	assert.Equal(t, 20.0, senior[1].TotalScore)
}

func TestGetRankingsUnknownCompetition(t *testing.T) {
	SetUp()
	defer TearDown()

	_, err := NewRankingService(db).GetRankings(9999)
	assert.Equal(t, 404, app_error.HTTPStatus(err))
}
