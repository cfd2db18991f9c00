package service

import (
	"testing"

	"crux/app_error"
	"crux/repository"

	"github.com/stretchr/testify/assert"
)

func TestRegisterCreatesClimberAndEnrollment(t *testing.T) {
	competition := SetUp()
	defer TearDown()
	service := NewRegistrationService(db)

	climber, err := service.Register(competition.Id, seniorIdentity("Alice", "Moreau"))
	assert.Nil(t, err)
	assert.NotZero(t, climber.Id)
	assert.Len(t, climber.LoginCode, 6)
	assert.Equal(t, repository.RoleClimber, climber.Role)

	enrollment, err := repository.NewEnrollmentRepository(db).GetEnrollment(climber.Id, competition.Id)
	assert.Nil(t, err)
	assert.Equal(t, competition.Id, enrollment.CompetitionId)
}

func TestRegisterTwiceIsRejected(t *testing.T) {
	competition := SetUp()
	defer TearDown()
	service := NewRegistrationService(db)

	first, err := service.Register(competition.Id, seniorIdentity("Alice", "Moreau"))
	assert.Nil(t, err)

	second, err := service.Register(competition.Id, seniorIdentity("Alice", "Moreau"))
	assert.Nil(t, second)
	assert.Equal(t, 422, app_error.HTTPStatus(err))

	// the retry did not create a second climber row
	var count int64
	db.Model(&repository.Climber{}).Count(&count)
	assert.Equal(t, int64(1), count)
	assert.NotZero(t, first.Id)
}

func TestRegisterSameIdentityUpdatesContactDetails(t *testing.T) {
	competition := SetUp()
	defer TearDown()
	service := NewRegistrationService(db)

	identity := seniorIdentity("Alice", "Moreau")
	identity.Email = "old@example.com"
	climber, err := service.Register(competition.Id, identity)
	assert.Nil(t, err)

	second := &repository.Competition{
		Name:             "competition2",
		StartsAt:         competition.StartsAt,
		EndsAt:           competition.EndsAt,
		MaxParticipants:  10,
		RegistrationOpen: true,
		Categories:       []*repository.Category{{Name: "Senior", MinAge: 16, MaxAge: 99, Gender: repository.GenderMixed}},
	}
	assert.Nil(t, db.Create(second).Error)

	updated := seniorIdentity("Alice", "Moreau")
	updated.Email = "new@example.com"
	updated.Phone = "0601020304"
	climber2, err := service.Register(second.Id, updated)
	assert.Nil(t, err)
	assert.Equal(t, climber.Id, climber2.Id)
	assert.Equal(t, "new@example.com", climber2.Email)
	assert.Equal(t, "0601020304", climber2.Phone)
}

func TestRegisterClosedRegistration(t *testing.T) {
	competition := SetUp()
	defer TearDown()
	db.Model(&repository.Competition{}).Where("id = ?", competition.Id).Update("registration_open", false)
	service := NewRegistrationService(db)

	_, err := service.Register(competition.Id, seniorIdentity("Alice", "Moreau"))
	assert.Equal(t, 422, app_error.HTTPStatus(err))
}

func TestRegisterFullCompetition(t *testing.T) {
	competition := SetUp()
	defer TearDown()
	db.Model(&repository.Competition{}).Where("id = ?", competition.Id).Update("max_participants", 1)
	service := NewRegistrationService(db)

	_, err := service.Register(competition.Id, seniorIdentity("Alice", "Moreau"))
	assert.Nil(t, err)

	_, err = service.Register(competition.Id, seniorIdentity("Bob", "Martin"))
	assert.Equal(t, 422, app_error.HTTPStatus(err))
	assert.Contains(t, err.Error(), "full")
}

func TestRegisterNoMatchingCategory(t *testing.T) {
	competition := SetUp()
	defer TearDown()
	service := NewRegistrationService(db)

	child := seniorIdentity("Léa", "Petit")
	child.BirthDate = birthDate(2018)
	_, err := service.Register(competition.Id, child)
	assert.Equal(t, 422, app_error.HTTPStatus(err))
	assert.Contains(t, err.Error(), "category")
}

func TestRegisterUnknownCompetition(t *testing.T) {
	SetUp()
	defer TearDown()
	service := NewRegistrationService(db)

	_, err := service.Register(9999, seniorIdentity("Alice", "Moreau"))
	assert.Equal(t, 404, app_error.HTTPStatus(err))
}

func TestRegisterCannotGrantStaffRole(t *testing.T) {
	competition := SetUp()
	defer TearDown()
	service := NewRegistrationService(db)

	identity := seniorIdentity("Alice", "Moreau")
	identity.Role = repository.RoleAdmin
	climber, err := service.Register(competition.Id, identity)
	assert.Nil(t, err)
	assert.Equal(t, repository.RoleClimber, climber.Role)
}
