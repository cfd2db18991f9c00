package service

import (
	"testing"

	"crux/app_error"
	"crux/repository"

	"github.com/stretchr/testify/assert"
)

func TestGenerateLoginCode(t *testing.T) {
	code := GenerateLoginCode("Moreau", "Alice", 1990, repository.GenderFemale)
	assert.Equal(t, "823279", code)

	// derivation is case-insensitive on the names
	assert.Equal(t, code, GenerateLoginCode("MOREAU", "ALICE", 1990, repository.GenderFemale))

	assert.Equal(t, "922920", GenerateLoginCode("Martin", "Bob", 1985, repository.GenderMale))
	assert.Equal(t, "252561", GenerateLoginCode("Martin", "Bob", 1986, repository.GenderMale))

	for _, c := range GenerateLoginCode("Nguyen", "Chloé", 2001, repository.GenderFemale) {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestLoginByCodes(t *testing.T) {
	competition := SetUp()
	defer TearDown()
	service := NewClimberService(db)

	alice := register(t, competition, "Alice", "Moreau")
	bob := register(t, competition, "Bob", "Martin")

	climbers, err := service.LoginByCodes([]string{alice.LoginCode, bob.LoginCode})
	assert.Nil(t, err)
	assert.Len(t, climbers, 2)

	// unmatched codes are skipped as long as one resolves
	climbers, err = service.LoginByCodes([]string{"000000", alice.LoginCode})
	assert.Nil(t, err)
	assert.Len(t, climbers, 1)
	assert.Equal(t, alice.Id, climbers[0].Id)

	_, err = service.LoginByCodes([]string{"000000"})
	assert.Equal(t, 422, app_error.HTTPStatus(err))
}

func TestReissueLoginCode(t *testing.T) {
	competition := SetUp()
	defer TearDown()
	service := NewClimberService(db)

	alice := register(t, competition, "Alice", "Moreau")

	updated, err := service.ReissueLoginCode(alice.Id, "111222")
	assert.Nil(t, err)
	assert.Equal(t, "111222", updated.LoginCode)

	_, err = service.ReissueLoginCode(alice.Id, "12345")
	assert.Equal(t, 422, app_error.HTTPStatus(err))

	_, err = service.ReissueLoginCode(9999, "111222")
	assert.Equal(t, 404, app_error.HTTPStatus(err))
}
