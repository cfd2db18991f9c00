package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"crux/app_error"
	"crux/repository"

	"gorm.io/gorm"
)

// GenerateLoginCode derives the 6-digit login code from the climber's
// identity: sha256 over lowercased last name, lowercased first name, birth
// year and gender, first six hex characters mapped to digits. The code is an
// easy-to-type login shortcut, not a credential; collisions are tolerated
// and staff can re-issue a code.
func GenerateLoginCode(lastName string, firstName string, birthYear int, gender repository.Gender) string {
	data := fmt.Sprintf("%s%s%d%s", strings.ToLower(lastName), strings.ToLower(firstName), birthYear, gender)
	sum := sha256.Sum256([]byte(data))
	digest := hex.EncodeToString(sum[:])
	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		code[i] = '0' + digest[i]%10
	}
	return string(code)
}

// ClimberIdentity is the registration payload for a climber. FirstName,
// LastName and BirthDate form the natural key; the remaining fields are
// mutable on re-registration.
type ClimberIdentity struct {
	FirstName string
	LastName  string
	BirthDate time.Time
	Email     string
	Phone     string
	Gender    repository.Gender
	Role      repository.Role
}

func (i *ClimberIdentity) validate() error {
	if i.FirstName == "" || i.LastName == "" || i.BirthDate.IsZero() {
		return app_error.Rejected("first name, last name and birth date are required")
	}
	if i.Gender != repository.GenderMale && i.Gender != repository.GenderFemale {
		return app_error.Rejected("gender must be male or female")
	}
	return nil
}

type ClimberService struct {
	climberRepository    *repository.ClimberRepository
	validationRepository *repository.ValidationRepository
	enrollmentRepository *repository.EnrollmentRepository
}

func NewClimberService(db *gorm.DB) *ClimberService {
	return &ClimberService{
		climberRepository:    repository.NewClimberRepository(db),
		validationRepository: repository.NewValidationRepository(db),
		enrollmentRepository: repository.NewEnrollmentRepository(db),
	}
}

// GetClimberCounts returns the number of validations and enrollments a
// climber has across all competitions, for the staff user listing.
func (s *ClimberService) GetClimberCounts(climberId int) (int64, int64, error) {
	validations, err := s.validationRepository.CountForClimber(climberId)
	if err != nil {
		return 0, 0, err
	}
	enrollments, err := s.enrollmentRepository.CountForClimber(climberId)
	if err != nil {
		return 0, 0, err
	}
	return validations, enrollments, nil
}

func (s *ClimberService) GetClimberById(climberId int) (*repository.Climber, error) {
	return s.climberRepository.GetClimberById(climberId)
}

func (s *ClimberService) GetClimbersByIds(climberIds []int) ([]*repository.Climber, error) {
	return s.climberRepository.GetClimbersByIds(climberIds)
}

func (s *ClimberService) GetAllClimbers() ([]*repository.Climber, error) {
	return s.climberRepository.FindAll()
}

// UpsertByIdentity creates a climber or, when the natural key already
// exists, updates the mutable fields of the existing row. The unique
// constraint on (first name, last name, birth date) is the source of truth:
// a concurrent insert losing the race is retried as an update.
func (s *ClimberService) UpsertByIdentity(identity *ClimberIdentity) (*repository.Climber, bool, error) {
	if err := identity.validate(); err != nil {
		return nil, false, err
	}
	climber, err := s.climberRepository.GetClimberByIdentity(identity.FirstName, identity.LastName, identity.BirthDate)
	if err == nil {
		return s.updateExisting(climber, identity)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, app_error.Persistence(err)
	}

	role := identity.Role
	if role == "" {
		role = repository.RoleClimber
	}
	climber = &repository.Climber{
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		BirthDate: identity.BirthDate,
		Email:     identity.Email,
		Phone:     identity.Phone,
		Gender:    identity.Gender,
		Role:      role,
		LoginCode: GenerateLoginCode(identity.LastName, identity.FirstName, identity.BirthDate.Year(), identity.Gender),
	}
	climber, err = s.climberRepository.SaveClimber(climber)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			// Lost an insert race on the natural key: the row exists now.
			existing, lookupErr := s.climberRepository.GetClimberByIdentity(identity.FirstName, identity.LastName, identity.BirthDate)
			if lookupErr != nil {
				return nil, false, app_error.Persistence(lookupErr)
			}
			return s.updateExisting(existing, identity)
		}
		return nil, false, app_error.Persistence(err)
	}
	return climber, true, nil
}

func (s *ClimberService) updateExisting(climber *repository.Climber, identity *ClimberIdentity) (*repository.Climber, bool, error) {
	if identity.Email != "" {
		climber.Email = identity.Email
	}
	if identity.Phone != "" {
		climber.Phone = identity.Phone
	}
	climber.Gender = identity.Gender
	climber, err := s.climberRepository.SaveClimber(climber)
	if err != nil {
		return nil, false, app_error.Persistence(err)
	}
	return climber, false, nil
}

// LoginByCodes resolves login codes to climbers, ignoring codes that match
// nobody. At least one code has to resolve.
func (s *ClimberService) LoginByCodes(codes []string) ([]*repository.Climber, error) {
	climbers := make([]*repository.Climber, 0)
	for _, code := range codes {
		climber, err := s.climberRepository.GetClimberByLoginCode(code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, app_error.Persistence(err)
		}
		climbers = append(climbers, climber)
	}
	if len(climbers) == 0 {
		return nil, app_error.Rejected("no valid login code")
	}
	return climbers, nil
}

// ReissueLoginCode lets staff replace a colliding code.
func (s *ClimberService) ReissueLoginCode(climberId int, code string) (*repository.Climber, error) {
	climber, err := s.climberRepository.GetClimberById(climberId)
	if err != nil {
		return nil, app_error.NotFound("%v", err)
	}
	if len(code) != 6 {
		return nil, app_error.Rejected("login code must have 6 digits")
	}
	climber.LoginCode = code
	climber, err = s.climberRepository.SaveClimber(climber)
	if err != nil {
		return nil, app_error.Persistence(err)
	}
	return climber, nil
}
