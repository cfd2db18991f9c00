package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderMixed  Gender = "mixed"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSetter  Role = "setter"
	RoleClimber Role = "climber"
)

// StaffRoles may manage competitions, routes and validations.
var StaffRoles = []Role{RoleAdmin, RoleSetter}

type Climber struct {
	Id        int       `gorm:"primaryKey"`
	FirstName string    `gorm:"not null;uniqueIndex:idx_climber_identity"`
	LastName  string    `gorm:"not null;uniqueIndex:idx_climber_identity"`
	BirthDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_climber_identity"`
	Phone     string    `gorm:"null"`
	Email     string    `gorm:"null"`
	Gender    Gender    `gorm:"type:crux.gender;not null"`
	Role      Role      `gorm:"type:crux.role;not null;default:'climber'"`
	LoginCode string    `gorm:"size:6;index"`
	CreatedAt time.Time
}

// Age is the calendar-year age: current year minus birth year. Category
// cohorts are aligned to the competition season, not to birthdays.
func (c *Climber) Age() int {
	return time.Now().Year() - c.BirthDate.Year()
}

func (c *Climber) FullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}

func (c *Climber) IsStaff() bool {
	return c.Role == RoleAdmin || c.Role == RoleSetter
}

type ClimberRepository struct {
	DB *gorm.DB
}

func NewClimberRepository(db *gorm.DB) *ClimberRepository {
	return &ClimberRepository{DB: db}
}

func (r *ClimberRepository) GetClimberById(climberId int) (*Climber, error) {
	var climber Climber
	result := r.DB.First(&climber, climberId)
	if result.Error != nil {
		return nil, fmt.Errorf("climber with id %d not found", climberId)
	}
	return &climber, nil
}

func (r *ClimberRepository) GetClimbersByIds(climberIds []int) ([]*Climber, error) {
	climbers := make([]*Climber, 0)
	result := r.DB.Find(&climbers, "id IN ?", climberIds)
	if result.Error != nil {
		return nil, result.Error
	}
	return climbers, nil
}

func (r *ClimberRepository) GetClimberByLoginCode(code string) (*Climber, error) {
	var climber Climber
	result := r.DB.First(&climber, "login_code = ?", code)
	if result.Error != nil {
		return nil, result.Error
	}
	return &climber, nil
}

// GetClimberByIdentity looks a climber up by the (first name, last name,
// birth date) natural key used to detect a returning person.
func (r *ClimberRepository) GetClimberByIdentity(firstName string, lastName string, birthDate time.Time) (*Climber, error) {
	var climber Climber
	result := r.DB.First(&climber, "first_name = ? AND last_name = ? AND birth_date = ?", firstName, lastName, birthDate)
	if result.Error != nil {
		return nil, result.Error
	}
	return &climber, nil
}

func (r *ClimberRepository) SaveClimber(climber *Climber) (*Climber, error) {
	result := r.DB.Save(climber)
	if result.Error != nil {
		return nil, result.Error
	}
	return climber, nil
}

func (r *ClimberRepository) FindAll() ([]*Climber, error) {
	climbers := make([]*Climber, 0)
	result := r.DB.Order("last_name ASC, first_name ASC").Find(&climbers)
	if result.Error != nil {
		return nil, result.Error
	}
	return climbers, nil
}
