package service

import (
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"crux/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/ory/dockertest/v3"
)

var db *gorm.DB

var enumQueries = []string{
	`CREATE TYPE crux.gender AS ENUM ('male', 'female', 'mixed')`,
	`CREATE TYPE crux.role AS ENUM ('admin', 'setter', 'climber')`,
}

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.Run("postgres", "17.2-alpine", []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "DATABASE_NAME=postgres"})
	if err != nil {
		log.Fatalf("Could not start resource: %s", err)
	}
	resource.Expire(600) // Tell docker to hard kill the container in 10 minutes
	sqlInfo := fmt.Sprintf(
		"host=localhost port=%s user=postgres password=postgres dbname=postgres sslmode=disable search_path=crux",
		resource.GetPort("5432/tcp"))

	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
	if err := pool.Retry(func() error {
		var err error
		db, err = gorm.Open(postgres.Open(sqlInfo), &gorm.Config{
			NamingStrategy: schema.NamingStrategy{
				TablePrefix:   "crux.",
				SingularTable: false,
			},
			Logger: logger.Default.LogMode(logger.Silent),
		})

		if err != nil {
			return err
		}
		db.Exec(`CREATE SCHEMA IF NOT EXISTS crux`)
		for _, query := range enumQueries {
			x := db.Exec(query)
			if x.Error != nil {
				if strings.Contains(x.Error.Error(), "already exists") {
					continue
				}
			}
		}
		return db.AutoMigrate(
			&repository.Climber{},
			&repository.Level{},
			&repository.Route{},
			&repository.Checkpoint{},
			&repository.Category{},
			&repository.Competition{},
			&repository.Enrollment{},
			&repository.Validation{},
		)

	}); err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge resource: %s", err)
		}

	}()
	m.Run()
}

func TearDown() {
	db.Exec("DELETE FROM crux.validations")
	db.Exec("DELETE FROM crux.enrollments")
	db.Exec("DELETE FROM crux.competition_categories")
	db.Exec("DELETE FROM crux.competition_routes")
	db.Exec("DELETE FROM crux.competitions")
	db.Exec("DELETE FROM crux.checkpoints")
	db.Exec("DELETE FROM crux.routes")
	db.Exec("DELETE FROM crux.levels")
	db.Exec("DELETE FROM crux.categories")
	db.Exec("DELETE FROM crux.climbers")
}

// SetUp creates a competition with one mixed category, one route with two
// checkpoints and registration open.
func SetUp() *repository.Competition {
	level := &repository.Level{Name: "blue", Score: 40}
	if err := db.Create(level).Error; err != nil {
		log.Fatalf("Error creating level: %v", err)
	}
	route := &repository.Route{
		Name:    "route1",
		LevelId: &level.Id,
		Checkpoints: []*repository.Checkpoint{
			{X: 10, Y: 20, Radius: 5, Order: 1},
			{X: 30, Y: 40, Radius: 5, Order: 2},
		},
	}
	if err := db.Create(route).Error; err != nil {
		log.Fatalf("Error creating route: %v", err)
	}
	competition := &repository.Competition{
		Name:             "competition1",
		StartsAt:         time.Now().Add(-time.Hour),
		EndsAt:           time.Now().Add(time.Hour),
		MaxParticipants:  10,
		IsOpen:           true,
		RegistrationOpen: true,
		Categories: []*repository.Category{
			{Name: "Senior", MinAge: 16, MaxAge: 99, Gender: repository.GenderMixed},
		},
		Routes: []*repository.Route{route},
	}
	if err := db.Create(competition).Error; err != nil {
		log.Fatalf("Error creating competition: %v", err)
	}
	return competition
}

func birthDate(year int) time.Time {
	return time.Date(year, 6, 15, 0, 0, 0, 0, time.UTC)
}

func seniorIdentity(firstName string, lastName string) *ClimberIdentity {
	return &ClimberIdentity{
		FirstName: firstName,
		LastName:  lastName,
		BirthDate: birthDate(1990),
		Gender:    repository.GenderFemale,
	}
}
