package scoring

import (
	"testing"

	"crux/repository"

	"github.com/stretchr/testify/assert"
)

func validationOn(levelScore int, checkpointOrder int) *repository.Validation {
	level := &repository.Level{Name: "6a", Score: levelScore}
	return &repository.Validation{
		Route:      &repository.Route{Name: "Dalle", Level: level},
		Checkpoint: &repository.Checkpoint{Order: checkpointOrder},
	}
}

func TestScoreDividesByCheckpointOrder(t *testing.T) {
	assert.Equal(t, 100.0, Score(validationOn(100, 1)))
	assert.Equal(t, 50.0, Score(validationOn(100, 2)))
	assert.Equal(t, 100.0/3.0, Score(validationOn(100, 3)))
}

func TestScoreIsRealDivision(t *testing.T) {
	// 25/2 must be 12.5, not a truncated 12.
	assert.Equal(t, 12.5, Score(validationOn(25, 2)))
}

func TestScoreDecreasesWithOrder(t *testing.T) {
	for order := 1; order < 10; order++ {
		assert.Greater(t, Score(validationOn(80, order)), Score(validationOn(80, order+1)))
	}
}

func TestScoreZeroOnMissingReferences(t *testing.T) {
	noLevel := &repository.Validation{
		Route:      &repository.Route{Name: "Dalle"},
		Checkpoint: &repository.Checkpoint{Order: 1},
	}
	noCheckpoint := &repository.Validation{
		Route: &repository.Route{Name: "Dalle", Level: &repository.Level{Score: 100}},
	}
	noRoute := &repository.Validation{Checkpoint: &repository.Checkpoint{Order: 1}}

	assert.Equal(t, 0.0, Score(noLevel))
	assert.Equal(t, 0.0, Score(noCheckpoint))
	assert.Equal(t, 0.0, Score(noRoute))
}
