package shell_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

func Test_FixedClock_AdvancesOnlyWhenTold(t *testing.T) {
	// arrange
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.FixedZone("CET", 3600))
	clock := shell.NewFixedClock(start)

	// act
	first := clock.Now()
	advanced := clock.Advance(48 * time.Hour)

	// assert
	assert.Equal(t, time.UTC, first.Location())
	assert.True(t, first.Equal(start))
	assert.Equal(t, first.Add(48*time.Hour), advanced)
	assert.Equal(t, advanced, clock.Now())
}

func Test_IDGeneratorFunc(t *testing.T) {
	// arrange
	next := 0
	generator := shell.IDGeneratorFunc(func() string {
		next++
		return "id-" + string(rune('0'+next))
	})

	// act & assert
	assert.Equal(t, "id-1", generator.NewID())
	assert.Equal(t, "id-2", generator.NewID())
	assert.Len(t, shell.UUIDGenerator{}.NewID(), 36)
}
