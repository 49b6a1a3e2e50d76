package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 8, 31, hour, min, 0, 0, time.UTC)
}

func TestNextCheckDelayBeforeMorningAnchor(t *testing.T) {
	assert.Equal(t, time.Hour, NextCheckDelay(at(8, 0)))
	assert.Equal(t, 9*time.Hour, NextCheckDelay(at(0, 0)))
}

func TestNextCheckDelayBetweenAnchors(t *testing.T) {
	assert.Equal(t, 12*time.Hour, NextCheckDelay(at(9, 0)))
	assert.Equal(t, 9*time.Hour, NextCheckDelay(at(12, 0)))
	assert.Equal(t, 30*time.Minute, NextCheckDelay(at(20, 30)))
}

func TestNextCheckDelayAfterEveningAnchorRollsToTomorrow(t *testing.T) {
	assert.Equal(t, 12*time.Hour, NextCheckDelay(at(21, 0)))
	assert.Equal(t, 11*time.Hour, NextCheckDelay(at(22, 0)))
	assert.Equal(t, 9*time.Hour+30*time.Minute, NextCheckDelay(at(23, 30)))
}
