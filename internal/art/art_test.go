package art

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForLocation(t *testing.T) {
	assert.NotEmpty(t, ForLocation("Dark Forest"))
	assert.NotEmpty(t, ForLocation("Meridian Station"))
	assert.Empty(t, ForLocation("Featureless Void"))
}

func TestForCreature(t *testing.T) {
	assert.NotEmpty(t, ForCreature("Security Drone", false))
	assert.Empty(t, ForCreature("Scavenger", false))

	// Every boss gets the same block regardless of name.
	assert.Equal(t, ForCreature("AI Overlord", true), ForCreature("Dark Lord", true))
	assert.NotEmpty(t, ForCreature("AI Overlord", true))
}
