package cities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("Milan"))
	assert.True(t, IsKnown("milan"))
	assert.True(t, IsKnown("BERGAMO"))
	assert.False(t, IsKnown("Atlantis"))
	assert.False(t, IsKnown(""))
}
