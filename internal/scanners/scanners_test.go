package scanners

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clearledgr/clearledgr-ap/internal/models"
)

func TestPickBest(t *testing.T) {
	assert.Nil(t, PickBest(nil))

	candidates := []models.FieldCandidate{
		{Value: "late high", Score: 20, Position: 90},
		{Value: "early low", Score: 5, Position: 10},
		{Value: "early high", Score: 20, Position: 40},
	}

	best := PickBest(candidates)
	assert.Equal(t, "early high", best.Value)

	// Input order is untouched.
	assert.Equal(t, "late high", candidates[0].Value)
}

func TestContextWindow(t *testing.T) {
	text := "abcdefghij"
	assert.Equal(t, text, contextWindow(text, 3, 5))

	long := ""
	for i := 0; i < 30; i++ {
		long += "0123456789"
	}
	window := contextWindow(long, 100, 110)
	assert.Len(t, window, 110)
}
