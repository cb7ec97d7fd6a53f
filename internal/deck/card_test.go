package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardString(t *testing.T) {
	tests := []struct {
		name     string
		card     Card
		expected string
	}{
		{name: "numeric", card: Card{Color: Red, Rank: Seven}, expected: "red 7"},
		{name: "action", card: Card{Color: Green, Rank: DrawTwo}, expected: "green draw-two"},
		{name: "wild", card: Card{Color: Wild, Rank: WildRank}, expected: "wild"},
		{name: "wild draw four", card: Card{Color: Wild, Rank: WildDrawFour}, expected: "wild-draw-four"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.card.String())
		})
	}
}

func TestCardPredicates(t *testing.T) {
	assert.True(t, Card{Color: Wild, Rank: WildRank}.IsWild())
	assert.False(t, Card{Color: Blue, Rank: Skip}.IsWild())

	assert.True(t, Card{Color: Blue, Rank: Skip}.IsAction())
	assert.True(t, Card{Color: Wild, Rank: WildDrawFour}.IsAction())
	assert.False(t, Card{Color: Yellow, Rank: Zero}.IsAction())
	assert.False(t, Card{Color: Wild, Rank: WildRank}.IsAction())
}
