package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/callout-games/uno-server/internal/deck"
)

// allCards enumerates one card of every color/rank combination in the deck
func allCards() []deck.Card {
	var cards []deck.Card
	id := 0
	for color := deck.Red; color <= deck.Yellow; color++ {
		for rank := deck.Zero; rank <= deck.DrawTwo; rank++ {
			cards = append(cards, deck.Card{ID: id, Color: color, Rank: rank})
			id++
		}
	}
	cards = append(cards,
		deck.Card{ID: id, Color: deck.Wild, Rank: deck.WildRank},
		deck.Card{ID: id + 1, Color: deck.Wild, Rank: deck.WildDrawFour},
	)
	return cards
}

func TestIsLegalAgainstColoredTop(t *testing.T) {
	top := deck.Card{Color: deck.Red, Rank: deck.Five}

	for _, card := range allCards() {
		expected := card.IsWild() || card.Color == deck.Red || card.Rank == deck.Five
		assert.Equal(t, expected, IsLegal(card, top, nil), "card %s vs top %s", card, top)
	}
}

func TestIsLegalDeclaredColorOverridesTop(t *testing.T) {
	// After a wild play the wild itself is on top and the declared color is
	// the only color that matches
	top := deck.Card{Color: deck.Wild, Rank: deck.WildRank}
	declared := deck.Blue

	for _, card := range allCards() {
		expected := card.IsWild() || card.Color == deck.Blue || card.Rank == deck.WildRank
		assert.Equal(t, expected, IsLegal(card, top, &declared), "card %s vs declared %s", card, declared)
	}
}

func TestIsLegalDeclaredColorBeatsTopColor(t *testing.T) {
	// A stale top color must not match once a declared color is in force
	top := deck.Card{Color: deck.Green, Rank: deck.Seven}
	declared := deck.Yellow

	assert.False(t, IsLegal(deck.Card{Color: deck.Green, Rank: deck.Two}, top, &declared))
	assert.True(t, IsLegal(deck.Card{Color: deck.Yellow, Rank: deck.Two}, top, &declared))
	assert.True(t, IsLegal(deck.Card{Color: deck.Green, Rank: deck.Seven}, top, &declared), "rank match still applies")
}

func TestDrawPenalty(t *testing.T) {
	assert.Equal(t, 2, drawPenalty(deck.DrawTwo))
	assert.Equal(t, 4, drawPenalty(deck.WildDrawFour))
	assert.Equal(t, 0, drawPenalty(deck.Skip))
	assert.Equal(t, 0, drawPenalty(deck.Five))
	assert.Equal(t, 0, drawPenalty(deck.WildRank))
}
