package game

import "github.com/callout-games/uno-server/internal/deck"

// IsLegal reports whether card may be played against the current discard
// state. Wild cards are always legal. Otherwise color and rank are
// independent match axes: the card's color must equal the active match color
// (declaredColor when a wild lock is in force, the top card's color
// otherwise), or its rank must equal the top card's rank.
func IsLegal(card, top deck.Card, declaredColor *deck.Color) bool {
	if card.IsWild() {
		return true
	}

	matchColor := top.Color
	if declaredColor != nil {
		matchColor = *declaredColor
	}
	return card.Color == matchColor || card.Rank == top.Rank
}

// drawPenalty returns how many cards a draw-rank card forces on the next
// player, or zero for ranks without a draw effect
func drawPenalty(rank deck.Rank) int {
	switch rank {
	case deck.DrawTwo:
		return 2
	case deck.WildDrawFour:
		return 4
	}
	return 0
}
