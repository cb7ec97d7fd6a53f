package deck

import (
	rand "math/rand/v2"
)

// Size is the number of cards in a full UNO deck
const Size = 108

// Deck owns the draw pile and the discard pile for one game. The draw pile is
// replenished from the discard pile (minus its top card) whenever a draw would
// exhaust it, so Draw only ever comes up short when every other card is held
// in player hands.
type Deck struct {
	cards   []Card // draw pile, index 0 is the top
	discard []Card // discard pile, last index is the top
	rng     *rand.Rand
}

// New creates a full 108-card UNO deck shuffled with the provided RNG.
// Per color: one 0, two each of 1-9, skip, reverse and draw-two; plus four
// wild and four wild-draw-four.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards:   make([]Card, 0, Size),
		discard: make([]Card, 0, Size),
		rng:     rng,
	}

	id := 0
	add := func(color Color, rank Rank) {
		d.cards = append(d.cards, Card{ID: id, Color: color, Rank: rank})
		id++
	}

	for color := Red; color <= Yellow; color++ {
		add(color, Zero)
		for rank := One; rank <= DrawTwo; rank++ {
			add(color, rank)
			add(color, rank)
		}
	}
	for i := 0; i < 4; i++ {
		add(Wild, WildRank)
		add(Wild, WildDrawFour)
	}

	d.shuffle(d.cards)
	return d
}

// shuffle applies an unbiased Fisher-Yates permutation in place
func (d *Deck) shuffle(cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Draw removes and returns up to n cards from the top of the draw pile,
// reshuffling the discard pile back in if the draw pile runs out mid-draw.
// It returns fewer than n cards only when the draw pile and the discard pile
// (minus its top card) are both empty.
func (d *Deck) Draw(n int) []Card {
	drawn := make([]Card, 0, n)
	for len(drawn) < n {
		if len(d.cards) == 0 {
			if !d.reshuffle() {
				break
			}
		}
		drawn = append(drawn, d.cards[0])
		d.cards = d.cards[1:]
	}
	return drawn
}

// DrawOne removes and returns the top card of the draw pile
func (d *Deck) DrawOne() (Card, bool) {
	cards := d.Draw(1)
	if len(cards) == 0 {
		return Card{}, false
	}
	return cards[0], true
}

// reshuffle moves every discard except the top card back into the draw pile
// and shuffles it. Returns false if there was nothing to reshuffle.
func (d *Deck) reshuffle() bool {
	if len(d.discard) <= 1 {
		return false
	}
	top := d.discard[len(d.discard)-1]
	d.cards = append(d.cards, d.discard[:len(d.discard)-1]...)
	d.discard = append(d.discard[:0], top)
	d.shuffle(d.cards)
	return true
}

// Discard places a card on top of the discard pile
func (d *Deck) Discard(c Card) {
	d.discard = append(d.discard, c)
}

// Top returns the top card of the discard pile
func (d *Deck) Top() (Card, bool) {
	if len(d.discard) == 0 {
		return Card{}, false
	}
	return d.discard[len(d.discard)-1], true
}

// FlipInitial draws cards until a non-wild card comes up, discards it, and
// returns it. Wild draws go back to the bottom of the draw pile, matching the
// table rule of burying a flipped wild and flipping again.
func (d *Deck) FlipInitial() (Card, bool) {
	for i := 0; i < len(d.cards)+1; i++ {
		card, ok := d.DrawOne()
		if !ok {
			return Card{}, false
		}
		if !card.IsWild() {
			d.Discard(card)
			return card, true
		}
		d.cards = append(d.cards, card)
	}
	return Card{}, false
}

// DrawCount returns the number of cards left in the draw pile
func (d *Deck) DrawCount() int {
	return len(d.cards)
}

// DiscardCount returns the number of cards in the discard pile
func (d *Deck) DiscardCount() int {
	return len(d.discard)
}
