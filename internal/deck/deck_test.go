package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callout-games/uno-server/internal/randutil"
)

func newTestDeck(t *testing.T) *Deck {
	t.Helper()
	return New(randutil.New(42))
}

func TestNewDeckComposition(t *testing.T) {
	d := newTestDeck(t)
	require.Equal(t, Size, d.DrawCount())

	colorCounts := make(map[Color]int)
	rankCounts := make(map[Rank]int)
	ids := make(map[int]bool)
	for _, c := range d.cards {
		colorCounts[c.Color]++
		rankCounts[c.Rank]++
		require.False(t, ids[c.ID], "duplicate card id %d", c.ID)
		ids[c.ID] = true
	}

	for color := Red; color <= Yellow; color++ {
		assert.Equal(t, 25, colorCounts[color], "color %s", color)
	}
	assert.Equal(t, 8, colorCounts[Wild])

	assert.Equal(t, 4, rankCounts[Zero])
	for rank := One; rank <= DrawTwo; rank++ {
		assert.Equal(t, 8, rankCounts[rank], "rank %s", rank)
	}
	assert.Equal(t, 4, rankCounts[WildRank])
	assert.Equal(t, 4, rankCounts[WildDrawFour])
}

func TestDrawRemovesFromTop(t *testing.T) {
	d := newTestDeck(t)
	top := d.cards[0]

	cards := d.Draw(3)
	require.Len(t, cards, 3)
	assert.Equal(t, top, cards[0])
	assert.Equal(t, Size-3, d.DrawCount())
}

func TestDrawReshufflesDiscard(t *testing.T) {
	d := newTestDeck(t)

	// Move everything except five cards onto the discard pile
	for _, c := range d.Draw(Size - 5) {
		d.Discard(c)
	}
	top, ok := d.Top()
	require.True(t, ok)

	discarded := make(map[int]bool)
	for _, c := range d.discard {
		discarded[c.ID] = true
	}

	cards := d.Draw(10)
	require.Len(t, cards, 10)

	// The prior top card must be the sole discard entry after the reshuffle
	assert.Equal(t, 1, d.DiscardCount())
	newTop, ok := d.Top()
	require.True(t, ok)
	assert.Equal(t, top, newTop)

	// Cards drawn past the original five all came from the discard pile,
	// never the set-aside top card
	for _, c := range cards[5:] {
		assert.True(t, discarded[c.ID], "card %s not from discard pile", c)
		assert.NotEqual(t, top.ID, c.ID)
	}

	// Conservation: draw + discard + drawn = 108
	assert.Equal(t, Size, d.DrawCount()+d.DiscardCount()+len(cards))
}

func TestReshuffleMultisetPreserved(t *testing.T) {
	d := newTestDeck(t)

	for _, c := range d.Draw(Size) {
		d.Discard(c)
	}
	require.Equal(t, 0, d.DrawCount())
	require.Equal(t, Size, d.DiscardCount())

	before := make(map[int]bool)
	for _, c := range d.discard {
		before[c.ID] = true
	}

	require.True(t, d.reshuffle())
	assert.Equal(t, Size-1, d.DrawCount())
	assert.Equal(t, 1, d.DiscardCount())

	after := make(map[int]bool)
	for _, c := range d.cards {
		after[c.ID] = true
	}
	top, _ := d.Top()
	after[top.ID] = true
	assert.Equal(t, before, after)
}

func TestDrawShortWhenExhausted(t *testing.T) {
	d := newTestDeck(t)

	// Simulate every other card being held in hands: empty draw pile, one
	// card on the discard pile
	all := d.Draw(Size)
	d.Discard(all[0])

	cards := d.Draw(4)
	assert.Empty(t, cards, "draw must come up short, not recycle the top discard")
	assert.Equal(t, 1, d.DiscardCount())
}

func TestFlipInitialSkipsWilds(t *testing.T) {
	d := newTestDeck(t)

	card, ok := d.FlipInitial()
	require.True(t, ok)
	assert.False(t, card.IsWild())

	top, ok := d.Top()
	require.True(t, ok)
	assert.Equal(t, card, top)
	assert.Equal(t, Size, d.DrawCount()+d.DiscardCount())
}

func TestFlipInitialBuriesWilds(t *testing.T) {
	d := newTestDeck(t)

	// Force a wild onto the top of the draw pile
	for i, c := range d.cards {
		if c.IsWild() {
			d.cards[0], d.cards[i] = d.cards[i], d.cards[0]
			break
		}
	}
	wild := d.cards[0]

	card, ok := d.FlipInitial()
	require.True(t, ok)
	assert.False(t, card.IsWild())

	// The buried wild stays in the draw pile
	found := false
	for _, c := range d.cards {
		if c.ID == wild.ID {
			found = true
		}
	}
	assert.True(t, found)
}
