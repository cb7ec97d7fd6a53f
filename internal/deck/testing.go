package deck

// PlaceOnTop puts a card on top of the draw pile so the next draw returns it.
// Intended for tests that need a deterministic draw.
func (d *Deck) PlaceOnTop(c Card) {
	d.cards = append([]Card{c}, d.cards...)
}
