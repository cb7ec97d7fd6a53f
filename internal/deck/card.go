package deck

import "fmt"

// Color represents a card color
type Color int

const (
	Red Color = iota
	Blue
	Green
	Yellow
	Wild
)

// String returns the string representation of a color
func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Wild:
		return "wild"
	default:
		return "?"
	}
}

// MarshalText implements encoding.TextMarshaler so colors serialize as names
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "red":
		*c = Red
	case "blue":
		*c = Blue
	case "green":
		*c = Green
	case "yellow":
		*c = Yellow
	case "wild":
		*c = Wild
	default:
		return fmt.Errorf("unknown color: %q", text)
	}
	return nil
}

// Rank represents a card rank
type Rank int

const (
	Zero Rank = iota
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Skip
	Reverse
	DrawTwo
	WildRank
	WildDrawFour
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Zero && r <= Nine:
		return fmt.Sprintf("%d", int(r))
	case r == Skip:
		return "skip"
	case r == Reverse:
		return "reverse"
	case r == DrawTwo:
		return "draw-two"
	case r == WildRank:
		return "wild"
	case r == WildDrawFour:
		return "wild-draw-four"
	default:
		return "?"
	}
}

// MarshalText implements encoding.TextMarshaler so ranks serialize as names
func (r Rank) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Rank) UnmarshalText(text []byte) error {
	s := string(text)
	switch s {
	case "skip":
		*r = Skip
	case "reverse":
		*r = Reverse
	case "draw-two":
		*r = DrawTwo
	case "wild":
		*r = WildRank
	case "wild-draw-four":
		*r = WildDrawFour
	default:
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			*r = Rank(s[0] - '0')
			return nil
		}
		return fmt.Errorf("unknown rank: %q", text)
	}
	return nil
}

// Card represents a single UNO card. Cards are immutable once created and
// identified by ID, which is unique within a deck.
type Card struct {
	ID    int   `json:"id"`
	Color Color `json:"color"`
	Rank  Rank  `json:"rank"`
}

// String returns the string representation of a card (e.g., "red 7")
func (c Card) String() string {
	if c.Color == Wild {
		return c.Rank.String()
	}
	return fmt.Sprintf("%s %s", c.Color, c.Rank)
}

// IsWild returns true for wild and wild-draw-four cards
func (c Card) IsWild() bool {
	return c.Color == Wild
}

// IsAction returns true if playing the card has a turn-order side effect
func (c Card) IsAction() bool {
	switch c.Rank {
	case Skip, Reverse, DrawTwo, WildDrawFour:
		return true
	}
	return false
}
