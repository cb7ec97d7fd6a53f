package game

// turnTracker holds the current actor index and play direction and computes
// successor indexes under normal, skip and reverse semantics.
type turnTracker struct {
	index     int
	direction int // +1 or -1
}

func newTurnTracker() turnTracker {
	return turnTracker{index: 0, direction: 1}
}

// advance moves to the next player in the current direction
func (t *turnTracker) advance(playerCount int) {
	t.index = mod(t.index+t.direction, playerCount)
}

// skip bypasses the next player: base movement plus one more
func (t *turnTracker) skip(playerCount int) {
	t.advance(playerCount)
	t.advance(playerCount)
}

// reverse flips the play direction. In a two-player room the reverse also
// consumes a skip, which collapses to a single advance in the new direction:
// the opponent acts next and the reverser never immediately replays.
func (t *turnTracker) reverse(playerCount int) {
	t.direction = -t.direction
	t.advance(playerCount)
}

// next returns the index the turn would move to without mutating
func (t *turnTracker) next(playerCount int) int {
	return mod(t.index+t.direction, playerCount)
}

// playerRemoved recomputes the current index after the player at removed has
// left: indexes above it shift down, and an out-of-bounds index clamps to 0.
func (t *turnTracker) playerRemoved(removed, newCount int) {
	if removed < t.index {
		t.index--
	}
	if t.index >= newCount {
		t.index = 0
	}
}

// mod normalizes a%b into [0, b)
func mod(a, b int) int {
	return ((a % b) + b) % b
}
