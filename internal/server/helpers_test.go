package server

import (
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/callout-games/uno-server/internal/roomid"
)

// testLogger creates a logger that discards output for tests
func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// recorderSender captures outbound messages instead of writing to sockets
type recorderSender struct {
	mu        sync.Mutex
	broadcast []*Message
	targeted  map[string][]*Message
}

func newRecorderSender() *recorderSender {
	return &recorderSender{targeted: make(map[string][]*Message)}
}

func (r *recorderSender) BroadcastToRoom(code string, msg *Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcast = append(r.broadcast, msg)
}

func (r *recorderSender) SendToPlayer(playerID string, msg *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targeted[playerID] = append(r.targeted[playerID], msg)
	return nil
}

// lastBroadcast returns the most recent broadcast of the given type, or nil
func (r *recorderSender) lastBroadcast(mt MessageType) *Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.broadcast) - 1; i >= 0; i-- {
		if r.broadcast[i].Type == mt {
			return r.broadcast[i]
		}
	}
	return nil
}

func (r *recorderSender) broadcastCount(mt MessageType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, msg := range r.broadcast {
		if msg.Type == mt {
			n++
		}
	}
	return n
}

// lastTargeted returns the most recent message of the given type sent to a
// specific player, or nil
func (r *recorderSender) lastTargeted(playerID string, mt MessageType) *Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.targeted[playerID]
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Type == mt {
			return msgs[i]
		}
	}
	return nil
}

func (r *recorderSender) targetedCount(playerID string, mt MessageType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, msg := range r.targeted[playerID] {
		if msg.Type == mt {
			n++
		}
	}
	return n
}

// decode unmarshals a message payload into out, failing the test on error
func decode(t *testing.T, msg *Message, out interface{}) {
	t.Helper()
	require.NotNil(t, msg)
	require.NoError(t, json.Unmarshal(msg.Data, out))
}

// seqSource hands out room codes deterministically
type seqSource struct {
	n int
}

func (s *seqSource) IntN(n int) int {
	s.n++
	return s.n % n
}

// newTestService wires a service to a recorder and a mock clock
func newTestService(t *testing.T) (*RoomService, *recorderSender, *quartz.Mock) {
	t.Helper()
	sender := newRecorderSender()
	mockClock := quartz.NewMock(t)
	svc := NewRoomService(sender, mockClock, 5*time.Second, testLogger())
	svc.SetGenerator(roomid.NewGenerator(&seqSource{}))
	return svc, sender, mockClock
}
