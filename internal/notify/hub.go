package notify

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AdminRoom is the logical recipient group for fulfillment staff.
// Customer rooms are named by UserRoom.
const AdminRoom = "admin"

// Event names pushed over the notification channel
const (
	EventNewOrder          = "newOrder"
	EventOrderStatusUpdate = "orderStatusUpdate"
	EventOrderCancelled    = "orderCancelled"
	EventLowStock          = "lowStock"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// Event is a single notification pushed to subscribers of a room
type Event struct {
	Name    string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// UserRoom returns the room name owned by the given user
func UserRoom(userID uint) string {
	return "user-" + strconv.FormatUint(uint64(userID), 10)
}

// subscriber is one live connection attached to one or more rooms
type subscriber struct {
	id    string
	rooms []string
	ch    chan Event
}

// Hub is an in-process publish/subscribe registry mapping room names to
// live subscriber connections. Delivery is fire-and-forget, at-most-once,
// best-effort: events sent to a room with no subscribers are dropped, and
// a subscriber whose buffer is full misses the event. There is no replay.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[string]*subscriber
}

// NewHub creates an empty notification hub
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[string]*subscriber)}
}

// Subscribe attaches a new subscriber to the given rooms and returns a
// receive channel plus a cancel function. The channel is buffered; the
// caller must drain it promptly or events will be dropped.
func (h *Hub) Subscribe(rooms ...string) (<-chan Event, func()) {
	sub := &subscriber{
		id:    uuid.NewString(),
		rooms: rooms,
		ch:    make(chan Event, 16),
	}

	h.mu.Lock()
	for _, room := range rooms {
		if h.rooms[room] == nil {
			h.rooms[room] = make(map[string]*subscriber)
		}
		h.rooms[room][sub.id] = sub
	}
	h.mu.Unlock()

	log.WithFields(logrus.Fields{
		"subscriber": sub.id,
		"rooms":      rooms,
	}).Debug("Subscriber joined")

	return sub.ch, func() { h.unsubscribe(sub) }
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	for _, room := range sub.rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, sub.id)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	h.mu.Unlock()
	close(sub.ch)
}

// Publish sends an event to every live subscriber of the room. The send
// never blocks: subscribers that cannot keep up miss the event.
func (h *Hub) Publish(room, event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := h.rooms[room]
	if len(members) == 0 {
		log.WithFields(logrus.Fields{"room": room, "event": event}).Debug("No subscribers for room, event dropped")
		return
	}

	ev := Event{Name: event, Payload: payload}
	for _, sub := range members {
		select {
		case sub.ch <- ev:
		default:
			log.WithFields(logrus.Fields{
				"subscriber": sub.id,
				"room":       room,
				"event":      event,
			}).Warn("Subscriber buffer full, event dropped")
		}
	}
}

// Subscribers returns the number of live subscribers in a room
func (h *Hub) Subscribers(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
