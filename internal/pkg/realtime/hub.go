// Package realtime replaces the original client-side live-query snapshots
// with an explicit publish-subscribe surface. Each mutation publishes a
// change event on a topic; websocket clients subscribe to topics and receive
// every event until they unsubscribe or disconnect.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Topics mirror the live queries the web client used to hold open.
const (
	// TopicFeed receives every post change.
	TopicFeed = "feed"
	// TopicLeaderboard receives point-standings changes.
	TopicLeaderboard = "leaderboard"
)

// TopicPost is the per-post topic carrying its comment and counter changes.
func TopicPost(postID string) string {
	return "post:" + postID
}

// TopicUser is the per-user topic carrying profile and point changes.
func TopicUser(uid string) string {
	return "user:" + uid
}

// Event kinds.
const (
	EventPostCreated    = "post.created"
	EventPostUpdated    = "post.updated"
	EventPostDeleted    = "post.deleted"
	EventCommentCreated = "comment.created"
	EventUserUpdated    = "user.updated"
)

// Event is one change notification delivered to subscribers.
type Event struct {
	Topic     string      `json:"topic"`
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Publisher is the write side of the hub, injected into services.
type Publisher interface {
	Publish(topic, eventType string, payload interface{})
}

// subscription changes a client's topic membership.
type subscription struct {
	client *Client
	topic  string
}

// Hub maintains the set of active clients and routes events to topic
// subscribers.
type Hub struct {
	// Subscribed clients organized by topic
	topics map[string]map[*Client]bool

	// All connected clients and their topic sets
	clients map[*Client]map[string]bool

	// Channel for outbound events
	events chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Subscribe/unsubscribe requests
	subscribe   chan subscription
	unsubscribe chan subscription

	// Mutex for concurrent access to the maps
	mu sync.RWMutex

	// Logger for hub operations
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		topics:      make(map[string]map[*Client]bool),
		clients:     make(map[*Client]map[string]bool),
		events:      make(chan *Event, 256),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan subscription),
		unsubscribe: make(chan subscription),
		logger:      logger.With().Str("component", "realtime").Logger(),
	}
}

// Run starts the hub, handling registrations, topic membership and event
// delivery. It blocks and is normally started in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case sub := <-h.subscribe:
			h.addSubscription(sub.client, sub.topic)

		case sub := <-h.unsubscribe:
			h.removeSubscription(sub.client, sub.topic)

		case event := <-h.events:
			h.deliver(event)
		}
	}
}

// Publish queues an event for delivery to the topic's subscribers. Delivery
// is best-effort: with no running hub or a full queue the event is dropped,
// never blocking the mutation that produced it.
func (h *Hub) Publish(topic, eventType string, payload interface{}) {
	event := &Event{
		Topic:     topic,
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	select {
	case h.events <- event:
	default:
		h.logger.Warn().Str("topic", topic).Str("type", eventType).Msg("Event queue full, dropping event")
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = make(map[string]bool)

	h.logger.Info().
		Str("uid", client.uid).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

// unregisterClient removes a client and all its subscriptions
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	topics, ok := h.clients[client]
	if !ok {
		return
	}

	for topic := range topics {
		if subs, ok := h.topics[topic]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
	}

	delete(h.clients, client)
	close(client.send)

	h.logger.Info().
		Str("uid", client.uid).
		Msg("Client unregistered")
}

// addSubscription adds a client to a topic
func (h *Hub) addSubscription(client *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	topics, ok := h.clients[client]
	if !ok {
		// Client disconnected before the subscription was processed
		return
	}
	topics[topic] = true

	if _, ok := h.topics[topic]; !ok {
		h.topics[topic] = make(map[*Client]bool)
	}
	h.topics[topic][client] = true

	h.logger.Debug().
		Str("uid", client.uid).
		Str("topic", topic).
		Msg("Client subscribed")
}

// removeSubscription removes a client from a topic
func (h *Hub) removeSubscription(client *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if topics, ok := h.clients[client]; ok {
		delete(topics, topic)
	}

	if subs, ok := h.topics[topic]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
}

// deliver sends an event to every subscriber of its topic
func (h *Hub) deliver(event *Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subs, ok := h.topics[event.Topic]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("topic", event.Topic).Msg("Failed to marshal event")
		return
	}

	for client := range subs {
		select {
		case client.send <- data:
		default:
			// Slow consumer: drop the event rather than stall delivery
			h.logger.Debug().
				Str("uid", client.uid).
				Str("topic", event.Topic).
				Msg("Client send buffer full, dropping event")
		}
	}
}

// SubscriberCount reports how many clients follow a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
