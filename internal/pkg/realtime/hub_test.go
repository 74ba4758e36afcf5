package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/pkg/auth"
)

func newWSServer(t *testing.T) (*Hub, *httptest.Server, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop())
	go hub.Run()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
	})

	router := gin.New()
	router.GET("/ws", NewHandler(hub, jwtService).Serve)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return hub, server, jwtService
}

func dialWS(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func subscribe(t *testing.T, conn *websocket.Conn, hub *Hub, topic string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]string{"action": "subscribe", "topic": topic}))

	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount(topic) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("subscription to %q never registered", topic)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) *Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	return &event
}

func TestSubscriberReceivesPublishedEvent(t *testing.T) {
	hub, server, _ := newWSServer(t)
	conn := dialWS(t, server, "")

	subscribe(t, conn, hub, TopicFeed)

	hub.Publish(TopicFeed, EventPostCreated, map[string]string{"id": "p1"})

	event := readEvent(t, conn)
	assert.Equal(t, TopicFeed, event.Topic)
	assert.Equal(t, EventPostCreated, event.Type)

	payload, ok := event.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "p1", payload["id"])
	assert.False(t, event.Timestamp.IsZero())
}

func TestEventsAreScopedToTopics(t *testing.T) {
	hub, server, _ := newWSServer(t)
	conn := dialWS(t, server, "")

	subscribe(t, conn, hub, TopicPost("p1"))

	// Events on other topics must not reach this subscriber.
	hub.Publish(TopicFeed, EventPostCreated, nil)
	hub.Publish(TopicPost("p2"), EventCommentCreated, nil)
	hub.Publish(TopicPost("p1"), EventCommentCreated, nil)

	event := readEvent(t, conn)
	assert.Equal(t, "post:p1", event.Topic)
	assert.Equal(t, EventCommentCreated, event.Type)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub, server, _ := newWSServer(t)
	conn := dialWS(t, server, "")

	subscribe(t, conn, hub, TopicLeaderboard)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "unsubscribe", "topic": TopicLeaderboard}))

	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount(TopicLeaderboard) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("unsubscribe never processed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Publish(TopicLeaderboard, EventUserUpdated, nil)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestInvalidTokenRejected(t *testing.T) {
	_, server, _ := newWSServer(t)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=garbage"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestValidTokenAccepted(t *testing.T) {
	hub, server, jwtService := newWSServer(t)

	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		UID:         "u1",
		Email:       "linh@example.com",
		DisplayName: "Linh Chi",
	}, auth.RoleMember)
	require.NoError(t, err)

	conn := dialWS(t, server, "?token="+accessToken)
	subscribe(t, conn, hub, TopicUser("u1"))

	hub.Publish(TopicUser("u1"), EventUserUpdated, nil)
	event := readEvent(t, conn)
	assert.Equal(t, "user:u1", event.Topic)
}

func TestPublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	// No Run loop: the queue absorbs events and then drops on overflow.
	for i := 0; i < 300; i++ {
		hub.Publish(TopicFeed, EventPostUpdated, nil)
	}
}

func TestTopicNames(t *testing.T) {
	assert.Equal(t, "post:abc", TopicPost("abc"))
	assert.Equal(t, "user:u1", TopicUser("u1"))
}
