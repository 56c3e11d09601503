package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, h *Hub, userID uuid.UUID) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Serve(w, r, userID)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	waitForConnections(t, h, 1)
	return conn
}

func waitForConnections(t *testing.T, h *Hub, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Connected.Load() != want {
		if time.Now().After(deadline) {
			t.Fatalf("hub never reached %d connections", want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubPublishReachesOwnConnections(t *testing.T) {
	h := NewHub()
	userID := uuid.New()
	conn := dialHub(t, h, userID)

	h.Publish(userID, map[string]string{"title": "Order Delivered!"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "Order Delivered!")
}

func TestHubPublishSkipsOtherUsers(t *testing.T) {
	h := NewHub()
	userID := uuid.New()
	conn := dialHub(t, h, userID)

	h.Publish(uuid.New(), map[string]string{"title": "not yours"})
	h.Publish(userID, map[string]string{"title": "yours"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "yours")
	assert.NotContains(t, string(data), "not yours")
}

func TestHubPublishWithNoConnections(t *testing.T) {
	h := NewHub()

	// no listener registered, must not block or panic
	h.Publish(uuid.New(), map[string]string{"title": "into the void"})
	assert.Zero(t, h.Connected.Load())
}
