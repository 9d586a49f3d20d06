package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitflow-go/internal/platform/config"
	platformtesting "recruitflow-go/internal/platform/testing"
	"recruitflow-go/internal/realtime"
)

func TestBridge_RoutesTypedFrames(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"candidate_updated","id":3}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"something_new","id":4}`))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}))
	defer server.Close()

	logger := platformtesting.SetupTestLogger(t)
	hub := NewHub(2, logger)
	hub.Start()
	t.Cleanup(hub.Stop)

	typed := make(chan map[string]any, 1)
	fallback := make(chan map[string]any, 1)
	require.NoError(t, hub.Subscribe(TopicCandidateUpdated, func(p map[string]any) { typed <- p }))
	require.NoError(t, hub.Subscribe(TopicNotification, func(p map[string]any) { fallback <- p }))

	channel := realtime.NewChannel(config.RealtimeConfig{
		SocketURL:         "ws" + strings.TrimPrefix(server.URL, "http"),
		ReconnectInterval: 10 * time.Millisecond,
	}, nil, logger)
	t.Cleanup(channel.Disconnect)

	Bridge(channel, hub)
	require.NoError(t, channel.Connect(context.Background()))

	select {
	case p := <-typed:
		assert.Equal(t, float64(3), p["id"])
	case <-time.After(time.Second):
		t.Fatal("typed frame never reached its topic")
	}
	select {
	case p := <-fallback:
		assert.Equal(t, float64(4), p["id"], "unknown types fall back to the notification topic")
	case <-time.After(time.Second):
		t.Fatal("unknown frame never reached the fallback topic")
	}
}
