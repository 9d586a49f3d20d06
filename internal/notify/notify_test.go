package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformtesting "recruitflow-go/internal/platform/testing"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub(2, platformtesting.SetupTestLogger(t))
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func TestHub_SyncPublish(t *testing.T) {
	hub := newTestHub(t)

	var got map[string]any
	require.NoError(t, hub.Subscribe(TopicCandidateUpdated, func(payload map[string]any) {
		got = payload
	}))

	hub.Publish(TopicCandidateUpdated, map[string]any{"id": 7})
	require.NotNil(t, got)
	assert.Equal(t, 7, got["id"])
}

func TestHub_AsyncPublish(t *testing.T) {
	hub := newTestHub(t)

	done := make(chan map[string]any, 1)
	require.NoError(t, hub.Subscribe(TopicNotification, func(payload map[string]any) {
		done <- payload
	}))

	hub.PublishAsync(TopicNotification, map[string]any{"title": "new candidate"})

	select {
	case payload := <-done:
		assert.Equal(t, "new candidate", payload["title"])
	case <-time.After(time.Second):
		t.Fatal("async delivery never happened")
	}
}

func TestHub_SubscriberPanicDoesNotKillWorker(t *testing.T) {
	hub := newTestHub(t)

	require.NoError(t, hub.Subscribe(TopicProcessUpdated, func(payload map[string]any) {
		panic("bad subscriber")
	}))
	done := make(chan struct{}, 1)
	require.NoError(t, hub.Subscribe(TopicSessionExpired, func() {
		done <- struct{}{}
	}))

	hub.PublishAsync(TopicProcessUpdated, map[string]any{})
	hub.PublishAsync(TopicSessionExpired)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker died after subscriber panic")
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := newTestHub(t)

	var mu sync.Mutex
	calls := 0
	fn := func(payload map[string]any) {
		mu.Lock()
		calls++
		mu.Unlock()
	}

	require.NoError(t, hub.Subscribe(TopicEvaluationCompleted, fn))
	hub.Publish(TopicEvaluationCompleted, map[string]any{})
	require.NoError(t, hub.Unsubscribe(TopicEvaluationCompleted, fn))
	hub.Publish(TopicEvaluationCompleted, map[string]any{})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestHub_HasSubscribers(t *testing.T) {
	hub := newTestHub(t)

	assert.False(t, hub.HasSubscribers(TopicNotification))
	require.NoError(t, hub.Subscribe(TopicNotification, func(payload map[string]any) {}))
	assert.True(t, hub.HasSubscribers(TopicNotification))
}

func TestTopicForType_CoversKnownPayloads(t *testing.T) {
	assert.Equal(t, TopicCandidateUpdated, topicForType["candidate_updated"])
	assert.Equal(t, TopicProcessUpdated, topicForType["process_updated"])
	assert.Equal(t, TopicEvaluationCompleted, topicForType["evaluation_completed"])
	assert.Equal(t, TopicNotification, topicForType["notification"])
}
