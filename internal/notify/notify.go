package notify

import (
	"sync"

	evbus "github.com/asaskevich/EventBus"

	"recruitflow-go/internal/platform/logging"
)

// Topics carried over the in-process bus. Socket payload types map onto
// these in the bridge; local publishers may use them directly.
const (
	TopicNotification        = "notify:notification"
	TopicCandidateUpdated    = "candidate:updated"
	TopicProcessUpdated      = "process:updated"
	TopicEvaluationCompleted = "evaluation:completed"
	TopicSessionExpired      = "session:expired"
)

// Hub is an in-process event bus with an async delivery lane. Synchronous
// publishes run subscribers inline; async publishes go through a bounded
// worker pool so a slow subscriber never blocks the socket read loop.
type Hub struct {
	bus       evbus.Bus
	logger    *logging.Logger
	workerNum int
	workChan  chan func()
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewHub builds a Hub with the given number of delivery workers.
func NewHub(workerNum int, logger *logging.Logger) *Hub {
	if workerNum <= 0 {
		workerNum = 4
	}

	return &Hub{
		bus:       evbus.New(),
		logger:    logger,
		workerNum: workerNum,
		workChan:  make(chan func(), 256),
		stopChan:  make(chan struct{}),
	}
}

// Start launches the delivery workers.
func (h *Hub) Start() {
	for i := 0; i < h.workerNum; i++ {
		h.wg.Add(1)
		go h.worker()
	}
}

// Stop drains the workers and waits for them to exit.
func (h *Hub) Stop() {
	close(h.stopChan)
	h.wg.Wait()
}

func (h *Hub) worker() {
	defer h.wg.Done()

	for {
		select {
		case <-h.stopChan:
			return
		case deliver := <-h.workChan:
			func() {
				defer func() {
					if r := recover(); r != nil {
						h.logger.WarnTag("NOTIFY", "subscriber panic: %v", r)
					}
				}()
				deliver()
			}()
		}
	}
}

// Publish delivers to subscribers inline on the caller's goroutine.
func (h *Hub) Publish(topic string, args ...interface{}) {
	h.bus.Publish(topic, args...)
}

// PublishAsync queues the delivery for the worker pool. When the queue is
// full the event is dropped with a warning rather than blocking the caller.
func (h *Hub) PublishAsync(topic string, args ...interface{}) {
	select {
	case h.workChan <- func() { h.bus.Publish(topic, args...) }:
	default:
		h.logger.WarnTag("NOTIFY", "queue full, dropping %s", topic)
	}
}

// Subscribe registers fn for topic. fn's signature must match the
// arguments published on that topic.
func (h *Hub) Subscribe(topic string, fn interface{}) error {
	return h.bus.Subscribe(topic, fn)
}

// Unsubscribe removes a previously subscribed fn.
func (h *Hub) Unsubscribe(topic string, fn interface{}) error {
	return h.bus.Unsubscribe(topic, fn)
}

// HasSubscribers reports whether anything listens on topic.
func (h *Hub) HasSubscribers(topic string) bool {
	return h.bus.HasCallback(topic)
}
