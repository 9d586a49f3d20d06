package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"recruitflow-go/internal/platform/config"
	"recruitflow-go/internal/platform/errors"
	"recruitflow-go/internal/platform/logging"
)

// State is the connection lifecycle position.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "idle"
	}
}

// EventMessage is the generic event every inbound frame is dispatched under,
// in addition to its own `type` when it carries one.
const EventMessage = "message"

// TokenFunc supplies the current bearer token for the socket handshake.
type TokenFunc func() string

// Channel maintains a single live socket to the notification endpoint,
// delivers inbound messages to subscribers and recovers from disconnection
// with linear backoff. Only consecutive failures count toward the reconnect
// cap; a successful open resets it.
type Channel struct {
	cfg      config.RealtimeConfig
	logger   *logging.Logger
	token    TokenFunc
	registry *Registry

	mu       sync.Mutex
	conn     *websocket.Conn
	state    State
	attempts int
	closed   bool
	timer    *time.Timer
}

// NewChannel builds a Channel; token may be nil for unauthenticated sockets.
func NewChannel(cfg config.RealtimeConfig, token TokenFunc, logger *logging.Logger) *Channel {
	if cfg.ReconnectInterval <= 0 {
		cfg.ReconnectInterval = 1 * time.Second
	}
	if cfg.MaxReconnectAttempts <= 0 {
		cfg.MaxReconnectAttempts = 5
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}

	return &Channel{
		cfg:      cfg,
		logger:   logger,
		token:    token,
		registry: NewRegistry(logger),
		state:    StateIdle,
	}
}

// On registers a listener. Use EventMessage for every inbound frame or a
// payload type name for typed dispatch.
func (c *Channel) On(event string, fn Handler) *Subscription {
	return c.registry.On(event, fn)
}

// Off removes a listener by its handle.
func (c *Channel) Off(sub *Subscription) {
	c.registry.Off(sub)
}

// State returns the current lifecycle state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect opens the socket. It resets the failure budget, so an explicitly
// re-connected channel gets a fresh set of reconnect attempts.
func (c *Channel) Connect(ctx context.Context) error {
	c.mu.Lock()
	c.closed = false
	c.attempts = 0
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	return c.dial(ctx)
}

func (c *Channel) dial(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.state = StateConnecting
	c.mu.Unlock()

	dialer := websocket.Dialer{
		HandshakeTimeout: c.cfg.HandshakeTimeout,
	}
	header := http.Header{}
	header.Set("X-Connect-ID", uuid.NewString())
	if c.token != nil {
		if access := c.token(); access != "" {
			header.Set("Authorization", "Bearer "+access)
		}
	}

	conn, resp, err := dialer.DialContext(ctx, c.cfg.SocketURL, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		c.logger.WarnTag("WS", "connect to %s failed: %v", c.cfg.SocketURL, err)
		c.mu.Lock()
		c.state = StateClosed
		c.mu.Unlock()
		c.scheduleReconnect()
		return errors.Wrap(errors.KindRealtime, "connect", "dial socket", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.state = StateOpen
	c.attempts = 0
	c.mu.Unlock()

	c.logger.InfoTag("WS", "connected to %s", c.cfg.SocketURL)

	go c.readLoop(conn)
	if c.cfg.PingInterval > 0 {
		go c.pingLoop(conn)
	}
	return nil
}

func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.handleDisconnect(conn, err)
			return
		}
		c.dispatch(data)
	}
}

func (c *Channel) dispatch(data []byte) {
	var payload map[string]any
	if err := sonic.Unmarshal(data, &payload); err != nil {
		c.logger.WarnTag("WS", "discarding undecodable frame: %v", err)
		return
	}

	c.registry.Emit(EventMessage, payload)
	if typeName, ok := payload["type"].(string); ok && typeName != "" {
		c.registry.Emit(typeName, payload)
	}
}

func (c *Channel) handleDisconnect(conn *websocket.Conn, err error) {
	conn.Close()

	c.mu.Lock()
	if c.conn != conn {
		// a newer connection already took over
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.state = StateClosed
	intentional := c.closed
	c.mu.Unlock()

	if intentional {
		return
	}

	c.logger.WarnTag("WS", "connection lost: %v", err)
	c.scheduleReconnect()
}

// scheduleReconnect arms the next dial after interval*attempt. Past the cap
// the channel stays closed until Connect is called again.
func (c *Channel) scheduleReconnect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.attempts >= c.cfg.MaxReconnectAttempts {
		c.mu.Unlock()
		c.logger.WarnTag("WS", "reconnect budget exhausted after %d attempts", c.cfg.MaxReconnectAttempts)
		return
	}
	c.attempts++
	attempt := c.attempts
	delay := c.cfg.ReconnectInterval * time.Duration(attempt)
	c.state = StateConnecting
	c.timer = time.AfterFunc(delay, func() {
		c.dial(context.Background())
	})
	c.mu.Unlock()

	c.logger.InfoTag("WS", "reconnecting in %v (attempt %d/%d)", delay, attempt, c.cfg.MaxReconnectAttempts)
}

func (c *Channel) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		current := c.conn == conn
		c.mu.Unlock()
		if !current {
			return
		}
		deadline := time.Now().Add(5 * time.Second)
		if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
			return
		}
	}
}

// Send writes a JSON message. When the socket is not open this is a warned
// no-op, never an error: connection state must not surface as a send failure.
func (c *Channel) Send(v any) error {
	c.mu.Lock()
	conn := c.conn
	open := c.state == StateOpen && conn != nil
	c.mu.Unlock()

	if !open {
		c.logger.WarnTag("WS", "send skipped, socket not open")
		return nil
	}

	data, err := sonic.Marshal(v)
	if err != nil {
		return errors.Wrap(errors.KindRealtime, "send", "encode message", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.Wrap(errors.KindRealtime, "send", "write message", err)
	}
	return nil
}

// Disconnect closes the socket intentionally and cancels any pending
// reconnect. Listeners stay registered for a later Connect.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	c.closed = true
	c.state = StateClosed
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		deadline := time.Now().Add(time.Second)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		conn.Close()
		c.logger.InfoTag("WS", "disconnected")
	}
}
