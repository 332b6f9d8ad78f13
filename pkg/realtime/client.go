package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/arslanonur06/connectme/cli/pkg/config"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
)

// EventType represents the type of realtime event
type EventType string

const (
	EventTypeMessageCreated      EventType = "message_created"
	EventTypeMessageDeleted      EventType = "message_deleted"
	EventTypeNotificationCreated EventType = "notification_created"
	EventTypePostLiked           EventType = "post_liked"
	EventTypePostSaved           EventType = "post_saved"
	EventTypeCommentCreated      EventType = "comment_created"
	EventTypeFriendRequest       EventType = "friend_request"
	EventTypePresenceUpdate      EventType = "presence_update"
	EventTypeHeartbeat           EventType = "heartbeat"
	EventTypePong                EventType = "pong"
	EventTypeError               EventType = "error"
)

// Event represents a push event from the server. Payload carries the
// confirmed entity for entity-bearing events.
type Event struct {
	Type    EventType       `json:"type"`
	Table   string          `json:"table,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// Config holds realtime client configuration
type Config struct {
	Host                 string
	Port                 int
	Path                 string
	UseTLS               bool
	ConnectTimeoutMs     int
	HeartbeatIntervalMs  int
	ReconnectBaseDelayMs int
	ReconnectMaxDelayMs  int
	MaxReconnectAttempts int
}

// DefaultConfig returns a development configuration
func DefaultConfig() Config {
	return Config{
		Host:                 "localhost",
		Port:                 54321,
		Path:                 "/realtime/v1/ws",
		UseTLS:               false,
		ConnectTimeoutMs:     15000,
		HeartbeatIntervalMs:  30000,
		ReconnectBaseDelayMs: 2000,
		ReconnectMaxDelayMs:  30000,
		MaxReconnectAttempts: -1, // unlimited
	}
}

// FromConfig builds a Config from the loaded CLI configuration
func FromConfig() Config {
	cfg := DefaultConfig()
	if host := config.GetString("realtime.host"); host != "" {
		cfg.Host = host
	}
	if port := config.GetInt("realtime.port"); port != 0 {
		cfg.Port = port
	}
	if path := config.GetString("realtime.path"); path != "" {
		cfg.Path = path
	}
	cfg.UseTLS = config.GetBool("realtime.use_tls")
	return cfg
}

// ConnectionState represents the state of the websocket connection
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateError
)

// ConnectionStats holds connection statistics
type ConnectionStats struct {
	EventsReceived int64
	EventsSent     int64
	ReconnectCount int
	LastError      string
	ConnectedAt    time.Time
	DisconnectedAt time.Time
}

// Client manages the websocket connection to the realtime service
type Client struct {
	config            Config
	conn              *websocket.Conn
	token             string
	state             atomic.Value // ConnectionState
	mu                sync.RWMutex
	reconnectAttempts int
	reconnectDelay    int
	listeners         map[EventType][]func(Event)
	listenersMu       sync.RWMutex
	ctx               context.Context
	cancel            context.CancelFunc
	statsLock         sync.RWMutex
	stats             ConnectionStats
}

// NewClient creates a new realtime client
func NewClient(config Config) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	client := &Client{
		config:         config,
		listeners:      make(map[EventType][]func(Event)),
		ctx:            ctx,
		cancel:         cancel,
		reconnectDelay: config.ReconnectBaseDelayMs,
	}
	client.state.Store(StateDisconnected)
	return client
}

// SetAuthToken sets the JWT token for authentication
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Connect establishes the websocket connection
func (c *Client) Connect(token string) error {
	c.SetAuthToken(token)

	c.setState(StateConnecting)

	conn, err := c.dial()
	if err != nil {
		c.setState(StateError)
		c.recordError(err.Error())
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.setState(StateConnected)
	c.reconnectAttempts = 0
	c.reconnectDelay = c.config.ReconnectBaseDelayMs
	c.recordConnected()

	go c.readLoop()
	go c.heartbeatLoop()

	logger.Debug("Realtime connected", "host", c.config.Host, "port", c.config.Port)
	return nil
}

// Disconnect closes the websocket connection
func (c *Client) Disconnect() error {
	c.cancel()

	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	c.setState(StateDisconnected)
	c.recordDisconnected()

	logger.Debug("Realtime disconnected")
	return nil
}

// IsConnected returns true if the connection is established
func (c *Client) IsConnected() bool {
	return c.getState() == StateConnected
}

// On subscribes to an event type and returns an unsubscribe function
func (c *Client) On(eventType EventType, callback func(Event)) func() {
	c.listenersMu.Lock()
	c.listeners[eventType] = append(c.listeners[eventType], callback)
	idx := len(c.listeners[eventType]) - 1
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()

		listeners := c.listeners[eventType]
		if idx < len(listeners) {
			c.listeners[eventType] = append(listeners[:idx], listeners[idx+1:]...)
		}
	}
}

// Send sends an event to the server
func (c *Client) Send(eventType EventType, payload interface{}) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	data, err := json.Marshal(Event{Type: eventType, Payload: raw})
	if err != nil {
		return err
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}

	c.recordEventSent()
	return nil
}

// GetStats returns connection statistics
func (c *Client) GetStats() ConnectionStats {
	c.statsLock.RLock()
	defer c.statsLock.RUnlock()
	return c.stats
}

// Private methods

func (c *Client) dial() (*websocket.Conn, error) {
	scheme := "ws"
	if c.config.UseTLS {
		scheme = "wss"
	}

	u := url.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s:%d", c.config.Host, c.config.Port),
		Path:   c.config.Path,
	}

	if c.token != "" {
		q := u.Query()
		q.Set("token", c.token)
		u.RawQuery = q.Encode()
	}

	timeout := time.Duration(c.config.ConnectTimeoutMs) * time.Millisecond
	dialCtx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, u.String(), nil)
	return conn, err
}

func (c *Client) readLoop() {
	defer func() {
		c.handleDisconnect()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()

		if conn == nil {
			return
		}

		var event Event
		if err := conn.ReadJSON(&event); err != nil {
			c.recordError(err.Error())
			logger.Error("Realtime read error", "error", err)
			return
		}

		c.recordEventReceived()

		// Emit to listeners for this event type. Dispatch stays on the
		// read goroutine so reconciler merges are applied serially, in
		// arrival order.
		c.listenersMu.RLock()
		callbacks := append([]func(Event){}, c.listeners[event.Type]...)
		callbacks = append(callbacks, c.listeners[""]...) // "" = all events
		c.listenersMu.RUnlock()

		for _, callback := range callbacks {
			callback(event)
		}
	}
}

func (c *Client) heartbeatLoop() {
	ticker := time.NewTicker(time.Duration(c.config.HeartbeatIntervalMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			if c.IsConnected() {
				if err := c.Send(EventTypeHeartbeat, nil); err != nil {
					logger.Debug("Failed to send heartbeat", "error", err)
				}
			}
		}
	}
}

func (c *Client) handleDisconnect() {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	c.setState(StateReconnecting)
	c.recordDisconnected()

	// Reconnect with exponential backoff. No gap filling: entities
	// missed while disconnected come back on the next full refetch.
	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		if c.config.MaxReconnectAttempts >= 0 && c.reconnectAttempts >= c.config.MaxReconnectAttempts {
			c.setState(StateError)
			logger.Error("Max reconnection attempts reached")
			return
		}

		backoff := time.Duration(c.reconnectDelay) * time.Millisecond
		jitter := time.Duration(rand.Intn(1000)) * time.Millisecond
		waitTime := backoff + jitter

		logger.Debug("Reconnecting realtime", "attempt", c.reconnectAttempts+1, "wait_ms", waitTime.Milliseconds())

		select {
		case <-c.ctx.Done():
			return
		case <-time.After(waitTime):
		}

		conn, err := c.dial()
		if err != nil {
			c.reconnectAttempts++
			// 2x each time, capped at the configured max
			c.reconnectDelay = int(math.Min(
				float64(c.reconnectDelay*2),
				float64(c.config.ReconnectMaxDelayMs),
			))
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()

		c.setState(StateConnected)
		c.reconnectAttempts = 0
		c.reconnectDelay = c.config.ReconnectBaseDelayMs
		c.recordConnected()
		c.recordReconnect()

		logger.Debug("Realtime reconnected")

		go c.readLoop()
		go c.heartbeatLoop()
		return
	}
}

func (c *Client) setState(state ConnectionState) {
	c.state.Store(state)
}

func (c *Client) getState() ConnectionState {
	return c.state.Load().(ConnectionState)
}

func (c *Client) recordEventReceived() {
	c.statsLock.Lock()
	c.stats.EventsReceived++
	c.statsLock.Unlock()
}

func (c *Client) recordEventSent() {
	c.statsLock.Lock()
	c.stats.EventsSent++
	c.statsLock.Unlock()
}

func (c *Client) recordReconnect() {
	c.statsLock.Lock()
	c.stats.ReconnectCount++
	c.statsLock.Unlock()
}

func (c *Client) recordError(errMsg string) {
	c.statsLock.Lock()
	c.stats.LastError = errMsg
	c.statsLock.Unlock()
}

func (c *Client) recordConnected() {
	c.statsLock.Lock()
	c.stats.ConnectedAt = time.Now()
	c.statsLock.Unlock()
}

func (c *Client) recordDisconnected() {
	c.statsLock.Lock()
	c.stats.DisconnectedAt = time.Now()
	c.statsLock.Unlock()
}
