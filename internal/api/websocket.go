package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aemckenna/rig-calc/internal/infrastructure/config"
	"github.com/aemckenna/rig-calc/internal/infrastructure/logging"
	"github.com/aemckenna/rig-calc/internal/session"
)

// Message types on the panel socket.
const (
	WSTypeSubscribe   = "subscribe"
	WSTypeUnsubscribe = "unsubscribe"
	WSTypePing        = "ping"
	WSTypePong        = "pong"
	WSTypeEvent       = "event"
	WSTypeResponse    = "response"
	WSTypeError       = "error"

	// A panel that falls this far behind misses rig.changed events; it
	// refetches the whole rig on the next one anyway.
	wsSendBufferSize = 32
)

const (
	defaultPingInterval = 30 * time.Second
	defaultPongTimeout  = 10 * time.Second
)

// knownChannels lists the channels a panel may subscribe to.
var knownChannels = map[string]bool{
	session.ChannelRigChanged: true,
}

// WSMessage is one frame in either direction.
type WSMessage struct {
	Type      string `json:"type"`
	ID        string `json:"id,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Payload   any    `json:"payload,omitempty"`
}

// WSSubscribePayload names the channels of a subscribe or unsubscribe frame.
type WSSubscribePayload struct {
	Channels []string `json:"channels"`
}

type channelSet map[string]struct{}

// Hub fans session notifications out to connected panels. It implements
// session.Notifier.
//
// Thread Safety: all methods are safe for concurrent use.
type Hub struct {
	cfg     config.WebSocketConfig
	logger  *logging.Logger
	mu      sync.RWMutex
	clients map[*WSClient]struct{}
}

// WSClient is one connected panel.
type WSClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	mu            sync.RWMutex
	subscriptions channelSet
	closed        bool
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// NewHub creates a hub with no clients.
func NewHub(cfg config.WebSocketConfig, logger *logging.Logger) *Hub {
	return &Hub{
		cfg:     cfg,
		logger:  logger,
		clients: make(map[*WSClient]struct{}),
	}
}

// Run blocks until ctx is cancelled, then disconnects every panel.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*WSClient]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.shutdown()
	}
}

// Register adds a client.
func (h *Hub) Register(c *WSClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("panel connected", "clients", n)
}

// Unregister removes a client and closes its send queue. Safe to call twice.
func (h *Hub) Unregister(c *WSClient) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		c.shutdown()
		h.logger.Debug("panel disconnected", "clients", n)
	}
}

// Broadcast queues an event for every client subscribed to channel.
// Clients whose queue is full drop the event.
func (h *Hub) Broadcast(channel string, payload any) {
	data, err := json.Marshal(WSMessage{
		Type:      WSTypeEvent,
		EventType: channel,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   payload,
	})
	if err != nil {
		h.logger.Error("encoding panel event failed", "channel", channel, "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*WSClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	var sent, dropped int
	for _, c := range clients {
		if !c.subscribed(channel) {
			continue
		}
		if c.enqueue(data) {
			sent++
		} else {
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("panel event dropped", "channel", channel, "dropped", dropped)
	}
	if sent > 0 {
		h.logger.Debug("panel event sent", "channel", channel, "recipients", sent)
	}
}

// ClientCount returns the number of connected panels.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) timings() (ping, pong time.Duration) {
	ping = time.Duration(h.cfg.PingInterval) * time.Second
	if ping <= 0 {
		ping = defaultPingInterval
	}
	pong = time.Duration(h.cfg.PongTimeout) * time.Second
	if pong <= 0 {
		pong = defaultPongTimeout
	}
	return ping, pong
}

// handleWebSocket upgrades the request. The "channels" query parameter
// (comma separated) subscribes up front, so the panel needs no handshake.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &WSClient{
		hub:           s.hub,
		conn:          conn,
		send:          make(chan []byte, wsSendBufferSize),
		subscriptions: channelSet{},
	}
	for _, ch := range strings.Split(r.URL.Query().Get("channels"), ",") {
		ch = strings.TrimSpace(ch)
		switch {
		case ch == "":
		case knownChannels[ch]:
			c.subscriptions[ch] = struct{}{}
		default:
			s.logger.Debug("ignoring unknown panel channel", "channel", ch)
		}
	}

	s.hub.Register(c)
	go c.writePump()
	go c.readPump()
}

func (c *WSClient) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	ping, pong := c.hub.timings()
	extend := func() error {
		return c.conn.SetReadDeadline(time.Now().Add(ping + pong))
	}
	c.conn.SetReadLimit(int64(c.hub.cfg.MaxMessageSize))
	extend() //nolint:errcheck // a failed deadline surfaces as a read error
	c.conn.SetPongHandler(func(string) error { return extend() })

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("panel socket read failed", "error", err)
			}
			return
		}
		// Browsers may not answer protocol pings; any frame counts as alive.
		extend() //nolint:errcheck // a failed deadline surfaces as a read error
		c.handle(data)
	}
}

func (c *WSClient) writePump() {
	ping, pong := c.hub.timings()
	ticker := time.NewTicker(ping)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	write := func(kind int, data []byte) error {
		c.conn.SetWriteDeadline(time.Now().Add(pong)) //nolint:errcheck // write reports it
		return c.conn.WriteMessage(kind, data)
	}

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				write(websocket.CloseMessage, nil) //nolint:errcheck // closing anyway
				return
			}
			if err := write(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *WSClient) handle(data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.reply("", WSTypeError, errorPayload("invalid JSON message"))
		return
	}

	switch msg.Type {
	case WSTypeSubscribe:
		c.changeSubscriptions(msg, true)
	case WSTypeUnsubscribe:
		c.changeSubscriptions(msg, false)
	case WSTypePing:
		c.reply(msg.ID, WSTypePong, nil)
	default:
		c.reply(msg.ID, WSTypeError, errorPayload("unknown message type: "+msg.Type))
	}
}

// changeSubscriptions applies a subscribe or unsubscribe frame. A subscribe
// naming an unknown channel is rejected whole.
func (c *WSClient) changeSubscriptions(msg WSMessage, subscribe bool) {
	channels, err := decodeChannels(msg.Payload)
	if err != nil {
		c.reply(msg.ID, WSTypeError, errorPayload(err.Error()))
		return
	}
	if subscribe {
		for _, ch := range channels {
			if !knownChannels[ch] {
				c.reply(msg.ID, WSTypeError, errorPayload("unknown channel: "+ch))
				return
			}
		}
	}

	c.mu.Lock()
	for _, ch := range channels {
		if subscribe {
			c.subscriptions[ch] = struct{}{}
		} else {
			delete(c.subscriptions, ch)
		}
	}
	c.mu.Unlock()

	key := "unsubscribed"
	if subscribe {
		key = "subscribed"
	}
	c.reply(msg.ID, WSTypeResponse, map[string][]string{key: channels})
}

// decodeChannels re-decodes a generic payload into WSSubscribePayload.
func decodeChannels(payload any) ([]string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.New("invalid payload")
	}
	var sub WSSubscribePayload
	if err := json.Unmarshal(raw, &sub); err != nil {
		return nil, errors.New("invalid subscription payload")
	}
	if len(sub.Channels) == 0 {
		return nil, errors.New("no channels given")
	}
	return sub.Channels, nil
}

func errorPayload(message string) map[string]string {
	return map[string]string{"message": message}
}

func (c *WSClient) reply(id, msgType string, payload any) {
	data, err := json.Marshal(WSMessage{
		Type:      msgType,
		ID:        id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   payload,
	})
	if err != nil {
		return
	}
	c.enqueue(data)
}

func (c *WSClient) subscribed(channel string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.subscriptions[channel]
	return ok
}

// enqueue reports whether data was queued. It never blocks and never
// sends on a closed queue.
func (c *WSClient) enqueue(data []byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// shutdown closes the send queue once; writePump then sends a close frame.
func (c *WSClient) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
