package ws

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrSlowSubscriber is returned when a subscriber's queue is full; it has been dropped.
var ErrSlowSubscriber = errors.New("websocket subscriber too slow")

const (
	writeWait = 10 * time.Second
	queueSize = 64
)

// client owns the connection's write side. Frames are queued and written by a
// single goroutine, so a slow reader never blocks the caller.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump(onError func()) {
	for payload := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			onError()
			// drain so the queue can be closed without blocking anyone
			for range c.send {
			}
			return
		}
	}
}

// enqueue never blocks; false means the subscriber's queue is full.
func (c *client) enqueue(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// Hub keeps track of websocket subscribers per topic. Topics are order IDs.
type Hub struct {
	mu        sync.RWMutex
	topics    map[string]map[*websocket.Conn]*client
	queueSize int
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[*websocket.Conn]*client), queueSize: queueSize}
}

// Subscribe adds conn to topic.
func (h *Hub) Subscribe(topic string, conn *websocket.Conn) {
	h.SubscribeWith(topic, conn, nil)
}

// SubscribeWith adds conn to topic with first already queued, ahead of any
// broadcast that happens after the call.
func (h *Hub) SubscribeWith(topic string, conn *websocket.Conn, first []byte) {
	c := &client{conn: conn, send: make(chan []byte, h.queueSize)}
	if first != nil {
		c.send <- first
	}

	h.mu.Lock()
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[*websocket.Conn]*client)
		h.topics[topic] = subs
	}
	subs[conn] = c
	h.mu.Unlock()

	go c.writePump(func() { h.Unsubscribe(topic, conn) })
}

// Unsubscribe removes conn from topic and closes it.
func (h *Hub) Unsubscribe(topic string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[topic]
	if !ok {
		return
	}
	if c, ok := subs[conn]; ok {
		close(c.send)
		_ = conn.Close()
		delete(subs, conn)
	}
	if len(subs) == 0 {
		delete(h.topics, topic)
	}
}

// Send queues payload for one subscriber of topic.
func (h *Hub) Send(topic string, conn *websocket.Conn, payload []byte) error {
	h.mu.RLock()
	c, ok := h.topics[topic][conn]
	queued := ok && c.enqueue(payload)
	h.mu.RUnlock()
	if !ok {
		return websocket.ErrCloseSent
	}
	if !queued {
		h.Unsubscribe(topic, conn)
		return ErrSlowSubscriber
	}
	return nil
}

// Broadcast queues payload for every subscriber of topic and returns how many
// accepted it. Subscribers whose queue is full are dropped.
func (h *Hub) Broadcast(topic string, payload []byte) int {
	var slow []*websocket.Conn
	delivered := 0

	h.mu.RLock()
	for conn, c := range h.topics[topic] {
		if c.enqueue(payload) {
			delivered++
		} else {
			slow = append(slow, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range slow {
		h.Unsubscribe(topic, conn)
	}
	return delivered
}

func (h *Hub) BroadcastJSON(topic string, v any) (int, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return h.Broadcast(topic, b), nil
}

// Count returns the number of subscribers on topic.
func (h *Hub) Count(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Topics returns the topics that currently have subscribers, sorted.
func (h *Hub) Topics() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.topics))
	for topic := range h.topics {
		out = append(out, topic)
	}
	sort.Strings(out)
	return out
}

// CloseAll disconnects every subscriber.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for topic, subs := range h.topics {
		for conn, c := range subs {
			close(c.send)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second))
			_ = conn.Close()
		}
		delete(h.topics, topic)
	}
}
