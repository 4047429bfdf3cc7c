package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newHubServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		topic := r.URL.Query().Get("topic")
		hub.Subscribe(topic, conn)
		defer hub.Unsubscribe(topic, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, topic string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?topic=" + topic
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastReachesOnlyTopicSubscribers(t *testing.T) {
	hub := NewHub()
	srv := newHubServer(t, hub)

	a := dial(t, srv, "order-1")
	b := dial(t, srv, "order-2")
	waitFor(t, func() bool { return hub.Count("order-1") == 1 && hub.Count("order-2") == 1 })

	if got := hub.Topics(); len(got) != 2 || got[0] != "order-1" || got[1] != "order-2" {
		t.Fatalf("unexpected topics: %v", got)
	}

	n, err := hub.BroadcastJSON("order-1", map[string]string{"type": "message", "content": "hello"})
	if err != nil || n != 1 {
		t.Fatalf("broadcast: %d %v", n, err)
	}

	_ = a.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := a.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(payload), `"hello"`) {
		t.Fatalf("unexpected payload %s", payload)
	}

	_ = b.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := b.ReadMessage(); err == nil {
		t.Fatalf("order-2 subscriber should not receive order-1 traffic")
	}
}

func TestUnsubscribeOnDisconnect(t *testing.T) {
	hub := NewHub()
	srv := newHubServer(t, hub)

	conn := dial(t, srv, "order-9")
	waitFor(t, func() bool { return hub.Count("order-9") == 1 })
	_ = conn.Close()
	waitFor(t, func() bool { return hub.Count("order-9") == 0 })
	if len(hub.Topics()) != 0 {
		t.Fatalf("empty topic should be removed")
	}
}

func TestSlowSubscriberDoesNotBlockBroadcast(t *testing.T) {
	hub := NewHub()
	hub.queueSize = 2
	srv := newHubServer(t, hub)

	dial(t, srv, "order-3") // never read from
	waitFor(t, func() bool { return hub.Count("order-3") == 1 })

	payload := []byte(strings.Repeat("x", 1<<20))
	start := time.Now()
	for i := 0; i < 100; i++ {
		hub.Broadcast("order-3", payload)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("broadcast blocked on a stalled reader for %s", elapsed)
	}
	if hub.Count("order-3") != 0 {
		t.Fatalf("stalled subscriber should have been dropped")
	}
}

func TestSubscribeWithQueuesFirstFrame(t *testing.T) {
	hub := NewHub()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.SubscribeWith("order-4", conn, []byte(`{"type":"snapshot"}`))
		defer hub.Unsubscribe("order-4", conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	conn := dial(t, srv, "")
	waitFor(t, func() bool { return hub.Count("order-4") == 1 })
	hub.Broadcast("order-4", []byte(`{"type":"message"}`))

	for _, want := range []string{"snapshot", "message"} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if !strings.Contains(string(payload), want) {
			t.Fatalf("expected %s frame, got %s", want, payload)
		}
	}
}
