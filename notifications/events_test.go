package notifications

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"raybot-trade-manager/realtime"

	"github.com/gorilla/websocket"
)

func TestPublishWithoutRedisFeedsHub(t *testing.T) {
	hub := realtime.NewHub()
	go hub.Run()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()

	// Give the hub loop time to register the client
	time.Sleep(100 * time.Millisecond)

	pub := NewPublisher(hub, nil, "events")
	pub.Publish(EventTradeClosed, map[string]string{"id": "trade-1"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read message: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("failed to unmarshal message: %v", err)
	}
	if got["event"] != EventTradeClosed {
		t.Errorf("expected event %s, got %v", EventTradeClosed, got["event"])
	}
	payload, ok := got["payload"].(map[string]interface{})
	if !ok || payload["id"] != "trade-1" {
		t.Errorf("unexpected payload: %v", got["payload"])
	}
}

func TestPublishNilPublisher(t *testing.T) {
	var pub *Publisher
	pub.Publish(EventSignalReceived, nil) // must not panic
}

func TestPublishNoSinks(t *testing.T) {
	pub := NewPublisher(nil, nil, "events")
	pub.Publish(EventTradeOpened, map[string]string{"id": "trade-1"}) // must not panic
}
