package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/handsurf/internal/app"
	"github.com/ayusman/handsurf/internal/gesture"
	"github.com/gorilla/websocket"
)

func TestLiveHandler_PublishToClient(t *testing.T) {
	h := NewLiveHandler()

	srv := httptest.NewServer(h)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial error: %v", err)
	}
	defer conn.Close()

	// Registration happens in the server goroutine after the upgrade.
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	sent := app.Evaluation{
		Raw:     gesture.DirectionGesture(90),
		Stable:  gesture.ActionUp,
		Emitted: gesture.ActionUp,
		At:      time.Now(),
	}
	h.Publish(sent)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got app.Evaluation
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}

	if got.Emitted != gesture.ActionUp {
		t.Errorf("emitted = %s, want %s", got.Emitted, gesture.ActionUp)
	}
	if got.Raw.Kind != gesture.KindDirection || got.Raw.Angle != 90 {
		t.Errorf("raw = %+v, want direction at 90", got.Raw)
	}
}

func TestLiveHandler_DropsClosedClients(t *testing.T) {
	h := NewLiveHandler()

	srv := httptest.NewServer(h)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial error: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	conn.Close()

	// The write after close fails and the client is pruned. The server
	// side read also notices and unregisters, so allow either path.
	deadline = time.Now().Add(2 * time.Second)
	for h.ClientCount() != 0 {
		h.Publish(app.Evaluation{Stable: gesture.ActionNone, At: time.Now()})
		if time.Now().After(deadline) {
			t.Fatal("closed client was never dropped")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
