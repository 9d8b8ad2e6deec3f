package network

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// serverConn dials a test server and returns the server side of the socket
// along with the client side
func serverConn(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Upgrade failed: %v", err)
			return
		}
		conns <- ws
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	select {
	case ws := <-conns:
		return ws, client
	case <-time.After(5 * time.Second):
		t.Fatal("Server never accepted the connection")
	}
	return nil, nil
}

type echoHandler struct{}

func (echoHandler) HandleMessage(conn *Connection, message []byte) {
	var v map[string]string
	json.Unmarshal(message, &v)
	conn.SendMessage(v)
}

func TestPumpsRoundTrip(t *testing.T) {
	ws, client := serverConn(t)
	conn := NewConnection(ws, zap.NewNop())
	go conn.WritePump()
	go conn.ReadPump(echoHandler{})

	if err := client.WriteJSON(map[string]string{"type": "ping"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	client.SetReadDeadline(time.Now().Add(5 * time.Second))
	var got map[string]string
	if err := client.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if got["type"] != "ping" {
		t.Errorf("Expected echoed message, got %v", got)
	}
}

func TestWritePumpLogsFailedClose(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ws, _ := serverConn(t)
	conn := NewConnection(ws, zap.New(core))

	ws.Close()
	close(conn.send)
	conn.WritePump()

	entries := logs.FilterMessage("websocket close failed").All()
	if len(entries) != 1 {
		t.Fatalf("Expected one close failure entry, got %d", len(entries))
	}
	if entries[0].Level != zap.DebugLevel {
		t.Errorf("Expected debug level, got %v", entries[0].Level)
	}
	if _, ok := entries[0].ContextMap()["error"]; !ok {
		t.Error("Expected the error field")
	}
}
