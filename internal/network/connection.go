package network

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// sendBuffer is how many outgoing messages may queue before the
// connection is dropped as too slow
const sendBuffer = 256

// Connection wraps a websocket with a buffered outgoing queue
type Connection struct {
	ws     *websocket.Conn
	send   chan []byte
	logger *zap.Logger
}

// NewConnection creates a new connection wrapper
func NewConnection(ws *websocket.Conn, logger *zap.Logger) *Connection {
	return &Connection{
		ws:     ws,
		send:   make(chan []byte, sendBuffer),
		logger: logger,
	}
}

// MessageHandler handles one incoming message
type MessageHandler interface {
	HandleMessage(conn *Connection, message []byte)
}

// ReadPump reads messages until the client goes away, then closes the
// outgoing queue so WritePump exits
func (c *Connection) ReadPump(h MessageHandler) {
	defer func() {
		close(c.send)
		c.ws.Close()
	}()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		h.HandleMessage(c, message)
	}
}

// WritePump writes queued messages to the websocket
func (c *Connection) WritePump() {
	defer c.ws.Close()

	for message := range c.send {
		w, err := c.ws.NextWriter(websocket.TextMessage)
		if err != nil {
			c.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
		if _, err := w.Write(message); err != nil {
			c.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
		if err := w.Close(); err != nil {
			c.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
	if err := c.ws.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
		c.logger.Debug("websocket close failed", zap.Error(err))
	}
}

// SendMessage queues msg as JSON. A full queue closes the connection.
// It must only be called from the goroutine running ReadPump.
func (c *Connection) SendMessage(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn("send queue full, closing connection")
		c.ws.Close()
	}
	return nil
}
