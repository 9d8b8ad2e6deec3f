package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"dconn.dev/undercroft/internal/models"
	"dconn.dev/undercroft/internal/network"
	"dconn.dev/undercroft/internal/services"
)

var upgrader = websocket.Upgrader{
	// previews are read-only, so any origin may connect
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades /ws requests into preview sessions
type WSHandler struct {
	dungeons *services.DungeonService
	logger   *zap.Logger
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(ds *services.DungeonService, logger *zap.Logger) *WSHandler {
	return &WSHandler{dungeons: ds, logger: logger}
}

// ServeWS handles GET /ws
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn := network.NewConnection(ws, h.logger)
	session := &previewSession{dungeons: h.dungeons, logger: h.logger}

	h.logger.Debug("preview session opened", zap.String("remote", ws.RemoteAddr().String()))
	go conn.WritePump()
	conn.ReadPump(session)
	h.logger.Debug("preview session closed", zap.String("remote", ws.RemoteAddr().String()))
}

// previewSession answers the messages of one websocket client
type previewSession struct {
	dungeons *services.DungeonService
	logger   *zap.Logger
}

func (s *previewSession) HandleMessage(conn *network.Connection, message []byte) {
	var msg models.BaseMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		s.sendError(conn, "BAD_MESSAGE", "Message is not valid JSON")
		return
	}

	switch msg.Type {
	case models.MessageTypeGenerate:
		s.handleGenerate(conn, msg.Payload)
	case models.MessageTypeThemes:
		s.send(conn, models.MessageTypeThemes, s.dungeons.Themes())
	default:
		s.logger.Debug("unknown message type", zap.String("type", string(msg.Type)))
		s.sendError(conn, "UNKNOWN_MESSAGE_TYPE", "Unknown message type received")
	}
}

func (s *previewSession) handleGenerate(conn *network.Connection, payload interface{}) {
	var req models.GenerateRequest
	if payload != nil {
		data, err := json.Marshal(payload)
		if err == nil {
			err = json.Unmarshal(data, &req)
		}
		if err != nil {
			s.sendError(conn, "BAD_REQUEST", "Invalid generate payload")
			return
		}
	}

	resp, err := s.dungeons.Generate(req)
	if err != nil {
		s.sendError(conn, "GENERATE_FAILED", err.Error())
		return
	}
	s.send(conn, models.MessageTypeDungeon, resp)
}

func (s *previewSession) sendError(conn *network.Connection, code, message string) {
	s.send(conn, models.MessageTypeError, models.ErrorMessage{Code: code, Message: message})
}

func (s *previewSession) send(conn *network.Connection, t models.MessageType, payload interface{}) {
	if err := conn.SendMessage(models.BaseMessage{Type: t, Payload: payload}); err != nil {
		s.logger.Error("sending websocket message", zap.Error(err))
	}
}
