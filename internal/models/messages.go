package models

// MessageType identifies a websocket message
type MessageType string

const (
	MessageTypeGenerate MessageType = "generate"
	MessageTypeDungeon  MessageType = "dungeon"
	MessageTypeThemes   MessageType = "themes"
	MessageTypeError    MessageType = "error"
)

// BaseMessage is the envelope for every websocket message
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
