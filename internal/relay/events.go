package relay

import (
	"encoding/json"
	"time"

	"github.com/zoubayerBS/myrepository-sub000/internal/database"
)

// Inbound and outbound event types. Anything else received on the wire is
// logged and ignored.
const (
	EventRegister       = "register"
	EventPrivateMessage = "private_message"
	EventNewMessage     = "new_message"
)

// ClientEvent is an inbound frame. Payload stays raw until the type is
// known so each kind can be decoded into its own struct.
type ClientEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type RegisterPayload struct {
	UserId string `json:"userId"`
}

type PrivateMessagePayload struct {
	ConversationId string `json:"conversationId"`
	SenderId       string `json:"senderId"`
	Content        string `json:"content"`
}

type ServerEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type NewMessagePayload struct {
	Id             string    `json:"id"`
	ConversationId string    `json:"conversationId"`
	SenderId       string    `json:"senderId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	SenderName     string    `json:"senderName"`
}

func NewMessageEvent(msg database.ChatMessage) *ServerEvent {
	return &ServerEvent{
		Type: EventNewMessage,
		Payload: NewMessagePayload{
			Id:             msg.Id,
			ConversationId: msg.ConversationId,
			SenderId:       msg.SenderId,
			Content:        msg.Content,
			CreatedAt:      msg.CreatedAt,
			SenderName:     msg.SenderName,
		},
	}
}

func Now() time.Time {
	return time.Now().UTC().Round(time.Millisecond)
}
