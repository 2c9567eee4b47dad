package types

import (
	"time"
)

type User struct {
	Id           string    `json:"id"`
	Username     string    `json:"username"`
	EmailAddress string    `json:"email_address,omitempty"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// Shift statuses. A shift is created pending and is moved to validated
// or refused exactly once.
const (
	ShiftStatusPending   = "pending"
	ShiftStatusValidated = "validated"
	ShiftStatusRefused   = "refused"
)

type Shift struct {
	Id         int       `json:"id"`
	ExternalId string    `json:"external_id"`
	UserId     string    `json:"user_id"`
	Category   string    `json:"category"`
	Slot       string    `json:"slot"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`
	Amount     float64   `json:"amount"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// Rate is a row of the amount lookup table keyed by (category, slot).
type Rate struct {
	Category string  `json:"category"`
	Slot     string  `json:"slot"`
	Amount   float64 `json:"amount"`
}

type Conversation struct {
	Id            int       `json:"id"`
	ExternalId    string    `json:"external_id"`
	Subject       string    `json:"subject"`
	Participants  []User    `json:"participants,omitempty"`
	LastMessageAt time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

type ChatMessage struct {
	Id             string    `json:"id"`
	ConversationId string    `json:"conversation_id"`
	SenderId       string    `json:"sender_id"`
	SenderName     string    `json:"sender_name,omitempty"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
