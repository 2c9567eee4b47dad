package database

import "time"

type User struct {
	Id           string
	Username     string
	EmailAddress string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Shift struct {
	Id         int
	ExternalId string
	UserId     string
	Category   string
	Slot       string
	Date       time.Time
	Status     string
	Amount     float64
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Rate struct {
	Id       int
	Category string
	Slot     string
	Amount   float64
}

type Conversation struct {
	Id            int
	ExternalId    string
	Subject       string
	LastMessageAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ChatMessage struct {
	Id             string
	ConversationId string
	SenderId       string
	SenderName     string
	Content        string
	CreatedAt      time.Time
}

type CreateShiftParams struct {
	ExternalId string
	UserId     string
	Category   string
	Slot       string
	Date       time.Time
	Amount     float64
	Comment    string
}

// ShiftFilter narrows ListShifts. Zero values mean "no constraint".
type ShiftFilter struct {
	UserId string
	Status string
	From   time.Time
	To     time.Time
}

type UpdateShiftStatusParams struct {
	ShiftId int
	Status  string
	Comment string
}

type CreateConversationParams struct {
	ExternalId     string
	Subject        string
	ParticipantIds []string
}

type CreateChatMessageParams struct {
	Id                     string
	ConversationExternalId string
	SenderId               string
	Content                string
	CreatedAt              time.Time
}
