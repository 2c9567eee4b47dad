package database

type VacationRepository interface {
	Ping() error
	GetAccountById(accountId string) (User, error)
	CreateShift(params CreateShiftParams) (Shift, error)
	GetShiftByExternalId(externalId string) (Shift, error)
	ListShifts(filter ShiftFilter) ([]Shift, error)
	UpdateShiftStatus(params UpdateShiftStatusParams) (Shift, error)
	GetRate(category, slot string) (Rate, error)
	ListRates() ([]Rate, error)
	CreateConversation(params CreateConversationParams) (Conversation, error)
	GetConversationByExternalId(externalId string) (Conversation, error)
	ListConversations(accountId string) ([]Conversation, error)
	GetConversationParticipants(externalId string) ([]User, error)
	CreateChatMessage(params CreateChatMessageParams) (ChatMessage, error)
	UpdateConversationActivity(externalId string) error
	GetChatMessages(externalId string, before string, limit int) ([]ChatMessage, error)
}
