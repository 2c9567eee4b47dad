package database

import (
	"github.com/stretchr/testify/mock"
)

type MockVacationRepository struct {
	mock.Mock
}

func (m *MockVacationRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockVacationRepository) GetAccountById(accountId string) (User, error) {
	args := m.Called(accountId)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockVacationRepository) CreateShift(params CreateShiftParams) (Shift, error) {
	args := m.Called(params)
	return args.Get(0).(Shift), args.Error(1)
}
func (m *MockVacationRepository) GetShiftByExternalId(externalId string) (Shift, error) {
	args := m.Called(externalId)
	return args.Get(0).(Shift), args.Error(1)
}
func (m *MockVacationRepository) ListShifts(filter ShiftFilter) ([]Shift, error) {
	args := m.Called(filter)
	return args.Get(0).([]Shift), args.Error(1)
}
func (m *MockVacationRepository) UpdateShiftStatus(params UpdateShiftStatusParams) (Shift, error) {
	args := m.Called(params)
	return args.Get(0).(Shift), args.Error(1)
}
func (m *MockVacationRepository) GetRate(category, slot string) (Rate, error) {
	args := m.Called(category, slot)
	return args.Get(0).(Rate), args.Error(1)
}
func (m *MockVacationRepository) ListRates() ([]Rate, error) {
	args := m.Called()
	return args.Get(0).([]Rate), args.Error(1)
}
func (m *MockVacationRepository) CreateConversation(params CreateConversationParams) (Conversation, error) {
	args := m.Called(params)
	return args.Get(0).(Conversation), args.Error(1)
}
func (m *MockVacationRepository) GetConversationByExternalId(externalId string) (Conversation, error) {
	args := m.Called(externalId)
	return args.Get(0).(Conversation), args.Error(1)
}
func (m *MockVacationRepository) ListConversations(accountId string) ([]Conversation, error) {
	args := m.Called(accountId)
	return args.Get(0).([]Conversation), args.Error(1)
}
func (m *MockVacationRepository) GetConversationParticipants(externalId string) ([]User, error) {
	args := m.Called(externalId)
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockVacationRepository) CreateChatMessage(params CreateChatMessageParams) (ChatMessage, error) {
	args := m.Called(params)
	return args.Get(0).(ChatMessage), args.Error(1)
}
func (m *MockVacationRepository) UpdateConversationActivity(externalId string) error {
	args := m.Called(externalId)
	return args.Error(0)
}
func (m *MockVacationRepository) GetChatMessages(externalId string, before string, limit int) ([]ChatMessage, error) {
	args := m.Called(externalId, before, limit)
	return args.Get(0).([]ChatMessage), args.Error(1)
}
