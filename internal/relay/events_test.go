package relay

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zoubayerBS/myrepository-sub000/internal/database"
)

func TestClientEventDecoding(t *testing.T) {
	tcases := []struct {
		name     string
		raw      string
		wantType string
	}{
		{
			name:     "register",
			raw:      `{"type":"register","payload":{"userId":"alice"}}`,
			wantType: EventRegister,
		},
		{
			name:     "private message",
			raw:      `{"type":"private_message","payload":{"conversationId":"c1","senderId":"alice","content":"hi"}}`,
			wantType: EventPrivateMessage,
		},
		{
			name:     "unknown type is still decodable",
			raw:      `{"type":"presence","payload":{}}`,
			wantType: "presence",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			var ev ClientEvent
			err := json.Unmarshal([]byte(tc.raw), &ev)
			assert.NoError(t, err)
			assert.Equal(t, tc.wantType, ev.Type)
		})
	}
}

func TestRegisterPayloadDecoding(t *testing.T) {
	var ev ClientEvent
	err := json.Unmarshal([]byte(`{"type":"register","payload":{"userId":"alice"}}`), &ev)
	assert.NoError(t, err)

	var p RegisterPayload
	assert.NoError(t, json.Unmarshal(ev.Payload, &p))
	assert.Equal(t, "alice", p.UserId)
}

func TestNewMessageEventWireFormat(t *testing.T) {
	createdAt := time.Date(2026, 2, 3, 10, 30, 0, 0, time.UTC)
	ev := NewMessageEvent(database.ChatMessage{
		Id:             "m1",
		ConversationId: "c1",
		SenderId:       "alice",
		SenderName:     "alice",
		Content:        "hi",
		CreatedAt:      createdAt,
	})

	raw, err := json.Marshal(ev)
	assert.NoError(t, err)

	expected := `{"type":"new_message","payload":{"id":"m1","conversationId":"c1",` +
		`"senderId":"alice","content":"hi","createdAt":"2026-02-03T10:30:00Z","senderName":"alice"}}`
	assert.JSONEq(t, expected, string(raw))
}
