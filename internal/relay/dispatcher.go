package relay

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/zoubayerBS/myrepository-sub000/internal/database"
	"github.com/zoubayerBS/myrepository-sub000/internal/stats"
)

// Dispatcher is the sole handler for inbound private_message events. It
// persists the message, then fans it out to every participant other than
// the sender that currently has a registered connection. Delivery is
// at-most-once and best-effort: an offline recipient is skipped, nothing
// is queued, and the sender never receives a confirmation or an error.
type Dispatcher struct {
	log      *log.Logger
	db       database.VacationRepository
	registry *Registry
	stats    stats.StatsProvider
}

func NewDispatcher(logger *log.Logger, db database.VacationRepository, registry *Registry, su stats.StatsProvider) *Dispatcher {
	su.RegisterMetric("MessagesPersisted")
	su.RegisterMetric("MessagesDelivered")
	su.RegisterMetric("MessagesDropped")

	return &Dispatcher{
		log:      logger,
		db:       db,
		registry: registry,
		stats:    su,
	}
}

// Dispatch runs the persist-then-forward sequence for one private_message
// payload. The returned error is for the caller's log only; no failure is
// ever surfaced to the sending client.
func (d *Dispatcher) Dispatch(p PrivateMessagePayload) error {
	if p.ConversationId == "" || p.SenderId == "" || p.Content == "" {
		d.stats.Incr("MessagesDropped")
		return fmt.Errorf("private_message missing required fields")
	}

	msg, err := d.db.CreateChatMessage(database.CreateChatMessageParams{
		Id:                     uuid.NewString(),
		ConversationExternalId: p.ConversationId,
		SenderId:               p.SenderId,
		Content:                p.Content,
		CreatedAt:              Now(),
	})
	if err != nil {
		d.stats.Incr("MessagesDropped")
		return fmt.Errorf("create chat message: %w", err)
	}
	d.stats.Incr("MessagesPersisted")

	// best-effort bump of the conversation's last activity; the message is
	// already persisted, so a failure here is logged and nothing is undone
	if err := d.db.UpdateConversationActivity(p.ConversationId); err != nil {
		d.log.Printf("update conversation activity for %q: %v", p.ConversationId, err)
	}

	sender, err := d.db.GetAccountById(p.SenderId)
	if err != nil {
		return fmt.Errorf("get sender %q: %w", p.SenderId, err)
	}
	msg.ConversationId = p.ConversationId
	msg.SenderName = sender.Username

	participants, err := d.db.GetConversationParticipants(p.ConversationId)
	if err != nil {
		return fmt.Errorf("get participants for %q: %w", p.ConversationId, err)
	}

	ev := NewMessageEvent(msg)
	for _, participant := range participants {
		if participant.Id == p.SenderId {
			continue
		}

		c, ok := d.registry.Lookup(participant.Id)
		if !ok {
			// offline, not an error
			continue
		}

		if c.queueEvent(ev) {
			d.stats.Incr("MessagesDelivered")
		} else {
			d.log.Printf("dropping message %s for %q, connection not writable", msg.Id, participant.Id)
		}
	}

	return nil
}
