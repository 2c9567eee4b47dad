package relay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zoubayerBS/myrepository-sub000/internal/testutil"
)

func Test_queueEvent(t *testing.T) {
	t.Run("successful queue", func(t *testing.T) {
		c := &Client{
			send: make(chan *ServerEvent, 1),
			stop: make(chan struct{}),
			log:  testutil.TestLogger(t),
		}

		res := c.queueEvent(&ServerEvent{})
		assert.True(t, res, "expected queueEvent to return true when channel is not full")

		select {
		case ev := <-c.send:
			assert.NotNil(t, ev, "expected an event to be queued")
		default:
			t.Error("expected an event to be queued, but none was")
		}
	})
	t.Run("channel full", func(t *testing.T) {
		c := &Client{
			send: make(chan *ServerEvent, 1),
			stop: make(chan struct{}),
			log:  testutil.TestLogger(t),
		}

		c.send <- &ServerEvent{} // pre-fill to simulate a full channel
		res := c.queueEvent(&ServerEvent{})
		assert.False(t, res, "expected queueEvent to return false when channel is full")
	})
	t.Run("stopped client", func(t *testing.T) {
		c := &Client{
			send: make(chan *ServerEvent, 1),
			stop: make(chan struct{}),
			log:  testutil.TestLogger(t),
		}

		c.stopClient()
		res := c.queueEvent(&ServerEvent{})
		assert.False(t, res, "expected queueEvent to return false on a stopped client")
	})
}

func Test_stopClient(t *testing.T) {
	c := &Client{
		stop: make(chan struct{}),
	}

	c.stopClient()

	select {
	case <-c.stop:
	default:
		t.Error("expected stop channel to be closed")
	}

	// closing twice must not panic
	c.stopClient()
}

func Test_handleEvent_register(t *testing.T) {
	registry := NewRegistry()
	c := &Client{
		registry: registry,
		log:      testutil.TestLogger(t),
	}

	c.handleEvent(&ClientEvent{
		Type:    EventRegister,
		Payload: json.RawMessage(`{"userId":"alice"}`),
	})

	assert.Equal(t, "alice", c.userId, "expected identity to be remembered for cleanup")
	got, ok := registry.Lookup("alice")
	assert.True(t, ok, "expected connection to be registered")
	assert.Same(t, c, got)
}

func Test_handleEvent_registerInvalidPayload(t *testing.T) {
	registry := NewRegistry()
	c := &Client{
		registry: registry,
		log:      testutil.TestLogger(t),
	}

	c.handleEvent(&ClientEvent{
		Type:    EventRegister,
		Payload: json.RawMessage(`{"userId":""}`),
	})

	assert.Empty(t, c.userId, "expected no identity for an empty userId")
	assert.Equal(t, 0, registry.Len(), "expected nothing to be registered")
}

func Test_handleEvent_unknownType(t *testing.T) {
	registry := NewRegistry()
	c := &Client{
		registry: registry,
		log:      testutil.TestLogger(t),
	}

	// must not panic and must not touch the registry
	c.handleEvent(&ClientEvent{
		Type:    "typing",
		Payload: json.RawMessage(`{}`),
	})

	assert.Equal(t, 0, registry.Len())
}

func Test_cleanup(t *testing.T) {
	t.Run("registered connection is unregistered", func(t *testing.T) {
		registry := NewRegistry()
		c := &Client{
			registry: registry,
			log:      testutil.TestLogger(t),
			stop:     make(chan struct{}),
		}

		c.handleEvent(&ClientEvent{
			Type:    EventRegister,
			Payload: json.RawMessage(`{"userId":"alice"}`),
		})
		c.cleanup()

		_, ok := registry.Lookup("alice")
		assert.False(t, ok, "expected registry entry to be removed on close")
	})
	t.Run("unregistered connection is a no-op", func(t *testing.T) {
		registry := NewRegistry()
		other := &Client{}
		registry.Register("bob", other)

		c := &Client{
			registry: registry,
			log:      testutil.TestLogger(t),
			stop:     make(chan struct{}),
		}
		c.cleanup()

		assert.Equal(t, 1, registry.Len(), "expected other registrations to be untouched")
	})
	t.Run("stale close does not evict a newer registration", func(t *testing.T) {
		registry := NewRegistry()
		c1 := &Client{
			registry: registry,
			log:      testutil.TestLogger(t),
			stop:     make(chan struct{}),
		}
		c2 := &Client{
			registry: registry,
			log:      testutil.TestLogger(t),
			stop:     make(chan struct{}),
		}

		c1.handleEvent(&ClientEvent{Type: EventRegister, Payload: json.RawMessage(`{"userId":"carol"}`)})
		c2.handleEvent(&ClientEvent{Type: EventRegister, Payload: json.RawMessage(`{"userId":"carol"}`)})

		c1.cleanup()

		got, ok := registry.Lookup("carol")
		assert.True(t, ok, "expected the newer registration to survive")
		assert.Same(t, c2, got)
	})
}
