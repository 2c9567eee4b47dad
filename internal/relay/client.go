package relay

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one live relay connection. It starts with no identity and
// acquires one when the peer sends a register event.
type Client struct {
	conn       *websocket.Conn
	srv        *RelayServer
	registry   *Registry
	dispatcher *Dispatcher
	log        *log.Logger
	// userId is empty until a register event is received. It is only
	// written from the read goroutine.
	userId string
	send   chan *ServerEvent
	stop   chan struct{}
}

func NewClient(conn *websocket.Conn, srv *RelayServer, registry *Registry, dispatcher *Dispatcher, l *log.Logger) *Client {
	return &Client{
		conn:       conn,
		srv:        srv,
		registry:   registry,
		dispatcher: dispatcher,
		log:        l,
		send:       make(chan *ServerEvent, 256),
		stop:       make(chan struct{}),
	}
}

func (c *Client) Write() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.log.Println("write exiting")
	}()

	for {
		select {
		case ev, ok := <-c.send:
			if !ok {
				return
			}

			bytes, err := json.Marshal(ev)
			if err != nil {
				c.log.Println("failed to serialize event:", err)
				continue
			}

			if !c.sendMessage(websocket.TextMessage, bytes) {
				return
			}
		case <-c.stop:
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !c.sendMessage(websocket.PingMessage, nil) {
				return
			}
		}
	}
}

func (c *Client) Read() {
	defer func() {
		c.conn.Close()
		c.cleanup()
		c.log.Println("read exiting")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(appData string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.log.Printf("ws: read: %v", err)
			}
			break
		}

		var ev ClientEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			// drop the frame, the connection stays open and the
			// sender gets no error back
			c.log.Println("error parsing event:", err)
			continue
		}

		c.handleEvent(&ev)
	}
}

func (c *Client) handleEvent(ev *ClientEvent) {
	switch ev.Type {
	case EventRegister:
		var p RegisterPayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil || p.UserId == "" {
			c.log.Printf("invalid register payload: %s", ev.Payload)
			return
		}

		c.registry.Register(p.UserId, c)
		c.userId = p.UserId
		c.log.Printf("registered connection for user %q", p.UserId)
	case EventPrivateMessage:
		var p PrivateMessagePayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			c.log.Printf("invalid private_message payload: %s", ev.Payload)
			return
		}

		if err := c.dispatcher.Dispatch(p); err != nil {
			c.log.Println("dispatch:", err)
		}
	default:
		c.log.Printf("ignoring event with unknown type %q", ev.Type)
	}
}

func (c *Client) queueEvent(ev *ServerEvent) bool {
	select {
	case <-c.stop:
		return false
	default:
	}

	select {
	case c.send <- ev:
	default:
		c.log.Println("failed to queue event, channel is full")
		return false
	}

	return true
}

func (c *Client) sendMessage(msgType int, msg []byte) bool {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := c.conn.WriteMessage(msgType, msg); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
			websocket.CloseNormalClosure) {
			c.log.Printf("write message: %s", err)
		}
		return false
	}

	return true
}

func (c *Client) stopClient() {
	select {
	case <-c.stop:
	default:
		close(c.stop)
	}
}

func (c *Client) cleanup() {
	if c.userId != "" {
		c.registry.Unregister(c.userId, c)
	}
	if c.srv != nil {
		c.srv.removeClient(c)
	}
	c.stopClient()
}
