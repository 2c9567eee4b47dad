package relay

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"slices"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/zoubayerBS/myrepository-sub000/internal/config"
	"github.com/zoubayerBS/myrepository-sub000/internal/stats"
)

// RelayServer accepts websocket connections on its own listener,
// independent of the HTTP API port.
type RelayServer struct {
	log            *log.Logger
	registry       *Registry
	dispatcher     *Dispatcher
	stats          stats.StatsProvider
	allowedOrigins []string
	mux            *http.Server
	clients        map[*Client]struct{}
	clientsLock    sync.Mutex
}

func NewRelayServer(logger *log.Logger, registry *Registry, dispatcher *Dispatcher, su stats.StatsProvider, cfg *config.Config) *RelayServer {
	s := &RelayServer{
		log:            logger,
		registry:       registry,
		dispatcher:     dispatcher,
		stats:          su,
		allowedOrigins: cfg.AllowedOrigins,
		clients:        make(map[*Client]struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.serveWS)

	s.mux = &http.Server{
		Addr:    cfg.RelayAddr,
		Handler: mux,
	}

	su.RegisterMetric("NumActiveConnections")

	return s
}

func (s *RelayServer) serveWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			return slices.Contains(s.allowedOrigins, origin)
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Println("error upgrading connection:", err)
		return
	}

	client := NewClient(conn, s, s.registry, s.dispatcher, s.log)
	s.addClient(client)

	go client.Write()
	go client.Read()
}

func (s *RelayServer) addClient(c *Client) {
	s.clientsLock.Lock()
	defer s.clientsLock.Unlock()
	s.clients[c] = struct{}{}
	s.stats.Incr("NumActiveConnections")
}

func (s *RelayServer) removeClient(c *Client) {
	s.clientsLock.Lock()
	defer s.clientsLock.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		s.stats.Decr("NumActiveConnections")
	}
}

func (s *RelayServer) Start() error {
	s.log.Printf("starting relay on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *RelayServer) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down relay...")

	s.clientsLock.Lock()
	for c := range s.clients {
		c.stopClient()
	}
	s.clientsLock.Unlock()

	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("relay shutdown: %w", err)
	}

	return nil
}
