package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/teris-io/shortid"
	"github.com/zoubayerBS/myrepository-sub000/internal/config"
	"github.com/zoubayerBS/myrepository-sub000/internal/database"
	"github.com/zoubayerBS/myrepository-sub000/internal/stats"
)

type VacationApp struct {
	log            *log.Logger
	db             database.VacationRepository
	mux            *http.Server
	stats          stats.StatsProvider
	signingKey     []byte
	allowedOrigins []string
	// swappable in tests
	generateShortId func() (string, error)
}

func NewVacationApp(mux *http.ServeMux, logger *log.Logger, db database.VacationRepository, su stats.StatsProvider, cfg *config.Config) *VacationApp {
	s := &VacationApp{
		log:             logger,
		db:              db,
		stats:           su,
		signingKey:      cfg.SigningKey,
		allowedOrigins:  cfg.AllowedOrigins,
		generateShortId: shortid.Generate,
	}

	mux.HandleFunc("GET /healthz", s.healthCheck)
	mux.Handle("GET /api/account", s.authMiddleware(s.account))
	mux.Handle("POST /api/shifts", s.authMiddleware(s.createShift))
	mux.Handle("GET /api/shifts", s.authMiddleware(s.listShifts))
	mux.Handle("PUT /api/shifts/status", s.authMiddleware(s.updateShiftStatus))
	mux.Handle("GET /api/rates", s.authMiddleware(s.listRates))
	mux.Handle("POST /api/conversations", s.authMiddleware(s.createConversation))
	mux.Handle("GET /api/conversations", s.authMiddleware(s.listConversations))
	mux.Handle("GET /api/messages", s.authMiddleware(s.getMessages))

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept", "Authorization"}),
		handlers.AllowCredentials(),
	)(mux)

	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *VacationApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *VacationApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
