package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/zoubayerBS/myrepository-sub000/internal/api"
	"github.com/zoubayerBS/myrepository-sub000/internal/config"
	"github.com/zoubayerBS/myrepository-sub000/internal/database"
	"github.com/zoubayerBS/myrepository-sub000/internal/relay"
	"github.com/zoubayerBS/myrepository-sub000/internal/stats"
)

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, strings.Split(value, ",")...)
	return nil
}

var (
	addr           string
	relayAddr      string
	dsn            string
	signingKey     string
	allowedOrigins stringSliceFlag
)

func main() {
	config.LoadEnv()

	flag.StringVar(&addr, "addr", config.Getenv("SERVER_ADDR", "localhost:8000"), "server address")
	flag.StringVar(&relayAddr, "relay-addr", config.Getenv("RELAY_ADDR", "localhost:8001"), "relay address")
	flag.StringVar(&dsn, "dsn", config.Getenv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=postgres sslmode=disable"), "database connection string")
	flag.StringVar(&signingKey, "signing-key", config.Getenv("SIGNING_KEY", ""), "base64 encoded signing key shared with the identity provider")
	flag.Var(&allowedOrigins, "allowed-origins", "comma-separated list of allowed origins for CORS")
	flag.Parse()

	if len(allowedOrigins) == 0 && os.Getenv("ALLOWED_ORIGINS") != "" {
		allowedOrigins.Set(os.Getenv("ALLOWED_ORIGINS"))
	}

	logger := log.New(os.Stderr, "[vacation] ", log.LstdFlags)

	cfg, err := config.NewConfig(addr, relayAddr, dsn, signingKey, allowedOrigins)
	if err != nil {
		logger.Fatal("config:", err)
	}

	dbConn, err := database.NewPgVacationRepository(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("db open:", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Fatal("db close:", err)
		}
	}()

	mux := http.NewServeMux()

	statsUpdater := stats.NewStatsUpdater(mux)

	registry := relay.NewRegistry()
	dispatcher := relay.NewDispatcher(logger, dbConn, registry, statsUpdater)
	relaySrv := relay.NewRelayServer(logger, registry, dispatcher, statsUpdater, cfg)

	srv := api.NewVacationApp(mux, logger, dbConn, statsUpdater, cfg)

	statsUpdater.Run()
	defer statsUpdater.Stop()

	errCh := make(chan error, 2)
	go func() {
		errCh <- srv.Start()
	}()
	go func() {
		errCh <- relaySrv.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Printf("received signal: %s\n", sig)
	case err := <-errCh:
		logger.Println("server:", err)
	}

	shutDownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("HTTP server shutdown:", err)
	}

	if err := relaySrv.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("relay shutdown:", err)
	}

	logger.Println("shutdown complete")
}
