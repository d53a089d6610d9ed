package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"orderfront/internal/events"
	"orderfront/internal/server/handlers"
)

type App struct {
	log       *slog.Logger
	port      int
	storage   handlers.Storage
	jwtSecret string
	tokenTTL  time.Duration
	publisher *events.Publisher
}

func New(log *slog.Logger, port int, storage handlers.Storage, jwtSecret string, tokenTTL time.Duration, publisher *events.Publisher) *App {
	return &App{
		log:       log,
		port:      port,
		storage:   storage,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		publisher: publisher,
	}
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

func (a *App) Run() error {
	const op = "server.Run"

	handler := handlers.New(a.log, a.storage, a.jwtSecret, a.tokenTTL, a.publisher)
	routes := NewRoutes(a.log, handler, a.jwtSecret)

	mux := http.NewServeMux()
	routes.Register(mux)

	a.log.Info("Dev backend listening", "port", a.port)

	if err := http.ListenAndServe(
		fmt.Sprintf(":%d", a.port),
		mux,
	); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
