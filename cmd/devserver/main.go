package main

import (
	"os"
	"os/signal"
	"syscall"

	"orderfront/internal/database/psql"
	"orderfront/internal/events"
	"orderfront/internal/server"
	"orderfront/pkg/config"
	"orderfront/pkg/lib/logger"
	"orderfront/pkg/lib/logger/sl"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.SetupLogger(cfg.Server.Env)
	if err != nil {
		panic(err)
	}

	storage, err := psql.New(log, cfg.ConnectionString())
	if err != nil {
		panic(err)
	}

	var publisher *events.Publisher
	if cfg.Server.AmqpURL != "" {
		publisher, err = events.NewPublisher(log, cfg.Server.AmqpURL)
		if err != nil {
			log.Error("Failed to connect to broker", sl.Err(err))
			panic(err)
		}
	}

	application := server.New(
		log,
		cfg.Server.Port,
		storage,
		cfg.Server.JWTSecret,
		cfg.Server.TokenTTL,
		publisher,
	)

	go func() {
		if err := application.Run(); err != nil {
			log.Error("Application failed to start", sl.Err(err))
			panic(err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGTERM, syscall.SIGINT)
	<-done

	log.Info("Closing database")
	storage.Close()
	publisher.Close()
}
