package main

import (
	"context"
	"os"

	"orderfront/internal/backend/rest"
	"orderfront/internal/front"
	cartservice "orderfront/internal/service/cart"
	checkoutservice "orderfront/internal/service/checkout"
	"orderfront/internal/session"
	"orderfront/pkg/config"
	"orderfront/pkg/lib/logger"
	"orderfront/pkg/lib/logger/sl"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.SetupLogger(cfg.Client.Env)
	if err != nil {
		panic(err)
	}

	sess := session.New()
	client := rest.New(log, cfg.Client.BaseURL, cfg.Client.Timeout, sess)
	cart := cartservice.New(log, client)
	checkout := checkoutservice.New(log, cart, sess, client)

	app := front.New(log, client, sess, cart, checkout, os.Stdin, os.Stdout)
	if err := app.Run(context.Background()); err != nil {
		log.Error("Front end exited with error", sl.Err(err))
		os.Exit(1)
	}
}
