package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-login-service/internal/config"
	handler "github.com/MKhiriev/go-login-service/internal/handler/http"
	"github.com/MKhiriev/go-login-service/internal/logger"
	"github.com/MKhiriev/go-login-service/internal/mailer"
	"github.com/MKhiriev/go-login-service/internal/server"
	"github.com/MKhiriev/go-login-service/internal/service"
	"github.com/MKhiriev/go-login-service/internal/store"
	"github.com/MKhiriev/go-login-service/internal/workers"
	"github.com/MKhiriev/go-login-service/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-login-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() { _ = storages.DB.Close() }()

	if err := migrations.Migrate(storages.DB.DB, storages.DB.Driver()); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	notifier := mailer.NewSMTPNotifier(cfg.Mail, cfg.App, log)

	services, err := service.NewServices(storages, cfg, notifier, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandler(services, cfg.App, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating http handler")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(ctx, storages, cfg.Workers, log).Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
