package http

import (
	"html/template"

	"github.com/MKhiriev/go-login-service/internal/config"
	"github.com/MKhiriev/go-login-service/internal/logger"
	"github.com/MKhiriev/go-login-service/internal/service"
)

type Handler struct {
	services *service.Services

	// cookie and routing behaviour comes from the application and server
	// config sections.
	appCfg    config.App
	serverCfg config.Server

	templates *template.Template

	logger *logger.Logger
}

func NewHandler(services *service.Services, appCfg config.App, serverCfg config.Server, logger *logger.Logger) (*Handler, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		appCfg:    appCfg,
		serverCfg: serverCfg,
		templates: templates,
		logger:    logger,
	}, nil
}
