package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/klassrum/internal/app"
	"github.com/shrimpsizemoose/klassrum/internal/handlers"
)

func main() {
	service, err := app.NewService("config.toml")
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	if err := service.InitCatalog(); err != nil {
		logger.Error.Fatalf("Failed to seed catalog: %v", err)
	}

	authHandler := handlers.NewAuthHandler(service)
	catalogHandler := handlers.NewCatalogHandler(service)
	submissionHandler := handlers.NewSubmissionHandler(service)

	http.HandleFunc("POST /api/signup", authHandler.HandleSignup)
	http.HandleFunc("POST /api/login", authHandler.HandleLogin)
	http.HandleFunc("GET /api/modules", catalogHandler.HandleModules)
	http.HandleFunc("POST /api/upload/{userID}/{topicID}", submissionHandler.HandleUpload)
	http.HandleFunc("GET /api/progress/{userID}", catalogHandler.HandleProgress)

	http.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting klassrum server on %s", service.Config.Server.Port)
	if err := http.ListenAndServe(service.Config.Server.Port, nil); err != nil {
		logger.Error.Fatalf("Klassrum server failed: %v", err)
	}
}
