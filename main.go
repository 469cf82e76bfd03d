package main

import (
	"crypto/tls"
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"

	"github.com/username/dividendvisor/backend/src/config"
	"github.com/username/dividendvisor/backend/src/handlers"
	"github.com/username/dividendvisor/backend/src/logger"
	"github.com/username/dividendvisor/backend/src/parsers/etoro"
	"github.com/username/dividendvisor/backend/src/processors"
	"github.com/username/dividendvisor/backend/src/services"
)

func proxyHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Forwarded-Proto") == "https" {
			r.URL.Scheme = "https"
			r.TLS = &tls.ConnectionState{}
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("DividendVisor backend server starting...")

	reportCache := cache.New(config.Cfg.CacheExpiration, config.Cfg.CacheCleanupInterval)

	uploadService := services.NewUploadService(
		etoro.NewParser(),
		processors.NewRecordCleaner(),
		processors.NewAggregator(),
		processors.NewForecaster(),
		processors.NewMetricsCalculator(),
		reportCache,
	)

	uploadHandler := handlers.NewUploadHandler(uploadService)
	dividendHandler := handlers.NewDividendHandler(uploadService)
	companyHandler := handlers.NewCompanyHandler()

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(proxyHeadersMiddleware)
	r.Use(handlers.CORSMiddleware(config.Cfg.AllowedOrigins))
	r.Use(handlers.RateLimitMiddleware(config.Cfg.RateLimitRPS, config.Cfg.RateLimitBurst))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "DividendVisor Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", uploadHandler.HandleUpload)

		r.Route("/uploads/{uploadID}", func(r chi.Router) {
			r.Get("/", dividendHandler.HandleGetUploadResult)
			r.Put("/sheet", dividendHandler.HandleSelectSheet)
			r.Get("/records", dividendHandler.HandleGetRecords)
			r.Get("/by-date", dividendHandler.HandleGetByDate)
			r.Get("/by-instrument", dividendHandler.HandleGetByInstrument)
			r.Get("/forecast", dividendHandler.HandleGetForecast)
			r.Get("/metrics", dividendHandler.HandleGetMetrics)
		})

		r.Get("/companies", companyHandler.HandleListCompanies)
		r.Get("/companies/search", companyHandler.HandleSearchCompanies)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
		}
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
