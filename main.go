package main

import (
	"context"
	"encoding/json"
	stdlog "log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/skylart2025S/VTHacks/src/agent"
	"github.com/skylart2025S/VTHacks/src/config"
	"github.com/skylart2025S/VTHacks/src/database"
	"github.com/skylart2025S/VTHacks/src/datasource"
	"github.com/skylart2025S/VTHacks/src/handlers"
	"github.com/skylart2025S/VTHacks/src/logger"
	"github.com/skylart2025S/VTHacks/src/security"
	"github.com/skylart2025S/VTHacks/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == config.Cfg.FrontendBaseURL {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("RoomieLoot backend server starting...")

	if config.Cfg.JWTSecret == "" || len(config.Cfg.JWTSecret) < 32 {
		logger.L.Error("JWT_SECRET configuration invalid.")
		os.Exit(1)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	reportCache := cache.New(config.Cfg.ScoreCacheTTL, services.CacheCleanupInterval)

	authService := security.NewAuthService(config.Cfg.JWTSecret, config.Cfg.AccessTokenExpiry)
	source := datasource.NewSandboxSource()
	scoreService := services.NewScoreService(database.DB, source, reportCache, config.Cfg.TransactionWindowDays)
	syncService := services.NewSyncService(database.DB, source, scoreService, config.Cfg.TransactionWindowDays)

	var advisor *agent.Advisor
	if config.Cfg.GeminiAPIKey != "" {
		var err error
		advisor, err = agent.NewAdvisor(context.Background(), config.Cfg.GeminiAPIKey, config.Cfg.GeminiModel)
		if err != nil {
			logger.L.Error("Failed to initialize advisor, /api/advice will be unavailable", "error", err)
			advisor = nil
		}
	} else {
		logger.L.Warn("GEMINI_API_KEY not set, /api/advice will be unavailable")
	}

	authHandler := handlers.NewAuthHandler(authService)
	bankHandler := handlers.NewBankHandler(syncService)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	advisorHandler := handlers.NewAdvisorHandler(advisor, scoreService)
	gamificationHandler := handlers.NewGamificationHandler()

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "RoomieLoot Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", authHandler.RegisterUserHandler)
			r.Post("/auth/login", authHandler.LoginUserHandler)
			r.Post("/auth/refresh", authHandler.RefreshTokenHandler)
			r.With(authHandler.AuthMiddleware).Post("/auth/logout", authHandler.LogoutUserHandler)
			r.Get("/leaderboard", gamificationHandler.GetLeaderboardHandler)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authHandler.AuthMiddleware)

			r.Post("/bank/link-token", bankHandler.CreateLinkTokenHandler)
			r.Post("/bank/exchange", bankHandler.ExchangePublicTokenHandler)
			r.Get("/bank/accounts", bankHandler.GetAccountsHandler)
			r.Post("/bank/sync", bankHandler.SyncTransactionsHandler)
			r.Get("/bank/transactions", bankHandler.GetTransactionsHandler)
			r.Get("/bank/spending", bankHandler.SpendingByCategoryHandler)

			r.Get("/score", scoreHandler.GetScoreHandler)
			r.Get("/score/report", scoreHandler.GetReportHandler)

			r.Post("/advice", advisorHandler.AdviceHandler)

			r.Get("/profile", gamificationHandler.GetProfileHandler)
			r.Get("/achievements", gamificationHandler.GetAchievementsHandler)
		})
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
