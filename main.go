// MoodMoment API entry point. Initializes configuration, the database pool,
// services and handlers, mounts the HTTP router and middleware, and runs the
// server with graceful shutdown.
//
// @title MoodMoment API
// @version 1.0
// @description Mood journaling API: check-ins, history, weekly stats, wellness suggestions.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_TOKEN' to authorize
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/moodmoment-go/admin"
	"github.com/user/moodmoment-go/apperror"
	"github.com/user/moodmoment-go/auth"
	"github.com/user/moodmoment-go/config"
	"github.com/user/moodmoment-go/db"
	_ "github.com/user/moodmoment-go/docs" // generated swagger docs
	"github.com/user/moodmoment-go/moods"
	"github.com/user/moodmoment-go/users"
)

func main() {
	// .env loading is a development convenience; production sets real
	// environment variables.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewDBPool(cfg.DBPool)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DBPool, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userStore := auth.NewUserStore(pool)
	resetStore := auth.NewResetTokenStore(pool)
	moodStore := moods.NewStore(pool)

	r := newRouter(cfg.Auth, userStore, resetStore, moodStore)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// newRouter assembles the full route tree from the stores and auth
// configuration. Split out of main so tests can drive the complete router
// against in-memory stores.
func newRouter(authCfg *config.AuthConfig, userStore auth.UserStore, resetStore auth.ResetTokenStore, moodStore moods.Store) chi.Router {
	codec := auth.NewTokenCodec(*authCfg)

	authService := auth.NewService(userStore, resetStore, codec, *authCfg)
	authHandlers := auth.NewHandlers(authService)

	userHandlers := users.NewHandlers(users.NewService(userStore))
	moodHandlers := moods.NewHandlers(moods.NewService(moodStore))
	adminHandlers := admin.NewHandlers(admin.NewService(userStore, moodStore))

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that formats the failure through the apperror system,
	// so even a crashed handler answers with the standard error shape.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())
		r.Post("/password/reset/request", authHandlers.HandleResetRequest())
		r.Post("/password/reset/confirm", authHandlers.HandleResetConfirm())
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(auth.RequireAuth(codec, userStore))
		r.Get("/me", userHandlers.HandleGetProfile())
		r.Put("/me", userHandlers.HandleUpdateProfile())
	})

	r.Route("/moods", func(r chi.Router) {
		r.Use(auth.RequireAuth(codec, userStore))
		moodHandlers.RegisterRoutes(r)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.RequireAuth(codec, userStore))
		r.Use(auth.RequireAdmin)
		adminHandlers.RegisterRoutes(r)
	})

	return r
}

// writeError is a local helper for the panic recovery middleware.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"failed to encode error response"}`, http.StatusInternalServerError)
	}
}
