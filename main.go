package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "safari-backend/internal/config"
	intdb "safari-backend/internal/db"
	"safari-backend/internal/domain/models"
	router "safari-backend/internal/http"
	"safari-backend/internal/http/handlers"
	"safari-backend/internal/metrics"
	"safari-backend/internal/repositories"
	"safari-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("info: no .env file loaded: %v", err)
	}

	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	store, err := openStore(env)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer intconfig.CloseDB()

	metrics.Register()
	seedAdmin(env, store)

	hs := handlers.Handlers{
		Store:     store,
		Rules:     env.Rules,
		JWTSecret: []byte(env.JWTSecret),
	}
	r := router.NewRouter(env, hs)

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		services.Sweeper{Store: store, Interval: env.SweepInterval}.Run(sweepCtx)
	}()

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s (store=%s)", env.AppAddr, env.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	stopSweeper()
	<-sweeperDone

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}

func openStore(env intconfig.Env) (repositories.Store, error) {
	if env.StoreDriver == intconfig.StoreMemory {
		log.Println("warning: using the in-memory store; data is lost on restart and only one process may serve writes")
		return repositories.NewMemoryStore(), nil
	}
	db, err := intconfig.ConnectDB(env.DSN)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := intdb.EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	return repositories.NewSQLStore(db), nil
}

// seedAdmin creates or resets the manager account named by ADMIN_USERNAME.
func seedAdmin(env intconfig.Env, store repositories.Store) {
	if env.AdminUsername == "" || env.AdminPassword == "" {
		return
	}
	auth := services.AuthService{Store: store}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := auth.SeedStaff(ctx, env.AdminUsername, "Administrator", env.AdminPassword, models.RoleManager); err != nil {
		log.Printf("warning: failed to seed admin: %v", err)
	}
}
