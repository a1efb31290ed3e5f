package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dcode-github/property_chatbot/backend/cache"
	"github.com/dcode-github/property_chatbot/backend/config"
	"github.com/dcode-github/property_chatbot/backend/middleware"
	"github.com/dcode-github/property_chatbot/backend/models"
	"github.com/dcode-github/property_chatbot/backend/notify"
	"github.com/dcode-github/property_chatbot/backend/routes"
	"github.com/dcode-github/property_chatbot/backend/services"
	"github.com/dcode-github/property_chatbot/backend/store"
	"github.com/dcode-github/property_chatbot/backend/utils"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
)

func openStore(cfg *config.Config) (store.PropertyStore, func(), error) {
	if cfg.StoreBackend != config.BackendMongo {
		return store.OpenFileStore(cfg.PropertiesFile), func() {}, nil
	}

	client, err := config.ConnectDB(cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	collection, err := config.PropertyCollection(client, cfg.MongoDB)
	if err != nil {
		config.CloseDBConnection(client)
		return nil, nil, err
	}
	return store.NewMongoStore(collection), func() { config.CloseDBConnection(client) }, nil
}

func openCache(cfg *config.Config) (cache.MatchCache, func()) {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADD not set, match cache disabled")
		return cache.Nop{}, func() {}
	}
	client, err := config.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Printf("Redis unavailable, match cache disabled: %v", err)
		return cache.Nop{}, func() {}
	}
	return cache.NewRedisMatchCache(client, cfg.CacheTTL), func() {
		if err := client.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}
}

func setupRouter(d routes.Dependencies) *mux.Router {
	router := mux.NewRouter()
	routes.Routes(router, d)
	return router
}

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	for _, w := range cfg.Warnings() {
		log.Printf("WARNING: %s", w)
	}

	propertyStore, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open property store: %v", err)
	}
	defer closeStore()

	matchCache, closeCache := openCache(cfg)
	defer closeCache()

	passwordHash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	mailer := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:     cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		Username: cfg.EmailAddress,
		Password: cfg.EmailPassword,
		Timeout:  cfg.SMTPTimeout,
	})

	router := setupRouter(routes.Dependencies{
		Store:       propertyStore,
		Cache:       matchCache,
		Submissions: services.NewSubmissionService(propertyStore, mailer),
		Admin:       services.NewAdminService(propertyStore, matchCache),
		Account:     models.Admin{Username: cfg.AdminUsername, PasswordHash: passwordHash},
		Sessions:    middleware.NewSessionAuth(cfg.SecretKey, cfg.SessionTTL, cfg.SecureCookies),
		ImagesDir:   cfg.ImagesDir,
	})

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	handler := corsOptions.Handler(router)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   cfg.SMTPTimeout + 10*time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server error: %v", err)
		return
	}
	log.Println("Server gracefully stopped")
}
