package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/members-site/internal/auth"
	"github.com/ayush/members-site/internal/config"
	"github.com/ayush/members-site/internal/gallery"
	"github.com/ayush/members-site/internal/middleware"
	"github.com/ayush/members-site/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer mongoClient.Disconnect(ctx)
	users := store.NewMongoUserStore(mongoClient.Database(cfg.MongoDB))
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()
	sessions := auth.NewSessionStore(rdb)

	// ── Members gallery ──────────────────────────────────────
	images := gallery.New(cfg.ImageDir)
	if err := images.Reload(); err != nil {
		// Not fatal: the members page retries and surfaces the failure.
		log.Warn().Err(err).Msg("image set unavailable at startup")
	}

	// ── Handlers ─────────────────────────────────────────────
	signer := auth.NewCookieSigner(cfg.SessionSecret)
	svc := auth.NewService(users, auth.NewBcryptHasher(), sessions, images)
	h := auth.NewHandler(svc, signer, log)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithSession(sessions, signer, log))

	r.Get("/", h.Home)
	r.Get("/signup", h.SignupPage)
	r.Post("/signup", h.Signup)
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.With(middleware.RequireAuth).Get("/members", h.Members)
	r.Get("/logout", h.Logout)
	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImageDir))))
	r.NotFound(h.NotFound)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
