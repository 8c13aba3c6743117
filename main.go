package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EmpoweredVote/DoseRight/internal/auth"
	"github.com/EmpoweredVote/DoseRight/internal/config"
	"github.com/EmpoweredVote/DoseRight/internal/db"
	"github.com/EmpoweredVote/DoseRight/internal/history"
	"github.com/EmpoweredVote/DoseRight/internal/logging"
	"github.com/EmpoweredVote/DoseRight/internal/medicine"
	"github.com/EmpoweredVote/DoseRight/internal/middleware"
	"github.com/EmpoweredVote/DoseRight/internal/oracle"
	_ "github.com/EmpoweredVote/DoseRight/internal/oracle/gemini"
	"github.com/EmpoweredVote/DoseRight/internal/pages"
	"github.com/EmpoweredVote/DoseRight/internal/scan"
	"github.com/EmpoweredVote/DoseRight/internal/session"
	"github.com/EmpoweredVote/DoseRight/internal/upload"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionSweepInterval = time.Hour

func main() {
	_ = godotenv.Load(".env.local")
	cfg := config.LoadFromEnv()

	lg, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, lg *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	database, err := db.Connect(cfg.DatabaseURL, lg)
	if err != nil {
		return err
	}
	defer db.Close(database)

	if err := auth.Init(database); err != nil {
		return err
	}
	if err := history.Init(database); err != nil {
		return err
	}

	users := auth.NewStore(database)
	if err := auth.SeedAdmin(ctx, users, cfg.AdminPassword, lg); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	store, closeStore, err := newSessionStore(ctx, cfg, database, lg)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions := session.NewManager(store, session.Options{
		TTL:         cfg.SessionTTL,
		RememberTTL: cfg.RememberTTL,
		Secure:      cfg.CookieSecure,
	}, lg.Named("session"))

	o, err := oracle.New(ctx, cfg, lg.Named("oracle"))
	if err != nil {
		return err
	}
	lg.Info("oracle ready", zap.String("oracle", o.Name()))

	images, err := upload.NewStore(ctx, cfg)
	if err != nil {
		return err
	}

	translator := medicine.NewStaticTranslator()
	if err := translator.Err(); err != nil {
		lg.Warn("tamil templates unavailable, using built-in text", zap.Error(err))
	}

	scans := history.NewStore(database)

	scanHandler := scan.NewHandler(scan.Deps{
		Oracle:     o,
		Images:     images,
		Rules:      upload.Rules{MaxBytes: cfg.MaxUploadBytes, AllowedExtensions: cfg.AllowedExtensions},
		History:    scans,
		Sessions:   sessions,
		Translator: translator,
		Mode:       medicine.ParseMode(cfg.Normalizer),
		Logger:     lg.Named("scan"),
	})
	authHandler := auth.NewHandler(users, sessions, scans, cfg.AuthRatePerMin, lg.Named("auth"))
	historyHandler := history.NewHandler(scans, lg.Named("history"))
	pageHandler := pages.NewHandler(users, lg)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.SessionMiddleware(sessions))

	pageHandler.Register(r)
	scanHandler.Register(r)
	r.Mount("/auth", authHandler.SetupRoutes())
	r.Mount("/history", historyHandler.SetupRoutes())

	if cfg.ImageStore != "s3" {
		prefix := cfg.UploadURLPrefix
		r.Handle(prefix+"/*", upload.FileServer(cfg.UploadDir, prefix))
	}

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newSessionStore returns the store selected by SESSION_STORE and a func that
// releases it. The database store also gets a background sweep of expired rows.
func newSessionStore(ctx context.Context, cfg config.Config, database *gorm.DB, lg *zap.Logger) (session.Store, func(), error) {
	if cfg.SessionStore == "redis" {
		rs, err := session.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		lg.Info("using redis session store", zap.String("addr", cfg.RedisAddr))
		return rs, func() { rs.Close() }, nil
	}

	gs := session.NewGormStore(database)
	if err := gs.Migrate(); err != nil {
		return nil, nil, fmt.Errorf("migrate sessions: %w", err)
	}

	sweepCtx, cancel := context.WithCancel(ctx)
	go func() {
		t := time.NewTicker(sessionSweepInterval)
		defer t.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case now := <-t.C:
				n, err := gs.DeleteExpired(sweepCtx, now)
				if err != nil {
					lg.Warn("session sweep failed", zap.Error(err))
				} else if n > 0 {
					lg.Info("expired sessions removed", zap.Int64("count", n))
				}
			}
		}
	}()
	return gs, cancel, nil
}
