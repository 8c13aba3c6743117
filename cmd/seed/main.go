// Command seed creates the database tables and the admin account without
// starting the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/EmpoweredVote/DoseRight/internal/auth"
	"github.com/EmpoweredVote/DoseRight/internal/config"
	"github.com/EmpoweredVote/DoseRight/internal/db"
	"github.com/EmpoweredVote/DoseRight/internal/history"
	"github.com/EmpoweredVote/DoseRight/internal/logging"
	"github.com/EmpoweredVote/DoseRight/internal/session"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load(".env.local")
	cfg := config.LoadFromEnv()

	dsn := flag.String("dsn", cfg.DatabaseURL, "Postgres DSN or SQLite path (default: env DATABASE_URL)")
	password := flag.String("admin-password", cfg.AdminPassword, "Password for the admin account (default: env ADMIN_PASSWORD)")
	flag.Parse()

	lg, err := logging.New(cfg.LogLevel)
	if err != nil {
		fatalf("logger: %v", err)
	}
	defer lg.Sync()

	d, err := db.Connect(*dsn, lg)
	if err != nil {
		fatalf("%v", err)
	}
	defer db.Close(d)

	if err := auth.Init(d); err != nil {
		fatalf("%v", err)
	}
	if err := history.Init(d); err != nil {
		fatalf("%v", err)
	}
	if err := session.NewGormStore(d).Migrate(); err != nil {
		fatalf("migrate sessions: %v", err)
	}

	if err := auth.SeedAdmin(context.Background(), auth.NewStore(d), *password, lg); err != nil {
		fatalf("seed admin: %v", err)
	}
	lg.Info("seed complete", zap.String("dsn_kind", kind(*dsn)))
}

func kind(dsn string) string {
	if db.IsPostgresDSN(dsn) {
		return "postgres"
	}
	return "sqlite"
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "seed: "+format+"\n", args...)
	os.Exit(1)
}
