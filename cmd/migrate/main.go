package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"fractal.app/api/core/db"
	"fractal.app/api/core/db/migrations"
	"fractal.app/api/core/migrate"
)

func main() {
	_ = godotenv.Load(".env")

	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL DSN")
	table := flag.String("table", "", "bookkeeping table (default schema_migrations)")
	flag.Parse()

	if *dsn == "" {
		fail("missing DSN: provide via -dsn or DATABASE_URL")
	}
	if flag.NArg() == 0 {
		fail("usage: migrate [up|down|status]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	database, err := db.New(ctx, db.Config{DSN: *dsn, MaxConns: 2, MinConns: 1})
	if err != nil {
		fail("connecting to database", "error", err)
	}
	defer database.Close()

	sqlDB := database.SQL()
	defer sqlDB.Close()

	mgr := migrate.NewManager(sqlDB, migrations.FS, migrate.WithTable(*table))

	switch cmd := flag.Arg(0); cmd {
	case "up":
		ran, err := mgr.Up(ctx)
		if err != nil {
			fail("migrate up failed", "error", err)
		}
		slog.InfoContext(ctx, "migrations applied", "count", len(ran))
	case "down":
		name, err := mgr.Down(ctx)
		if errors.Is(err, migrate.ErrNothingToRollback) {
			slog.InfoContext(ctx, "nothing to roll back")
			return
		}
		if err != nil {
			fail("migrate down failed", "error", err)
		}
		slog.InfoContext(ctx, "migration rolled back", "name", name)
	case "status":
		applied, err := mgr.Status(ctx)
		if err != nil {
			fail("migrate status failed", "error", err)
		}
		for _, name := range applied {
			fmt.Println(name)
		}
	default:
		fail("unknown command", "command", cmd)
	}
}

func fail(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}
