// Command createadmin seeds the first administrator account.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/alvimrfg/sistema-socio-40graus/internal/config"
	"github.com/alvimrfg/sistema-socio-40graus/internal/db"
	"github.com/alvimrfg/sistema-socio-40graus/internal/logger"
	"github.com/alvimrfg/sistema-socio-40graus/internal/user"
)

func main() {
	username := flag.String("username", "admin", "administrator username")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "administrator password (defaults to $ADMIN_PASSWORD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Init()
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := user.NewService(user.NewRepository(database), cfg.JWTSecret)
	u, created, err := svc.EnsureAdmin(ctx, *username, *password)
	if err != nil {
		logger.Fatalf("Failed to create admin: %v", err)
	}
	if !created {
		logger.Info("admin already exists", "user_id", u.ID, "username", u.Username)
		return
	}
	logger.Info("admin created", "user_id", u.ID, "username", u.Username)
}
