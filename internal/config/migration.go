package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies every pending migration under
// internal/db/migrations.
func RunMigrations(cfg DBConfig) {
	user := url.QueryEscape(cfg.User)
	pass := url.QueryEscape(cfg.Password)

	migrateURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		user, pass, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode,
	)

	path, _ := os.Getwd()
	migrationsPath := fmt.Sprintf("file://%s/internal/db/migrations", strings.ReplaceAll(path, "\\", "/"))

	m, err := migrate.New(migrationsPath, migrateURL)
	if err != nil {
		log.Fatalf("creating migrator: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatalf("applying migrations: %v", err)
	}

	log.Println("Migraciones aplicadas correctamente")
}
