package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/adapters/out/postgres/userrepo"

	"github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionSettings locates the PostgreSQL server.
type ConnectionSettings struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns a key/value connection string for dbName.
func (s ConnectionSettings) DSN(dbName string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, dbName, s.SSLMode)
}

// EnsureDatabase creates s.DBName when it does not exist yet. It connects to
// the "postgres" maintenance database to do so.
func EnsureDatabase(ctx context.Context, s ConnectionSettings) error {
	db, err := sql.Open("postgres", s.DSN("postgres"))
	if err != nil {
		return fmt.Errorf("open maintenance database: %w", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", s.DBName,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database %q: %w", s.DBName, err)
	}
	if exists {
		return nil
	}

	if _, err = db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(s.DBName)); err != nil {
		return fmt.Errorf("create database %q: %w", s.DBName, err)
	}
	return nil
}

// Open connects GORM to s.DBName. Driver errors are left untranslated so
// repositories can tell unique constraints apart by name.
func Open(s ConnectionSettings, logLevel logger.LogLevel) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.Open(s.DSN(s.DBName)), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
}

// Models lists every persisted DTO.
func Models() []any {
	return []any{
		&userrepo.UserDTO{},
		&parcelrepo.ParcelDTO{},
		&parcelrepo.StatusLogDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
