package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string `env:"HTTP_PORT"   envDefault:"8080"`
	DBHost     string `env:"DB_HOST,required"`
	DBPort     string `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBName     string `env:"DB_NAME,required"`
	DBSslMode  string `env:"DB_SSLMODE"  envDefault:"disable"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	UserCacheSize int           `env:"USER_CACHE_SIZE" envDefault:"1024"`
	UserCacheTTL  time.Duration `env:"USER_CACHE_TTL"  envDefault:"1m"`

	OverdueJobSchedule    string   `env:"OVERDUE_JOB_SCHEDULE"     envDefault:"0 0 * * * *"`
	TrackingIDMaxAttempts int      `env:"TRACKING_ID_MAX_ATTEMPTS" envDefault:"3"`
	CORSAllowOrigins      []string `env:"CORS_ALLOW_ORIGINS"       envDefault:"*" envSeparator:","`
}

// LoadConfig reads the environment after loading envFile into it. A missing
// envFile is not an error; variables already set take precedence over it.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.UserCacheSize < 1 {
		return Config{}, fmt.Errorf("USER_CACHE_SIZE must be positive, got %d", cfg.UserCacheSize)
	}
	return cfg, nil
}
