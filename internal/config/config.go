// Package config loads service configuration from the environment, the
// way the teacher's auth-service does: cleanenv for typed fields with
// defaults, godotenv for local .env convenience.
package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Challenge ChallengeConfig
	Vision    VisionConfig
	Verify    VerifyConfig
	Logging   LoggingConfig
	Metrics   MetricsConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

type DatabaseConfig struct {
	Backend     string `env:"STORAGE_BACKEND" env-default:"postgres"` // postgres | memory
	Host        string `env:"DATABASE_HOST" env-default:"localhost"`
	Port        int    `env:"DATABASE_PORT" env-default:"5432"`
	User        string `env:"DATABASE_USER" env-default:"postgres"`
	Password    string `env:"DATABASE_PASSWORD" env-default:"postgres"`
	DBName      string `env:"DATABASE_NAME" env-default:"proof_of_life"`
	SSLMode     string `env:"DATABASE_SSLMODE" env-default:"disable"`
	AutoMigrate bool   `env:"DATABASE_AUTO_MIGRATE" env-default:"true"`
}

type JWTConfig struct {
	Secret        string `env:"JWT_SECRET" env-required:"true"`
	ExpiryMinutes int    `env:"JWT_EXPIRY_MINUTES" env-default:"5"`
	Issuer        string `env:"JWT_ISSUER" env-default:"proof-of-life"`
}

// Expiry returns the configured access-token lifetime as a time.Duration.
func (j JWTConfig) Expiry() time.Duration {
	return time.Duration(j.ExpiryMinutes) * time.Minute
}

type ChallengeConfig struct {
	ExpirySeconds int `env:"CHALLENGE_EXPIRY_SECONDS" env-default:"120"`
	StepCount     int `env:"CHALLENGE_STEP_COUNT" env-default:"3"`
	GraceSeconds  int `env:"CHALLENGE_GRACE_SECONDS" env-default:"60"`
}

// Expiry returns the configured challenge TTL as a time.Duration.
func (c ChallengeConfig) Expiry() time.Duration {
	return time.Duration(c.ExpirySeconds) * time.Second
}

// Grace returns the configured post-expiry grace period before sweep.
func (c ChallengeConfig) Grace() time.Duration {
	return time.Duration(c.GraceSeconds) * time.Second
}

type VisionConfig struct {
	FrameWidth            int     `env:"VISION_FRAME_WIDTH" env-default:"320"`
	EARThreshold          float64 `env:"VISION_EAR_THRESHOLD" env-default:"0.21"`
	MARThreshold          float64 `env:"VISION_MAR_THRESHOLD" env-default:"0.55"`
	HeadTurnThreshold     float64 `env:"VISION_HEAD_TURN_THRESHOLD" env-default:"0.035"`
	MinConsecutiveFrames  int     `env:"VISION_MIN_CONSECUTIVE_FRAMES" env-default:"2"`
	ExtractionWorkers     int     `env:"VISION_EXTRACTION_WORKERS" env-default:"0"` // 0 = runtime.NumCPU()
}

type VerifyConfig struct {
	MinFrames             int     `env:"VERIFY_MIN_FRAMES" env-default:"5"`
	MaxFrames             int     `env:"VERIFY_MAX_FRAMES" env-default:"30"`
	MaxDecodeFailureRatio float64 `env:"VERIFY_MAX_DECODE_FAILURE_RATIO" env-default:"0.5"`
	TimeoutSeconds        int     `env:"VERIFY_TIMEOUT_SECONDS" env-default:"10"`
}

// Timeout returns the configured per-verify wall-clock budget.
func (v VerifyConfig) Timeout() time.Duration {
	return time.Duration(v.TimeoutSeconds) * time.Second
}

type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

type MetricsConfig struct {
	Enabled bool `env:"METRICS_ENABLED" env-default:"true"`
}

type CORSConfig struct {
	AllowedOrigin string `env:"CORS_ALLOWED_ORIGIN" env-default:"*"`
}

// Load reads configuration from a local .env file (if present) and the
// process environment, applying defaults for anything unset.
func Load() (*Config, error) {
	_ = godotenv.Load() // local .env is optional; ignore absence

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Vision.ExtractionWorkers <= 0 {
		cfg.Vision.ExtractionWorkers = runtime.NumCPU()
	}
	return &cfg, nil
}
