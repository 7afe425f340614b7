package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type ResetPolicy string

const (
	ResetRetain ResetPolicy = "retain"
	ResetDelete ResetPolicy = "delete"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	StoreDriver string // memory|file|sqlite|postgres
	DBDSN       string
	StoreFile   string

	BlobBasePath string
	CatalogXLSX  string // optional menu workbook; built-in menu when empty

	IdentitySecret string
	IdentityCookie string
	IdentityTTL    time.Duration

	QuizReadyViews int
	SelectorSeed   uint64

	ResetPolicy      ResetPolicy
	RetentionIdleTTL time.Duration
	PruneInterval    time.Duration

	CORSOrigins []string

	AdminUser     string
	AdminPassHash string // bcrypt; empty disables /admin

	LogLevel  string
	LogFormat string

	ShutdownTimeout time.Duration
}

func defaults(v *viper.Viper) {
	v.SetDefault("MODE", string(ModeOffline))
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("STORE_DRIVER", "file")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("STORE_FILE", "user_data.json")
	v.SetDefault("BLOB_BASE_PATH", "./static")
	v.SetDefault("CATALOG_XLSX", "")
	v.SetDefault("IDENTITY_SECRET", "")
	v.SetDefault("IDENTITY_COOKIE", "user_id")
	v.SetDefault("IDENTITY_TTL", "8760h")
	v.SetDefault("QUIZ_READY_VIEWS", 3)
	v.SetDefault("SELECTOR_SEED", 0)
	v.SetDefault("RESET_POLICY", string(ResetRetain))
	v.SetDefault("RETENTION_IDLE_TTL", "0s")
	v.SetDefault("PRUNE_INTERVAL", "1h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("ADMIN_USER", "admin")
	v.SetDefault("ADMIN_PASS_HASH", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// Load reads envFile (if it exists) into the process environment and then
// builds the config. Variables already set win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func FromEnv() Config {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	mode := Mode(strings.ToLower(v.GetString("MODE")))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:             mode,
		HTTPAddr:         v.GetString("HTTP_ADDR"),
		StoreDriver:      strings.ToLower(v.GetString("STORE_DRIVER")),
		DBDSN:            v.GetString("DB_DSN"),
		StoreFile:        v.GetString("STORE_FILE"),
		BlobBasePath:     v.GetString("BLOB_BASE_PATH"),
		CatalogXLSX:      v.GetString("CATALOG_XLSX"),
		IdentitySecret:   v.GetString("IDENTITY_SECRET"),
		IdentityCookie:   v.GetString("IDENTITY_COOKIE"),
		IdentityTTL:      v.GetDuration("IDENTITY_TTL"),
		QuizReadyViews:   v.GetInt("QUIZ_READY_VIEWS"),
		SelectorSeed:     v.GetUint64("SELECTOR_SEED"),
		ResetPolicy:      ResetPolicy(strings.ToLower(v.GetString("RESET_POLICY"))),
		RetentionIdleTTL: v.GetDuration("RETENTION_IDLE_TTL"),
		PruneInterval:    v.GetDuration("PRUNE_INTERVAL"),
		CORSOrigins:      splitCSV(v.GetString("CORS_ORIGINS")),
		AdminUser:        v.GetString("ADMIN_USER"),
		AdminPassHash:    v.GetString("ADMIN_PASS_HASH"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case "memory", "file", "sqlite", "postgres":
	default:
		return fmt.Errorf("STORE_DRIVER: unsupported value %q", c.StoreDriver)
	}
	switch c.ResetPolicy {
	case ResetRetain, ResetDelete:
	default:
		return fmt.Errorf("RESET_POLICY: must be retain or delete, got %q", c.ResetPolicy)
	}
	if c.QuizReadyViews < 1 {
		return fmt.Errorf("QUIZ_READY_VIEWS: must be at least 1, got %d", c.QuizReadyViews)
	}
	if c.RetentionIdleTTL < 0 {
		return errors.New("RETENTION_IDLE_TTL: must not be negative")
	}
	if c.Mode == ModeOnline && c.IdentitySecret == "" {
		return errors.New("IDENTITY_SECRET is required in online mode")
	}
	return nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
