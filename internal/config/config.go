package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DriverSQLite 使用本地 sqlite 文件
	DriverSQLite = "sqlite"
	// DriverPostgres 使用 DATABASE_DSN 指向的 postgres 实例
	DriverPostgres = "postgres"

	// DefaultAPIKey 仅用于本地开发，生产环境必须通过 API_KEY 覆盖。
	DefaultAPIKey = "12345-ABCDE"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string
	Port            string
	DatabaseDriver  string
	DatabasePath    string
	DatabaseDSN     string
	APIKey          string
	GinMode         string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load 先尝试读取 .env 文件，再从环境变量读取应用配置，并为缺失项提供默认值。
func Load() AppConfig {
	// .env 缺失不是错误
	_ = godotenv.Load()

	port := getEnv("PORT", "3000")

	listenAddr := getEnv("LISTEN_ADDR", fmt.Sprintf(":%s", port))

	shutdownTimeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil || shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return AppConfig{
		ListenAddr:      listenAddr,
		Port:            port,
		DatabaseDriver:  strings.ToLower(getEnv("DATABASE_DRIVER", DriverSQLite)),
		DatabasePath:    getEnv("DATABASE_PATH", "moodcheckin.db"),
		DatabaseDSN:     getEnv("DATABASE_DSN", ""),
		APIKey:          getEnv("API_KEY", DefaultAPIKey),
		GinMode:         getEnv("GIN_MODE", "release"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "text")),
		ShutdownTimeout: shutdownTimeout,
	}
}

// Validate 检查配置组合是否可用。
func (c AppConfig) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			return errors.New("DATABASE_DSN is required when DATABASE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	if c.APIKey == "" {
		return errors.New("API_KEY must not be empty")
	}

	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported LOG_LEVEL %q", c.LogLevel)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.LogFormat)
	}

	return nil
}

// UsesDefaultAPIKey reports whether the dev secret is still in place.
func (c AppConfig) UsesDefaultAPIKey() bool {
	return c.APIKey == DefaultAPIKey
}

func getEnv(key, defaultVal string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultVal
}
