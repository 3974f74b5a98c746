package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"novel-board/internal/utils"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

const (
	AIClientOpenAI = "openai"
	AIClientOllama = "ollama"

	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

// Config содержит конфигурацию сервера историй и доски.
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	Port        string `envconfig:"PORT" default:"8000"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	StaticDir          string `envconfig:"STATIC_DIR" default:"public"`
	// Запросов к /api/generate-* в минуту с одного IP. 0 отключает лимит.
	GenerationRateLimit uint `envconfig:"GENERATION_RATE_LIMIT" default:"60"`

	// Настройки AI
	AIClientType  string        `envconfig:"AI_CLIENT_TYPE" default:"openai"`
	AIBaseURL     string        `envconfig:"AI_BASE_URL" default:"https://api.openai.com/v1"`
	AIModel       string        `envconfig:"AI_MODEL" default:"gpt-4o"`
	AITimeout     time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
	AIMaxAttempts int           `envconfig:"AI_MAX_ATTEMPTS" default:"5"`
	AIRetryDelay  time.Duration `envconfig:"AI_RETRY_DELAY" default:"1s"`
	// Ключ из env или из секрета ai_api_key
	AIAPIKey string `envconfig:"OPENAI_API_KEY"`

	// Хранилище доски
	DBDriver      string        `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath    string        `envconfig:"SQLITE_PATH" default:"./public/stories.db"`
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"postgres"`
	DBName        string        `envconfig:"DB_NAME" default:"novel_board"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_MINUTES" default:"5m"`
	// Пароль из env или из секрета db_password
	DBPassword string `envconfig:"DB_PASSWORD"`
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// AllowAllOrigins сообщает, разрешены ли запросы с любого origin.
func (c *Config) AllowAllOrigins() bool {
	for _, o := range c.GetAllowedOrigins() {
		if o == "*" {
			return true
		}
	}
	return false
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig загружает конфигурацию из .env, переменных окружения и секретов.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	cfg.AIClientType = strings.ToLower(strings.TrimSpace(cfg.AIClientType))
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))

	switch cfg.AIClientType {
	case AIClientOpenAI:
		key, err := utils.SecretOrEnv(cfg.AIAPIKey, "ai_api_key")
		if err != nil {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set and secret is unavailable: %w", err)
		}
		cfg.AIAPIKey = key
	case AIClientOllama:
		// ключ не нужен
	default:
		return nil, fmt.Errorf("unsupported AI_CLIENT_TYPE %q", cfg.AIClientType)
	}

	switch cfg.DBDriver {
	case DBDriverSQLite:
		if strings.TrimSpace(cfg.SQLitePath) == "" {
			return nil, fmt.Errorf("SQLITE_PATH must not be empty")
		}
	case DBDriverPostgres:
		pass, err := utils.SecretOrEnv(cfg.DBPassword, "db_password")
		if err != nil {
			return nil, fmt.Errorf("DB_PASSWORD is not set and secret is unavailable: %w", err)
		}
		cfg.DBPassword = pass
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.AIMaxAttempts < 1 {
		return nil, fmt.Errorf("AI_MAX_ATTEMPTS must be >= 1, got %d", cfg.AIMaxAttempts)
	}
	if cfg.AIRetryDelay < 0 {
		return nil, fmt.Errorf("AI_RETRY_DELAY must not be negative")
	}

	return &cfg, nil
}

// Log выводит загруженную конфигурацию, скрывая секреты.
func (c *Config) Log(logger *zap.Logger) {
	fields := []zap.Field{
		zap.String("env", c.Env),
		zap.String("port", c.Port),
		zap.Strings("cors_allowed_origins", c.GetAllowedOrigins()),
		zap.String("static_dir", c.StaticDir),
		zap.Uint("generation_rate_limit", c.GenerationRateLimit),
		zap.String("ai_client_type", c.AIClientType),
		zap.String("ai_base_url", c.AIBaseURL),
		zap.String("ai_model", c.AIModel),
		zap.Duration("ai_timeout", c.AITimeout),
		zap.Int("ai_max_attempts", c.AIMaxAttempts),
		zap.Duration("ai_retry_delay", c.AIRetryDelay),
		zap.String("ai_api_key", utils.Mask(c.AIAPIKey)),
		zap.String("db_driver", c.DBDriver),
	}
	if c.DBDriver == DBDriverPostgres {
		fields = append(fields,
			zap.String("db_host", c.DBHost),
			zap.String("db_port", c.DBPort),
			zap.String("db_user", c.DBUser),
			zap.String("db_name", c.DBName),
			zap.String("db_ssl_mode", c.DBSSLMode),
			zap.Int("db_max_connections", c.DBMaxConns),
			zap.String("db_password", utils.Mask(c.DBPassword)),
		)
	} else {
		fields = append(fields, zap.String("sqlite_path", c.SQLitePath))
	}
	logger.Info("Configuration loaded", fields...)
}
