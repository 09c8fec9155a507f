package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Configはアプリ全体の設定。
// グローバルには置かず、main から各コンストラクタへ渡す。
type Config struct {
	App   App
	DB    DB
	JWT   JWT
	Mail  Mail
	CORS  CORS
	Admin Admin
}

type App struct {
	Port     string `env:"PORT" env-default:"8080"`
	GoEnv    string `env:"GO_ENV" env-default:"dev"` // dev/prod
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

type DB struct {
	Driver string `env:"STORE_DRIVER" env-default:"postgres"` // postgres/memory

	DatabaseURL string `env:"DATABASE_URL"`

	PostgresHost     string `env:"POSTGRES_HOST" env-default:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" env-default:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" env-default:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" env-default:"postgres"`
	PostgresDB       string `env:"POSTGRES_DB" env-default:"app"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" env-default:"disable"`

	RunMigrations  bool   `env:"RUN_MIGRATIONS" env-default:"true"`
	MigrationsPath string `env:"MIGRATIONS_PATH" env-default:"./migrations"`
}

type JWT struct {
	Secret    string        `env:"JWT_SECRET" env-required:"true"`
	AccessTTL time.Duration `env:"JWT_ACCESS_TTL" env-default:"24h"`
}

type Mail struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" env-default:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"MAIL_FROM" env-default:"no-reply@localhost"`

	//空なら管理者宛の通知は送らない
	AdminAddress string `env:"ADMIN_NOTIFY_EMAIL"`

	SendTimeout time.Duration `env:"MAIL_SEND_TIMEOUT" env-default:"15s"`
}

type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// 起動時に用意する管理者アカウント（任意）
type Admin struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
	Name     string `env:"ADMIN_NAME" env-default:"Admin"`
}

// Loadは .env（あれば）と環境変数から読み込む
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("env read error: %w", err)
	}

	//必須チェック
	switch cfg.DB.Driver {
	case "postgres", "memory":
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER must be postgres or memory")
	}
	if cfg.App.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWT.Secret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// DSNは DATABASE_URL があればそれを優先する
func (d DB) DSN() string {
	if d.DatabaseURL != "" {
		return d.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.PostgresHost, d.PostgresPort, d.PostgresUser, d.PostgresPassword, d.PostgresDB, d.PostgresSSLMode,
	)
}

// golang-migrate 用の URL 形式
func (d DB) MigrateURL() string {
	if d.DatabaseURL != "" {
		return d.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.PostgresUser, d.PostgresPassword, d.PostgresHost, d.PostgresPort, d.PostgresDB, d.PostgresSSLMode,
	)
}

func (a App) IsProd() bool {
	return strings.EqualFold(a.GoEnv, "prod")
}

// Addr は echo に渡すlisten アドレス
func (a App) Addr() string {
	if strings.HasPrefix(a.Port, ":") {
		return a.Port
	}
	return ":" + a.Port
}

func (a App) SlogLevel() slog.Level {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(a.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lv
}

// SMTP が設定されているか
func (m Mail) Enabled() bool {
	return m.Host != ""
}
