package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // часовые пояса доступны и в минимальном образе

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
// Например GAMEBOOKING_DATABASE_PASSWORD или GAMEBOOKING_AUTH_JWT_SECRET
const EnvPrefix = "GAMEBOOKING"

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Auth          AuthConfig          `toml:"auth"`
	Booking       BookingConfig       `toml:"booking"`
	Reclaimer     ReclaimerConfig     `toml:"reclaimer"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"http_port"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" envconfig:"host"`
	Port            int    `toml:"port" envconfig:"port"`
	User            string `toml:"user" envconfig:"user"`
	Password        string `toml:"password" envconfig:"password"`
	DBName          string `toml:"dbname" envconfig:"dbname"`
	SSLMode         string `toml:"sslmode" envconfig:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate" envconfig:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" envconfig:"level"`
	File  string `toml:"file" envconfig:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"enabled"`
	Path        string `toml:"path" envconfig:"path"`
	ServiceName string `toml:"service_name" envconfig:"service_name"`
}

// AuthConfig проверка JWT, выпущенных сервисом аутентификации
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" envconfig:"jwt_secret"`
	Issuer    string `toml:"issuer" envconfig:"issuer"` // пустой - не проверяется
}

// BookingConfig бизнес-правила сетки слотов и бронирований
type BookingConfig struct {
	OpenTime             string `toml:"open_time" envconfig:"open_time"`   // HH:MM
	CloseTime            string `toml:"close_time" envconfig:"close_time"` // HH:MM
	SlotMinutes          int    `toml:"slot_minutes" envconfig:"slot_minutes"`
	DailyQuotaPerType    int    `toml:"daily_quota_per_type" envconfig:"daily_quota_per_type"`
	CheckInWindowMinutes int    `toml:"check_in_window_minutes" envconfig:"check_in_window_minutes"`
	ReclaimLeadMinutes   int    `toml:"reclaim_lead_minutes" envconfig:"reclaim_lead_minutes"`
	Timezone             string `toml:"timezone" envconfig:"timezone"`
}

// Policy собирает domain.BookingPolicy
func (b BookingConfig) Policy() (domain.BookingPolicy, error) {
	openAt, err := parseClock(b.OpenTime)
	if err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("booking.open_time: %w", err)
	}
	closeAt, err := parseClock(b.CloseTime)
	if err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("booking.close_time: %w", err)
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("booking.timezone: %w", err)
	}

	policy := domain.BookingPolicy{
		OpenAt:            openAt,
		CloseAt:           closeAt,
		SlotDuration:      time.Duration(b.SlotMinutes) * time.Minute,
		DailyQuotaPerType: b.DailyQuotaPerType,
		CheckInWindow:     time.Duration(b.CheckInWindowMinutes) * time.Minute,
		ReclaimLeadTime:   time.Duration(b.ReclaimLeadMinutes) * time.Minute,
		Location:          loc,
	}
	if err := policy.Validate(); err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("booking: %w", err)
	}
	return policy, nil
}

// ReclaimerConfig настройки фонового освобождения неподтверждённых бронирований
type ReclaimerConfig struct {
	Enabled         bool `toml:"enabled" envconfig:"enabled"`
	IntervalSeconds int  `toml:"interval_seconds" envconfig:"interval_seconds"`
}

// Interval период запуска
func (r ReclaimerConfig) Interval() time.Duration {
	return time.Duration(r.IntervalSeconds) * time.Second
}

// NotificationsConfig настройки отправки уведомлений через RabbitMQ
type NotificationsConfig struct {
	Enabled        bool   `toml:"enabled" envconfig:"enabled"`
	AMQPURL        string `toml:"amqp_url" envconfig:"amqp_url"`
	Exchange       string `toml:"exchange" envconfig:"exchange"`
	PublishTimeout int    `toml:"publish_timeout" envconfig:"publish_timeout"` // секунды
}

// Load читает конфигурацию из TOML файла, затем из .env и переменных окружения
// Переменные окружения имеют приоритет над файлом
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 15)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.SSLMode, "disable")
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	setDefault(&c.Logs.Level, "info")

	setDefault(&c.Metrics.Path, "/metrics")
	setDefault(&c.Metrics.ServiceName, "game-booking-service")

	setDefault(&c.Booking.OpenTime, fmt.Sprintf("%02d:00", domain.DefaultOpenHour))
	setDefault(&c.Booking.CloseTime, fmt.Sprintf("%02d:00", domain.DefaultCloseHour))
	setDefault(&c.Booking.SlotMinutes, int(domain.DefaultSlotDuration/time.Minute))
	setDefault(&c.Booking.DailyQuotaPerType, domain.DefaultDailyQuotaPerType)
	setDefault(&c.Booking.CheckInWindowMinutes, int(domain.DefaultCheckInWindow/time.Minute))
	setDefault(&c.Booking.ReclaimLeadMinutes, int(domain.DefaultReclaimLeadTime/time.Minute))
	setDefault(&c.Booking.Timezone, "UTC")

	setDefault(&c.Reclaimer.IntervalSeconds, 60)

	setDefault(&c.Notifications.Exchange, "notifications")
	setDefault(&c.Notifications.PublishTimeout, 5)
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d is out of range", c.Server.HTTPPort))
	}
	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if _, err := c.Booking.Policy(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Reclaimer.IntervalSeconds <= 0 {
		problems = append(problems, "reclaimer.interval_seconds must be positive")
	}
	if c.Notifications.Enabled && c.Notifications.AMQPURL == "" {
		problems = append(problems, "notifications.amqp_url is required when notifications are enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

// parseClock разбирает HH:MM в смещение от полуночи
func parseClock(raw string) (time.Duration, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", raw)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
