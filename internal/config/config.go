package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Драйверы хранилища
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Metrics   MetricsConfig   `toml:"metrics"`
	CORS      CORSConfig      `toml:"cors"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера. Таймауты в секундах.
type ServerConfig struct {
	HTTPPort        int   `toml:"http_port"`
	ReadTimeout     int   `toml:"read_timeout"`
	WriteTimeout    int   `toml:"write_timeout"`
	IdleTimeout     int   `toml:"idle_timeout"`
	ShutdownTimeout int   `toml:"shutdown_timeout"`
	MaxBodyBytes    int64 `toml:"max_body_bytes"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто = только stdout
}

type StorageConfig struct {
	Driver string `toml:"driver"` // memory | postgres
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// ScheduleConfig сетка слотов, которая создается при старте
type ScheduleConfig struct {
	Timezone    string `toml:"timezone"`
	DayStart    string `toml:"day_start"`
	DayEnd      string `toml:"day_end"`
	SlotMinutes int    `toml:"slot_minutes"`
	Workdays    int    `toml:"workdays"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
	// IP или CIDR прокси, которым доверяем X-Forwarded-For. Пусто = ключ по адресу соединения
	TrustedProxies []string `toml:"trusted_proxies"`
	IdleTTL        int      `toml:"idle_ttl"` // секунды
}

// Default возвращает конфигурацию по умолчанию: in-memory хранилище, порт 8080
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			MaxBodyBytes:    64 << 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Driver: DriverMemory,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "appointments",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Schedule: ScheduleConfig{
			Timezone:    "Local",
			DayStart:    string(domain.DefaultDayStart),
			DayEnd:      string(domain.DefaultDayEnd),
			SlotMinutes: domain.DefaultSlotDurationMinutes,
			Workdays:    domain.DefaultWorkdays,
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "appointment-service",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 60,
			Burst:             10,
			IdleTTL:           600,
		},
	}
}

// Load читает конфигурацию из TOML файла поверх значений по умолчанию,
// затем применяет переменные окружения и проверяет результат.
// Отсутствующий файл не является ошибкой.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет значения переменными окружения APP_*
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("APP_HTTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: APP_HTTP_PORT=%q is not a number", ErrInvalidConfig, v)
		}
		c.Server.HTTPPort = port
	}
	if v, ok := lookup("APP_LOG_LEVEL"); ok {
		c.Logs.Level = v
	}
	if v, ok := lookup("APP_STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := lookup("APP_DB_HOST"); ok {
		c.Database.Host = v
	}
	if v, ok := lookup("APP_DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := lookup("APP_TIMEZONE"); ok {
		c.Schedule.Timezone = v
	}
	return nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("%w: storage.driver=%q, expected %q or %q",
			ErrInvalidConfig, c.Storage.Driver, DriverMemory, DriverPostgres)
	}

	if _, err := c.Schedule.Build(); err != nil {
		return err
	}

	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("%w: rate_limit.requests_per_minute must be positive", ErrInvalidConfig)
	}
	for _, p := range c.RateLimit.TrustedProxies {
		if !validProxy(p) {
			return fmt.Errorf("%w: rate_limit.trusted_proxies: %q is not an IP or CIDR", ErrInvalidConfig, p)
		}
	}

	return nil
}

func validProxy(v string) bool {
	v = strings.TrimSpace(v)
	if _, _, err := net.ParseCIDR(v); err == nil {
		return true
	}
	return net.ParseIP(v) != nil
}

// Build превращает настройки расписания в domain.Schedule
func (s ScheduleConfig) Build() (domain.Schedule, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("%w: schedule.timezone=%q: %v", ErrInvalidConfig, s.Timezone, err)
	}

	start, err := types.NewTimeStringFromString(s.DayStart)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("%w: schedule.day_start: %v", ErrInvalidConfig, err)
	}
	end, err := types.NewTimeStringFromString(s.DayEnd)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("%w: schedule.day_end: %v", ErrInvalidConfig, err)
	}
	if !start.IsBefore(end) {
		return domain.Schedule{}, fmt.Errorf("%w: schedule.day_start must be before day_end", ErrInvalidConfig)
	}

	if s.SlotMinutes < domain.MinSlotDurationMinutes || s.SlotMinutes > domain.MaxSlotDurationMinutes {
		return domain.Schedule{}, fmt.Errorf("%w: schedule.slot_minutes=%d", ErrInvalidConfig, s.SlotMinutes)
	}
	total, _ := start.MinutesUntil(end)
	if total%s.SlotMinutes != 0 {
		return domain.Schedule{}, fmt.Errorf("%w: schedule.slot_minutes=%d does not divide the %d minute day",
			ErrInvalidConfig, s.SlotMinutes, total)
	}

	if s.Workdays < domain.MinWorkdays || s.Workdays > domain.MaxWorkdays {
		return domain.Schedule{}, fmt.Errorf("%w: schedule.workdays=%d", ErrInvalidConfig, s.Workdays)
	}

	return domain.Schedule{
		DayStart:            start,
		DayEnd:              end,
		SlotDurationMinutes: s.SlotMinutes,
		Workdays:            s.Workdays,
		Location:            loc,
	}, nil
}

// DSN строка подключения к PostgreSQL для lib/pq
func (d DatabaseConfig) DSN() string {
	u := d.url()
	return u.String()
}

// RedactedDSN строка подключения без пароля, для логов
func (d DatabaseConfig) RedactedDSN() string {
	u := d.url()
	return u.Redacted()
}

func (d DatabaseConfig) url() url.URL {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u
}

// Addr адрес для http.Server
func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.HTTPPort)
}

// Duration переводит секунды из конфига в time.Duration
func Duration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
