package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Database  DatabaseConfig  `toml:"database"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Directory DirectoryConfig `toml:"directory"`
	Board     BoardConfig     `toml:"board"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// DatabaseConfig настройки PostgreSQL журнала доски.
// При enabled = false сервис работает только в памяти,
// состояние доски теряется при перезапуске.
type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DirectoryConfig настройки клиента справочника клиники
type DirectoryConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// BoardConfig настройки доски расписания
type BoardConfig struct {
	DayStart            types.TimeString `toml:"day_start"`
	DayEnd              types.TimeString `toml:"day_end"`
	SlotMinutes         int              `toml:"slot_minutes"`
	ReminderLeadMinutes int              `toml:"reminder_lead_minutes"`
	ReminderPollSeconds int              `toml:"reminder_poll_seconds"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Logs: LogsConfig{
			File:  "logs/scheduler.log",
			Level: "info",
		},
		Database: DatabaseConfig{
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "scheduler-service",
		},
		Directory: DirectoryConfig{
			Timeout: 5,
		},
		Board: BoardConfig{
			DayStart:            types.TimeString(domain.DefaultDayStart),
			DayEnd:              types.TimeString(domain.DefaultDayEnd),
			SlotMinutes:         domain.DefaultSlotMinutes,
			ReminderLeadMinutes: domain.DefaultReminderLeadMinutes,
			ReminderPollSeconds: domain.DefaultReminderPollSeconds,
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid server.http_port: %d", c.Server.HTTPPort)
	}
	if c.Database.Enabled {
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("database.host and database.dbname are required when database.enabled = true")
		}
	}
	if c.Directory.URL == "" {
		return fmt.Errorf("directory.url is required")
	}
	if err := c.Board.DayStart.Validate(); err != nil {
		return fmt.Errorf("invalid board.day_start: %w", err)
	}
	if err := c.Board.DayEnd.Validate(); err != nil {
		return fmt.Errorf("invalid board.day_end: %w", err)
	}
	if !c.Board.DayStart.IsBefore(c.Board.DayEnd) {
		return fmt.Errorf("board.day_start must be before board.day_end")
	}
	if c.Board.SlotMinutes < domain.MinSlotMinutes || c.Board.SlotMinutes > domain.MaxSlotMinutes {
		return fmt.Errorf("board.slot_minutes must be between %d and %d", domain.MinSlotMinutes, domain.MaxSlotMinutes)
	}
	if c.Board.ReminderLeadMinutes <= 0 {
		return fmt.Errorf("board.reminder_lead_minutes must be positive")
	}
	if c.Board.ReminderPollSeconds <= 0 {
		return fmt.Errorf("board.reminder_poll_seconds must be positive")
	}
	return nil
}
