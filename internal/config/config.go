package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration loaded from a TOML file.
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	Notifications  NotificationsConfig  `toml:"notifications"`
	Booking        BookingConfig        `toml:"booking"`
}

// ServerConfig holds HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
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

// DSN builds the PostgreSQL connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig holds logger settings.
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig holds prometheus settings.
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CatalogServiceConfig holds the catalog collaborator settings.
// Timeout is in seconds.
type CatalogServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// NotificationsConfig holds the RabbitMQ notification sink settings.
type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	AMQPURL string `toml:"amqp_url"`
	Queue   string `toml:"queue"`
}

// BookingConfig holds the booking engine tunables.
type BookingConfig struct {
	// HoldMinutes is how long a pending reservation keeps its slot
	// while waiting for payment confirmation.
	HoldMinutes int `toml:"hold_minutes"`
	// SweepIntervalSeconds is the hold-expiry sweeper period. Must be
	// shorter than the hold window.
	SweepIntervalSeconds int `toml:"sweep_interval_seconds"`
	// CancellationLeadTimeHours is the minimum notice a customer must
	// give before their appointment to self-cancel.
	CancellationLeadTimeHours int `toml:"cancellation_lead_time_hours"`
	// ReminderLeadTimeHours is how far before the appointment a reminder
	// notification is enqueued.
	ReminderLeadTimeHours int `toml:"reminder_lead_time_hours"`
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "beauty-room-booking"
	}
	if cfg.Booking.HoldMinutes == 0 {
		cfg.Booking.HoldMinutes = 12
	}
	if cfg.Booking.SweepIntervalSeconds == 0 {
		cfg.Booking.SweepIntervalSeconds = 60
	}
	if cfg.Booking.CancellationLeadTimeHours == 0 {
		cfg.Booking.CancellationLeadTimeHours = 24
	}
	if cfg.Booking.ReminderLeadTimeHours == 0 {
		cfg.Booking.ReminderLeadTimeHours = 24
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if cfg.CatalogService.URL == "" {
		return fmt.Errorf("config: catalog_service.url is required")
	}
	// Sweeper period must stay within the hold window or expired holds
	// would linger a full extra cycle.
	if cfg.Booking.SweepIntervalSeconds > cfg.Booking.HoldMinutes*60 {
		return fmt.Errorf("config: booking.sweep_interval_seconds must not exceed the hold window")
	}
	return nil
}
