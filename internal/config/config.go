package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Payments PaymentsConfig `toml:"payments"`
	Booking  BookingConfig  `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	TxRetries       int    `toml:"tx_retries"` // повторы сериализуемой транзакции при конфликте
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type KafkaConfig struct {
	Brokers string `toml:"brokers"`
	Topic   string `toml:"topic"`
}

// BrokerList брокеры через запятую, пустые элементы отбрасываются
func (k KafkaConfig) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

type PaymentsConfig struct {
	StripeSecretKey string `toml:"stripe_secret_key"`
	Currency        string `toml:"currency"`
}

type BookingConfig struct {
	DefaultBufferMinutes   int `toml:"default_buffer_minutes"`
	DefaultHorizonWeeks    int `toml:"default_horizon_weeks"`
	RecurringHorizonMonths int `toml:"recurring_horizon_months"`
	SlotCacheTTLSeconds    int `toml:"slot_cache_ttl_seconds"`
	RefCodeAttempts        int `toml:"ref_code_attempts"`
}

// SlotCacheTTL время жизни закешированных слотов
func (b BookingConfig) SlotCacheTTL() time.Duration {
	return time.Duration(b.SlotCacheTTLSeconds) * time.Second
}

// Load читает TOML файл, подставляя ${ENV} переменные, и заполняет значения по умолчанию
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return Parse(os.ExpandEnv(string(data)))
}

// Parse разбирает содержимое конфигурации
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.TxRetries == 0 {
		c.Database.TxRetries = 3
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "shop-booking"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "booking-events"
	}
	if c.Payments.Currency == "" {
		c.Payments.Currency = "usd"
	}
	if c.Booking.DefaultHorizonWeeks == 0 {
		c.Booking.DefaultHorizonWeeks = 4
	}
	if c.Booking.RecurringHorizonMonths == 0 {
		c.Booking.RecurringHorizonMonths = 3
	}
	if c.Booking.SlotCacheTTLSeconds == 0 {
		c.Booking.SlotCacheTTLSeconds = 60
	}
	if c.Booking.RefCodeAttempts == 0 {
		c.Booking.RefCodeAttempts = 3
	}
}
