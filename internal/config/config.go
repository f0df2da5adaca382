// File: internal/config/config.go
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RabbitConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

type MailConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

type PushConfig struct {
	BaseURL   string `yaml:"base_url"`
	AppID     string `yaml:"app_id"`
	RestKey   string `yaml:"rest_key"`
	UserAuth  string `yaml:"user_auth"`
	Sandboxed bool   `yaml:"sandboxed"`
}

type AuthConfig struct {
	Secret       string        `yaml:"secret"`
	TTL          time.Duration `yaml:"ttl"`
	SecureCookie bool          `yaml:"secure_cookie"`
	CookieDomain string        `yaml:"cookie_domain"`
}

type SMSConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
	Sender  string `yaml:"sender"`
}

// BookingConfig carries the policy knobs of the booking domain.
type BookingConfig struct {
	// ImmediateOffset is how far from now an immediate job is due.
	ImmediateOffset time.Duration `yaml:"immediate_offset"`
	// NightStart/NightEnd bound the window during which pushes defer to
	// the next business time; minutes from midnight, may wrap.
	NightStart time.Duration `yaml:"night_start"`
	NightEnd   time.Duration `yaml:"night_end"`
	// ExpirySweepInterval is how often the pending-job sweep runs.
	ExpirySweepInterval time.Duration `yaml:"expiry_sweep_interval"`
	// ReminderLead is how long before due the session reminder fires.
	ReminderLead time.Duration `yaml:"reminder_lead"`
}

type Config struct {
	Log      LogConfig      `yaml:"log"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Rabbit   RabbitConfig   `yaml:"rabbit"`
	Mail     MailConfig     `yaml:"mail"`
	Push     PushConfig     `yaml:"push"`
	SMS      SMSConfig      `yaml:"sms"`
	Auth     AuthConfig     `yaml:"auth"`
	Booking  BookingConfig  `yaml:"booking"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig() (*Config, error) {
	var configPath string
	var dev bool
	flag.StringVar(&configPath, "config", "config.yaml", "path to config yaml")
	flag.BoolVar(&dev, "dev", false, "development mode")
	flag.Parse()

	b, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.HTTP.Port <= 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Rabbit.Exchange == "" {
		cfg.Rabbit.Exchange = "booking.events"
	}
	if cfg.Booking.ImmediateOffset <= 0 {
		cfg.Booking.ImmediateOffset = 5 * time.Minute
	}
	if cfg.Booking.NightStart <= 0 {
		cfg.Booking.NightStart = 22 * time.Hour
	}
	if cfg.Booking.NightEnd <= 0 {
		cfg.Booking.NightEnd = 9 * time.Hour
	}
	if cfg.Booking.ExpirySweepInterval <= 0 {
		cfg.Booking.ExpirySweepInterval = time.Minute
	}
	if cfg.Booking.ReminderLead <= 0 {
		cfg.Booking.ReminderLead = 10 * time.Minute
	}
	if cfg.Auth.TTL <= 0 {
		cfg.Auth.TTL = 12 * time.Hour
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Rabbit.URL == "" {
		return nil, errors.New("rabbit.url is required")
	}
	if cfg.Auth.Secret == "" {
		return nil, errors.New("auth.secret is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
