package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	Store  StoreConfig  `yaml:"store"`
	Auth   AuthConfig   `yaml:"auth"`
	Redis  RedisConfig  `yaml:"redis"`
	Kafka  KafkaConfig  `yaml:"kafka"`
	Email  EmailConfig  `yaml:"email"`
	Cache  CacheConfig  `yaml:"cache"`
	Worker WorkerConfig `yaml:"worker"`
}

type HTTPConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	AdminEmail      string `yaml:"admin_email"`
	TokenTTLHours   int    `yaml:"token_ttl_hours"`
	ResetTTLMinutes int    `yaml:"reset_ttl_minutes"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	if a.TokenTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(a.TokenTTLHours) * time.Hour
}

func (a AuthConfig) ResetTTL() time.Duration {
	if a.ResetTTLMinutes <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(a.ResetTTLMinutes) * time.Minute
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	GroupID            string   `yaml:"group_id"`
}

type EmailConfig struct {
	MailjetAPIKey    string `yaml:"mailjet_api_key"`
	MailjetSecretKey string `yaml:"mailjet_secret_key"`
	FromEmail        string `yaml:"from_email"`
	FromName         string `yaml:"from_name"`
}

type CacheConfig struct {
	FlightsTTLSeconds int `yaml:"flights_ttl_seconds"`
}

type WorkerConfig struct {
	ResetSweepMinutes int `yaml:"reset_sweep_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}
	if cfg.Auth.AdminEmail == "" {
		return nil, fmt.Errorf("auth.admin_email is required")
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "data/db.json"
	}
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}
	return &cfg, nil
}
