// Package config loads gateway configuration from the environment,
// with code defaults for local development.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Auth   AuthConfig   `mapstructure:"auth"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type KafkaConfig struct {
	Brokers        []string      `mapstructure:"brokers"`
	ReplyTopic     string        `mapstructure:"reply_topic"`
	GroupID        string        `mapstructure:"group_id"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type RedisConfig struct {
	Addr            string        `mapstructure:"addr"`
	Password        string        `mapstructure:"password"`
	DB              int           `mapstructure:"db"`
	RateLimit       int64         `mapstructure:"rate_limit"`
	RateWindow      time.Duration `mapstructure:"rate_window"`
	PaginationCache time.Duration `mapstructure:"pagination_cache"`
}

type AuthConfig struct {
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
}

// Load reads configuration from GATEWAY_* environment variables over
// the built-in defaults. The JWT secret has no default; the process
// must not start without one.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.reply_topic", "gateway-replies")
	v.SetDefault("kafka.group_id", "bookstore-gateway")
	v.SetDefault("kafka.request_timeout", 10*time.Second)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.rate_limit", 60)
	v.SetDefault("redis.rate_window", time.Minute)
	v.SetDefault("redis.pagination_cache", 30*time.Second)
	v.SetDefault("auth.token_expiry", 15*time.Minute)
	// Registers the key so AutomaticEnv can see it; empty is rejected
	// below.
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("redis.password", "")

	v.SetEnvPrefix("GATEWAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("GATEWAY_AUTH_JWT_SECRET is required")
	}
	if len(cfg.Auth.JWTSecret) < 32 {
		return nil, errors.New("GATEWAY_AUTH_JWT_SECRET must be at least 32 characters")
	}

	return &cfg, nil
}
