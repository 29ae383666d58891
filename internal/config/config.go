package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	BaseURL string `mapstructure:"base_url"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CompletionConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// StripeConfig selects the secret key by mode ("test" or "live"), mirroring
// how hosted checkout is switched between environments.
type StripeConfig struct {
	Mode          string `mapstructure:"mode"`
	TestSecretKey string `mapstructure:"test_secret_key"`
	LiveSecretKey string `mapstructure:"live_secret_key"`
}

func (c StripeConfig) SecretKey() string {
	if strings.EqualFold(strings.TrimSpace(c.Mode), "live") {
		return strings.TrimSpace(c.LiveSecretKey)
	}
	return strings.TrimSpace(c.TestSecretKey)
}

type PaymentsConfig struct {
	// AllowUnverified keeps the demo-mode bypass: when no provider
	// credentials are configured, payment verification reports paid.
	// Set to false for real-money deployments.
	AllowUnverified bool `mapstructure:"allow_unverified"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Completion CompletionConfig `mapstructure:"completion"`
	Stripe     StripeConfig     `mapstructure:"stripe"`
	Payments   PaymentsConfig   `mapstructure:"payments"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("starloom")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/starloom")

	v.SetEnvPrefix("STARLOOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("completion.base_url", "https://api.openai.com/v1")
	v.SetDefault("stripe.mode", "test")
	v.SetDefault("payments.allow_unverified", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
