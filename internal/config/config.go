/**
 * @description
 * This package handles the configuration management for the service. It uses
 * the Viper library to read configuration from environment variables, with an
 * optional .env file for local development.
 *
 * @dependencies
 * - github.com/spf13/viper: A popular library for Go application configuration.
 */

package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the dashboard service.
// These values are loaded from environment variables.
type Config struct {
	ServerPort             string `mapstructure:"SERVER_PORT"`
	DatabaseURL            string `mapstructure:"DATABASE_URL"`
	RedisURL               string `mapstructure:"REDIS_URL"`
	RedisRateLimitPrefix   string `mapstructure:"REDIS_RATE_LIMIT_PREFIX"`
	RabbitMQURL            string `mapstructure:"RABBITMQ_URL"`
	MailEventExchange      string `mapstructure:"MAIL_EVENT_EXCHANGE"`
	JWTSecret              string `mapstructure:"JWT_SECRET"`
	JWTTTLHours            int    `mapstructure:"JWT_TTL_HOURS"`
	CORSAllowedOrigin      string `mapstructure:"CORS_ALLOWED_ORIGIN"`
	MailRateLimitPerMinute int    `mapstructure:"MAIL_RATE_LIMIT_PER_MINUTE"`
	SweepSchedule          string `mapstructure:"SWEEP_SCHEDULE"`
	SweepPendingMaxAgeDays int    `mapstructure:"SWEEP_PENDING_MAX_AGE_DAYS"`
}

// LoadConfig reads configuration from environment variables from the given path.
// It uses Viper to automatically bind environment variables to the Config struct.
func LoadConfig(path string) (config Config, err error) {
	// Tell viper the path to look for the optional .env file.
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	// Enable automatic binding of environment variables.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REDIS_RATE_LIMIT_PREFIX", "selewanto:rate_limit")
	viper.SetDefault("MAIL_EVENT_EXCHANGE", "selewanto.events")
	viper.SetDefault("JWT_TTL_HOURS", 24)
	viper.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	viper.SetDefault("MAIL_RATE_LIMIT_PER_MINUTE", 5)
	viper.SetDefault("SWEEP_SCHEDULE", "0 3 * * *")
	viper.SetDefault("SWEEP_PENDING_MAX_AGE_DAYS", 30)

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("REDIS_RATE_LIMIT_PREFIX")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("MAIL_EVENT_EXCHANGE")
	_ = viper.BindEnv("JWT_SECRET")
	_ = viper.BindEnv("JWT_TTL_HOURS")
	_ = viper.BindEnv("CORS_ALLOWED_ORIGIN")
	_ = viper.BindEnv("MAIL_RATE_LIMIT_PER_MINUTE")
	_ = viper.BindEnv("SWEEP_SCHEDULE")
	_ = viper.BindEnv("SWEEP_PENDING_MAX_AGE_DAYS")

	// Attempt to read the config file. It's okay if it doesn't exist.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
	}

	// Unmarshal the configuration into the Config struct.
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	// Hosting platforms inject the listen port as PORT.
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		config.ServerPort = port
	}
	config.RedisURL = strings.TrimSpace(config.RedisURL)
	config.RedisRateLimitPrefix = strings.TrimSpace(config.RedisRateLimitPrefix)
	if config.RedisRateLimitPrefix == "" {
		config.RedisRateLimitPrefix = "selewanto:rate_limit"
	}
	if config.JWTTTLHours <= 0 {
		config.JWTTTLHours = 24
	}
	if config.MailRateLimitPerMinute <= 0 {
		config.MailRateLimitPerMinute = 5
	}
	if config.SweepPendingMaxAgeDays <= 0 {
		config.SweepPendingMaxAgeDays = 30
	}

	return
}
