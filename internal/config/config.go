package config

import "github.com/spf13/viper"

// Config holds the runtime configuration, loaded from environment
// variables with sensible defaults.
type Config struct {
	AppPort           string
	StorageDriver     string // memory, sqlite or postgres
	DatabaseDSN       string
	RabbitMQURL       string // empty disables event publishing
	LowStockThreshold int
}

// Load reads the configuration from the environment.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("STORAGE_DRIVER", "memory")
	viper.SetDefault("DATABASE_DSN", "file::memory:?cache=shared")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("LOW_STOCK_THRESHOLD", 10)
	viper.AutomaticEnv()

	return &Config{
		AppPort:           viper.GetString("APP_PORT"),
		StorageDriver:     viper.GetString("STORAGE_DRIVER"),
		DatabaseDSN:       viper.GetString("DATABASE_DSN"),
		RabbitMQURL:       viper.GetString("RABBITMQ_URL"),
		LowStockThreshold: viper.GetInt("LOW_STOCK_THRESHOLD"),
	}
}
