package config

import (
	"log/slog"

	"github.com/corray333/backend-labs/shop/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// MustInit loads .env and config.yaml and installs the default logger.
func MustInit() {
	if err := godotenv.Load("./.env"); err != nil {
		panic("error while loading .env file: " + err.Error())
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/shop-svc")
	viper.AddConfigPath(".")
	setDefaults()
	if err := viper.ReadInConfig(); err != nil {
		panic("error while reading config file: " + err.Error())
	}
	SetupLogger()
}

func setDefaults() {
	viper.SetDefault("service.name", "shop-svc")
	viper.SetDefault("server.http.port", "8080")
	viper.SetDefault("server.http.api_prefix", "/api/v1")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("orders.pricing_concurrency", 8)
	viper.SetDefault("rabbitmq.queue", "shop.orders.events")
}

// SetupLogger installs the JSON logger at the configured level.
func SetupLogger() {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log.level"))); err != nil {
		level = slog.LevelInfo
	}

	handler := logger.NewHandler(&slog.HandlerOptions{Level: level})
	log := slog.New(handler)
	slog.SetDefault(log)
}
