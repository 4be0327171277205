package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type AnalyticsConfig struct {
	Env          string `yaml:"env"`
	HTTPServer   `yaml:"http_server"`
	AnalyticsDB  `yaml:"analytics_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	RedisCache   `yaml:"redis-cache"`
	Worker       `yaml:"worker"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AnalyticsDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"analytics.customer-stats"`
}

type RedisCache struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl" env-default:"5m"`
}

type Worker struct {
	Enabled       bool          `yaml:"enabled" env-default:"true"`
	SweepInterval time.Duration `yaml:"sweep_interval" env-default:"24h"`
}

func MustLoad() *AnalyticsConfig {

	// Processing env config variable and file
	configPath := os.Getenv("ANALYTICS_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ANALYTICS_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg AnalyticsConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
