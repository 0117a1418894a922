package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"sharing"`
	Password string `envconfig:"DB_PASSWORD" default:"sharing"`
	DBName   string `envconfig:"DB_NAME" default:"sharing"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// DSN builds the GORM postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// KafkaConfig holds event broker settings.
type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Enabled bool     `envconfig:"KAFKA_ENABLED" default:"true"`
}

// ServerConfig holds all configuration for the core sharing server.
type ServerConfig struct {
	Port   string `envconfig:"SERVICE_PORT" default:":8080"`
	AppEnv string `envconfig:"APP_ENV" default:"development"`
	DB     DatabaseConfig
	Kafka  KafkaConfig
}

// GatewayConfig holds all configuration for the validating gateway.
type GatewayConfig struct {
	Port      string `envconfig:"GATEWAY_PORT" default:":8081"`
	AppEnv    string `envconfig:"APP_ENV" default:"development"`
	ServerURL string `envconfig:"SHARING_SERVER_URL" default:"http://localhost:8080"`
}

// LoadServer reads server configuration from SHARING_-prefixed environment
// variables.
func LoadServer() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := envconfig.Process("SHARING", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	return &cfg, nil
}

// LoadGateway reads gateway configuration from SHARING_-prefixed environment
// variables.
func LoadGateway() (*GatewayConfig, error) {
	var cfg GatewayConfig
	if err := envconfig.Process("SHARING", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	return &cfg, nil
}
