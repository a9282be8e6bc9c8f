package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Model     ModelConfig     `json:"model"`
	Weather   WeatherConfig   `json:"weather"`
	Satellite SatelliteConfig `json:"satellite"`
	Logging   LoggingConfig   `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

// ModelConfig points at the persisted scoring artifacts.
type ModelConfig struct {
	ModelPath    string `json:"model_path"`
	MetadataPath string `json:"metadata_path"`
}

// WeatherConfig configures the weather provider.
type WeatherConfig struct {
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"`
}

// SatelliteConfig configures the satellite data cache.
type SatelliteConfig struct {
	CachePath       string `json:"cache_path"`
	RefreshSchedule string `json:"refresh_schedule"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// Load reads configuration from an optional JSON file, a .env file if
// present, and environment variable overrides.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    os.Getenv("USER"),
			DBName:  "agrorisk",
			SSLMode: "disable",
		},
		Model: ModelConfig{
			ModelPath:    "models/agro_risk_model.txt",
			MetadataPath: "models/model_metadata.json",
		},
		Weather: WeatherConfig{
			Timeout: 10 * time.Second,
		},
		Satellite: SatelliteConfig{
			CachePath:       "data/satellite_cache.csv",
			RefreshSchedule: "0 3 * * *",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if dbHost := os.Getenv("DATABASE_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbPort := os.Getenv("DATABASE_PORT"); dbPort != "" {
		if p, err := strconv.Atoi(dbPort); err == nil {
			config.Database.Port = p
		}
	}
	if dbUser := os.Getenv("DATABASE_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPass := os.Getenv("DATABASE_PASSWORD"); dbPass != "" {
		config.Database.Password = dbPass
	}
	if dbName := os.Getenv("DATABASE_DBNAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	if modelPath := os.Getenv("MODEL_PATH"); modelPath != "" {
		config.Model.ModelPath = modelPath
	}
	if metaPath := os.Getenv("MODEL_METADATA_PATH"); metaPath != "" {
		config.Model.MetadataPath = metaPath
	}
	if baseURL := os.Getenv("WEATHER_BASE_URL"); baseURL != "" {
		config.Weather.BaseURL = baseURL
	}
	if cachePath := os.Getenv("SATELLITE_CACHE_PATH"); cachePath != "" {
		config.Satellite.CachePath = cachePath
	}
	if schedule := os.Getenv("SATELLITE_REFRESH_SCHEDULE"); schedule != "" {
		config.Satellite.RefreshSchedule = schedule
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// GetDatabaseURL returns the database connection string
func (c *DatabaseConfig) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
