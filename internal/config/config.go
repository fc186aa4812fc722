package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"sketchparty/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds game-related configuration
type GameConfig struct {
	MinPlayers        int
	TurnSeconds       int
	TransitionSeconds int
	RoomCodeLength    int
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from environment variables with defaults.
// A .env file in the working directory is picked up when present.
func Load() *Config {
	// Missing .env is fine, the environment is the source of truth.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Game: GameConfig{
			MinPlayers:        getEnvInt("MIN_PLAYERS", 2),
			TurnSeconds:       getEnvInt("TURN_SECONDS", 60),
			TransitionSeconds: getEnvInt("TRANSITION_SECONDS", 3),
			RoomCodeLength:    getEnvInt("ROOM_CODE_LENGTH", 4),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// Settings converts the game configuration into domain settings.
func (c *Config) Settings() domain.Settings {
	s := domain.DefaultSettings()
	s.MinPlayers = c.Game.MinPlayers
	s.TurnDuration = time.Duration(c.Game.TurnSeconds) * time.Second
	s.TransitionDelay = time.Duration(c.Game.TransitionSeconds) * time.Second
	s.RoomCodeLength = c.Game.RoomCodeLength
	return s
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
