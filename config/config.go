package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ServerConfig holds the API server settings.
type ServerConfig struct {
	Port        string
	DatabaseURL string
}

// SimulatorConfig holds the telemetry producer settings.
type SimulatorConfig struct {
	ServerURL       string
	IntervalSeconds int
}

// LoadServer reads server settings from the environment, loading a .env file
// first when one is present.
func LoadServer() ServerConfig {
	godotenv.Load()
	return ServerConfig{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: getenv("DATABASE_URL", "agridata.db"),
	}
}

// LoadSimulator reads producer settings from the environment.
func LoadSimulator() SimulatorConfig {
	godotenv.Load()
	return SimulatorConfig{
		ServerURL:       getenv("SERVER_URL", "http://localhost:8080"),
		IntervalSeconds: getenvInt("SIMULATOR_INTERVAL_SECONDS", 2),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
