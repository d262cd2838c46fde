package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage type constants
const (
	StorageTypeFile  = "file"
	StorageTypeRedis = "redis"
)

// Config holds every tunable the server and client read at startup.
// Values come from the environment, optionally seeded from a .env file.
type Config struct {
	// Server
	Port           int
	AdminPort      int
	DictionaryPath string
	StorageType    string
	SnapshotPath   string
	RedisURL       string

	// Word rotation
	RotationPeriod time.Duration

	// Shutdown
	ShutdownGrace time.Duration

	// Connection admission
	AcceptRate  float64
	AcceptBurst int

	// Multicast share channel
	MulticastGroup string
	MulticastPort  int

	// Client
	ServerAddr string
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		Port:           7777,
		AdminPort:      8080,
		DictionaryPath: "data/words.txt",
		StorageType:    StorageTypeFile,
		SnapshotPath:   "data/state.json",
		RedisURL:       "redis://localhost:6379",
		RotationPeriod: 10 * time.Minute,
		ShutdownGrace:  15 * time.Second,
		AcceptRate:     50,
		AcceptBurst:    100,
		MulticastGroup: "224.0.1.90",
		MulticastPort:  9999,
		ServerAddr:     "localhost:7777",
	}
}

// Load builds a Config from the environment. If envFile is non-empty it is
// loaded first (existing environment variables win, matching godotenv).
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	} else {
		// Best effort: a .env in the working directory is optional.
		_ = godotenv.Load()
	}

	cfg := Default()
	var err error

	if cfg.Port, err = getEnvInt("WORDLED_PORT", cfg.Port); err != nil {
		return Config{}, err
	}
	if cfg.AdminPort, err = getEnvInt("WORDLED_ADMIN_PORT", cfg.AdminPort); err != nil {
		return Config{}, err
	}
	cfg.DictionaryPath = getEnv("WORDLED_DICTIONARY", cfg.DictionaryPath)
	cfg.StorageType = getEnv("WORDLED_STORAGE", cfg.StorageType)
	cfg.SnapshotPath = getEnv("WORDLED_SNAPSHOT", cfg.SnapshotPath)
	cfg.RedisURL = getEnv("WORDLED_REDIS_URL", cfg.RedisURL)
	if cfg.RotationPeriod, err = getEnvDuration("WORDLED_ROTATION_PERIOD", cfg.RotationPeriod); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownGrace, err = getEnvDuration("WORDLED_SHUTDOWN_GRACE", cfg.ShutdownGrace); err != nil {
		return Config{}, err
	}
	cfg.MulticastGroup = getEnv("WORDLED_MULTICAST_GROUP", cfg.MulticastGroup)
	if cfg.MulticastPort, err = getEnvInt("WORDLED_MULTICAST_PORT", cfg.MulticastPort); err != nil {
		return Config{}, err
	}
	cfg.ServerAddr = getEnv("WORDLED_SERVER_ADDR", cfg.ServerAddr)

	if cfg.StorageType != StorageTypeFile && cfg.StorageType != StorageTypeRedis {
		return Config{}, fmt.Errorf("invalid WORDLED_STORAGE %q: must be %q or %q",
			cfg.StorageType, StorageTypeFile, StorageTypeRedis)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return d, nil
}
