// Package config loads server and game settings from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Mshel/snakeduel/internal/game"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type Config struct {
	Host        string
	Port        string
	MetricsAddr string // empty disables the /metrics listener
	HostKeyPath string

	MaxConnectionsPerIP  int
	ConnectionsPerSecond float64
	ConnectionBurst      int

	Difficulty      game.Difficulty
	Intervals       game.Intervals
	AgentScriptPath string

	LogLevel log.Level
	LogFile  string // runner only; the alt screen owns stdout
}

func Default() Config {
	return Config{
		Host:                 "0.0.0.0",
		Port:                 "6996",
		MetricsAddr:          ":9096",
		MaxConnectionsPerIP:  2,
		ConnectionsPerSecond: 5,
		ConnectionBurst:      10,
		Difficulty:           game.Medium,
		Intervals:            game.DefaultIntervals(),
		LogLevel:             log.InfoLevel,
	}
}

// Load reads the optional env files, then the environment.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err == nil {
			log.Debug("Loaded environment file", "file", file)
		}
	}
	return FromEnv()
}

// FromEnv applies SNAKE_* variables over the defaults. Invalid values keep the default.
func FromEnv() Config {
	cfg := Default()

	cfg.Host = getEnv("SNAKE_HOST", cfg.Host)
	cfg.Port = getEnv("SNAKE_PORT", cfg.Port)
	if addr, ok := os.LookupEnv("SNAKE_METRICS_ADDR"); ok {
		cfg.MetricsAddr = addr
	}
	cfg.HostKeyPath = getEnv("SNAKE_HOST_KEY_PATH", cfg.HostKeyPath)

	if n := getEnvInt("SNAKE_MAX_CONN_PER_IP", 0); n > 0 {
		cfg.MaxConnectionsPerIP = n
	}
	if r := getEnvFloat("SNAKE_CONN_RATE", 0); r > 0 {
		cfg.ConnectionsPerSecond = r
	}
	if b := getEnvInt("SNAKE_CONN_BURST", 0); b > 0 {
		cfg.ConnectionBurst = b
	}

	if raw := os.Getenv("SNAKE_DIFFICULTY"); raw != "" {
		difficulty, ok := game.ParseDifficulty(raw)
		if !ok {
			log.Warn("Unknown difficulty, using medium", "value", raw)
		}
		cfg.Difficulty = difficulty
	}

	intervalKeys := map[game.Difficulty]string{
		game.Slow:   "SNAKE_SLOW_MS",
		game.Medium: "SNAKE_MEDIUM_MS",
		game.Fast:   "SNAKE_FAST_MS",
	}
	for difficulty, key := range intervalKeys {
		if ms := getEnvInt(key, 0); ms > 0 {
			cfg.Intervals[difficulty] = time.Duration(ms) * time.Millisecond
		}
	}

	cfg.AgentScriptPath = getEnv("SNAKE_AGENT_SCRIPT", cfg.AgentScriptPath)

	if raw := os.Getenv("SNAKE_LOG_LEVEL"); raw != "" {
		level, err := log.ParseLevel(strings.ToLower(raw))
		if err != nil {
			log.Warn("Unknown log level", "value", raw, "error", err)
		} else {
			cfg.LogLevel = level
		}
	}

	cfg.LogFile = getEnv("SNAKE_LOG_FILE", cfg.LogFile)

	return cfg
}

func (c Config) Address() string {
	return c.Host + ":" + c.Port
}

// AgentStrategyFactory returns a constructor for per-game agent strategies. Without a
// script every game gets the greedy strategy. The script is read and compiled once here
// so a broken file fails at startup rather than per connection.
func (c Config) AgentStrategyFactory() (func() (game.HeadingStrategy, error), error) {
	if c.AgentScriptPath == "" {
		return func() (game.HeadingStrategy, error) { return game.GreedyFoodStrategy{}, nil }, nil
	}

	source, err := os.ReadFile(c.AgentScriptPath)
	if err != nil {
		return nil, fmt.Errorf("read agent script %s: %w", c.AgentScriptPath, err)
	}
	compiled, err := game.NewLuaStrategy(string(source), game.GreedyFoodStrategy{})
	if err != nil {
		return nil, fmt.Errorf("load agent script %s: %w", c.AgentScriptPath, err)
	}
	compiled.Close()

	return func() (game.HeadingStrategy, error) {
		strategy, err := game.NewLuaStrategy(string(source), game.GreedyFoodStrategy{})
		if err != nil {
			return nil, err
		}
		return strategy, nil
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
