package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mshel/snakeduel/internal/game"
	"github.com/charmbracelet/log"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.Address() != "0.0.0.0:6996" {
		t.Errorf("address = %s", cfg.Address())
	}
	if cfg.Difficulty != game.Medium {
		t.Errorf("difficulty = %v", cfg.Difficulty)
	}
	if cfg.Intervals.For(game.Fast) != game.FastTickDuration {
		t.Errorf("fast interval = %v", cfg.Intervals.For(game.Fast))
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SNAKE_PORT", "2222")
	t.Setenv("SNAKE_METRICS_ADDR", "")
	t.Setenv("SNAKE_MAX_CONN_PER_IP", "5")
	t.Setenv("SNAKE_CONN_RATE", "0.5")
	t.Setenv("SNAKE_DIFFICULTY", "fast")
	t.Setenv("SNAKE_SLOW_MS", "300")
	t.Setenv("SNAKE_FAST_MS", "not-a-number")
	t.Setenv("SNAKE_AGENT_SCRIPT", "/tmp/agent.lua")
	t.Setenv("SNAKE_LOG_LEVEL", "DEBUG")

	cfg := FromEnv()

	if cfg.Port != "2222" || cfg.MetricsAddr != "" || cfg.MaxConnectionsPerIP != 5 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ConnectionsPerSecond != 0.5 {
		t.Errorf("rate = %v", cfg.ConnectionsPerSecond)
	}
	if cfg.Difficulty != game.Fast {
		t.Errorf("difficulty = %v", cfg.Difficulty)
	}
	if cfg.Intervals.For(game.Slow) != 300*time.Millisecond {
		t.Errorf("slow = %v", cfg.Intervals.For(game.Slow))
	}
	if cfg.Intervals.For(game.Fast) != game.FastTickDuration {
		t.Errorf("invalid fast override was applied: %v", cfg.Intervals.For(game.Fast))
	}
	if cfg.AgentScriptPath != "/tmp/agent.lua" || cfg.LogLevel != log.DebugLevel {
		t.Errorf("script=%q level=%v", cfg.AgentScriptPath, cfg.LogLevel)
	}
}

func TestFromEnvUnknownDifficulty(t *testing.T) {
	t.Setenv("SNAKE_DIFFICULTY", "nightmare")
	if cfg := FromEnv(); cfg.Difficulty != game.Medium {
		t.Errorf("difficulty = %v", cfg.Difficulty)
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("SNAKE_HOST=127.0.0.1\nSNAKE_MEDIUM_MS=150\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv never overrides variables that already exist
	t.Setenv("SNAKE_HOST", "")
	os.Unsetenv("SNAKE_HOST")
	t.Cleanup(func() { os.Unsetenv("SNAKE_MEDIUM_MS") })

	cfg := Load(path)
	if cfg.Host != "127.0.0.1" {
		t.Errorf("host = %s", cfg.Host)
	}
	if cfg.Intervals.For(game.Medium) != 150*time.Millisecond {
		t.Errorf("medium = %v", cfg.Intervals.For(game.Medium))
	}
}

func TestAgentStrategyFactory(t *testing.T) {
	cfg := Default()
	factory, err := cfg.AgentStrategyFactory()
	if err != nil {
		t.Fatal(err)
	}
	strategy, err := factory()
	if err != nil {
		t.Fatal(err)
	}
	if strategy.Name() != "greedy" {
		t.Errorf("default strategy = %s", strategy.Name())
	}

	path := filepath.Join(t.TempDir(), "agent.lua")
	script := "function steer(head, pellet, heading, board) return nil end"
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.AgentScriptPath = path
	factory, err = cfg.AgentStrategyFactory()
	if err != nil {
		t.Fatal(err)
	}
	first, err := factory()
	if err != nil {
		t.Fatal(err)
	}
	second, err := factory()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("each game needs its own lua state")
	}
	if first.Name() != "lua" {
		t.Errorf("scripted strategy = %s", first.Name())
	}
	first.(*game.LuaStrategy).Close()
	second.(*game.LuaStrategy).Close()
}

func TestAgentStrategyFactoryRejectsBrokenScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.lua")
	if err := os.WriteFile(path, []byte("function steer("), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	cfg.AgentScriptPath = path
	if _, err := cfg.AgentStrategyFactory(); err == nil {
		t.Error("expected an error for a broken script")
	}

	cfg.AgentScriptPath = filepath.Join(t.TempDir(), "missing.lua")
	if _, err := cfg.AgentStrategyFactory(); err == nil {
		t.Error("expected an error for a missing script")
	}
}
