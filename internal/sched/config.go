package sched

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yaml. Quanta and CPUCount seed a Scheduler;
// TickMS only matters to a real-time driver that wants to pace record
// consumption (internal/pace) — the core itself has no notion of wall
// time. LogLevel is a logrus level name consumed by cmd/ticksched.
type Config struct {
	Quanta   int64  `yaml:"quanta"`
	CPUCount int    `yaml:"cpu_count"`
	TickMS   int    `yaml:"tick_ms"`     // 5 (by default)
	LogLevel string `yaml:"log_level"`
}

// defaultConfig holds the conservative built-in values used whenever a
// config file is absent or partial.
func defaultConfig() Config {
	return Config{
		Quanta:   1,
		CPUCount: 1,
		TickMS:   5,
		LogLevel: "info",
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
// A missing or unparsable file is not fatal — Load silently keeps
// defaults rather than surfacing an error the caller would need to
// plumb through.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.Quanta <= 0 {
		cfg.Quanta = 1
	}
	if cfg.CPUCount <= 0 {
		cfg.CPUCount = 1
	}
	if cfg.TickMS <= 0 {
		cfg.TickMS = 5
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg
}
