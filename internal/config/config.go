package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	JWTSecret      string `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`

	// Gesture tuning. A draw gesture below MinDrawSize in either dimension is
	// discarded; a split producing a part below MinSplitSize nudges instead.
	MinDrawSize   float64 `envconfig:"MIN_DRAW_SIZE" default:"40"`
	MinSplitSize  float64 `envconfig:"MIN_SPLIT_SIZE" default:"20"`
	CornerRadius  float64 `envconfig:"CORNER_RADIUS" default:"20"`
	NudgeDistance float64 `envconfig:"NUDGE_DISTANCE" default:"10"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.MinDrawSize < cfg.MinSplitSize {
		return nil, fmt.Errorf("MIN_DRAW_SIZE (%v) must be >= MIN_SPLIT_SIZE (%v)", cfg.MinDrawSize, cfg.MinSplitSize)
	}
	return &cfg, nil
}
