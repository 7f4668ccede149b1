package logger

import "log/slog"

// Config holds logger settings loaded from the environment.
// An empty Format keeps the environment preset.
type Config struct {
	Env     string     `env:"APP_ENV" envDefault:"development"`
	Service string     `env:"SERVICE_NAME" envDefault:"authgate"`
	Level   slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Format  Format     `env:"LOG_FORMAT"`
}

// NewFromConfig builds a logger from cfg. Extra options are applied last.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	base := []Option{WithEnvironment(cfg.Env, cfg.Service), WithLevel(cfg.Level)}
	if cfg.Format != "" {
		base = append(base, WithFormat(cfg.Format))
	}
	return New(append(base, opts...)...)
}
