package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Register RegisterConfig `yaml:"register"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RegisterConfig holds document-register settings.
type RegisterConfig struct {
	// MaxStepsPerDocument caps how many steps a structured SOP may carry.
	MaxStepsPerDocument int `yaml:"max_steps_per_document" env:"REGISTER_MAX_STEPS_PER_DOCUMENT" env-default:"200"`
	// ListDefaultLimit applies when a list filter carries no explicit limit.
	ListDefaultLimit int `yaml:"list_default_limit" env:"REGISTER_LIST_DEFAULT_LIMIT" env-default:"100"`
	// DeletedRetentionDays is how long deletion snapshots stay restorable
	// before the cleanup job purges them.
	DeletedRetentionDays int `yaml:"deleted_retention_days" env:"REGISTER_DELETED_RETENTION_DAYS" env-default:"365"`
}
