package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "PRICECMP"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Variable names, exported for tests and docs.
const (
	EnvAppEnv              = "PRICECMP_APP_ENV"
	EnvGRPCAddr            = "PRICECMP_GRPC_ADDR"
	EnvAdminAddr           = "PRICECMP_ADMIN_ADDR"
	EnvLogLevel            = "PRICECMP_LOG_LEVEL"
	EnvLogFormat           = "PRICECMP_LOG_FORMAT"
	EnvShutdownTimeout     = "PRICECMP_SHUTDOWN_TIMEOUT"
	EnvSpannerDatabase     = "PRICECMP_SPANNER_DATABASE"
	EnvDefaultCurrency     = "PRICECMP_DEFAULT_CURRENCY"
	EnvSubstituteLimit     = "PRICECMP_SUBSTITUTE_LIMIT"
	EnvBestDiscountsLimit  = "PRICECMP_BEST_DISCOUNTS_LIMIT"
	EnvHistoryLookbackDays = "PRICECMP_HISTORY_LOOKBACK_DAYS"
	EnvGCPProjectID        = "PRICECMP_GCP_PROJECT_ID"
	EnvPubSubAlertsTopic   = "PRICECMP_PUBSUB_ALERTS_TOPIC"
	EnvOutboxBatchSize     = "PRICECMP_OUTBOX_BATCH_SIZE"
	EnvOutboxPollInterval  = "PRICECMP_OUTBOX_POLL_INTERVAL"
	EnvOutboxMaxAttempts   = "PRICECMP_OUTBOX_MAX_ATTEMPTS"
)

var spannerDatabasePath = regexp.MustCompile(`^projects/[^/]+/instances/[^/]+/databases/[^/]+$`)

type Config struct {
	App     AppConfig
	Spanner SpannerConfig
	Engine  EngineConfig
	GCP     GCPConfig
	PubSub  PubSubConfig
	Outbox  OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if !spannerDatabasePath.MatchString(c.Spanner.Database) {
		return fmt.Errorf("%s must look like projects/<p>/instances/<i>/databases/<d>, got %q", EnvSpannerDatabase, c.Spanner.Database)
	}
	if c.Engine.HistoryLookbackDays <= 0 {
		return fmt.Errorf("%s must be positive", EnvHistoryLookbackDays)
	}
	if strings.TrimSpace(c.Engine.DefaultCurrency) == "" {
		return fmt.Errorf("%s must not be empty", EnvDefaultCurrency)
	}
	return nil
}

type AppConfig struct {
	Env             string        `envconfig:"PRICECMP_APP_ENV" default:"dev"`
	GRPCAddr        string        `envconfig:"PRICECMP_GRPC_ADDR" default:":50051"`
	AdminAddr       string        `envconfig:"PRICECMP_ADMIN_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"PRICECMP_LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"PRICECMP_LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"PRICECMP_SHUTDOWN_TIMEOUT" default:"5s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type SpannerConfig struct {
	Database string `envconfig:"PRICECMP_SPANNER_DATABASE" required:"true"`
}

type EngineConfig struct {
	DefaultCurrency     string `envconfig:"PRICECMP_DEFAULT_CURRENCY" default:"RON"`
	SubstituteLimit     int    `envconfig:"PRICECMP_SUBSTITUTE_LIMIT" default:"5"`
	BestDiscountsLimit  int    `envconfig:"PRICECMP_BEST_DISCOUNTS_LIMIT" default:"10"`
	HistoryLookbackDays int    `envconfig:"PRICECMP_HISTORY_LOOKBACK_DAYS" default:"90"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"PRICECMP_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	AlertsTopic string `envconfig:"PRICECMP_PUBSUB_ALERTS_TOPIC" default:"price-alerts"`
}

type OutboxConfig struct {
	BatchSize    int           `envconfig:"PRICECMP_OUTBOX_BATCH_SIZE" default:"50"`
	PollInterval time.Duration `envconfig:"PRICECMP_OUTBOX_POLL_INTERVAL" default:"1s"`
	// MaxAttempts parks an event as failed after that many publish errors; 0 retries forever.
	MaxAttempts int `envconfig:"PRICECMP_OUTBOX_MAX_ATTEMPTS" default:"5"`
}
