package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

var ErrMissingConfig = errors.New("missing required config")

type Role string

const (
	RoleAPI    Role = "api"
	RoleWorker Role = "worker"
)

// Config is built once at process start and passed by reference into every
// component. Process settings come from the environment; Pipeline is the
// layered remote/env document loaded by LoadPipeline.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	AWS       AWSConfig
	Remote    RemoteConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
	Pipeline  PipelineConfig `ignored:"true"`
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// AWSConfig overrides the default credential chain and endpoints, mainly for
// LocalStack or MinIO during development.
type AWSConfig struct {
	Endpoint        string `envconfig:"AWS_ENDPOINT_URL"`
	AccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `envconfig:"S3_USE_PATH_STYLE" default:"false"`
}

type RemoteConfig struct {
	AppConfigApplication string        `envconfig:"APPCONFIG_APPLICATION"`
	AppConfigEnvironment string        `envconfig:"APPCONFIG_ENVIRONMENT"`
	AppConfigProfile     string        `envconfig:"APPCONFIG_PROFILE"`
	AppConfigBaseURL     string        `envconfig:"APPCONFIG_BASE_URL" default:"http://localhost:2772"`
	AppConfigTimeout     time.Duration `envconfig:"APPCONFIG_TIMEOUT" default:"1500ms"`
	AppConfigAttempts    uint64        `envconfig:"APPCONFIG_ATTEMPTS" default:"3"`
	SSMParamPath         string        `envconfig:"SSM_PARAM_PATH"`
	SSMRegion            string        `envconfig:"SSM_REGION"`
	Region               string        `envconfig:"REGION" default:"us-east-1"`
}

func (c RemoteConfig) AppConfigEnabled() bool {
	return c.AppConfigApplication != "" && c.AppConfigEnvironment != "" && c.AppConfigProfile != ""
}

func (c RemoteConfig) SSMEnabled() bool {
	return strings.TrimSpace(c.SSMParamPath) != ""
}

func (c RemoteConfig) SSMRegionOrDefault() string {
	if c.SSMRegion != "" {
		return c.SSMRegion
	}
	return c.Region
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER"`
	Password        string        `envconfig:"DB_PASSWORD"`
	Name            string        `envconfig:"DB_NAME"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	MigrationsPath  string        `envconfig:"DB_MIGRATIONS_PATH" default:"migrations"`
	ConnectAttempts uint64        `envconfig:"DB_CONNECT_ATTEMPTS" default:"5"`
	ApplicationName string        `envconfig:"DB_APPLICATION_NAME" default:"image-pipeline"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`

	// PoolSize 0 keeps the go-redis default of 10 per CPU.
	PoolSize    int           `envconfig:"REDIS_POOL_SIZE" default:"0"`
	DialTimeout time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"2s"`
	OpTimeout   time.Duration `envconfig:"REDIS_OP_TIMEOUT" default:"500ms"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RateLimitConfig struct {
	Enabled        bool          `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	RequestsPerMin int           `envconfig:"RATE_LIMIT_REQUESTS_PER_MIN" default:"60"`
	Window         time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

type MetricsConfig struct {
	Port int `envconfig:"METRICS_PORT" default:"0"`
}

// LoadProcess reads the process settings from the environment.
func LoadProcess() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the values a role cannot start without.
func (c *Config) Validate(role Role) error {
	missing := c.Pipeline.missing(role)

	if c.Pipeline.MetadataDriver == MetadataDriverPostgres {
		if c.Database.User == "" {
			missing = append(missing, "DB_USER")
		}
		if c.Database.Name == "" {
			missing = append(missing, "DB_NAME")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	return nil
}
