package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Resend       ResendConfig
	Analytics    AnalyticsConfig
	Retention    RetentionConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DEELMAP_APP_ENV" required:"true"`
	Port         string `envconfig:"DEELMAP_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"DEELMAP_APP_BASE_URL" default:"http://localhost:3000"`
	LogLevel     string `envconfig:"DEELMAP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DEELMAP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"DEELMAP_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"DEELMAP_DB_DSN"`
	Driver string `envconfig:"DEELMAP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DEELMAP_DB_HOST"`
	LegacyPort     int    `envconfig:"DEELMAP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DEELMAP_DB_USER"`
	LegacyPassword string `envconfig:"DEELMAP_DB_PASSWORD"`
	LegacyName     string `envconfig:"DEELMAP_DB_NAME"`
	LegacySSLMode  string `envconfig:"DEELMAP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DEELMAP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DEELMAP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DEELMAP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DEELMAP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DEELMAP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DEELMAP_REDIS_ADDR"`
	Password     string        `envconfig:"DEELMAP_REDIS_PASSWORD"`
	DB           int           `envconfig:"DEELMAP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DEELMAP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DEELMAP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DEELMAP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DEELMAP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DEELMAP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"DEELMAP_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"DEELMAP_JWT_ISSUER" default:"deelmap-admin"`
	ExpirationMinutes int    `envconfig:"DEELMAP_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DEELMAP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DEELMAP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DEELMAP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DEELMAP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DEELMAP_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DEELMAP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DEELMAP_AUTO_MIGRATE" default:"false"`
}

type ResendConfig struct {
	APIKey    string `envconfig:"DEELMAP_RESEND_API_KEY"`
	FromEmail string `envconfig:"DEELMAP_RESEND_FROM_EMAIL" default:"Deelmap <noreply@deelmap.com>"`
}

type AnalyticsConfig struct {
	SummaryRowLimit int `envconfig:"DEELMAP_ANALYTICS_SUMMARY_ROW_LIMIT" default:"1000"`
	HistoryLimit    int `envconfig:"DEELMAP_ANALYTICS_HISTORY_LIMIT" default:"100"`
}

type RetentionConfig struct {
	NotificationHistoryDays int `envconfig:"DEELMAP_RETENTION_NOTIFICATION_HISTORY_DAYS" default:"90"`
	PropertyViewDays        int `envconfig:"DEELMAP_RETENTION_PROPERTY_VIEW_DAYS" default:"180"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if strings.EqualFold(d.Driver, DriverSQLite) {
		return fmt.Errorf("sqlite driver requires DEELMAP_DB_DSN (path to database file)")
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either DEELMAP_DB_DSN or DEELMAP_DB_HOST/USER/NAME must be set")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.LegacyHost, d.LegacyPort, d.LegacyUser, d.LegacyPassword, d.LegacyName, d.LegacySSLMode,
	)
	return nil
}
