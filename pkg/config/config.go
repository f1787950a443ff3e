package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Timing  TimingConfig
	Gateway GatewayConfig
	DB      DBConfig
	Redis   RedisConfig
	Metrics MetricsConfig
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

type AppConfig struct {
	Env          string `envconfig:"SHOPSTATE_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPSTATE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPSTATE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPSTATE_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"SHOPSTATE_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:8081"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// TimingConfig holds the rate-shaping windows for user intents.
type TimingConfig struct {
	SearchDebounce   time.Duration `envconfig:"SHOPSTATE_SEARCH_DEBOUNCE" default:"300ms"`
	QuantityThrottle time.Duration `envconfig:"SHOPSTATE_QUANTITY_THROTTLE" default:"300ms"`
}

type GatewayConfig struct {
	Kind           string        `envconfig:"SHOPSTATE_GATEWAY_KIND" default:"mock"`
	RequestTimeout time.Duration `envconfig:"SHOPSTATE_GATEWAY_REQUEST_TIMEOUT" default:"10s"`

	ProductsLatency       time.Duration `envconfig:"SHOPSTATE_MOCK_PRODUCTS_LATENCY" default:"800ms"`
	ProductByIDLatency    time.Duration `envconfig:"SHOPSTATE_MOCK_PRODUCT_BY_ID_LATENCY" default:"500ms"`
	SearchLatency         time.Duration `envconfig:"SHOPSTATE_MOCK_SEARCH_LATENCY" default:"600ms"`
	BannersLatency        time.Duration `envconfig:"SHOPSTATE_MOCK_BANNERS_LATENCY" default:"400ms"`
	PaymentMethodsLatency time.Duration `envconfig:"SHOPSTATE_MOCK_PAYMENT_METHODS_LATENCY" default:"300ms"`
	PlaceOrderLatency     time.Duration `envconfig:"SHOPSTATE_MOCK_PLACE_ORDER_LATENCY" default:"1500ms"`
}

func (g GatewayConfig) UsesSQL() bool {
	return strings.EqualFold(strings.TrimSpace(g.Kind), GatewayKindSQL)
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPSTATE_DB_DSN" default:"file:shopstate.db?cache=shared"`
	Driver string `envconfig:"SHOPSTATE_DB_DRIVER" default:"sqlite"`

	AutoMigrate bool `envconfig:"SHOPSTATE_DB_AUTO_MIGRATE" default:"true"`

	MaxOpenConns    int           `envconfig:"SHOPSTATE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SHOPSTATE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPSTATE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPSTATE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	Enabled      bool          `envconfig:"SHOPSTATE_REDIS_ENABLED" default:"false"`
	URL          string        `envconfig:"SHOPSTATE_REDIS_URL"`
	Address      string        `envconfig:"SHOPSTATE_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPSTATE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPSTATE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPSTATE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPSTATE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPSTATE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPSTATE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPSTATE_REDIS_WRITE_TIMEOUT" default:"5s"`
	CatalogTTL   time.Duration `envconfig:"SHOPSTATE_REDIS_CATALOG_TTL" default:"5m"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"SHOPSTATE_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"SHOPSTATE_METRICS_PATH" default:"/metrics"`
}

func (c *Config) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Gateway.Kind)) {
	case GatewayKindMock, GatewayKindSQL:
	default:
		return fmt.Errorf("%s must be one of %q or %q", EnvGatewayKind, GatewayKindMock, GatewayKindSQL)
	}
	if c.Timing.SearchDebounce < 0 || c.Timing.QuantityThrottle < 0 {
		return fmt.Errorf("timing windows must be non-negative")
	}
	if c.Gateway.UsesSQL() {
		if err := c.DB.validate(); err != nil {
			return err
		}
	}
	if c.Redis.Enabled && c.Redis.URL == "" && c.Redis.Address == "" {
		return fmt.Errorf("either %s or %s is required when redis is enabled", EnvRedisURL, EnvRedisAddr)
	}
	return nil
}

func (db DBConfig) validate() error {
	if strings.TrimSpace(db.DSN) == "" {
		return fmt.Errorf("%s is required for the sql gateway", EnvDBDSN)
	}
	switch strings.ToLower(db.Driver) {
	case DBDriverSQLite, DBDriverPostgres:
		return nil
	}
	return fmt.Errorf("%s must be %q or %q", EnvDBDriver, DBDriverSQLite, DBDriverPostgres)
}
