package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv      = "STOREFRONT_APP_ENV"
	EnvPort        = "STOREFRONT_APP_PORT"
	EnvBackend     = "STOREFRONT_PERSISTENCE_BACKEND"
	EnvSQLitePath  = "STOREFRONT_SQLITE_PATH"
	EnvRedisURL    = "STOREFRONT_REDIS_URL"
	EnvCatalogBase = "STOREFRONT_CATALOG_BASE_URL"
)

type Config struct {
	App         AppConfig
	Catalog     CatalogConfig
	Pricing     PricingConfig
	Persistence PersistenceConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Password    PasswordConfig
	Simulation  SimulationConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("storefront", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Persistence.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	BaseURL string        `envconfig:"STOREFRONT_CATALOG_BASE_URL" default:"https://fakestoreapi.com"`
	Timeout time.Duration `envconfig:"STOREFRONT_CATALOG_TIMEOUT" default:"10s"`
}

// PricingConfig carries the checkout math constants.
//
// The defaults follow the cart-page behavior of the reference storefront. Its
// checkout page disagreed (free shipping above 100, flat fee 10, tax 0.15);
// which pair is correct is an open product decision, so both stay tunable here
// rather than hard-coded at call sites.
type PricingConfig struct {
	FreeShippingThreshold float64 `envconfig:"STOREFRONT_FREE_SHIPPING_THRESHOLD" default:"50"`
	FlatShippingFee       float64 `envconfig:"STOREFRONT_FLAT_SHIPPING_FEE" default:"9.99"`
	TaxRate               float64 `envconfig:"STOREFRONT_TAX_RATE" default:"0.08"`
	GiftWrapFee           float64 `envconfig:"STOREFRONT_GIFT_WRAP_FEE" default:"4.99"`
}

// PersistenceConfig selects the durable slot backing the cart and user keys.
type PersistenceConfig struct {
	Backend    string `envconfig:"STOREFRONT_PERSISTENCE_BACKEND" default:"sqlite"`
	SQLitePath string `envconfig:"STOREFRONT_SQLITE_PATH" default:"storefront.db"`
}

const (
	PersistenceSQLite = "sqlite"
	PersistenceRedis  = "redis"
	PersistenceMemory = "memory"
)

func (p PersistenceConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(p.Backend)) {
	case PersistenceSQLite, PersistenceRedis, PersistenceMemory:
		return nil
	}
	return fmt.Errorf("unknown persistence backend %q", p.Backend)
}

// Normalized returns the lowercase backend name.
func (p PersistenceConfig) Normalized() string {
	return strings.ToLower(strings.TrimSpace(p.Backend))
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"STOREFRONT_JWT_SECRET" default:"storefront-demo-secret"`
	Issuer            string `envconfig:"STOREFRONT_JWT_ISSUER" default:"storefront"`
	ExpirationMinutes int    `envconfig:"STOREFRONT_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STOREFRONT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STOREFRONT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STOREFRONT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STOREFRONT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STOREFRONT_ARGON_KEY_LEN" default:"32"`
}

// SimulationConfig controls the artificial latency of the stubbed collaborators.
type SimulationConfig struct {
	AuthDelay  time.Duration `envconfig:"STOREFRONT_SIMULATED_AUTH_DELAY" default:"1s"`
	OrderDelay time.Duration `envconfig:"STOREFRONT_SIMULATED_ORDER_DELAY" default:"1s"`
}
