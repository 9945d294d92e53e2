package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Catalog  CatalogConfig
	Redis    RedisConfig
	Cart     CartConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WADI_APP_ENV" required:"true"`
	Port         string `envconfig:"WADI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WADI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WADI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points at the third-party catalog API the proxy forwards to.
type UpstreamConfig struct {
	BaseURL      string        `envconfig:"WADI_UPSTREAM_BASE_URL" default:"https://oasisdirect.ae/api/en"`
	VersionToken string        `envconfig:"WADI_UPSTREAM_VERSION_TOKEN" default:"b2c3eQE7EgB9KeYP-kRG2"`
	UserAgent    string        `envconfig:"WADI_UPSTREAM_USER_AGENT" default:"Mozilla/5.0 (compatible; WadiDirect/1.0)"`
	Timeout      time.Duration `envconfig:"WADI_UPSTREAM_TIMEOUT" default:"10s"`
}

// CatalogConfig fixes the known category/brand sets and the response cache TTL.
type CatalogConfig struct {
	Categories []string      `envconfig:"WADI_CATALOG_CATEGORIES" default:"water,juice,dairy,accessories"`
	Brands     []string      `envconfig:"WADI_CATALOG_BRANDS" default:"lacnor,oasis,blu,melco,safa"`
	CacheTTL   time.Duration `envconfig:"WADI_CATALOG_CACHE_TTL" default:"5m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WADI_REDIS_URL"`
	Address      string        `envconfig:"WADI_REDIS_ADDR"`
	Password     string        `envconfig:"WADI_REDIS_PASSWORD"`
	DB           int           `envconfig:"WADI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WADI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WADI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WADI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WADI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WADI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis connection is configured at all. The catalog
// cache is optional; without it every request goes straight to the upstream.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CartConfig struct {
	SessionCookie string        `envconfig:"WADI_CART_SESSION_COOKIE" default:"wadi_cart_session"`
	SessionTTL    time.Duration `envconfig:"WADI_CART_SESSION_TTL" default:"24h"`
	SweepInterval time.Duration `envconfig:"WADI_CART_SWEEP_INTERVAL" default:"10m"`
}

type CheckoutConfig struct {
	ProcessingDelay time.Duration `envconfig:"WADI_CHECKOUT_PROCESSING_DELAY" default:"2s"`
}
