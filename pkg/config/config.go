package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Catalog  CatalogConfig
	Cart     CartConfig
	Checkout CheckoutConfig
	Cron     CronConfig
	Flags    FeatureFlagsConfig
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
	Env          string `envconfig:"FRESCAPP_APP_ENV" required:"true"`
	Port         string `envconfig:"FRESCAPP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FRESCAPP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FRESCAPP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FRESCAPP_DB_DSN"`
	Driver string `envconfig:"FRESCAPP_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"FRESCAPP_DB_HOST"`
	Port     int    `envconfig:"FRESCAPP_DB_PORT" default:"5432"`
	User     string `envconfig:"FRESCAPP_DB_USER"`
	Password string `envconfig:"FRESCAPP_DB_PASSWORD"`
	Name     string `envconfig:"FRESCAPP_DB_NAME"`
	SSLMode  string `envconfig:"FRESCAPP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FRESCAPP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FRESCAPP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FRESCAPP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FRESCAPP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FRESCAPP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FRESCAPP_REDIS_ADDR"`
	Password     string        `envconfig:"FRESCAPP_REDIS_PASSWORD"`
	DB           int           `envconfig:"FRESCAPP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FRESCAPP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FRESCAPP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FRESCAPP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FRESCAPP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FRESCAPP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FRESCAPP_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FRESCAPP_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FRESCAPP_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"FRESCAPP_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the redis session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FRESCAPP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FRESCAPP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FRESCAPP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FRESCAPP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FRESCAPP_ARGON_KEY_LEN" default:"32"`
}

type CatalogConfig struct {
	// DefaultStock is applied when a product row has no stock value. Products
	// normalized this way are flagged as stock-unknown rather than guessed at.
	DefaultStock       int    `envconfig:"FRESCAPP_CATALOG_DEFAULT_STOCK" default:"0"`
	PlaceholderImage   string `envconfig:"FRESCAPP_CATALOG_PLACEHOLDER_IMAGE" default:"https://via.placeholder.com/150"`
	FallbackName       string `envconfig:"FRESCAPP_CATALOG_FALLBACK_NAME" default:"Producto sin nombre"`
	UncategorizedLabel string `envconfig:"FRESCAPP_CATALOG_UNCATEGORIZED" default:"Varios"`
}

type CartConfig struct {
	// SnapshotTTL bounds how long an idle persisted cart survives before the
	// cleanup job may drop it. Zero disables expiry.
	SnapshotTTL time.Duration `envconfig:"FRESCAPP_CART_SNAPSHOT_TTL" default:"720h"`
	UpsellCount int           `envconfig:"FRESCAPP_CART_UPSELL_COUNT" default:"5"`
}

type CheckoutConfig struct {
	MinOrderPesos  int64         `envconfig:"FRESCAPP_CHECKOUT_MIN_ORDER_PESOS" default:"100000"`
	GatewayDelay   time.Duration `envconfig:"FRESCAPP_CHECKOUT_GATEWAY_DELAY" default:"2s"`
	IdempotencyTTL time.Duration `envconfig:"FRESCAPP_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"FRESCAPP_CRON_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"FRESCAPP_CRON_LOCK_TTL" default:"10m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FRESCAPP_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
