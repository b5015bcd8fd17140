package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Snapshot     SnapshotConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Snapshot.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AFUA_APP_ENV" required:"true"`
	Port         string `envconfig:"AFUA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AFUA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AFUA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"AFUA_DB_DSN"`
	Driver string `envconfig:"AFUA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"AFUA_DB_HOST"`
	LegacyPort     int    `envconfig:"AFUA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"AFUA_DB_USER"`
	LegacyPassword string `envconfig:"AFUA_DB_PASSWORD"`
	LegacyName     string `envconfig:"AFUA_DB_NAME"`
	LegacySSLMode  string `envconfig:"AFUA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AFUA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AFUA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AFUA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AFUA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AFUA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"AFUA_REDIS_ADDR"`
	Password     string        `envconfig:"AFUA_REDIS_PASSWORD"`
	DB           int           `envconfig:"AFUA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AFUA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AFUA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AFUA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AFUA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AFUA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig controls how anonymous shopper sessions are issued.
type SessionConfig struct {
	CookieName   string        `envconfig:"AFUA_SESSION_COOKIE_NAME" default:"afua_sid"`
	CookieMaxAge time.Duration `envconfig:"AFUA_SESSION_COOKIE_MAX_AGE" default:"8760h"`
	CookieSecure bool          `envconfig:"AFUA_SESSION_COOKIE_SECURE" default:"true"`
}

const (
	SnapshotBackendDB    = "db"
	SnapshotBackendRedis = "redis"
)

// SnapshotConfig selects where cart/wishlist snapshots are persisted.
type SnapshotConfig struct {
	Backend   string        `envconfig:"AFUA_SNAPSHOT_BACKEND" default:"db"`
	Namespace string        `envconfig:"AFUA_SNAPSHOT_NAMESPACE" default:"afua"`
	RedisTTL  time.Duration `envconfig:"AFUA_SNAPSHOT_REDIS_TTL" default:"0"`
}

func (s SnapshotConfig) validate() error {
	switch s.Backend {
	case SnapshotBackendDB, SnapshotBackendRedis:
		return nil
	}
	return fmt.Errorf("unknown snapshot backend %q (expected db or redis)", s.Backend)
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AFUA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
