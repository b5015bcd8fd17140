package config

// EnvPrefix is the envconfig prefix shared by every AFUA_* variable.
const EnvPrefix = "AFUA"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, error messages).
const (
	EnvAppEnv   = "AFUA_APP_ENV"
	EnvPort     = "AFUA_APP_PORT"
	EnvDBDSN    = "AFUA_DB_DSN"
	EnvDBHost   = "AFUA_DB_HOST"
	EnvDBUser   = "AFUA_DB_USER"
	EnvDBName   = "AFUA_DB_NAME"
	EnvRedisURL = "AFUA_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
