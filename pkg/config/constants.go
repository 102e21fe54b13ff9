package config

// EnvPrefix is empty: the fleet dashboard deploys with bare DB_*, JWT_* and PORT names.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
	AppEnvTest = "test"
)

const (
	EnvAppEnv       = "APP_ENV"
	EnvPort         = "PORT"
	EnvLogLevel     = "LOG_LEVEL"
	EnvDBDSN        = "DATABASE_URL"
	EnvDBHost       = "DB_HOST"
	EnvDBPort       = "DB_PORT"
	EnvDBUser       = "DB_USER"
	EnvDBPassword   = "DB_PASSWORD"
	EnvDBName       = "DB_NAME"
	EnvDBSSLMode    = "DB_SSLMODE"
	EnvRedisURL     = "REDIS_URL"
	EnvJWTSecret    = "JWT_SECRET"
	EnvJWTIssuer    = "JWT_ISSUER"
	EnvJWTExpiresIn = "JWT_EXPIRES_IN"
	EnvBcryptCost   = "BCRYPT_COST"
	EnvFrontendURL  = "FRONTEND_URL"
	EnvRateWindow   = "RATE_LIMIT_WINDOW"
	EnvRateMax      = "RATE_LIMIT_MAX"
	EnvAutoMigrate  = "AUTO_MIGRATE"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
