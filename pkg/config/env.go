package config

const (
	EnvPrefix = "BOOKHAVEN"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "BOOKHAVEN_APP_ENV"
	EnvPort     = "BOOKHAVEN_APP_PORT"
	EnvLogLevel = "BOOKHAVEN_LOG_LEVEL"

	EnvDBDSN  = "BOOKHAVEN_DB_DSN"
	EnvDBHost = "BOOKHAVEN_DB_HOST"
	EnvDBUser = "BOOKHAVEN_DB_USER"
	EnvDBName = "BOOKHAVEN_DB_NAME"

	EnvRedisURL = "BOOKHAVEN_REDIS_URL"

	EnvJWTSecret              = "BOOKHAVEN_JWT_SECRET"
	EnvJWTIssuer              = "BOOKHAVEN_JWT_ISSUER"
	EnvJWTExpMins             = "BOOKHAVEN_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "BOOKHAVEN_REFRESH_TOKEN_TTL_MINUTES"

	EnvSessionCookieName = "BOOKHAVEN_SESSION_COOKIE_NAME"
	EnvUseSQLite         = "BOOKHAVEN_USE_SQLITE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
