package env

const (
	EnvHttpPort = "HTTP_PORT"

	EnvDatabaseHost       = "DB_HOST"
	EnvDatabasePort       = "DB_PORT"
	EnvDatabaseUser       = "DB_USER"
	EnvDatabasePassword   = "DB_PASSWORD"
	EnvDatabaseName       = "DB_NAME"
	EnvDatabaseSSLEnabled = "DB_SSL_ENABLED"

	EnvJwtSecret    = "JWT_SECRET"
	EnvSessionTTL   = "SESSION_TTL"
	EnvSyncInterval = "SYNC_INTERVAL"

	EnvNatsURL   = "NATS_URL"
	EnvRedisAddr = "REDIS_ADDR"

	EnvLoginAttemptsLimit  = "LOGIN_ATTEMPTS_LIMIT"
	EnvLoginAttemptsWindow = "LOGIN_ATTEMPTS_WINDOW"
)
