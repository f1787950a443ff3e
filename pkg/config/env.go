package config

const EnvPrefix = "SHOPSTATE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	GatewayKindMock = "mock"
	GatewayKindSQL  = "sql"

	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

const (
	EnvAppEnv           = "SHOPSTATE_APP_ENV"
	EnvPort             = "SHOPSTATE_APP_PORT"
	EnvSearchDebounce   = "SHOPSTATE_SEARCH_DEBOUNCE"
	EnvQuantityThrottle = "SHOPSTATE_QUANTITY_THROTTLE"
	EnvGatewayKind      = "SHOPSTATE_GATEWAY_KIND"
	EnvGatewayTimeout   = "SHOPSTATE_GATEWAY_REQUEST_TIMEOUT"
	EnvDBDSN            = "SHOPSTATE_DB_DSN"
	EnvDBDriver         = "SHOPSTATE_DB_DRIVER"
	EnvRedisEnabled     = "SHOPSTATE_REDIS_ENABLED"
	EnvRedisURL         = "SHOPSTATE_REDIS_URL"
	EnvRedisAddr        = "SHOPSTATE_REDIS_ADDR"
)
