package config

const (
	// EnvPrefix scopes every envconfig lookup.
	EnvPrefix = "DEELMAP"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)
