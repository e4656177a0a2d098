package config

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "FRESCAPP"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "FRESCAPP_DB_DSN"
	EnvDBHost = "FRESCAPP_DB_HOST"
	EnvDBUser = "FRESCAPP_DB_USER"
	EnvDBName = "FRESCAPP_DB_NAME"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
