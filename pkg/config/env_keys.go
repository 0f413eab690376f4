package config

// EnvPrefix namespaces every Localo environment variable.
const EnvPrefix = "LOCALO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "LOCALO_DB_DSN"
	EnvDBHost = "LOCALO_DB_HOST"
	EnvDBUser = "LOCALO_DB_USER"
	EnvDBName = "LOCALO_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
