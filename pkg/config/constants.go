package config

// EnvPrefix scopes every environment variable consumed by the service.
const EnvPrefix = "RESUMEFORGE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "RESUMEFORGE_DB_DSN"
	EnvDBHost = "RESUMEFORGE_DB_HOST"
	EnvDBUser = "RESUMEFORGE_DB_USER"
	EnvDBName = "RESUMEFORGE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
