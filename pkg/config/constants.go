package config

const (
	EnvPrefix = "wadi"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "WADI_APP_ENV"
	EnvPort   = "WADI_APP_PORT"
)
