package config

import (
	"os"
	"strconv"
	"strings"
)

// applyEnvOverrides lets environment variables win over the YAML file, using
// the variable names deployments already use in .env files.
func applyEnvOverrides(cfg *AppConfig) {
	if v := envValue("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	setIfPresent(&cfg.Env, envValue("APP_ENV"))
	setIfPresent(&cfg.Paths.Logs, envValue("LOG_DIR"))

	setIfPresent(&cfg.AI.Provider, envValue("AI_PROVIDER"))
	setIfPresent(&cfg.AI.Model, envValue("AI_MODEL"))
	setIfPresent(&cfg.AI.OpenAI.APIKey, envValue("OPENAI_API_KEY"))
	setIfPresent(&cfg.AI.OpenAI.Endpoint, envValue("OPENAI_BASE_URL"))
	setIfPresent(&cfg.AI.Anthropic.APIKey, envValue("ANTHROPIC_API_KEY"))
	setIfPresent(&cfg.AI.Compatible.APIKey, envValue("OPENAI_COMPATIBLE_API_KEY"))
	setIfPresent(&cfg.AI.Compatible.Endpoint, envValue("OPENAI_COMPATIBLE_ENDPOINT"))

	setIfPresent(&cfg.Storage.Gateway, envValue("IPFS_GATEWAY"))
	setIfPresent(&cfg.Storage.Web3Storage.Token, envValue("WEB3_STORAGE_TOKEN"))
	setIfPresent(&cfg.Storage.Pinata.APIKey, envValue("PINATA_API_KEY"))
	setIfPresent(&cfg.Storage.Pinata.Secret, envValue("PINATA_SECRET"))
	setIfPresent(&cfg.Storage.Filebase.AccessKeyID, envValue("FILEBASE_ACCESS_KEY"))
	setIfPresent(&cfg.Storage.Filebase.SecretAccessKey, envValue("FILEBASE_SECRET_KEY"))
	setIfPresent(&cfg.Storage.Filebase.Bucket, envValue("FILEBASE_BUCKET"))
}

func envValue(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
