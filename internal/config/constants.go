package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 8000
	defaultEnv        = "development"

	defaultAIProvider   = ProviderOpenAI
	defaultImageModel   = "dall-e-3"
	defaultIPFSGateway  = "https://w3s.link/ipfs/"
	defaultFilebaseHost = "https://s3.filebase.com"
	defaultS3Region     = "us-east-1"
)

// Text providers understood by the ai module.
const (
	ProviderOpenAI           = "openai"
	ProviderAnthropic        = "anthropic"
	ProviderOpenAICompatible = "openai-compatible"
)
