package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig holds runtime startup configuration loaded from YAML and the environment.
type AppConfig struct {
	Port           int           `yaml:"port"`
	Env            string        `yaml:"env"` // "development" | "production"
	AllowedOrigins []string      `yaml:"allowed_origins"`
	Paths          PathsConfig   `yaml:"paths"`
	AI             AIConfig      `yaml:"ai"`
	Storage        StorageConfig `yaml:"storage"`
}

type PathsConfig struct {
	Logs string `yaml:"logs"`
}

// AIConfig selects the text provider and carries credentials for every
// provider. Image generation always goes through OpenAI.
type AIConfig struct {
	Provider       string          `yaml:"provider"`
	Model          string          `yaml:"model"`
	ImageModel     string          `yaml:"image_model"`
	TimeoutSeconds int             `yaml:"timeout_seconds"`
	OpenAI         ProviderKeyPair `yaml:"openai"`
	Anthropic      ProviderKeyPair `yaml:"anthropic"`
	Compatible     ProviderKeyPair `yaml:"openai_compatible"`
}

type ProviderKeyPair struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
}

// StorageConfig lists pinning backends in priority order: web3.storage,
// Pinata, Filebase. A backend without credentials is skipped.
type StorageConfig struct {
	Gateway        string            `yaml:"gateway"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Web3Storage    Web3StorageConfig `yaml:"web3_storage"`
	Pinata         PinataConfig      `yaml:"pinata"`
	Filebase       FilebaseConfig    `yaml:"filebase"`
}

type Web3StorageConfig struct {
	Token    string `yaml:"token"`
	Endpoint string `yaml:"endpoint"`
}

type PinataConfig struct {
	APIKey   string `yaml:"api_key"`
	Secret   string `yaml:"secret"`
	Endpoint string `yaml:"endpoint"`
}

type FilebaseConfig struct {
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
}

// rawAppConfig accepts the nested layout plus the flat .env-style keys that
// older deployments still use.
type rawAppConfig struct {
	Port              int           `yaml:"port"`
	Env               string        `yaml:"env"`
	AppEnv            string        `yaml:"app_env"`
	AllowedOrigins    []string      `yaml:"allowed_origins"`
	CORSOrigins       []string      `yaml:"cors_allowed_origins"`
	Paths             PathsConfig   `yaml:"paths"`
	LogDir            string        `yaml:"log_dir"`
	AI                AIConfig      `yaml:"ai"`
	Storage           StorageConfig `yaml:"storage"`
	OpenAIAPIKey      string        `yaml:"openai_api_key"`
	AnthropicAPIKey   string        `yaml:"anthropic_api_key"`
	Web3StorageToken  string        `yaml:"web3_storage_token"`
	PinataAPIKey      string        `yaml:"pinata_api_key"`
	PinataSecret      string        `yaml:"pinata_secret"`
	IPFSGateway       string        `yaml:"ipfs_gateway"`
	FilebaseAccessKey string        `yaml:"filebase_access_key"`
	FilebaseSecretKey string        `yaml:"filebase_secret_key"`
	FilebaseBucket    string        `yaml:"filebase_bucket"`
}

// Load reads the YAML file at configPath, then applies environment overrides.
// A missing file at the default path is not an error: the service can run
// from environment variables alone.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		raw := rawAppConfig{}
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		applyRawAppConfig(&cfg, raw)
	case errors.Is(err, fs.ErrNotExist) && path == DefaultConfigPath:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	if err := finalize(&cfg); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		AI: AIConfig{
			Provider:   defaultAIProvider,
			ImageModel: defaultImageModel,
		},
		Storage: StorageConfig{
			Gateway: defaultIPFSGateway,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.AppEnv); v != "" {
		cfg.Env = v
	}
	switch {
	case raw.AllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	case raw.CORSOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.CORSOrigins)
	}
	if v := strings.TrimSpace(raw.Paths.Logs); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.Paths.Logs = v
	}

	cfg.AI = mergeAIConfig(cfg.AI, raw.AI)
	setIfPresent(&cfg.AI.OpenAI.APIKey, raw.OpenAIAPIKey)
	setIfPresent(&cfg.AI.Anthropic.APIKey, raw.AnthropicAPIKey)

	cfg.Storage = mergeStorageConfig(cfg.Storage, raw.Storage)
	setIfPresent(&cfg.Storage.Web3Storage.Token, raw.Web3StorageToken)
	setIfPresent(&cfg.Storage.Pinata.APIKey, raw.PinataAPIKey)
	setIfPresent(&cfg.Storage.Pinata.Secret, raw.PinataSecret)
	setIfPresent(&cfg.Storage.Gateway, raw.IPFSGateway)
	setIfPresent(&cfg.Storage.Filebase.AccessKeyID, raw.FilebaseAccessKey)
	setIfPresent(&cfg.Storage.Filebase.SecretAccessKey, raw.FilebaseSecretKey)
	setIfPresent(&cfg.Storage.Filebase.Bucket, raw.FilebaseBucket)
}

func mergeAIConfig(current, raw AIConfig) AIConfig {
	out := current
	setIfPresent(&out.Provider, raw.Provider)
	setIfPresent(&out.Model, raw.Model)
	setIfPresent(&out.ImageModel, raw.ImageModel)
	if raw.TimeoutSeconds != 0 {
		out.TimeoutSeconds = raw.TimeoutSeconds
	}
	out.OpenAI = mergeKeyPair(out.OpenAI, raw.OpenAI)
	out.Anthropic = mergeKeyPair(out.Anthropic, raw.Anthropic)
	out.Compatible = mergeKeyPair(out.Compatible, raw.Compatible)
	return out
}

func mergeKeyPair(current, raw ProviderKeyPair) ProviderKeyPair {
	setIfPresent(&current.APIKey, raw.APIKey)
	setIfPresent(&current.Endpoint, raw.Endpoint)
	return current
}

func mergeStorageConfig(current, raw StorageConfig) StorageConfig {
	out := current
	setIfPresent(&out.Gateway, raw.Gateway)
	if raw.TimeoutSeconds != 0 {
		out.TimeoutSeconds = raw.TimeoutSeconds
	}
	setIfPresent(&out.Web3Storage.Token, raw.Web3Storage.Token)
	setIfPresent(&out.Web3Storage.Endpoint, raw.Web3Storage.Endpoint)
	setIfPresent(&out.Pinata.APIKey, raw.Pinata.APIKey)
	setIfPresent(&out.Pinata.Secret, raw.Pinata.Secret)
	setIfPresent(&out.Pinata.Endpoint, raw.Pinata.Endpoint)
	setIfPresent(&out.Filebase.AccessKeyID, raw.Filebase.AccessKeyID)
	setIfPresent(&out.Filebase.SecretAccessKey, raw.Filebase.SecretAccessKey)
	setIfPresent(&out.Filebase.Bucket, raw.Filebase.Bucket)
	setIfPresent(&out.Filebase.Endpoint, raw.Filebase.Endpoint)
	setIfPresent(&out.Filebase.Region, raw.Filebase.Region)
	return out
}

func finalize(cfg *AppConfig) error {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.AI.Provider = normalizeProviderType(cfg.AI.Provider)
	cfg.Storage.Filebase = normalizeFilebaseConfig(cfg.Storage.Filebase)
	if strings.TrimSpace(cfg.Storage.Gateway) == "" {
		cfg.Storage.Gateway = defaultIPFSGateway
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	switch cfg.AI.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderOpenAICompatible:
	default:
		return fmt.Errorf("unsupported ai.provider %q", cfg.AI.Provider)
	}
	if cfg.AI.TimeoutSeconds < 0 || cfg.Storage.TimeoutSeconds < 0 {
		return errors.New("timeout_seconds must be >= 0")
	}
	return nil
}

func setIfPresent(dst *string, raw string) {
	if v := strings.TrimSpace(raw); v != "" {
		*dst = v
	}
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

func (c *AppConfig) LogDir() string {
	if c == nil {
		return ResolveRuntimePath("", "logs")
	}
	return ResolveRuntimePath(c.Paths.Logs, "logs")
}

// OpenAIConfigured reports whether an OpenAI key is present; image generation depends on it.
func (c *AppConfig) OpenAIConfigured() bool {
	return c != nil && strings.TrimSpace(c.AI.OpenAI.APIKey) != ""
}

// TextProviderKey returns the credentials of the selected text provider.
func (c AIConfig) TextProviderKey() ProviderKeyPair {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic
	case ProviderOpenAICompatible:
		return c.Compatible
	default:
		return c.OpenAI
	}
}
