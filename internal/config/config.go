package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ErrNilConfig is returned when a nil Config is provided.
var ErrNilConfig = errors.New("config is nil")

// Service names, used in logs and in "Missing ... API key" responses.
const (
	ServiceLLM         = "Together"
	ServiceTranscriber = "Transcription"
	ServiceCaseSearch  = "Indian Kanoon"
)

// Config holds the full application configuration. It is built once at
// startup and handed to the constructors that need it.
type Config struct {
	LLM         ProviderConfig `mapstructure:"llm"`
	Transcriber ProviderConfig `mapstructure:"transcriber"`
	CaseSearch  ProviderConfig `mapstructure:"case_search"`
	Server      ServerConfig   `mapstructure:"server"`
	PromptsFile string         `mapstructure:"prompts_file"`
}

// ProviderConfig holds connection details for a single upstream provider.
type ProviderConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// ServerConfig holds the inbound HTTP settings.
type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	MaxUploadMB int64    `mapstructure:"max_upload_mb"`
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("llm.base_url", "https://api.together.xyz/v1")
	v.SetDefault("llm.model", "meta-llama/Llama-3-70b-chat-hf")
	v.SetDefault("transcriber.base_url", "https://api.openai.com/v1")
	v.SetDefault("transcriber.model", "whisper-1")
	v.SetDefault("case_search.base_url", "https://api.indiankanoon.org")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.max_upload_mb", 25)

	bind(v, "llm.base_url", "LLM_BASE_URL")
	bind(v, "llm.api_key", "LLM_API_KEY", "TOGETHER_API_KEY")
	bind(v, "llm.model", "LLM_MODEL")
	bind(v, "transcriber.base_url", "TRANSCRIBE_BASE_URL")
	bind(v, "transcriber.api_key", "TRANSCRIBE_API_KEY", "OPENAI_API_KEY")
	bind(v, "transcriber.model", "TRANSCRIBE_MODEL")
	bind(v, "case_search.base_url", "CASE_SEARCH_BASE_URL")
	bind(v, "case_search.api_key", "CASE_SEARCH_API_KEY", "INDIAN_KANOON_API_KEY")
	bind(v, "server.port", "PORT")
	bind(v, "server.cors_origins", "CORS_ORIGINS")
	bind(v, "server.max_upload_mb", "MAX_UPLOAD_MB")
	bind(v, "prompts_file", "PROMPTS_FILE")
}

func bind(v *viper.Viper, key string, envs ...string) {
	// BindEnv only fails when called without a key.
	_ = v.BindEnv(append([]string{key}, envs...)...)
}

// Load reads the Viper-populated config into a Config struct.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the process cannot start without. Missing API
// keys are not fatal; see Missing.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return errors.New("server.max_upload_mb must be positive")
	}
	if c.LLM.BaseURL == "" {
		return errors.New("llm.base_url is required")
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model is required")
	}
	return nil
}

// Missing lists the services whose API key is not configured.
func (c *Config) Missing() []string {
	var missing []string
	if c.LLM.APIKey == "" {
		missing = append(missing, ServiceLLM)
	}
	if c.Transcriber.APIKey == "" {
		missing = append(missing, ServiceTranscriber)
	}
	if c.CaseSearch.APIKey == "" {
		missing = append(missing, ServiceCaseSearch)
	}
	return missing
}
