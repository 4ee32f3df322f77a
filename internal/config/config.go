package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// LLM provider names accepted by LLM_PROVIDER.
const (
	LLMProviderGemini    = "gemini"
	LLMProviderAnthropic = "anthropic"
	LLMProviderOpenAI    = "openai"
)

// Search provider names accepted by SEARCH_PROVIDER.
const (
	SearchProviderSerper = "serper"
	SearchProviderBrave  = "brave"
	SearchProviderPlaces = "places"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars  `json:"env"`
	Prompts *Prompts `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields; provider
// keys are checked against the selected provider instead.
type EnvVars struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	LLMProvider        string        `env:"LLM_PROVIDER" envDefault:"gemini"`
	LLMModel           string        `env:"LLM_MODEL" optional:"true"`
	GoogleAPIKey       string        `env:"GOOGLE_API_KEY" optional:"true"`
	AnthropicAPIKey    string        `env:"ANTHROPIC_API_KEY" optional:"true"`
	OpenAIAPIKey       string        `env:"OPENAI_API_KEY" optional:"true"`
	SearchProvider     string        `env:"SEARCH_PROVIDER" envDefault:"serper"`
	SerperAPIKey       string        `env:"SERPER_API_KEY" optional:"true"`
	BraveSearchKey     string        `env:"BRAVE_SEARCH_KEY" optional:"true"`
	GoogleMapsKey      string        `env:"GOOGLE_MAPS_KEY" optional:"true"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	SearchTimeout      time.Duration `env:"SEARCH_TIMEOUT" envDefault:"10s"`
	RateLimitRPS       int           `env:"RATE_LIMIT_RPS" optional:"true"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," optional:"true"`
	PromptsPath        string        `env:"PROMPTS_PATH" optional:"true"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	config.EnvVars.LLMProvider = strings.ToLower(strings.TrimSpace(config.EnvVars.LLMProvider))
	config.EnvVars.SearchProvider = strings.ToLower(strings.TrimSpace(config.EnvVars.SearchProvider))
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set and
// that the API key for each selected provider is present.
func (c *Config) CheckConfigEnvFields() error {
	if err := checkFieldsRecursive(reflect.ValueOf(c.EnvVars)); err != nil {
		return err
	}
	if _, err := c.LLMAPIKey(); err != nil {
		return err
	}
	if _, err := c.SearchAPIKey(); err != nil {
		return err
	}
	return nil
}

// LLMAPIKey returns the API key belonging to the configured LLM provider.
func (c *Config) LLMAPIKey() (string, error) {
	var name, key string
	switch c.EnvVars.LLMProvider {
	case LLMProviderGemini:
		name, key = "GOOGLE_API_KEY", c.EnvVars.GoogleAPIKey
	case LLMProviderAnthropic:
		name, key = "ANTHROPIC_API_KEY", c.EnvVars.AnthropicAPIKey
	case LLMProviderOpenAI:
		name, key = "OPENAI_API_KEY", c.EnvVars.OpenAIAPIKey
	default:
		return "", fmt.Errorf("unknown LLM_PROVIDER %q", c.EnvVars.LLMProvider)
	}
	if key == "" {
		return "", fmt.Errorf("$%s must be set when LLM_PROVIDER=%s", name, c.EnvVars.LLMProvider)
	}
	return key, nil
}

// SearchAPIKey returns the API key belonging to the configured search provider.
func (c *Config) SearchAPIKey() (string, error) {
	var name, key string
	switch c.EnvVars.SearchProvider {
	case SearchProviderSerper:
		name, key = "SERPER_API_KEY", c.EnvVars.SerperAPIKey
	case SearchProviderBrave:
		name, key = "BRAVE_SEARCH_KEY", c.EnvVars.BraveSearchKey
	case SearchProviderPlaces:
		name, key = "GOOGLE_MAPS_KEY", c.EnvVars.GoogleMapsKey
	default:
		return "", fmt.Errorf("unknown SEARCH_PROVIDER %q", c.EnvVars.SearchProvider)
	}
	if key == "" {
		return "", fmt.Errorf("$%s must be set when SEARCH_PROVIDER=%s", name, c.EnvVars.SearchProvider)
	}
	return key, nil
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if isZeroValue(field) {
			return fmt.Errorf("$%s must be set", fieldType.Tag.Get("env"))
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}

func isZeroValue(v reflect.Value) bool {
	return v.IsZero()
}
