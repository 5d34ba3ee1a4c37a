package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultExternalHTTPTimeout = 90 * time.Second
const defaultExternalHTTPTimeoutSeconds = int(defaultExternalHTTPTimeout / time.Second)

type ClassifierConfig struct {
	Provider      string `yaml:"provider"`
	Model         string `yaml:"model"`
	Serialize     bool   `yaml:"serialize"`
	MaxInputChars int    `yaml:"max_input_chars"`
}

type GeneratorConfig struct {
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	Serialize      bool   `yaml:"serialize"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type TemplateConfig struct {
	Positive string `yaml:"positive"`
	Negative string `yaml:"negative"`
	Neutral  string `yaml:"neutral"`
}

type SamplingConfig struct {
	MaxLength   int     `yaml:"max_length"`
	Temperature float64 `yaml:"temperature"`
	TopK        int     `yaml:"top_k"`
	TopP        float64 `yaml:"top_p"`
}

type PresetConfig struct {
	Short  int `yaml:"short"`
	Medium int `yaml:"medium"`
	Long   int `yaml:"long"`
}

type Config struct {
	ListenAddr          string  `yaml:"listen_addr"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`

	Classifier ClassifierConfig `yaml:"classifier"`
	Generator  GeneratorConfig  `yaml:"generator"`

	HFEndpoint      string `yaml:"hf_endpoint"`
	HFAPIToken      string `yaml:"hf_api_token"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`

	Templates TemplateConfig `yaml:"templates"`
	Defaults  SamplingConfig `yaml:"defaults"`
	Presets   PresetConfig   `yaml:"length_presets"`

	WarmupSchedule             string `yaml:"warmup_schedule"`
	OutputDir                  string `yaml:"output_dir"`
	ExternalHTTPTimeoutSeconds int    `yaml:"external_http_timeout_seconds"`
}

func LoadConfig() Config {
	var cfg Config

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	envOverride(&cfg.ListenAddr, "MOODGEN_LISTEN_ADDR")
	envOverrideFloat(&cfg.ConfidenceThreshold, "CONFIDENCE_THRESHOLD")
	envOverride(&cfg.Classifier.Provider, "CLASSIFIER_PROVIDER")
	envOverride(&cfg.Classifier.Model, "CLASSIFIER_MODEL")
	envOverrideBool(&cfg.Classifier.Serialize, "CLASSIFIER_SERIALIZE")
	envOverrideInt(&cfg.Classifier.MaxInputChars, "CLASSIFIER_MAX_INPUT_CHARS")
	envOverride(&cfg.Generator.Provider, "GENERATOR_PROVIDER")
	envOverride(&cfg.Generator.Model, "GENERATOR_MODEL")
	envOverrideBool(&cfg.Generator.Serialize, "GENERATOR_SERIALIZE")
	envOverrideInt(&cfg.Generator.TimeoutSeconds, "GENERATOR_TIMEOUT_SECONDS")
	envOverride(&cfg.HFEndpoint, "HF_ENDPOINT")
	envOverride(&cfg.HFAPIToken, "HF_API_TOKEN")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	envOverrideAllowEmpty(&cfg.WarmupSchedule, "WARMUP_SCHEDULE")
	envOverride(&cfg.OutputDir, "OUTPUT_DIR")
	envOverrideInt(&cfg.ExternalHTTPTimeoutSeconds, "EXTERNAL_HTTP_TIMEOUT_SECONDS")

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.ConfidenceThreshold == 0 {
		cfg.ConfidenceThreshold = 0.6
	}
	if cfg.Classifier.Provider == "" {
		cfg.Classifier.Provider = "huggingface"
	}
	if cfg.Classifier.MaxInputChars == 0 {
		cfg.Classifier.MaxInputChars = 2000
	}
	if cfg.Generator.Provider == "" {
		cfg.Generator.Provider = "huggingface"
	}
	if cfg.Generator.TimeoutSeconds == 0 {
		cfg.Generator.TimeoutSeconds = 60
	}
	if cfg.HFEndpoint == "" {
		cfg.HFEndpoint = "https://api-inference.huggingface.co"
	}
	if cfg.Templates.Positive == "" {
		cfg.Templates.Positive = "Write an uplifting and positive text about: %s. This is wonderful. "
	}
	if cfg.Templates.Negative == "" {
		cfg.Templates.Negative = "Write a critical and negative text about: %s. This is disappointing. "
	}
	if cfg.Templates.Neutral == "" {
		cfg.Templates.Neutral = "Write an objective and balanced text about: %s. This is worth examining. "
	}
	if cfg.Defaults.MaxLength == 0 {
		cfg.Defaults.MaxLength = 150
	}
	if cfg.Defaults.Temperature == 0 {
		cfg.Defaults.Temperature = 0.8
	}
	if cfg.Defaults.TopK == 0 {
		cfg.Defaults.TopK = 50
	}
	if cfg.Defaults.TopP == 0 {
		cfg.Defaults.TopP = 0.95
	}
	if cfg.Presets.Short == 0 {
		cfg.Presets.Short = 80
	}
	if cfg.Presets.Medium == 0 {
		cfg.Presets.Medium = 150
	}
	if cfg.Presets.Long == 0 {
		cfg.Presets.Long = 300
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./out"
	}
	if cfg.ExternalHTTPTimeoutSeconds == 0 {
		cfg.ExternalHTTPTimeoutSeconds = defaultExternalHTTPTimeoutSeconds
	}

	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		log.Fatalf("invalid confidence_threshold '%f': must be between 0 and 1", cfg.ConfidenceThreshold)
	}

	switch cfg.Classifier.Provider {
	case "huggingface":
		if cfg.HFAPIToken == "" {
			log.Printf("WARNING: hf_api_token is not set. Hugging Face requests will be anonymous and heavily rate-limited.")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Fatalf("openai_api_key is required when classifier provider=openai")
		}
	default:
		log.Fatalf("classifier provider must be 'huggingface' or 'openai', got '%s'", cfg.Classifier.Provider)
	}

	switch cfg.Generator.Provider {
	case "huggingface":
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Fatalf("anthropic_api_key is required when generator provider=anthropic")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Fatalf("openai_api_key is required when generator provider=openai")
		}
	default:
		log.Fatalf("generator provider must be 'huggingface', 'anthropic' or 'openai', got '%s'", cfg.Generator.Provider)
	}

	templates := map[string]string{
		"positive": cfg.Templates.Positive,
		"negative": cfg.Templates.Negative,
		"neutral":  cfg.Templates.Neutral,
	}
	for name, tpl := range templates {
		if strings.Count(tpl, "%s") != 1 {
			log.Fatalf("invalid template '%s': must contain exactly one %%s placeholder, got %q", name, tpl)
		}
	}

	if cfg.Presets.Short < 1 || cfg.Presets.Medium < 1 || cfg.Presets.Long < 1 {
		log.Fatalf("invalid length_presets: short/medium/long must all be >= 1")
	}
	if cfg.Classifier.MaxInputChars < 100 {
		log.Fatalf("invalid classifier max_input_chars '%d': must be >= 100", cfg.Classifier.MaxInputChars)
	}
	if cfg.Generator.TimeoutSeconds < 1 {
		log.Fatalf("invalid generator timeout_seconds '%d': must be >= 1", cfg.Generator.TimeoutSeconds)
	}
	if cfg.ExternalHTTPTimeoutSeconds < 5 {
		log.Fatalf("invalid external_http_timeout_seconds '%d': must be >= 5", cfg.ExternalHTTPTimeoutSeconds)
	}

	return cfg
}

// Preset maps a named length preset to its max_length value.
func (c Config) Preset(name string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "short":
		return c.Presets.Short, true
	case "medium":
		return c.Presets.Medium, true
	case "long":
		return c.Presets.Long, true
	}
	return 0, false
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideAllowEmpty(field *string, envKey string) {
	if val, ok := os.LookupEnv(envKey); ok {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}

func envOverrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = strings.EqualFold(val, "true") || val == "1"
	}
}

func envOverrideFloat(field *float64, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
