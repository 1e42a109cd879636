package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	LLM    LLMConfig
	JWT    JWTConfig
	Auth   AuthConfig
	Upload UploadConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Env   string
	Level string
}

// LLMConfig selects and configures the completion backend.
type LLMConfig struct {
	Provider    string // "openai" or "ollama"
	Server      string // ollama server URL
	BaseURL     string // optional OpenAI-compatible endpoint
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

type AuthConfig struct {
	SessionCookie string
}

type UploadConfig struct {
	MaxBytes         int64
	FileField        string
	InstructionField string
}

const (
	defaultPort          = 8090
	defaultBodyLimit     = 10 * 1024 * 1024
	defaultUploadMax     = 5 * 1024 * 1024
	defaultLLMProvider   = "openai"
	defaultOpenAIModel   = "gpt-4"
	defaultOllamaModel   = "qwen3:0.6b"
	defaultLLMTimeout    = 60 * time.Second
	defaultAccessTTL     = time.Hour
	defaultSessionCookie = "session_token"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 90)
	v.SetDefault("server.idle_timeout", 20)
	v.SetDefault("server.body_limit", defaultBodyLimit)
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")
	v.SetDefault("llm.provider", defaultLLMProvider)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", defaultLLMTimeout.String())
	v.SetDefault("jwt.access_token_ttl", defaultAccessTTL.String())
	v.SetDefault("auth.session_cookie", defaultSessionCookie)
	v.SetDefault("upload.max_bytes", defaultUploadMax)
	v.SetDefault("upload.file_field", "arquivo")
	v.SetDefault("upload.instruction_field", "prompt")
}

// LoadConfig reads config.yaml (optional) and the environment. A .env file in
// the working directory is loaded first when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.AddConfigPath(path)
	}
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	llmTimeout, err := parseDuration(v.GetString("llm.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid llm.timeout: %w", err)
	}
	accessTTL, err := parseDuration(v.GetString("jwt.access_token_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid jwt.access_token_ttl: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			IdleTimeout:  time.Duration(v.GetInt("server.idle_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			Server:      v.GetString("llm.server"),
			BaseURL:     v.GetString("llm.base_url"),
			APIKey:      v.GetString("llm.api_key"),
			Model:       v.GetString("llm.model"),
			Temperature: v.GetFloat64("llm.temperature"),
			Timeout:     llmTimeout,
		},
		JWT: JWTConfig{
			SecretKey:      v.GetString("jwt.secret_key"),
			AccessTokenTTL: accessTTL,
		},
		Auth: AuthConfig{
			SessionCookie: v.GetString("auth.session_cookie"),
		},
		Upload: UploadConfig{
			MaxBytes:         v.GetInt64("upload.max_bytes"),
			FileField:        v.GetString("upload.file_field"),
			InstructionField: v.GetString("upload.instruction_field"),
		},
	}

	// Override with the conventional environment variables if set
	if env := os.Getenv("ENV"); env != "" && env != "test" {
		config.Logger.Env = env
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" && config.LLM.APIKey == "" {
		config.LLM.APIKey = openAIKey
	}

	if config.LLM.Model == "" {
		config.LLM.Model = config.defaultModel()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) defaultModel() string {
	if c.LLM.Provider == "ollama" {
		return defaultOllamaModel
	}
	return defaultOpenAIModel
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai", "ollama":
	default:
		return fmt.Errorf("unsupported llm.provider %q (expected openai or ollama)", c.LLM.Provider)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive, got %d", c.Upload.MaxBytes)
	}
	if c.Upload.FileField == "" || c.Upload.InstructionField == "" {
		return errors.New("upload.file_field and upload.instruction_field must be set")
	}
	return nil
}

// parseDuration accepts Go duration strings ("90s") and bare seconds ("90").
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	d, err := time.ParseDuration(s + "s")
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as a duration", s)
	}
	return d, nil
}
