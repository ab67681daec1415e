package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	LLM        LLMConfig
	Embedding  EmbeddingConfig
	Classifier ClassifierConfig
	Redis      RedisConfig
	CacheTTLs  CacheTTLConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Level string
	Env   string
}

// ChatModelConfig describes one hosted chat-completion model.
// Provider is one of "groq", "openai" or "ollama".
type ChatModelConfig struct {
	Provider string
	BaseURL  string
	APIKey   string
	Model    string
}

type LLMConfig struct {
	Generation ChatModelConfig
	Keywords   ChatModelConfig
}

type EmbeddingConfig struct {
	Source      string // "ollama", "openai" or "huggingface"
	Ollama      OllamaEmbeddingConfig
	OpenAI      OpenAIEmbeddingConfig
	HuggingFace HuggingFaceEmbeddingConfig
}

type OllamaEmbeddingConfig struct {
	ServerURL string
	Model     string
}

type OpenAIEmbeddingConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type HuggingFaceEmbeddingConfig struct {
	APIToken string
	Model    string
}

type ClassifierConfig struct {
	Enabled  bool
	BaseURL  string
	APIToken string
	Model    string
	Timeout  time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// CacheTTLConfig holds TTLs as duration strings ("24h", "30m").
type CacheTTLConfig struct {
	Embedding string
	Answer    string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.body_limit", 10*1024*1024)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("llm.generation.provider", "groq")
	v.SetDefault("llm.generation.model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.keywords.provider", "groq")
	v.SetDefault("llm.keywords.model", "llama-3.1-8b-instant")

	v.SetDefault("embedding.source", "huggingface")
	v.SetDefault("embedding.ollama.server_url", "http://localhost:11434")
	v.SetDefault("embedding.ollama.model", "nomic-embed-text")
	v.SetDefault("embedding.openai.model", "text-embedding-3-small")
	v.SetDefault("embedding.huggingface.model", "sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2")

	v.SetDefault("classifier.enabled", true)
	v.SetDefault("classifier.base_url", "https://api-inference.huggingface.co")
	v.SetDefault("classifier.model", "MoritzLaurer/mDeBERTa-v3-base-mnli-xnli")
	v.SetDefault("classifier.timeout", 60)

	v.SetDefault("redis.db", 0)

	v.SetDefault("cache_ttls.embedding", "168h")
	v.SetDefault("cache_ttls.answer", "24h")
}

// LoadConfig reads config.yaml (if present) and the environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../configs")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("./configs")
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

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		LLM: LLMConfig{
			Generation: chatModelFromViper(v, "llm.generation"),
			Keywords:   chatModelFromViper(v, "llm.keywords"),
		},
		Embedding: EmbeddingConfig{
			Source: v.GetString("embedding.source"),
			Ollama: OllamaEmbeddingConfig{
				ServerURL: v.GetString("embedding.ollama.server_url"),
				Model:     v.GetString("embedding.ollama.model"),
			},
			OpenAI: OpenAIEmbeddingConfig{
				APIKey:  v.GetString("embedding.openai.api_key"),
				Model:   v.GetString("embedding.openai.model"),
				BaseURL: v.GetString("embedding.openai.base_url"),
			},
			HuggingFace: HuggingFaceEmbeddingConfig{
				APIToken: v.GetString("embedding.huggingface.api_token"),
				Model:    v.GetString("embedding.huggingface.model"),
			},
		},
		Classifier: ClassifierConfig{
			Enabled:  v.GetBool("classifier.enabled"),
			BaseURL:  v.GetString("classifier.base_url"),
			APIToken: v.GetString("classifier.api_token"),
			Model:    v.GetString("classifier.model"),
			Timeout:  time.Duration(v.GetInt("classifier.timeout")) * time.Second,
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		CacheTTLs: CacheTTLConfig{
			Embedding: v.GetString("cache_ttls.embedding"),
			Answer:    v.GetString("cache_ttls.answer"),
		},
	}

	// Well-known variable names used by the hosted providers
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		if cfg.LLM.Generation.APIKey == "" {
			cfg.LLM.Generation.APIKey = key
		}
		if cfg.LLM.Keywords.APIKey == "" {
			cfg.LLM.Keywords.APIKey = key
		}
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.Embedding.OpenAI.APIKey == "" {
		cfg.Embedding.OpenAI.APIKey = key
	}
	if token := os.Getenv("HF_API_TOKEN"); token != "" {
		if cfg.Embedding.HuggingFace.APIToken == "" {
			cfg.Embedding.HuggingFace.APIToken = token
		}
		if cfg.Classifier.APIToken == "" {
			cfg.Classifier.APIToken = token
		}
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		cfg.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}

	return cfg
}

func chatModelFromViper(v *viper.Viper, prefix string) ChatModelConfig {
	return ChatModelConfig{
		Provider: v.GetString(prefix + ".provider"),
		BaseURL:  v.GetString(prefix + ".base_url"),
		APIKey:   v.GetString(prefix + ".api_key"),
		Model:    v.GetString(prefix + ".model"),
	}
}

// CacheEnabled reports whether a Redis cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Address != ""
}

// ParseTTLStringOrDefault parses a duration string, falling back to
// defaultTTL when the string is empty, malformed or not positive.
func (c *Config) ParseTTLStringOrDefault(ttlString string, defaultTTL time.Duration) time.Duration {
	if ttlString == "" {
		return defaultTTL
	}
	d, err := time.ParseDuration(ttlString)
	if err != nil || d <= 0 {
		return defaultTTL
	}
	return d
}
