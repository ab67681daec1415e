package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "groq", cfg.LLM.Generation.Provider)
	assert.Equal(t, "groq", cfg.LLM.Keywords.Provider)
	assert.Equal(t, "huggingface", cfg.Embedding.Source)
	assert.True(t, cfg.Classifier.Enabled)
	assert.Equal(t, 60*time.Second, cfg.Classifier.Timeout)
	assert.False(t, cfg.CacheEnabled())
}

func TestFromViper_WellKnownEnv(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("HF_API_TOKEN", "hf-test")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	v := viper.New()
	setDefaults(v)
	v.Set("llm.keywords.api_key", "explicit-key")

	cfg := fromViper(v)

	assert.Equal(t, "gsk-test", cfg.LLM.Generation.APIKey)
	assert.Equal(t, "explicit-key", cfg.LLM.Keywords.APIKey, "explicit config wins over GROQ_API_KEY")
	assert.Equal(t, "hf-test", cfg.Embedding.HuggingFace.APIToken)
	assert.Equal(t, "hf-test", cfg.Classifier.APIToken)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.True(t, cfg.CacheEnabled())
}

func TestParseTTLStringOrDefault(t *testing.T) {
	cfg := &Config{}
	def := 5 * time.Minute

	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{"empty", "", def},
		{"valid", "2h", 2 * time.Hour},
		{"malformed", "two hours", def},
		{"negative", "-1h", def},
		{"zero", "0s", def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.ParseTTLStringOrDefault(tt.input, def))
		})
	}
}
