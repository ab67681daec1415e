// @title Chatbot AI Service
// @version 1.0
// @description Embedding, answer generation, keyword extraction, similarity, relevance and zero-shot categorization for the chatbot backend.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"chatbot-ai/internal/adapter"
	"chatbot-ai/internal/adapter/classifier"
	"chatbot-ai/internal/adapter/embedding"
	"chatbot-ai/internal/adapter/llm"
	"chatbot-ai/internal/cache"
	"chatbot-ai/internal/config"
	"chatbot-ai/internal/domain"
	"chatbot-ai/internal/handler"
	"chatbot-ai/internal/logger"
	"chatbot-ai/internal/service"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer func() { _ = logger.Sync() }()

	// Optional Redis cache
	var appCache domain.Cache
	if cfg.CacheEnabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, running without cache", zap.String("address", cfg.Redis.Address), zap.Error(err))
		} else {
			defer redisClient.Close()
			appCache = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		}
	} else {
		appLogger.Info("Redis address not configured, running without cache")
	}

	embeddingService, err := newEmbeddingService(cfg, appCache)
	if err != nil {
		appLogger.Fatal("Failed to create embedding service", zap.String("source", cfg.Embedding.Source), zap.Error(err))
	}
	appLogger.Info("Embedding service initialized", zap.String("source", cfg.Embedding.Source))

	generationModel, err := llm.NewChatModel(cfg.LLM.Generation)
	if err != nil {
		appLogger.Fatal("Failed to create generation model", zap.Error(err))
	}
	answerGenerator, err := llm.NewAnswerGenerator(generationModel, cfg.LLM.Generation.Model, appCache,
		cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Answer, 24*time.Hour))
	if err != nil {
		appLogger.Fatal("Failed to create answer generator", zap.Error(err))
	}

	keywordModel, err := llm.NewChatModel(cfg.LLM.Keywords)
	if err != nil {
		appLogger.Fatal("Failed to create keyword model", zap.Error(err))
	}
	keywordExtractor, err := llm.NewKeywordExtractor(keywordModel, cfg.LLM.Keywords.Model)
	if err != nil {
		appLogger.Fatal("Failed to create keyword extractor", zap.Error(err))
	}
	appLogger.Info("Chat models initialized",
		zap.String("generation", cfg.LLM.Generation.Provider+"/"+cfg.LLM.Generation.Model),
		zap.String("keywords", cfg.LLM.Keywords.Provider+"/"+cfg.LLM.Keywords.Model))

	// A missing classifier degrades /categorize and /relevance to 503
	var zeroShot domain.ZeroShotClassifier
	if cfg.Classifier.Enabled {
		c, err := classifier.NewHFZeroShotClassifier(cfg.Classifier.BaseURL, cfg.Classifier.APIToken, cfg.Classifier.Model, cfg.Classifier.Timeout)
		if err != nil {
			appLogger.Warn("Zero-shot classifier unavailable", zap.String("model", cfg.Classifier.Model), zap.Error(err))
		} else {
			zeroShot = c
			appLogger.Info("Zero-shot classifier initialized", zap.String("model", cfg.Classifier.Model))
		}
	}

	aiService, err := service.NewAIService(embeddingService, answerGenerator, keywordExtractor, zeroShot)
	if err != nil {
		appLogger.Fatal("Failed to create AI service", zap.Error(err))
	}

	app := newApp(cfg.Server, handler.NewAIHandler(aiService), handler.NewHealthHandler())

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	appLogger.Info("Server exited gracefully")
}

func newEmbeddingService(cfg *config.Config, appCache domain.Cache) (domain.EmbeddingService, error) {
	var opts []embedding.Option
	if appCache != nil {
		opts = append(opts, embedding.WithCache(appCache, cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Embedding, embedding.DefaultCacheTTL)))
	}

	switch cfg.Embedding.Source {
	case "ollama":
		return embedding.NewOllamaEmbeddingService(cfg.Embedding.Ollama.ServerURL, cfg.Embedding.Ollama.Model, opts...)
	case "openai":
		return embedding.NewOpenAIEmbeddingService(cfg.Embedding.OpenAI.APIKey, cfg.Embedding.OpenAI.Model, cfg.Embedding.OpenAI.BaseURL, opts...)
	case "huggingface":
		return embedding.NewHuggingFaceEmbeddingService(cfg.Embedding.HuggingFace.APIToken, cfg.Embedding.HuggingFace.Model, opts...)
	default:
		return nil, fmt.Errorf("unsupported embedding source: %q", cfg.Embedding.Source)
	}
}
