package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/campaign-engine/internal/config"
	"github.com/jwebster45206/campaign-engine/internal/handlers"
	"github.com/jwebster45206/campaign-engine/internal/logger"
	"github.com/jwebster45206/campaign-engine/internal/middleware"
	"github.com/jwebster45206/campaign-engine/internal/orchestrator"
	"github.com/jwebster45206/campaign-engine/internal/services"
	"github.com/jwebster45206/campaign-engine/internal/storage"
	"github.com/jwebster45206/campaign-engine/pkg/agent"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Campaign Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName,
		"critic_model_name", cfg.CriticModelName)

	buildProvider := func(modelName string) services.LLMService {
		switch strings.ToLower(cfg.LLMProvider) {
		case "anthropic":
			if cfg.AnthropicAPIKey == "" {
				log.Error("Anthropic API key is required when using anthropic provider")
				os.Exit(1)
			}
			return services.NewAnthropicService(cfg.AnthropicAPIKey, modelName, log)
		case "openai":
			if cfg.OpenAIAPIKey == "" {
				log.Error("OpenAI API key is required when using openai provider")
				os.Exit(1)
			}
			return services.NewOpenAIService(cfg.OpenAIAPIKey, modelName, log)
		case "ollama":
			return services.NewOllamaService(cfg.OllamaBaseURL, modelName, log)
		default:
			log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider, "supported", []string{"anthropic", "openai", "ollama"})
			os.Exit(1)
			return nil
		}
	}

	narratorSvc := buildProvider(cfg.ModelName)
	criticSvc := narratorSvc
	if cfg.CriticModelName != cfg.ModelName {
		criticSvc = buildProvider(cfg.CriticModelName)
	}

	store, err := storage.NewGormStorage(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		log.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.Ping(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	// Initialize the models on startup
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	if err := narratorSvc.InitModel(ctx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}
	if criticSvc != narratorSvc {
		if err := criticSvc.InitModel(ctx, cfg.CriticModelName); err != nil {
			log.Error("Failed to initialize critic LLM model", "error", err, "model", cfg.CriticModelName)
			os.Exit(1)
		}
	}

	agentTimeout := time.Duration(cfg.AgentTimeoutSeconds) * time.Second
	agents, err := agent.NewRegistry(
		services.NewAgent("DMAgent", narratorSvc, agentTimeout),
		services.NewAgent("StorytellerAgent", criticSvc, agentTimeout),
	)
	if err != nil {
		log.Error("Failed to build agent registry", "error", err)
		os.Exit(1)
	}

	var locks services.GameLock
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(storageCtx).Err(); err != nil {
			log.Error("Failed to connect to redis", "error", err, "addr", cfg.RedisAddr)
			os.Exit(1)
		}
		locks = services.NewRedisGameLock(redisClient, services.DefaultLockTTL)
		log.Info("Using redis game lock", "addr", cfg.RedisAddr)
	} else {
		locks = services.NewMemoryGameLock()
	}

	caller := agent.NewCaller(cfg.MaxRetries, log)
	processor := orchestrator.NewTurnProcessor(store, agents, caller, locks, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	turnHandler := handlers.NewTurnHandler(processor, log)
	mux.Handle("/v1/turn", turnHandler)

	gamesHandler := handlers.NewGamesHandler(store, log)
	mux.Handle("/v1/games", gamesHandler)
	mux.Handle("/v1/games/", gamesHandler)

	handler := middleware.Logger(log, mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // a turn makes several LLM round trips
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis connection", "error", err)
		}
	}

	log.Info("Server exited")
}
