package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"llm-chat-server/internal/config"
	"llm-chat-server/internal/domain/chat"
	"llm-chat-server/internal/domain/llm"
	"llm-chat-server/internal/domain/rag"
	"llm-chat-server/internal/domain/search"
	"llm-chat-server/internal/infrastructure/llmprovider"
	"llm-chat-server/internal/infrastructure/logger"
	"llm-chat-server/internal/infrastructure/observability"
	conversationrepo "llm-chat-server/internal/infrastructure/repository/conversation"
	"llm-chat-server/internal/infrastructure/searchprovider"
	"llm-chat-server/internal/infrastructure/webcontent"
	"llm-chat-server/internal/interfaces/httpserver"
	"llm-chat-server/internal/interfaces/httpserver/handlers"
)

// @title LLM Chat Server
// @version 1.0
// @description Chat completion service with interchangeable LLM backends and web search augmentation
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	models := llm.BuildRegistry(log, modelBuilders(cfg))
	if len(models.ListModels()) == 0 {
		log.Fatal().Msg("no LLM backends configured, set at least one provider API key")
	}

	engines := search.BuildRegistry(log, engineBuilders(cfg))

	retriever := webcontent.NewRetriever(cfg.FetchTimeout, log)
	augmenter := rag.NewService(engines, retriever, log)

	conversations := conversationrepo.NewInMemoryRepository()
	chatService := chat.NewService(models, conversations, augmenter, log)

	provider := handlers.NewProvider(chatService, models, log)
	httpServer := httpserver.New(cfg, log, provider)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func modelBuilders(cfg *config.Config) []llm.Builder {
	return []llm.Builder{
		func() (llm.Model, error) {
			return llmprovider.NewAzureClient(llmprovider.AzureConfig{
				APIKey:     cfg.AzureAPIKey,
				Endpoint:   cfg.AzureEndpoint,
				APIVersion: cfg.AzureAPIVersion,
				Deployment: cfg.AzureDeployment,
				Timeout:    cfg.ModelTimeout,
			})
		},
		func() (llm.Model, error) {
			return llmprovider.NewGeminiClient(llmprovider.GeminiConfig{
				APIKey:  cfg.GeminiAPIKey,
				Model:   cfg.GeminiModel,
				Timeout: cfg.ModelTimeout,
			})
		},
		func() (llm.Model, error) {
			return llmprovider.NewOpenAIClient(llmprovider.OpenAIConfig{
				APIKey:  cfg.OpenAIAPIKey,
				Model:   cfg.OpenAIModel,
				Timeout: cfg.ModelTimeout,
			})
		},
	}
}

func engineBuilders(cfg *config.Config) []search.Builder {
	retry := searchprovider.RetryConfig{
		MaxAttempts:   cfg.RetryMaxAttempts,
		InitialDelay:  cfg.RetryInitialDelay,
		MaxDelay:      cfg.RetryMaxDelay,
		BackoffFactor: 1.5,
	}
	return []search.Builder{
		func() (search.Engine, error) {
			return searchprovider.NewGoogleClient(searchprovider.GoogleConfig{
				APIKey:  cfg.GoogleCSEAPIKey,
				CSEID:   cfg.GoogleCSEID,
				Timeout: cfg.SearchTimeout,
				Retry:   retry,
			})
		},
		func() (search.Engine, error) {
			return searchprovider.NewSerperClient(searchprovider.SerperConfig{
				APIKey:  cfg.SerperAPIKey,
				Timeout: cfg.SearchTimeout,
				Retry:   retry,
			})
		},
	}
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
