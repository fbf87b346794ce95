package bootstrap

import (
	"math/rand"
	"time"

	"cafe-assistant-be/internal/config"
	"cafe-assistant-be/internal/controller"
	"cafe-assistant-be/internal/pkg/logger"
	"cafe-assistant-be/internal/service"
	"cafe-assistant-be/pkg/catalog"
	"cafe-assistant-be/pkg/fallback"
	"cafe-assistant-be/pkg/llm/factory"
	"cafe-assistant-be/pkg/recommend"
	"cafe-assistant-be/pkg/session"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	RefreshService service.IRefreshService

	// Shared facades
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := service.InitLLMLogger()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Provider chain (primary first, then fallback)
	providers, err := factory.NewProviderChain([]factory.ProviderSpec{
		{
			Type:    cfg.Ai.LLMProvider,
			Model:   cfg.Ai.LLMModel,
			BaseURL: cfg.Ai.OllamaBaseURL,
			APIKey:  cfg.Ai.HuggingFaceKey,
		},
		{
			Type:    cfg.Ai.FallbackProvider,
			Model:   cfg.Ai.FallbackModel,
			BaseURL: cfg.Ai.HuggingFaceURL,
			APIKey:  cfg.Ai.HuggingFaceKey,
		},
	})
	if err != nil {
		return nil, err
	}
	chain := fallback.NewChain(providers, cfg.Assistant.ProviderTimeout, llmLogger)

	// 4. Domain components
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, llmLogger)
	sessionStore := session.NewStore(cfg.Assistant.SessionTTL, cfg.Assistant.SessionSweep)
	scorer := recommend.NewScorer(rand.New(rand.NewSource(time.Now().UnixNano())))

	assistantService := service.NewAssistantService(
		catalogClient,
		sessionStore,
		scorer,
		chain,
		sysLogger,
		llmLogger,
		cfg.Assistant.MatchThreshold,
		cfg.Assistant.HistoryLimit,
	)

	refreshService := service.NewRefreshService(
		pubSub,
		cfg.Catalog.RefreshTopic,
		cfg.Catalog.RefreshInterval,
		assistantService,
		sysLogger,
	)

	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		RefreshService:      refreshService,
		Logger:              sysLogger,
	}, nil
}
