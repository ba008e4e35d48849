package bootstrap

import (
	"log"
	"time"

	"docchat-be/internal/config"
	"docchat-be/internal/controller"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/implementation"
	"docchat-be/internal/repository/memory"
	"docchat-be/internal/service"
	"docchat-be/pkg/embedding"
	"docchat-be/pkg/extract"
	"docchat-be/pkg/llm/factory"
	"docchat-be/pkg/rag/lexical"
	"docchat-be/pkg/rag/retrieval"
	"docchat-be/pkg/rag/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatbotController  controller.IChatbotController
	DocumentController controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.Groq,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Storage & Retrieval
	sessionRepo := memory.NewSessionRepository()
	embeddingRepo := implementation.NewDocumentEmbeddingRepository(db)
	lexicalIndex := lexical.NewIndex()
	vectorSearch := search.NewOrchestrator(embeddingProvider, embeddingRepo, sysLogger)
	retriever := retrieval.NewRouter(lexicalIndex, vectorSearch)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Rag.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Rag.EmbedTopic,
		embeddingRepo,
		embeddingProvider,
		sysLogger,
	)

	chatbotService := service.NewChatbotService(
		sessionRepo,
		retriever,
		llmProvider,
		sysLogger,
		time.Duration(cfg.Ai.CompletionTimeoutSeconds)*time.Second,
	)

	documentService := service.NewDocumentService(
		extract.NewPDFExtractor(),
		lexicalIndex,
		publisherService,
		sysLogger,
		cfg.Rag.ChunkSize,
		cfg.Rag.ChunkOverlap,
	)

	// 6. Controllers
	return &Container{
		ChatbotController:  controller.NewChatbotController(chatbotService),
		DocumentController: controller.NewDocumentController(documentService, cfg.App.UploadDir),

		ConsumerService: consumerService,
	}
}
