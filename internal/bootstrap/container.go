package bootstrap

import (
	"log"

	"line-faq-bot/internal/config"
	"line-faq-bot/internal/constant"
	"line-faq-bot/internal/controller"
	"line-faq-bot/internal/pkg/logger"
	"line-faq-bot/internal/repository/memory"
	"line-faq-bot/internal/service"
	"line-faq-bot/pkg/answer"
	"line-faq-bot/pkg/classify"
	"line-faq-bot/pkg/line"
	llmopenai "line-faq-bot/pkg/llm/openai"
	"line-faq-bot/pkg/prompt"
	"line-faq-bot/pkg/template"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	TemplateStore *template.Store
	Logger        logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Template Store (base instructions + per-category reference docs)
	templateStore, err := template.NewStore(cfg.Prompt.Dir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to open template store: %v", err)
	}

	// 4. Domain Components
	llmProvider := llmopenai.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.AnswerModel)

	classifier := classify.NewClassifier(llmProvider, cfg.OpenAI.ClassifierModel, constant.ClassifyQuestionSystemPromptV1)
	composer := prompt.NewComposer(templateStore, cfg.Prompt.MaxRunes)
	generator := answer.NewGenerator(llmProvider, cfg.OpenAI.AnswerModel, constant.AnswerUnavailableReply)

	sessionRepo := memory.NewSessionRepository(cfg.App.SessionTTL)
	lineClient := line.NewClient(cfg.Line.ChannelAccessToken)

	// 5. Services
	dialogueService := service.NewDialogueService(sessionRepo, classifier, composer, generator, sysLogger)
	publisherService := service.NewPublisherService(cfg.App.InboundTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.InboundTopic,
		dialogueService,
		lineClient,
		cfg.App.TurnTimeout,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		WebhookController: controller.NewWebhookController(cfg.Line.ChannelSecret, publisherService, sysLogger),
		ConsumerService:   consumerService,
		TemplateStore:     templateStore,
		Logger:            sysLogger,
	}
}
