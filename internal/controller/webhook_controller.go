package controller

import (
	"encoding/json"

	"line-faq-bot/internal/dto"
	"line-faq-bot/internal/pkg/logger"
	"line-faq-bot/internal/service"
	"line-faq-bot/pkg/line"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	Callback(ctx *fiber.Ctx) error
}

type webhookController struct {
	channelSecret string
	publisher     service.IPublisherService
	logger        logger.ILogger
}

func NewWebhookController(channelSecret string, publisher service.IPublisherService, sysLogger logger.ILogger) IWebhookController {
	return &webhookController{
		channelSecret: channelSecret,
		publisher:     publisher,
		logger:        sysLogger,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	r.Post("/callback", c.Callback)
}

// Callback verifies the platform signature, queues every text message event
// and acknowledges immediately. Replies go out of band via the reply API, not
// as the HTTP response body.
func (c *webhookController) Callback(ctx *fiber.Ctx) error {
	body := ctx.Body()

	signature := ctx.Get(line.SignatureHeader)
	if !line.ValidateSignature(c.channelSecret, signature, body) {
		c.logger.Warn("webhook", "rejected request with invalid signature", nil)
		return ctx.Status(fiber.StatusBadRequest).SendString("invalid signature")
	}

	var req line.WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).SendString("invalid payload")
	}

	for _, event := range req.Events {
		if event.Type != line.EventTypeMessage || event.Message.Type != line.MessageTypeText {
			continue
		}
		if event.Source.UserID == "" {
			continue
		}

		msg := &dto.IncomingMessage{
			UserID:     event.Source.UserID,
			ReplyToken: event.ReplyToken,
			Text:       event.Message.Text,
		}
		if err := c.publisher.Publish(ctx.Context(), msg); err != nil {
			// The webhook must still be acknowledged; log and move on.
			c.logger.Error("webhook", "failed to queue inbound message", map[string]interface{}{
				"user_id": msg.UserID,
				"error":   err.Error(),
			})
		}
	}

	return ctx.SendString("OK")
}
