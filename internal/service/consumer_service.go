package service

import (
	"context"
	"encoding/json"
	"time"

	"line-faq-bot/internal/dto"
	"line-faq-bot/internal/pkg/logger"
	"line-faq-bot/internal/pkg/serverutils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ReplySender delivers the out-of-band reply for one webhook event.
type ReplySender interface {
	Reply(ctx context.Context, replyToken, text string) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	dialogue  IDialogueService
	replier   ReplySender
	timeout   time.Duration
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	dialogue IDialogueService,
	replier ReplySender,
	timeout time.Duration,
	sysLogger logger.ILogger,
) IConsumerService {
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		dialogue:  dialogue,
		replier:   replier,
		timeout:   timeout,
		logger:    sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			// One goroutine per message so slow turns for one user never stall
			// other users. The per-user lock in the session repository keeps a
			// single user's transitions serialized.
			go cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IncomingMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal inbound message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads would never succeed on retry
		return
	}

	if err := serverutils.ValidateRequest(payload); err != nil {
		cs.logger.Error("consumer", "inbound message failed validation", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	// Bound the whole turn (classification + generation + reply) so a slow
	// upstream cannot hold the pipeline open indefinitely.
	turnCtx, cancel := context.WithTimeout(ctx, cs.timeout)
	defer cancel()

	reply := cs.dialogue.HandleMessage(turnCtx, &payload)
	if reply == "" {
		// Idle users without a trigger get no reply at all.
		msg.Ack()
		return
	}

	if err := cs.replier.Reply(turnCtx, payload.ReplyToken, reply); err != nil {
		// Reply tokens are single-use and short-lived; retrying is pointless.
		cs.logger.Error("consumer", "failed to deliver reply", map[string]interface{}{
			"user_id": payload.UserID,
			"error":   err.Error(),
		})
	}
	msg.Ack()
}
