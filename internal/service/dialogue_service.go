package service

import (
	"context"
	"strings"

	"line-faq-bot/internal/constant"
	"line-faq-bot/internal/dto"
	"line-faq-bot/internal/pkg/logger"
	"line-faq-bot/internal/repository/memory"
	"line-faq-bot/pkg/answer"
	"line-faq-bot/pkg/classify"
	"line-faq-bot/pkg/store"
)

// command is the closed vocabulary recognized ahead of ordinary question text.
type command int

const (
	commandNone command = iota
	commandStartQuestion
	commandAnotherQuestion
	commandEndQuestion
)

func parseCommand(text string) command {
	switch text {
	case constant.TriggerStartQuestion:
		return commandStartQuestion
	case constant.TriggerAnotherQuestion:
		return commandAnotherQuestion
	case constant.TriggerEndQuestion:
		return commandEndQuestion
	}
	return commandNone
}

// QuestionClassifier resolves a question to a category, degrading to the
// default instead of failing.
type QuestionClassifier interface {
	Classify(ctx context.Context, question string) classify.Result
}

// PromptComposer builds the completion prompt for a category and question.
type PromptComposer interface {
	Compose(category store.Category, question string) (string, error)
}

// AnswerGenerator produces the reply text, degrading to the apology instead
// of failing.
type AnswerGenerator interface {
	Generate(ctx context.Context, prompt string) answer.Result
}

// IDialogueService runs the per-user dialogue state machine.
type IDialogueService interface {
	// HandleMessage applies one state transition and returns the reply text.
	// An empty reply means stay silent (idle users sending ordinary text).
	HandleMessage(ctx context.Context, msg *dto.IncomingMessage) string
}

type dialogueService struct {
	sessions   *memory.SessionRepository
	classifier QuestionClassifier
	composer   PromptComposer
	generator  AnswerGenerator
	logger     logger.ILogger
}

func NewDialogueService(
	sessions *memory.SessionRepository,
	classifier QuestionClassifier,
	composer PromptComposer,
	generator AnswerGenerator,
	sysLogger logger.ILogger,
) IDialogueService {
	return &dialogueService{
		sessions:   sessions,
		classifier: classifier,
		composer:   composer,
		generator:  generator,
		logger:     sysLogger,
	}
}

func (ds *dialogueService) HandleMessage(ctx context.Context, msg *dto.IncomingMessage) string {
	// Serialize transitions per user; other users proceed concurrently.
	unlock := ds.sessions.Lock(msg.UserID)
	defer unlock()

	session := ds.sessions.GetOrCreate(msg.UserID)
	text := strings.TrimSpace(msg.Text)

	switch parseCommand(text) {
	case commandStartQuestion:
		// Re-entrant reset: fires regardless of prior state.
		session.InQuestionMode = true
		session.Category = store.CategoryNone
		ds.sessions.Save(session)
		return constant.AskQuestionReply

	case commandAnotherQuestion:
		// Drops only the pinned category so the next question re-classifies.
		session.Category = store.CategoryNone
		ds.sessions.Save(session)
		return constant.AskQuestionReply

	case commandEndQuestion:
		session.InQuestionMode = false
		session.Category = store.CategoryNone
		ds.sessions.Save(session)
		return constant.FarewellReply
	}

	if !session.InQuestionMode {
		// The bot only engages after the explicit start trigger.
		return ""
	}

	return ds.answerQuestion(ctx, session, text)
}

func (ds *dialogueService) answerQuestion(ctx context.Context, session *store.Session, question string) string {
	// Classify once per topic; the category stays pinned for follow-ups until
	// the user asks to switch or ends the session.
	if session.Category == store.CategoryNone {
		result := ds.classifier.Classify(ctx, question)
		if result.Degraded {
			ds.logger.Warn("dialogue", "classification degraded to default category", map[string]interface{}{
				"user_id":  session.UserID,
				"category": string(result.Category),
				"error":    result.Cause.Error(),
			})
		}
		session.Category = result.Category
		ds.sessions.Save(session)
	}

	composed, err := ds.composer.Compose(session.Category, question)
	if err != nil {
		ds.logger.Error("dialogue", "prompt composition failed", map[string]interface{}{
			"user_id":  session.UserID,
			"category": string(session.Category),
			"error":    err.Error(),
		})
		return constant.AnswerUnavailableReply
	}

	result := ds.generator.Generate(ctx, composed)
	if result.Degraded {
		ds.logger.Error("dialogue", "answer generation degraded to apology", map[string]interface{}{
			"user_id":  session.UserID,
			"category": string(session.Category),
			"error":    result.Cause.Error(),
		})
	}

	return result.Text
}
