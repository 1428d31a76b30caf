package controller

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"line-faq-bot/internal/dto"
	"line-faq-bot/pkg/line"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-channel-secret"

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakePublisher struct {
	published []*dto.IncomingMessage
}

func (f *fakePublisher) Publish(ctx context.Context, msg *dto.IncomingMessage) error {
	f.published = append(f.published, msg)
	return nil
}

func newTestApp(publisher *fakePublisher) *fiber.App {
	app := fiber.New()
	ctrl := NewWebhookController(testSecret, publisher, nopLogger{})
	ctrl.RegisterRoutes(app)
	return app
}

func postCallback(t *testing.T, app *fiber.App, body, signature string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/callback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(line.SignatureHeader, signature)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCallbackRejectsBadSignature(t *testing.T) {
	publisher := &fakePublisher{}
	app := newTestApp(publisher)

	body := `{"destination":"xxx","events":[]}`

	assert.Equal(t, fiber.StatusBadRequest, postCallback(t, app, body, "invalid"))
	assert.Equal(t, fiber.StatusBadRequest, postCallback(t, app, body, ""))
	assert.Empty(t, publisher.published)
}

func TestCallbackQueuesTextMessages(t *testing.T) {
	publisher := &fakePublisher{}
	app := newTestApp(publisher)

	body := `{
		"destination": "xxx",
		"events": [
			{
				"type": "message",
				"replyToken": "reply-token-1",
				"source": {"type": "user", "userId": "U001"},
				"message": {"id": "1", "type": "text", "text": "質問する"}
			}
		]
	}`

	status := postCallback(t, app, body, line.Sign(testSecret, []byte(body)))

	assert.Equal(t, fiber.StatusOK, status)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, "U001", publisher.published[0].UserID)
	assert.Equal(t, "reply-token-1", publisher.published[0].ReplyToken)
	assert.Equal(t, "質問する", publisher.published[0].Text)
}

func TestCallbackSkipsNonTextEvents(t *testing.T) {
	publisher := &fakePublisher{}
	app := newTestApp(publisher)

	body := `{
		"destination": "xxx",
		"events": [
			{"type": "follow", "replyToken": "t1", "source": {"type": "user", "userId": "U001"}},
			{"type": "message", "replyToken": "t2", "source": {"type": "user", "userId": "U001"},
			 "message": {"id": "1", "type": "sticker"}},
			{"type": "message", "replyToken": "t3", "source": {"type": "user", "userId": "U002"},
			 "message": {"id": "2", "type": "text", "text": "hello"}}
		]
	}`

	status := postCallback(t, app, body, line.Sign(testSecret, []byte(body)))

	assert.Equal(t, fiber.StatusOK, status)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, "U002", publisher.published[0].UserID)
}

func TestCallbackAcksEmptyEventList(t *testing.T) {
	publisher := &fakePublisher{}
	app := newTestApp(publisher)

	body := `{"destination":"xxx","events":[]}`
	status := postCallback(t, app, body, line.Sign(testSecret, []byte(body)))

	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, publisher.published)
}
