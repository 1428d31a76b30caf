package dto

// IncomingMessage is the payload queued for each inbound text message event.
// The reply token is single-use and tied to the originating webhook event.
type IncomingMessage struct {
	UserID     string `json:"user_id" validate:"required"`
	ReplyToken string `json:"reply_token" validate:"required"`
	Text       string `json:"text" validate:"required"`
}
