package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Line   LineConfig
	OpenAI OpenAIConfig
	Prompt PromptConfig
}

type AppConfig struct {
	Port         string
	Environment  string
	LogFilePath  string
	InboundTopic string
	TurnTimeout  time.Duration
	SessionTTL   time.Duration
}

type LineConfig struct {
	ChannelAccessToken string
	ChannelSecret      string
}

type OpenAIConfig struct {
	APIKey          string
	ClassifierModel string
	AnswerModel     string
}

type PromptConfig struct {
	Dir      string
	MaxRunes int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:         getEnv("APP_PORT", "5000"),
			Environment:  getEnv("GO_ENV", "development"),
			LogFilePath:  getEnv("LOG_FILE_PATH", "app.log"),
			InboundTopic: getEnv("INBOUND_MESSAGE_TOPIC_NAME", "INBOUND_MESSAGE"),
			TurnTimeout:  time.Duration(getEnvAsInt("TURN_TIMEOUT_SECONDS", 25)) * time.Second,
			SessionTTL:   time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 12)) * time.Hour,
		},
		Line: LineConfig{
			ChannelAccessToken: getEnv("LINE_CHANNEL_ACCESS_TOKEN", "<Your Line Channel Access Token>"),
			ChannelSecret:      getEnv("LINE_CHANNEL_SECRET", "<Your Line Channel Secret>"),
		},
		OpenAI: OpenAIConfig{
			APIKey:          getEnv("OPENAI_API_KEY", "<Your OpenAI API Key>"),
			ClassifierModel: getEnv("OPENAI_CLASSIFIER_MODEL", "gpt-4o-mini"),
			AnswerModel:     getEnv("OPENAI_ANSWER_MODEL", "gpt-4o-mini"),
		},
		Prompt: PromptConfig{
			Dir:      getEnv("PROMPT_DIR", "prompt"),
			MaxRunes: getEnvAsInt("PROMPT_MAX_RUNES", 30000),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
