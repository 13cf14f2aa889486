package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port             string
	DBPath           string
	DocsDir          string
	OpenAIEndpoint   string
	OpenAIAPIKey     string
	ChatModel        string
	EmbedModel       string
	AdminPassword    string
	MaxQueriesPerHr  int
	MaxTokensPerDay  int
	ToleranceXLSX    string
	MockAI           bool
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v, err := strconv.Atoi(get(k, "")); err == nil && v > 0 {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:            get("PORT", "8080"),
		DBPath:          get("DB_PATH", "scls.db"),
		DocsDir:         get("DOCS_DIR", "./docs"),
		OpenAIEndpoint:  get("OPENAI_ENDPOINT", "https://api.openai.com"),
		OpenAIAPIKey:    get("OPENAI_API_KEY", ""),
		ChatModel:       get("CHAT_MODEL", "gpt-3.5-turbo"),
		EmbedModel:      get("EMBED_MODEL", "text-embedding-ada-002"),
		AdminPassword:   get("ADMIN_PASSWORD", ""),
		MaxQueriesPerHr: getInt("MAX_QUERIES_PER_HOUR", 100),
		MaxTokensPerDay: getInt("MAX_TOKENS_PER_DAY", 500000),
		ToleranceXLSX:   get("TOLERANCE_XLSX", ""),
		MockAI:          get("MOCK_AI", "false") == "true",
	}
	log.Printf("[cfg] port=%s db=%s docs=%s chat_model=%s embed_model=%s max_queries/hr=%d max_tokens/day=%d mock_ai=%v",
		cfg.Port, cfg.DBPath, cfg.DocsDir, cfg.ChatModel, cfg.EmbedModel, cfg.MaxQueriesPerHr, cfg.MaxTokensPerDay, cfg.MockAI)
	return cfg
}
