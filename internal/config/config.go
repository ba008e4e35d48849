package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Rag      RagConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	UploadDir          string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	Groq         string
}

type AIConfig struct {
	EmbeddingProvider        string // "gemini" or "ollama"
	OllamaBaseURL            string
	OllamaModel              string
	LLMProvider              string // "ollama" or "groq"
	LLMModel                 string // e.g. "llama3", "llama-3.3-70b-versatile"
	CompletionTimeoutSeconds int
}

type RagConfig struct {
	ChunkSize    int
	ChunkOverlap int
	EmbedTopic   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Groq:         getEnv("GROQ_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:        getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:            getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:              getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:              getEnv("LLM_PROVIDER", "groq"),
			LLMModel:                 getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
			CompletionTimeoutSeconds: getEnvAsInt("LLM_COMPLETION_TIMEOUT_SECONDS", 60),
		},
		Rag: RagConfig{
			ChunkSize:    getEnvAsInt("RAG_CHUNK_SIZE", 500),
			ChunkOverlap: getEnvAsInt("RAG_CHUNK_OVERLAP", 100),
			EmbedTopic:   getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_DOCUMENT_CHUNK"),
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
