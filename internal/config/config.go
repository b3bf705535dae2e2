package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	JWTSecret      string
	JWTExpiryHours int

	RedisAddr     string
	NotifyChannel string
	SnapshotTTL   time.Duration

	AttachmentDir     string
	AttachmentBaseURL string

	GenAIAPIKey string
	GenAIModel  string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "qualiboard_user"),
		DBPassword: getEnv("DB_PASSWORD", "qualiboard_pass"),
		DBName:     getEnv("DB_NAME", "qualiboard_db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		NotifyChannel: getEnv("NOTIFY_CHANNEL", "board:notifications"),
		SnapshotTTL:   time.Duration(getEnvInt("SNAPSHOT_TTL_SECONDS", 300)) * time.Second,

		AttachmentDir:     getEnv("ATTACHMENT_DIR", "./attachments"),
		AttachmentBaseURL: getEnv("ATTACHMENT_BASE_URL", "http://localhost:8080/attachments"),

		GenAIAPIKey: getEnv("GENAI_API_KEY", ""),
		GenAIModel:  getEnv("GENAI_MODEL", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}
