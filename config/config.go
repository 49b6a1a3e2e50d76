package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	MongoURI          string
	Port              string
	JWTSecret         string
	AdminPasswordHash string
	CheckDelay        time.Duration
	SampleTimeout     time.Duration
	SendGridAPIKey    string
	AlertEmailFrom    string
	AlertEmailTo      string
	AWSRegion         string
	AWSBucketName     string
	GeminiAPIKey      string
	DefaultLanguage   string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	JWTSecret = os.Getenv("JWT_SECRET")
	AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")

	CheckDelay = secondsFromEnv("CHECK_DELAY_SECONDS", 2*time.Second)
	SampleTimeout = secondsFromEnv("SAMPLE_TIMEOUT_SECONDS", 90*time.Second)

	SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	AlertEmailFrom = os.Getenv("ALERT_EMAIL_FROM")
	AlertEmailTo = os.Getenv("ALERT_EMAIL_TO")

	AWSRegion = os.Getenv("AWS_REGION")
	if AWSRegion == "" {
		AWSRegion = "eu-central-1"
	}
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	DefaultLanguage = os.Getenv("DEFAULT_LANGUAGE")
	if DefaultLanguage == "" {
		DefaultLanguage = "en"
	}
}

func secondsFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		log.Printf("Invalid %s=%q, using default %v", key, raw, fallback)
		return fallback
	}
	return time.Duration(secs) * time.Second
}
