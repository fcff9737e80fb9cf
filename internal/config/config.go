package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	TokenTTL       time.Duration
	Port           string
	CORSOrigin     string
	CloudinaryURL  string
	UploadFolder   string
	CookieSecure   bool
	CookieSameSite string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "earthmovers"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		TokenTTL:       getDurationEnv("TOKEN_TTL", 30, time.Minute),
		Port:           getEnvOrDefault("PORT", "5000"),
		CORSOrigin:     getEnvOrDefault("CORS_ORIGIN", "http://localhost:5173"),
		CloudinaryURL:  getEnvOrDefault("CLOUDINARY_URL", ""),
		UploadFolder:   getEnvOrDefault("UPLOAD_FOLDER", "bhagyashree"),
		CookieSecure:   getBoolEnv("COOKIE_SECURE", false),
		CookieSameSite: getEnvOrDefault("COOKIE_SAMESITE", "strict"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
