package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup and passed explicitly to the components
// that need it.
type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string
	JWTTTL    time.Duration

	StorageDriver    string // "disk" or "cloudinary"
	UploadDir        string
	CloudinaryFolder string

	MaxUploadBytes int64

	RateLimitPerMinute int

	LogLevel string
	LogPath  string
}

// Load reads configuration from the environment. A missing .env file is fine
// in production, where variables come from the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASS"),
		DBName:     getEnv("DB_NAME", "roomshare"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_MINUTES", 60)) * time.Minute,

		StorageDriver:    getEnv("STORAGE_DRIVER", "disk"),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		CloudinaryFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "roomshare"),

		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_MB", 100)) << 20,

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  os.Getenv("LOG_PATH"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
