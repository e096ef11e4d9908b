package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage drivers for resume files
const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

type Config struct {
	Port        string
	GinMode     string
	DBUrl       string
	DBMaxConns  int
	DBMinConns  int
	RunMigrate  bool
	FrontendURL string
	// Extra CORS origins on top of FrontendURL (comma separated)
	CORSAllowedOrigins []string
	// Token verification
	JWTSecret string // HS256 shared secret
	JWKSURL   string // RS256 key set, optional
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Resume storage
	StorageDriver     string
	UploadDir         string
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		DBMaxConns:  getEnvInt("DB_MAX_CONNS", 25),
		DBMinConns:  getEnvInt("DB_MIN_CONNS", 5),
		RunMigrate:  getEnvBool("RUN_MIGRATIONS", true),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Origins are compared verbatim, so strip trailing slashes here
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		JWTSecret:          getEnv("JWT_SECRET", getEnv("SECRET_KEY", "")),
		JWKSURL:            getEnv("JWKS_URL", ""),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),    // 1 minute window
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100), // 100 requests per window
		// Resume storage
		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverLocal)),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.JWTSecret == "" && cfg.JWKSURL == "" {
		log.Println("WARNING: neither JWT_SECRET nor JWKS_URL is set. Authenticated routes will reject every token.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	if cfg.StorageDriver == StorageDriverS3 && cfg.S3Bucket == "" {
		log.Println("WARNING: STORAGE_DRIVER=s3 but S3_BUCKET is empty. Resume downloads will fail.")
	}

	return cfg, nil
}

// IsRelease reports whether gin runs in release mode
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// AllowedOrigins returns the frontend origin plus any extra configured origins
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, len(c.CORSAllowedOrigins)+1)
	if c.FrontendURL != "" {
		origins = append(origins, c.FrontendURL)
	}
	return append(origins, c.CORSAllowedOrigins...)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks
func getEnvList(key string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
