package config

import "os"

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RedisPassword string
	SessionSecret string
	ImageDir      string
}

func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "3000"),
		MongoURI:      getenv("MONGODB_URI", ""),
		MongoDB:       getenv("MONGODB_DATABASE", "members_site"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		SessionSecret: getenv("SESSION_SECRET", ""),
		ImageDir:      getenv("IMAGE_DIR", "public/images"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
