package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis (optional, burnout score cache)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Kafka (optional, activity feed)
	KafkaBrokers string
	KafkaTopic   string

	// Companion agent (burnout prediction / suggestions)
	AgentURL string

	// Demo user used when requests carry no user_id.
	// Stand-in for real multi-tenant auth; always threaded explicitly.
	DefaultUserID string

	// Timezone for sleep date keys (YYYY-MM-DD bucketing)
	Timezone string
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	cfg := &Config{
		Port: os.Getenv("PORT"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  os.Getenv("DB_SSLMODE"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:   os.Getenv("KAFKA_TOPIC"),

		AgentURL: os.Getenv("AGENT_URL"),

		DefaultUserID: os.Getenv("DEFAULT_USER_ID"),
		Timezone:      os.Getenv("TIMEZONE"),
	}

	if cfg.Port == "" {
		cfg.Port = "3001"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = "dashboard-activity"
	}
	if cfg.AgentURL == "" {
		cfg.AgentURL = "http://localhost:5000"
	}
	if cfg.DefaultUserID == "" {
		cfg.DefaultUserID = "demo-user"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "America/Los_Angeles"
	}

	return cfg
}
