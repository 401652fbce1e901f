package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const devSecret = "foodhub-dev-secret"

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPAddr    string
	MetricsAddr string
	CORSOrigins []string

	MongoURI string
	MongoDB  string

	JWTSecret     []byte
	JWTTTL        time.Duration
	RefreshTTL    time.Duration
	ResetURLBase  string
	ResetTokenTTL time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	KafkaBrokers    []string
	KafkaLogTopic   string
	KafkaEventTopic string
	KafkaLogGroup   string

	RedisAddr string

	StripeSecretKey string
	PaymentCurrency string

	OTLPEndpoint     string
	ElasticsearchURL string
	LogIndex         string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		MetricsAddr:      getEnv("METRICS_ADDR", ":9090"),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "*")),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "foodhub"),
		ResetURLBase:     getEnv("RESET_URL_BASE", "http://localhost:3000/auth/resetpassword"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:         getEnv("SMTP_FROM", "Foodhub <support@foodhub.local>"),
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaLogTopic:    getEnv("KAFKA_LOG_TOPIC", "logs"),
		KafkaEventTopic:  getEnv("KAFKA_EVENT_TOPIC", "foodhub-events"),
		KafkaLogGroup:    getEnv("KAFKA_LOG_GROUP", "es-pusher"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		PaymentCurrency:  getEnv("PAYMENT_CURRENCY", "usd"),
		OTLPEndpoint:     os.Getenv("OTLP_ENDPOINT"),
		ElasticsearchURL: getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
		LogIndex:         getEnv("LOG_INDEX", "logs"),
	}

	var err error
	if cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "24h")); err != nil {
		return nil, errors.New("invalid JWT_TTL: " + err.Error())
	}
	if cfg.RefreshTTL, err = time.ParseDuration(getEnv("JWT_REFRESH_TTL", "168h")); err != nil {
		return nil, errors.New("invalid JWT_REFRESH_TTL: " + err.Error())
	}
	if cfg.ResetTokenTTL, err = time.ParseDuration(getEnv("RESET_TOKEN_TTL", "10m")); err != nil {
		return nil, errors.New("invalid RESET_TOKEN_TTL: " + err.Error())
	}
	if cfg.SMTPPort, err = strconv.Atoi(getEnv("SMTP_PORT", "587")); err != nil {
		return nil, errors.New("invalid SMTP_PORT: " + err.Error())
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if cfg.Production() {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		secret = devSecret
	}
	cfg.JWTSecret = []byte(secret)

	return cfg, nil
}

func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

// ConfigureLogging applies the log level and picks JSON output for production.
func (c *Config) ConfigureLogging() {
	if c.Production() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.WithError(err).Warn("unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
