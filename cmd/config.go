package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront/internal/pkg/errs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	SiteURL           string
	LinkSecret        string
	StaffKey          string
	MediaRoot         string
	MediaURL          string
	MaxPhotoBytes     int64
	DeliveryFee       int64
	PlaceholderDomain string
	Timezone          string

	TelegramAPIURL   string
	TelegramBotToken string
	TelegramChatIDs  string

	SMTPAddr     string
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	ShopName     string

	KafkaBrokers       []string
	KafkaConsumerGroup string

	RedisAddr     string
	RedisPassword string
	DedupTTL      time.Duration

	NotifyWorkers     int
	NotifyQueueSize   int
	NotifySendTimeout time.Duration

	AutoCloseSchedule string
	AutoCloseIdle     time.Duration
}

// DSN is the gorm postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads .env when it exists and then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	var problems []error
	integer := func(key string, def int64) int64 {
		v, err := envInt(key, def)
		problems = append(problems, err)
		return v
	}
	duration := func(key string, def time.Duration) time.Duration {
		v, err := envDuration(key, def)
		problems = append(problems, err)
		return v
	}

	cfg := Config{
		HTTPPort: env("HTTP_PORT", "8080"),
		LogLevel: env("LOG_LEVEL", "info"),

		DBHost:     env("DB_HOST", "localhost"),
		DBPort:     env("DB_PORT", "5432"),
		DBUser:     env("DB_USER", "postgres"),
		DBPassword: env("DB_PASSWORD", ""),
		DBName:     env("DB_NAME", "storefront"),
		DBSslMode:  env("DB_SSLMODE", "disable"),

		SiteURL:           env("SITE_URL", "http://localhost:8080"),
		LinkSecret:        env("LINK_SECRET", ""),
		StaffKey:          env("STAFF_KEY", ""),
		MediaRoot:         env("MEDIA_ROOT", "media"),
		MediaURL:          env("MEDIA_URL", "/media/"),
		MaxPhotoBytes:     integer("MAX_PHOTO_BYTES", 10<<20),
		DeliveryFee:       integer("DELIVERY_FEE", 0),
		PlaceholderDomain: env("QUICK_ORDER_EMAIL_DOMAIN", "quick.local"),
		Timezone:          env("TIMEZONE", "Asia/Almaty"),

		TelegramAPIURL:   env("TELEGRAM_API_URL", ""),
		TelegramBotToken: env("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatIDs:  env("TELEGRAM_CHAT_ID", ""),

		SMTPAddr:     env("SMTP_ADDR", ""),
		SMTPUsername: env("SMTP_USERNAME", ""),
		SMTPPassword: env("SMTP_PASSWORD", ""),
		EmailFrom:    env("EMAIL_FROM", ""),
		ShopName:     env("SHOP_NAME", ""),

		KafkaBrokers:       envList("KAFKA_BROKERS"),
		KafkaConsumerGroup: env("KAFKA_CONSUMER_GROUP", ""),

		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPassword: env("REDIS_PASSWORD", ""),
		DedupTTL:      duration("NOTIFY_DEDUP_TTL", 10*time.Minute),

		NotifyWorkers:     int(integer("NOTIFY_WORKERS", 4)),
		NotifyQueueSize:   int(integer("NOTIFY_QUEUE_SIZE", 256)),
		NotifySendTimeout: duration("NOTIFY_SEND_TIMEOUT", 10*time.Second),

		AutoCloseSchedule: env("AUTO_CLOSE_SCHEDULE", "@every 15m"),
		AutoCloseIdle:     duration("AUTO_CLOSE_AFTER", 48*time.Hour),
	}

	if cfg.LinkSecret == "" {
		problems = append(problems, errs.NewValueIsRequiredError("LINK_SECRET"))
	}
	if err := errors.Join(problems...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func envInt(key string, def int64) (int64, error) {
	raw := env(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := env(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return def, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return v, nil
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(env(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
