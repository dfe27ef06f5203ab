package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SupabaseURL   string
	SupabaseKey   string
	TelegramToken string
	SignupURL     string        // HTTP-функция регистрации
	PollInterval  time.Duration // период опроса подписок
	DataDir       string        // локальное хранилище профилей
	ReminderSpec  string        // cron-выражение утренней сводки
}

func LoadConfig() (*Config, error) {
	// .env опционален: в serverless-окружении переменные приходят снаружи
	_ = godotenv.Load()

	cfg := &Config{
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_KEY"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		SignupURL:     os.Getenv("SIGNUP_URL"),
		PollInterval:  parseInterval(os.Getenv("POLL_INTERVAL")),
		DataDir:       os.Getenv("DATA_DIR"),
		ReminderSpec:  os.Getenv("REMINDER_SPEC"),
	}

	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL и SUPABASE_KEY обязательны")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN обязателен")
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.ReminderSpec == "" {
		cfg.ReminderSpec = "0 8 * * *"
	}
	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}
