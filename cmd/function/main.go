package main

import (
	"context"

	"github.com/ivanoskov/calendar_bot/internal/auth"
	"github.com/ivanoskov/calendar_bot/internal/bot"
	"github.com/ivanoskov/calendar_bot/internal/config"
	"github.com/ivanoskov/calendar_bot/internal/profile"
	"github.com/ivanoskov/calendar_bot/internal/repository"
	"github.com/ivanoskov/calendar_bot/internal/service"
)

// Request структура входящего запроса от API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response структура ответа для API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

func Handler(ctx context.Context, request Request) (*Response, error) {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	// Инициализация репозитория
	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		return errorResponse(err)
	}

	hub := auth.NewHub(cfg.SupabaseURL, cfg.SupabaseKey)
	signup := auth.NewSignupClient(cfg.SignupURL)
	profiles := profile.NewStore(cfg.DataDir)
	planner := service.NewPlanner(repo)

	// Инициализация бота
	bot, err := bot.NewBot(cfg.TelegramToken, planner, hub, signup, profiles, repo, cfg.PollInterval)
	if err != nil {
		return errorResponse(err)
	}

	// Обработка webhook-обновления
	if err := bot.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Точка входа для локального тестирования
}
