package main

import (
	"log"

	"github.com/ivanoskov/calendar_bot/internal/auth"
	"github.com/ivanoskov/calendar_bot/internal/bot"
	"github.com/ivanoskov/calendar_bot/internal/config"
	"github.com/ivanoskov/calendar_bot/internal/profile"
	"github.com/ivanoskov/calendar_bot/internal/repository"
	"github.com/ivanoskov/calendar_bot/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		log.Fatal(err)
	}

	hub := auth.NewHub(cfg.SupabaseURL, cfg.SupabaseKey)
	signup := auth.NewSignupClient(cfg.SignupURL)
	profiles := profile.NewStore(cfg.DataDir)
	planner := service.NewPlanner(repo)

	bot, err := bot.NewBot(cfg.TelegramToken, planner, hub, signup, profiles, repo, cfg.PollInterval)
	if err != nil {
		log.Fatal(err)
	}

	reminder := service.NewReminderService(planner, hub, bot.SendText)
	if err := reminder.Start(cfg.ReminderSpec); err != nil {
		log.Fatal(err)
	}
	defer reminder.Stop()

	if err := bot.Start(); err != nil {
		log.Fatal(err)
	}
}
