package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ivanoskov/calendar_bot/internal/calendar"
	"github.com/ivanoskov/calendar_bot/internal/model"
)

// SessionSource отдает чаты с активными сессиями
type SessionSource interface {
	ActiveSessions() map[int64]string
}

// Sender доставляет текст в чат
type Sender func(chatID int64, text string)

// ReminderService рассылает утреннюю сводку задач по cron-расписанию
type ReminderService struct {
	planner  *Planner
	sessions SessionSource
	send     Sender
	cron     *cron.Cron
}

func NewReminderService(planner *Planner, sessions SessionSource, send Sender) *ReminderService {
	return &ReminderService{
		planner:  planner,
		sessions: sessions,
		send:     send,
		cron:     cron.New(),
	}
}

// Start регистрирует расписание и запускает планировщик
func (s *ReminderService) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return fmt.Errorf("некорректное расписание %q: %w", spec, err)
	}
	s.cron.Start()
	return nil
}

func (s *ReminderService) Stop() {
	s.cron.Stop()
}

// sweep обходит активные сессии и шлет сводку тем, у кого на сегодня
// есть задачи
func (s *ReminderService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := calendar.Today()
	for chatID, userID := range s.sessions.ActiveSessions() {
		todos, err := s.planner.TodosForDate(ctx, userID, today)
		if err != nil {
			log.Printf("reminder: не удалось получить задачи: %v", err)
			continue
		}
		if len(todos) == 0 {
			continue
		}
		s.send(chatID, FormatAgenda(today, todos))
	}
}

// FormatAgenda собирает текст сводки дня
func FormatAgenda(key string, todos []model.Todo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌅 Планы на %s:\n\n", key)
	for _, t := range todos {
		mark := "⬜"
		if t.Done {
			mark = "✅"
		}
		fmt.Fprintf(&b, "%s %s\n", mark, t.Title)
	}
	return b.String()
}
