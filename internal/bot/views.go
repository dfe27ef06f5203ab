package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/calendar_bot/internal/calendar"
	"github.com/ivanoskov/calendar_bot/internal/model"
	"github.com/ivanoskov/calendar_bot/internal/store"
)

func (b *Bot) showCalendar(chatID int64) {
	ss, ok := b.requireStores(chatID)
	if !ok {
		return
	}

	state := b.stateFor(chatID)
	if state.ViewYear == 0 {
		now := time.Now()
		state.ViewYear = now.Year()
		state.ViewMonth = int(now.Month()) - 1
	}

	grid := calendar.MonthGrid(state.ViewYear, state.ViewMonth, ss.tasks.ByDate)
	msg := tgbotapi.NewMessage(chatID, b.calendarText(ss, grid))
	msg.ReplyMarkup = b.getCalendarKeyboard(grid)
	b.api.Send(msg)
}

// editCalendar перерисовывает сетку в том же сообщении при навигации
func (b *Bot) editCalendar(chatID int64, messageID int) {
	ss, ok := b.requireStores(chatID)
	if !ok {
		return
	}

	state := b.stateFor(chatID)
	grid := calendar.MonthGrid(state.ViewYear, state.ViewMonth, ss.tasks.ByDate)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID,
		b.calendarText(ss, grid), b.getCalendarKeyboard(grid))
	b.api.Send(edit)
}

func (b *Bot) calendarText(ss *sessionStores, grid calendar.Grid) string {
	text := fmt.Sprintf("📅 %s %d", calendar.MonthName(grid.Month), grid.Year)
	if ss.tasks.State() == store.StateLoading {
		text += "\n⏳ Синхронизация…"
	}
	return text
}

func (b *Bot) showDay(chatID int64, key string) {
	ss, ok := b.requireStores(chatID)
	if !ok {
		return
	}

	state := b.stateFor(chatID)
	state.SelectedDate = key

	todos := ss.tasks.ByDate(key)
	categories := ss.categories.List()

	msg := tgbotapi.NewMessage(chatID, b.dayText(key, todos, categories))
	msg.ReplyMarkup = b.getDayKeyboard(key, todos)
	b.api.Send(msg)
}

// dayText — список дня, сгруппированный по категориям: сначала системная,
// затем пользовательские, в конце задачи без категории
func (b *Bot) dayText(key string, todos []model.Todo, categories []model.Category) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📝 %s\n", calendar.DisplayDate(key))

	if len(todos) == 0 {
		sb.WriteString("\nНа этот день задач нет.")
		return sb.String()
	}

	grouped := make(map[string][]model.Todo)
	for _, t := range todos {
		if c, ok := model.ResolveCategory(t, categories); ok {
			grouped[c.ID] = append(grouped[c.ID], t)
		} else {
			grouped[""] = append(grouped[""], t)
		}
	}

	ordered := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		if c.Locked {
			ordered = append(ordered, c)
		}
	}
	for _, c := range categories {
		if !c.Locked {
			ordered = append(ordered, c)
		}
	}

	for _, c := range ordered {
		list := grouped[c.ID]
		if len(list) == 0 {
			continue
		}
		lock := ""
		if c.Locked {
			lock = " 🔒"
		}
		fmt.Fprintf(&sb, "\n● %s%s\n", c.Name, lock)
		for _, t := range list {
			sb.WriteString(todoLine(t))
		}
	}
	if list := grouped[""]; len(list) > 0 {
		sb.WriteString("\n● Без категории\n")
		for _, t := range list {
			sb.WriteString(todoLine(t))
		}
	}

	return sb.String()
}

func todoLine(t model.Todo) string {
	mark := "⬜"
	if t.Done {
		mark = "✅"
	}
	line := fmt.Sprintf("  %s %s", mark, t.Title)
	if !t.IsPublic {
		line += " 🔒"
	}
	if t.Repeat != model.RepeatNone {
		line += " 🔁"
	}
	if t.StartDate != t.EndDate {
		line += fmt.Sprintf(" (%s – %s)", t.StartDate, t.EndDate)
	}
	if t.Memo != "" {
		line += "\n      💬 " + t.Memo
	}
	return line + "\n"
}

func (b *Bot) showCategories(chatID int64) {
	ss, ok := b.requireStores(chatID)
	if !ok {
		return
	}

	categories := ss.categories.List()

	var sb strings.Builder
	sb.WriteString("📋 Категории:\n")
	if len(categories) == 0 {
		if ss.categories.State() == store.StateLoading {
			sb.WriteString("\n⏳ Синхронизация…")
		} else {
			sb.WriteString("\nПока пусто. Создайте первую категорию.")
		}
	}
	for _, c := range categories {
		lock := ""
		if c.Locked {
			lock = " 🔒"
		}
		fmt.Fprintf(&sb, "\n● %s (%s)%s", c.Name, c.Color, lock)
	}

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ReplyMarkup = b.getCategoriesManageKeyboard(categories)
	b.api.Send(msg)
}

func (b *Bot) showProfile(chatID int64) {
	session, ok := b.hub.Session(chatID)
	if !ok {
		b.sendErrorMessage(chatID, "Сначала войдите: /login")
		return
	}

	name := b.profiles.DisplayName(session.UserID)
	if name == "" {
		name = "не задано"
	}
	coins := b.profiles.Coins(session.UserID)

	info, err := b.planner.LevelInfo(context.Background(), session.UserID)
	if err != nil {
		b.sendErrorMessage(chatID, "Ошибка при получении профиля")
		return
	}

	text := fmt.Sprintf(
		"👤 Профиль\n\n"+
			"Имя: %s\n"+
			"Аккаунт: %s\n"+
			"🪙 Монеты: %d\n"+
			"🏆 Lv.%d\n\n"+
			"Изменить имя: /name",
		name, session.Email, coins, info.Level,
	)
	b.SendText(chatID, text)
}

func (b *Bot) showLevel(chatID int64) {
	session, ok := b.hub.Session(chatID)
	if !ok {
		b.sendErrorMessage(chatID, "Сначала войдите: /login")
		return
	}

	info, err := b.planner.LevelInfo(context.Background(), session.UserID)
	if err != nil {
		b.sendErrorMessage(chatID, "Ошибка при получении уровня")
		return
	}

	bar := strings.Repeat("▰", info.Progress) + strings.Repeat("▱", info.Target-info.Progress)
	text := fmt.Sprintf(
		"🏆 Уровень %d\n\n"+
			"%s %d/%d (%.0f%%)\n\n"+
			"Всего очков: %d\n"+
			"Очки начисляются за выполненные задачи.",
		info.Level, bar, info.Progress, info.Target, info.Percent, info.Points,
	)
	b.SendText(chatID, text)
}

func (b *Bot) showStats(chatID int64) {
	session, ok := b.hub.Session(chatID)
	if !ok {
		b.sendErrorMessage(chatID, "Сначала войдите: /login")
		return
	}

	state := b.stateFor(chatID)
	year, month0 := state.ViewYear, state.ViewMonth
	if year == 0 {
		now := time.Now()
		year, month0 = now.Year(), int(now.Month())-1
	}

	stats, err := b.planner.MonthStats(context.Background(), session.UserID, year, month0)
	if err != nil {
		b.sendErrorMessage(chatID, "Ошибка при формировании статистики")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 %s\n\n", stats.Period)
	fmt.Fprintf(&sb, "Всего задач: %d\n", stats.Total)
	fmt.Fprintf(&sb, "Выполнено: %d\n", stats.Done)
	if len(stats.Categories) > 0 {
		sb.WriteString("\nПо категориям:\n")
		for _, cc := range stats.Categories {
			fmt.Fprintf(&sb, "● %s: %d (выполнено %d)\n", cc.Name, cc.Count, cc.Done)
		}
	}
	b.SendText(chatID, sb.String())

	if pie, err := b.charts.GenerateCategoryPieChart(stats); err == nil && pie != nil {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "categories.png", Bytes: pie})
		b.api.Send(photo)
	}
	if progress, err := b.charts.GenerateProgressChart(stats); err == nil && progress != nil {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "progress.png", Bytes: progress})
		b.api.Send(photo)
	}
}
