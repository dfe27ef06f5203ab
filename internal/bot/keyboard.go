package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/calendar_bot/internal/calendar"
	"github.com/ivanoskov/calendar_bot/internal/model"
)

func (b *Bot) getMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📅 Календарь"),
			tgbotapi.NewKeyboardButton("📝 Сегодня"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📋 Категории"),
			tgbotapi.NewKeyboardButton("📊 Статистика"),
			tgbotapi.NewKeyboardButton("👤 Профиль"),
		),
	)
}

// getCalendarKeyboard строит месячную сетку: навигация, дни недели и
// по семь ячеек в ряду. У дня с задачами к числу добавляется точка,
// при переполнении — плюс.
func (b *Bot) getCalendarKeyboard(grid calendar.Grid) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("«", "cal_prev"),
		tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%s %d", calendar.MonthName(grid.Month), grid.Year), "noop"),
		tgbotapi.NewInlineKeyboardButtonData("»", "cal_next"),
	})

	weekdays := []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}
	var header []tgbotapi.InlineKeyboardButton
	for _, d := range weekdays {
		header = append(header, tgbotapi.NewInlineKeyboardButtonData(d, "noop"))
	}
	rows = append(rows, header)

	var row []tgbotapi.InlineKeyboardButton
	for _, cell := range grid.Cells {
		if cell.Day == 0 {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData("·", "noop"))
		} else {
			label := fmt.Sprintf("%d", cell.Day)
			if cell.More {
				label += "+"
			} else if cell.Total > 0 {
				label += "•"
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, "day_"+cell.Key))
		}
		if len(row) == 7 {
			rows = append(rows, row)
			row = nil
		}
	}
	// хвост последней недели добиваем пустыми ячейками
	for len(row) > 0 && len(row) < 7 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("·", "noop"))
	}
	if len(row) == 7 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) getDayKeyboard(key string, todos []model.Todo) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, t := range todos {
		title := t.Title
		if len([]rune(title)) > 24 {
			title = string([]rune(title)[:24]) + "…"
		}
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("✅ "+title, "done_"+t.ID),
			tgbotapi.NewInlineKeyboardButtonData("🗑", "deltodo_"+t.ID),
		}
		rows = append(rows, row)
	}

	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("➕ Добавить", "add_"+key),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Календарь", "cal_back"),
	})

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) getCategoriesPickKeyboard(categories []model.Category) tgbotapi.InlineKeyboardMarkup {
	var buttons [][]tgbotapi.InlineKeyboardButton

	for _, category := range categories {
		buttons = append(buttons, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(
				category.Name,
				"pick_"+category.ID,
			),
		})
	}

	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

func (b *Bot) getCategoriesManageKeyboard(categories []model.Category) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, category := range categories {
		if category.Locked {
			continue
		}
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🗑 "+category.Name, "delcat_"+category.ID),
		})
	}

	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("➕ Новая категория", "newcat"),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Календарь", "cal_back"),
	})

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// getConfirmDeleteKeyboard — явное подтверждение удаления категории
func (b *Bot) getConfirmDeleteKeyboard(categoryID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Удалить", "confirmcat_"+categoryID),
			tgbotapi.NewInlineKeyboardButtonData("Отмена", "cats_back"),
		),
	)
}

func (b *Bot) getRepeatKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Один раз", "repeat_none"),
			tgbotapi.NewInlineKeyboardButtonData("Каждый день", "repeat_daily"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Каждую неделю", "repeat_weekly"),
			tgbotapi.NewInlineKeyboardButtonData("Каждый месяц", "repeat_monthly"),
		),
	)
}

func (b *Bot) getPublicKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌍 Открытая", "public_yes"),
			tgbotapi.NewInlineKeyboardButtonData("🔒 Личная", "public_no"),
		),
	)
}
