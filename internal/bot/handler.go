package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/calendar_bot/internal/auth"
	"github.com/ivanoskov/calendar_bot/internal/calendar"
	"github.com/ivanoskov/calendar_bot/internal/model"
	"github.com/ivanoskov/calendar_bot/internal/store"
)

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "login":
		b.handleLogin(message)
	case "signup":
		b.handleSignupStart(message)
	case "logout":
		b.handleLogout(message)
	case "calendar":
		b.showCalendar(chatID)
	case "today":
		b.showDay(chatID, calendar.Today())
	case "day":
		key := calendar.SanitizeKey(strings.TrimSpace(message.CommandArguments()), time.Now())
		b.showDay(chatID, key)
	case "categories":
		b.showCategories(chatID)
	case "profile":
		b.showProfile(chatID)
	case "level":
		b.showLevel(chatID)
	case "stats":
		b.showStats(chatID)
	case "name":
		b.stateFor(chatID).AwaitingAction = "profile_name"
		b.SendText(chatID, "Введите новое имя:")
	case "help":
		b.SendText(chatID, helpText)
	}

	return nil
}

const helpText = "Команды:\n" +
	"/login — вход (email и пароль)\n" +
	"/signup — регистрация\n" +
	"/logout — выход\n" +
	"/calendar — календарь на месяц\n" +
	"/today — список на сегодня\n" +
	"/day 2026-09-01 — список на день\n" +
	"/categories — категории\n" +
	"/profile — профиль\n" +
	"/level — уровень\n" +
	"/stats — статистика месяца\n" +
	"/name — изменить имя"

func (b *Bot) handleStart(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID,
		"Добро пожаловать в календарь-планировщик! 📅\n\n"+
			"Я помогу вам вести задачи по дням и категориям. Вот что я умею:\n\n"+
			"• Месячный календарь и списки на день\n"+
			"• Категории с цветами\n"+
			"• Уровни и очки за выполненные задачи\n\n"+
			"Войдите: /login, или зарегистрируйтесь: /signup")

	msg.ReplyMarkup = b.getMainKeyboard()
	b.api.Send(msg)
}

func (b *Bot) handleLogin(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())
	if args == "" {
		b.stateFor(chatID).AwaitingAction = "login"
		b.SendText(chatID, "Отправьте email и пароль одним сообщением через пробел:")
		return
	}
	b.doLogin(chatID, args)
}

func (b *Bot) doLogin(chatID int64, text string) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		b.sendErrorMessage(chatID, "Нужны email и пароль через пробел")
		return
	}

	session, err := b.hub.SignIn(chatID, parts[0], parts[1])
	if err != nil {
		b.sendErrorMessage(chatID, err.Error())
		return
	}

	// Создаем категории по умолчанию при первом входе
	if err := b.planner.CreateDefaultCategories(context.Background(), session.UserID); err != nil {
		b.sendErrorMessage(chatID, "Ошибка при создании категорий")
	}

	name := b.profiles.DisplayName(session.UserID)
	if name == "" {
		name = session.Email
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("С возвращением, %s! ✅", name))
	msg.ReplyMarkup = b.getMainKeyboard()
	b.api.Send(msg)
}

func (b *Bot) handleSignupStart(message *tgbotapi.Message) {
	state := b.stateFor(message.Chat.ID)
	state.Signup = auth.SignupRequest{}
	state.AwaitingAction = "signup_email"
	b.SendText(message.Chat.ID, "Регистрация. Введите email:")
}

func (b *Bot) handleLogout(message *tgbotapi.Message) {
	b.hub.SignOut(message.Chat.ID)
	b.SendText(message.Chat.ID, "Вы вышли из аккаунта 👋")
}

func (b *Bot) handleMessage(message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	state := b.stateFor(chatID)
	text := strings.TrimSpace(message.Text)

	switch state.AwaitingAction {
	case "login":
		state.AwaitingAction = ""
		b.doLogin(chatID, text)
		return nil
	case "signup_email":
		state.Signup.Email = text
		state.AwaitingAction = "signup_id"
		b.SendText(chatID, "Введите идентификатор (логин):")
		return nil
	case "signup_id":
		state.Signup.ID = text
		state.AwaitingAction = "signup_password"
		b.SendText(chatID, "Введите пароль (8–16 символов):")
		return nil
	case "signup_password":
		state.Signup.Password = text
		state.AwaitingAction = "signup_confirm"
		b.SendText(chatID, "Повторите пароль:")
		return nil
	case "signup_confirm":
		state.AwaitingAction = ""
		b.doSignup(chatID, state, text)
		return nil
	case "new_category":
		state.AwaitingAction = ""
		b.doAddCategory(chatID, text)
		return nil
	case "task_title":
		state.Draft.Title = text
		state.AwaitingAction = ""
		msg := tgbotapi.NewMessage(chatID, "Как повторять задачу?")
		msg.ReplyMarkup = b.getRepeatKeyboard()
		b.api.Send(msg)
		return nil
	case "task_range":
		b.doTaskRange(chatID, state, text)
		return nil
	case "task_memo":
		state.AwaitingAction = ""
		b.doSubmitTask(chatID, state, text)
		return nil
	case "profile_name":
		state.AwaitingAction = ""
		b.doSetName(chatID, text)
		return nil
	}

	switch text {
	case "📅 Календарь":
		b.showCalendar(chatID)
	case "📝 Сегодня":
		b.showDay(chatID, calendar.Today())
	case "📋 Категории":
		b.showCategories(chatID)
	case "📊 Статистика":
		b.showStats(chatID)
	case "👤 Профиль":
		b.showProfile(chatID)
	}

	return nil
}

func (b *Bot) doSignup(chatID int64, state *UserState, confirm string) {
	form := state.Signup
	state.Signup = auth.SignupRequest{}

	if err := auth.ValidateSignup(form.Email, form.ID, form.Password, confirm); err != nil {
		b.sendErrorMessage(chatID, err.Error()+". Начните заново: /signup")
		return
	}

	if err := b.signup.Signup(context.Background(), form); err != nil {
		b.sendErrorMessage(chatID, "Ошибка: "+err.Error())
		return
	}
	b.SendText(chatID, "✅ Регистрация прошла успешно! Теперь войдите: /login")
}

func (b *Bot) doAddCategory(chatID int64, text string) {
	ss, ok := b.requireStores(chatID)
	if !ok {
		return
	}

	// формат: «Название #RRGGBB», цвет можно опустить
	name := text
	color := "#a2d2ff"
	if i := strings.LastIndex(text, "#"); i > 0 && len(text)-i == 7 {
		color = text[i:]
		name = strings.TrimSpace(text[:i])
	}

	if err := ss.categories.Add(context.Background(), name, color); err != nil {
		b.sendErrorMessage(chatID, err.Error())
		return
	}
	b.SendText(chatID, "Категория создана! ✅")
	b.showCategories(chatID)
}

func (b *Bot) doTaskRange(chatID int64, state *UserState, text string) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		b.sendErrorMessage(chatID, "Отправьте две даты: 2026-09-01 2026-09-07")
		return
	}
	state.Draft.StartDate = parts[0]
	state.Draft.EndDate = parts[1]
	state.AwaitingAction = ""

	msg := tgbotapi.NewMessage(chatID, "Кому видна задача?")
	msg.ReplyMarkup = b.getPublicKeyboard()
	b.api.Send(msg)
}

func (b *Bot) doSubmitTask(chatID int64, state *UserState, memo string) {
	ss, ok := b.requireStores(chatID)
	if !ok {
		return
	}
	if memo == "-" {
		memo = ""
	}
	state.Draft.Memo = memo

	if err := ss.tasks.Add(context.Background(), state.Draft); err != nil {
		b.sendErrorMessage(chatID, err.Error())
		return
	}

	key := state.Draft.DateKey
	state.Draft = store.TodoInput{}
	b.SendText(chatID, "Задача сохранена! ✅")
	b.showDay(chatID, key)
}

func (b *Bot) doSetName(chatID int64, name string) {
	session, ok := b.hub.Session(chatID)
	if !ok {
		b.sendErrorMessage(chatID, "Сначала войдите: /login")
		return
	}
	if err := b.profiles.SetDisplayName(session.UserID, name); err != nil {
		b.sendErrorMessage(chatID, err.Error())
		return
	}
	b.SendText(chatID, "Имя сохранено! ✅")
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	defer b.answerCallback(callback)

	chatID := callback.Message.Chat.ID
	state := b.stateFor(chatID)
	data := callback.Data

	switch {
	case data == "noop":
		return nil

	case data == "cal_prev" || data == "cal_next":
		if data == "cal_prev" {
			state.ViewMonth--
			if state.ViewMonth < 0 {
				state.ViewMonth = 11
				state.ViewYear--
			}
		} else {
			state.ViewMonth++
			if state.ViewMonth > 11 {
				state.ViewMonth = 0
				state.ViewYear++
			}
		}
		b.editCalendar(chatID, callback.Message.MessageID)

	case data == "cal_back":
		b.showCalendar(chatID)

	case data == "cats_back":
		b.showCategories(chatID)

	case strings.HasPrefix(data, "day_"):
		b.showDay(chatID, strings.TrimPrefix(data, "day_"))

	case strings.HasPrefix(data, "add_"):
		b.startAddTask(chatID, state, strings.TrimPrefix(data, "add_"))

	case strings.HasPrefix(data, "pick_"):
		state.Draft.CategoryID = strings.TrimPrefix(data, "pick_")
		state.AwaitingAction = "task_title"
		b.SendText(chatID, "Введите название задачи:")

	case strings.HasPrefix(data, "repeat_"):
		state.Draft.Repeat = model.ParseRepeat(strings.TrimPrefix(data, "repeat_"))
		if state.Draft.Repeat == model.RepeatNone {
			msg := tgbotapi.NewMessage(chatID, "Кому видна задача?")
			msg.ReplyMarkup = b.getPublicKeyboard()
			b.api.Send(msg)
		} else {
			state.AwaitingAction = "task_range"
			b.SendText(chatID, "Отправьте период двумя датами: 2026-09-01 2026-09-07")
		}

	case data == "public_yes" || data == "public_no":
		state.Draft.IsPublic = data == "public_yes"
		state.AwaitingAction = "task_memo"
		b.SendText(chatID, "Заметка к задаче (или «-», чтобы пропустить):")

	case strings.HasPrefix(data, "done_"):
		b.doCompleteTodo(chatID, state, strings.TrimPrefix(data, "done_"))

	case strings.HasPrefix(data, "deltodo_"):
		b.doDeleteTodo(chatID, state, strings.TrimPrefix(data, "deltodo_"))

	case data == "newcat":
		state.AwaitingAction = "new_category"
		b.SendText(chatID, "Название и цвет через пробел: Работа #112233 (цвет можно опустить)")

	case strings.HasPrefix(data, "delcat_"):
		categoryID := strings.TrimPrefix(data, "delcat_")
		msg := tgbotapi.NewMessage(chatID, "Удалить категорию? Задачи останутся без категории.")
		msg.ReplyMarkup = b.getConfirmDeleteKeyboard(categoryID)
		b.api.Send(msg)

	case strings.HasPrefix(data, "confirmcat_"):
		b.doDeleteCategory(chatID, strings.TrimPrefix(data, "confirmcat_"))
	}

	return nil
}

func (b *Bot) startAddTask(chatID int64, state *UserState, key string) {
	ss, ok := b.requireStores(chatID)
	if !ok {
		return
	}

	categories := ss.categories.List()
	if len(categories) == 0 {
		b.sendErrorMessage(chatID, "Сначала создайте категорию: /categories")
		return
	}

	state.Draft = store.TodoInput{DateKey: key}
	state.SelectedDate = key

	msg := tgbotapi.NewMessage(chatID, "Выберите категорию:")
	msg.ReplyMarkup = b.getCategoriesPickKeyboard(categories)
	b.api.Send(msg)
}

func (b *Bot) doCompleteTodo(chatID int64, state *UserState, todoID string) {
	session, ok := b.hub.Session(chatID)
	if !ok {
		b.sendErrorMessage(chatID, "Сначала войдите: /login")
		return
	}

	todo, err := b.planner.CompleteTodo(context.Background(), session.UserID, todoID)
	if err != nil {
		b.sendErrorMessage(chatID, err.Error())
		return
	}

	coins, err := b.profiles.AddCoins(session.UserID, 1)
	if err != nil {
		coins = b.profiles.Coins(session.UserID)
	}
	b.SendText(chatID, fmt.Sprintf("«%s» выполнено! ✅ +1 🪙 (всего %d)", todo.Title, coins))

	// отметка прошла мимо стора, просим подписку обновиться
	if ss, ok := b.storesFor(chatID); ok {
		ss.tasks.Nudge()
	}
}

func (b *Bot) doDeleteTodo(chatID int64, state *UserState, todoID string) {
	ss, ok := b.requireStores(chatID)
	if !ok {
		return
	}
	if err := ss.tasks.Delete(context.Background(), todoID); err != nil {
		b.sendErrorMessage(chatID, err.Error())
		return
	}
	b.SendText(chatID, "Задача удалена 🗑")
}

func (b *Bot) doDeleteCategory(chatID int64, categoryID string) {
	ss, ok := b.requireStores(chatID)
	if !ok {
		return
	}
	if err := ss.categories.Delete(context.Background(), categoryID); err != nil {
		b.sendErrorMessage(chatID, err.Error())
		return
	}
	b.SendText(chatID, "Категория удалена 🗑")
	b.showCategories(chatID)
}

// requireStores возвращает сторы чата или просит войти
func (b *Bot) requireStores(chatID int64) (*sessionStores, bool) {
	ss, ok := b.storesFor(chatID)
	if !ok {
		b.sendErrorMessage(chatID, "Сначала войдите: /login")
		return nil, false
	}
	return ss, true
}
