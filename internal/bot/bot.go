package bot

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/calendar_bot/internal/auth"
	"github.com/ivanoskov/calendar_bot/internal/charts"
	"github.com/ivanoskov/calendar_bot/internal/profile"
	"github.com/ivanoskov/calendar_bot/internal/repository"
	"github.com/ivanoskov/calendar_bot/internal/service"
	"github.com/ivanoskov/calendar_bot/internal/store"
)

// UserState хранит текущее состояние диалога с пользователем
type UserState struct {
	AwaitingAction string // какой ввод ждем текстом
	Draft          store.TodoInput
	Signup         auth.SignupRequest
	ViewYear       int
	ViewMonth      int // с нуля
	SelectedDate   string
}

// sessionStores — пара сторов одной сессии чата
type sessionStores struct {
	categories *store.CategoryStore
	tasks      *store.TaskStore
}

type Bot struct {
	api      *tgbotapi.BotAPI
	planner  *service.Planner
	hub      *auth.Hub
	signup   *auth.SignupClient
	profiles *profile.Store
	charts   *charts.ChartGenerator
	repo     repository.Repository
	interval time.Duration

	mu     sync.Mutex
	stores map[int64]*sessionStores // сторы по чатам с активной сессией
	states map[int64]*UserState     // состояния диалогов по чатам
}

func NewBot(token string, planner *service.Planner, hub *auth.Hub, signup *auth.SignupClient, profiles *profile.Store, repo repository.Repository, pollInterval time.Duration) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		api:      api,
		planner:  planner,
		hub:      hub,
		signup:   signup,
		profiles: profiles,
		charts:   charts.NewChartGenerator(),
		repo:     repo,
		interval: pollInterval,
		stores:   make(map[int64]*sessionStores),
		states:   make(map[int64]*UserState),
	}

	// единственная подписка на события сессий: вход поднимает сторы чата,
	// выход гасит их и очищает кэш
	hub.Watch(b.onSession)

	return b, nil
}

// Start запускает бота в режиме long polling
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			// Логируем ошибку, но продолжаем работу
			fmt.Printf("Error handling update: %v\n", err)
		}
	}

	return nil
}

// HandleWebhook - точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(update)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	if update.Message != nil && update.Message.IsCommand() {
		return b.handleCommand(update.Message)
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(update.CallbackQuery)
	}

	if update.Message != nil {
		return b.handleMessage(update.Message)
	}

	return nil
}

// onSession — слушатель хаба сессий
func (b *Bot) onSession(chatID int64, userID string) {
	if userID == "" {
		b.mu.Lock()
		ss := b.stores[chatID]
		delete(b.stores, chatID)
		b.mu.Unlock()
		if ss != nil {
			ss.categories.Stop()
			ss.tasks.Stop()
		}
		return
	}

	ss := &sessionStores{
		categories: store.NewCategoryStore(b.repo, b.interval),
		tasks:      store.NewTaskStore(b.repo, b.interval),
	}
	ss.categories.Start(userID)
	ss.tasks.Start(userID)

	b.mu.Lock()
	prev := b.stores[chatID]
	b.stores[chatID] = ss
	b.mu.Unlock()

	// при повторном входе в том же чате старая пара гасится
	if prev != nil {
		prev.categories.Stop()
		prev.tasks.Stop()
	}
}

// storesFor возвращает сторы чата, если сессия активна
func (b *Bot) storesFor(chatID int64) (*sessionStores, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ss, ok := b.stores[chatID]
	return ss, ok
}

func (b *Bot) stateFor(chatID int64) *UserState {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.states[chatID]
	if !ok {
		state = &UserState{}
		b.states[chatID] = state
	}
	return state
}

// SendText отправляет обычное текстовое сообщение (используется и рассылкой
// напоминаний)
func (b *Bot) SendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	b.api.Send(msg)
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	b.api.Send(msg)
}

func (b *Bot) answerCallback(callback *tgbotapi.CallbackQuery) {
	b.api.Request(tgbotapi.NewCallback(callback.ID, ""))
}
