package store

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ivanoskov/calendar_bot/internal/calendar"
	"github.com/ivanoskov/calendar_bot/internal/model"
)

// TodoRepository определяет интерфейс удаленного источника задач
type TodoRepository interface {
	GetTodos(ctx context.Context, userID string, filter model.TodoFilter) ([]model.Todo, error)
	CreateTodo(ctx context.Context, todo *model.Todo) error
	DeleteTodo(ctx context.Context, id string, userID string) error
}

// TodoInput — данные новой задачи. Если диапазон не задан, задача
// однодневная: границы берутся из DateKey.
type TodoInput struct {
	Title      string
	CategoryID string
	DateKey    string
	StartDate  string
	EndDate    string
	Repeat     model.Repeat
	IsPublic   bool
	Memo       string
}

// TaskStore — кэш задач одной сессии
type TaskStore struct {
	repo     TodoRepository
	interval time.Duration

	mu     sync.RWMutex
	userID string
	state  State
	items  []model.Todo
	cancel context.CancelFunc
	done   chan struct{}
	wake   chan struct{}
}

func NewTaskStore(repo TodoRepository, interval time.Duration) *TaskStore {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &TaskStore{
		repo:     repo,
		interval: interval,
	}
}

// Start привязывает стор к сессии и поднимает подписку, предварительно
// погасив предыдущую
func (s *TaskStore) Start(userID string) {
	s.Stop()
	if userID == "" {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	wake := make(chan struct{}, 1)

	s.mu.Lock()
	s.userID = userID
	s.state = StateLoading
	s.items = nil
	s.cancel = cancel
	s.done = done
	s.wake = wake
	s.mu.Unlock()

	go s.watch(ctx, userID, done, wake)
}

// Stop гасит подписку и очищает кэш
func (s *TaskStore) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.done = nil
	s.wake = nil
	s.userID = ""
	s.state = StateUnauthenticated
	s.items = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (s *TaskStore) watch(ctx context.Context, userID string, done chan struct{}, wake chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.refresh(ctx, userID)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-wake:
		}
	}
}

func (s *TaskStore) refresh(ctx context.Context, userID string) {
	list, err := s.repo.GetTodos(ctx, userID, model.TodoFilter{})
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("store: не удалось обновить задачи: %v", err)
		}
		return
	}
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		return
	}
	if s.state != StateSynced || !todosEqual(s.items, list) {
		s.items = list
	}
	s.state = StateSynced
}

// List возвращает последний пуш подписки
func (s *TaskStore) List() []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Todo, len(s.items))
	copy(out, s.items)
	return out
}

func (s *TaskStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// ByDate отбирает из кэша задачи, чей интервал содержит день key.
// Сравнение строковое: формат ключей фиксированной ширины.
func (s *TaskStore) ByDate(key string) []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Todo
	for _, t := range s.items {
		if calendar.Contains(t.StartDate, t.EndDate, key) {
			out = append(out, t)
		}
	}
	return out
}

// Add создает задачу. Проверки выполняются до обращения к серверу;
// в кэше задача появится со следующим пушом подписки.
func (s *TaskStore) Add(ctx context.Context, input TodoInput) error {
	s.mu.RLock()
	userID := s.userID
	s.mu.RUnlock()
	if userID == "" {
		return ErrUnauthenticated
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return &ValidationError{Field: "title", Reason: "не заполнен"}
	}
	if input.CategoryID == "" {
		return &ValidationError{Field: "categoryId", Reason: "не указана категория"}
	}

	start := input.StartDate
	if start == "" {
		start = input.DateKey
	}
	end := input.EndDate
	if end == "" {
		end = input.DateKey
	}
	if start == "" || end == "" {
		return &ValidationError{Field: "date", Reason: "не указана дата"}
	}
	if _, err := calendar.ParseKey(start); err != nil {
		return &ValidationError{Field: "startDate", Reason: "некорректный формат"}
	}
	if _, err := calendar.ParseKey(end); err != nil {
		return &ValidationError{Field: "endDate", Reason: "некорректный формат"}
	}
	if end < start {
		return &ValidationError{Field: "endDate", Reason: "раньше даты начала"}
	}

	repeat := input.Repeat
	if repeat == "" {
		repeat = model.RepeatNone
	}

	todo := &model.Todo{
		UserID:     userID,
		Title:      title,
		CategoryID: input.CategoryID,
		StartDate:  start,
		EndDate:    end,
		Repeat:     repeat,
		IsPublic:   input.IsPublic,
		Memo:       strings.TrimSpace(input.Memo),
	}
	todo.GenerateID()

	if err := s.repo.CreateTodo(ctx, todo); err != nil {
		return err
	}
	s.Nudge()
	return nil
}

// Delete удаляет задачу
func (s *TaskStore) Delete(ctx context.Context, todoID string) error {
	s.mu.RLock()
	userID := s.userID
	s.mu.RUnlock()
	if userID == "" {
		return ErrUnauthenticated
	}
	if todoID == "" {
		return &ValidationError{Field: "todoId", Reason: "не указан"}
	}

	if err := s.repo.DeleteTodo(ctx, todoID, userID); err != nil {
		return err
	}
	s.Nudge()
	return nil
}

// Nudge просит наблюдателя обновиться вне очереди
func (s *TaskStore) Nudge() {
	s.mu.RLock()
	wake := s.wake
	s.mu.RUnlock()
	if wake == nil {
		return
	}
	select {
	case wake <- struct{}{}:
	default:
	}
}

func todosEqual(a, b []model.Todo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
