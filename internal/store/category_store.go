package store

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ivanoskov/calendar_bot/internal/model"
)

// CategoryRepository определяет интерфейс удаленного источника категорий
type CategoryRepository interface {
	GetCategories(ctx context.Context, userID string) ([]model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id string, userID string) error
}

// CategoryStore — кэш категорий одной сессии
type CategoryStore struct {
	repo     CategoryRepository
	interval time.Duration

	mu     sync.RWMutex
	userID string
	state  State
	items  []model.Category
	cancel context.CancelFunc
	done   chan struct{}
	wake   chan struct{}
}

func NewCategoryStore(repo CategoryRepository, interval time.Duration) *CategoryStore {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &CategoryStore{
		repo:     repo,
		interval: interval,
	}
}

// Start привязывает стор к сессии и поднимает подписку. Активной подписки
// не больше одной: предыдущая гасится до запуска новой, иначе при смене
// пользователя возможны чужие пуши.
func (s *CategoryStore) Start(userID string) {
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

// Stop гасит подписку и очищает кэш. Возвращается после остановки
// наблюдателя, так что пуши после Stop не применяются.
func (s *CategoryStore) Stop() {
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

func (s *CategoryStore) watch(ctx context.Context, userID string, done chan struct{}, wake chan struct{}) {
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

// refresh забирает полный снимок списка и применяет его как пуш подписки
func (s *CategoryStore) refresh(ctx context.Context, userID string) {
	list, err := s.repo.GetCategories(ctx, userID)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("store: не удалось обновить категории: %v", err)
		}
		return
	}
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		// сессия сменилась, пока шел запрос
		return
	}
	if s.state != StateSynced || !categoriesEqual(s.items, list) {
		s.items = list
	}
	s.state = StateSynced
}

// List возвращает последний пуш подписки; без сессии список пуст
func (s *CategoryStore) List() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Category, len(s.items))
	copy(out, s.items)
	return out
}

func (s *CategoryStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Add создает категорию. Возвращается после подтверждения записи сервером;
// в List() новая категория появится со следующим пушом.
func (s *CategoryStore) Add(ctx context.Context, name, color string) error {
	s.mu.RLock()
	userID := s.userID
	s.mu.RUnlock()
	if userID == "" {
		return ErrUnauthenticated
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Reason: "название не заполнено"}
	}

	category := &model.Category{
		UserID: userID,
		Name:   name,
		Color:  color,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return err
	}
	s.Nudge()
	return nil
}

// Delete удаляет категорию. Подтверждение намерения — забота интерфейса,
// стор лишь защищает системную категорию.
func (s *CategoryStore) Delete(ctx context.Context, categoryID string) error {
	s.mu.RLock()
	userID := s.userID
	items := s.items
	s.mu.RUnlock()
	if userID == "" {
		return ErrUnauthenticated
	}
	if categoryID == "" {
		return &ValidationError{Field: "categoryId", Reason: "не указан"}
	}
	for _, c := range items {
		if c.ID == categoryID && c.Locked {
			return ErrLockedCategory
		}
	}

	if err := s.repo.DeleteCategory(ctx, categoryID, userID); err != nil {
		return err
	}
	s.Nudge()
	return nil
}

// Nudge просит наблюдателя обновиться вне очереди, чтобы сократить окно
// между подтвержденной мутацией и ее видимым эффектом
func (s *CategoryStore) Nudge() {
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

func categoriesEqual(a, b []model.Category) bool {
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
