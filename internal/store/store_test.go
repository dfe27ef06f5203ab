package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/calendar_bot/internal/model"
)

// fakeRepository — хранилище в памяти, реализует оба интерфейса сторов
type fakeRepository struct {
	mu         sync.Mutex
	categories []model.Category
	todos      []model.Todo
	nextID     int
}

func (f *fakeRepository) GetCategories(ctx context.Context, userID string) ([]model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Category
	for _, c := range f.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if category.ID == "" {
		f.nextID++
		category.ID = fmt.Sprintf("cat-%d", f.nextID)
	}
	f.categories = append(f.categories, *category)
	return nil
}

func (f *fakeRepository) DeleteCategory(ctx context.Context, id string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.categories {
		if c.ID == id && c.UserID == userID {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRepository) GetTodos(ctx context.Context, userID string, filter model.TodoFilter) ([]model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Todo
	for _, t := range f.todos {
		if t.UserID != userID {
			continue
		}
		if filter.FromKey != "" && t.EndDate < filter.FromKey {
			continue
		}
		if filter.ToKey != "" && t.StartDate > filter.ToKey {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeRepository) CreateTodo(ctx context.Context, todo *model.Todo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.todos = append(f.todos, *todo)
	return nil
}

func (f *fakeRepository) DeleteTodo(ctx context.Context, id string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.todos {
		if t.ID == id && t.UserID == userID {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRepository) seedCategory(c model.Category) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = append(f.categories, c)
}

func (f *fakeRepository) seedTodo(t model.Todo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.todos = append(f.todos, t)
}

const testInterval = 10 * time.Millisecond

func TestCategoryStoreUnauthenticated(t *testing.T) {
	s := NewCategoryStore(&fakeRepository{}, testInterval)

	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Empty(t, s.List())

	// без сессии отказ одинаков для любого входа, даже заведомо битого
	assert.ErrorIs(t, s.Add(context.Background(), "Работа", "#112233"), ErrUnauthenticated)
	assert.ErrorIs(t, s.Add(context.Background(), "", ""), ErrUnauthenticated)
	assert.ErrorIs(t, s.Delete(context.Background(), ""), ErrUnauthenticated)
}

func TestTaskStoreUnauthenticated(t *testing.T) {
	s := NewTaskStore(&fakeRepository{}, testInterval)

	assert.ErrorIs(t, s.Add(context.Background(), TodoInput{Title: "Отчет", CategoryID: "c1", DateKey: "2024-03-01"}), ErrUnauthenticated)
	assert.ErrorIs(t, s.Add(context.Background(), TodoInput{}), ErrUnauthenticated)
	assert.ErrorIs(t, s.Delete(context.Background(), "t1"), ErrUnauthenticated)
}

func TestCategoryStoreSync(t *testing.T) {
	repo := &fakeRepository{}
	repo.seedCategory(model.Category{ID: "c1", UserID: "u1", Name: "Рутина", Locked: true})
	repo.seedCategory(model.Category{ID: "c2", UserID: "u2", Name: "Чужая"})

	s := NewCategoryStore(repo, testInterval)
	s.Start("u1")
	defer s.Stop()

	require.Eventually(t, func() bool {
		return s.State() == StateSynced
	}, time.Second, time.Millisecond)

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Рутина", list[0].Name)
}

func TestCategoryStoreAddValidation(t *testing.T) {
	s := NewCategoryStore(&fakeRepository{}, testInterval)
	s.Start("u1")
	defer s.Stop()

	err := s.Add(context.Background(), "   ", "#112233")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestCategoryStoreDeleteLocked(t *testing.T) {
	repo := &fakeRepository{}
	repo.seedCategory(model.Category{ID: "c1", UserID: "u1", Name: "Рутина", Locked: true})

	s := NewCategoryStore(repo, testInterval)
	s.Start("u1")
	defer s.Stop()

	require.Eventually(t, func() bool {
		return len(s.List()) == 1
	}, time.Second, time.Millisecond)

	assert.ErrorIs(t, s.Delete(context.Background(), "c1"), ErrLockedCategory)
	assert.Len(t, s.List(), 1)
}

func TestTaskStoreAddValidation(t *testing.T) {
	s := NewTaskStore(&fakeRepository{}, testInterval)
	s.Start("u1")
	defer s.Stop()

	tests := []struct {
		name  string
		input TodoInput
		field string
	}{
		{
			name:  "blank title",
			input: TodoInput{Title: "   ", CategoryID: "c1", DateKey: "2024-03-01"},
			field: "title",
		},
		{
			name:  "missing category",
			input: TodoInput{Title: "Отчет", DateKey: "2024-03-01"},
			field: "categoryId",
		},
		{
			name:  "missing date",
			input: TodoInput{Title: "Отчет", CategoryID: "c1"},
			field: "date",
		},
		{
			name:  "malformed start date",
			input: TodoInput{Title: "Отчет", CategoryID: "c1", StartDate: "01.03.2024", EndDate: "2024-03-01"},
			field: "startDate",
		},
		{
			name:  "end before start",
			input: TodoInput{Title: "Отчет", CategoryID: "c1", StartDate: "2024-03-05", EndDate: "2024-03-01"},
			field: "endDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Add(context.Background(), tt.input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestTaskStoreByDate(t *testing.T) {
	repo := &fakeRepository{}
	repo.seedTodo(model.Todo{ID: "t1", UserID: "u1", Title: "Диапазон", StartDate: "2024-03-01", EndDate: "2024-03-03"})
	repo.seedTodo(model.Todo{ID: "t2", UserID: "u1", Title: "Один день", StartDate: "2024-03-02", EndDate: "2024-03-02"})

	s := NewTaskStore(repo, testInterval)
	s.Start("u1")
	defer s.Stop()

	require.Eventually(t, func() bool {
		return len(s.List()) == 2
	}, time.Second, time.Millisecond)

	// границы диапазона включительно
	assert.Len(t, s.ByDate("2024-03-01"), 1)
	assert.Len(t, s.ByDate("2024-03-02"), 2)
	assert.Len(t, s.ByDate("2024-03-03"), 1)
	assert.Empty(t, s.ByDate("2024-03-04"))
	assert.Empty(t, s.ByDate("2024-02-29"))
}

func TestTaskStoreAddDefaults(t *testing.T) {
	repo := &fakeRepository{}
	s := NewTaskStore(repo, testInterval)
	s.Start("u1")
	defer s.Stop()

	err := s.Add(context.Background(), TodoInput{
		Title:      "  Отчет  ",
		CategoryID: "c1",
		DateKey:    "2024-03-01",
	})
	require.NoError(t, err)

	repo.mu.Lock()
	require.Len(t, repo.todos, 1)
	created := repo.todos[0]
	repo.mu.Unlock()

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, "Отчет", created.Title)
	assert.Equal(t, "2024-03-01", created.StartDate)
	assert.Equal(t, "2024-03-01", created.EndDate)
	assert.Equal(t, model.RepeatNone, created.Repeat)
}

func TestStopClearsCacheAndHaltsPushes(t *testing.T) {
	repo := &fakeRepository{}
	repo.seedCategory(model.Category{ID: "c1", UserID: "u1", Name: "Работа"})

	s := NewCategoryStore(repo, testInterval)
	s.Start("u1")

	require.Eventually(t, func() bool {
		return len(s.List()) == 1
	}, time.Second, time.Millisecond)

	s.Stop()
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Empty(t, s.List())

	// после Stop пуши не применяются
	repo.seedCategory(model.Category{ID: "c2", UserID: "u1", Name: "Новая"})
	time.Sleep(5 * testInterval)
	assert.Empty(t, s.List())
	assert.Equal(t, StateUnauthenticated, s.State())
}

func TestStartRestartSwitchesUser(t *testing.T) {
	repo := &fakeRepository{}
	repo.seedCategory(model.Category{ID: "c1", UserID: "u1", Name: "Первого"})
	repo.seedCategory(model.Category{ID: "c2", UserID: "u2", Name: "Второго"})

	s := NewCategoryStore(repo, testInterval)
	s.Start("u1")
	require.Eventually(t, func() bool {
		list := s.List()
		return len(list) == 1 && list[0].ID == "c1"
	}, time.Second, time.Millisecond)

	// повторный Start гасит старую подписку, чужие записи не протекают
	s.Start("u2")
	defer s.Stop()
	require.Eventually(t, func() bool {
		list := s.List()
		return len(list) == 1 && list[0].ID == "c2"
	}, time.Second, time.Millisecond)
}

func TestAddThenVisibleByDate(t *testing.T) {
	repo := &fakeRepository{}
	cats := NewCategoryStore(repo, testInterval)
	tasks := NewTaskStore(repo, testInterval)
	cats.Start("u1")
	tasks.Start("u1")
	defer cats.Stop()
	defer tasks.Stop()

	require.NoError(t, cats.Add(context.Background(), "Работа", "#112233"))
	require.Eventually(t, func() bool {
		return len(cats.List()) == 1
	}, time.Second, time.Millisecond)

	work := cats.List()[0]
	assert.Equal(t, "Работа", work.Name)
	assert.Equal(t, "#112233", work.Color)

	require.NoError(t, tasks.Add(context.Background(), TodoInput{
		Title:      "Отчет",
		CategoryID: work.ID,
		DateKey:    "2024-03-01",
	}))
	require.Eventually(t, func() bool {
		return len(tasks.ByDate("2024-03-01")) == 1
	}, time.Second, time.Millisecond)

	day := tasks.ByDate("2024-03-01")
	require.Len(t, day, 1)
	assert.Equal(t, "Отчет", day[0].Title)
	assert.Empty(t, tasks.ByDate("2024-03-02"))
}

// errRepository всегда отвечает ошибкой: стор должен оставаться в Loading
// и не падать
type errRepository struct{}

func (errRepository) GetCategories(ctx context.Context, userID string) ([]model.Category, error) {
	return nil, errors.New("сеть недоступна")
}

func (errRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	return errors.New("сеть недоступна")
}

func (errRepository) DeleteCategory(ctx context.Context, id string, userID string) error {
	return errors.New("сеть недоступна")
}

func TestCategoryStoreKeepsLoadingOnErrors(t *testing.T) {
	s := NewCategoryStore(errRepository{}, testInterval)
	s.Start("u1")
	defer s.Stop()

	time.Sleep(5 * testInterval)
	assert.Equal(t, StateLoading, s.State())
	assert.Empty(t, s.List())

	err := s.Add(context.Background(), "Работа", "#112233")
	assert.EqualError(t, err, "сеть недоступна")
}
