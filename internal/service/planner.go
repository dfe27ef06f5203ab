package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ivanoskov/calendar_bot/internal/calendar"
	"github.com/ivanoskov/calendar_bot/internal/model"
)

const (
	// DefaultCategoryName — системная категория, создается при первом входе
	// и защищена от удаления
	DefaultCategoryName  = "Рутина"
	DefaultCategoryColor = "#8ED080"

	PointsPerLevel = 10
	MaxLevel       = 15
)

// Planner предоставляет операции над данными планировщика, не входящие
// в контракт сторов: системные категории, отметка выполнения, уровни
type Planner struct {
	repo Repository
}

// Repository определяет интерфейс для работы с хранилищем данных
type Repository interface {
	GetCategories(ctx context.Context, userID string) ([]model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, category *model.Category) error
	GetTodos(ctx context.Context, userID string, filter model.TodoFilter) ([]model.Todo, error)
	UpdateTodo(ctx context.Context, todo *model.Todo) error
}

// NewPlanner создает новый экземпляр Planner
func NewPlanner(repo Repository) *Planner {
	return &Planner{
		repo: repo,
	}
}

// CreateDefaultCategories создает системную категорию, если ее еще нет.
// Вызывается на каждый вход, поэтому обязана быть идемпотентной.
func (s *Planner) CreateDefaultCategories(ctx context.Context, userID string) error {
	categories, err := s.repo.GetCategories(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	for _, c := range categories {
		if c.Name == DefaultCategoryName {
			return nil
		}
	}

	category := &model.Category{
		UserID: userID,
		Name:   DefaultCategoryName,
		Color:  DefaultCategoryColor,
		Locked: true,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return fmt.Errorf("failed to create default category: %w", err)
	}
	return nil
}

// CompleteTodo отмечает задачу выполненной. Повторная отметка не ошибка.
func (s *Planner) CompleteTodo(ctx context.Context, userID, todoID string) (*model.Todo, error) {
	todos, err := s.repo.GetTodos(ctx, userID, model.TodoFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get todos: %w", err)
	}
	for i := range todos {
		if todos[i].ID != todoID {
			continue
		}
		if todos[i].Done {
			return &todos[i], nil
		}
		todos[i].Done = true
		if err := s.repo.UpdateTodo(ctx, &todos[i]); err != nil {
			return nil, fmt.Errorf("failed to update todo: %w", err)
		}
		return &todos[i], nil
	}
	return nil, fmt.Errorf("задача не найдена")
}

// UpdateCategoryColor меняет цвет категории
func (s *Planner) UpdateCategoryColor(ctx context.Context, userID, categoryID, color string) error {
	categories, err := s.repo.GetCategories(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	for i := range categories {
		if categories[i].ID != categoryID {
			continue
		}
		categories[i].Color = color
		if err := s.repo.UpdateCategory(ctx, &categories[i]); err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		return nil
	}
	return fmt.Errorf("категория не найдена")
}

// TodosForDate возвращает задачи, чей интервал содержит день key
func (s *Planner) TodosForDate(ctx context.Context, userID, key string) ([]model.Todo, error) {
	return s.repo.GetTodos(ctx, userID, model.TodoFilter{FromKey: key, ToKey: key})
}

// LevelInfo — прогресс пользователя: очки за выполненные задачи
type LevelInfo struct {
	Points   int // всего очков
	Level    int
	Progress int // очков внутри текущего уровня
	Target   int
	Percent  float64
}

// LevelInfo считает уровень: одно выполненное дело — одно очко,
// PointsPerLevel очков на уровень, выше MaxLevel не растем
func (s *Planner) LevelInfo(ctx context.Context, userID string) (*LevelInfo, error) {
	todos, err := s.repo.GetTodos(ctx, userID, model.TodoFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get todos: %w", err)
	}

	points := 0
	for _, t := range todos {
		if t.Done {
			points++
		}
	}

	info := &LevelInfo{
		Points: points,
		Target: PointsPerLevel,
	}
	info.Level = points/PointsPerLevel + 1
	info.Progress = points % PointsPerLevel
	if info.Level >= MaxLevel {
		info.Level = MaxLevel
		info.Progress = PointsPerLevel
	}
	info.Percent = float64(info.Progress) / float64(info.Target) * 100
	return info, nil
}

// CategoryCount — количество задач категории за период
type CategoryCount struct {
	Name  string
	Color string
	Count int
	Done  int
}

// MonthStats — сводка месяца для отчета и графиков
type MonthStats struct {
	Period     string
	Year       int
	Month      int // с нуля
	Total      int
	Done       int
	Categories []CategoryCount
}

// MonthStats собирает статистику по задачам, задевающим месяц
func (s *Planner) MonthStats(ctx context.Context, userID string, year, month0 int) (*MonthStats, error) {
	from := fmt.Sprintf("%04d-%02d-01", year, month0+1)
	to := fmt.Sprintf("%04d-%02d-%02d", year, month0+1, daysInMonth(year, month0))

	todos, err := s.repo.GetTodos(ctx, userID, model.TodoFilter{FromKey: from, ToKey: to})
	if err != nil {
		return nil, fmt.Errorf("failed to get todos: %w", err)
	}
	categories, err := s.repo.GetCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	stats := &MonthStats{
		Period: fmt.Sprintf("%s %d", calendar.MonthName(month0), year),
		Year:   year,
		Month:  month0,
	}

	byName := make(map[string]*CategoryCount)
	for _, t := range todos {
		stats.Total++
		if t.Done {
			stats.Done++
		}

		name := "Без категории"
		color := model.ItemColor(t, categories)
		if c, ok := model.ResolveCategory(t, categories); ok {
			name = c.Name
		}
		cc, ok := byName[name]
		if !ok {
			cc = &CategoryCount{Name: name, Color: color}
			byName[name] = cc
		}
		cc.Count++
		if t.Done {
			cc.Done++
		}
	}

	for _, cc := range byName {
		stats.Categories = append(stats.Categories, *cc)
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		if stats.Categories[i].Count != stats.Categories[j].Count {
			return stats.Categories[i].Count > stats.Categories[j].Count
		}
		return stats.Categories[i].Name < stats.Categories[j].Name
	})

	return stats, nil
}

func daysInMonth(year, month0 int) int {
	// нулевой день следующего месяца — последний день текущего
	return time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, time.UTC).Day()
}
