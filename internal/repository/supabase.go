package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/supabase-go"

	"github.com/ivanoskov/calendar_bot/internal/model"
)

type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	data, count, err := r.client.From("categories").Insert(category, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	_ = count

	// Парсим ответ для получения ID и серверных полей
	var created []model.Category
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created category: %w", err)
	}
	if len(created) > 0 {
		category.ID = created[0].ID
		category.CreatedAt = created[0].CreatedAt
	}
	return nil
}

func (r *SupabaseRepository) GetCategories(ctx context.Context, userID string) ([]model.Category, error) {
	var categories []model.Category
	data, count, err := r.client.From("categories").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	_ = count

	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *SupabaseRepository) UpdateCategory(ctx context.Context, category *model.Category) error {
	_, count, err := r.client.From("categories").
		Update(category, "", "").
		Eq("id", category.ID).
		Eq("user_id", category.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	_ = count
	return nil
}

func (r *SupabaseRepository) DeleteCategory(ctx context.Context, id string, userID string) error {
	_, count, err := r.client.From("categories").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	_ = count
	return nil
}

func (r *SupabaseRepository) CreateTodo(ctx context.Context, todo *model.Todo) error {
	data, count, err := r.client.From("todos").Insert(todo, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	_ = count

	var created []model.Todo
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created todo: %w", err)
	}
	if len(created) > 0 {
		todo.ID = created[0].ID
		todo.CreatedAt = created[0].CreatedAt
	}
	return nil
}

func (r *SupabaseRepository) GetTodos(ctx context.Context, userID string, filter model.TodoFilter) ([]model.Todo, error) {
	var todos []model.Todo
	query := r.client.From("todos").
		Select("*", "", false).
		Eq("user_id", userID)

	// Интервальное пересечение: задача задевает окно [FromKey, ToKey],
	// если start_date <= ToKey и end_date >= FromKey
	if filter.FromKey != "" {
		query = query.Gte("end_date", filter.FromKey)
	}
	if filter.ToKey != "" {
		query = query.Lte("start_date", filter.ToKey)
	}
	if filter.CategoryID != "" {
		query = query.Eq("category_id", filter.CategoryID)
	}

	query = query.Order("created_at", nil)

	data, count, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get todos: %w", err)
	}
	_ = count

	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, fmt.Errorf("failed to parse todos: %w", err)
	}
	return todos, nil
}

func (r *SupabaseRepository) UpdateTodo(ctx context.Context, todo *model.Todo) error {
	_, count, err := r.client.From("todos").
		Update(todo, "", "").
		Eq("id", todo.ID).
		Eq("user_id", todo.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	_ = count
	return nil
}

func (r *SupabaseRepository) DeleteTodo(ctx context.Context, id string, userID string) error {
	_, count, err := r.client.From("todos").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	_ = count
	return nil
}
