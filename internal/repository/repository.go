package repository

import (
	"context"

	"github.com/ivanoskov/calendar_bot/internal/model"
)

type Repository interface {
	// Категории
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategories(ctx context.Context, userID string) ([]model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id string, userID string) error

	// Задачи
	CreateTodo(ctx context.Context, todo *model.Todo) error
	GetTodos(ctx context.Context, userID string, filter model.TodoFilter) ([]model.Todo, error)
	UpdateTodo(ctx context.Context, todo *model.Todo) error
	DeleteTodo(ctx context.Context, id string, userID string) error
}
