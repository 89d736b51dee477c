package ports

import (
	"context"

	"github.com/taskhub/task-api/internal/core/domain"
)

// CreateTaskInput carries the fields for a new task. Owner is always the
// authenticated caller.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	Claims      domain.Claims
}

// UpdateTaskInput carries a partial update; nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Claims      domain.Claims
}

// ListTasksInput selects which tasks to return. All=true is honored only for
// admins; everyone else sees their own tasks.
type ListTasksInput struct {
	All    bool
	Status string
	Page   int
	Limit  int
	Claims domain.Claims
}

// ListTasksResult is a page of tasks plus pagination metadata.
type ListTasksResult struct {
	Tasks []domain.Task
	Total int64
	Page  int
	Limit int
	Pages int
}

// AdminListInput filters the unpaginated admin listing.
type AdminListInput struct {
	Status string
	UserID int64
}

// TaskService implements task CRUD with ownership and role checks.
type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput) (int64, error)
	Get(ctx context.Context, id int64, claims domain.Claims) (*domain.Task, error)
	List(ctx context.Context, input ListTasksInput) (*ListTasksResult, error)
	Update(ctx context.Context, id int64, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id int64, claims domain.Claims) error
	AdminList(ctx context.Context, input AdminListInput) ([]domain.Task, error)
	AdminDelete(ctx context.Context, id int64, adminID int64) error
}
