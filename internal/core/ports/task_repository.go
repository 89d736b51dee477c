package ports

import (
	"context"

	"github.com/taskhub/task-api/internal/core/domain"
)

// TaskFilter narrows task queries. Zero values mean "no filter"; predicates
// are always bound as placeholders, never interpolated.
type TaskFilter struct {
	Status domain.TaskStatus
	UserID int64
}

// TaskRepository defines persistence for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	FindAll(ctx context.Context, filter TaskFilter, limit, offset int) ([]domain.Task, error)
	Count(ctx context.Context, filter TaskFilter) (int64, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
}
