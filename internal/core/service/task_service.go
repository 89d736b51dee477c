package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-api/internal/api/metrics"
	"github.com/taskhub/task-api/internal/core/domain"
	"github.com/taskhub/task-api/internal/core/ports"
	"github.com/taskhub/task-api/internal/pkg/validate"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// TaskService implements task CRUD with the ownership and role policy:
// anyone authenticated creates (and owns), owner-or-admin reads and deletes,
// owner alone updates.
type TaskService struct {
	tasks  ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, logger: logger}
}

// Create stores a new task owned by the caller.
func (s *TaskService) Create(ctx context.Context, input ports.CreateTaskInput) (int64, error) {
	title := validate.Sanitize(input.Title)
	if err := validate.TaskTitle(title); err != nil {
		return 0, err
	}

	statusRaw := validate.Sanitize(input.Status)
	if statusRaw == "" {
		statusRaw = string(domain.StatusPending)
	}
	status, err := validate.TaskStatus(statusRaw)
	if err != nil {
		return 0, err
	}

	task := &domain.Task{
		Title:       title,
		Description: validate.Sanitize(input.Description),
		Status:      status,
		UserID:      input.Claims.UserID,
	}

	id, err := s.tasks.Create(ctx, task)
	if err != nil {
		return 0, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(input.Claims.Role).Inc()
	s.logger.Info().Int64("task_id", id).Int64("user_id", input.Claims.UserID).Msg("task created")
	return id, nil
}

// Get returns a task to its owner or to an admin.
func (s *TaskService) Get(ctx context.Context, id int64, claims domain.Claims) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != claims.UserID && !claims.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return task, nil
}

// List returns a page of the caller's tasks, or of all tasks when an admin
// asks for them with All.
func (s *TaskService) List(ctx context.Context, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}

	filter := ports.TaskFilter{}
	if input.Status != "" {
		status, err := validate.TaskStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	// all=true from a non-admin silently falls back to the caller's own tasks.
	if !input.All || !input.Claims.IsAdmin() {
		filter.UserID = input.Claims.UserID
	}

	tasks, err := s.tasks.FindAll(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := s.tasks.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListTasksResult{
		Tasks: tasks,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// Update applies a partial update. Only the owner may update; admins are
// deliberately not exempted here, matching the delete/update asymmetry of the
// access policy.
func (s *TaskService) Update(ctx context.Context, id int64, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != input.Claims.UserID {
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		title := validate.Sanitize(*input.Title)
		if err := validate.TaskTitle(title); err != nil {
			return nil, err
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = validate.Sanitize(*input.Description)
	}
	if input.Status != nil {
		status, err := validate.TaskStatus(validate.Sanitize(*input.Status))
		if err != nil {
			return nil, err
		}
		task.Status = status
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("task_id", id).Int64("user_id", input.Claims.UserID).Msg("task updated")
	return task, nil
}

// Delete removes a task for its owner or for an admin.
func (s *TaskService) Delete(ctx context.Context, id int64, claims domain.Claims) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if task.UserID != claims.UserID && !claims.IsAdmin() {
		return domain.ErrForbidden
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	metrics.TasksDeletedTotal.WithLabelValues(claims.Role).Inc()
	s.logger.Info().Int64("task_id", id).Int64("user_id", claims.UserID).Msg("task deleted")
	return nil
}

// AdminList returns tasks across all users with optional status and owner
// filters. The route is admin-gated; no further check here.
func (s *TaskService) AdminList(ctx context.Context, input ports.AdminListInput) ([]domain.Task, error) {
	filter := ports.TaskFilter{UserID: input.UserID}
	if input.Status != "" {
		status, err := validate.TaskStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	return s.tasks.FindAll(ctx, filter, maxPageLimit, 0)
}

// AdminDelete removes any task regardless of owner.
func (s *TaskService) AdminDelete(ctx context.Context, id int64, adminID int64) error {
	if _, err := s.tasks.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	metrics.TasksDeletedTotal.WithLabelValues(domain.RoleAdmin).Inc()
	s.logger.Info().Int64("task_id", id).Int64("admin_id", adminID).Msg("task deleted by admin")
	return nil
}
