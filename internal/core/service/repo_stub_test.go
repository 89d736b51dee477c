package service

import (
	"context"
	"sort"

	"github.com/taskhub/task-api/internal/core/domain"
	"github.com/taskhub/task-api/internal/core/ports"
)

// userRepoStub is an in-memory ports.UserRepository.
type userRepoStub struct {
	nextID int64
	users  map[int64]*domain.User
	tasks  *taskRepoStub
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: make(map[int64]*domain.User)}
}

func (r *userRepoStub) Create(_ context.Context, user *domain.User) (int64, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copied := *user
	copied.ID = r.nextID
	r.users[copied.ID] = &copied
	return copied.ID, nil
}

func (r *userRepoStub) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepoStub) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *userRepoStub) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *userRepoStub) UpdateName(_ context.Context, id int64, name string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Name = name
	return nil
}

func (r *userRepoStub) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *userRepoStub) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	if r.tasks != nil {
		for tid, t := range r.tasks.items {
			if t.UserID == id {
				delete(r.tasks.items, tid)
			}
		}
	}
	return nil
}

// taskRepoStub is an in-memory ports.TaskRepository.
type taskRepoStub struct {
	nextID int64
	items  map[int64]*domain.Task
}

func newTaskRepoStub() *taskRepoStub {
	return &taskRepoStub{items: make(map[int64]*domain.Task)}
}

func (r *taskRepoStub) Create(_ context.Context, task *domain.Task) (int64, error) {
	r.nextID++
	copied := *task
	copied.ID = r.nextID
	r.items[copied.ID] = &copied
	return copied.ID, nil
}

func (r *taskRepoStub) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *taskRepoStub) matches(t *domain.Task, filter ports.TaskFilter) bool {
	if filter.Status != "" && t.Status != filter.Status {
		return false
	}
	if filter.UserID != 0 && t.UserID != filter.UserID {
		return false
	}
	return true
}

func (r *taskRepoStub) FindAll(_ context.Context, filter ports.TaskFilter, limit, offset int) ([]domain.Task, error) {
	all := make([]domain.Task, 0, len(r.items))
	for _, t := range r.items {
		if r.matches(t, filter) {
			all = append(all, *t)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset >= len(all) {
		return []domain.Task{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *taskRepoStub) Count(_ context.Context, filter ports.TaskFilter) (int64, error) {
	var n int64
	for _, t := range r.items {
		if r.matches(t, filter) {
			n++
		}
	}
	return n, nil
}

func (r *taskRepoStub) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.items[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	copied := *task
	r.items[task.ID] = &copied
	return nil
}

func (r *taskRepoStub) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.items, id)
	return nil
}
