package postgres

import (
	"testing"

	"github.com/taskhub/task-api/internal/core/domain"
	"github.com/taskhub/task-api/internal/core/ports"
)

func TestWhereClause(t *testing.T) {
	cases := []struct {
		name     string
		filter   ports.TaskFilter
		want     string
		wantArgs int
	}{
		{"empty", ports.TaskFilter{}, "", 0},
		{"status only", ports.TaskFilter{Status: domain.StatusPending}, "WHERE status = $1", 1},
		{"user only", ports.TaskFilter{UserID: 7}, "WHERE user_id = $1", 1},
		{
			"status and user",
			ports.TaskFilter{Status: domain.StatusCompleted, UserID: 7},
			"WHERE status = $1 AND user_id = $2",
			2,
		},
	}
	for _, tc := range cases {
		where, args := whereClause(tc.filter)
		if where != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, where)
		}
		if len(args) != tc.wantArgs {
			t.Errorf("%s: expected %d args, got %d", tc.name, tc.wantArgs, len(args))
		}
	}
}
