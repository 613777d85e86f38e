package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

const taskColumns = `id, org_id, workorder_id, name, assigned_employee_id, status, time_spent, created_at`

// TaskRepository implements ports.TaskRepository.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) ports.TaskRepository {
	return &TaskRepository{db: db}
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t      domain.Task
		status string
	)
	if err := row.Scan(&t.ID, &t.OrgID, &t.WorkorderID, &t.Name, &t.AssignedEmployeeID, &status, &t.TimeSpent, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Status = domain.TaskStatus(status)
	return &t, nil
}

func (r *TaskRepository) List(ctx context.Context, scope domain.Scope, f ports.TaskFilter) ([]*domain.Task, error) {
	where := []string{"org_id = $1"}
	args := []any{scope.OrgID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.WorkorderID != nil {
		add("workorder_id = $%d", *f.WorkorderID)
	}
	if f.AssignedEmployeeID != nil {
		add("assigned_employee_id = $%d", *f.AssignedEmployeeID)
	}
	if f.Status != nil {
		add("status = $%d", string(*f.Status))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at DESC, id DESC`
	return r.query(ctx, "list tasks", query, args...)
}

func (r *TaskRepository) ListByWorkorder(ctx context.Context, workorderID string) ([]*domain.Task, error) {
	return r.query(ctx, "list workorder tasks",
		`SELECT `+taskColumns+` FROM tasks WHERE workorder_id = $1 ORDER BY id`, workorderID)
}

func (r *TaskRepository) query(ctx context.Context, op, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []*domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaskRepository) Get(ctx context.Context, scope domain.Scope, id int64) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE org_id = $1 AND id = $2`,
		scope.OrgID, id,
	))
	if err != nil {
		return nil, mapReadError("get task", err, errNotFound)
	}
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, scope domain.Scope, t *domain.Task) (*domain.Task, error) {
	created, err := scanTask(r.db.QueryRowContext(ctx,
		`INSERT INTO tasks (org_id, workorder_id, name, assigned_employee_id, status, time_spent)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+taskColumns,
		scope.OrgID, t.WorkorderID, t.Name, t.AssignedEmployeeID, string(t.Status), t.TimeSpent,
	))
	if err != nil {
		return nil, mapWriteError("create task", err, domain.ErrConflict)
	}
	return created, nil
}

func (r *TaskRepository) Update(ctx context.Context, scope domain.Scope, id int64, u ports.TaskUpdate) (*domain.Task, error) {
	var status *string
	if u.Status != nil {
		s := string(*u.Status)
		status = &s
	}

	t, err := scanTask(r.db.QueryRowContext(ctx,
		`UPDATE tasks SET
		     name                 = COALESCE($3, name),
		     assigned_employee_id = COALESCE($4, assigned_employee_id),
		     status               = COALESCE($5, status),
		     time_spent           = COALESCE($6, time_spent)
		 WHERE org_id = $1 AND id = $2
		 RETURNING `+taskColumns,
		scope.OrgID, id, u.Name, u.AssignedEmployeeID, status, u.TimeSpent,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, mapWriteError("update task", err, domain.ErrConflict)
	}
	return t, nil
}
