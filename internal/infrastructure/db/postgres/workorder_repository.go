package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

// workorderSelect reads a work order together with its customer. Queries that
// write use it on top of a "w" CTE so the join happens in the same statement.
const workorderSelect = `SELECT w.id, w.org_id, w.vehicle, w.customer_id, w.received, w.due, w.complaint, w.status, w.created_at, c.name, c.phone`

// WorkorderRepository implements ports.WorkorderRepository.
type WorkorderRepository struct {
	db *sql.DB
}

func NewWorkorderRepository(db *sql.DB) ports.WorkorderRepository {
	return &WorkorderRepository{db: db}
}

func scanWorkorder(row rowScanner) (*domain.Workorder, error) {
	var (
		w      domain.Workorder
		status string
	)
	err := row.Scan(&w.ID, &w.OrgID, &w.Vehicle, &w.CustomerID, &w.Received, &w.Due, &w.Complaint, &status, &w.CreatedAt,
		&w.CustomerName, &w.CustomerPhone)
	if err != nil {
		return nil, err
	}
	w.Status = domain.WorkorderStatus(status)
	return &w, nil
}

func (r *WorkorderRepository) List(ctx context.Context, scope domain.Scope, f ports.WorkorderFilter) ([]*domain.Workorder, error) {
	query := workorderSelect + ` FROM workorders w LEFT JOIN customers c ON c.id = w.customer_id WHERE w.org_id = $1`
	args := []any{scope.OrgID}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		query += fmt.Sprintf(" AND w.status = $%d", len(args))
	}
	query += ` ORDER BY w.created_at DESC, w.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workorders: %w", err)
	}
	defer rows.Close()

	out := []*domain.Workorder{}
	for rows.Next() {
		w, err := scanWorkorder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workorder: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WorkorderRepository) Get(ctx context.Context, scope domain.Scope, id string) (*domain.Workorder, error) {
	w, err := scanWorkorder(r.db.QueryRowContext(ctx,
		workorderSelect+` FROM workorders w LEFT JOIN customers c ON c.id = w.customer_id WHERE w.org_id = $1 AND w.id = $2`,
		scope.OrgID, id,
	))
	if err != nil {
		return nil, mapReadError("get workorder", err, domain.ErrWorkorderMissing)
	}
	return w, nil
}

func (r *WorkorderRepository) FindByID(ctx context.Context, id string) (*domain.Workorder, error) {
	w, err := scanWorkorder(r.db.QueryRowContext(ctx,
		workorderSelect+` FROM workorders w LEFT JOIN customers c ON c.id = w.customer_id WHERE w.id = $1`,
		id,
	))
	if err != nil {
		return nil, mapReadError("find workorder", err, domain.ErrWorkorderMissing)
	}
	return w, nil
}

func (r *WorkorderRepository) Create(ctx context.Context, scope domain.Scope, w *domain.Workorder) (*domain.Workorder, error) {
	created, err := scanWorkorder(r.db.QueryRowContext(ctx,
		`WITH w AS (
		     INSERT INTO workorders (id, org_id, vehicle, customer_id, received, due, complaint, status)
		     VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		     RETURNING *
		 ) `+workorderSelect+` FROM w LEFT JOIN customers c ON c.id = w.customer_id`,
		w.ID, scope.OrgID, w.Vehicle, w.CustomerID, w.Received, w.Due, w.Complaint, string(w.Status),
	))
	if err != nil {
		return nil, mapWriteError("create workorder", err, domain.ErrWorkorderExists)
	}
	return created, nil
}

func (r *WorkorderRepository) Update(ctx context.Context, scope domain.Scope, id string, u ports.WorkorderUpdate) (*domain.Workorder, error) {
	var status *string
	if u.Status != nil {
		s := string(*u.Status)
		status = &s
	}

	w, err := scanWorkorder(r.db.QueryRowContext(ctx,
		`WITH w AS (
		     UPDATE workorders SET
		         vehicle     = COALESCE($3, vehicle),
		         customer_id = COALESCE($4, customer_id),
		         received    = COALESCE($5, received),
		         due         = COALESCE($6, due),
		         complaint   = COALESCE($7, complaint),
		         status      = COALESCE($8, status)
		     WHERE org_id = $1 AND id = $2
		     RETURNING *
		 ) `+workorderSelect+` FROM w LEFT JOIN customers c ON c.id = w.customer_id`,
		scope.OrgID, id, u.Vehicle, u.CustomerID, u.Received, u.Due, u.Complaint, status,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWorkorderMissing
		}
		return nil, mapWriteError("update workorder", err, domain.ErrConflict)
	}
	return w, nil
}
