package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

const employeeColumns = `id, org_id, name, role, user_id, email, password_hash, is_active, created_at`

// EmployeeRepository implements both ports.EmployeeRepository and
// ports.CredentialRepository: credentials live on the employee row.
type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

var (
	_ ports.EmployeeRepository   = (*EmployeeRepository)(nil)
	_ ports.CredentialRepository = (*EmployeeRepository)(nil)
)

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var (
		e    domain.Employee
		role string
	)
	if err := row.Scan(&e.ID, &e.OrgID, &e.Name, &role, &e.UserID, &e.Email, &e.PasswordHash, &e.IsActive, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Role = domain.Role(role)
	return &e, nil
}

func (r *EmployeeRepository) List(ctx context.Context, scope domain.Scope) ([]*domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE org_id = $1 ORDER BY created_at DESC, id DESC`,
		scope.OrgID,
	)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	out := []*domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EmployeeRepository) Get(ctx context.Context, scope domain.Scope, id int64) (*domain.Employee, error) {
	e, err := scanEmployee(r.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE org_id = $1 AND id = $2`,
		scope.OrgID, id,
	))
	if err != nil {
		return nil, mapReadError("get employee", err, errNotFound)
	}
	return e, nil
}

// Create inserts e into the scope's organization, whatever e.OrgID says.
func (r *EmployeeRepository) Create(ctx context.Context, scope domain.Scope, e *domain.Employee) (*domain.Employee, error) {
	clone := *e
	clone.OrgID = scope.OrgID
	return r.insert(ctx, &clone)
}

func (r *EmployeeRepository) Register(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	return r.insert(ctx, e)
}

// RegisterWithOrganization inserts the organization and the employee in a
// single statement, so a failed employee insert rolls back the organization.
func (r *EmployeeRepository) RegisterWithOrganization(ctx context.Context, orgName string, e *domain.Employee) (*domain.Employee, error) {
	created, err := scanEmployee(r.db.QueryRowContext(ctx,
		`WITH org AS (
		     INSERT INTO organizations (id, name) VALUES ($1, $2) RETURNING id
		 )
		 INSERT INTO employees (org_id, name, role, user_id, email, password_hash, is_active)
		 SELECT org.id, $3, $4, $5, $6, $7, $8 FROM org
		 RETURNING `+employeeColumns,
		uuid.NewString(), orgName,
		e.Name, string(e.Role), e.UserID, e.Email, e.PasswordHash, e.IsActive,
	))
	if err != nil {
		return nil, mapWriteError("register with organization", err, domain.ErrEmailTaken)
	}
	return created, nil
}

func (r *EmployeeRepository) insert(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	created, err := scanEmployee(r.db.QueryRowContext(ctx,
		`INSERT INTO employees (org_id, name, role, user_id, email, password_hash, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+employeeColumns,
		e.OrgID, e.Name, string(e.Role), e.UserID, e.Email, e.PasswordHash, e.IsActive,
	))
	if err != nil {
		return nil, mapWriteError("create employee", err, domain.ErrEmailTaken)
	}
	return created, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, scope domain.Scope, id int64, u ports.EmployeeUpdate) (*domain.Employee, error) {
	var role *string
	if u.Role != nil {
		s := string(*u.Role)
		role = &s
	}

	e, err := scanEmployee(r.db.QueryRowContext(ctx,
		`UPDATE employees SET
		     name      = COALESCE($3, name),
		     role      = COALESCE($4, role),
		     user_id   = COALESCE($5, user_id),
		     is_active = COALESCE($6, is_active)
		 WHERE org_id = $1 AND id = $2
		 RETURNING `+employeeColumns,
		scope.OrgID, id, u.Name, role, u.UserID, u.IsActive,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, mapWriteError("update employee", err, domain.ErrConflict)
	}
	return e, nil
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	e, err := scanEmployee(r.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email,
	))
	if err != nil {
		return nil, mapReadError("find employee by email", err, errNotFound)
	}
	return e, nil
}

func (r *EmployeeRepository) ResetCredentials(ctx context.Context, id int64, role domain.Role, passwordHash string) (*domain.Employee, error) {
	e, err := scanEmployee(r.db.QueryRowContext(ctx,
		`UPDATE employees SET role = $2, password_hash = $3, is_active = TRUE
		 WHERE id = $1
		 RETURNING `+employeeColumns,
		id, string(role), passwordHash,
	))
	if err != nil {
		return nil, mapReadError("reset credentials", err, errNotFound)
	}
	return e, nil
}
