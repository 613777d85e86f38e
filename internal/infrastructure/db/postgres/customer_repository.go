package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

const customerColumns = `id, org_id, name, phone, email, created_at`

// CustomerRepository implements ports.CustomerRepository.
type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) ports.CustomerRepository {
	return &CustomerRepository{db: db}
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.OrgID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) List(ctx context.Context, scope domain.Scope) ([]*domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE org_id = $1 ORDER BY name, id`,
		scope.OrgID,
	)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	out := []*domain.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CustomerRepository) Get(ctx context.Context, scope domain.Scope, id int64) (*domain.Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE org_id = $1 AND id = $2`,
		scope.OrgID, id,
	))
	if err != nil {
		return nil, mapReadError("get customer", err, errNotFound)
	}
	return c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, scope domain.Scope, c *domain.Customer) (*domain.Customer, error) {
	created, err := scanCustomer(r.db.QueryRowContext(ctx,
		`INSERT INTO customers (org_id, name, phone, email) VALUES ($1, $2, $3, $4)
		 RETURNING `+customerColumns,
		scope.OrgID, c.Name, c.Phone, c.Email,
	))
	if err != nil {
		return nil, mapWriteError("create customer", err, domain.ErrConflict)
	}
	return created, nil
}

func (r *CustomerRepository) Update(ctx context.Context, scope domain.Scope, id int64, u ports.CustomerUpdate) (*domain.Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx,
		`UPDATE customers SET
		     name  = COALESCE($3, name),
		     phone = COALESCE($4, phone),
		     email = COALESCE($5, email)
		 WHERE org_id = $1 AND id = $2
		 RETURNING `+customerColumns,
		scope.OrgID, id, u.Name, u.Phone, u.Email,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, mapWriteError("update customer", err, domain.ErrConflict)
	}
	return c, nil
}
