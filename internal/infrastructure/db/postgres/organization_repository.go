package postgres

import (
	"context"
	"database/sql"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
)

// OrganizationRepository implements ports.OrganizationRepository.
type OrganizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) ports.OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Get(ctx context.Context, id string) (*domain.Organization, error) {
	o := &domain.Organization{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM organizations WHERE id = $1`, id,
	).Scan(&o.ID, &o.Name, &o.CreatedAt)
	if err != nil {
		return nil, mapReadError("get organization", err, domain.ErrOrgNotFound)
	}
	return o, nil
}
