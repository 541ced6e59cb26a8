package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
)

const selectActiveTenants = `
SELECT subdomain, slug, COALESCE(name, '')
FROM clinic_subdomains
WHERE is_active
ORDER BY subdomain`

// TenantSource reads the clinic registry from the clinic_subdomains table.
type TenantSource struct {
	db *sql.DB
}

func NewTenantSource(db *DB) *TenantSource {
	return &TenantSource{db: db.GetConnection()}
}

func (s *TenantSource) Name() string { return "postgres" }

func (s *TenantSource) Load(ctx context.Context) ([]tenancy.Tenant, error) {
	rows, err := s.db.QueryContext(ctx, selectActiveTenants)
	if err != nil {
		return nil, fmt.Errorf("query clinic_subdomains: %w", err)
	}
	defer rows.Close()

	var out []tenancy.Tenant
	for rows.Next() {
		var t tenancy.Tenant
		if err := rows.Scan(&t.Subdomain, &t.Slug, &t.Name); err != nil {
			return nil, fmt.Errorf("scan clinic_subdomains: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clinic_subdomains: %w", err)
	}
	return out, nil
}
