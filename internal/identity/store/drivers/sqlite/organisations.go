package sqlite

import (
	"context"
	"time"

	"github.com/lumahq/identity/internal/identity/domain"
)

type organisationsRepo struct {
	db dbtx
}

const orgColumns = `id, name, description, created_at, updated_at`

func (r *organisationsRepo) CreateOrganisation(ctx context.Context, o domain.Organisation) error {
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO organisations (`+orgColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.Description, o.CreatedAt, o.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *organisationsRepo) GetOrganisationByID(ctx context.Context, id string) (domain.Organisation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orgColumns+` FROM organisations WHERE id = ?`, id)

	var o domain.Organisation
	if err := row.Scan(&o.ID, &o.Name, &o.Description, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return domain.Organisation{}, mapNotFound(err)
	}
	return o, nil
}

func (r *organisationsRepo) AddMember(ctx context.Context, orgID, userID string) error {
	// The (org_id, user_id) primary key turns a duplicate add into a
	// UNIQUE violation, which surfaces as store.ErrAlreadyExists.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO organisation_members (org_id, user_id, created_at)
		VALUES (?, ?, ?)`,
		orgID, userID, time.Now().UTC(),
	)
	return mapConflict(err)
}

func (r *organisationsRepo) IsMember(ctx context.Context, orgID, userID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM organisation_members
		WHERE org_id = ? AND user_id = ?`,
		orgID, userID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *organisationsRepo) ListForUser(ctx context.Context, userID string) ([]domain.Organisation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.name, o.description, o.created_at, o.updated_at
		FROM organisations o
		JOIN organisation_members m ON m.org_id = o.id
		WHERE m.user_id = ?
		ORDER BY o.created_at ASC, o.id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organisation
	for rows.Next() {
		var o domain.Organisation
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func (r *organisationsRepo) CountMembers(ctx context.Context, orgID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM organisation_members WHERE org_id = ?`, orgID,
	).Scan(&count)
	return count, err
}
