package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
)

type identityRepositoryImpl struct {
	db *database.DB
}

func NewIdentityRepository(db *database.DB) identity.IdentityRepository {
	return &identityRepositoryImpl{db: db}
}

const identityColumns = `
	id, username, full_name, email, role, department_id, team_id,
	permissions, is_active, avatar, password_hash, created_at, updated_at
`

func scanIdentity(row pgx.Row) (identity.Identity, error) {
	var found identity.Identity
	var permissions []string
	err := row.Scan(
		&found.ID,
		&found.Username,
		&found.FullName,
		&found.Email,
		&found.Role,
		&found.DepartmentID,
		&found.TeamID,
		&permissions,
		&found.IsActive,
		&found.Avatar,
		&found.PasswordHash,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		return identity.Identity{}, err
	}
	found.Permissions = identity.PermissionsFromStrings(permissions)
	return found, nil
}

// GetByID implements identity.IdentityRepository.
func (r *identityRepositoryImpl) GetByID(ctx context.Context, id string) (identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + identityColumns + ` FROM users WHERE id = $1`

	found, err := scanIdentity(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Identity{}, identity.ErrIdentityNotFound
		}
		return identity.Identity{}, err
	}
	return found, nil
}

// GetByUsername implements identity.IdentityRepository. The lookup is exact
// and case sensitive, usernames differing only in case are different users.
func (r *identityRepositoryImpl) GetByUsername(ctx context.Context, username string) (identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + identityColumns + ` FROM users WHERE username = $1`

	found, err := scanIdentity(q.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Identity{}, identity.ErrIdentityNotFound
		}
		return identity.Identity{}, err
	}
	return found, nil
}

// GetByEmail implements identity.IdentityRepository.
func (r *identityRepositoryImpl) GetByEmail(ctx context.Context, email string) (identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + identityColumns + ` FROM users WHERE email = $1`

	found, err := scanIdentity(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Identity{}, identity.ErrIdentityNotFound
		}
		return identity.Identity{}, err
	}
	return found, nil
}

// List implements identity.IdentityRepository.
func (r *identityRepositoryImpl) List(ctx context.Context) ([]identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + identityColumns + ` FROM users ORDER BY username`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var identities []identity.Identity
	for rows.Next() {
		found, err := scanIdentity(rows)
		if err != nil {
			return nil, err
		}
		identities = append(identities, found)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return identities, nil
}

// Create implements identity.IdentityRepository.
func (r *identityRepositoryImpl) Create(ctx context.Context, newIdentity identity.Identity) (identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			username, full_name, email, role, department_id, team_id,
			permissions, is_active, avatar, password_hash
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + identityColumns

	created, err := scanIdentity(q.QueryRow(ctx, query,
		newIdentity.Username,
		newIdentity.FullName,
		newIdentity.Email,
		newIdentity.Role,
		newIdentity.DepartmentID,
		newIdentity.TeamID,
		identity.PermissionStrings(newIdentity.Permissions),
		newIdentity.IsActive,
		newIdentity.Avatar,
		newIdentity.PasswordHash,
	))
	if err != nil {
		return identity.Identity{}, err
	}
	return created, nil
}

// UpdateRole implements identity.IdentityRepository. The new permission list
// is written in the same statement so role and grants never drift apart.
func (r *identityRepositoryImpl) UpdateRole(ctx context.Context, id string, role identity.Role, permissions []identity.Permission) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET role = $1, permissions = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, role, identity.PermissionStrings(permissions), id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.ErrIdentityNotFound
		}
		return err
	}
	return nil
}

// UpdatePermissions implements identity.IdentityRepository.
func (r *identityRepositoryImpl) UpdatePermissions(ctx context.Context, id string, permissions []identity.Permission) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET permissions = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, identity.PermissionStrings(permissions), id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.ErrIdentityNotFound
		}
		return err
	}
	return nil
}

// SetActive implements identity.IdentityRepository.
func (r *identityRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET is_active = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, active, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.ErrIdentityNotFound
		}
		return err
	}
	return nil
}
