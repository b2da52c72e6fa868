package postgresql

import (
	"context"
	"fmt"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepositoryImpl{db: db}
}

// Record implements audit.Repository. Insert only, the table has no update
// or delete path.
func (r *auditRepositoryImpl) Record(ctx context.Context, entry audit.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO audit_logs (
			id, actor_id, actor_name, actor_role, actor_username,
			action, entity, entity_id, entity_name, description,
			ip_address, user_agent, success, occurred_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := q.Exec(ctx, query,
		entry.ID,
		entry.Actor.ID,
		entry.Actor.Name,
		entry.Actor.Role,
		entry.Actor.Username,
		entry.Action,
		entry.Entity,
		entry.EntityID,
		entry.EntityName,
		entry.Description,
		entry.IPAddress,
		entry.UserAgent,
		entry.Success,
		entry.Timestamp,
	)
	return err
}

// List implements audit.Repository. Newest first, with the same conjunctive
// semantics as audit.ListFilter.Matches.
func (r *auditRepositoryImpl) List(ctx context.Context, filter audit.ListFilter) ([]audit.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filter.Action != "" {
		where += fmt.Sprintf(" AND action = $%d", argPos)
		args = append(args, filter.Action)
		argPos++
	}
	if filter.Entity != "" {
		where += fmt.Sprintf(" AND entity = $%d", argPos)
		args = append(args, filter.Entity)
		argPos++
	}
	if filter.Success != nil {
		where += fmt.Sprintf(" AND success = $%d", argPos)
		args = append(args, *filter.Success)
		argPos++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (description ILIKE $%d OR actor_name ILIKE $%d OR entity_name ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM audit_logs"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, actor_id, actor_name, actor_role, actor_username,
			   action, entity, entity_id, entity_name, description,
			   ip_address, user_agent, success, occurred_at
		FROM audit_logs` + where + " ORDER BY occurred_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filter.Limit)
		argPos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, filter.Offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		err := rows.Scan(
			&e.ID, &e.Actor.ID, &e.Actor.Name, &e.Actor.Role, &e.Actor.Username,
			&e.Action, &e.Entity, &e.EntityID, &e.EntityName, &e.Description,
			&e.IPAddress, &e.UserAgent, &e.Success, &e.Timestamp,
		)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
