package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/customer"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
)

type customerRepositoryImpl struct {
	db *database.DB
}

func NewCustomerRepository(db *database.DB) customer.CustomerRepository {
	return &customerRepositoryImpl{db: db}
}

const customerColumns = `
	c.id, c.code, c.name, c.email, c.phone, c.company, c.status, c.priority,
	c.assigned_to, c.created_by, c.tags, c.notes, c.total_value,
	c.created_at, c.updated_at, u.full_name AS assigned_to_name
`

func scanCustomer(row pgx.Row) (customer.Customer, error) {
	var found customer.Customer
	err := row.Scan(
		&found.ID,
		&found.Code,
		&found.Name,
		&found.Email,
		&found.Phone,
		&found.Company,
		&found.Status,
		&found.Priority,
		&found.AssignedTo,
		&found.CreatedBy,
		&found.Tags,
		&found.Notes,
		&found.TotalValue,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.AssignedToName,
	)
	if err != nil {
		return customer.Customer{}, err
	}
	return found, nil
}

// GetByID implements customer.CustomerRepository.
func (r *customerRepositoryImpl) GetByID(ctx context.Context, id string) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + customerColumns + `
		FROM customers c
		LEFT JOIN users u ON u.id = c.assigned_to
		WHERE c.id = $1
	`

	found, err := scanCustomer(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customer.Customer{}, customer.ErrCustomerNotFound
		}
		return customer.Customer{}, err
	}
	return found, nil
}

// List implements customer.CustomerRepository.
func (r *customerRepositoryImpl) List(ctx context.Context, filter customer.ListFilter) ([]customer.Customer, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filter.AssignedTo != "" {
		where += fmt.Sprintf(" AND c.assigned_to = $%d", argPos)
		args = append(args, filter.AssignedTo)
		argPos++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND c.status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (c.name ILIKE $%d OR c.code ILIKE $%d OR c.email ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM customers c"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + customerColumns + `
		FROM customers c
		LEFT JOIN users u ON u.id = c.assigned_to` + where + " ORDER BY c.created_at DESC"

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

	var customers []customer.Customer
	for rows.Next() {
		found, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, found)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

// Create implements customer.CustomerRepository.
func (r *customerRepositoryImpl) Create(ctx context.Context, newCustomer customer.Customer) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO customers (
			code, name, email, phone, company, status, priority,
			assigned_to, created_by, tags, notes, total_value
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, code, name, email, phone, company, status, priority,
				  assigned_to, created_by, tags, notes, total_value,
				  created_at, updated_at
	`

	var created customer.Customer
	err := q.QueryRow(ctx, query,
		newCustomer.Code,
		newCustomer.Name,
		newCustomer.Email,
		newCustomer.Phone,
		newCustomer.Company,
		newCustomer.Status,
		newCustomer.Priority,
		newCustomer.AssignedTo,
		newCustomer.CreatedBy,
		newCustomer.Tags,
		newCustomer.Notes,
		newCustomer.TotalValue,
	).Scan(
		&created.ID,
		&created.Code,
		&created.Name,
		&created.Email,
		&created.Phone,
		&created.Company,
		&created.Status,
		&created.Priority,
		&created.AssignedTo,
		&created.CreatedBy,
		&created.Tags,
		&created.Notes,
		&created.TotalValue,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return customer.Customer{}, err
	}
	return created, nil
}

// Update implements customer.CustomerRepository.
func (r *customerRepositoryImpl) Update(ctx context.Context, c customer.Customer) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, company = $4, status = $5,
			priority = $6, tags = $7, notes = $8, total_value = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		c.Name, c.Email, c.Phone, c.Company, c.Status,
		c.Priority, c.Tags, c.Notes, c.TotalValue, c.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customer.ErrCustomerNotFound
		}
		return err
	}
	return nil
}

// Delete implements customer.CustomerRepository.
func (r *customerRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

// UpdateAssignee implements customer.CustomerRepository.
func (r *customerRepositoryImpl) UpdateAssignee(ctx context.Context, id, toUserID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE customers
		SET assigned_to = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, toUserID, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customer.ErrCustomerNotFound
		}
		return err
	}
	return nil
}

// AppendHistory implements customer.CustomerRepository.
func (r *customerRepositoryImpl) AppendHistory(ctx context.Context, h customer.History) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO customer_history (customer_id, action, description, performed_by, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query, h.CustomerID, h.Action, h.Description, h.PerformedBy, h.Timestamp)
	return err
}

// ListHistory implements customer.CustomerRepository.
func (r *customerRepositoryImpl) ListHistory(ctx context.Context, customerID string) ([]customer.History, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT h.id, h.customer_id, h.action, h.description, h.performed_by,
			   h.occurred_at, u.full_name AS performed_by_name
		FROM customer_history h
		LEFT JOIN users u ON u.id = h.performed_by
		WHERE h.customer_id = $1
		ORDER BY h.occurred_at DESC
	`

	rows, err := q.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []customer.History
	for rows.Next() {
		var h customer.History
		err := rows.Scan(
			&h.ID, &h.CustomerID, &h.Action, &h.Description, &h.PerformedBy,
			&h.Timestamp, &h.PerformedByName,
		)
		if err != nil {
			return nil, err
		}
		history = append(history, h)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
