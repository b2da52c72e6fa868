package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.employee_code, e.full_name, e.date_of_birth, e.gender, e.email,
	e.phone, e.department_id, e.position_id, e.base_salary, e.status,
	e.join_date, e.resign_date, e.address, e.avatar, e.created_at, e.updated_at,
	d.name AS department_name, p.name AS position_name
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var found employee.Employee
	err := row.Scan(
		&found.ID,
		&found.EmployeeCode,
		&found.FullName,
		&found.DateOfBirth,
		&found.Gender,
		&found.Email,
		&found.Phone,
		&found.DepartmentID,
		&found.PositionID,
		&found.BaseSalary,
		&found.Status,
		&found.JoinDate,
		&found.ResignDate,
		&found.Address,
		&found.Avatar,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.DepartmentName,
		&found.PositionName,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return found, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		LEFT JOIN positions p ON p.id = e.position_id
		WHERE e.id = $1
	`

	found, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return found, nil
}

// GetByEmail implements employee.EmployeeRepository. Links an identity to its
// employee record, work email is the shared key.
func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		LEFT JOIN positions p ON p.id = e.position_id
		WHERE e.email = $1
	`

	found, err := scanEmployee(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return found, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filter.DepartmentID != "" {
		where += fmt.Sprintf(" AND e.department_id = $%d", argPos)
		args = append(args, filter.DepartmentID)
		argPos++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND e.status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (e.full_name ILIKE $%d OR e.employee_code ILIKE $%d OR e.email ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees e"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		LEFT JOIN positions p ON p.id = e.position_id` + where + " ORDER BY e.full_name"

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

	var employees []employee.Employee
	for rows.Next() {
		found, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, found)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			employee_code, full_name, date_of_birth, gender, email, phone,
			department_id, position_id, base_salary, status, join_date,
			address, avatar
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, employee_code, full_name, date_of_birth, gender, email,
				  phone, department_id, position_id, base_salary, status,
				  join_date, resign_date, address, avatar, created_at, updated_at
	`

	var created employee.Employee
	err := q.QueryRow(ctx, query,
		newEmployee.EmployeeCode,
		newEmployee.FullName,
		newEmployee.DateOfBirth,
		newEmployee.Gender,
		newEmployee.Email,
		newEmployee.Phone,
		newEmployee.DepartmentID,
		newEmployee.PositionID,
		newEmployee.BaseSalary,
		newEmployee.Status,
		newEmployee.JoinDate,
		newEmployee.Address,
		newEmployee.Avatar,
	).Scan(
		&created.ID,
		&created.EmployeeCode,
		&created.FullName,
		&created.DateOfBirth,
		&created.Gender,
		&created.Email,
		&created.Phone,
		&created.DepartmentID,
		&created.PositionID,
		&created.BaseSalary,
		&created.Status,
		&created.JoinDate,
		&created.ResignDate,
		&created.Address,
		&created.Avatar,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $1, email = $2, phone = $3, department_id = $4,
			position_id = $5, status = $6, resign_date = $7, address = $8,
			avatar = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		e.FullName, e.Email, e.Phone, e.DepartmentID,
		e.PositionID, e.Status, e.ResignDate, e.Address,
		e.Avatar, e.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return err
	}
	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdateBaseSalary implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateBaseSalary(ctx context.Context, id string, baseSalary int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET base_salary = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, baseSalary, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return err
	}
	return nil
}
