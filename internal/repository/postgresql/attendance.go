package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/attendance"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.clock_in, a.clock_out, a.work_minutes,
	a.late_minutes, a.status, a.approved_by, a.approved_at, a.note,
	a.created_at, a.updated_at,
	e.full_name AS employee_name, e.department_id, e.team_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var found attendance.Attendance
	err := row.Scan(
		&found.ID,
		&found.EmployeeID,
		&found.Date,
		&found.ClockIn,
		&found.ClockOut,
		&found.WorkMinutes,
		&found.LateMinutes,
		&found.Status,
		&found.ApprovedBy,
		&found.ApprovedAt,
		&found.Note,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.EmployeeName,
		&found.DepartmentID,
		&found.TeamID,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	return found, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	found, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return found, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
	`

	found, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return found, nil
}

// List implements attendance.AttendanceRepository. The scope columns come
// from the employees join, so team and department narrowing work even though
// attendance rows only carry the employee id.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	join := " FROM attendances a LEFT JOIN employees e ON e.id = a.employee_id"
	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	switch filter.Scope {
	case attendance.ScopeOwn:
		where += fmt.Sprintf(" AND a.employee_id = $%d", argPos)
		args = append(args, filter.EmployeeID)
		argPos++
	case attendance.ScopeTeam:
		where += fmt.Sprintf(" AND e.team_id = $%d", argPos)
		args = append(args, filter.TeamID)
		argPos++
	case attendance.ScopeDepartment:
		where += fmt.Sprintf(" AND e.department_id = $%d", argPos)
		args = append(args, filter.DepartmentID)
		argPos++
	}

	if filter.From != nil {
		where += fmt.Sprintf(" AND a.date >= $%d", argPos)
		args = append(args, *filter.From)
		argPos++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND a.date <= $%d", argPos)
		args = append(args, *filter.To)
		argPos++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+join+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + attendanceColumns + join + where + " ORDER BY a.date DESC, e.full_name"

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

	var attendances []attendance.Attendance
	for rows.Next() {
		found, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, err
		}
		attendances = append(attendances, found)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, clock_in, clock_out, work_minutes,
			late_minutes, status, note
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, employee_id, date, clock_in, clock_out, work_minutes,
				  late_minutes, status, approved_by, approved_at, note,
				  created_at, updated_at
	`

	var created attendance.Attendance
	err := q.QueryRow(ctx, query,
		a.EmployeeID, a.Date, a.ClockIn, a.ClockOut, a.WorkMinutes,
		a.LateMinutes, a.Status, a.Note,
	).Scan(
		&created.ID,
		&created.EmployeeID,
		&created.Date,
		&created.ClockIn,
		&created.ClockOut,
		&created.WorkMinutes,
		&created.LateMinutes,
		&created.Status,
		&created.ApprovedBy,
		&created.ApprovedAt,
		&created.Note,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	return created, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET clock_in = $1, clock_out = $2, work_minutes = $3, late_minutes = $4,
			status = $5, approved_by = $6, approved_at = $7, note = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		a.ClockIn, a.ClockOut, a.WorkMinutes, a.LateMinutes,
		a.Status, a.ApprovedBy, a.ApprovedAt, a.Note, a.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return err
	}
	return nil
}
