package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/attendance"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

// workdayStartMinutes is minutes after midnight; clock-ins later than this
// accrue late minutes.
const workdayStartMinutes = 9 * 60

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employeeRepo employee.EmployeeRepository
	identityRepo identity.IdentityRepository
	recorder     audit.Recorder
	now          func() time.Time
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, employeeRepository employee.EmployeeRepository, identityRepository identity.IdentityRepository, recorder audit.Recorder) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		employeeRepo:         employeeRepository,
		identityRepo:         identityRepository,
		recorder:             recorder,
		now:                  func() time.Time { return time.Now().UTC() },
	}
}

// callerEmployee resolves the caller's identity to their employee record.
// Work email is the shared key between the two tables.
func (s *AttendanceServiceImpl) callerEmployee(ctx context.Context, caller identity.Principal) (employee.Employee, error) {
	ident, err := s.identityRepo.GetByID(ctx, caller.ID)
	if err != nil {
		return employee.Employee{}, err
	}
	return s.employeeRepo.GetByEmail(ctx, ident.Email)
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, caller identity.Principal) (attendance.AttendanceResponse, error) {
	emp, err := s.callerEmployee(ctx, caller)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := now.Truncate(24 * time.Hour)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err == nil && existing.ClockIn != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, err
	}

	minutesIntoDay := now.Hour()*60 + now.Minute()
	late := 0
	if minutesIntoDay > workdayStartMinutes {
		late = minutesIntoDay - workdayStartMinutes
	}

	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID:  emp.ID,
		Date:        today,
		ClockIn:     &now,
		LateMinutes: &late,
		Status:      attendance.StatusPending,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, caller identity.Principal) (attendance.AttendanceResponse, error) {
	emp, err := s.callerEmployee(ctx, caller)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := now.Truncate(24 * time.Hour)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, err
	}
	if existing.ClockIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.ClockOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	existing.ClockOut = &now
	worked := int(now.Sub(*existing.ClockIn).Minutes())
	existing.WorkMinutes = &worked

	if err := s.AttendanceRepository.Update(ctx, existing); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(existing), nil
}

// ListAttendance implements attendance.AttendanceService. The caller lands in
// the widest scope their grants allow, checked from all down to own.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, caller identity.Principal, filter attendance.ListFilter) (attendance.ListAttendanceResponse, error) {
	switch {
	case caller.Can(identity.PermissionAttendanceViewAll):
		filter.Scope = attendance.ScopeAll

	case caller.Can(identity.PermissionAttendanceViewDepartment):
		ident, err := s.identityRepo.GetByID(ctx, caller.ID)
		if err != nil {
			return attendance.ListAttendanceResponse{}, err
		}
		if ident.DepartmentID == nil {
			return attendance.ListAttendanceResponse{}, attendance.ErrViewScopeNotGranted
		}
		filter.Scope = attendance.ScopeDepartment
		filter.DepartmentID = *ident.DepartmentID

	case caller.Can(identity.PermissionAttendanceViewTeam):
		ident, err := s.identityRepo.GetByID(ctx, caller.ID)
		if err != nil {
			return attendance.ListAttendanceResponse{}, err
		}
		if ident.TeamID == nil {
			return attendance.ListAttendanceResponse{}, attendance.ErrViewScopeNotGranted
		}
		filter.Scope = attendance.ScopeTeam
		filter.TeamID = *ident.TeamID

	case caller.Can(identity.PermissionAttendanceViewOwn):
		emp, err := s.callerEmployee(ctx, caller)
		if err != nil {
			return attendance.ListAttendanceResponse{}, err
		}
		filter.Scope = attendance.ScopeOwn
		filter.EmployeeID = emp.ID

	default:
		return attendance.ListAttendanceResponse{}, attendance.ErrViewScopeNotGranted
	}

	attendances, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, len(attendances))
	for i, a := range attendances {
		responses[i] = attendance.ToResponse(a)
	}
	return attendance.ListAttendanceResponse{Attendances: responses, Total: total, Scope: filter.Scope}, nil
}

// ApproveAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ApproveAttendance(ctx context.Context, caller identity.Principal, id string, req attendance.ApproveRequest) (attendance.AttendanceResponse, error) {
	existing, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing.Status != attendance.StatusPending {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyProcessed
	}

	now := s.now()
	existing.ApprovedBy = &caller.ID
	existing.ApprovedAt = &now
	if req.Approve {
		existing.Status = attendance.StatusApproved
	} else {
		existing.Status = attendance.StatusRejected
		existing.Note = req.Reason
	}

	if err := s.AttendanceRepository.Update(ctx, existing); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	verb := "approved"
	if !req.Approve {
		verb = "rejected"
	}
	s.record(ctx, caller, existing, verb+" attendance record")

	return attendance.ToResponse(existing), nil
}

// CorrectAttendance implements attendance.AttendanceService. Manual edits
// always move the record to corrected and keep the editor's note.
func (s *AttendanceServiceImpl) CorrectAttendance(ctx context.Context, caller identity.Principal, id string, req attendance.CorrectRequest) (attendance.AttendanceResponse, error) {
	existing, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.ClockIn != nil {
		t, err := time.Parse(time.RFC3339, *req.ClockIn)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		existing.ClockIn = &t
	}
	if req.ClockOut != nil {
		t, err := time.Parse(time.RFC3339, *req.ClockOut)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		existing.ClockOut = &t
	}
	if existing.ClockIn != nil && existing.ClockOut != nil {
		worked := int(existing.ClockOut.Sub(*existing.ClockIn).Minutes())
		existing.WorkMinutes = &worked
	}
	existing.Status = attendance.StatusCorrected
	existing.Note = &req.Note

	if err := s.AttendanceRepository.Update(ctx, existing); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.record(ctx, caller, existing, "corrected attendance record: "+req.Note)

	return attendance.ToResponse(existing), nil
}

func (s *AttendanceServiceImpl) record(ctx context.Context, caller identity.Principal, subject attendance.Attendance, description string) {
	entityID := subject.ID
	entry := audit.Entry{
		ID:          uuid.NewString(),
		Actor:       audit.Actor{ID: caller.ID, Name: caller.FullName, Role: string(caller.Role), Username: caller.Username},
		Action:      audit.ActionUpdate,
		Entity:      audit.EntityEmployee,
		EntityID:    &entityID,
		EntityName:  subject.EmployeeName,
		Description: description,
		Timestamp:   s.now(),
		Success:     true,
	}
	_ = s.recorder.Record(ctx, entry)
}
