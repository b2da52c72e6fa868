package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	identityRepo identity.IdentityRepository
	recorder     audit.Recorder
}

func NewEmployeeService(employeeRepository employee.EmployeeRepository, identityRepository identity.IdentityRepository, recorder audit.Recorder) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepository,
		identityRepo:       identityRepository,
		recorder:           recorder,
	}
}

// GetEmployee implements employee.EmployeeService. Base salary appears only
// for callers holding hr:view_salary; everyone else gets the record without
// the field rather than a zero.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, caller identity.Principal, id string) (employee.EmployeeResponse, error) {
	found, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(found, caller.Can(identity.PermissionHRViewSalary)), nil
}

// ListEmployees implements employee.EmployeeService. Callers limited to
// hr:view_department_employees only see their own department.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, caller identity.Principal, filter employee.ListFilter) (employee.ListEmployeesResponse, error) {
	if !caller.Can(identity.PermissionHRViewAllEmployees) {
		ident, err := s.identityRepo.GetByID(ctx, caller.ID)
		if err != nil {
			return employee.ListEmployeesResponse{}, err
		}
		if ident.DepartmentID == nil {
			return employee.ListEmployeesResponse{Employees: []employee.EmployeeResponse{}}, nil
		}
		filter.DepartmentID = *ident.DepartmentID
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	includeSalary := caller.Can(identity.PermissionHRViewSalary)
	responses := make([]employee.EmployeeResponse, len(employees))
	for i, e := range employees {
		responses[i] = employee.ToResponse(e, includeSalary)
	}
	return employee.ListEmployeesResponse{Employees: responses, Total: total}, nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, caller identity.Principal, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	dob, _ := time.Parse("2006-01-02", req.DateOfBirth)
	joinDate, _ := time.Parse("2006-01-02", req.JoinDate)

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		DateOfBirth:  dob,
		Gender:       employee.Gender(req.Gender),
		Email:        req.Email,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
		BaseSalary:   req.BaseSalary,
		Status:       employee.StatusActive,
		JoinDate:     joinDate,
		Address:      req.Address,
		Avatar:       req.Avatar,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	s.record(ctx, caller, audit.ActionCreate, created, "created employee "+created.FullName)

	return employee.ToResponse(created, caller.Can(identity.PermissionHRViewSalary)), nil
}

// UpdateEmployee implements employee.EmployeeService. Salary never moves
// through this path, AdjustSalary is the only write to it.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, caller identity.Principal, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	existing, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		existing.FullName = *req.FullName
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.DepartmentID != nil {
		existing.DepartmentID = *req.DepartmentID
	}
	if req.PositionID != nil {
		existing.PositionID = *req.PositionID
	}
	if req.Status != nil {
		existing.Status = employee.Status(*req.Status)
		if existing.Status == employee.StatusResigned && existing.ResignDate == nil {
			now := time.Now().UTC()
			existing.ResignDate = &now
		}
	}
	if req.Address != nil {
		existing.Address = req.Address
	}
	if req.Avatar != nil {
		existing.Avatar = req.Avatar
	}

	if err := s.EmployeeRepository.Update(ctx, existing); err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.record(ctx, caller, audit.ActionUpdate, existing, "updated employee "+existing.FullName)

	return employee.ToResponse(existing, caller.Can(identity.PermissionHRViewSalary)), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, caller identity.Principal, id string) error {
	existing, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.EmployeeRepository.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, caller, audit.ActionDelete, existing, "deleted employee "+existing.FullName)
	return nil
}

// AdjustSalary implements employee.EmployeeService. The floor check also ran
// in request validation; it is repeated here so no other entry point can
// write below the minimum.
func (s *EmployeeServiceImpl) AdjustSalary(ctx context.Context, caller identity.Principal, id string, req employee.AdjustSalaryRequest) (employee.EmployeeResponse, error) {
	if req.BaseSalary < employee.MinBaseSalary {
		return employee.EmployeeResponse{}, employee.ErrSalaryBelowMinimum
	}

	existing, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.EmployeeRepository.UpdateBaseSalary(ctx, id, req.BaseSalary); err != nil {
		return employee.EmployeeResponse{}, err
	}
	existing.BaseSalary = req.BaseSalary

	s.record(ctx, caller, audit.ActionUpdate, existing, "adjusted salary of "+existing.FullName+": "+req.Reason)

	return employee.ToResponse(existing, true), nil
}

// ExportEmployees implements employee.EmployeeService. The export disregards
// pagination and is always written to the audit trail.
func (s *EmployeeServiceImpl) ExportEmployees(ctx context.Context, caller identity.Principal, filter employee.ListFilter) ([]employee.EmployeeResponse, error) {
	filter.Limit = 0
	filter.Offset = 0

	list, err := s.ListEmployees(ctx, caller, filter)
	if err != nil {
		return nil, err
	}

	_ = s.recorder.Record(ctx, audit.Entry{
		ID:          uuid.NewString(),
		Actor:       audit.Actor{ID: caller.ID, Name: caller.FullName, Role: string(caller.Role), Username: caller.Username},
		Action:      audit.ActionExport,
		Entity:      audit.EntityEmployee,
		Description: fmt.Sprintf("exported %d employees", len(list.Employees)),
		Timestamp:   time.Now().UTC(),
		Success:     true,
	})

	return list.Employees, nil
}

func (s *EmployeeServiceImpl) record(ctx context.Context, caller identity.Principal, action audit.Action, subject employee.Employee, description string) {
	entityID := subject.ID
	entityName := subject.FullName
	_ = s.recorder.Record(ctx, audit.Entry{
		ID:          uuid.NewString(),
		Actor:       audit.Actor{ID: caller.ID, Name: caller.FullName, Role: string(caller.Role), Username: caller.Username},
		Action:      action,
		Entity:      audit.EntityEmployee,
		EntityID:    &entityID,
		EntityName:  &entityName,
		Description: description,
		Timestamp:   time.Now().UTC(),
		Success:     true,
	})
}
