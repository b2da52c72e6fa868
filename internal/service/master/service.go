package master

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/master/department"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/master/position"
)

type DepartmentServiceImpl struct {
	department.DepartmentRepository
	recorder audit.Recorder
}

func NewDepartmentService(departmentRepository department.DepartmentRepository, recorder audit.Recorder) department.DepartmentService {
	return &DepartmentServiceImpl{
		DepartmentRepository: departmentRepository,
		recorder:             recorder,
	}
}

// GetDepartment implements department.DepartmentService.
func (s *DepartmentServiceImpl) GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error) {
	found, err := s.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.ToResponse(found), nil
}

// ListDepartments implements department.DepartmentService.
func (s *DepartmentServiceImpl) ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := s.DepartmentRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]department.DepartmentResponse, len(departments))
	for i, d := range departments {
		responses[i] = department.ToResponse(d)
	}
	return responses, nil
}

// CreateDepartment implements department.DepartmentService.
func (s *DepartmentServiceImpl) CreateDepartment(ctx context.Context, caller identity.Principal, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	created, err := s.DepartmentRepository.Create(ctx, department.Department{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	s.record(ctx, caller, audit.ActionCreate, created, "created department "+created.Name)

	return department.ToResponse(created), nil
}

// UpdateDepartment implements department.DepartmentService.
func (s *DepartmentServiceImpl) UpdateDepartment(ctx context.Context, caller identity.Principal, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := s.DepartmentRepository.Update(ctx, req); err != nil {
		return department.DepartmentResponse{}, err
	}

	updated, err := s.DepartmentRepository.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	s.record(ctx, caller, audit.ActionUpdate, updated, "updated department "+updated.Name)

	return department.ToResponse(updated), nil
}

// DeleteDepartment implements department.DepartmentService.
func (s *DepartmentServiceImpl) DeleteDepartment(ctx context.Context, caller identity.Principal, id string) error {
	existing, err := s.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.DepartmentRepository.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, caller, audit.ActionDelete, existing, "deleted department "+existing.Name)
	return nil
}

func (s *DepartmentServiceImpl) record(ctx context.Context, caller identity.Principal, action audit.Action, subject department.Department, description string) {
	entityID := subject.ID
	entityName := subject.Name
	_ = s.recorder.Record(ctx, audit.Entry{
		ID:          uuid.NewString(),
		Actor:       audit.Actor{ID: caller.ID, Name: caller.FullName, Role: string(caller.Role), Username: caller.Username},
		Action:      action,
		Entity:      audit.EntityDepartment,
		EntityID:    &entityID,
		EntityName:  &entityName,
		Description: description,
		Timestamp:   time.Now().UTC(),
		Success:     true,
	})
}

type PositionServiceImpl struct {
	position.PositionRepository
}

func NewPositionService(positionRepository position.PositionRepository) position.PositionService {
	return &PositionServiceImpl{PositionRepository: positionRepository}
}

// GetPosition implements position.PositionService.
func (s *PositionServiceImpl) GetPosition(ctx context.Context, id string) (position.PositionResponse, error) {
	found, err := s.PositionRepository.GetByID(ctx, id)
	if err != nil {
		return position.PositionResponse{}, err
	}
	return position.ToResponse(found), nil
}

// ListPositions implements position.PositionService.
func (s *PositionServiceImpl) ListPositions(ctx context.Context) ([]position.PositionResponse, error) {
	positions, err := s.PositionRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]position.PositionResponse, len(positions))
	for i, p := range positions {
		responses[i] = position.ToResponse(p)
	}
	return responses, nil
}

// CreatePosition implements position.PositionService.
func (s *PositionServiceImpl) CreatePosition(ctx context.Context, caller identity.Principal, req position.CreatePositionRequest) (position.PositionResponse, error) {
	created, err := s.PositionRepository.Create(ctx, position.Position{
		Code:        req.Code,
		Name:        req.Name,
		Level:       req.Level,
		Description: req.Description,
	})
	if err != nil {
		return position.PositionResponse{}, err
	}
	return position.ToResponse(created), nil
}

// UpdatePosition implements position.PositionService.
func (s *PositionServiceImpl) UpdatePosition(ctx context.Context, caller identity.Principal, req position.UpdatePositionRequest) (position.PositionResponse, error) {
	if err := s.PositionRepository.Update(ctx, req); err != nil {
		return position.PositionResponse{}, err
	}

	updated, err := s.PositionRepository.GetByID(ctx, req.ID)
	if err != nil {
		return position.PositionResponse{}, err
	}
	return position.ToResponse(updated), nil
}

// DeletePosition implements position.PositionService.
func (s *PositionServiceImpl) DeletePosition(ctx context.Context, caller identity.Principal, id string) error {
	return s.PositionRepository.Delete(ctx, id)
}
