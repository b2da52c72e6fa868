package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/customer"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

type CustomerServiceImpl struct {
	customer.CustomerRepository
	identityRepo identity.IdentityRepository
	recorder     audit.Recorder
}

func NewCustomerService(customerRepository customer.CustomerRepository, identityRepository identity.IdentityRepository, recorder audit.Recorder) customer.CustomerService {
	return &CustomerServiceImpl{
		CustomerRepository: customerRepository,
		identityRepo:       identityRepository,
		recorder:           recorder,
	}
}

// ownBookOnly reports whether the caller is confined to customers assigned to
// them. Holding crm:view_all_customers lifts the restriction.
func ownBookOnly(caller identity.Principal) bool {
	return !caller.Can(identity.PermissionCRMViewAllCustomers)
}

// GetCustomer implements customer.CustomerService.
func (s *CustomerServiceImpl) GetCustomer(ctx context.Context, caller identity.Principal, id string) (customer.CustomerResponse, error) {
	found, err := s.CustomerRepository.GetByID(ctx, id)
	if err != nil {
		return customer.CustomerResponse{}, err
	}

	if ownBookOnly(caller) && found.AssignedTo != caller.ID {
		return customer.CustomerResponse{}, customer.ErrNotAssignedOwner
	}

	return customer.ToResponse(found), nil
}

// ListCustomers implements customer.CustomerService.
func (s *CustomerServiceImpl) ListCustomers(ctx context.Context, caller identity.Principal, filter customer.ListFilter) (customer.ListCustomersResponse, error) {
	if ownBookOnly(caller) {
		filter.AssignedTo = caller.ID
	}

	customers, total, err := s.CustomerRepository.List(ctx, filter)
	if err != nil {
		return customer.ListCustomersResponse{}, err
	}

	responses := make([]customer.CustomerResponse, len(customers))
	for i, c := range customers {
		responses[i] = customer.ToResponse(c)
	}
	return customer.ListCustomersResponse{Customers: responses, Total: total}, nil
}

// CreateCustomer implements customer.CustomerService. New customers start in
// the creator's own book.
func (s *CustomerServiceImpl) CreateCustomer(ctx context.Context, caller identity.Principal, req customer.CreateCustomerRequest) (customer.CustomerResponse, error) {
	status := customer.Status(req.Status)
	if status == "" {
		status = customer.StatusLead
	}
	priority := customer.Priority(req.Priority)
	if priority == "" {
		priority = customer.PriorityMedium
	}

	created, err := s.CustomerRepository.Create(ctx, customer.Customer{
		Code:       req.Code,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		Status:     status,
		Priority:   priority,
		AssignedTo: caller.ID,
		CreatedBy:  caller.ID,
		Tags:       req.Tags,
		Notes:      req.Notes,
	})
	if err != nil {
		return customer.CustomerResponse{}, fmt.Errorf("failed to create customer: %w", err)
	}

	s.appendHistory(ctx, caller, created.ID, customer.HistoryCreated, "customer created")
	s.record(ctx, caller, audit.ActionCreate, created, "created customer "+created.Name, true)

	return customer.ToResponse(created), nil
}

// UpdateCustomer implements customer.CustomerService.
func (s *CustomerServiceImpl) UpdateCustomer(ctx context.Context, caller identity.Principal, id string, req customer.UpdateCustomerRequest) (customer.CustomerResponse, error) {
	existing, err := s.CustomerRepository.GetByID(ctx, id)
	if err != nil {
		return customer.CustomerResponse{}, err
	}

	if ownBookOnly(caller) && existing.AssignedTo != caller.ID {
		s.record(ctx, caller, audit.ActionUpdate, existing, "attempted to edit a customer outside own book", false)
		return customer.CustomerResponse{}, customer.ErrNotAssignedOwner
	}

	statusChanged := false
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.Company != nil {
		existing.Company = req.Company
	}
	if req.Status != nil && customer.Status(*req.Status) != existing.Status {
		existing.Status = customer.Status(*req.Status)
		statusChanged = true
	}
	if req.Priority != nil {
		existing.Priority = customer.Priority(*req.Priority)
	}
	if req.Tags != nil {
		existing.Tags = req.Tags
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
		s.appendHistory(ctx, caller, existing.ID, customer.HistoryNoteAdded, "note updated")
	}

	if err := s.CustomerRepository.Update(ctx, existing); err != nil {
		return customer.CustomerResponse{}, err
	}

	if statusChanged {
		s.appendHistory(ctx, caller, existing.ID, customer.HistoryStatusChanged, "status changed to "+string(existing.Status))
	} else {
		s.appendHistory(ctx, caller, existing.ID, customer.HistoryUpdated, "customer updated")
	}
	s.record(ctx, caller, audit.ActionUpdate, existing, "updated customer "+existing.Name, true)

	return customer.ToResponse(existing), nil
}

// DeleteCustomer implements customer.CustomerService.
func (s *CustomerServiceImpl) DeleteCustomer(ctx context.Context, caller identity.Principal, id string) error {
	existing, err := s.CustomerRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.CustomerRepository.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, caller, audit.ActionDelete, existing, "deleted customer "+existing.Name, true)
	return nil
}

// TransferCustomer implements customer.CustomerService. Reassigns the book
// entry to another identity and leaves both a care-log line and an audit
// entry naming the reason.
func (s *CustomerServiceImpl) TransferCustomer(ctx context.Context, caller identity.Principal, id string, req customer.TransferCustomerRequest) (customer.CustomerResponse, error) {
	existing, err := s.CustomerRepository.GetByID(ctx, id)
	if err != nil {
		return customer.CustomerResponse{}, err
	}

	if existing.AssignedTo == req.ToUserID {
		return customer.CustomerResponse{}, customer.ErrTransferSameOwner
	}

	target, err := s.identityRepo.GetByID(ctx, req.ToUserID)
	if err != nil {
		if errors.Is(err, identity.ErrIdentityNotFound) {
			return customer.CustomerResponse{}, customer.ErrAssigneeNotFound
		}
		return customer.CustomerResponse{}, err
	}

	if err := s.CustomerRepository.UpdateAssignee(ctx, id, target.ID); err != nil {
		return customer.CustomerResponse{}, err
	}

	s.appendHistory(ctx, caller, id, customer.HistoryTransferred, "transferred to "+target.FullName+": "+req.Reason)
	s.record(ctx, caller, audit.ActionTransfer, existing, "transferred customer "+existing.Name+" to "+target.FullName, true)

	updated, err := s.CustomerRepository.GetByID(ctx, id)
	if err != nil {
		return customer.CustomerResponse{}, err
	}
	return customer.ToResponse(updated), nil
}

// GetHistory implements customer.CustomerService.
func (s *CustomerServiceImpl) GetHistory(ctx context.Context, caller identity.Principal, customerID string) ([]customer.HistoryResponse, error) {
	found, err := s.CustomerRepository.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if ownBookOnly(caller) && found.AssignedTo != caller.ID {
		return nil, customer.ErrNotAssignedOwner
	}

	history, err := s.CustomerRepository.ListHistory(ctx, customerID)
	if err != nil {
		return nil, err
	}

	responses := make([]customer.HistoryResponse, len(history))
	for i, h := range history {
		responses[i] = customer.ToHistoryResponse(h)
	}
	return responses, nil
}

// ExportCustomers implements customer.CustomerService. Exports respect the
// same book scoping as listings and always leave an audit entry.
func (s *CustomerServiceImpl) ExportCustomers(ctx context.Context, caller identity.Principal, filter customer.ListFilter) ([]customer.CustomerResponse, error) {
	if ownBookOnly(caller) {
		filter.AssignedTo = caller.ID
	}
	filter.Limit = 0
	filter.Offset = 0

	customers, _, err := s.CustomerRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]customer.CustomerResponse, len(customers))
	for i, c := range customers {
		responses[i] = customer.ToResponse(c)
	}

	_ = s.recorder.Record(ctx, audit.Entry{
		ID:          uuid.NewString(),
		Actor:       actorOf(caller),
		Action:      audit.ActionExport,
		Entity:      audit.EntityCustomer,
		Description: fmt.Sprintf("exported %d customers", len(responses)),
		Timestamp:   time.Now().UTC(),
		Success:     true,
	})

	return responses, nil
}

func (s *CustomerServiceImpl) appendHistory(ctx context.Context, caller identity.Principal, customerID string, action customer.HistoryAction, description string) {
	_ = s.CustomerRepository.AppendHistory(ctx, customer.History{
		CustomerID:  customerID,
		Action:      action,
		Description: description,
		PerformedBy: caller.ID,
		Timestamp:   time.Now().UTC(),
	})
}

func (s *CustomerServiceImpl) record(ctx context.Context, caller identity.Principal, action audit.Action, subject customer.Customer, description string, success bool) {
	entityID := subject.ID
	entityName := subject.Name
	_ = s.recorder.Record(ctx, audit.Entry{
		ID:          uuid.NewString(),
		Actor:       actorOf(caller),
		Action:      action,
		Entity:      audit.EntityCustomer,
		EntityID:    &entityID,
		EntityName:  &entityName,
		Description: description,
		Timestamp:   time.Now().UTC(),
		Success:     success,
	})
}

func actorOf(caller identity.Principal) audit.Actor {
	return audit.Actor{
		ID:       caller.ID,
		Name:     caller.FullName,
		Role:     string(caller.Role),
		Username: caller.Username,
	}
}
