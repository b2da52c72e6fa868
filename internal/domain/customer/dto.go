package customer

import (
	"time"

	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

type CreateCustomerRequest struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Company  *string  `json:"company"`
	Status   string   `json:"status"`
	Priority string   `json:"priority"`
	Tags     []string `json:"tags"`
	Notes    *string  `json:"notes"`
}

func (r *CreateCustomerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
	}
	if !validator.IsEmpty(r.Email) && !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if r.Status != "" && !validStatus(Status(r.Status)) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of lead, prospect, customer, inactive"})
	}
	if r.Priority != "" && !validPriority(Priority(r.Priority)) {
		errs = append(errs, validator.ValidationError{Field: "priority", Message: "priority must be one of low, medium, high, vip"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateCustomerRequest struct {
	Name     *string  `json:"name"`
	Email    *string  `json:"email"`
	Phone    *string  `json:"phone"`
	Company  *string  `json:"company"`
	Status   *string  `json:"status"`
	Priority *string  `json:"priority"`
	Tags     []string `json:"tags"`
	Notes    *string  `json:"notes"`
}

func (r *UpdateCustomerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if r.Status != nil && !validStatus(Status(*r.Status)) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of lead, prospect, customer, inactive"})
	}
	if r.Priority != nil && !validPriority(Priority(*r.Priority)) {
		errs = append(errs, validator.ValidationError{Field: "priority", Message: "priority must be one of low, medium, high, vip"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TransferCustomerRequest struct {
	ToUserID string `json:"to_user_id"`
	Reason   string `json:"reason"`
}

func (r *TransferCustomerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ToUserID) {
		errs = append(errs, validator.ValidationError{Field: "to_user_id", Message: "to_user_id is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	// AssignedTo narrows the listing to one owner. The service fills it in
	// for callers that only hold crm:view_own_customers.
	AssignedTo string
	Search     string
	Status     Status
	Limit      int
	Offset     int
}

type CustomerResponse struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Company        *string   `json:"company,omitempty"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	AssignedTo     string    `json:"assigned_to"`
	AssignedToName *string   `json:"assigned_to_name,omitempty"`
	Tags           []string  `json:"tags"`
	Notes          *string   `json:"notes,omitempty"`
	TotalValue     int64     `json:"total_value"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToResponse(c Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		Code:           c.Code,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Company:        c.Company,
		Status:         string(c.Status),
		Priority:       string(c.Priority),
		AssignedTo:     c.AssignedTo,
		AssignedToName: c.AssignedToName,
		Tags:           c.Tags,
		Notes:          c.Notes,
		TotalValue:     c.TotalValue,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type HistoryResponse struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	Action          string    `json:"action"`
	Description     string    `json:"description"`
	PerformedBy     string    `json:"performed_by"`
	PerformedByName *string   `json:"performed_by_name,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

func ToHistoryResponse(h History) HistoryResponse {
	return HistoryResponse{
		ID:              h.ID,
		CustomerID:      h.CustomerID,
		Action:          string(h.Action),
		Description:     h.Description,
		PerformedBy:     h.PerformedBy,
		PerformedByName: h.PerformedByName,
		Timestamp:       h.Timestamp,
	}
}

func validStatus(s Status) bool {
	switch s {
	case StatusLead, StatusProspect, StatusCustomer, StatusInactive:
		return true
	}
	return false
}

func validPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityVIP:
		return true
	}
	return false
}
