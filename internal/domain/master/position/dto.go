package position

import (
	"time"

	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

type Position struct {
	ID          string
	Code        string
	Name        string
	Level       int
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreatePositionRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Description string `json:"description"`
}

func (r *CreatePositionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if r.Level < 1 || r.Level > 10 {
		errs = append(errs, validator.ValidationError{Field: "level", Message: "level must be between 1 and 10"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePositionRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name"`
	Level       *int    `json:"level"`
	Description *string `json:"description"`
}

func (r *UpdatePositionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.Level != nil && (*r.Level < 1 || *r.Level > 10) {
		errs = append(errs, validator.ValidationError{Field: "level", Message: "level must be between 1 and 10"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PositionResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Description string `json:"description"`
}

func ToResponse(p Position) PositionResponse {
	return PositionResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Level:       p.Level,
		Description: p.Description,
	}
}
