package response

import (
	"errors"
	"net/http"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/attendance"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/auth"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/customer"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/master/department"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/master/position"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenMissing):
		Unauthorized(w, "Refresh token is missing")
	case errors.Is(err, auth.ErrNotAuthenticated):
		Unauthorized(w, "Not authenticated")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, auth.ErrEmailNotRegistered):
		NotFound(w, "Email is not registered")

	// Identity domain errors
	case errors.Is(err, identity.ErrIdentityNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, identity.ErrUsernameExists):
		Conflict(w, "Username already registered")
	case errors.Is(err, identity.ErrUnknownRole):
		BadRequest(w, "Unknown role", nil)
	case errors.Is(err, identity.ErrUnknownPermission):
		BadRequest(w, "Unknown permission", nil)
	case errors.Is(err, identity.ErrPermissionsRequired):
		BadRequest(w, "Permissions list is required", nil)

	// Customer domain errors
	case errors.Is(err, customer.ErrCustomerNotFound):
		NotFound(w, "Customer not found")
	case errors.Is(err, customer.ErrCustomerCodeExists):
		Conflict(w, "Customer code already exists")
	case errors.Is(err, customer.ErrNotAssignedOwner):
		Forbidden(w, "Customer is not assigned to you")
	case errors.Is(err, customer.ErrTransferSameOwner):
		Conflict(w, "Customer is already assigned to the target user")
	case errors.Is(err, customer.ErrAssigneeNotFound):
		NotFound(w, "Transfer target user not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrSalaryBelowMinimum):
		BadRequest(w, "Base salary is below the company minimum", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Not checked in yet")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrAlreadyProcessed):
		Conflict(w, "Attendance record already processed")
	case errors.Is(err, attendance.ErrViewScopeNotGranted):
		Forbidden(w, "No attendance view scope granted")

	// Master data errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentCodeExists):
		Conflict(w, "Department code already exists")
	case errors.Is(err, department.ErrDepartmentNotEmpty):
		Conflict(w, "Department still has employees")
	case errors.Is(err, position.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, position.ErrPositionCodeExists):
		Conflict(w, "Position code already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
