package customer

import "errors"

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCustomerCodeExists = errors.New("customer code already exists")
	ErrNotAssignedOwner   = errors.New("customer is not assigned to this user")
	ErrTransferSameOwner  = errors.New("customer is already assigned to the target user")
	ErrAssigneeNotFound   = errors.New("transfer target user not found")
)
