package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/auth"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/customer"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/middleware"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/response"
)

type CustomerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Transfer(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type CustomerHandlerImpl struct {
	customerService customer.CustomerService
}

func NewCustomerHandler(customerService customer.CustomerService) CustomerHandler {
	return &CustomerHandlerImpl{customerService: customerService}
}

// List implements CustomerHandler. Callers limited to their own book get the
// narrowed listing from the service regardless of the query parameters.
func (h *CustomerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNotAuthenticated)
		return
	}

	page, limit, offset := parsePagination(r)
	filter := customer.ListFilter{
		AssignedTo: r.URL.Query().Get("assigned_to"),
		Search:     r.URL.Query().Get("search"),
		Status:     customer.Status(r.URL.Query().Get("status")),
		Limit:      limit,
		Offset:     offset,
	}

	list, err := h.customerService.ListCustomers(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Customers, response.NewMeta(page, limit, list.Total))
}

// Get implements CustomerHandler.
func (h *CustomerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNotAuthenticated)
		return
	}

	found, err := h.customerService.GetCustomer(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Create implements CustomerHandler.
func (h *CustomerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNotAuthenticated)
		return
	}

	var createReq customer.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create customer decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.customerService.CreateCustomer(r.Context(), caller, createReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Customer created successfully", created)
}

// Update implements CustomerHandler.
func (h *CustomerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNotAuthenticated)
		return
	}

	var updateReq customer.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update customer decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.customerService.UpdateCustomer(r.Context(), caller, chi.URLParam(r, "id"), updateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Customer updated successfully", updated)
}

// Delete implements CustomerHandler.
func (h *CustomerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNotAuthenticated)
		return
	}

	if err := h.customerService.DeleteCustomer(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Customer deleted successfully", nil)
}

// Transfer implements CustomerHandler.
func (h *CustomerHandlerImpl) Transfer(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNotAuthenticated)
		return
	}

	var transferReq customer.TransferCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&transferReq); err != nil {
		slog.Error("Transfer customer decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := transferReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	transferred, err := h.customerService.TransferCustomer(r.Context(), caller, chi.URLParam(r, "id"), transferReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Customer transferred successfully", transferred)
}

// History implements CustomerHandler.
func (h *CustomerHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNotAuthenticated)
		return
	}

	history, err := h.customerService.GetHistory(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

// Export implements CustomerHandler. The export ignores pagination and
// returns the caller's full visible book in one response.
func (h *CustomerHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNotAuthenticated)
		return
	}

	filter := customer.ListFilter{
		AssignedTo: r.URL.Query().Get("assigned_to"),
		Search:     r.URL.Query().Get("search"),
		Status:     customer.Status(r.URL.Query().Get("status")),
	}

	exported, err := h.customerService.ExportCustomers(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, exported)
}
