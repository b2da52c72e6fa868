package http

import (
	"net/http"
	"strconv"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/response"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type AuditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &AuditHandlerImpl{auditService: auditService}
}

// List implements AuditHandler. All populated filters combine with AND;
// entries come back newest first.
func (h *AuditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)
	filter := audit.ListFilter{
		Search: r.URL.Query().Get("search"),
		Action: audit.Action(r.URL.Query().Get("action")),
		Entity: audit.EntityKind(r.URL.Query().Get("entity")),
		Limit:  limit,
		Offset: offset,
	}

	if raw := r.URL.Query().Get("success"); raw != "" {
		success, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "success must be true or false", nil)
			return
		}
		filter.Success = &success
	}

	list, err := h.auditService.ListEntries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Entries, response.NewMeta(page, limit, list.Total))
}
