package audit

import (
	"context"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
)

type AuditServiceImpl struct {
	repo audit.Repository
}

func NewAuditService(repo audit.Repository) audit.AuditService {
	return &AuditServiceImpl{repo: repo}
}

// ListEntries implements audit.AuditService. Entries come back newest first;
// all filter fields combine with AND.
func (s *AuditServiceImpl) ListEntries(ctx context.Context, filter audit.ListFilter) (audit.ListResponse, error) {
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return audit.ListResponse{}, err
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	return audit.ListResponse{Entries: entries, Total: total}, nil
}
