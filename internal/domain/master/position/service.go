package position

import (
	"context"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

type PositionService interface {
	GetPosition(ctx context.Context, id string) (PositionResponse, error)
	ListPositions(ctx context.Context) ([]PositionResponse, error)
	CreatePosition(ctx context.Context, caller identity.Principal, req CreatePositionRequest) (PositionResponse, error)
	UpdatePosition(ctx context.Context, caller identity.Principal, req UpdatePositionRequest) (PositionResponse, error)
	DeletePosition(ctx context.Context, caller identity.Principal, id string) error
}
