package repository

import (
	"context"

	"waypost/internal/domain/entity"
)

// EscrowRepository is read-only: deposits and settlements happen inside the
// service lifecycle transactions.
type EscrowRepository interface {
	GetByServiceID(ctx context.Context, serviceID int64) (*entity.EscrowEntry, error)
}
