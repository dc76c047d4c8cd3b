package repository

import (
	"context"

	"waypost/internal/domain/entity"
)

// TokenRepository is read-only: minting and burning happen inside the
// service lifecycle transactions.
type TokenRepository interface {
	GetByID(ctx context.Context, tokenID int64) (*entity.ServiceToken, error)
}
