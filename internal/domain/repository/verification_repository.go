package repository

import (
	"context"

	"waypost/internal/domain/entity"
)

type VerificationRepository interface {
	Get(ctx context.Context, userID string) (*entity.UserVerification, error)
	Put(ctx context.Context, verification *entity.UserVerification) error
}
