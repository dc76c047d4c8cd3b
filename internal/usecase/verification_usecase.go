package usecase

import (
	"context"
	"time"

	"waypost/internal/domain/entity"
	"waypost/internal/domain/repository"
	"waypost/internal/domain/service"
	"waypost/pkg/errors"
	"waypost/pkg/logger"
)

type VerificationUseCase struct {
	verificationRepo repository.VerificationRepository
	verifier         AttestationVerifier
	now              func() time.Time
}

func NewVerificationUseCase(verificationRepo repository.VerificationRepository, verifier AttestationVerifier) *VerificationUseCase {
	return &VerificationUseCase{
		verificationRepo: verificationRepo,
		verifier:         verifier,
		now:              time.Now,
	}
}

func (uc *VerificationUseCase) SetNowFunc(now func() time.Time) {
	if now == nil {
		uc.now = time.Now
		return
	}
	uc.now = now
}

// Verify relays the attestation to the external verifier and, on success,
// records the disclosed identity for the user. Re-verifying overwrites the
// previous record.
func (uc *VerificationUseCase) Verify(ctx context.Context, userID string, req service.AttestationRequest) (*entity.UserVerification, error) {
	result, err := uc.verifier.Verify(ctx, req)
	if err != nil {
		return nil, errors.BadRequest("Invalid verification data", err)
	}

	if !result.Valid {
		return nil, errors.New("VERIFICATION_FAILED", "Identity attestation was rejected", 400, nil)
	}

	verification := &entity.UserVerification{
		UserID:        userID,
		IsVerified:    true,
		FullName:      result.FullName,
		AttestationID: result.AttestationID,
		Nationality:   result.Nationality,
		DocumentType:  result.DocumentType,
		VerifiedAt:    uc.now(),
	}

	if err := uc.verificationRepo.Put(ctx, verification); err != nil {
		return nil, err
	}

	logger.Info("User verified: user=%s attestation=%s", userID, result.AttestationID)
	return verification, nil
}

// Status returns the user's verification record, or an unverified stub when
// none exists.
func (uc *VerificationUseCase) Status(ctx context.Context, userID string) (*entity.UserVerification, error) {
	verification, err := uc.verificationRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return &entity.UserVerification{UserID: userID, IsVerified: false}, nil
		}
		return nil, err
	}
	return verification, nil
}

func (uc *VerificationUseCase) IsVerified(ctx context.Context, userID string) (bool, error) {
	verification, err := uc.Status(ctx, userID)
	if err != nil {
		return false, err
	}
	return verification.IsVerified, nil
}
