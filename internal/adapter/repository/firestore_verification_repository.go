package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"waypost/internal/domain/entity"
	"waypost/internal/domain/repository"
	"waypost/pkg/errors"
)

type firestoreVerificationRepository struct {
	client *firestore.Client
}

func NewFirestoreVerificationRepository(client *firestore.Client) repository.VerificationRepository {
	return &firestoreVerificationRepository{
		client: client,
	}
}

func (r *firestoreVerificationRepository) Get(ctx context.Context, userID string) (*entity.UserVerification, error) {
	doc, err := r.client.Collection("verifications").Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Verification", err)
		}
		return nil, errors.Internal("Failed to get verification", err)
	}

	var verification entity.UserVerification
	if err := doc.DataTo(&verification); err != nil {
		return nil, errors.Internal("Failed to parse verification data", err)
	}

	return &verification, nil
}

func (r *firestoreVerificationRepository) Put(ctx context.Context, verification *entity.UserVerification) error {
	_, err := r.client.Collection("verifications").Doc(verification.UserID).Set(ctx, verification)
	if err != nil {
		return errors.Internal("Failed to save verification", err)
	}
	return nil
}
