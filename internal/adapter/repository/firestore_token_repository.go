package repository

import (
	"context"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"waypost/internal/domain/entity"
	"waypost/internal/domain/repository"
	"waypost/pkg/errors"
)

type firestoreTokenRepository struct {
	client *firestore.Client
}

func NewFirestoreTokenRepository(client *firestore.Client) repository.TokenRepository {
	return &firestoreTokenRepository{
		client: client,
	}
}

func (r *firestoreTokenRepository) GetByID(ctx context.Context, tokenID int64) (*entity.ServiceToken, error) {
	doc, err := r.client.Collection("tokens").Doc(strconv.FormatInt(tokenID, 10)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Token", err)
		}
		return nil, errors.Internal("Failed to get token", err)
	}

	var token entity.ServiceToken
	if err := doc.DataTo(&token); err != nil {
		return nil, errors.Internal("Failed to parse token data", err)
	}

	return &token, nil
}
