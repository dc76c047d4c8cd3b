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

type firestoreEscrowRepository struct {
	client *firestore.Client
}

func NewFirestoreEscrowRepository(client *firestore.Client) repository.EscrowRepository {
	return &firestoreEscrowRepository{
		client: client,
	}
}

func (r *firestoreEscrowRepository) GetByServiceID(ctx context.Context, serviceID int64) (*entity.EscrowEntry, error) {
	doc, err := r.client.Collection("escrows").Doc(strconv.FormatInt(serviceID, 10)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Escrow", err)
		}
		return nil, errors.Internal("Failed to get escrow", err)
	}

	var escrow entity.EscrowEntry
	if err := doc.DataTo(&escrow); err != nil {
		return nil, errors.Internal("Failed to parse escrow data", err)
	}

	return &escrow, nil
}
