package repository

import (
	"context"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"waypost/internal/domain/entity"
	"waypost/internal/domain/repository"
	"waypost/pkg/errors"
)

type firestoreServiceRepository struct {
	client *firestore.Client
}

func NewFirestoreServiceRepository(client *firestore.Client) repository.ServiceRepository {
	return &firestoreServiceRepository{
		client: client,
	}
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (r *firestoreServiceRepository) serviceRef(id int64) *firestore.DocumentRef {
	return r.client.Collection("services").Doc(docID(id))
}

func (r *firestoreServiceRepository) escrowRef(id int64) *firestore.DocumentRef {
	return r.client.Collection("escrows").Doc(docID(id))
}

func (r *firestoreServiceRepository) tokenRef(id int64) *firestore.DocumentRef {
	return r.client.Collection("tokens").Doc(docID(id))
}

func (r *firestoreServiceRepository) walletRef(userID string) *firestore.DocumentRef {
	return r.client.Collection("wallets").Doc(userID)
}

func (r *firestoreServiceRepository) indexRef(userID string) *firestore.DocumentRef {
	return r.client.Collection("service_indices").Doc(userID)
}

type serviceCounter struct {
	Next int64 `firestore:"next"`
}

// Create allocates the next id from the counter document and commits the
// service, its held escrow, the creator's wallet debit and the minted token
// in one transaction. Firestore transactions retry on contention, so two
// concurrent creators never observe the same id.
func (r *firestoreServiceRepository) Create(ctx context.Context, service *entity.Service) (*entity.Service, error) {
	now := time.Now()
	txnID := uuid.New().String()

	var created entity.Service

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		counterRef := r.client.Collection("counters").Doc("services")
		next := int64(1)
		counterDoc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return err
			}
		} else {
			var counter serviceCounter
			if err := counterDoc.DataTo(&counter); err != nil {
				return err
			}
			next = counter.Next
		}

		walletRef := r.walletRef(service.CreatorID)
		walletDoc, err := tx.Get(walletRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return entity.ErrInsufficientBalance
			}
			return err
		}
		var wallet entity.Wallet
		if err := walletDoc.DataTo(&wallet); err != nil {
			return err
		}
		if wallet.Balance < service.Reward {
			return entity.ErrInsufficientBalance
		}

		created = *service
		created.ID = next
		created.Status = entity.StatusActive
		created.CreatedAt = now

		previousBalance := wallet.Balance
		wallet.Balance -= service.Reward
		wallet.UpdatedAt = now
		wallet.LastTxnAt = now

		if err := tx.Set(counterRef, serviceCounter{Next: next + 1}); err != nil {
			return err
		}
		if err := tx.Set(r.serviceRef(next), &created); err != nil {
			return err
		}
		if err := tx.Set(r.escrowRef(next), &entity.EscrowEntry{
			ServiceID: next,
			PayerID:   service.CreatorID,
			Amount:    service.Reward,
			Status:    entity.EscrowStatusHeld,
			HeldAt:    now,
		}); err != nil {
			return err
		}
		if err := tx.Set(r.tokenRef(next), &entity.ServiceToken{
			TokenID:  next,
			OwnerID:  service.CreatorID,
			MintedAt: now,
		}); err != nil {
			return err
		}
		if err := tx.Set(walletRef, &wallet); err != nil {
			return err
		}
		if err := tx.Set(r.client.Collection("wallet_transactions").Doc(txnID), &entity.WalletTransaction{
			ID:              txnID,
			WalletID:        wallet.ID,
			UserID:          service.CreatorID,
			Type:            "deposit",
			Amount:          -service.Reward,
			PreviousBalance: previousBalance,
			NewBalance:      wallet.Balance,
			Reference:       docID(next),
			Description:     "Escrow deposit for service " + docID(next),
			CreatedAt:       now,
		}); err != nil {
			return err
		}
		return tx.Set(r.indexRef(service.CreatorID), map[string]interface{}{
			"userId":            service.CreatorID,
			"createdServiceIds": firestore.ArrayUnion(next),
		}, firestore.MergeAll)
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *firestoreServiceRepository) GetByID(ctx context.Context, id int64) (*entity.Service, error) {
	doc, err := r.serviceRef(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Service", err)
		}
		return nil, errors.Internal("Failed to get service", err)
	}

	var service entity.Service
	if err := doc.DataTo(&service); err != nil {
		return nil, errors.Internal("Failed to parse service data", err)
	}

	return &service, nil
}

func (r *firestoreServiceRepository) list(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.Service, int64, error) {
	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count services", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	services := []*entity.Service{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate services", err)
		}

		var service entity.Service
		if err := doc.DataTo(&service); err != nil {
			return nil, 0, errors.Internal("Failed to parse service data", err)
		}
		services = append(services, &service)
	}

	return services, total, nil
}

func (r *firestoreServiceRepository) ListActive(ctx context.Context, limit, offset int) ([]*entity.Service, int64, error) {
	query := r.client.Collection("services").
		Where("status", "==", string(entity.StatusActive)).
		OrderBy("id", firestore.Asc)
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreServiceRepository) ListByCreator(ctx context.Context, userID string, limit, offset int) ([]*entity.Service, int64, error) {
	query := r.client.Collection("services").
		Where("creatorId", "==", userID).
		OrderBy("id", firestore.Asc)
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreServiceRepository) ListByAcceptor(ctx context.Context, userID string, limit, offset int) ([]*entity.Service, int64, error) {
	query := r.client.Collection("services").
		Where("acceptedBy", "==", userID).
		OrderBy("id", firestore.Asc)
	return r.list(ctx, query, limit, offset)
}

// Accept re-reads the service inside the transaction and applies the entity
// guard, so the first committed acceptor wins and later racers fail with
// entity.ErrServiceNotActive, their writes never applied.
func (r *firestoreServiceRepository) Accept(ctx context.Context, id int64, acceptorID string, now time.Time) (*entity.Service, error) {
	var accepted entity.Service

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(r.serviceRef(id))
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Service", err)
			}
			return err
		}
		var service entity.Service
		if err := doc.DataTo(&service); err != nil {
			return err
		}

		if err := service.Accept(acceptorID, now); err != nil {
			return err
		}

		if err := tx.Set(r.serviceRef(id), &service); err != nil {
			return err
		}
		if err := tx.Set(r.indexRef(acceptorID), map[string]interface{}{
			"userId":             acceptorID,
			"acceptedServiceIds": firestore.ArrayUnion(id),
		}, firestore.MergeAll); err != nil {
			return err
		}
		accepted = service
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &accepted, nil
}

// Complete settles the escrow into the acceptor's wallet and burns the token
// in the same transaction as the status change.
func (r *firestoreServiceRepository) Complete(ctx context.Context, id int64, callerID string, now time.Time) (*entity.Service, error) {
	txnID := uuid.New().String()

	var completed entity.Service

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		serviceDoc, err := tx.Get(r.serviceRef(id))
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Service", err)
			}
			return err
		}
		var service entity.Service
		if err := serviceDoc.DataTo(&service); err != nil {
			return err
		}

		// Guard before the settlement reads: for a non-accepted service
		// AcceptedBy is empty and the wallet ref below would be malformed.
		if err := service.Complete(callerID, now); err != nil {
			return err
		}

		escrowDoc, err := tx.Get(r.escrowRef(id))
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return entity.ErrNoEscrow
			}
			return err
		}
		var escrow entity.EscrowEntry
		if err := escrowDoc.DataTo(&escrow); err != nil {
			return err
		}

		// The acceptor may not have a wallet yet; settlement creates one.
		wallet := entity.Wallet{
			ID:        service.AcceptedBy,
			UserID:    service.AcceptedBy,
			Currency:  "ETH",
			Status:    "active",
			CreatedAt: now,
		}
		walletDoc, err := tx.Get(r.walletRef(service.AcceptedBy))
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return err
			}
		} else {
			if err := walletDoc.DataTo(&wallet); err != nil {
				return err
			}
		}

		tokenDoc, err := tx.Get(r.tokenRef(id))
		var token entity.ServiceToken
		haveToken := false
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return err
			}
		} else {
			if err := tokenDoc.DataTo(&token); err != nil {
				return err
			}
			haveToken = true
		}

		if err := escrow.Release(service.AcceptedBy, now); err != nil {
			return err
		}

		previousBalance := wallet.Balance
		wallet.Balance += escrow.Amount
		wallet.UpdatedAt = now
		wallet.LastTxnAt = now

		if err := tx.Set(r.serviceRef(id), &service); err != nil {
			return err
		}
		if err := tx.Set(r.escrowRef(id), &escrow); err != nil {
			return err
		}
		if err := tx.Set(r.walletRef(service.AcceptedBy), &wallet); err != nil {
			return err
		}
		if err := tx.Set(r.client.Collection("wallet_transactions").Doc(txnID), &entity.WalletTransaction{
			ID:              txnID,
			WalletID:        wallet.ID,
			UserID:          service.AcceptedBy,
			Type:            "release",
			Amount:          escrow.Amount,
			PreviousBalance: previousBalance,
			NewBalance:      wallet.Balance,
			Reference:       docID(id),
			Description:     "Escrow release for service " + docID(id),
			CreatedAt:       now,
		}); err != nil {
			return err
		}
		if haveToken {
			if err := token.Burn(now); err != nil {
				return err
			}
			if err := tx.Set(r.tokenRef(id), &token); err != nil {
				return err
			}
		}
		completed = service
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &completed, nil
}

// Cancel refunds the escrow to the creator in the same transaction as the
// status change. The token is not burned: it records a service that existed
// and was withdrawn.
func (r *firestoreServiceRepository) Cancel(ctx context.Context, id int64, callerID string, now time.Time) (*entity.Service, error) {
	txnID := uuid.New().String()

	var cancelled entity.Service

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		serviceDoc, err := tx.Get(r.serviceRef(id))
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Service", err)
			}
			return err
		}
		var service entity.Service
		if err := serviceDoc.DataTo(&service); err != nil {
			return err
		}

		if err := service.Cancel(callerID, now); err != nil {
			return err
		}

		escrowDoc, err := tx.Get(r.escrowRef(id))
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return entity.ErrNoEscrow
			}
			return err
		}
		var escrow entity.EscrowEntry
		if err := escrowDoc.DataTo(&escrow); err != nil {
			return err
		}

		walletDoc, err := tx.Get(r.walletRef(service.CreatorID))
		if err != nil {
			return err
		}
		var wallet entity.Wallet
		if err := walletDoc.DataTo(&wallet); err != nil {
			return err
		}

		if err := escrow.Refund(now); err != nil {
			return err
		}

		previousBalance := wallet.Balance
		wallet.Balance += escrow.Amount
		wallet.UpdatedAt = now
		wallet.LastTxnAt = now

		if err := tx.Set(r.serviceRef(id), &service); err != nil {
			return err
		}
		if err := tx.Set(r.escrowRef(id), &escrow); err != nil {
			return err
		}
		if err := tx.Set(r.walletRef(service.CreatorID), &wallet); err != nil {
			return err
		}
		if err := tx.Set(r.client.Collection("wallet_transactions").Doc(txnID), &entity.WalletTransaction{
			ID:              txnID,
			WalletID:        wallet.ID,
			UserID:          service.CreatorID,
			Type:            "refund",
			Amount:          escrow.Amount,
			PreviousBalance: previousBalance,
			NewBalance:      wallet.Balance,
			Reference:       docID(id),
			Description:     "Escrow refund for service " + docID(id),
			CreatedAt:       now,
		}); err != nil {
			return err
		}
		cancelled = service
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &cancelled, nil
}
