package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"waypost/internal/domain/entity"
	"waypost/internal/domain/repository"
	"waypost/pkg/errors"
	"waypost/pkg/utils"
)

type firestoreWalletRepository struct {
	client *firestore.Client
}

func NewFirestoreWalletRepository(client *firestore.Client) repository.WalletRepository {
	return &firestoreWalletRepository{
		client: client,
	}
}

func (r *firestoreWalletRepository) EnsureWallet(ctx context.Context, userID string) (*entity.Wallet, error) {
	ref := r.client.Collection("wallets").Doc(userID)

	var wallet entity.Wallet
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err == nil {
			return doc.DataTo(&wallet)
		}
		if status.Code(err) != codes.NotFound {
			return err
		}

		now := time.Now()
		wallet = entity.Wallet{
			ID:        userID,
			UserID:    userID,
			Currency:  "ETH",
			Status:    "active",
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Set(ref, &wallet)
	})
	if err != nil {
		return nil, errors.Internal("Failed to ensure wallet", err)
	}

	return &wallet, nil
}

func (r *firestoreWalletRepository) GetByUserID(ctx context.Context, userID string) (*entity.Wallet, error) {
	doc, err := r.client.Collection("wallets").Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Wallet", err)
		}
		return nil, errors.Internal("Failed to get wallet", err)
	}

	var wallet entity.Wallet
	if err := doc.DataTo(&wallet); err != nil {
		return nil, errors.Internal("Failed to parse wallet data", err)
	}

	return &wallet, nil
}

func (r *firestoreWalletRepository) Credit(ctx context.Context, userID string, amount float64, txnType, reference, description string) (*entity.Wallet, error) {
	ref := r.client.Collection("wallets").Doc(userID)
	txnID := uuid.New().String()

	var wallet entity.Wallet
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Wallet", err)
			}
			return err
		}
		if err := doc.DataTo(&wallet); err != nil {
			return err
		}

		now := time.Now()
		previousBalance := wallet.Balance
		wallet.Balance += amount
		if wallet.Balance < 0 {
			return entity.ErrInsufficientBalance
		}
		wallet.UpdatedAt = now
		wallet.LastTxnAt = now

		if err := tx.Set(ref, &wallet); err != nil {
			return err
		}
		return tx.Set(r.client.Collection("wallet_transactions").Doc(txnID), &entity.WalletTransaction{
			ID:              txnID,
			WalletID:        wallet.ID,
			UserID:          userID,
			Type:            txnType,
			Amount:          amount,
			PreviousBalance: previousBalance,
			NewBalance:      wallet.Balance,
			Reference:       reference,
			Description:     description,
			CreatedAt:       now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &wallet, nil
}

func (r *firestoreWalletRepository) ListTransactions(ctx context.Context, userID string, pagination utils.PaginationParams) ([]*entity.WalletTransaction, error) {
	// Plain where without order to avoid a composite index requirement
	query := r.client.Collection("wallet_transactions").Where("userId", "==", userID)

	if pagination.Offset > 0 {
		query = query.Offset(pagination.Offset)
	}
	query = query.Limit(pagination.PageSize)

	iter := query.Documents(ctx)
	defer iter.Stop()

	transactions := []*entity.WalletTransaction{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate wallet transactions", err)
		}

		var txn entity.WalletTransaction
		if err := doc.DataTo(&txn); err != nil {
			return nil, errors.Internal("Failed to parse wallet transaction", err)
		}
		transactions = append(transactions, &txn)
	}

	return transactions, nil
}
