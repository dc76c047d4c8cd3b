package repository

import (
	"context"

	"waypost/internal/domain/entity"
	"waypost/pkg/utils"
)

type WalletRepository interface {
	// EnsureWallet returns the user's wallet, creating a zero-balance one
	// if none exists yet.
	EnsureWallet(ctx context.Context, userID string) (*entity.Wallet, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Wallet, error)

	// Credit adjusts the balance by amount (negative for a debit) inside a
	// storage transaction and records a wallet transaction log entry.
	// A debit below zero fails with entity.ErrInsufficientBalance.
	Credit(ctx context.Context, userID string, amount float64, txnType, reference, description string) (*entity.Wallet, error)

	ListTransactions(ctx context.Context, userID string, pagination utils.PaginationParams) ([]*entity.WalletTransaction, error)
}
