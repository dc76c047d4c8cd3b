package usecase

import (
	"context"

	"github.com/google/uuid"

	"waypost/internal/domain/entity"
	"waypost/internal/domain/repository"
	"waypost/pkg/errors"
	"waypost/pkg/utils"
)

type WalletUseCase struct {
	walletRepo repository.WalletRepository
}

func NewWalletUseCase(walletRepo repository.WalletRepository) *WalletUseCase {
	return &WalletUseCase{
		walletRepo: walletRepo,
	}
}

func (uc *WalletUseCase) GetWallet(ctx context.Context, userID string) (*entity.Wallet, error) {
	return uc.walletRepo.EnsureWallet(ctx, userID)
}

// Topup credits the wallet directly. Payment rails sit outside this system;
// deposits arrive already cleared.
func (uc *WalletUseCase) Topup(ctx context.Context, userID string, amount float64) (*entity.Wallet, error) {
	if amount <= 0 {
		return nil, errors.BadRequest("Topup amount must be greater than zero", nil)
	}

	if _, err := uc.walletRepo.EnsureWallet(ctx, userID); err != nil {
		return nil, err
	}

	return uc.walletRepo.Credit(ctx, userID, amount, "topup", uuid.New().String(), "Wallet topup")
}

func (uc *WalletUseCase) ListTransactions(ctx context.Context, userID string, pagination utils.PaginationParams) ([]*entity.WalletTransaction, error) {
	return uc.walletRepo.ListTransactions(ctx, userID, pagination)
}
