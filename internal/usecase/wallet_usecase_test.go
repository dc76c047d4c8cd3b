package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waypost/internal/domain/entity"
	"waypost/pkg/errors"
	"waypost/pkg/utils"
)

type memWalletRepo struct {
	wallets map[string]*entity.Wallet
	txns    []*entity.WalletTransaction
}

func newMemWalletRepo() *memWalletRepo {
	return &memWalletRepo{wallets: make(map[string]*entity.Wallet)}
}

func (m *memWalletRepo) EnsureWallet(ctx context.Context, userID string) (*entity.Wallet, error) {
	if wallet, ok := m.wallets[userID]; ok {
		out := *wallet
		return &out, nil
	}
	wallet := &entity.Wallet{ID: userID, UserID: userID, Currency: "ETH", Status: "active"}
	m.wallets[userID] = wallet
	out := *wallet
	return &out, nil
}

func (m *memWalletRepo) GetByUserID(ctx context.Context, userID string) (*entity.Wallet, error) {
	wallet, ok := m.wallets[userID]
	if !ok {
		return nil, errors.NotFound("Wallet", nil)
	}
	out := *wallet
	return &out, nil
}

func (m *memWalletRepo) Credit(ctx context.Context, userID string, amount float64, txnType, reference, description string) (*entity.Wallet, error) {
	wallet, ok := m.wallets[userID]
	if !ok {
		return nil, errors.NotFound("Wallet", nil)
	}
	if wallet.Balance+amount < 0 {
		return nil, entity.ErrInsufficientBalance
	}
	previous := wallet.Balance
	wallet.Balance += amount
	m.txns = append(m.txns, &entity.WalletTransaction{
		WalletID:        wallet.ID,
		UserID:          userID,
		Type:            txnType,
		Amount:          amount,
		PreviousBalance: previous,
		NewBalance:      wallet.Balance,
		Reference:       reference,
		Description:     description,
	})
	out := *wallet
	return &out, nil
}

func (m *memWalletRepo) ListTransactions(ctx context.Context, userID string, pagination utils.PaginationParams) ([]*entity.WalletTransaction, error) {
	var out []*entity.WalletTransaction
	for _, txn := range m.txns {
		if txn.UserID == userID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func TestGetWalletCreatesOnFirstUse(t *testing.T) {
	uc := NewWalletUseCase(newMemWalletRepo())

	wallet, err := uc.GetWallet(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", wallet.UserID)
	assert.Equal(t, 0.0, wallet.Balance)
	assert.Equal(t, "ETH", wallet.Currency)
}

func TestTopup(t *testing.T) {
	repo := newMemWalletRepo()
	uc := NewWalletUseCase(repo)

	wallet, err := uc.Topup(context.Background(), "user-1", 2.5)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, wallet.Balance, 1e-9)

	txns, err := uc.ListTransactions(context.Background(), "user-1", utils.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "topup", txns[0].Type)
	assert.InDelta(t, 2.5, txns[0].Amount, 1e-9)
}

func TestTopupRejectsNonPositiveAmounts(t *testing.T) {
	uc := NewWalletUseCase(newMemWalletRepo())

	for _, amount := range []float64{0, -1} {
		_, err := uc.Topup(context.Background(), "user-1", amount)
		assertAppError(t, err, "BAD_REQUEST")
	}
}
