package repository

import (
	"context"
	"time"

	"waypost/internal/domain/entity"
)

// ServiceRepository owns the service registry and lifecycle persistence.
// Every mutating method commits as one indivisible unit: the status change,
// the escrow movement, the wallet balances and the token state either all
// apply or none do. Guard failures surface as the entity transition errors.
type ServiceRepository interface {
	// Create allocates the next sequential id, debits the creator's wallet
	// by the reward, writes the escrow entry as held, mints the service
	// token and appends the id to the creator's index.
	Create(ctx context.Context, service *entity.Service) (*entity.Service, error)

	GetByID(ctx context.Context, id int64) (*entity.Service, error)

	// ListActive returns active services in insertion (id) order. Ranking by
	// distance is a client concern.
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Service, int64, error)
	ListByCreator(ctx context.Context, userID string, limit, offset int) ([]*entity.Service, int64, error)
	ListByAcceptor(ctx context.Context, userID string, limit, offset int) ([]*entity.Service, int64, error)

	// Accept transitions active -> accepted and appends the id to the
	// acceptor's index. Racing acceptors resolve first-committed-wins: the
	// loser observes the committed accepted state and fails the guard.
	Accept(ctx context.Context, id int64, acceptorID string, now time.Time) (*entity.Service, error)

	// Complete transitions accepted -> completed, releases the escrow to the
	// acceptor's wallet and burns the token.
	Complete(ctx context.Context, id int64, callerID string, now time.Time) (*entity.Service, error)

	// Cancel transitions active -> cancelled and refunds the escrow to the
	// creator's wallet.
	Cancel(ctx context.Context, id int64, callerID string, now time.Time) (*entity.Service, error)
}
