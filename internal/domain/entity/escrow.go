package entity

import (
	"errors"
	"time"
)

const (
	EscrowStatusHeld     = "held"
	EscrowStatusReleased = "released"
	EscrowStatusRefunded = "refunded"
)

// ErrNoEscrow means a release or refund was attempted against an entry that
// is missing or already settled. Unreachable through the lifecycle guards.
var ErrNoEscrow = errors.New("no outstanding escrow for service")

// EscrowEntry holds one service's reward between creation and settlement.
// Entries are independent of one another; there is no pooling.
type EscrowEntry struct {
	ServiceID   int64      `json:"service_id" firestore:"serviceId"`
	PayerID     string     `json:"payer_id" firestore:"payerId"`
	Amount      float64    `json:"amount" firestore:"amount"`
	Status      string     `json:"status" firestore:"status"`
	RecipientID string     `json:"recipient_id,omitempty" firestore:"recipientId,omitempty"`
	HeldAt      time.Time  `json:"held_at" firestore:"heldAt"`
	ReleasedAt  *time.Time `json:"released_at,omitempty" firestore:"releasedAt,omitempty"`
	RefundedAt  *time.Time `json:"refunded_at,omitempty" firestore:"refundedAt,omitempty"`
}

// Release settles the entry in favour of the acceptor. Exactly-once: a
// settled entry cannot be released again.
func (e *EscrowEntry) Release(recipientID string, now time.Time) error {
	if e.Status != EscrowStatusHeld {
		return ErrNoEscrow
	}
	t := now
	e.Status = EscrowStatusReleased
	e.RecipientID = recipientID
	e.ReleasedAt = &t
	return nil
}

// Refund returns the entry to the payer.
func (e *EscrowEntry) Refund(now time.Time) error {
	if e.Status != EscrowStatusHeld {
		return ErrNoEscrow
	}
	t := now
	e.Status = EscrowStatusRefunded
	e.RecipientID = e.PayerID
	e.RefundedAt = &t
	return nil
}
