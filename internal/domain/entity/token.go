package entity

import (
	"errors"
	"time"
)

var ErrTokenBurned = errors.New("token already burned")

// ServiceToken is the token record minted alongside a service. It mirrors
// the service data for display purposes and is burned in the same
// transaction that completes the service, so no live token ever exists for
// a completed service.
type ServiceToken struct {
	TokenID  int64      `json:"token_id" firestore:"tokenId"` // equals the service id
	OwnerID  string     `json:"owner_id" firestore:"ownerId"`
	Burned   bool       `json:"burned" firestore:"burned"`
	MintedAt time.Time  `json:"minted_at" firestore:"mintedAt"`
	BurnedAt *time.Time `json:"burned_at,omitempty" firestore:"burnedAt,omitempty"`
}

func (t *ServiceToken) Burn(now time.Time) error {
	if t.Burned {
		return ErrTokenBurned
	}
	ts := now
	t.Burned = true
	t.BurnedAt = &ts
	return nil
}
