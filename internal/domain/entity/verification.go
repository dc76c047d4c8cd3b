package entity

import (
	"time"
)

// UserVerification is the per-user record written by the attestation flow.
// The marketplace core only ever reads it.
type UserVerification struct {
	UserID        string    `json:"user_id" firestore:"userId"`
	IsVerified    bool      `json:"is_verified" firestore:"isVerified"`
	FullName      string    `json:"full_name,omitempty" firestore:"fullName,omitempty"`
	AttestationID string    `json:"attestation_id,omitempty" firestore:"attestationId,omitempty"`
	Nationality   string    `json:"nationality,omitempty" firestore:"nationality,omitempty"`
	DocumentType  string    `json:"document_type,omitempty" firestore:"documentType,omitempty"`
	VerifiedAt    time.Time `json:"verified_at" firestore:"verifiedAt"`
}
