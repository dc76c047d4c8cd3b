package entity

import (
	"errors"
	"time"
)

type ServiceStatus string

const (
	StatusActive    ServiceStatus = "active"
	StatusAccepted  ServiceStatus = "accepted"
	StatusCompleted ServiceStatus = "completed"
	StatusCancelled ServiceStatus = "cancelled"
)

// Transition guard failures. These are mapped to API error codes in the
// usecase layer; repositories pass them through unchanged so a failed guard
// aborts the storage transaction with no effect.
var (
	ErrServiceNotActive   = errors.New("service is not active")
	ErrServiceNotAccepted = errors.New("service is not accepted")
	ErrServiceExpired     = errors.New("service deadline has passed")
	ErrSelfAcceptance     = errors.New("creator cannot accept own service")
	ErrNotAcceptor        = errors.New("caller is not the acceptor")
	ErrNotCreator         = errors.New("caller is not the creator")
)

// GeoPoint is a fixed-point coordinate pair: degrees multiplied by 1,000,000
// and stored as integers, with an optional human-readable address.
type GeoPoint struct {
	Latitude  int64  `json:"latitude" firestore:"latitude"`
	Longitude int64  `json:"longitude" firestore:"longitude"`
	Address   string `json:"address" firestore:"address"`
}

// CoordScale converts between fixed-point and decimal degrees.
const CoordScale = 1_000_000

// Valid reports whether the coordinates are within latitude/longitude range.
func (g GeoPoint) Valid() bool {
	return g.Latitude >= -90*CoordScale && g.Latitude <= 90*CoordScale &&
		g.Longitude >= -180*CoordScale && g.Longitude <= 180*CoordScale
}

func (g GeoPoint) LatDegrees() float64 {
	return float64(g.Latitude) / CoordScale
}

func (g GeoPoint) LonDegrees() float64 {
	return float64(g.Longitude) / CoordScale
}

type Service struct {
	ID            int64         `json:"id" firestore:"id"`
	CreatorID     string        `json:"creator_id" firestore:"creatorId"`
	Title         string        `json:"title" firestore:"title"`
	Description   string        `json:"description" firestore:"description"`
	StartLocation GeoPoint      `json:"start_location" firestore:"startLocation"`
	EndLocation   GeoPoint      `json:"end_location" firestore:"endLocation"`
	Reward        float64       `json:"reward" firestore:"reward"`
	Deadline      int64         `json:"deadline" firestore:"deadline"` // unix seconds
	Status        ServiceStatus `json:"status" firestore:"status"`
	AcceptedBy    string        `json:"accepted_by,omitempty" firestore:"acceptedBy,omitempty"`

	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty" firestore:"acceptedAt,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" firestore:"cancelledAt,omitempty"`
}

// Accept moves the service from active to accepted. Expiry is checked here,
// against the caller-supplied clock, so deadlines are enforced lazily.
func (s *Service) Accept(acceptorID string, now time.Time) error {
	if s.Status != StatusActive {
		return ErrServiceNotActive
	}
	if now.Unix() >= s.Deadline {
		return ErrServiceExpired
	}
	if acceptorID == s.CreatorID {
		return ErrSelfAcceptance
	}
	t := now
	s.Status = StatusAccepted
	s.AcceptedBy = acceptorID
	s.AcceptedAt = &t
	return nil
}

// Complete moves the service from accepted to completed. Only the acceptor
// may complete; the creator's path out of a service is Cancel, and only
// while it is still active.
func (s *Service) Complete(callerID string, now time.Time) error {
	if s.Status != StatusAccepted {
		return ErrServiceNotAccepted
	}
	if callerID != s.AcceptedBy {
		return ErrNotAcceptor
	}
	t := now
	s.Status = StatusCompleted
	s.CompletedAt = &t
	return nil
}

// Cancel moves the service from active to cancelled. Valid after the
// deadline as well: an expired, never-accepted service can always be
// refunded by its creator.
func (s *Service) Cancel(callerID string, now time.Time) error {
	if s.Status != StatusActive {
		return ErrServiceNotActive
	}
	if callerID != s.CreatorID {
		return ErrNotCreator
	}
	t := now
	s.Status = StatusCancelled
	s.CancelledAt = &t
	return nil
}

// Terminal reports whether no further transition is possible.
func (s *Service) Terminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusCancelled
}
