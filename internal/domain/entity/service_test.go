package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func activeService() *Service {
	return &Service{
		ID:        1,
		CreatorID: "creator",
		Title:     "Deliver package",
		Reward:    0.5,
		Deadline:  testTime.Add(24 * time.Hour).Unix(),
		Status:    StatusActive,
		CreatedAt: testTime,
	}
}

func TestServiceAccept(t *testing.T) {
	svc := activeService()

	err := svc.Accept("acceptor", testTime)
	assert.NoError(t, err)
	assert.Equal(t, StatusAccepted, svc.Status)
	assert.Equal(t, "acceptor", svc.AcceptedBy)
	assert.NotNil(t, svc.AcceptedAt)
}

func TestServiceAcceptGuards(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*Service)
		acceptorID string
		at         time.Time
		wantErr    error
	}{
		{
			name:       "already accepted",
			setup:      func(s *Service) { s.Status = StatusAccepted; s.AcceptedBy = "other" },
			acceptorID: "acceptor",
			at:         testTime,
			wantErr:    ErrServiceNotActive,
		},
		{
			name:       "completed",
			setup:      func(s *Service) { s.Status = StatusCompleted },
			acceptorID: "acceptor",
			at:         testTime,
			wantErr:    ErrServiceNotActive,
		},
		{
			name:       "cancelled",
			setup:      func(s *Service) { s.Status = StatusCancelled },
			acceptorID: "acceptor",
			at:         testTime,
			wantErr:    ErrServiceNotActive,
		},
		{
			name:       "past deadline",
			setup:      func(s *Service) {},
			acceptorID: "acceptor",
			at:         testTime.Add(48 * time.Hour),
			wantErr:    ErrServiceExpired,
		},
		{
			name:       "exactly at deadline",
			setup:      func(s *Service) {},
			acceptorID: "acceptor",
			at:         time.Unix(activeService().Deadline, 0),
			wantErr:    ErrServiceExpired,
		},
		{
			name:       "self acceptance",
			setup:      func(s *Service) {},
			acceptorID: "creator",
			at:         testTime,
			wantErr:    ErrSelfAcceptance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := activeService()
			tt.setup(svc)
			before := *svc

			err := svc.Accept(tt.acceptorID, tt.at)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before.Status, svc.Status, "failed guard must not mutate")
		})
	}
}

func TestServiceComplete(t *testing.T) {
	svc := activeService()
	assert.NoError(t, svc.Accept("acceptor", testTime))

	err := svc.Complete("acceptor", testTime.Add(time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, svc.Status)
	assert.NotNil(t, svc.CompletedAt)
	assert.True(t, svc.Terminal())
}

func TestServiceCompleteGuards(t *testing.T) {
	t.Run("not accepted", func(t *testing.T) {
		svc := activeService()
		assert.ErrorIs(t, svc.Complete("acceptor", testTime), ErrServiceNotAccepted)
	})

	t.Run("creator cannot complete", func(t *testing.T) {
		svc := activeService()
		assert.NoError(t, svc.Accept("acceptor", testTime))
		assert.ErrorIs(t, svc.Complete("creator", testTime), ErrNotAcceptor)
	})

	t.Run("stranger cannot complete", func(t *testing.T) {
		svc := activeService()
		assert.NoError(t, svc.Accept("acceptor", testTime))
		assert.ErrorIs(t, svc.Complete("stranger", testTime), ErrNotAcceptor)
	})

	t.Run("second complete fails", func(t *testing.T) {
		svc := activeService()
		assert.NoError(t, svc.Accept("acceptor", testTime))
		assert.NoError(t, svc.Complete("acceptor", testTime))
		assert.ErrorIs(t, svc.Complete("acceptor", testTime), ErrServiceNotAccepted)
	})

	t.Run("complete allowed past deadline once accepted", func(t *testing.T) {
		svc := activeService()
		assert.NoError(t, svc.Accept("acceptor", testTime))
		assert.NoError(t, svc.Complete("acceptor", testTime.Add(72*time.Hour)))
	})
}

func TestServiceCancel(t *testing.T) {
	svc := activeService()

	err := svc.Cancel("creator", testTime)
	assert.NoError(t, err)
	assert.Equal(t, StatusCancelled, svc.Status)
	assert.NotNil(t, svc.CancelledAt)
	assert.True(t, svc.Terminal())
}

func TestServiceCancelGuards(t *testing.T) {
	t.Run("only creator", func(t *testing.T) {
		svc := activeService()
		assert.ErrorIs(t, svc.Cancel("acceptor", testTime), ErrNotCreator)
	})

	t.Run("accepted cannot be cancelled", func(t *testing.T) {
		svc := activeService()
		assert.NoError(t, svc.Accept("acceptor", testTime))
		assert.ErrorIs(t, svc.Cancel("creator", testTime), ErrServiceNotActive)
	})

	t.Run("cancel after deadline is valid", func(t *testing.T) {
		svc := activeService()
		assert.NoError(t, svc.Cancel("creator", testTime.Add(72*time.Hour)))
	})

	t.Run("second cancel fails", func(t *testing.T) {
		svc := activeService()
		assert.NoError(t, svc.Cancel("creator", testTime))
		assert.ErrorIs(t, svc.Cancel("creator", testTime), ErrServiceNotActive)
	})
}

func TestGeoPointValid(t *testing.T) {
	assert.True(t, GeoPoint{Latitude: 52 * CoordScale, Longitude: 13 * CoordScale}.Valid())
	assert.True(t, GeoPoint{Latitude: -90 * CoordScale, Longitude: 180 * CoordScale}.Valid())
	assert.False(t, GeoPoint{Latitude: 91 * CoordScale, Longitude: 0}.Valid())
	assert.False(t, GeoPoint{Latitude: 0, Longitude: -181 * CoordScale}.Valid())
}

func TestGeoPointDegrees(t *testing.T) {
	p := GeoPoint{Latitude: 52_520_008, Longitude: 13_404_954}
	assert.InDelta(t, 52.520008, p.LatDegrees(), 1e-9)
	assert.InDelta(t, 13.404954, p.LonDegrees(), 1e-9)
}
