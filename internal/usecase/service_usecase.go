package usecase

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"waypost/internal/domain/entity"
	"waypost/internal/domain/repository"
	"waypost/pkg/errors"
	"waypost/pkg/logger"
)

type ServiceUseCase struct {
	serviceRepo      repository.ServiceRepository
	escrowRepo       repository.EscrowRepository
	tokenRepo        repository.TokenRepository
	verificationRepo repository.VerificationRepository
	events           EventPublisher
	now              func() time.Time
}

func NewServiceUseCase(
	serviceRepo repository.ServiceRepository,
	escrowRepo repository.EscrowRepository,
	tokenRepo repository.TokenRepository,
	verificationRepo repository.VerificationRepository,
	events EventPublisher,
) *ServiceUseCase {
	return &ServiceUseCase{
		serviceRepo:      serviceRepo,
		escrowRepo:       escrowRepo,
		tokenRepo:        tokenRepo,
		verificationRepo: verificationRepo,
		events:           events,
		now:              time.Now,
	}
}

// SetNowFunc overrides the time source, for deterministic tests.
func (uc *ServiceUseCase) SetNowFunc(now func() time.Time) {
	if now == nil {
		uc.now = time.Now
		return
	}
	uc.now = now
}

type CreateServiceInput struct {
	Title        string
	Description  string
	StartLat     int64
	StartLon     int64
	StartAddress string
	EndLat       int64
	EndLon       int64
	EndAddress   string
	Reward       float64
	Deadline     int64
}

func (uc *ServiceUseCase) CreateService(ctx context.Context, creatorID string, input CreateServiceInput) (*entity.Service, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.BadRequest("Title is required", nil)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, errors.BadRequest("Description is required", nil)
	}
	if input.Reward <= 0 {
		return nil, errors.InvalidReward("Reward must be greater than zero")
	}
	if input.Deadline <= uc.now().Unix() {
		return nil, errors.InvalidDeadline("Deadline must be in the future")
	}

	start := entity.GeoPoint{Latitude: input.StartLat, Longitude: input.StartLon, Address: input.StartAddress}
	end := entity.GeoPoint{Latitude: input.EndLat, Longitude: input.EndLon, Address: input.EndAddress}
	if !start.Valid() || !end.Valid() {
		return nil, errors.BadRequest("Coordinates out of range", nil)
	}

	if err := uc.requireVerified(ctx, creatorID); err != nil {
		return nil, err
	}

	service := &entity.Service{
		CreatorID:     creatorID,
		Title:         input.Title,
		Description:   input.Description,
		StartLocation: start,
		EndLocation:   end,
		Reward:        input.Reward,
		Deadline:      input.Deadline,
	}

	created, err := uc.serviceRepo.Create(ctx, service)
	if err != nil {
		return nil, uc.mapLifecycleError(err)
	}

	logger.Info("Service created: id=%d creator=%s reward=%f", created.ID, creatorID, created.Reward)
	uc.publish("service_created", created)
	return created, nil
}

func (uc *ServiceUseCase) GetService(ctx context.Context, id int64) (*entity.Service, error) {
	return uc.serviceRepo.GetByID(ctx, id)
}

func (uc *ServiceUseCase) GetEscrow(ctx context.Context, serviceID int64) (*entity.EscrowEntry, error) {
	return uc.escrowRepo.GetByServiceID(ctx, serviceID)
}

// TokenData mirrors the token display surface: the token record together
// with the service data it represents.
type TokenData struct {
	Token   *entity.ServiceToken `json:"token"`
	Service *entity.Service      `json:"service"`
}

func (uc *ServiceUseCase) GetToken(ctx context.Context, tokenID int64) (*TokenData, error) {
	token, err := uc.tokenRepo.GetByID(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	service, err := uc.serviceRepo.GetByID(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	return &TokenData{Token: token, Service: service}, nil
}

func (uc *ServiceUseCase) ListActiveServices(ctx context.Context, limit, offset int) ([]*entity.Service, int64, error) {
	return uc.serviceRepo.ListActive(ctx, limit, offset)
}

func (uc *ServiceUseCase) ListCreatedServices(ctx context.Context, userID string, limit, offset int) ([]*entity.Service, int64, error) {
	return uc.serviceRepo.ListByCreator(ctx, userID, limit, offset)
}

func (uc *ServiceUseCase) ListAcceptedServices(ctx context.Context, userID string, limit, offset int) ([]*entity.Service, int64, error) {
	return uc.serviceRepo.ListByAcceptor(ctx, userID, limit, offset)
}

func (uc *ServiceUseCase) AcceptService(ctx context.Context, id int64, acceptorID string) (*entity.Service, error) {
	if err := uc.requireVerified(ctx, acceptorID); err != nil {
		return nil, err
	}

	accepted, err := uc.serviceRepo.Accept(ctx, id, acceptorID, uc.now())
	if err != nil {
		logger.LogServiceError(id, "accept", err)
		return nil, uc.mapLifecycleError(err)
	}

	logger.Info("Service accepted: id=%d acceptor=%s", id, acceptorID)
	uc.publish("service_accepted", accepted)
	return accepted, nil
}

func (uc *ServiceUseCase) CompleteService(ctx context.Context, id int64, callerID string) (*entity.Service, error) {
	completed, err := uc.serviceRepo.Complete(ctx, id, callerID, uc.now())
	if err != nil {
		logger.LogServiceError(id, "complete", err)
		return nil, uc.mapLifecycleError(err)
	}

	logger.Info("Service completed: id=%d acceptor=%s reward=%f", id, completed.AcceptedBy, completed.Reward)
	uc.publish("service_completed", completed)
	return completed, nil
}

func (uc *ServiceUseCase) CancelService(ctx context.Context, id int64, callerID string) (*entity.Service, error) {
	cancelled, err := uc.serviceRepo.Cancel(ctx, id, callerID, uc.now())
	if err != nil {
		logger.LogServiceError(id, "cancel", err)
		return nil, uc.mapLifecycleError(err)
	}

	logger.Info("Service cancelled: id=%d creator=%s", id, cancelled.CreatorID)
	uc.publish("service_cancelled", cancelled)
	return cancelled, nil
}

func (uc *ServiceUseCase) requireVerified(ctx context.Context, userID string) error {
	verification, err := uc.verificationRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return errors.NotVerified("Identity verification required")
		}
		return err
	}
	if !verification.IsVerified {
		return errors.NotVerified("Identity verification required")
	}
	return nil
}

func (uc *ServiceUseCase) publish(eventType string, service *entity.Service) {
	if uc.events == nil {
		return
	}
	uc.events.Publish(eventType, map[string]interface{}{
		"service_id": service.ID,
		"status":     service.Status,
		"reward":     service.Reward,
	})
}

// mapLifecycleError turns entity guard failures into API errors. Anything
// already an AppError passes through unchanged.
func (uc *ServiceUseCase) mapLifecycleError(err error) error {
	switch {
	case stderrors.Is(err, entity.ErrServiceNotActive):
		return errors.Conflict("SERVICE_NOT_ACTIVE", "Service is not active")
	case stderrors.Is(err, entity.ErrServiceNotAccepted):
		return errors.Conflict("INVALID_TRANSITION", "Service is not in accepted state")
	case stderrors.Is(err, entity.ErrServiceExpired):
		return errors.Conflict("SERVICE_EXPIRED", "Service deadline has passed")
	case stderrors.Is(err, entity.ErrSelfAcceptance):
		return errors.New("SELF_ACCEPTANCE", "Creator cannot accept their own service", http.StatusBadRequest, nil)
	case stderrors.Is(err, entity.ErrNotAcceptor):
		return errors.Forbidden("Only the acceptor can complete this service", nil)
	case stderrors.Is(err, entity.ErrNotCreator):
		return errors.Forbidden("Only the creator can cancel this service", nil)
	case stderrors.Is(err, entity.ErrInsufficientBalance):
		return errors.InsufficientBalance("Wallet balance does not cover the reward")
	case stderrors.Is(err, entity.ErrNoEscrow):
		return errors.NoEscrow("Escrow entry missing or already settled", err)
	}

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return errors.Internal("Service operation failed", err)
}
