package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings/models"
)

// Service сервис просмотра бронирований и решений магазина
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	cache       SlotCache
	events      EventPublisher
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований. cache может быть nil.
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	cache SlotCache,
	events EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		cache:       cache,
		events:      events,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByRefCode получает бронирование магазина по коду подтверждения
func (s *Service) GetByRefCode(ctx context.Context, shopID, refCode string) (*models.BookingResponse, error) {
	s.logger.Info("GetByRefCode: fetching booking ref=%s for shop=%s", refCode, shopID)

	if shopID == "" || refCode == "" {
		return nil, fmt.Errorf("%w: shopId and refCode are required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByRefCode(ctx, shopID, refCode)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByRefCode: booking ref=%s not found", refCode)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByRefCode: repository error for ref=%s: %v", refCode, err)
		return nil, fmt.Errorf("%w: GetByRefCode - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// UpdateStatus подтверждает, отклоняет или возвращает в ожидание бронирование.
// При отклонении ручной слот освобождается.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s in shop=%s", req.BookingID, req.Status, req.ShopID)

	if req.ShopID == "" || req.BookingID == "" {
		return nil, fmt.Errorf("%w: shopId and bookingId are required", ErrInvalidInput)
	}

	// Валидируем и конвертируем статус
	next, err := models.ToDomainDecision(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, req.BookingID)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	var updated *domain.Booking
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, req.ShopID, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("UpdateStatus: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		if !booking.CanTransitionTo(next) {
			s.logger.Warn("UpdateStatus: booking id=%s cannot move from %s to %s", booking.ID, booking.Status, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, req.ShopID, booking.ID, next); err != nil {
			s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}

		if next == domain.StatusRejected && booking.HoldsManualSlot() {
			if err := s.slotRepo.Release(txCtx, req.ShopID, booking.SlotID); err != nil {
				s.logger.Error("UpdateStatus: failed to release slot %s: %v", booking.SlotID, err)
				return fmt.Errorf("%w: UpdateStatus - release slot: %w", ErrInternal, err)
			}
		}

		booking.Status = next
		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status == domain.StatusRejected && s.cache != nil {
		if err := s.cache.Invalidate(ctx, req.ShopID); err != nil {
			s.logger.Warn("UpdateStatus: failed to invalidate slot cache: %v", err)
		}
	}
	if err := s.events.Publish(ctx, domain.EventBookingStatusChanged, updated); err != nil {
		s.logger.Warn("UpdateStatus: failed to publish event: %v", err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", updated.ID, updated.Status)
	return models.FromDomainBooking(updated), nil
}
