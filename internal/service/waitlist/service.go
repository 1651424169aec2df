package waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/catalog"
	waitlistRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-ShopBooking/internal/service/waitlist/models"
)

// Service сервис листа ожидания
type Service struct {
	repo            WaitlistRepository
	services        ServiceRepository
	ids             IDGenerator
	codes           RefCodeGenerator
	refCodeAttempts int
	logger          Logger
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(
	repo WaitlistRepository,
	services ServiceRepository,
	ids IDGenerator,
	codes RefCodeGenerator,
	refCodeAttempts int,
	logger Logger,
) *Service {
	if refCodeAttempts <= 0 {
		refCodeAttempts = 1
	}
	return &Service{
		repo:            repo,
		services:        services,
		ids:             ids,
		codes:           codes,
		refCodeAttempts: refCodeAttempts,
		logger:          logger,
	}
}

// Create добавляет клиента в лист ожидания и выдает WL код
func (s *Service) Create(ctx context.Context, req *models.CreateEntryRequest) (*models.EntryResponse, error) {
	s.logger.Info("Create: adding %s to waitlist of shop=%s", req.ClientEmail, req.ShopID)

	// 1. Валидация
	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Услуга, если указана, должна существовать
	if req.ServiceID != nil {
		if _, err := s.services.GetService(ctx, req.ShopID, *req.ServiceID); err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				s.logger.Warn("Create: service id=%s not found in shop=%s", *req.ServiceID, req.ShopID)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Create: failed to get service id=%s: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: Create - get service: %v", ErrInternal, err)
		}
	}

	entry := &domain.WaitlistEntry{
		ID:            s.ids.NewID(),
		ShopID:        req.ShopID,
		ServiceID:     req.ServiceID,
		StaffID:       req.StaffID,
		PreferredDate: req.PreferredDate,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
		Status:        domain.WaitlistWaiting,
	}

	// 3. Сохраняем, перегенерируя код при коллизии
	var lastErr error
	for attempt := 1; attempt <= s.refCodeAttempts; attempt++ {
		entry.RefCode = s.codes.Waitlist()

		created, err := s.repo.Create(ctx, entry)
		if err == nil {
			s.logger.Info("Create: waitlist entry id=%s ref=%s created", created.ID, created.RefCode)
			return models.FromDomainEntry(created), nil
		}
		if !errors.Is(err, waitlistRepo.ErrDuplicateRefCode) {
			s.logger.Error("Create: repository error: %v", err)
			return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		s.logger.Warn("Create: ref code %s collided (attempt %d/%d)", entry.RefCode, attempt, s.refCodeAttempts)
		lastErr = err
	}

	return nil, fmt.Errorf("%w: Create - ref code attempts exhausted: %v", ErrInternal, lastErr)
}

// GetByRefCode получает запись магазина по коду
func (s *Service) GetByRefCode(ctx context.Context, shopID, refCode string) (*models.EntryResponse, error) {
	s.logger.Info("GetByRefCode: fetching waitlist entry ref=%s for shop=%s", refCode, shopID)

	if shopID == "" || refCode == "" {
		return nil, fmt.Errorf("%w: shopId and refCode are required", ErrInvalidInput)
	}

	entry, err := s.repo.GetByRefCode(ctx, shopID, refCode)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("GetByRefCode: entry ref=%s not found", refCode)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("GetByRefCode: repository error for ref=%s: %v", refCode, err)
		return nil, fmt.Errorf("%w: GetByRefCode - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntry(entry), nil
}
