package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	settingsRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ShopBooking/internal/service/settings/models"
)

// Defaults значения для магазинов без сохраненных настроек (из конфигурации сервиса)
type Defaults struct {
	BufferMinutes int
	HorizonWeeks  int
}

// Service сервис настроек бронирования магазина
type Service struct {
	repo     SettingsRepository
	cache    SlotCache
	defaults Defaults
	logger   Logger
}

// NewService создает новый экземпляр сервиса настроек. cache может быть nil.
func NewService(repo SettingsRepository, cache SlotCache, defaults Defaults, logger Logger) *Service {
	if defaults.HorizonWeeks <= 0 {
		defaults.HorizonWeeks = domain.DefaultHorizonWeeks
	}
	if defaults.BufferMinutes < 0 {
		defaults.BufferMinutes = domain.DefaultBufferMinutes
	}
	return &Service{repo: repo, cache: cache, defaults: defaults, logger: logger}
}

// Effective возвращает действующие настройки магазина: сохраненные или значения по умолчанию
func (s *Service) Effective(ctx context.Context, shopID string) (*domain.ShopSettings, error) {
	settings, _, err := s.effective(ctx, shopID)
	return settings, err
}

// Get получает настройки магазина для API
func (s *Service) Get(ctx context.Context, shopID string) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for shop=%s", shopID)

	settings, isDefault, err := s.effective(ctx, shopID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSettings(settings, isDefault), nil
}

// Update частично обновляет настройки магазина и сбрасывает кеш слотов
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for shop=%s", req.ShopID)

	if req.ShopID == "" {
		return nil, fmt.Errorf("%w: shopId is required", ErrInvalidInput)
	}

	// 1. Берем текущие настройки за основу
	current, _, err := s.effective(ctx, req.ShopID)
	if err != nil {
		return nil, err
	}

	// 2. Применяем переданные поля
	if req.BufferMinutes != nil {
		current.BufferMinutes = *req.BufferMinutes
	}
	if req.RequireApproval != nil {
		current.RequireApproval = *req.RequireApproval
	}
	if req.HorizonWeeks != nil {
		current.HorizonWeeks = *req.HorizonWeeks
	}

	// 3. Валидируем результат
	if err := validateSettings(current); err != nil {
		s.logger.Warn("Update: validation failed for shop=%s: %v", req.ShopID, err)
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.repo.Upsert(ctx, current)
	if err != nil {
		s.logger.Error("Update: repository error for shop=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 5. Буфер и горизонт влияют на слоты
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, req.ShopID); err != nil {
			s.logger.Warn("Update: failed to invalidate slot cache for shop=%s: %v", req.ShopID, err)
		}
	}

	s.logger.Info("Update: settings saved for shop=%s (buffer=%d, approval=%t, horizon=%d)",
		saved.ShopID, saved.BufferMinutes, saved.RequireApproval, saved.HorizonWeeks)
	return models.FromDomainSettings(saved, false), nil
}

func (s *Service) effective(ctx context.Context, shopID string) (*domain.ShopSettings, bool, error) {
	settings, err := s.repo.Get(ctx, shopID)
	if err == nil {
		return settings, false, nil
	}
	if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Error("effective: repository error for shop=%s: %v", shopID, err)
		return nil, false, fmt.Errorf("%w: get settings: %v", ErrInternal, err)
	}

	defaults := domain.DefaultShopSettings(shopID)
	defaults.BufferMinutes = s.defaults.BufferMinutes
	defaults.HorizonWeeks = s.defaults.HorizonWeeks
	return defaults, true, nil
}

func validateSettings(s *domain.ShopSettings) error {
	if s.BufferMinutes < domain.MinBufferMinutes || s.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}
	if s.HorizonWeeks < domain.MinHorizonWeeks || s.HorizonWeeks > domain.MaxHorizonWeeks {
		return fmt.Errorf("%w: horizonWeeks must be between %d and %d",
			ErrInvalidInput, domain.MinHorizonWeeks, domain.MaxHorizonWeeks)
	}
	return nil
}
