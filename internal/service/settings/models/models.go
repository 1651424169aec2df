package models

import (
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек магазина.
// Все поля опциональны - обновляются только переданные значения.
type UpdateSettingsRequest struct {
	ShopID          string `json:"-"`
	BufferMinutes   *int   `json:"bufferMinutes,omitempty"`
	RequireApproval *bool  `json:"requireApproval,omitempty"`
	HorizonWeeks    *int   `json:"horizonWeeks,omitempty"`
}

// SettingsResponse ответ с настройками магазина
type SettingsResponse struct {
	ShopID          string     `json:"shopId"`
	BufferMinutes   int        `json:"bufferMinutes"`
	RequireApproval bool       `json:"requireApproval"`
	HorizonWeeks    int        `json:"horizonWeeks"`
	IsDefault       bool       `json:"isDefault"` // магазин еще не сохранял настройки
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.ShopSettings, isDefault bool) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		ShopID:          s.ShopID,
		BufferMinutes:   s.BufferMinutes,
		RequireApproval: s.RequireApproval,
		HorizonWeeks:    s.HorizonWeeks,
		IsDefault:       isDefault,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
