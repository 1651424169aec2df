package models

import (
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// CreateEntryRequest запрос на запись в лист ожидания
type CreateEntryRequest struct {
	ShopID        string  `json:"-"`
	ServiceID     *string `json:"serviceId,omitempty"`
	StaffID       *string `json:"staffId,omitempty"`
	PreferredDate *string `json:"preferredDate,omitempty"` // "2030-01-15"
	ClientName    string  `json:"clientName"`
	ClientEmail   string  `json:"clientEmail"`
	ClientPhone   *string `json:"clientPhone,omitempty"`
}

// EntryResponse ответ с данными записи
type EntryResponse struct {
	ID            string    `json:"id"`
	ShopID        string    `json:"shopId"`
	RefCode       string    `json:"refCode"`
	Status        string    `json:"status"`
	ServiceID     *string   `json:"serviceId,omitempty"`
	StaffID       *string   `json:"staffId,omitempty"`
	PreferredDate *string   `json:"preferredDate,omitempty"`
	ClientName    string    `json:"clientName"`
	ClientEmail   string    `json:"clientEmail"`
	ClientPhone   *string   `json:"clientPhone,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.WaitlistEntry) *EntryResponse {
	if e == nil {
		return nil
	}

	return &EntryResponse{
		ID:            e.ID,
		ShopID:        e.ShopID,
		RefCode:       e.RefCode,
		Status:        string(e.Status),
		ServiceID:     e.ServiceID,
		StaffID:       e.StaffID,
		PreferredDate: e.PreferredDate,
		ClientName:    e.ClientName,
		ClientEmail:   e.ClientEmail,
		ClientPhone:   e.ClientPhone,
		CreatedAt:     e.CreatedAt,
	}
}
