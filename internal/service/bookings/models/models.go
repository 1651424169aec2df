package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest решение магазина по бронированию
type UpdateStatusRequest struct {
	ShopID    string `json:"-"`
	BookingID string `json:"-"`
	Status    string `json:"status"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                string  `json:"id"`
	ShopID            string  `json:"shopId"`
	ServiceID         string  `json:"serviceId"`
	RefCode           string  `json:"refCode"`
	Date              string  `json:"date"`      // "2030-01-15"
	StartTime         string  `json:"startTime"` // "10:00"
	DurationMinutes   int     `json:"durationMinutes"`
	Status            string  `json:"status"`
	SlotID            string  `json:"slotId"`
	StaffID           *string `json:"staffId,omitempty"`
	StaffName         *string `json:"staffName,omitempty"`
	RecurringGroupID  *string `json:"recurringGroupId,omitempty"`
	RecurringInterval *string `json:"recurringInterval,omitempty"`

	// Денормализованные данные
	ServiceName string  `json:"serviceName"`
	Price       float64 `json:"price"`

	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:               b.ID,
		ShopID:           b.ShopID,
		ServiceID:        b.ServiceID,
		RefCode:          b.RefCode,
		Date:             b.Date,
		StartTime:        b.Time.String(),
		DurationMinutes:  b.EffectiveDuration(0),
		Status:           string(b.Status),
		SlotID:           b.SlotID,
		StaffID:          b.StaffID,
		StaffName:        b.StaffName,
		RecurringGroupID: b.RecurringGroupID,
		ServiceName:      b.ServiceName,
		Price:            b.Price,
		ClientName:       b.ClientName,
		ClientEmail:      b.ClientEmail,
		ClientPhone:      b.ClientPhone,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	if b.RecurringInterval != nil {
		interval := string(*b.RecurringInterval)
		resp.RecurringInterval = &interval
	}

	return resp
}

// ToDomainDecision конвертирует строку в статус, который магазин может выставить вручную
func ToDomainDecision(status string) (domain.BookingStatus, error) {
	switch s := domain.BookingStatus(status); s {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusRejected:
		return s, nil
	}

	return "", ErrInvalidStatus
}
