package create_booking

import (
	createBooking "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID         string  `json:"serviceId"`
	SlotID            string  `json:"slotId"`
	ClientName        string  `json:"clientName"`
	ClientEmail       string  `json:"clientEmail"`
	ClientPhone       *string `json:"clientPhone,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	RecurringInterval *string `json:"recurringInterval,omitempty"` // weekly | biweekly | fourweekly | monthly
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID        string   `json:"bookingId"`
	RefCode          string   `json:"refCode"`
	Status           string   `json:"status"`
	Date             string   `json:"date"`
	StartTime        string   `json:"startTime"`
	DurationMinutes  int      `json:"durationMinutes"`
	StaffID          *string  `json:"staffId,omitempty"`
	StaffName        *string  `json:"staffName,omitempty"`
	ServiceName      string   `json:"serviceName"`
	Price            float64  `json:"price"`
	RecurringGroupID *string  `json:"recurringGroupId,omitempty"`
	Series           *Series  `json:"series,omitempty"`
	Deposit          *Deposit `json:"deposit,omitempty"`
}

// Series итог создания серии
type Series struct {
	Interval      string   `json:"interval"`
	IntervalLabel string   `json:"intervalLabel"`
	Created       int      `json:"created"`
	CreatedDates  []string `json:"createdDates"`
	Skipped       []string `json:"skipped"`
	Failed        []string `json:"failed"`
	EndDate       string   `json:"endDate"`
}

// Deposit данные для оплаты предоплаты
type Deposit struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	AmountCents     int64  `json:"amountCents"`
	Currency        string `json:"currency"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(shopID string) *createBooking.Request {
	return &createBooking.Request{
		ShopID:            shopID,
		ServiceID:         r.ServiceID,
		SlotID:            r.SlotID,
		ClientName:        r.ClientName,
		ClientEmail:       r.ClientEmail,
		ClientPhone:       r.ClientPhone,
		Notes:             r.Notes,
		RecurringInterval: r.RecurringInterval,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		BookingID:        resp.BookingID,
		RefCode:          resp.RefCode,
		Status:           resp.Status,
		Date:             resp.Date,
		StartTime:        resp.StartTime.String(),
		DurationMinutes:  resp.DurationMinutes,
		StaffID:          resp.StaffID,
		StaffName:        resp.StaffName,
		ServiceName:      resp.ServiceName,
		Price:            resp.Price,
		RecurringGroupID: resp.RecurringGroupID,
	}

	if s := resp.Series; s != nil {
		out.Series = &Series{
			Interval:      s.Interval,
			IntervalLabel: s.IntervalLabel,
			Created:       s.Created,
			CreatedDates:  nonNil(s.CreatedDates),
			Skipped:       nonNil(s.Skipped),
			Failed:        nonNil(s.Failed),
			EndDate:       s.EndDate,
		}
	}

	if d := resp.Deposit; d != nil {
		out.Deposit = &Deposit{
			PaymentIntentID: d.PaymentIntentID,
			ClientSecret:    d.ClientSecret,
			AmountCents:     d.AmountCents,
			Currency:        d.Currency,
		}
	}

	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
