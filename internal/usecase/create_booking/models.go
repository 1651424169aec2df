package create_booking

import "github.com/m04kA/SMC-ShopBooking/pkg/types"

// Request модель запроса на создание бронирования
type Request struct {
	ShopID            string  // ID магазина
	ServiceID         string  // ID услуги
	SlotID            string  // id доступного слота (ручного или gen_...)
	ClientName        string  // Имя клиента
	ClientEmail       string  // Email клиента
	ClientPhone       *string // Телефон (опционально)
	Notes             *string // Заметки (опционально)
	RecurringInterval *string // weekly | biweekly | fourweekly | monthly; nil - разовое бронирование
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID        string
	RefCode          string
	Status           string
	Date             string
	StartTime        types.TimeString
	DurationMinutes  int
	StaffID          *string
	StaffName        *string
	ServiceName      string
	Price            float64
	RecurringGroupID *string

	Series  *SeriesResult // nil для разового бронирования
	Deposit *Deposit      // nil, если депозит не требуется или провайдер недоступен
}

// SeriesResult фактический итог создания серии
type SeriesResult struct {
	Interval      string
	IntervalLabel string
	Created       int      // созданные бронирования, включая первое
	CreatedDates  []string // даты созданных вхождений
	Skipped       []string // даты с конфликтами
	Failed        []string // даты, которые не удалось записать
	EndDate       string
}

// Deposit данные для оплаты предоплаты на клиенте
type Deposit struct {
	PaymentIntentID string
	ClientSecret    string
	AmountCents     int64
	Currency        string
}
