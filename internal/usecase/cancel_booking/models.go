package cancel_booking

// Request модель запроса на отмену
type Request struct {
	ShopID    string
	BookingID string
	Mode      string // single (по умолчанию) | future - это и все следующие бронирования серии
}

// Response отмененные бронирования в порядке дат
type Response struct {
	Mode      string
	Cancelled []CancelledBooking
}

// CancelledBooking краткие данные отмененного бронирования
type CancelledBooking struct {
	BookingID string
	RefCode   string
	Date      string
}
