package payments

// Deposit созданный платеж предоплаты
type Deposit struct {
	PaymentIntentID string
	ClientSecret    string
	AmountCents     int64
	Currency        string
}
