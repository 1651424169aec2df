package domain

import "math"

// Service is a bookable shop service
type Service struct {
	ID             string
	ShopID         string
	Name           string
	Duration       int
	Price          float64
	DepositPercent *float64
}

// HasDeposit returns true if the service requires a prepaid deposit
func (s *Service) HasDeposit() bool {
	return s.DepositPercent != nil && *s.DepositPercent > 0 && s.Price > 0
}

// DepositAmountCents returns price*percent/100 rounded to cents
func (s *Service) DepositAmountCents() int64 {
	if !s.HasDeposit() {
		return 0
	}
	return int64(math.Round(s.Price * *s.DepositPercent))
}
