package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
)

type fakeIntents struct {
	params *stripe.PaymentIntentParams
	err    error
}

func (f *fakeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret"}, nil
}

func depositService() *domain.Service {
	return &domain.Service{ID: "svc-1", Name: "Coloring", Price: 80.5, Duration: 90, DepositPercent: ptr.Ptr(25.0)}
}

func testBooking() *domain.Booking {
	return &domain.Booking{ID: "b1", ShopID: "shop-1", RefCode: "BKAAAA", ServiceName: "Coloring", ClientEmail: "kim@example.com"}
}

func TestClient_CreateDeposit(t *testing.T) {
	intents := &fakeIntents{}
	c := NewClientWithCreator(intents, "EUR", logger.Nop())

	deposit, err := c.CreateDeposit(context.Background(), testBooking(), depositService())
	require.NoError(t, err)

	// 80.50 * 25% = 20.125 -> 20.13
	assert.Equal(t, int64(2013), deposit.AmountCents)
	assert.Equal(t, "eur", deposit.Currency)
	assert.Equal(t, "pi_123_secret", deposit.ClientSecret)

	require.NotNil(t, intents.params)
	assert.Equal(t, int64(2013), *intents.params.Amount)
	assert.Equal(t, "deposit-b1", *intents.params.IdempotencyKey)
	assert.Equal(t, "BKAAAA", intents.params.Metadata["ref_code"])
}

func TestClient_NoDeposit(t *testing.T) {
	c := NewClientWithCreator(&fakeIntents{}, "", logger.Nop())

	_, err := c.CreateDeposit(context.Background(), testBooking(), &domain.Service{Price: 10})
	assert.ErrorIs(t, err, ErrNoDeposit)
}

func TestClient_Disabled(t *testing.T) {
	c := NewClient("", "usd", logger.Nop())

	assert.False(t, c.Enabled())
	_, err := c.CreateDepositWithGracefulDegradation(context.Background(), testBooking(), depositService())
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestClient_GracefulDegradation(t *testing.T) {
	c := NewClientWithCreator(&fakeIntents{err: errors.New("card_error")}, "usd", logger.Nop())

	_, err := c.CreateDeposit(context.Background(), testBooking(), depositService())
	assert.ErrorIs(t, err, ErrProvider)

	_, err = c.CreateDepositWithGracefulDegradation(context.Background(), testBooking(), depositService())
	assert.ErrorIs(t, err, ErrServiceDegraded)
}

func TestClient_GracefulDegradationKeepsNoDeposit(t *testing.T) {
	intents := &fakeIntents{}
	c := NewClientWithCreator(intents, "usd", logger.Nop())

	_, err := c.CreateDepositWithGracefulDegradation(context.Background(), testBooking(), &domain.Service{ID: "svc-2", Price: 10})
	assert.ErrorIs(t, err, ErrNoDeposit)
	assert.NotErrorIs(t, err, ErrServiceDegraded)
	assert.Nil(t, intents.params)
}
