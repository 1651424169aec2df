package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// Client клиент для создания депозитов в Stripe
type Client struct {
	intents  IntentCreator
	currency string
	log      Logger
}

// NewClient создает клиента Stripe. Пустой secretKey отключает депозиты.
func NewClient(secretKey, currency string, log Logger) *Client {
	var intents IntentCreator
	if secretKey != "" {
		intents = &paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey}
	}
	return NewClientWithCreator(intents, currency, log)
}

func NewClientWithCreator(intents IntentCreator, currency string, log Logger) *Client {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &Client{intents: intents, currency: strings.ToLower(currency), log: log}
}

// Enabled true, если настроен ключ Stripe
func (c *Client) Enabled() bool {
	return c.intents != nil
}

// CreateDeposit создает PaymentIntent на сумму предоплаты услуги.
// Ключ идемпотентности привязан к бронированию.
func (c *Client) CreateDeposit(ctx context.Context, booking *domain.Booking, service *domain.Service) (*Deposit, error) {
	if c.intents == nil {
		return nil, ErrDisabled
	}
	if !service.HasDeposit() {
		return nil, fmt.Errorf("%w: service_id=%s", ErrNoDeposit, service.ID)
	}

	amount := service.DepositAmountCents()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(c.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		ReceiptEmail: stripe.String(booking.ClientEmail),
		Description:  stripe.String(fmt.Sprintf("Deposit for %s (%s)", booking.ServiceName, booking.RefCode)),
		Metadata: map[string]string{
			"booking_id": booking.ID,
			"shop_id":    booking.ShopID,
			"ref_code":   booking.RefCode,
		},
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String("deposit-" + booking.ID)

	intent, err := c.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: create payment intent: %v", ErrProvider, err)
	}

	return &Deposit{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		AmountCents:     amount,
		Currency:        c.currency,
	}, nil
}

// CreateDepositWithGracefulDegradation создает депозит, но при ошибке провайдера
// возвращает ErrServiceDegraded, чтобы бронирование не падало из-за платежей
func (c *Client) CreateDepositWithGracefulDegradation(ctx context.Context, booking *domain.Booking, service *domain.Service) (*Deposit, error) {
	c.log.Info("Creating deposit for booking_id=%s", booking.ID)

	deposit, err := c.CreateDeposit(ctx, booking, service)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoDeposit), errors.Is(err, ErrDisabled):
			return nil, err
		default:
			c.log.Warn("Payment provider unavailable for booking_id=%s, continuing without deposit: %v", booking.ID, err)
			return nil, ErrServiceDegraded
		}
	}

	c.log.Info("Deposit %s created for booking_id=%s: %d %s", deposit.PaymentIntentID, booking.ID, deposit.AmountCents, deposit.Currency)
	return deposit, nil
}
