package payments

import "github.com/stripe/stripe-go/v79"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// IntentCreator создание PaymentIntent (paymentintent.Client)
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}
