package domain

import "context"

// ProviderSession is the provider-side view of a hosted checkout session.
type ProviderSession struct {
	ID            string
	URL           string
	PaymentStatus string
	CustomerEmail string
	AmountTotal   int64
	Currency      string
	Metadata      map[string]string
}

type ProviderCheckoutInput struct {
	ProductName        string
	ProductDescription string
	Amount             int64
	Currency           string
	SuccessURL         string
	CancelURL          string
	Metadata           map[string]string
}

type Adapter interface {
	CreateCheckoutSession(ctx context.Context, input ProviderCheckoutInput) (*ProviderSession, error)
	RetrieveCheckoutSession(ctx context.Context, providerSessionID string) (*ProviderSession, error)
}

// AdapterFactory builds a provider adapter for a secret key. Kept as a
// factory so the service constructs adapters per request when credentials
// arrive with the request body.
type AdapterFactory func(secretKey string) Adapter
