package domain

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrPaymentNotCompleted     = errors.New("payment not completed")
	ErrVerificationUnavailable = errors.New("payment verification unavailable")
)

// MockSessionPrefix marks synthetic sessions minted when no payment
// credentials are configured. The prefix is only sniffed for ids
// re-presented by the provider redirect; sessions created in-process carry
// an explicit Kind tag.
const MockSessionPrefix = "test_session_"

func IsMockSessionID(id string) bool {
	return strings.HasPrefix(strings.TrimSpace(id), MockSessionPrefix)
}

type SessionKind string

const (
	SessionKindReal SessionKind = "real"
	SessionKindMock SessionKind = "mock"
)

type CheckoutSession struct {
	SessionID string      `json:"sessionId"`
	URL       string      `json:"url"`
	Kind      SessionKind `json:"-"`
}

func (s CheckoutSession) IsMock() bool {
	return s.Kind == SessionKindMock
}

// Credentials optionally carried on a request, overriding process
// configuration. Mode selects which key applies.
type Credentials struct {
	Mode          string `json:"mode"`
	TestSecretKey string `json:"testSecretKey,omitempty"`
	LiveSecretKey string `json:"liveSecretKey,omitempty"`
}

func (c *Credentials) SecretKey() string {
	if c == nil {
		return ""
	}
	if strings.EqualFold(strings.TrimSpace(c.Mode), "live") {
		return strings.TrimSpace(c.LiveSecretKey)
	}
	return strings.TrimSpace(c.TestSecretKey)
}

type CreateSessionInput struct {
	PlanName    string
	SuccessURL  string
	CancelURL   string
	Credentials *Credentials
}

type Verification struct {
	Paid          bool              `json:"paid"`
	PaymentStatus string            `json:"paymentStatus"`
	CustomerEmail string            `json:"customerEmail,omitempty"`
	ProductName   string            `json:"productName,omitempty"`
	ProductType   string            `json:"productType,omitempty"`
	AmountTotal   int64             `json:"amountTotal,omitempty"`
	Currency      string            `json:"currency,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

type CheckoutService interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*CheckoutSession, error)
	Verify(ctx context.Context, sessionID string, creds *Credentials) (*Verification, error)
}
