package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/starloomhq/starloom/internal/clock"
	"github.com/starloomhq/starloom/internal/config"
	paymentdomain "github.com/starloomhq/starloom/internal/payment/domain"
	productdomain "github.com/starloomhq/starloom/internal/product/domain"
)

// sessionIDPlaceholder is the token Stripe expands in success URLs; mock
// sessions expand it themselves.
const sessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

type Params struct {
	fx.In

	Log     *zap.Logger
	Cfg     config.Config
	Clock   clock.Clock
	Catalog productdomain.Catalog
	Factory paymentdomain.AdapterFactory
}

type Service struct {
	log     *zap.Logger
	cfg     config.Config
	clock   clock.Clock
	catalog productdomain.Catalog
	factory paymentdomain.AdapterFactory
}

func New(p Params) paymentdomain.CheckoutService {
	return &Service{
		log:     p.Log.Named("payment.service"),
		cfg:     p.Cfg,
		clock:   p.Clock,
		catalog: p.Catalog,
		factory: p.Factory,
	}
}

// CreateSession resolves the named plan and opens a hosted checkout session
// for it. An unknown plan fails before any provider traffic. When no secret
// key is available, or the provider call fails, it degrades to a mock
// session so the purchase flow stays walkable without live credentials.
func (s *Service) CreateSession(ctx context.Context, input paymentdomain.CreateSessionInput) (*paymentdomain.CheckoutSession, error) {
	product, err := s.catalog.Resolve(input.PlanName)
	if err != nil {
		return nil, err
	}

	key := s.secretKey(input.Credentials)
	if key == "" {
		s.log.Info("no payment credentials configured, issuing mock session",
			zap.String("product", product.Key))
		return s.mockSession(ctx, input.SuccessURL), nil
	}

	adapter := s.factory(key)
	providerSession, err := adapter.CreateCheckoutSession(ctx, paymentdomain.ProviderCheckoutInput{
		ProductName:        product.Name,
		ProductDescription: product.Description,
		Amount:             product.Price,
		Currency:           "usd",
		SuccessURL:         input.SuccessURL,
		CancelURL:          input.CancelURL,
		Metadata: map[string]string{
			"product_name": product.Name,
			"product_type": slug.Make(product.Name),
		},
	})
	if err != nil {
		s.log.Warn("provider checkout session failed, falling back to mock",
			zap.String("product", product.Key),
			zap.Error(err))
		return s.mockSession(ctx, input.SuccessURL), nil
	}

	return &paymentdomain.CheckoutSession{
		SessionID: providerSession.ID,
		URL:       providerSession.URL,
		Kind:      paymentdomain.SessionKindReal,
	}, nil
}

// Verify reports whether the session's payment completed. Mock sessions are
// always treated as paid without provider traffic. Without credentials the
// behavior depends on payments.allow_unverified: permissive mode reports
// paid, strict mode fails.
func (s *Service) Verify(ctx context.Context, sessionID string, creds *paymentdomain.Credentials) (*paymentdomain.Verification, error) {
	if paymentdomain.IsMockSessionID(sessionID) {
		return &paymentdomain.Verification{
			Paid:          true,
			PaymentStatus: "paid",
			CustomerEmail: "test@example.com",
		}, nil
	}

	key := s.secretKey(creds)
	if key == "" {
		if s.cfg.Payments.AllowUnverified {
			s.log.Warn("verifying session without credentials, treating as paid",
				zap.String("session_id", sessionID))
			return &paymentdomain.Verification{Paid: true, PaymentStatus: "unverified"}, nil
		}
		return nil, paymentdomain.ErrVerificationUnavailable
	}

	adapter := s.factory(key)
	providerSession, err := adapter.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		if s.cfg.Payments.AllowUnverified {
			s.log.Warn("session retrieval failed, treating as paid",
				zap.String("session_id", sessionID),
				zap.Error(err))
			return &paymentdomain.Verification{Paid: true, PaymentStatus: "unverified"}, nil
		}
		return nil, err
	}

	return &paymentdomain.Verification{
		Paid:          providerSession.PaymentStatus == "paid",
		PaymentStatus: providerSession.PaymentStatus,
		CustomerEmail: providerSession.CustomerEmail,
		ProductName:   providerSession.Metadata["product_name"],
		ProductType:   providerSession.Metadata["product_type"],
		AmountTotal:   providerSession.AmountTotal,
		Currency:      providerSession.Currency,
		Metadata:      providerSession.Metadata,
	}, nil
}

func (s *Service) secretKey(creds *paymentdomain.Credentials) string {
	if key := creds.SecretKey(); key != "" {
		return key
	}
	return s.cfg.Stripe.SecretKey()
}

func (s *Service) mockSession(ctx context.Context, successURL string) *paymentdomain.CheckoutSession {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	sessionID := fmt.Sprintf("%s%d_%s", paymentdomain.MockSessionPrefix, s.clock.Now(ctx).UnixMilli(), suffix)

	return &paymentdomain.CheckoutSession{
		SessionID: sessionID,
		URL:       expandSessionID(successURL, sessionID),
		Kind:      paymentdomain.SessionKindMock,
	}
}

func expandSessionID(successURL, sessionID string) string {
	if strings.Contains(successURL, sessionIDPlaceholder) {
		return strings.ReplaceAll(successURL, sessionIDPlaceholder, sessionID)
	}
	u, err := url.Parse(successURL)
	if err != nil {
		return successURL
	}
	q := u.Query()
	q.Set("session_id", sessionID)
	u.RawQuery = q.Encode()
	return u.String()
}
