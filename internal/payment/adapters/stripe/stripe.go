package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	paymentdomain "github.com/starloomhq/starloom/internal/payment/domain"
)

const defaultAPIBase = "https://api.stripe.com"

// Adapter drives Stripe's hosted Checkout over the REST API with
// form-encoded requests.
type Adapter struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewAdapter(secretKey string) *Adapter {
	return &Adapter{
		apiKey:  strings.TrimSpace(secretKey),
		baseURL: defaultAPIBase,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewFactory returns the provider factory wired into the checkout service.
func NewFactory() paymentdomain.AdapterFactory {
	return func(secretKey string) paymentdomain.Adapter {
		return NewAdapter(secretKey)
	}
}

func (a *Adapter) CreateCheckoutSession(ctx context.Context, input paymentdomain.ProviderCheckoutInput) (*paymentdomain.ProviderSession, error) {
	if a.apiKey == "" {
		return nil, errors.New("stripe api key not configured")
	}

	// Call Stripe API: POST /v1/checkout/sessions
	endpoint := a.baseURL + "/v1/checkout/sessions"

	data := url.Values{}
	data.Set("mode", "payment")
	data.Set("success_url", input.SuccessURL)
	data.Set("cancel_url", input.CancelURL)
	data.Set("line_items[0][price_data][currency]", strings.ToLower(input.Currency))
	data.Set("line_items[0][price_data][product_data][name]", input.ProductName)
	if input.ProductDescription != "" {
		data.Set("line_items[0][price_data][product_data][description]", input.ProductDescription)
	}
	data.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(input.Amount, 10))
	data.Set("line_items[0][quantity]", "1")

	for k, v := range input.Metadata {
		data.Set("metadata["+k+"]", v)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("stripe api error: %d body: %s", resp.StatusCode, string(bodyBytes))
	}

	var session stripeCheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}

	return session.toProviderSession(), nil
}

func (a *Adapter) RetrieveCheckoutSession(ctx context.Context, providerSessionID string) (*paymentdomain.ProviderSession, error) {
	if a.apiKey == "" {
		return nil, errors.New("stripe api key not configured")
	}

	// Call Stripe API: GET /v1/checkout/sessions/{id}
	endpoint := fmt.Sprintf("%s/v1/checkout/sessions/%s", a.baseURL, url.PathEscape(providerSessionID))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("stripe api error: %d body: %s", resp.StatusCode, string(bodyBytes))
	}

	var session stripeCheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}

	return session.toProviderSession(), nil
}

type stripeCheckoutSession struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	PaymentStatus   string            `json:"payment_status"`
	AmountTotal     int64             `json:"amount_total"`
	Currency        string            `json:"currency"`
	Metadata        map[string]string `json:"metadata"`
	CustomerDetails *struct {
		Email string `json:"email"`
	} `json:"customer_details"`
}

func (s stripeCheckoutSession) toProviderSession() *paymentdomain.ProviderSession {
	out := &paymentdomain.ProviderSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: s.PaymentStatus,
		AmountTotal:   s.AmountTotal,
		Currency:      s.Currency,
		Metadata:      s.Metadata,
	}
	if s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	return out
}
