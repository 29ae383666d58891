package domain

import (
	"context"
	"errors"
	"time"

	analysisdomain "github.com/starloomhq/starloom/internal/analysis/domain"
	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
	paymentdomain "github.com/starloomhq/starloom/internal/payment/domain"
)

var (
	ErrFlowNotFound = errors.New("flow not found")
)

// State tracks how far a purchase flow has progressed. Transitions are
// driven by the fulfillment service; the store only persists the bundle.
type State string

const (
	StateNew                State = "new"
	StatePlanSelected       State = "plan_selected"
	StateBirthDataSubmitted State = "birth_data_submitted"
	StateCheckoutPending    State = "checkout_pending"
	StateDelivered          State = "delivered"
	StateAborted            State = "aborted"
)

// FlowState is the per-visitor bundle carried across the purchase flow.
// It replaces ambient browser storage with an explicit server-side object
// keyed by flow id.
type FlowState struct {
	ID    string `json:"id"`
	State State  `json:"state"`

	SelectedPlan string              `json:"selectedPlan,omitempty"`
	Tier         analysisdomain.Tier `json:"selectedAnalysisType,omitempty"`

	Chart        *chartdomain.ChartPayload `json:"birthChartData,omitempty"`
	PartnerChart *chartdomain.ChartPayload `json:"partnerChartData,omitempty"`

	CheckoutSessionID string                    `json:"checkoutSessionId,omitempty"`
	CheckoutKind      paymentdomain.SessionKind `json:"checkoutKind,omitempty"`
	CheckoutURL       string                    `json:"checkoutUrl,omitempty"`

	Analysis *analysisdomain.AnalysisResult `json:"analysisData,omitempty"`

	// AbortReason records why a flow was routed backwards, for the client
	// to surface.
	AbortReason string `json:"abortReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store interface {
	Create(ctx context.Context) (*FlowState, error)
	Get(ctx context.Context, id string) (*FlowState, error)
	Save(ctx context.Context, flow *FlowState) error
}
