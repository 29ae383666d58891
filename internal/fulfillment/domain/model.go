package domain

import (
	"context"

	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
	flowdomain "github.com/starloomhq/starloom/internal/flowstate/domain"
)

// Step names the flow step a visitor is routed to when a guard trips.
type Step string

const (
	StepPlan      Step = "plan"
	StepBirthData Step = "birth-data"
	StepCheckout  Step = "checkout"
)

// MissingPreconditionError routes a visitor backward to the earliest step
// that supplies what the attempted step needs. It is a redirect, not a
// failure.
type MissingPreconditionError struct {
	Step Step
}

func (e *MissingPreconditionError) Error() string {
	return "missing precondition: complete step " + string(e.Step) + " first"
}

type BirthDataInput struct {
	Subject chartdomain.BirthSubject
	Partner *chartdomain.BirthSubject
}

type CheckoutInput struct {
	SuccessURL string
	CancelURL  string
}

type CheckoutRedirect struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
	IsMock    bool   `json:"isMock"`
}

type Orchestrator interface {
	Start(ctx context.Context) (*flowdomain.FlowState, error)
	Get(ctx context.Context, flowID string) (*flowdomain.FlowState, error)
	SelectPlan(ctx context.Context, flowID, planName string) (*flowdomain.FlowState, error)
	SubmitBirthData(ctx context.Context, flowID string, input BirthDataInput) (*flowdomain.FlowState, error)
	StartCheckout(ctx context.Context, flowID string, input CheckoutInput) (*CheckoutRedirect, error)
	CompleteReturn(ctx context.Context, flowID, sessionID string) (*flowdomain.FlowState, error)
}
