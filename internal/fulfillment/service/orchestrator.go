package service

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	analysisdomain "github.com/starloomhq/starloom/internal/analysis/domain"
	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
	flowdomain "github.com/starloomhq/starloom/internal/flowstate/domain"
	"github.com/starloomhq/starloom/internal/fulfillment/domain"
	paymentdomain "github.com/starloomhq/starloom/internal/payment/domain"
	productdomain "github.com/starloomhq/starloom/internal/product/domain"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Flows    flowdomain.Store
	Catalog  productdomain.Catalog
	Charts   chartdomain.Generator
	Analysis analysisdomain.Service
	Checkout paymentdomain.CheckoutService
}

type orchestrator struct {
	log      *zap.Logger
	flows    flowdomain.Store
	catalog  productdomain.Catalog
	charts   chartdomain.Generator
	analysis analysisdomain.Service
	checkout paymentdomain.CheckoutService
}

func New(p Params) domain.Orchestrator {
	return &orchestrator{
		log:      p.Log.Named("fulfillment.service"),
		flows:    p.Flows,
		catalog:  p.Catalog,
		charts:   p.Charts,
		analysis: p.Analysis,
		checkout: p.Checkout,
	}
}

func (o *orchestrator) Start(ctx context.Context) (*flowdomain.FlowState, error) {
	return o.flows.Create(ctx)
}

func (o *orchestrator) Get(ctx context.Context, flowID string) (*flowdomain.FlowState, error) {
	return o.flows.Get(ctx, flowID)
}

func (o *orchestrator) SelectPlan(ctx context.Context, flowID, planName string) (*flowdomain.FlowState, error) {
	flow, err := o.flows.Get(ctx, flowID)
	if err != nil {
		return nil, err
	}

	product, err := o.catalog.Resolve(planName)
	if err != nil {
		return nil, err
	}
	tier, err := analysisdomain.ParseTier(product.Tier)
	if err != nil {
		return nil, err
	}

	flow.SelectedPlan = product.Name
	flow.Tier = tier
	flow.State = flowdomain.StatePlanSelected
	flow.AbortReason = ""
	if err := o.flows.Save(ctx, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

func (o *orchestrator) SubmitBirthData(ctx context.Context, flowID string, input domain.BirthDataInput) (*flowdomain.FlowState, error) {
	flow, err := o.flows.Get(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if flow.SelectedPlan == "" {
		return nil, &domain.MissingPreconditionError{Step: domain.StepPlan}
	}

	// Comprehensive requires the partner subject before any chart work, so
	// a rejected submission leaves nothing behind in the store.
	if flow.Tier == analysisdomain.TierComprehensive && input.Partner == nil {
		return nil, analysisdomain.ErrMissingPartnerData
	}

	chart, err := o.charts.Generate(ctx, input.Subject)
	if err != nil {
		return nil, err
	}

	var partnerChart *chartdomain.ChartPayload
	if flow.Tier == analysisdomain.TierComprehensive {
		partnerChart, err = o.charts.Generate(ctx, *input.Partner)
		if err != nil {
			return nil, err
		}
	}

	flow.Chart = chart
	flow.PartnerChart = partnerChart
	flow.Analysis = nil
	flow.State = flowdomain.StateBirthDataSubmitted
	flow.AbortReason = ""
	if err := o.flows.Save(ctx, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

func (o *orchestrator) StartCheckout(ctx context.Context, flowID string, input domain.CheckoutInput) (*domain.CheckoutRedirect, error) {
	flow, err := o.flows.Get(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if flow.SelectedPlan == "" {
		return nil, &domain.MissingPreconditionError{Step: domain.StepPlan}
	}
	if flow.Chart == nil {
		return nil, &domain.MissingPreconditionError{Step: domain.StepBirthData}
	}

	session, err := o.checkout.CreateSession(ctx, paymentdomain.CreateSessionInput{
		PlanName:   flow.SelectedPlan,
		SuccessURL: input.SuccessURL,
		CancelURL:  input.CancelURL,
	})
	if err != nil {
		return nil, err
	}

	flow.CheckoutSessionID = session.SessionID
	flow.CheckoutKind = session.Kind
	flow.CheckoutURL = session.URL
	flow.State = flowdomain.StateCheckoutPending
	if err := o.flows.Save(ctx, flow); err != nil {
		return nil, err
	}

	return &domain.CheckoutRedirect{
		SessionID: session.SessionID,
		URL:       session.URL,
		IsMock:    session.IsMock(),
	}, nil
}

// CompleteReturn handles the visitor landing back from checkout. Reloads
// are absorbed first: a flow that already carries its analysis is delivered
// again without touching the payment provider or the completion API.
func (o *orchestrator) CompleteReturn(ctx context.Context, flowID, sessionID string) (*flowdomain.FlowState, error) {
	flow, err := o.flows.Get(ctx, flowID)
	if err != nil {
		return nil, err
	}

	if flow.Analysis != nil {
		if flow.State != flowdomain.StateDelivered {
			flow.State = flowdomain.StateDelivered
			if err := o.flows.Save(ctx, flow); err != nil {
				return nil, err
			}
		}
		return flow, nil
	}

	if flow.SelectedPlan == "" {
		return nil, &domain.MissingPreconditionError{Step: domain.StepPlan}
	}
	if flow.Chart == nil {
		return nil, &domain.MissingPreconditionError{Step: domain.StepBirthData}
	}
	if sessionID == "" {
		sessionID = flow.CheckoutSessionID
	}
	if sessionID == "" {
		return nil, &domain.MissingPreconditionError{Step: domain.StepCheckout}
	}

	if !isMockSession(flow, sessionID) {
		verification, err := o.checkout.Verify(ctx, sessionID, nil)
		if err != nil || !verification.Paid {
			if err != nil {
				o.log.Warn("payment verification failed",
					zap.String("flow_id", flow.ID),
					zap.String("session_id", sessionID),
					zap.Error(err))
			}
			flow.State = flowdomain.StateAborted
			flow.AbortReason = "payment verification failed"
			if saveErr := o.flows.Save(ctx, flow); saveErr != nil {
				return nil, saveErr
			}
			return nil, paymentdomain.ErrPaymentNotCompleted
		}
	}

	analysis, err := o.analysis.Generate(ctx, flow.Chart, flow.PartnerChart, flow.Tier)
	if err != nil {
		flow.State = flowdomain.StateAborted
		flow.AbortReason = "analysis generation failed"
		if saveErr := o.flows.Save(ctx, flow); saveErr != nil {
			return nil, saveErr
		}
		return nil, err
	}

	flow.CheckoutSessionID = sessionID
	flow.Analysis = analysis
	flow.State = flowdomain.StateDelivered
	flow.AbortReason = ""
	if err := o.flows.Save(ctx, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

// isMockSession trusts the kind tag recorded when the session was created.
// The prefix sniff only covers ids the flow has never seen, where no tag
// exists.
func isMockSession(flow *flowdomain.FlowState, sessionID string) bool {
	if sessionID == flow.CheckoutSessionID && flow.CheckoutKind != "" {
		return flow.CheckoutKind == paymentdomain.SessionKindMock
	}
	return paymentdomain.IsMockSessionID(sessionID)
}
