package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bwmarrin/snowflake"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	analysisdomain "github.com/starloomhq/starloom/internal/analysis/domain"
	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
	chartservice "github.com/starloomhq/starloom/internal/chart/service"
	"github.com/starloomhq/starloom/internal/clock"
	flowdomain "github.com/starloomhq/starloom/internal/flowstate/domain"
	flowrepository "github.com/starloomhq/starloom/internal/flowstate/repository"
	"github.com/starloomhq/starloom/internal/fulfillment/domain"
	paymentdomain "github.com/starloomhq/starloom/internal/payment/domain"
	productservice "github.com/starloomhq/starloom/internal/product/service"
)

type fakeAnalysis struct {
	calls int
	err   error
}

func (f *fakeAnalysis) Generate(ctx context.Context, chart, partner *chartdomain.ChartPayload, tier analysisdomain.Tier) (*analysisdomain.AnalysisResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if tier == analysisdomain.TierComprehensive && partner == nil {
		return nil, analysisdomain.ErrMissingPartnerData
	}
	return &analysisdomain.AnalysisResult{
		ID:      fmt.Sprintf("analysis_%d", f.calls),
		ChartID: chart.ID,
		Tier:    tier,
		Content: "# Your Reading",
	}, nil
}

type fakeCheckout struct {
	createCalls int
	verifyCalls int
	verifyPaid  bool
	verifyErr   error
	mock        bool
}

func (f *fakeCheckout) CreateSession(ctx context.Context, input paymentdomain.CreateSessionInput) (*paymentdomain.CheckoutSession, error) {
	f.createCalls++
	if f.mock {
		return &paymentdomain.CheckoutSession{
			SessionID: "test_session_1714000000000_abc",
			URL:       input.SuccessURL + "?session_id=test_session_1714000000000_abc",
			Kind:      paymentdomain.SessionKindMock,
		}, nil
	}
	return &paymentdomain.CheckoutSession{
		SessionID: "cs_test_123",
		URL:       "https://checkout.stripe.com/c/pay/cs_test_123",
		Kind:      paymentdomain.SessionKindReal,
	}, nil
}

func (f *fakeCheckout) Verify(ctx context.Context, sessionID string, creds *paymentdomain.Credentials) (*paymentdomain.Verification, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &paymentdomain.Verification{Paid: f.verifyPaid}, nil
}

type fixture struct {
	orchestrator domain.Orchestrator
	flows        flowdomain.Store
	analysis     *fakeAnalysis
	checkout     *fakeCheckout
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	flows := flowrepository.New(flowrepository.Params{
		Log:   zap.NewNop(),
		Redis: client,
		GenID: node,
		Clock: clock.SystemClock{},
	})

	charts := chartservice.New(chartservice.Params{
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     clock.SystemClock{},
		Ephemeris: chartservice.NewStaticEphemeris(),
	})

	analysis := &fakeAnalysis{}
	checkout := &fakeCheckout{mock: true}

	orch := New(Params{
		Log:      zap.NewNop(),
		Flows:    flows,
		Catalog:  productservice.New(),
		Charts:   charts,
		Analysis: analysis,
		Checkout: checkout,
	})

	return &fixture{orchestrator: orch, flows: flows, analysis: analysis, checkout: checkout}
}

func subject() chartdomain.BirthSubject {
	return chartdomain.BirthSubject{
		Name:      "Ada",
		BirthDate: time.Date(1990, 4, 15, 0, 0, 0, 0, time.UTC),
		BirthTime: "08:30",
		Latitude:  51.5,
		Longitude: -0.12,
		Location:  "London, UK",
	}
}

func partnerSubject() *chartdomain.BirthSubject {
	p := subject()
	p.Name = "Grace"
	p.BirthDate = time.Date(1992, 9, 2, 0, 0, 0, 0, time.UTC)
	return &p
}

func (f *fixture) throughBirthData(t *testing.T, plan string, partner *chartdomain.BirthSubject) *flowdomain.FlowState {
	t.Helper()
	ctx := context.Background()

	flow, err := f.orchestrator.Start(ctx)
	require.NoError(t, err)

	_, err = f.orchestrator.SelectPlan(ctx, flow.ID, plan)
	require.NoError(t, err)

	flow, err = f.orchestrator.SubmitBirthData(ctx, flow.ID, domain.BirthDataInput{
		Subject: subject(),
		Partner: partner,
	})
	require.NoError(t, err)
	return flow
}

func TestSelectPlan_UnknownPlan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	flow, err := f.orchestrator.Start(ctx)
	require.NoError(t, err)

	_, err = f.orchestrator.SelectPlan(ctx, flow.ID, "Platinum Reading")
	require.Error(t, err)
}

func TestSubmitBirthData_RequiresPlan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	flow, err := f.orchestrator.Start(ctx)
	require.NoError(t, err)

	_, err = f.orchestrator.SubmitBirthData(ctx, flow.ID, domain.BirthDataInput{Subject: subject()})

	var precondition *domain.MissingPreconditionError
	require.ErrorAs(t, err, &precondition)
	assert.Equal(t, domain.StepPlan, precondition.Step)
}

func TestSubmitBirthData_ComprehensiveRequiresPartner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	flow, err := f.orchestrator.Start(ctx)
	require.NoError(t, err)
	_, err = f.orchestrator.SelectPlan(ctx, flow.ID, "Comprehensive Reading")
	require.NoError(t, err)

	_, err = f.orchestrator.SubmitBirthData(ctx, flow.ID, domain.BirthDataInput{Subject: subject()})
	require.ErrorIs(t, err, analysisdomain.ErrMissingPartnerData)

	// the rejected submission must leave nothing behind
	stored, err := f.flows.Get(ctx, flow.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Chart)
	assert.Nil(t, stored.PartnerChart)
	assert.Equal(t, flowdomain.StatePlanSelected, stored.State)
}

func TestSubmitBirthData_ComprehensiveStoresBothCharts(t *testing.T) {
	f := newFixture(t)

	flow := f.throughBirthData(t, "Comprehensive Reading", partnerSubject())

	require.NotNil(t, flow.Chart)
	require.NotNil(t, flow.PartnerChart)
	assert.Equal(t, "Grace", flow.PartnerChart.BirthData.Name)
	assert.Equal(t, flowdomain.StateBirthDataSubmitted, flow.State)
}

func TestStartCheckout_RequiresBirthData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	flow, err := f.orchestrator.Start(ctx)
	require.NoError(t, err)
	_, err = f.orchestrator.SelectPlan(ctx, flow.ID, "Basic Reading")
	require.NoError(t, err)

	_, err = f.orchestrator.StartCheckout(ctx, flow.ID, domain.CheckoutInput{})

	var precondition *domain.MissingPreconditionError
	require.ErrorAs(t, err, &precondition)
	assert.Equal(t, domain.StepBirthData, precondition.Step)
	assert.Zero(t, f.checkout.createCalls)
}

func TestCompleteReturn_MockSessionSkipsVerification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	flow := f.throughBirthData(t, "Detailed Analysis", nil)

	redirect, err := f.orchestrator.StartCheckout(ctx, flow.ID, domain.CheckoutInput{
		SuccessURL: "http://localhost:8080/payment-success",
	})
	require.NoError(t, err)
	assert.True(t, redirect.IsMock)

	flow, err = f.orchestrator.CompleteReturn(ctx, flow.ID, redirect.SessionID)
	require.NoError(t, err)

	assert.Equal(t, flowdomain.StateDelivered, flow.State)
	require.NotNil(t, flow.Analysis)
	assert.Equal(t, analysisdomain.TierDetailed, flow.Analysis.Tier)
	assert.Zero(t, f.checkout.verifyCalls)
	assert.Equal(t, 1, f.analysis.calls)
}

func TestCompleteReturn_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	flow := f.throughBirthData(t, "Detailed Analysis", nil)
	redirect, err := f.orchestrator.StartCheckout(ctx, flow.ID, domain.CheckoutInput{
		SuccessURL: "http://localhost:8080/payment-success",
	})
	require.NoError(t, err)

	first, err := f.orchestrator.CompleteReturn(ctx, flow.ID, redirect.SessionID)
	require.NoError(t, err)

	// reload of the success page: no second verification, no second
	// generation, same analysis back
	second, err := f.orchestrator.CompleteReturn(ctx, flow.ID, redirect.SessionID)
	require.NoError(t, err)

	assert.Equal(t, first.Analysis.ID, second.Analysis.ID)
	assert.Equal(t, 1, f.analysis.calls)
	assert.Zero(t, f.checkout.verifyCalls)
}

func TestCompleteReturn_RealSessionVerified(t *testing.T) {
	f := newFixture(t)
	f.checkout.mock = false
	f.checkout.verifyPaid = true
	ctx := context.Background()

	flow := f.throughBirthData(t, "Basic Reading", nil)
	redirect, err := f.orchestrator.StartCheckout(ctx, flow.ID, domain.CheckoutInput{})
	require.NoError(t, err)
	assert.False(t, redirect.IsMock)

	flow, err = f.orchestrator.CompleteReturn(ctx, flow.ID, redirect.SessionID)
	require.NoError(t, err)

	assert.Equal(t, flowdomain.StateDelivered, flow.State)
	assert.Equal(t, 1, f.checkout.verifyCalls)
}

func TestCompleteReturn_VerificationFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.checkout.mock = false
	f.checkout.verifyPaid = false
	ctx := context.Background()

	flow := f.throughBirthData(t, "Basic Reading", nil)
	redirect, err := f.orchestrator.StartCheckout(ctx, flow.ID, domain.CheckoutInput{})
	require.NoError(t, err)

	_, err = f.orchestrator.CompleteReturn(ctx, flow.ID, redirect.SessionID)
	require.ErrorIs(t, err, paymentdomain.ErrPaymentNotCompleted)

	stored, err := f.flows.Get(ctx, flow.ID)
	require.NoError(t, err)
	assert.Equal(t, flowdomain.StateAborted, stored.State)
	assert.Equal(t, "payment verification failed", stored.AbortReason)
	assert.Nil(t, stored.Analysis)
	assert.Zero(t, f.analysis.calls)
}

func TestCompleteReturn_AnalysisFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.analysis.err = analysisdomain.ErrCompletionUnavailable
	ctx := context.Background()

	flow := f.throughBirthData(t, "Detailed Analysis", nil)
	redirect, err := f.orchestrator.StartCheckout(ctx, flow.ID, domain.CheckoutInput{
		SuccessURL: "http://localhost:8080/payment-success",
	})
	require.NoError(t, err)

	_, err = f.orchestrator.CompleteReturn(ctx, flow.ID, redirect.SessionID)
	require.ErrorIs(t, err, analysisdomain.ErrCompletionUnavailable)

	stored, err := f.flows.Get(ctx, flow.ID)
	require.NoError(t, err)
	assert.Equal(t, flowdomain.StateAborted, stored.State)
	assert.Equal(t, "analysis generation failed", stored.AbortReason)
	assert.Nil(t, stored.Analysis)
}

func TestCompleteReturn_MissingSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	flow := f.throughBirthData(t, "Basic Reading", nil)

	_, err := f.orchestrator.CompleteReturn(ctx, flow.ID, "")

	var precondition *domain.MissingPreconditionError
	require.ErrorAs(t, err, &precondition)
	assert.Equal(t, domain.StepCheckout, precondition.Step)
}

func TestCompleteReturn_UnknownFlow(t *testing.T) {
	f := newFixture(t)

	_, err := f.orchestrator.CompleteReturn(context.Background(), "flow_missing", "test_session_1_a")
	require.ErrorIs(t, err, flowdomain.ErrFlowNotFound)
}

func TestCompleteReturn_StoredKindBeatsPrefix(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	flow := f.throughBirthData(t, "Basic Reading", nil)

	// a mock session whose id lacks the usual prefix: the recorded kind
	// tag must still route around verification
	stored, err := f.flows.Get(ctx, flow.ID)
	require.NoError(t, err)
	stored.CheckoutSessionID = "cs_relabeled_999"
	stored.CheckoutKind = paymentdomain.SessionKindMock
	stored.State = flowdomain.StateCheckoutPending
	require.NoError(t, f.flows.Save(ctx, stored))

	flow, err = f.orchestrator.CompleteReturn(ctx, flow.ID, "cs_relabeled_999")
	require.NoError(t, err)

	assert.Equal(t, flowdomain.StateDelivered, flow.State)
	assert.Zero(t, f.checkout.verifyCalls)
	assert.Equal(t, 1, f.analysis.calls)
}

var errBoom = errors.New("boom")

func TestCompleteReturn_VerifierErrorAborts(t *testing.T) {
	f := newFixture(t)
	f.checkout.mock = false
	f.checkout.verifyErr = errBoom
	ctx := context.Background()

	flow := f.throughBirthData(t, "Basic Reading", nil)
	redirect, err := f.orchestrator.StartCheckout(ctx, flow.ID, domain.CheckoutInput{})
	require.NoError(t, err)

	_, err = f.orchestrator.CompleteReturn(ctx, flow.ID, redirect.SessionID)
	require.ErrorIs(t, err, paymentdomain.ErrPaymentNotCompleted)
}
