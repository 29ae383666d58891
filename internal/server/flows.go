package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
	fulfillmentdomain "github.com/starloomhq/starloom/internal/fulfillment/domain"
)

// StartFlow
// POST /api/flows
func (s *Server) StartFlow(c *gin.Context) {
	flow, err := s.orchestrator.Start(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, flow)
}

// GetFlow
// GET /api/flows/:id
func (s *Server) GetFlow(c *gin.Context) {
	flow, err := s.orchestrator.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, flow)
}

type selectPlanRequest struct {
	PlanName string `json:"planName" binding:"required"`
}

// SelectFlowPlan
// POST /api/flows/:id/plan
func (s *Server) SelectFlowPlan(c *gin.Context) {
	var req selectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	flow, err := s.orchestrator.SelectPlan(c.Request.Context(), c.Param("id"), req.PlanName)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, flow)
}

type submitBirthDataRequest struct {
	Subject birthSubjectRequest  `json:"subject" binding:"required"`
	Partner *birthSubjectRequest `json:"partner,omitempty"`
}

// SubmitFlowBirthData
// POST /api/flows/:id/birth-data
func (s *Server) SubmitFlowBirthData(c *gin.Context) {
	var req submitBirthDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	subject, err := req.Subject.toSubject()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var partner *chartdomain.BirthSubject
	if req.Partner != nil {
		p, err := req.Partner.toSubject()
		if err != nil {
			AbortWithError(c, err)
			return
		}
		partner = &p
	}

	flow, err := s.orchestrator.SubmitBirthData(c.Request.Context(), c.Param("id"), fulfillmentdomain.BirthDataInput{
		Subject: subject,
		Partner: partner,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, flow)
}

type startCheckoutRequest struct {
	SuccessURL string `json:"successUrl" binding:"required"`
	CancelURL  string `json:"cancelUrl"`
}

// StartFlowCheckout
// POST /api/flows/:id/checkout
func (s *Server) StartFlowCheckout(c *gin.Context) {
	var req startCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	redirect, err := s.orchestrator.StartCheckout(c.Request.Context(), c.Param("id"), fulfillmentdomain.CheckoutInput{
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, redirect)
}

type completeReturnRequest struct {
	SessionID string `json:"sessionId"`
}

// CompleteFlowReturn
// POST /api/flows/:id/return
func (s *Server) CompleteFlowReturn(c *gin.Context) {
	var req completeReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	flow, err := s.orchestrator.CompleteReturn(c.Request.Context(), c.Param("id"), req.SessionID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, gin.H{
		"state":    flow.State,
		"analysis": flow.Analysis,
	})
}

// DownloadFlowReport
// GET /api/flows/:id/report.pdf
func (s *Server) DownloadFlowReport(c *gin.Context) {
	flow, err := s.orchestrator.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if flow.Analysis == nil || flow.Chart == nil {
		AbortWithError(c, &fulfillmentdomain.MissingPreconditionError{Step: fulfillmentdomain.StepCheckout})
		return
	}

	pdf, err := s.exporter.Render(flow.Chart.BirthData, flow.Analysis)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-reading.pdf", flow.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
