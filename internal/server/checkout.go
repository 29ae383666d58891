package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	paymentdomain "github.com/starloomhq/starloom/internal/payment/domain"
)

type createCheckoutSessionRequest struct {
	ProductName        string                     `json:"productName" binding:"required"`
	SuccessURL         string                     `json:"successUrl" binding:"required"`
	CancelURL          string                     `json:"cancelUrl"`
	PaymentCredentials *paymentdomain.Credentials `json:"paymentCredentials,omitempty"`
}

// CreateCheckoutSession
// POST /api/create-checkout-session
func (s *Server) CreateCheckoutSession(c *gin.Context) {
	var req createCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	session, err := s.checkout.CreateSession(c.Request.Context(), paymentdomain.CreateSessionInput{
		PlanName:    req.ProductName,
		SuccessURL:  req.SuccessURL,
		CancelURL:   req.CancelURL,
		Credentials: req.PaymentCredentials,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, gin.H{
		"sessionId": session.SessionID,
		"url":       session.URL,
		"isMock":    session.IsMock(),
	})
}

type verifyPaymentRequest struct {
	SessionID          string                     `json:"sessionId" binding:"required"`
	PaymentCredentials *paymentdomain.Credentials `json:"paymentCredentials,omitempty"`
}

// VerifyPayment
// POST /api/verify-payment
func (s *Server) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	verification, err := s.checkout.Verify(c.Request.Context(), req.SessionID, req.PaymentCredentials)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session": verification})
}
