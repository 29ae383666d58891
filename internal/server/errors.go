package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	analysisdomain "github.com/starloomhq/starloom/internal/analysis/domain"
	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
	flowdomain "github.com/starloomhq/starloom/internal/flowstate/domain"
	fulfillmentdomain "github.com/starloomhq/starloom/internal/fulfillment/domain"
	paymentdomain "github.com/starloomhq/starloom/internal/payment/domain"
	productdomain "github.com/starloomhq/starloom/internal/product/domain"
	"github.com/starloomhq/starloom/internal/report"
)

var ErrInvalidRequest = errors.New("invalid request body")

var validationErrors = []error{
	ErrInvalidRequest,
	chartdomain.ErrInvalidBirthDate,
	chartdomain.ErrInvalidBirthTime,
	chartdomain.ErrInvalidLatitude,
	chartdomain.ErrInvalidLongitude,
	chartdomain.ErrMissingLocation,
	analysisdomain.ErrInvalidTier,
}

// AbortWithError maps domain errors onto the wire contract. Anything
// unmapped is a 500 with a generic message so internals never leak.
func AbortWithError(c *gin.Context, err error) {
	var precondition *fulfillmentdomain.MissingPreconditionError
	if errors.As(err, &precondition) {
		abort(c, http.StatusConflict, err.Error(), gin.H{"redirectTo": string(precondition.Step)})
		return
	}

	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			abort(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
	}

	switch {
	case errors.Is(err, productdomain.ErrUnknownProduct):
		abort(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, analysisdomain.ErrMissingPartnerData):
		abort(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, analysisdomain.ErrCompletionUnavailable):
		abort(c, http.StatusServiceUnavailable, err.Error(), nil)
	case errors.Is(err, paymentdomain.ErrVerificationUnavailable):
		abort(c, http.StatusServiceUnavailable, err.Error(), nil)
	case errors.Is(err, paymentdomain.ErrPaymentNotCompleted):
		abort(c, http.StatusPaymentRequired, err.Error(), nil)
	case errors.Is(err, flowdomain.ErrFlowNotFound):
		abort(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, report.ErrNothingToRender):
		abort(c, http.StatusConflict, err.Error(), nil)
	default:
		abort(c, http.StatusInternalServerError, "internal error", nil)
	}
}

func abort(c *gin.Context, status int, message string, details gin.H) {
	body := gin.H{"success": false, "error": message}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, body)
}
