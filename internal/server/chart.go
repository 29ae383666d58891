package server

import (
	"time"

	"github.com/gin-gonic/gin"

	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
)

type birthSubjectRequest struct {
	Name      string  `json:"name" binding:"required"`
	BirthDate string  `json:"birthDate" binding:"required"`
	BirthTime string  `json:"birthTime" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Location  string  `json:"location"`
}

func (r birthSubjectRequest) toSubject() (chartdomain.BirthSubject, error) {
	birthDate, err := time.Parse("2006-01-02", r.BirthDate)
	if err != nil {
		return chartdomain.BirthSubject{}, chartdomain.ErrInvalidBirthDate
	}
	return chartdomain.BirthSubject{
		Name:      r.Name,
		BirthDate: birthDate,
		BirthTime: r.BirthTime,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Location:  r.Location,
	}, nil
}

// CreateChart
// POST /api/chart
func (s *Server) CreateChart(c *gin.Context) {
	var req birthSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	subject, err := req.toSubject()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	chart, err := s.charts.Generate(c.Request.Context(), subject)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, chart)
}

// ListProducts
// GET /api/products
func (s *Server) ListProducts(c *gin.Context) {
	respondData(c, s.catalog.List())
}
