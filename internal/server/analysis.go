package server

import (
	"github.com/gin-gonic/gin"

	analysisdomain "github.com/starloomhq/starloom/internal/analysis/domain"
	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
)

type createAnalysisRequest struct {
	BirthChart        *chartdomain.ChartPayload `json:"birthChart" binding:"required"`
	AnalysisType      string                    `json:"analysisType" binding:"required"`
	PartnerBirthChart *chartdomain.ChartPayload `json:"partnerBirthChart,omitempty"`
}

// CreateAnalysis
// POST /api/ai-analysis
func (s *Server) CreateAnalysis(c *gin.Context) {
	var req createAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	tier, err := analysisdomain.ParseTier(req.AnalysisType)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.analysis.Generate(c.Request.Context(), req.BirthChart, req.PartnerBirthChart, tier)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, gin.H{
		"analysis": result,
		"isMock":   result.Mock,
	})
}
