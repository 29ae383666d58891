package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/fx"
	"go.uber.org/zap"

	analysisdomain "github.com/starloomhq/starloom/internal/analysis/domain"
	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
)

var ErrNothingToRender = errors.New("no analysis to render")

type Params struct {
	fx.In

	Log *zap.Logger
}

// Exporter renders a delivered reading as a downloadable PDF.
type Exporter struct {
	log *zap.Logger
}

func New(p Params) *Exporter {
	return &Exporter{log: p.Log.Named("report.exporter")}
}

func tierTitle(tier analysisdomain.Tier) string {
	switch tier {
	case analysisdomain.TierBasic:
		return "Basic Astrological Reading"
	case analysisdomain.TierDetailed:
		return "Detailed Astrological Analysis"
	case analysisdomain.TierComprehensive:
		return "Comprehensive Compatibility Reading"
	default:
		return "Astrological Reading"
	}
}

func (e *Exporter) Render(subject chartdomain.BirthSubject, analysis *analysisdomain.AnalysisResult) ([]byte, error) {
	if analysis == nil || strings.TrimSpace(analysis.Content) == "" {
		return nil, ErrNothingToRender
	}

	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRow(14, text.NewCol(12, tierTitle(analysis.Tier), props.Text{
		Size:  18,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))
	m.AddRow(8, text.NewCol(12, fmt.Sprintf("Prepared for %s", subject.Name), props.Text{
		Size:  11,
		Align: align.Center,
	}))
	m.AddRow(6, text.NewCol(12, fmt.Sprintf("Born %s at %s in %s", subject.BirthDate.Format("January 2, 2006"), subject.BirthTime, subject.Location), props.Text{
		Size:  9,
		Align: align.Center,
	}))
	m.AddRow(6, text.NewCol(12, fmt.Sprintf("Generated %s", analysis.GeneratedAt.Format("January 2, 2006")), props.Text{
		Size:  8,
		Align: align.Center,
	}))
	m.AddRow(6)

	for _, line := range strings.Split(analysis.Content, "\n") {
		addContentLine(m, line)
	}

	doc, err := m.Generate()
	if err != nil {
		e.log.Error("report rendering failed", zap.String("analysis_id", analysis.ID), zap.Error(err))
		return nil, err
	}
	return doc.GetBytes(), nil
}

// addContentLine flattens one markdown line of the reading into a styled
// row. The completion output only uses headings, bold and bullets, so a
// full markdown renderer is not needed.
func addContentLine(m core.Maroto, line string) {
	line = strings.TrimRight(line, " \t")
	switch {
	case strings.TrimSpace(line) == "":
		m.AddRow(3)
	case strings.HasPrefix(line, "# "):
		m.AddRow(10, text.NewCol(12, stripEmphasis(strings.TrimPrefix(line, "# ")), props.Text{
			Size:  14,
			Style: fontstyle.Bold,
		}))
	case strings.HasPrefix(line, "## "):
		m.AddRow(8, text.NewCol(12, stripEmphasis(strings.TrimPrefix(line, "## ")), props.Text{
			Size:  12,
			Style: fontstyle.Bold,
		}))
	case strings.HasPrefix(line, "### "):
		m.AddRow(7, text.NewCol(12, stripEmphasis(strings.TrimPrefix(line, "### ")), props.Text{
			Size:  10,
			Style: fontstyle.Bold,
		}))
	case strings.HasPrefix(strings.TrimSpace(line), "- "):
		m.AddRow(5, text.NewCol(12, "•  "+stripEmphasis(strings.TrimPrefix(strings.TrimSpace(line), "- ")), props.Text{
			Size: 9,
			Left: 4,
		}))
	default:
		m.AddRow(5, text.NewCol(12, stripEmphasis(line), props.Text{
			Size: 9,
		}))
	}
}

func stripEmphasis(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
