package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/straye-as/concrete-calc/internal/calc"
	"github.com/straye-as/concrete-calc/internal/domain"
)

//go:embed templates/print.html
var templateFS embed.FS

var printTemplate = template.Must(
	template.New("print.html").
		Funcs(template.FuncMap{"num": formatNumber}).
		ParseFS(templateFS, "templates/print.html"),
)

const printDateLayout = "2 January 2006"

type printView struct {
	SiteName       string
	Title          string
	CalculatorName string
	ShapeLabel     string
	Generated      string
	Expires        string
	URL            string
	ShowDisplay    bool
	Estimate       *domain.Estimate
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(calc.Round(v), 'f', -1, 64)
}

// renderPrint renders the printable summary of e
func renderPrint(e *domain.Estimate, siteName, shareURL string) ([]byte, error) {
	view := printView{
		SiteName:       siteName,
		Title:          e.Title,
		CalculatorName: e.Calculator,
		Generated:      e.CreatedAt.Format(printDateLayout),
		Expires:        e.ExpiresAt.Format(printDateLayout),
		URL:            shareURL,
		Estimate:       e,
	}
	if c, err := calc.Lookup(e.Calculator); err == nil {
		view.CalculatorName = c.Name
		if shape, err := c.Shape(e.Shape); err == nil && len(c.Shapes) > 1 {
			view.ShapeLabel = shape.Label
		}
	}
	if view.Title == "" {
		view.Title = view.CalculatorName + " estimate"
	}
	switch e.Result.GrossVolume.DisplayUnit {
	case "", calc.CubicMeter, calc.CubicFoot, calc.CubicYard:
	default:
		view.ShowDisplay = true
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render print view: %w", err)
	}
	return buf.Bytes(), nil
}
