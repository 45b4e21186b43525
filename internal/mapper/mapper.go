package mapper

import (
	"strings"

	"github.com/straye-as/concrete-calc/internal/calc"
	"github.com/straye-as/concrete-calc/internal/content"
	"github.com/straye-as/concrete-calc/internal/domain"
)

// ToCalcRequest converts the API body for calculator slug into a calc.Request.
// Units are parsed so aliases such as "feet" are accepted.
func ToCalcRequest(slug string, req *domain.CalculateRequest) (calc.Request, error) {
	out := calc.Request{
		Calculator:      slug,
		Shape:           strings.TrimSpace(req.Shape),
		Dimensions:      make(map[string]calc.Length, len(req.Dimensions)),
		Quantity:        req.Quantity,
		WastePercent:    req.WastePercent,
		Mix:             strings.TrimSpace(req.Mix),
		DryVolumeFactor: req.DryVolumeFactor,
		PricePerUnit:    req.PricePerUnit,
	}

	if req.Unit != "" {
		u, err := calc.ParseLengthUnit(req.Unit)
		if err != nil {
			return calc.Request{}, err
		}
		out.Unit = u
	}
	if req.DisplayUnit != "" {
		u, err := calc.ParseVolumeUnit(req.DisplayUnit)
		if err != nil {
			return calc.Request{}, err
		}
		out.DisplayUnit = u
	}

	for name, l := range req.Dimensions {
		if l.Unit != "" {
			u, err := calc.ParseLengthUnit(string(l.Unit))
			if err != nil {
				return calc.Request{}, err
			}
			l.Unit = u
		}
		out.Dimensions[name] = l
	}

	return out, nil
}

// ToEstimateDTO converts Estimate to EstimateDTO. printURL is the absolute
// link to the printable summary.
func ToEstimateDTO(estimate *domain.Estimate, printURL string) domain.EstimateDTO {
	return domain.EstimateDTO{
		ID:         estimate.ID,
		Calculator: estimate.Calculator,
		Shape:      estimate.Shape,
		Title:      estimate.Title,
		Notes:      estimate.Notes,
		Input:      estimate.Input,
		Result:     estimate.Result,
		CreatedAt:  estimate.CreatedAt,
		ExpiresAt:  estimate.ExpiresAt,
		PrintURL:   printURL,
	}
}

// ToEstimateSummaryDTO converts Estimate to EstimateSummaryDTO
func ToEstimateSummaryDTO(estimate *domain.Estimate) domain.EstimateSummaryDTO {
	return domain.EstimateSummaryDTO{
		ID:            estimate.ID,
		Calculator:    estimate.Calculator,
		Title:         estimate.Title,
		GrossVolumeM3: estimate.GrossVolumeM3,
		CreatedAt:     estimate.CreatedAt,
		ExpiresAt:     estimate.ExpiresAt,
	}
}

// ToUnitsDTO lists every supported length and volume unit
func ToUnitsDTO() domain.UnitsDTO {
	dto := domain.UnitsDTO{}
	for _, u := range calc.LengthUnits() {
		f, _ := u.MetersPerUnit()
		dto.Length = append(dto.Length, domain.UnitDTO{Symbol: string(u), Factor: f})
	}
	for _, u := range calc.VolumeUnits() {
		f, _ := calc.FromCubicMeters(1, u)
		dto.Volume = append(dto.Volume, domain.UnitDTO{Symbol: string(u), Factor: f})
	}
	return dto
}

// ToMixesDTO lists nominal mixes with the take-off constants
func ToMixesDTO() domain.MixesDTO {
	mixes := calc.NominalMixes()
	dto := domain.MixesDTO{
		Mixes:                  make([]domain.MixDTO, 0, len(mixes)),
		DefaultDryVolumeFactor: calc.DefaultDryVolumeFactor,
		MinDryVolumeFactor:     calc.MinDryVolumeFactor,
		MaxDryVolumeFactor:     calc.MaxDryVolumeFactor,
		PremixBags:             calc.PremixBags(),
	}
	for _, m := range mixes {
		dto.Mixes = append(dto.Mixes, domain.MixDTO{
			Grade:            m.Grade,
			Ratio:            m.Ratio(),
			WaterCementRatio: m.WaterRatio,
		})
	}
	return dto
}

// ToCalculatorSummaryDTO merges the registry entry with its page copy
func ToCalculatorSummaryDTO(c *calc.Calculator, page *content.CalculatorPage) domain.CalculatorSummaryDTO {
	shapes := make([]string, 0, len(c.Shapes))
	for _, s := range c.Shapes {
		shapes = append(shapes, s.Name)
	}
	return domain.CalculatorSummaryDTO{
		Slug:        c.Slug,
		Name:        c.Name,
		Title:       page.Title,
		Description: page.Description,
		Category:    page.Category,
		Shapes:      shapes,
	}
}

// ToFAQDTOs converts content FAQs
func ToFAQDTOs(faqs []content.FAQ) []domain.FAQDTO {
	out := make([]domain.FAQDTO, 0, len(faqs))
	for _, f := range faqs {
		out = append(out, domain.FAQDTO{Question: f.Question, Answer: f.Answer})
	}
	return out
}

// ToBreadcrumbDTOs converts a breadcrumb trail
func ToBreadcrumbDTOs(crumbs []content.Crumb) []domain.BreadcrumbDTO {
	out := make([]domain.BreadcrumbDTO, 0, len(crumbs))
	for _, c := range crumbs {
		out = append(out, domain.BreadcrumbDTO{Name: c.Name, URL: c.URL})
	}
	return out
}

// ToArticleSummaryDTO converts Article to ArticleSummaryDTO
func ToArticleSummaryDTO(a *content.Article) domain.ArticleSummaryDTO {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.ArticleSummaryDTO{
		Slug:        a.Slug,
		Title:       a.Title,
		Description: a.Description,
		Published:   a.Published,
		Updated:     a.Updated,
		Tags:        tags,
	}
}
