package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/concrete-calc/internal/calc"
)

// CalculateRequest is the body of POST /calculators/{slug}/calculate
type CalculateRequest struct {
	Shape           string                 `json:"shape,omitempty" validate:"omitempty,max=50"`
	Unit            string                 `json:"unit,omitempty" validate:"omitempty,max=20"`
	Dimensions      map[string]calc.Length `json:"dimensions" validate:"required,min=1,max=12"`
	Quantity        int                    `json:"quantity,omitempty" validate:"omitempty,gte=1,lte=10000"`
	WastePercent    float64                `json:"wastePercent,omitempty" validate:"gte=0,lte=100"`
	Mix             string                 `json:"mix,omitempty" validate:"omitempty,max=10"`
	DryVolumeFactor float64                `json:"dryVolumeFactor,omitempty" validate:"omitempty,gte=1.5,lte=1.57"`
	DisplayUnit     string                 `json:"displayUnit,omitempty" validate:"omitempty,max=20"`
	PricePerUnit    float64                `json:"pricePerUnit,omitempty" validate:"gte=0"`
}

// CreateEstimateRequest is the body of POST /estimates
type CreateEstimateRequest struct {
	Calculator string `json:"calculator" validate:"required,max=50"`
	Title      string `json:"title,omitempty" validate:"max=200"`
	Notes      string `json:"notes,omitempty" validate:"max=2000"`
	CalculateRequest
}

// EstimateDTO is a saved estimate as returned by the API
type EstimateDTO struct {
	ID         uuid.UUID    `json:"id"`
	Calculator string       `json:"calculator"`
	Shape      string       `json:"shape"`
	Title      string       `json:"title,omitempty"`
	Notes      string       `json:"notes,omitempty"`
	Input      calc.Request `json:"input"`
	Result     calc.Result  `json:"result"`
	CreatedAt  time.Time    `json:"createdAt"`
	ExpiresAt  time.Time    `json:"expiresAt"`
	PrintURL   string       `json:"printUrl"`
}

// EstimateSummaryDTO is the admin listing row
type EstimateSummaryDTO struct {
	ID            uuid.UUID `json:"id"`
	Calculator    string    `json:"calculator"`
	Title         string    `json:"title,omitempty"`
	GrossVolumeM3 float64   `json:"grossVolumeM3"`
	CreatedAt     time.Time `json:"createdAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// PurgeResultDTO reports how many expired estimates were removed
type PurgeResultDTO struct {
	Deleted int64 `json:"deleted"`
}

// TokenRequest is the optional body of POST /admin/token
type TokenRequest struct {
	Subject string `json:"subject,omitempty" validate:"omitempty,max=100"`
}

// TokenDTO is an issued admin bearer token
type TokenDTO struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// UnitDTO describes one supported unit
type UnitDTO struct {
	Symbol string  `json:"symbol"`
	Factor float64 `json:"factor"`
}

// UnitsDTO lists linear units (factor to metres) and volume units
// (count per cubic metre)
type UnitsDTO struct {
	Length []UnitDTO `json:"length"`
	Volume []UnitDTO `json:"volume"`
}

// MixDTO is a nominal mix with its formatted ratio
type MixDTO struct {
	Grade            string  `json:"grade"`
	Ratio            string  `json:"ratio"`
	WaterCementRatio float64 `json:"waterCementRatio"`
}

// MixesDTO lists nominal mixes along with the constants used for take-off
type MixesDTO struct {
	Mixes                  []MixDTO         `json:"mixes"`
	DefaultDryVolumeFactor float64          `json:"defaultDryVolumeFactor"`
	MinDryVolumeFactor     float64          `json:"minDryVolumeFactor"`
	MaxDryVolumeFactor     float64          `json:"maxDryVolumeFactor"`
	PremixBags             []calc.PremixBag `json:"premixBags"`
}

// FAQDTO is one question and answer
type FAQDTO struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// BreadcrumbDTO is one step of a breadcrumb trail
type BreadcrumbDTO struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CalculatorSummaryDTO is one catalog entry
type CalculatorSummaryDTO struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Shapes      []string `json:"shapes"`
}

// CalculatorDetailDTO is a calculator with its inputs and page metadata
type CalculatorDetailDTO struct {
	CalculatorSummaryDTO
	Definition  *calc.Calculator `json:"definition"`
	FAQs        []FAQDTO         `json:"faqs"`
	Related     []string         `json:"related,omitempty"`
	Breadcrumbs []BreadcrumbDTO  `json:"breadcrumbs"`
	JSONLD      []map[string]any `json:"jsonLd"`
}

// ArticleSummaryDTO is one article in a listing
type ArticleSummaryDTO struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Published   time.Time  `json:"published"`
	Updated     *time.Time `json:"updated,omitempty"`
	Tags        []string   `json:"tags"`
}

// ArticleDTO is a full article with rendered HTML body
type ArticleDTO struct {
	ArticleSummaryDTO
	Calculators []string         `json:"calculators,omitempty"`
	HTML        string           `json:"html"`
	Breadcrumbs []BreadcrumbDTO  `json:"breadcrumbs"`
	JSONLD      []map[string]any `json:"jsonLd"`
}

// ListResponse wraps a list with its size
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}
