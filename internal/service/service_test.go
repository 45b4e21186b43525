package service_test

import (
	"testing"

	"github.com/straye-as/concrete-calc/internal/config"
	"github.com/straye-as/concrete-calc/internal/content"
	"github.com/straye-as/concrete-calc/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSite = config.SiteConfig{Name: "Concrete Calc", BaseURL: "https://calc.example.com"}

func newCalculatorService(t *testing.T) *service.CalculatorService {
	t.Helper()
	store, err := content.New()
	require.NoError(t, err)
	return service.NewCalculatorService(store, testSite, zap.NewNop())
}
