package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/straye-as/concrete-calc/internal/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseDimensions(t *testing.T) {
	dims, err := parseDimensions([]string{"length=10", "thickness=4in", " width = 2.5 m ", "steps=12"})
	require.NoError(t, err)

	assert.Equal(t, map[string]calc.Length{
		"length":    {Value: 10},
		"thickness": {Value: 4, Unit: "in"},
		"width":     {Value: 2.5, Unit: "m"},
		"steps":     {Value: 12},
	}, dims)
}

func TestParseDimensions_Invalid(t *testing.T) {
	for _, pair := range []string{"length", "=4", "length=", "length=abc", "length=1.2.3m"} {
		_, err := parseDimensions([]string{pair})
		assert.Error(t, err, pair)
	}
}

func TestCalc_Table(t *testing.T) {
	out, err := execute(t, "calc", "slab",
		"--unit", "ft",
		"--set", "length=10", "--set", "width=10", "--set", "thickness=4in",
		"--display", "yd3",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Concrete Slab")
	assert.NotContains(t, out, "(rectangular)")
	assert.Contains(t, out, "Thickness")
	assert.Contains(t, out, "33.33")
	assert.Contains(t, out, "Order 1.23 yd3")
	assert.NotContains(t, out, "Materials")
	assert.NotContains(t, out, "Cost")
}

func TestCalc_MaterialsAndCost(t *testing.T) {
	out, err := execute(t, "calc", "slab",
		"--set", "length=5", "--set", "width=4", "--set", "thickness=10cm",
		"--waste", "5", "--mix", "M15", "--price", "120",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Order 2.1 m3")
	assert.Contains(t, out, "M15 1:2:4")
	assert.Contains(t, out, "cement")
	assert.Contains(t, out, "Premix bags")
	assert.Contains(t, out, "Cost 252.00 at 120.00 per m3")
}

func TestCalc_JSON(t *testing.T) {
	out, err := execute(t, "calc", "column",
		"--shape", "rectangular",
		"--set", "width=0.3", "--set", "depth=0.3", "--set", "height=3",
		"--quantity", "4", "--waste", "10", "--json",
	)
	require.NoError(t, err)

	var res calc.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "column", res.Calculator)
	assert.Equal(t, 4, res.Quantity)
	assert.Equal(t, 1.08, res.NetVolume.CubicMeters)
	assert.Equal(t, 1.19, res.GrossVolume.CubicMeters)
}

func TestCalc_Errors(t *testing.T) {
	_, err := execute(t, "calc", "bridge", "--set", "length=1")
	assert.ErrorIs(t, err, calc.ErrUnknownCalculator)

	_, err = execute(t, "calc", "slab", "--set", "length=5", "--set", "width=4")
	assert.ErrorIs(t, err, calc.ErrMissingDimension)

	_, err = execute(t, "calc", "slab", "--unit", "furlong", "--set", "length=5")
	assert.ErrorIs(t, err, calc.ErrUnknownUnit)

	_, err = execute(t, "calc", "slab", "--set", "length=5", "--set", "width=4", "--set", "thickness=0.1", "--price", "Inf")
	assert.ErrorIs(t, err, calc.ErrInvalidPrice)

	_, err = execute(t, "calc")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)

	for _, c := range calc.Calculators() {
		assert.Contains(t, out, c.Slug)
		assert.Contains(t, out, c.Name)
	}
	assert.Contains(t, out, "length, width, thickness")
}

func TestMixes(t *testing.T) {
	out, err := execute(t, "mixes")
	require.NoError(t, err)

	assert.Contains(t, out, "M15")
	assert.Contains(t, out, "1:2:4")
	assert.Contains(t, out, "dry volume factor 1.54")
	assert.Contains(t, out, "25 kg")
}
