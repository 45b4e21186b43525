package calc

import (
	"fmt"
	"sort"
)

// Field describes one input of a calculator shape
type Field struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Optional bool   `json:"optional,omitempty"`
	// Integer fields are plain counts and are not unit converted.
	Integer bool `json:"integer,omitempty"`
	// Area fields are converted with the square of the length factor.
	Area bool `json:"area,omitempty"`
}

// Shape is one geometric variant of a calculator, e.g. a round column.
type Shape struct {
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	Fields []Field `json:"fields"`

	volume func(d dims) (float64, error)
}

// Calculator is a named element type with one or more shapes
type Calculator struct {
	Slug   string  `json:"slug"`
	Name   string  `json:"name"`
	Shapes []Shape `json:"shapes"`
}

// Shape resolves a shape by name. An empty name selects the first shape.
func (c *Calculator) Shape(name string) (*Shape, error) {
	if name == "" {
		return &c.Shapes[0], nil
	}
	for i := range c.Shapes {
		if c.Shapes[i].Name == name {
			return &c.Shapes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q for %s", ErrUnknownShape, name, c.Slug)
}

// Volume computes the concrete volume of one element from dimensions that
// are already in SI units (metres, square metres, counts).
func (s *Shape) Volume(values map[string]float64) (float64, error) {
	d := dims(values)
	for _, f := range s.Fields {
		if f.Optional {
			continue
		}
		if _, ok := d[f.Name]; !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingDimension, f.Name)
		}
	}
	return s.volume(d)
}

// dims holds converted dimension values by field name
type dims map[string]float64

func (d dims) get(name string) float64 {
	return d[name]
}

func (d dims) count(name string) int {
	return int(d[name])
}

var registry = map[string]*Calculator{}

func register(c *Calculator) {
	if _, exists := registry[c.Slug]; exists {
		panic("calc: duplicate calculator " + c.Slug)
	}
	registry[c.Slug] = c
}

// Lookup returns the calculator registered under slug
func Lookup(slug string) (*Calculator, error) {
	c, ok := registry[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, slug)
	}
	return c, nil
}

// Calculators returns every registered calculator sorted by slug.
func Calculators() []*Calculator {
	out := make([]*Calculator, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

func lengthField(name, label string) Field {
	return Field{Name: name, Label: label}
}

func init() {
	register(&Calculator{
		Slug: "slab",
		Name: "Concrete Slab",
		Shapes: []Shape{{
			Name:   "rectangular",
			Label:  "Rectangular slab",
			Fields: []Field{lengthField("length", "Length"), lengthField("width", "Width"), lengthField("thickness", "Thickness")},
			volume: func(d dims) (float64, error) {
				return Prism(d.get("length"), d.get("width"), d.get("thickness"))
			},
		}},
	})

	register(&Calculator{
		Slug: "beam",
		Name: "Concrete Beam",
		Shapes: []Shape{{
			Name:   "rectangular",
			Label:  "Rectangular beam",
			Fields: []Field{lengthField("length", "Length"), lengthField("width", "Width"), lengthField("depth", "Depth")},
			volume: func(d dims) (float64, error) {
				return Prism(d.get("length"), d.get("width"), d.get("depth"))
			},
		}},
	})

	register(&Calculator{
		Slug: "column",
		Name: "Concrete Column",
		Shapes: []Shape{
			{
				Name:   "rectangular",
				Label:  "Rectangular column",
				Fields: []Field{lengthField("width", "Width"), lengthField("depth", "Depth"), lengthField("height", "Height")},
				volume: func(d dims) (float64, error) {
					return Prism(d.get("width"), d.get("depth"), d.get("height"))
				},
			},
			{
				Name:   "round",
				Label:  "Round column",
				Fields: []Field{lengthField("diameter", "Diameter"), lengthField("height", "Height")},
				volume: func(d dims) (float64, error) {
					return Cylinder(d.get("diameter"), d.get("height"))
				},
			},
			{
				Name:  "hollow",
				Label: "Hollow round column",
				Fields: []Field{
					lengthField("outerDiameter", "Outer diameter"),
					lengthField("innerDiameter", "Inner diameter"),
					lengthField("height", "Height"),
				},
				volume: func(d dims) (float64, error) {
					return HollowCylinder(d.get("outerDiameter"), d.get("innerDiameter"), d.get("height"))
				},
			},
		},
	})

	register(&Calculator{
		Slug: "footing",
		Name: "Concrete Footing",
		Shapes: []Shape{
			{
				Name:   "rectangular",
				Label:  "Rectangular pad footing",
				Fields: []Field{lengthField("length", "Length"), lengthField("width", "Width"), lengthField("depth", "Depth")},
				volume: func(d dims) (float64, error) {
					return Prism(d.get("length"), d.get("width"), d.get("depth"))
				},
			},
			{
				Name:  "sloped",
				Label: "Sloped (trapezoidal) footing",
				Fields: []Field{
					lengthField("length", "Base length"),
					lengthField("width", "Base width"),
					lengthField("depth", "Base depth"),
					lengthField("topLength", "Top length"),
					lengthField("topWidth", "Top width"),
					lengthField("slopeHeight", "Sloped height"),
				},
				volume: slopedFooting,
			},
		},
	})

	register(&Calculator{
		Slug: "wall",
		Name: "Concrete Wall",
		Shapes: []Shape{{
			Name:  "straight",
			Label: "Straight wall",
			Fields: []Field{
				lengthField("length", "Length"),
				lengthField("height", "Height"),
				lengthField("thickness", "Thickness"),
				{Name: "openingsArea", Label: "Door and window openings", Optional: true, Area: true},
			},
			volume: wall,
		}},
	})

	register(&Calculator{
		Slug: "stairs",
		Name: "Concrete Stairs",
		Shapes: []Shape{{
			Name:  "straight",
			Label: "Straight flight",
			Fields: []Field{
				{Name: "steps", Label: "Number of steps", Integer: true},
				lengthField("rise", "Rise (height per step)"),
				lengthField("run", "Run (tread depth)"),
				lengthField("width", "Width"),
				{Name: "platformDepth", Label: "Landing platform depth", Optional: true},
			},
			volume: func(d dims) (float64, error) {
				return Stairs(d.count("steps"), d.get("rise"), d.get("run"), d.get("width"), d.get("platformDepth"))
			},
		}},
	})

	register(&Calculator{
		Slug: "tank",
		Name: "Concrete Tank",
		Shapes: []Shape{
			{
				Name:  "rectangular",
				Label: "Rectangular tank",
				Fields: []Field{
					lengthField("length", "Outer length"),
					lengthField("width", "Outer width"),
					lengthField("height", "Outer height"),
					lengthField("wallThickness", "Wall thickness"),
					lengthField("baseThickness", "Base thickness"),
				},
				volume: rectangularTank,
			},
			{
				Name:  "cylindrical",
				Label: "Cylindrical tank",
				Fields: []Field{
					lengthField("diameter", "Outer diameter"),
					lengthField("height", "Outer height"),
					lengthField("wallThickness", "Wall thickness"),
					lengthField("baseThickness", "Base thickness"),
				},
				volume: cylindricalTank,
			},
		},
	})

	register(&Calculator{
		Slug: "pier",
		Name: "Concrete Pier",
		Shapes: []Shape{
			{
				Name:   "straight",
				Label:  "Straight shaft",
				Fields: []Field{lengthField("diameter", "Shaft diameter"), lengthField("depth", "Shaft depth")},
				volume: func(d dims) (float64, error) {
					return Cylinder(d.get("diameter"), d.get("depth"))
				},
			},
			{
				Name:  "belled",
				Label: "Belled pier",
				Fields: []Field{
					lengthField("diameter", "Shaft diameter"),
					lengthField("depth", "Shaft depth"),
					lengthField("bellDiameter", "Bell diameter"),
					lengthField("bellHeight", "Bell height"),
				},
				volume: belledPier,
			},
		},
	})
}

func slopedFooting(d dims) (float64, error) {
	base, err := Prism(d.get("length"), d.get("width"), d.get("depth"))
	if err != nil {
		return 0, err
	}
	if d.get("topLength") > d.get("length") || d.get("topWidth") > d.get("width") {
		return 0, fmt.Errorf("%w: top of a sloped footing cannot be larger than its base", ErrImpossibleGeometry)
	}
	slope, err := PyramidFrustum(d.get("length"), d.get("width"), d.get("topLength"), d.get("topWidth"), d.get("slopeHeight"))
	if err != nil {
		return 0, err
	}
	return base + slope, nil
}

func wall(d dims) (float64, error) {
	gross, err := Prism(d.get("length"), d.get("height"), d.get("thickness"))
	if err != nil {
		return 0, err
	}
	openings := d.get("openingsArea")
	if err := nonNegative("openingsArea", openings); err != nil {
		return 0, err
	}
	if openings > d.get("length")*d.get("height") {
		return 0, fmt.Errorf("%w: openings exceed the wall face", ErrImpossibleGeometry)
	}
	return gross - openings*d.get("thickness"), nil
}

func rectangularTank(d dims) (float64, error) {
	outer, err := Prism(d.get("length"), d.get("width"), d.get("height"))
	if err != nil {
		return 0, err
	}
	t, base := d.get("wallThickness"), d.get("baseThickness")
	if err := positive("wallThickness", t); err != nil {
		return 0, err
	}
	if err := positive("baseThickness", base); err != nil {
		return 0, err
	}
	inner, err := Prism(d.get("length")-2*t, d.get("width")-2*t, d.get("height")-base)
	if err != nil {
		return 0, fmt.Errorf("%w: walls and base leave no interior", ErrImpossibleGeometry)
	}
	return outer - inner, nil
}

func cylindricalTank(d dims) (float64, error) {
	outer, err := Cylinder(d.get("diameter"), d.get("height"))
	if err != nil {
		return 0, err
	}
	t, base := d.get("wallThickness"), d.get("baseThickness")
	if err := positive("wallThickness", t); err != nil {
		return 0, err
	}
	if err := positive("baseThickness", base); err != nil {
		return 0, err
	}
	inner, err := Cylinder(d.get("diameter")-2*t, d.get("height")-base)
	if err != nil {
		return 0, fmt.Errorf("%w: walls and base leave no interior", ErrImpossibleGeometry)
	}
	return outer - inner, nil
}

func belledPier(d dims) (float64, error) {
	shaft, err := Cylinder(d.get("diameter"), d.get("depth"))
	if err != nil {
		return 0, err
	}
	if d.get("bellDiameter") <= d.get("diameter") {
		return 0, fmt.Errorf("%w: bell diameter must exceed shaft diameter", ErrImpossibleGeometry)
	}
	bell, err := ConicalFrustum(d.get("bellDiameter"), d.get("diameter"), d.get("bellHeight"))
	if err != nil {
		return 0, err
	}
	return shaft + bell, nil
}
