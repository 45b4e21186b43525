package calc

import "math"

// PremixBag is a bag of ready-mixed concrete and the volume it yields
type PremixBag struct {
	Label   string  `json:"label"`
	YieldM3 float64 `json:"yieldM3"`
}

var premixBags = []PremixBag{
	{Label: "40 lb", YieldM3: 0.30 / 35.3146667},
	{Label: "60 lb", YieldM3: 0.45 / 35.3146667},
	{Label: "80 lb", YieldM3: 0.60 / 35.3146667},
	{Label: "25 kg", YieldM3: 0.012},
}

// BagCount is how many bags of one size cover a volume
type BagCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PremixBags returns the supported bag sizes
func PremixBags() []PremixBag {
	out := make([]PremixBag, len(premixBags))
	copy(out, premixBags)
	return out
}

// Bags returns the number of bags of each size needed for m3, rounded up.
func Bags(m3 float64) []BagCount {
	counts := make([]BagCount, 0, len(premixBags))
	for _, b := range premixBags {
		n := 0
		if m3 > 0 {
			// Trim float noise so an exact multiple does not round up a bag.
			n = int(math.Ceil(math.Round(m3/b.YieldM3*1e9) / 1e9))
		}
		counts = append(counts, BagCount{Label: b.Label, Count: n})
	}
	return counts
}
