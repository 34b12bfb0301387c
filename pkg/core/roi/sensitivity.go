package roi

// RatePoint is one NPV sample in a discount-rate sweep.
type RatePoint struct {
	DiscountRate float64 `json:"discount_rate"` // annual %
	NPV          float64 `json:"npv"`
}

// DiscountRateSensitivity recomputes NPV across a list of annual discount
// rates, holding every other input fixed. Useful for showing how sensitive
// the verdict is to the rate assumption. Rates outside 0-50 are rejected by
// the underlying validation.
func DiscountRateSensitivity(c Calculation, rates []float64) ([]RatePoint, error) {
	points := make([]RatePoint, 0, len(rates))
	for _, rate := range rates {
		swept := c
		swept.DiscountRate = rate
		m, _, err := Compute(swept)
		if err != nil {
			return nil, err
		}
		points = append(points, RatePoint{DiscountRate: rate, NPV: m.NPV})
	}
	return points, nil
}
