package trend

import (
	"math"
	"time"
)

// ValuationBand maps multipliers below Max to a qualitative label.
type ValuationBand struct {
	Max   float64 `json:"max"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// ValuationBands is the threshold table, ascending by Max. The last band is open-ended.
var ValuationBands = []ValuationBand{
	{Max: 0.5, Label: "Deep value", Color: "#1a9850"},
	{Max: 0.8, Label: "Undervalued", Color: "#91cf60"},
	{Max: 1.25, Label: "Fair value", Color: "#fee08b"},
	{Max: 2.0, Label: "Overvalued", Color: "#fc8d59"},
	{Max: math.Inf(1), Label: "Bubble territory", Color: "#d73027"},
}

// ValuationLabel returns the band a multiplier falls into.
func ValuationLabel(multiplier float64) ValuationBand {
	for _, b := range ValuationBands {
		if multiplier < b.Max {
			return b
		}
	}
	return ValuationBands[len(ValuationBands)-1]
}

// Valuation describes an observed price against a model.
type Valuation struct {
	Model      Model     `json:"model"`
	Date       time.Time `json:"date"`
	Price      float64   `json:"price"`
	TrendPrice float64   `json:"trend_price"`
	Multiplier float64   `json:"multiplier"`
	Sigma      float64   `json:"sigma"`
	K          float64   `json:"k"`
	Label      string    `json:"label"`
	Color      string    `json:"color"`
}

// Valuate places price on date relative to the model's trend.
func (p Params) Valuate(price, sigma float64, date time.Time) Valuation {
	trendPrice := p.Price(date)
	mult := price / trendPrice
	band := ValuationLabel(mult)
	return Valuation{
		Model:      p.Model,
		Date:       date,
		Price:      price,
		TrendPrice: trendPrice,
		Multiplier: mult,
		Sigma:      sigma,
		K:          math.Log10(mult) / sigma,
		Label:      band.Label,
		Color:      band.Color,
	}
}
