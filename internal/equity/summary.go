package equity

// Summary rolls a Result up into headline figures.
type Summary struct {
	PurchasePrice  float64 `json:"purchase_price"`
	AssetQuantity  float64 `json:"asset_quantity"`
	MonthlyPayment float64 `json:"monthly_payment"`

	TotalCost     float64 `json:"total_cost"`
	TotalInterest float64 `json:"total_interest"`

	FinalPrice       float64 `json:"final_price"`
	FinalAssetValue  float64 `json:"final_asset_value"`
	FinalNetPosition float64 `json:"final_net_position"`
	ROIPercent       float64 `json:"roi_percent"`

	MaxLTV   float64 `json:"max_ltv"`
	FinalLTV float64 `json:"final_ltv"`

	BreakEvenMonth *int `json:"break_even_month"`
}

// Summarize derives a Summary. It never mutates res.
func Summarize(res *Result) Summary {
	s := Summary{
		PurchasePrice:  res.PurchasePrice,
		AssetQuantity:  res.AssetQuantity,
		MonthlyPayment: res.MonthlyPayment,
		BreakEvenMonth: res.BreakEvenMonth,
	}
	if len(res.Months) == 0 {
		return s
	}

	for _, m := range res.Months {
		if m.LTV > s.MaxLTV {
			s.MaxLTV = m.LTV
		}
	}

	last := res.Months[len(res.Months)-1]
	s.TotalCost = last.CumulativePayments
	s.TotalInterest = last.CumulativeInterest
	s.FinalPrice = last.Price
	s.FinalAssetValue = last.AssetValue
	s.FinalNetPosition = last.NetPosition
	s.FinalLTV = last.LTV
	s.ROIPercent = roiPercent(last.AssetValue, last.CumulativePayments)
	return s
}
