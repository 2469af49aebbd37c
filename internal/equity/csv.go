package equity

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// WriteMonthsCSV writes the month ledger to path.
func WriteMonthsCSV(path string, months []MonthRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeMonthsCSV(f, months)
}

// EncodeMonthsCSV writes the month ledger as CSV. Dollar amounts are fixed to cents.
func EncodeMonthsCSV(out io.Writer, months []MonthRecord) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"month",
		"date",
		"year",
		"k",
		"price",
		"trend_price",
		"payment",
		"interest_paid",
		"principal_paid",
		"cumulative_payments",
		"cumulative_interest",
		"remaining_balance",
		"asset_value",
		"net_position",
		"ltv",
		"roi",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range months {
		row := []string{
			strconv.Itoa(r.Month),
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.Year),
			fmtFloat(r.K),
			fmtUSD(r.Price),
			fmtUSD(r.TrendPrice),
			fmtUSD(r.Payment),
			fmtUSD(r.InterestPaid),
			fmtUSD(r.PrincipalPaid),
			fmtUSD(r.CumulativePayments),
			fmtUSD(r.CumulativeInterest),
			fmtUSD(r.RemainingBalance),
			fmtUSD(r.AssetValue),
			fmtUSD(r.NetPosition),
			fmtFloat(r.LTV),
			fmtFloat(r.ROI),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtUSD(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmtFloat(x)
	}
	return decimal.NewFromFloat(x).StringFixed(2)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
