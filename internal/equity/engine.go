package equity

import (
	"math"
	"time"

	"btc-powerlaw/internal/scenario"
	"btc-powerlaw/internal/trend"
)

// balanceTolerance absorbs float drift so the final balance lands on exactly zero.
const balanceTolerance = 1e-6

const daysPerYear = 365.25

func yearsBetween(from, to time.Time) float64 {
	return math.Max(0, to.Sub(from).Hours()/24/daysPerYear)
}

// addMonths steps n calendar months from t. The day is clamped to the
// length of the target month, so Jan 31 + 1 is the last day of February.
func addMonths(t time.Time, n int) time.Time {
	y, mo, d := t.Date()
	first := time.Date(y, mo+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(d, last)-1)
}

// Simulate projects a BTC purchase funded by an equity loan, month by month.
// livePrice is nil when no live quote is available.
//
// The purchase price must come out strictly positive; a zero or negative
// price makes the asset quantity meaningless and is not checked.
func Simulate(params LoanParams, livePrice *float64) *Result {
	m := trend.MustLookup(params.Model)
	sigma := params.sigma(m)
	now := params.now()

	k0 := params.InitialK
	if k0 == nil && livePrice != nil {
		dev := m.Deviation(*livePrice, sigma, now)
		k0 = &dev
	}

	purchaseDate, purchasePrice := resolvePurchase(params, m, sigma, now, k0, livePrice)
	qty := params.Principal / purchasePrice
	payment := MonthlyPayment(params.Principal, params.AnnualRate, params.DurationMonths, params.InterestOnly)
	rate := params.AnnualRate / 12
	n := params.DurationMonths

	res := &Result{
		Model:          params.Model,
		Scenario:       params.Scenario,
		Sigma:          sigma,
		InitialK:       scenario.ResolveK(params.Scenario, 0, k0),
		PurchaseDate:   purchaseDate,
		PurchasePrice:  purchasePrice,
		AssetQuantity:  qty,
		MonthlyPayment: payment,
		Months:         make([]MonthRecord, 0, n+1),
	}

	balance := params.Principal
	cumPaid := 0.0
	cumInterest := 0.0

	for month := 0; month <= n; month++ {
		date := addMonths(purchaseDate, month)
		k := scenario.ResolveK(params.Scenario, yearsBetween(now, date), k0)
		price := purchasePrice
		if month == 0 {
			// The purchase month reports the deviation its price actually has.
			k = m.Deviation(purchasePrice, sigma, date)
		} else {
			price = scenario.Price(m, date, sigma, k)
		}

		var interest, principalPaid, paid float64
		if month > 0 {
			interest = balance * rate
			switch {
			case params.InterestOnly && month < n:
				principalPaid = 0
			case params.InterestOnly:
				principalPaid = balance
			case month == n || balance-(payment-interest) < balanceTolerance:
				principalPaid = balance
			default:
				principalPaid = payment - interest
			}
			paid = interest + principalPaid
			balance -= principalPaid
			if balance < balanceTolerance {
				balance = 0
			}
			cumPaid += paid
			cumInterest += interest
		}

		assetValue := qty * price
		rec := MonthRecord{
			Month:              month,
			Date:               date,
			Year:               month / 12,
			K:                  k,
			Price:              price,
			TrendPrice:         m.Price(date),
			Payment:            paid,
			InterestPaid:       interest,
			PrincipalPaid:      principalPaid,
			CumulativePayments: cumPaid,
			CumulativeInterest: cumInterest,
			RemainingBalance:   balance,
			AssetValue:         assetValue,
			NetPosition:        assetValue - balance - cumInterest,
			LTV:                ltv(balance, assetValue),
			ROI:                roiPercent(assetValue, cumPaid+balance),
		}
		res.Months = append(res.Months, rec)

		if res.BreakEvenMonth == nil && month > 0 && assetValue >= cumPaid {
			be := month
			res.BreakEvenMonth = &be
		}
	}

	return res
}

// resolvePurchase picks the purchase date and price:
// a live quote when buying now, a scenario projection for a future month,
// and otherwise the scenario price at now. That is the bare trend price
// unless the caller supplied an initial deviation.
func resolvePurchase(params LoanParams, m trend.Params, sigma float64, now time.Time, k0, livePrice *float64) (time.Time, float64) {
	if params.Purchase != nil {
		date := params.Purchase.Time()
		k := scenario.ResolveK(params.Scenario, yearsBetween(now, date), k0)
		return date, scenario.Price(m, date, sigma, k)
	}
	if livePrice != nil {
		return now, *livePrice
	}
	if k0 == nil {
		return now, m.Price(now)
	}
	return now, scenario.Price(m, now, sigma, scenario.ResolveK(params.Scenario, 0, k0))
}

func ltv(debt, collateral float64) float64 {
	if collateral <= 0 {
		return 0
	}
	return debt / collateral
}

func roiPercent(value, cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	return (value - cost) / cost * 100
}
