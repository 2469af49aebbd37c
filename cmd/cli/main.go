package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"btc-powerlaw/internal/config"
	"btc-powerlaw/internal/data"
	"btc-powerlaw/internal/equity"
	"btc-powerlaw/internal/logger"
	"btc-powerlaw/internal/model"
	"btc-powerlaw/internal/scenario"
	"btc-powerlaw/internal/trend"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	flush, err := logger.Install(os.Getenv("API_ENV"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer flush()

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "compare":
		cmdCompare(os.Args[2:])
	case "trend":
		cmdTrend(os.Args[2:])
	case "sigma":
		cmdSigma(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config examples/config.yaml --out results/ledger.csv")
	fmt.Println("  cli compare  --config examples/config.yaml")
	fmt.Println("  cli trend    --model santostasi --from 2024-01-01 --to 2030-01-01 --step 30")
	fmt.Println("  cli sigma    --history data/btc_history.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate writes one CSV row per month of the loan")
	fmt.Println("  - without --live-price or --fetch-live the purchase price is the trend price")
}

// simFlags are shared by simulate and compare.
type simFlags struct {
	fs           *flag.FlagSet
	cfgPath      *string
	historyPath  *string
	livePrice    *float64
	fetchLive    *bool
	symbol       *string
	principal    *float64
	months       *int
	rate         *float64
	interestOnly *bool
	model        *string
	sigma        *float64
	scenario     *string
	initialK     *string
}

func registerSimFlags(fs *flag.FlagSet) *simFlags {
	return &simFlags{
		fs:           fs,
		cfgPath:      fs.String("config", "", "Path to YAML config"),
		historyPath:  fs.String("history", "", "Price history (.csv/.json); overrides data.history_file"),
		livePrice:    fs.Float64("live-price", 0, "Current BTC price in USD (0 = none)"),
		fetchLive:    fs.Bool("fetch-live", false, "Fetch the current price from Binance"),
		symbol:       fs.String("symbol", data.DefaultSymbol, "Binance symbol for --fetch-live"),
		principal:    fs.Float64("principal", 0, "Override loan.principal"),
		months:       fs.Int("months", 0, "Override loan.duration_months"),
		rate:         fs.Float64("rate", 0, "Override loan.annual_rate (fraction, 0.045 = 4.5%)"),
		interestOnly: fs.Bool("interest-only", false, "Override loan.interest_only"),
		model:        fs.String("model", "", "Override trend.model"),
		sigma:        fs.Float64("sigma", 0, "Override trend.sigma (0 = from history)"),
		scenario:     fs.String("scenario", "", "Override scenario.mode"),
		initialK:     fs.String("initial-k", "", "Override scenario.initial_k"),
	}
}

// load builds validated LoanParams plus the live price, if any.
func (f *simFlags) load() (*config.Config, equity.LoanParams, *float64) {
	if *f.cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}
	cfg, err := config.LoadUnchecked(*f.cfgPath)
	if err != nil {
		panic(err)
	}

	cfg.Loan = config.MergeLoan(cfg.Loan, f.loanOverride())
	if *f.model != "" {
		cfg.Trend.Model = trend.Model(*f.model)
	}
	if *f.sigma > 0 {
		cfg.Trend.Sigma = *f.sigma
	}
	if *f.scenario != "" {
		cfg.Scenario.Mode = scenario.Mode(*f.scenario)
	}
	if *f.initialK != "" {
		k, err := strconv.ParseFloat(*f.initialK, 64)
		if err != nil {
			panic(fmt.Errorf("--initial-k: %w", err))
		}
		cfg.Scenario.InitialK = &k
	}
	if *f.historyPath != "" {
		cfg.Data.HistoryFile = *f.historyPath
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	history := loadHistory(cfg.Data.HistoryFile)
	sigma := trend.NewSigmaCache(history).Get(trend.MustLookup(cfg.Trend.Model))
	params := cfg.LoanParams(time.Now(), sigma.Value)
	return cfg, params, f.live()
}

// loanOverride collects only the loan flags given on the command line,
// so --rate 0 overrides a non-zero annual_rate.
func (f *simFlags) loanOverride() config.LoanOverride {
	var o config.LoanOverride
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "principal":
			o.Principal = f.principal
		case "months":
			o.DurationMonths = f.months
		case "rate":
			o.AnnualRate = f.rate
		case "interest-only":
			o.InterestOnly = f.interestOnly
		}
	})
	return o
}

func (f *simFlags) live() *float64 {
	if *f.livePrice > 0 {
		p := *f.livePrice
		return &p
	}
	if !*f.fetchLive {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	p, err := data.NewBinancePriceSource(*f.symbol).LatestPrice(ctx)
	if err != nil {
		zap.L().Warn("live price unavailable; using trend price", zap.Error(err))
		return nil
	}
	return &p
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	sf := registerSimFlags(fs)
	outPath := fs.String("out", "", "Optional: write the monthly ledger CSV here")
	_ = fs.Parse(args)

	cfg, params, live := sf.load()
	res := equity.Simulate(params, live)
	sum := equity.Summarize(res)

	fmt.Printf("Model=%s Scenario=%s Sigma=%.4f k0=%.3f\n", res.Model, scenario.Label(res.Scenario), res.Sigma, res.InitialK)
	fmt.Printf("Purchase %s at $%.2f -> %.8f BTC\n", res.PurchaseDate.Format("2006-01"), res.PurchasePrice, res.AssetQuantity)
	fmt.Printf("Monthly payment=$%.2f Total cost=$%.2f Total interest=$%.2f\n", sum.MonthlyPayment, sum.TotalCost, sum.TotalInterest)
	fmt.Printf("Final price=$%.2f Asset value=$%.2f Net=$%.2f ROI=%.1f%%\n", sum.FinalPrice, sum.FinalAssetValue, sum.FinalNetPosition, sum.ROIPercent)
	fmt.Printf("Max LTV=%.3f Break-even=%s\n", sum.MaxLTV, breakEven(sum.BreakEvenMonth))

	if cfg.Home.Value > 0 {
		m := equity.ComputeEquityMetrics(cfg.Home.Value, cfg.Home.MortgageBalance, cfg.Loan.Principal)
		fmt.Printf("Home equity=$%.2f Existing LTV=%.3f Total LTV=%.3f\n", m.HomeEquity, m.ExistingLTV, m.TotalLTV)
		if m.LTVWarning {
			fmt.Printf("warning: combined LTV exceeds %.0f%%\n", equity.MaxRecommendedLTV*100)
		}
	}

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			panic(err)
		}
		if err := equity.WriteMonthsCSV(*outPath, res.Months); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(res.Months), *outPath)
	}
}

func cmdCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	sf := registerSimFlags(fs)
	_ = fs.Parse(args)

	_, params, live := sf.load()
	rows := equity.CompareScenarios(params, live)

	fmt.Printf("%-22s %-14s %-14s %-14s %-10s %-8s %-10s\n", "scenario", "final price", "asset value", "net", "roi%", "max ltv", "break-even")
	for _, r := range rows {
		s := r.Summary
		fmt.Printf("%-22s %-14.2f %-14.2f %-14.2f %-10.1f %-8.3f %-10s\n",
			r.Label,
			s.FinalPrice,
			s.FinalAssetValue,
			s.FinalNetPosition,
			s.ROIPercent,
			s.MaxLTV,
			breakEven(s.BreakEvenMonth),
		)
	}
}

func cmdTrend(args []string) {
	fs := flag.NewFlagSet("trend", flag.ExitOnError)
	modelName := fs.String("model", string(trend.ModelSantostasi), "Trend model")
	historyPath := fs.String("history", "", "Optional price history for sigma and observed prices")
	from := fs.String("from", "", "First day (YYYY-MM-DD); default today")
	to := fs.String("to", "", "Last day (YYYY-MM-DD); default from + 10 years")
	step := fs.Int("step", 30, "Days between rows")
	_ = fs.Parse(args)

	m, err := trend.Lookup(trend.Model(*modelName))
	if err != nil {
		panic(err)
	}
	start := mustDate(*from, time.Now().UTC().Truncate(24*time.Hour))
	end := mustDate(*to, start.AddDate(10, 0, 0))

	history := loadHistory(*historyPath)
	sigma := trend.NewSigmaCache(history).Get(m)

	points := m.Series(sigma.Value, trend.SeriesRequest{From: start, To: end, StepDays: *step}, history)
	fmt.Printf("%s sigma=%.4f (%d samples)\n", m.Name, sigma.Value, sigma.Samples)
	fmt.Printf("%-12s %-14s %-14s %-14s %-14s %-14s %-14s\n", "date", "-2σ", "-1σ", "trend", "+1σ", "+2σ", "observed")
	for _, p := range points {
		obs := ""
		if p.Observed != nil {
			obs = strconv.FormatFloat(*p.Observed, 'f', 2, 64)
		}
		fmt.Printf("%-12s %-14.2f %-14.2f %-14.2f %-14.2f %-14.2f %-14s\n",
			p.Date.Format("2006-01-02"), p.Bands[0], p.Bands[1], p.Trend, p.Bands[2], p.Bands[3], obs)
	}
}

func cmdSigma(args []string) {
	fs := flag.NewFlagSet("sigma", flag.ExitOnError)
	historyPath := fs.String("history", "data/btc_history.csv", "Price history (.csv/.json)")
	_ = fs.Parse(args)

	history := loadHistory(*historyPath)
	cache := trend.NewSigmaCache(history)
	today := time.Now().UTC()
	fmt.Printf("%-12s %-34s %-10s %-8s %-14s\n", "model", "name", "sigma", "samples", "trend today")
	for _, m := range trend.Models() {
		s := cache.Get(m)
		fmt.Printf("%-12s %-34s %-10.4f %-8d %-14.2f\n", m.Model, m.Name, s.Value, s.Samples, trend.Price(m.Model, today))
	}
}

func loadHistory(path string) model.HistoricalSeries {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	s, err := data.LoadHistory(path)
	if err != nil {
		zap.L().Warn("price history not loaded; using fallback sigma", zap.String("path", path), zap.Error(err))
		return nil
	}
	return s
}

func mustDate(s string, def time.Time) time.Time {
	if s == "" {
		return def
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(fmt.Errorf("invalid date %q: %w", s, err))
	}
	return t
}

func breakEven(m *int) string {
	if m == nil {
		return "never"
	}
	return fmt.Sprintf("month %d", *m)
}
