package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"btc-powerlaw/internal/data"
	"btc-powerlaw/internal/logger"
	"btc-powerlaw/internal/model"

	"go.uber.org/zap"
)

func main() {
	var (
		symbol     = flag.String("symbol", data.DefaultSymbol, "Binance spot symbol")
		outputPath = flag.String("output", "./data/btc_history.csv", "History CSV to update")
		since      = flag.String("since", "", "First day to fetch (YYYY-MM-DD); default is the day after the last stored row")
		days       = flag.Int("days", 365, "Days to look back when the output file does not exist yet")
	)
	flag.Parse()

	flush, err := logger.Install(os.Getenv("API_ENV"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer flush()
	log := zap.L()

	existing, err := data.LoadHistory(*outputPath)
	switch {
	case err == nil:
		log.Info("loaded existing history", zap.String("path", *outputPath), zap.Int("points", len(existing)))
	case errors.Is(err, os.ErrNotExist), errors.Is(err, data.ErrEmptyHistory):
		log.Info("no existing history; starting fresh", zap.String("path", *outputPath))
	default:
		log.Fatal("read existing history", zap.Error(err))
	}

	end := time.Now().UTC()
	start, err := fetchStart(*since, existing, end, *days)
	if err != nil {
		log.Fatal("invalid --since", zap.Error(err))
	}
	if start.After(end) {
		log.Info("history already up to date", zap.Time("last", start.AddDate(0, 0, -1)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fetched, err := data.NewHistoryFetcher(*symbol).DailyCloses(ctx, start, end)
	if err != nil {
		log.Fatal("fetch daily closes", zap.Error(err))
	}
	log.Info("fetched daily closes",
		zap.String("symbol", *symbol),
		zap.String("from", start.Format("2006-01-02")),
		zap.Int("points", len(fetched)))

	merged := data.MergeHistory(existing, fetched)
	if err := data.SaveHistoryCSV(*outputPath, merged); err != nil {
		log.Fatal("save history", zap.Error(err))
	}
	fmt.Printf("Saved %d rows to %s\n", len(merged), *outputPath)
}

func fetchStart(since string, existing model.HistoricalSeries, now time.Time, lookbackDays int) (time.Time, error) {
	if since != "" {
		return time.Parse("2006-01-02", since)
	}
	if last, ok := existing.Last(); ok {
		return last.Date.AddDate(0, 0, 1), nil
	}
	return now.AddDate(0, 0, -lookbackDays).Truncate(24 * time.Hour), nil
}
