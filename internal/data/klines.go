package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"btc-powerlaw/internal/model"

	"github.com/adshao/go-binance/v2"
	"go.uber.org/zap"
)

const klinePageLimit = 1000

// HistoryFetcher downloads daily closes from the Binance public kline API.
type HistoryFetcher struct {
	Symbol string
	client *binance.Client
}

func NewHistoryFetcher(symbol string) *HistoryFetcher {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return &HistoryFetcher{Symbol: symbol, client: binance.NewClient("", "")}
}

// DailyCloses returns one point per UTC day in [from, to], paging through the API.
func (f *HistoryFetcher) DailyCloses(ctx context.Context, from, to time.Time) (model.HistoricalSeries, error) {
	var out model.HistoricalSeries
	start := from.UTC().Truncate(24 * time.Hour)
	end := to.UTC()
	for !start.After(end) {
		klines, err := f.client.NewKlinesService().
			Symbol(f.Symbol).
			Interval("1d").
			StartTime(start.UnixMilli()).
			EndTime(end.UnixMilli()).
			Limit(klinePageLimit).
			Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch %s klines from %s: %w", f.Symbol, start.Format(dateLayout), err)
		}
		page, err := closesFromKlines(klines)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		out = append(out, page...)
		zap.L().Debug("klines page",
			zap.String("symbol", f.Symbol),
			zap.Int("rows", len(page)),
			zap.Time("last", page[len(page)-1].Date))
		if len(klines) < klinePageLimit {
			break
		}
		start = page[len(page)-1].Date.AddDate(0, 0, 1)
	}
	out.SortByDate()
	return out, nil
}

func closesFromKlines(klines []*binance.Kline) (model.HistoricalSeries, error) {
	out := make(model.HistoricalSeries, 0, len(klines))
	for _, k := range klines {
		if k == nil {
			continue
		}
		p, err := parsePrice(k.Close)
		if err != nil {
			return nil, err
		}
		day := time.UnixMilli(k.OpenTime).UTC().Truncate(24 * time.Hour)
		out = append(out, model.PricePoint{Date: day, Price: p})
	}
	return out, nil
}

// MergeHistory overlays updates onto base, one point per UTC day.
// Days present in both take the price from updates.
func MergeHistory(base, updates model.HistoricalSeries) model.HistoricalSeries {
	byDay := make(map[string]model.PricePoint, len(base)+len(updates))
	for _, p := range base {
		byDay[p.Date.UTC().Format(dateLayout)] = p
	}
	for _, p := range updates {
		byDay[p.Date.UTC().Format(dateLayout)] = p
	}
	out := make(model.HistoricalSeries, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, p)
	}
	out.SortByDate()
	return out
}

// SaveHistoryCSV writes the series in the format LoadHistory reads.
func SaveHistoryCSV(path string, series model.HistoricalSeries) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeHistoryCSV(f, series)
}

func EncodeHistoryCSV(out io.Writer, series model.HistoricalSeries) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"date", "price"}); err != nil {
		return err
	}
	for _, p := range series {
		row := []string{p.Date.UTC().Format(dateLayout), fmt.Sprintf("%.2f", p.Price)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
