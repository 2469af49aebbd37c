package data

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"btc-powerlaw/internal/model"
)

const dateLayout = "2006-01-02"

// ErrEmptyHistory is returned when a history file holds no price rows.
var ErrEmptyHistory = errors.New("historical series is empty")

// LoadHistory reads a daily price history from a .csv or .json file.
// The result is sorted ascending by date.
func LoadHistory(path string) (model.HistoricalSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var series model.HistoricalSeries
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		series, err = DecodeHistoryCSV(f)
	case ".json":
		series, err = DecodeHistoryJSON(f)
	default:
		return nil, fmt.Errorf("unsupported history format: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", path, err)
	}
	return series, nil
}

// DecodeHistoryCSV parses "date,price" rows. A header row is optional.
func DecodeHistoryCSV(r io.Reader) (model.HistoricalSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out model.HistoricalSeries
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(rec) < 2 {
			return nil, fmt.Errorf("line %d: expected date,price", line)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "date") {
			continue
		}
		pt, err := parsePoint(rec[0], rec[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, pt)
	}
	return finish(out)
}

type jsonPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// DecodeHistoryJSON parses an array of {"date": "YYYY-MM-DD", "price": n}.
func DecodeHistoryJSON(r io.Reader) (model.HistoricalSeries, error) {
	var raw []jsonPoint
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	out := make(model.HistoricalSeries, 0, len(raw))
	for i, p := range raw {
		pt, err := parsePoint(p.Date, strconv.FormatFloat(p.Price, 'g', -1, 64))
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, pt)
	}
	return finish(out)
}

func parsePoint(dateStr, priceStr string) (model.PricePoint, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return model.PricePoint{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(priceStr), 64)
	if err != nil {
		return model.PricePoint{}, fmt.Errorf("invalid price %q: %w", priceStr, err)
	}
	if p <= 0 {
		return model.PricePoint{}, fmt.Errorf("price must be > 0, got %v", p)
	}
	return model.PricePoint{Date: d, Price: p}, nil
}

func finish(s model.HistoricalSeries) (model.HistoricalSeries, error) {
	if len(s) == 0 {
		return nil, ErrEmptyHistory
	}
	s.SortByDate()
	return s, nil
}
