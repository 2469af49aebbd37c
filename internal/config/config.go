package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"btc-powerlaw/internal/equity"
	"btc-powerlaw/internal/scenario"
	"btc-powerlaw/internal/trend"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk simulation configuration (YAML).
type Config struct {
	Loan     LoanConfig     `yaml:"loan"`
	Home     HomeConfig     `yaml:"home"`
	Trend    TrendConfig    `yaml:"trend"`
	Scenario ScenarioConfig `yaml:"scenario"`
	Data     DataConfig     `yaml:"data"`
}

type LoanConfig struct {
	Principal      float64 `yaml:"principal"`
	DurationMonths int     `yaml:"duration_months"`
	// AnnualRate is a fraction (0.045 = 4.5%).
	AnnualRate   float64              `yaml:"annual_rate"`
	InterestOnly bool                 `yaml:"interest_only"`
	Purchase     *equity.PurchaseDate `yaml:"purchase"`
}

type HomeConfig struct {
	Value           float64 `yaml:"value"`
	MortgageBalance float64 `yaml:"mortgage_balance"`
}

type TrendConfig struct {
	Model trend.Model `yaml:"model"`
	// Sigma overrides the value computed from history when > 0.
	Sigma float64 `yaml:"sigma"`
}

type ScenarioConfig struct {
	Mode     scenario.Mode `yaml:"mode"`
	InitialK *float64      `yaml:"initial_k"`
}

type DataConfig struct {
	HistoryFile string `yaml:"history_file"`
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads a config without defaulting or validating it.
// A relative history_file is resolved against the config file's directory when it exists there.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if hf := c.Data.HistoryFile; hf != "" && !filepath.IsAbs(hf) {
		cand := filepath.Join(filepath.Dir(path), hf)
		if _, err := os.Stat(cand); err == nil {
			c.Data.HistoryFile = cand
		}
	}
	return &c, nil
}

// ApplyDefaults fills the model and scenario when omitted.
func (c *Config) ApplyDefaults() {
	if c.Trend.Model == "" {
		c.Trend.Model = trend.ModelSantostasi
	}
	if c.Scenario.Mode == "" {
		c.Scenario.Mode = scenario.SmoothTrend
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Loan.Validate(); err != nil {
		return fmt.Errorf("loan config invalid: %w", err)
	}
	if c.Home.Value < 0 || c.Home.MortgageBalance < 0 {
		return errors.New("home.value and home.mortgage_balance must be >= 0")
	}
	if _, err := trend.Lookup(c.Trend.Model); err != nil {
		return err
	}
	if c.Trend.Sigma < 0 || !finite(c.Trend.Sigma) {
		return errors.New("trend.sigma must be a finite value >= 0")
	}
	if _, err := scenario.ParseMode(string(c.Scenario.Mode)); err != nil {
		return err
	}
	if k := c.Scenario.InitialK; k != nil && !finite(*k) {
		return errors.New("scenario.initial_k must be finite")
	}
	return nil
}

func (l LoanConfig) Validate() error {
	if l.Principal <= 0 || !finite(l.Principal) {
		return errors.New("principal must be > 0")
	}
	if l.DurationMonths <= 0 {
		return errors.New("duration_months must be > 0")
	}
	if l.AnnualRate < 0 || !finite(l.AnnualRate) {
		return errors.New("annual_rate must be >= 0")
	}
	if p := l.Purchase; p != nil {
		if p.Month < time.January || p.Month > time.December {
			return fmt.Errorf("purchase.month must be 1-12, got %d", p.Month)
		}
		if p.Year < trend.GenesisEpoch.Year() {
			return fmt.Errorf("purchase.year must be >= %d", trend.GenesisEpoch.Year())
		}
	}
	return nil
}

// LoanParams converts the config into simulator input.
// sigma is used when the config does not override it.
func (c *Config) LoanParams(now time.Time, sigma float64) equity.LoanParams {
	if c.Trend.Sigma > 0 {
		sigma = c.Trend.Sigma
	}
	return equity.LoanParams{
		Principal:      c.Loan.Principal,
		DurationMonths: c.Loan.DurationMonths,
		AnnualRate:     c.Loan.AnnualRate,
		InterestOnly:   c.Loan.InterestOnly,
		Purchase:       c.Loan.Purchase,
		Model:          c.Trend.Model,
		Sigma:          sigma,
		Scenario:       c.Scenario.Mode,
		InitialK:       c.Scenario.InitialK,
		Now:            now,
	}
}

// LoanOverride holds loan fields that were explicitly set, e.g. by CLI flags.
// A nil field keeps the base value; a non-nil zero is a real override.
type LoanOverride struct {
	Principal      *float64
	DurationMonths *int
	AnnualRate     *float64
	InterestOnly   *bool
	Purchase       *equity.PurchaseDate
}

// MergeLoan overlays the set fields of override onto base.
func MergeLoan(base LoanConfig, override LoanOverride) LoanConfig {
	out := base
	if override.Principal != nil {
		out.Principal = *override.Principal
	}
	if override.DurationMonths != nil {
		out.DurationMonths = *override.DurationMonths
	}
	if override.AnnualRate != nil {
		out.AnnualRate = *override.AnnualRate
	}
	if override.InterestOnly != nil {
		out.InterestOnly = *override.InterestOnly
	}
	if override.Purchase != nil {
		out.Purchase = override.Purchase
	}
	return out
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
