package main

import (
	"flag"
	"testing"

	"btc-powerlaw/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSimFlags(t *testing.T, args ...string) *simFlags {
	t.Helper()
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	sf := registerSimFlags(fs)
	require.NoError(t, fs.Parse(args))
	return sf
}

func TestLoanOverride_OnlySetFlags(t *testing.T) {
	o := parseSimFlags(t, "--months", "24").loanOverride()
	require.NotNil(t, o.DurationMonths)
	assert.Equal(t, 24, *o.DurationMonths)
	assert.Nil(t, o.Principal)
	assert.Nil(t, o.AnnualRate)
	assert.Nil(t, o.InterestOnly)
}

func TestLoanOverride_ZeroRateReplacesConfig(t *testing.T) {
	base := config.LoanConfig{Principal: 50000, DurationMonths: 120, AnnualRate: 0.045, InterestOnly: true}

	merged := config.MergeLoan(base, parseSimFlags(t, "--rate", "0", "--interest-only=false").loanOverride())
	assert.Equal(t, 0.0, merged.AnnualRate)
	assert.False(t, merged.InterestOnly)
	assert.Equal(t, 50000.0, merged.Principal)

	unchanged := config.MergeLoan(base, parseSimFlags(t).loanOverride())
	assert.Equal(t, base, unchanged)
}

func TestBreakEven(t *testing.T) {
	assert.Equal(t, "never", breakEven(nil))
	m := 7
	assert.Equal(t, "month 7", breakEven(&m))
}
