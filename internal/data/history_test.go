package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHistoryCSV(t *testing.T) {
	in := "date,price\n2024-01-03,42000.5\n2024-01-01,40000\n2024-01-02, 41000\n"
	s, err := DecodeHistoryCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, s, 3)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), s[0].Date)
	assert.Equal(t, 40000.0, s[0].Price)
	assert.Equal(t, 41000.0, s[1].Price)
	assert.Equal(t, 42000.5, s[2].Price)
}

func TestDecodeHistoryCSV_NoHeader(t *testing.T) {
	s, err := DecodeHistoryCSV(strings.NewReader("2024-01-01,1\n"))
	require.NoError(t, err)
	assert.Len(t, s, 1)
}

func TestDecodeHistoryCSV_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"header only":    "date,price\n",
		"bad date":       "01/02/2024,100\n",
		"bad price":      "2024-01-01,abc\n",
		"zero price":     "2024-01-01,0\n",
		"missing column": "2024-01-01\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeHistoryCSV(strings.NewReader(in))
			assert.Error(t, err)
		})
	}

	_, err := DecodeHistoryCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyHistory)
}

func TestDecodeHistoryJSON(t *testing.T) {
	in := `[{"date":"2024-02-01","price":43000},{"date":"2024-01-01","price":42000}]`
	s, err := DecodeHistoryJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, s, 2)
	assert.Equal(t, 42000.0, s[0].Price)

	_, err = DecodeHistoryJSON(strings.NewReader(`[]`))
	assert.ErrorIs(t, err, ErrEmptyHistory)

	_, err = DecodeHistoryJSON(strings.NewReader(`[{"date":"nope","price":1}]`))
	assert.Error(t, err)
}

func TestLoadHistory(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "btc.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("date,price\n2024-01-01,40000\n"), 0o644))
	s, err := LoadHistory(csvPath)
	require.NoError(t, err)
	assert.Len(t, s, 1)

	jsonPath := filepath.Join(dir, "btc.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"date":"2024-01-01","price":40000}]`), 0o644))
	s, err = LoadHistory(jsonPath)
	require.NoError(t, err)
	assert.Len(t, s, 1)

	_, err = LoadHistory(filepath.Join(dir, "btc.txt"))
	assert.Error(t, err)

	txtPath := filepath.Join(dir, "prices.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("x"), 0o644))
	_, err = LoadHistory(txtPath)
	assert.ErrorContains(t, err, "unsupported history format")
}
